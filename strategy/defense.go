package strategy

import (
	"slices"

	"github.com/nstehr/rampart/model"
)

// DefenseLayout is the fixed set of cells the defense is built from. The
// shape is a funnel: wall slopes running from both corners down to a cap
// in front of our spawn edge, turrets clustered on the right where the
// funnel opens.
type DefenseLayout struct {
	MainSupport model.Cell
	CornerWall  model.Cell

	MainTurrets []model.Cell
	RightSlope  []model.Cell
	MiddleCap   []model.Cell
	LeftSlope   []model.Cell

	RightLayerOne       []model.Cell
	RightLayerTwo       []model.Cell
	RightLayerTwoScreen []model.Cell
	RightLayerThree     []model.Cell

	LeftTurrets []model.Cell
	LeftScreen  []model.Cell

	SupportLine []model.Cell
}

func cells(xy ...[2]int) []model.Cell {
	out := make([]model.Cell, len(xy))
	for i, p := range xy {
		out[i] = model.Cell{X: p[0], Y: p[1]}
	}
	return out
}

// DefaultLayout is the layout the doctrine thresholds were tuned against.
func DefaultLayout() DefenseLayout {
	return DefenseLayout{
		MainSupport: model.Cell{X: 14, Y: 1},
		CornerWall:  model.Cell{X: 0, Y: 13},

		MainTurrets: cells([2]int{27, 13}, [2]int{24, 12}, [2]int{22, 11}),
		RightSlope: cells(
			[2]int{13, 3}, [2]int{14, 4}, [2]int{15, 5}, [2]int{16, 6}, [2]int{17, 7}, [2]int{18, 8},
			[2]int{19, 9}, [2]int{20, 10}, [2]int{21, 11}, [2]int{22, 12}, [2]int{23, 12}, [2]int{26, 13},
		),
		MiddleCap: cells([2]int{11, 2}, [2]int{12, 2}),
		LeftSlope: cells(
			[2]int{1, 12}, [2]int{2, 11}, [2]int{3, 10}, [2]int{4, 9}, [2]int{5, 8},
			[2]int{6, 7}, [2]int{7, 6}, [2]int{8, 5}, [2]int{9, 4}, [2]int{10, 3},
		),

		RightLayerOne:       cells([2]int{26, 12}, [2]int{23, 11}),
		RightLayerTwo:       cells([2]int{21, 12}, [2]int{20, 11}),
		RightLayerTwoScreen: cells([2]int{18, 12}, [2]int{19, 12}, [2]int{20, 12}, [2]int{18, 11}),
		RightLayerThree:     cells([2]int{24, 13}, [2]int{23, 13}, [2]int{22, 13}, [2]int{21, 13}, [2]int{20, 13}),

		LeftTurrets: cells([2]int{0, 13}, [2]int{2, 12}, [2]int{3, 12}, [2]int{4, 12}, [2]int{5, 11}),
		LeftScreen:  cells([2]int{1, 13}, [2]int{2, 13}, [2]int{3, 13}, [2]int{4, 13}, [2]int{5, 12}),

		SupportLine: cells(
			[2]int{19, 6}, [2]int{20, 6}, [2]int{18, 5}, [2]int{19, 5}, [2]int{17, 4}, [2]int{18, 4},
			[2]int{16, 3}, [2]int{17, 3}, [2]int{15, 2}, [2]int{16, 2}, [2]int{15, 1},
		),
	}
}

// DefensePlanner issues structure placements. ReinforceMatter is the Matter
// cushion below which an already-built turret does not count toward adding
// a wall screen.
type DefensePlanner struct {
	Layout          DefenseLayout
	ReinforceMatter float64
}

// Opening places the single support of turn 0.
func (d DefensePlanner) Opening(s Snapshot) []model.Placement {
	return attempt(s, model.Support, []model.Cell{d.Layout.MainSupport})
}

// Baseline is the doctrine shape built every steady turn: the support is
// re-requested in case it was destroyed, then turrets, then the three wall
// runs. On turn 1 the left corner is plugged with a wall as well.
func (d DefensePlanner) Baseline(s Snapshot) []model.Placement {
	var out []model.Placement
	out = append(out, attempt(s, model.Support, []model.Cell{d.Layout.MainSupport})...)
	if s.Turn() == 1 {
		out = append(out, attempt(s, model.Wall, []model.Cell{d.Layout.CornerWall})...)
	}
	out = append(out, attempt(s, model.Turret, d.Layout.MainTurrets)...)
	out = append(out, attempt(s, model.Wall, d.Layout.RightSlope)...)
	out = append(out, attempt(s, model.Wall, d.Layout.MiddleCap)...)
	out = append(out, attempt(s, model.Wall, d.Layout.LeftSlope)...)
	return out
}

// Right thickens the right side in three independent layers.
func (d DefensePlanner) Right(s Snapshot) []model.Placement {
	var out []model.Placement
	out = append(out, d.guardedTurrets(s, d.Layout.RightLayerOne)...)

	built, placed := d.countingTurrets(s, d.Layout.RightLayerTwo)
	out = append(out, placed...)
	if built == len(d.Layout.RightLayerTwo) {
		out = append(out, attempt(s, model.Wall, d.Layout.RightLayerTwoScreen)...)
	}

	out = append(out, d.guardedTurrets(s, d.Layout.RightLayerThree)...)
	return out
}

// Left adds turrets on the left flank and, once more than one of them is
// standing with Matter to spare, a wall screen in front. Callers decide
// whether the left is under threat.
func (d DefensePlanner) Left(s Snapshot) []model.Placement {
	built, out := d.countingTurrets(s, d.Layout.LeftTurrets)
	if built > 1 {
		out = append(out, attempt(s, model.Wall, d.Layout.LeftScreen)...)
	}
	return out
}

// ReactiveRebuild puts a turret one row above every breached cell, which
// plugs the leak without blocking our own spawn edge. Cells already holding
// a structure are skipped.
func (d DefensePlanner) ReactiveRebuild(s Snapshot, mem *BreachMemory) []model.Placement {
	locs := mem.Locations()
	above := make([]model.Cell, 0, len(locs))
	for _, loc := range locs {
		if c := loc.Above(); !slices.Contains(above, c) {
			above = append(above, c)
		}
	}
	return attempt(s, model.Turret, FilterBlocked(s, above))
}

// SupportLine fills the diagonal behind the right slope with supports.
func (d DefensePlanner) SupportLine(s Snapshot) []model.Placement {
	return attempt(s, model.Support, d.Layout.SupportLine)
}

func (d DefensePlanner) guardedTurrets(s Snapshot, cs []model.Cell) []model.Placement {
	var out []model.Placement
	for _, c := range cs {
		if s.CanPlace(model.Turret, c, 1) {
			out = append(out, s.AttemptPlace(model.PlacementCommand{Kind: model.Turret, Cell: c, Repeat: 1}))
		}
	}
	return out
}

// countingTurrets is guardedTurrets that also counts cells which could not
// take a turret while Matter stood at or above the cushion. That is the
// proxy for "already built and we can afford more".
func (d DefensePlanner) countingTurrets(s Snapshot, cs []model.Cell) (int, []model.Placement) {
	built := 0
	var out []model.Placement
	for _, c := range cs {
		if !s.CanPlace(model.Turret, c, 1) && s.Resource(model.Matter) >= d.ReinforceMatter {
			built++
		}
		if s.CanPlace(model.Turret, c, 1) {
			out = append(out, s.AttemptPlace(model.PlacementCommand{Kind: model.Turret, Cell: c, Repeat: 1}))
		}
	}
	return built, out
}
