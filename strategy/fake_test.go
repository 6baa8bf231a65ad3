package strategy

import "github.com/nstehr/rampart/model"

// fakeBoard is a minimal Snapshot: every in-play cell is legal, structures
// occupy their cell, and costs come out of two pools.
type fakeBoard struct {
	turn     int
	res      [2]float64
	cost     map[model.UnitKind][2]float64
	occupied map[model.Cell]bool
	illegal  map[model.Cell]bool
	placed   []model.PlacementCommand
}

func newFakeBoard(turn int, matter, tempo float64) *fakeBoard {
	return &fakeBoard{
		turn: turn,
		res:  [2]float64{model.Matter: matter, model.Tempo: tempo},
		cost: map[model.UnitKind][2]float64{
			model.Wall:           {model.Matter: 1},
			model.Support:        {model.Matter: 4},
			model.Turret:         {model.Matter: 3},
			model.FastAttacker:   {model.Tempo: 1},
			model.SplashAttacker: {model.Tempo: 3},
			model.DebuffAttacker: {model.Tempo: 1},
		},
		occupied: make(map[model.Cell]bool),
		illegal:  make(map[model.Cell]bool),
	}
}

func (b *fakeBoard) Turn() int { return b.turn }

func (b *fakeBoard) Resource(p model.ResourcePool) float64 { return b.res[p] }

func (b *fakeBoard) ContainsStationary(c model.Cell) bool { return b.occupied[c] }

func (b *fakeBoard) refusal(kind model.UnitKind, c model.Cell, n int) (model.Outcome, bool) {
	if b.illegal[c] || b.occupied[c] {
		return model.Blocked, true
	}
	cost := b.cost[kind]
	for p := range b.res {
		if cost[p]*float64(n) > b.res[p] {
			return model.Unaffordable, true
		}
	}
	return model.Placed, false
}

func (b *fakeBoard) CanPlace(kind model.UnitKind, c model.Cell, n int) bool {
	_, refused := b.refusal(kind, c, n)
	return !refused
}

func (b *fakeBoard) AttemptPlace(cmd model.PlacementCommand) model.Placement {
	out := model.Placement{Command: cmd, Outcome: model.Placed}
	for i := 0; i < cmd.Repeat; i++ {
		if why, refused := b.refusal(cmd.Kind, cmd.Cell, 1); refused {
			out.Outcome = why
			return out
		}
		cost := b.cost[cmd.Kind]
		b.res[model.Matter] -= cost[model.Matter]
		b.res[model.Tempo] -= cost[model.Tempo]
		if cmd.Kind.Stationary() {
			b.occupied[cmd.Cell] = true
		}
		b.placed = append(b.placed, model.PlacementCommand{Kind: cmd.Kind, Cell: cmd.Cell, Repeat: 1})
		out.Placed++
	}
	return out
}

func (b *fakeBoard) placedAt(kind model.UnitKind, c model.Cell) int {
	n := 0
	for _, p := range b.placed {
		if p.Kind == kind && p.Cell == c {
			n++
		}
	}
	return n
}

func (b *fakeBoard) countKind(kind model.UnitKind) int {
	n := 0
	for _, p := range b.placed {
		if p.Kind == kind {
			n++
		}
	}
	return n
}

// fakePaths gives every start a fixed path and every cell a fixed threat
// count.
type fakePaths struct {
	paths   map[model.Cell][]model.Cell
	threats map[model.Cell]int
}

func (f fakePaths) PathToEdge(start model.Cell) ([]model.Cell, error) {
	return f.paths[start], nil
}

func (f fakePaths) AttackerCount(c model.Cell) (int, error) {
	return f.threats[c], nil
}
