package rules

import (
	"fmt"
	"os"

	"github.com/nstehr/rampart/model"
	"github.com/nstehr/rampart/strategy"
	"gopkg.in/yaml.v3"
)

// Doctrine is the tunable part of the strategy. The defaults are the
// values the layout was tuned with; a doctrine file overrides any subset.
type Doctrine struct {
	Name string `yaml:"name"`

	// ReinforceMatter is the Matter cushion an already-built reinforcement
	// turret needs before it counts toward adding a wall screen.
	ReinforceMatter float64 `yaml:"reinforce_matter"`
	// SplashTempo is the Tempo saved up before releasing a splash volley.
	SplashTempo float64 `yaml:"splash_tempo"`
	// FastTempo is the Tempo needed for the fast burst that follows.
	FastTempo float64 `yaml:"fast_tempo"`
	// LeftBreachX: left reinforcement fires while the average breach
	// column is at or below this.
	LeftBreachX int `yaml:"left_breach_x"`

	// AttackLanes are the spawn cells waves may launch from. With more
	// than one, each wave takes the lane with the least projected damage.
	AttackLanes [][2]int `yaml:"attack_lanes"`

	ReactiveRebuild bool `yaml:"reactive_rebuild"`
	SupportLine     bool `yaml:"support_line"`
}

// DefaultDoctrine returns the baseline doctrine.
func DefaultDoctrine() Doctrine {
	return Doctrine{
		Name:            "Funnel",
		ReinforceMatter: 6,
		SplashTempo:     18,
		FastTempo:       12,
		LeftBreachX:     13,
		AttackLanes:     [][2]int{{13, 0}},
	}
}

// LoadDoctrine reads a YAML doctrine file on top of the defaults and
// validates the result.
func LoadDoctrine(path string) (Doctrine, error) {
	d := DefaultDoctrine()
	raw, err := os.ReadFile(path)
	if err != nil {
		return d, err
	}
	if err := yaml.Unmarshal(raw, &d); err != nil {
		return d, fmt.Errorf("doctrine %s: %w", path, err)
	}
	d.Validate()
	return d, nil
}

// Validate clamps thresholds to their valid ranges and drops attack lanes
// mobile units cannot spawn on. An empty lane list falls back to the
// default lane.
func (d *Doctrine) Validate() {
	d.ReinforceMatter = clamp(d.ReinforceMatter, 0, 100)
	d.SplashTempo = clamp(d.SplashTempo, 1, 150)
	d.FastTempo = clamp(d.FastTempo, 1, 150)
	d.LeftBreachX = clampInt(d.LeftBreachX, 0, model.ArenaSize-1)

	lanes := d.AttackLanes[:0]
	for _, l := range d.AttackLanes {
		if model.OnSpawnEdge(model.Cell{X: l[0], Y: l[1]}) {
			lanes = append(lanes, l)
		}
	}
	if len(lanes) == 0 {
		lanes = DefaultDoctrine().AttackLanes
	}
	d.AttackLanes = lanes
}

// Lanes returns the attack lanes as cells.
func (d Doctrine) Lanes() []model.Cell {
	out := make([]model.Cell, len(d.AttackLanes))
	for i, l := range d.AttackLanes {
		out[i] = model.Cell{X: l[0], Y: l[1]}
	}
	return out
}

// Defense returns the defense planner this doctrine tunes.
func (d Doctrine) Defense() strategy.DefensePlanner {
	return strategy.DefensePlanner{
		Layout:          strategy.DefaultLayout(),
		ReinforceMatter: d.ReinforceMatter,
	}
}

// Offense returns the offense scheduler for one turn. turretDamage is the
// per-hit damage charged for every enemy structure in range.
func (d Doctrine) Offense(paths strategy.PathQuerier, turretDamage float64) strategy.OffenseScheduler {
	return strategy.OffenseScheduler{
		Lanes: d.Lanes(),
		Risk:  strategy.RiskEstimator{Paths: paths, TurretDamage: turretDamage},
	}
}

// clampInt restricts v to [min, max].
func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// clamp restricts v to [min, max].
func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
