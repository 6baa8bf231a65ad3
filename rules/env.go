package rules

import (
	"github.com/nstehr/rampart/model"
	"github.com/nstehr/rampart/strategy"
)

// RuleEnv wraps one turn's board and the cross-turn state, and exposes
// helper methods callable from expr expressions. Condition methods read the
// board live, so a rule sees what earlier rules already spent.
type RuleEnv struct {
	Board   strategy.Snapshot
	State   *strategy.State
	Defense strategy.DefensePlanner
	Offense strategy.OffenseScheduler
}

func (e RuleEnv) Turn() int { return e.Board.Turn() }

func (e RuleEnv) Opening() bool { return e.State.Phase == strategy.Opening }
func (e RuleEnv) Steady() bool  { return e.State.Phase == strategy.Steady }

func (e RuleEnv) Matter() float64 { return e.Board.Resource(model.Matter) }
func (e RuleEnv) Tempo() float64  { return e.Board.Resource(model.Tempo) }

func (e RuleEnv) BreachCount() int { return e.State.Breaches.Len() }

// AverageBreachX is the damped mean breach column; see BreachMemory.AverageX.
func (e RuleEnv) AverageBreachX() int { return e.State.Breaches.AverageX() }

func (e RuleEnv) AwaitingBurst() bool { return e.State.Offense.AwaitingBurst() }
