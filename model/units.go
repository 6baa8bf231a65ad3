package model

import "fmt"

// UnitKind is the stable identity of a unit type. The numeric order matches
// the engine's unitInformation list, which is how frames index their unit
// lists.
type UnitKind int

const (
	Wall UnitKind = iota
	Support
	Turret
	FastAttacker
	SplashAttacker
	DebuffAttacker
)

// UnitKinds is every placeable kind in config order.
var UnitKinds = []UnitKind{Wall, Support, Turret, FastAttacker, SplashAttacker, DebuffAttacker}

func (k UnitKind) String() string {
	switch k {
	case Wall:
		return "wall"
	case Support:
		return "support"
	case Turret:
		return "turret"
	case FastAttacker:
		return "fast_attacker"
	case SplashAttacker:
		return "splash_attacker"
	case DebuffAttacker:
		return "debuff_attacker"
	}
	return fmt.Sprintf("unit(%d)", int(k))
}

// Stationary reports whether the kind is a structure (built with Matter,
// never moves) rather than a mobile attacker.
func (k UnitKind) Stationary() bool {
	return k == Wall || k == Support || k == Turret
}

// Valid reports whether k is one of the six known kinds.
func (k UnitKind) Valid() bool {
	return k >= Wall && k <= DebuffAttacker
}

// ResourcePool names one of the two currencies.
type ResourcePool int

const (
	Matter ResourcePool = iota // structure currency (engine "cores")
	Tempo                      // mobile currency (engine "bits")
)

func (p ResourcePool) String() string {
	switch p {
	case Matter:
		return "matter"
	case Tempo:
		return "tempo"
	}
	return fmt.Sprintf("pool(%d)", int(p))
}

// Owner distinguishes our units from the opponent's on a shared board.
type Owner int

const (
	Self Owner = iota
	Enemy
)

// Unit is one unit standing on the board.
type Unit struct {
	Kind   UnitKind
	Owner  Owner
	Health float64
	ID     string
}

// PlacementCommand asks the engine to place up to Repeat units of Kind at
// Cell.
type PlacementCommand struct {
	Kind   UnitKind
	Cell   Cell
	Repeat int
}

// Outcome says how a placement attempt ended.
type Outcome int

const (
	Placed       Outcome = iota // every requested unit was placed
	Blocked                     // illegal cell: occupied, out of bounds or wrong edge
	Unaffordable                // not enough of a currency
)

func (o Outcome) String() string {
	switch o {
	case Placed:
		return "placed"
	case Blocked:
		return "blocked"
	case Unaffordable:
		return "unaffordable"
	}
	return fmt.Sprintf("outcome(%d)", int(o))
}

// Placement is the engine's answer to a PlacementCommand. Placed counts the
// units that went down before the first refusal; Outcome is that refusal,
// or Placed if there was none.
type Placement struct {
	Command PlacementCommand
	Placed  int
	Outcome Outcome
}
