package strategy

// Phase is the coarse turn state the planners branch on.
type Phase int

const (
	// Opening is turn 0: a single support and the opening rush, nothing else.
	Opening Phase = iota
	// Steady is every turn after the first.
	Steady
)

func (p Phase) String() string {
	if p == Opening {
		return "opening"
	}
	return "steady"
}

// Advance moves the phase forward for the given turn. Steady is terminal.
func (p Phase) Advance(turn int) Phase {
	if p == Steady || turn >= 1 {
		return Steady
	}
	return Opening
}

// OffenseState is the accumulate/burst flag of the offense cycle. The zero
// value is accumulating.
type OffenseState struct {
	awaitingBurst bool
}

// AwaitingBurst is true after a splash volley went out and the follow-up
// fast wave has not.
func (o *OffenseState) AwaitingBurst() bool { return o.awaitingBurst }

func (o *OffenseState) String() string {
	if o.awaitingBurst {
		return "burst-ready"
	}
	return "accumulate"
}

// State is everything the strategy carries between turns. It is created
// once per game and owned by whoever runs the turn loop.
type State struct {
	Phase    Phase
	Breaches *BreachMemory
	Offense  *OffenseState
}

func NewState() *State {
	return &State{
		Phase:    Opening,
		Breaches: &BreachMemory{},
		Offense:  &OffenseState{},
	}
}
