package strategy

import "github.com/nstehr/rampart/model"

// BreachMemory is the game-long list of cells where the opponent scored on
// us. Entries are never removed or reordered; repeated breaches at one cell
// are kept so hot spots weigh more.
type BreachMemory struct {
	locations []model.Cell
}

// Record appends a breach location.
func (m *BreachMemory) Record(loc model.Cell) {
	m.locations = append(m.locations, loc)
}

func (m *BreachMemory) Len() int { return len(m.locations) }

// Locations returns a copy of the history in record order.
func (m *BreachMemory) Locations() []model.Cell {
	out := make([]model.Cell, len(m.locations))
	copy(out, m.locations)
	return out
}

// AverageX is floor(sum(x) / (n + 1)). The +1 damps the average toward the
// left edge and keeps the empty history at 0; the left reinforcement
// threshold is tuned against this exact value.
func (m *BreachMemory) AverageX() int {
	sum := 0
	for _, c := range m.locations {
		sum += c.X
	}
	return floorDiv(sum, len(m.locations)+1)
}

// floorDiv rounds toward negative infinity like Python's //, so off-board
// coordinates cannot flip the rounding direction.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
