// Package strategy holds the turn strategy: breach memory, lane risk
// estimation, defensive layout planning and the offense cycle. Everything
// here is pure computation over a Snapshot; the board, transport and rule
// sequencing live elsewhere.
package strategy

import "github.com/nstehr/rampart/model"

//go:generate go tool mockgen -destination=./mocks/paths_mock.go -package=mocks . PathQuerier

// Snapshot is the read/place surface of one turn. Implementations track
// their own resource balance as placements succeed; the planners only read
// it back.
type Snapshot interface {
	Turn() int
	Resource(pool model.ResourcePool) float64
	CanPlace(kind model.UnitKind, cell model.Cell, count int) bool
	AttemptPlace(cmd model.PlacementCommand) model.Placement
	ContainsStationary(cell model.Cell) bool
}

// PathQuerier answers path and threat questions about the current board.
type PathQuerier interface {
	// PathToEdge returns the cells a mobile unit spawned at start would walk,
	// start included.
	PathToEdge(start model.Cell) ([]model.Cell, error)
	// AttackerCount is the number of enemy structures able to hit a unit
	// standing on cell.
	AttackerCount(cell model.Cell) (int, error)
}

// attempt places one unit of kind at each cell, ignoring refusals.
func attempt(s Snapshot, kind model.UnitKind, cells []model.Cell) []model.Placement {
	out := make([]model.Placement, 0, len(cells))
	for _, c := range cells {
		out = append(out, s.AttemptPlace(model.PlacementCommand{Kind: kind, Cell: c, Repeat: 1}))
	}
	return out
}

// FilterBlocked drops cells that already hold a structure.
func FilterBlocked(s Snapshot, cells []model.Cell) []model.Cell {
	var out []model.Cell
	for _, c := range cells {
		if !s.ContainsStationary(c) {
			out = append(out, c)
		}
	}
	return out
}
