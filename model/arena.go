package model

import (
	"encoding/json"
	"fmt"
	"math"
)

// The arena is a 28x28 diamond. Rows below HalfArena belong to us, rows at
// or above it to the opponent.
const (
	ArenaSize = 28
	HalfArena = ArenaSize / 2
)

// Cell is a grid coordinate. On the wire it is a two-element array [x, y].
type Cell struct {
	X int
	Y int
}

func (c Cell) String() string { return fmt.Sprintf("[%d,%d]", c.X, c.Y) }

func (c Cell) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{c.X, c.Y})
}

func (c *Cell) UnmarshalJSON(data []byte) error {
	var xy []int
	if err := json.Unmarshal(data, &xy); err != nil {
		return fmt.Errorf("cell: %w", err)
	}
	if len(xy) != 2 {
		return fmt.Errorf("cell: want 2 coordinates, got %d", len(xy))
	}
	c.X, c.Y = xy[0], xy[1]
	return nil
}

// Above returns the cell one row further from our back edge.
func (c Cell) Above() Cell { return Cell{X: c.X, Y: c.Y + 1} }

// InArena reports whether c lies inside the diamond.
func InArena(c Cell) bool {
	if c.Y < 0 || c.Y >= ArenaSize {
		return false
	}
	var rowSize int
	if c.Y < HalfArena {
		rowSize = c.Y + 1
	} else {
		rowSize = ArenaSize - c.Y
	}
	startX := HalfArena - rowSize
	endX := startX + 2*rowSize - 1
	return c.X >= startX && c.X <= endX
}

// OwnHalf reports whether c is on our side of the arena.
func OwnHalf(c Cell) bool { return c.Y < HalfArena }

// Distance is the euclidean distance between two cells, which is what unit
// ranges are measured in.
func Distance(a, b Cell) float64 {
	dx := float64(a.X - b.X)
	dy := float64(a.Y - b.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

// Edge identifies one of the four diagonal borders of the diamond.
type Edge int

const (
	TopRight Edge = iota
	TopLeft
	BottomLeft
	BottomRight
)

func (e Edge) String() string {
	switch e {
	case TopRight:
		return "top_right"
	case TopLeft:
		return "top_left"
	case BottomLeft:
		return "bottom_left"
	case BottomRight:
		return "bottom_right"
	}
	return fmt.Sprintf("edge(%d)", int(e))
}

// EdgeCells lists the HalfArena cells along an edge, starting nearest the
// horizontal midline of the arena.
func EdgeCells(e Edge) []Cell {
	cells := make([]Cell, 0, HalfArena)
	for n := 0; n < HalfArena; n++ {
		switch e {
		case TopRight:
			cells = append(cells, Cell{X: HalfArena + n, Y: ArenaSize - 1 - n})
		case TopLeft:
			cells = append(cells, Cell{X: HalfArena - 1 - n, Y: ArenaSize - 1 - n})
		case BottomLeft:
			cells = append(cells, Cell{X: HalfArena - 1 - n, Y: n})
		case BottomRight:
			cells = append(cells, Cell{X: HalfArena + n, Y: n})
		}
	}
	return cells
}

// OnEdge reports whether c is one of the cells of edge e.
func OnEdge(c Cell, e Edge) bool {
	for _, ec := range EdgeCells(e) {
		if ec == c {
			return true
		}
	}
	return false
}

// OnSpawnEdge reports whether mobile units may be deployed at c: either of
// our two bottom edges.
func OnSpawnEdge(c Cell) bool {
	return OnEdge(c, BottomLeft) || OnEdge(c, BottomRight)
}

// TargetEdge is the edge a unit starting at c walks towards: the one
// diagonally opposite the quadrant it starts in.
func TargetEdge(c Cell) Edge {
	left := c.X < HalfArena
	bottom := c.Y < HalfArena
	switch {
	case left && bottom:
		return TopRight
	case left && !bottom:
		return BottomRight
	case !left && bottom:
		return TopLeft
	default:
		return BottomLeft
	}
}
