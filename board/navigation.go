package board

import (
	"errors"
	"fmt"
	"math"

	"github.com/nstehr/rampart/model"
)

// ErrStartBlocked is returned when a path is requested from a cell that
// holds a structure.
var ErrStartBlocked = errors.New("path start is blocked")

// Last move of a walking unit. Units alternate axes when two steps are
// equally good.
const (
	moveNone = iota
	moveHorizontal
	moveVertical
)

// unreached marks cells the pathlength search never touched.
const unreached = -1

type navNode struct {
	blocked    bool
	seenIdeal  bool
	seenLength bool
	pathlength int
}

type navigator struct {
	grid    [model.ArenaSize][model.ArenaSize]navNode
	ends    []model.Cell
	isEnd   map[model.Cell]bool
	towards [2]int // +1/-1 per axis, towards the target edge
}

// PathToEdge returns the cells a mobile unit spawned at start walks through
// on its way to the edge opposite its starting quadrant, start included.
// The walk ends at the edge or, if the edge is walled off, at the reachable
// cell closest to it.
func (b *Board) PathToEdge(start model.Cell) ([]model.Cell, error) {
	if !model.InArena(start) {
		return nil, fmt.Errorf("path from %s: outside the arena", start)
	}
	if b.ContainsStationary(start) {
		return nil, fmt.Errorf("path from %s: %w", start, ErrStartBlocked)
	}
	nav := newNavigator(b, model.EdgeCells(model.TargetEdge(start)))
	ideal := nav.idealnessSearch(start)
	nav.measure(ideal)
	return nav.walk(start)
}

func newNavigator(b *Board, ends []model.Cell) *navigator {
	nav := &navigator{ends: ends, isEnd: make(map[model.Cell]bool, len(ends))}
	for _, e := range ends {
		nav.isEnd[e] = true
	}
	for x := range nav.grid {
		for y := range nav.grid[x] {
			nav.grid[x][y].pathlength = unreached
		}
	}
	for c := range b.units {
		if b.ContainsStationary(c) {
			nav.grid[c.X][c.Y].blocked = true
		}
	}

	nav.towards = [2]int{1, 1}
	first := ends[0]
	if first.X < model.HalfArena {
		nav.towards[0] = -1
	}
	if first.Y < model.HalfArena {
		nav.towards[1] = -1
	}
	return nav
}

func (n *navigator) node(c model.Cell) *navNode { return &n.grid[c.X][c.Y] }

func (n *navigator) open(c model.Cell) bool {
	return model.InArena(c) && !n.node(c).blocked
}

func neighbors(c model.Cell) [4]model.Cell {
	return [4]model.Cell{
		{X: c.X, Y: c.Y + 1},
		{X: c.X, Y: c.Y - 1},
		{X: c.X + 1, Y: c.Y},
		{X: c.X - 1, Y: c.Y},
	}
}

// idealness ranks how far along a cell is towards the target edge; edge
// cells beat everything.
func (n *navigator) idealness(c model.Cell) int {
	if n.isEnd[c] {
		return math.MaxInt
	}
	score := 0
	if n.towards[1] == 1 {
		score += model.ArenaSize * c.Y
	} else {
		score += model.ArenaSize * (model.ArenaSize - 1 - c.Y)
	}
	if n.towards[0] == 1 {
		score += c.X
	} else {
		score += model.ArenaSize - 1 - c.X
	}
	return score
}

// idealnessSearch floods the region reachable from start and returns its
// most ideal cell. The first cell found wins ties.
func (n *navigator) idealnessSearch(start model.Cell) model.Cell {
	best, bestScore := start, n.idealness(start)
	n.node(start).seenIdeal = true
	queue := []model.Cell{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, nb := range neighbors(cur) {
			if !n.open(nb) {
				continue
			}
			if score := n.idealness(nb); score > bestScore {
				best, bestScore = nb, score
			}
			if node := n.node(nb); !node.seenIdeal {
				node.seenIdeal = true
				queue = append(queue, nb)
			}
		}
	}
	return best
}

// measure sets every reachable cell's pathlength: steps to the nearest edge
// cell, or to the ideal cell when no edge cell is reachable.
func (n *navigator) measure(ideal model.Cell) {
	var queue []model.Cell
	seed := func(c model.Cell) {
		node := n.node(c)
		node.pathlength = 0
		node.seenLength = true
		queue = append(queue, c)
	}
	if n.isEnd[ideal] {
		for _, e := range n.ends {
			seed(e)
		}
	} else {
		seed(ideal)
	}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		curNode := n.node(cur)
		for _, nb := range neighbors(cur) {
			if !n.open(nb) {
				continue
			}
			if node := n.node(nb); !node.seenLength && !curNode.blocked {
				node.pathlength = curNode.pathlength + 1
				node.seenLength = true
				queue = append(queue, nb)
			}
		}
	}
}

func (n *navigator) walk(start model.Cell) ([]model.Cell, error) {
	path := []model.Cell{start}
	cur := start
	last := moveNone
	for steps := 0; n.node(cur).pathlength != 0; steps++ {
		if steps > model.ArenaSize*model.ArenaSize {
			return nil, fmt.Errorf("path from %s: walk did not settle", start)
		}
		next := n.nextMove(cur, last)
		if next == cur {
			return nil, fmt.Errorf("path from %s: stuck at %s", start, cur)
		}
		if next.X == cur.X {
			last = moveVertical
		} else {
			last = moveHorizontal
		}
		path = append(path, next)
		cur = next
	}
	return path, nil
}

func (n *navigator) nextMove(cur model.Cell, last int) model.Cell {
	best := cur
	bestLength := n.node(cur).pathlength
	for _, nb := range neighbors(cur) {
		if !n.open(nb) {
			continue
		}
		length := n.node(nb).pathlength
		if length == unreached || length > bestLength {
			continue
		}
		if length == bestLength && !n.betterDirection(cur, nb, best, last) {
			continue
		}
		best, bestLength = nb, length
	}
	return best
}

// betterDirection breaks pathlength ties: switch axis after every step,
// otherwise head towards the target edge.
func (n *navigator) betterDirection(prev, candidate, best model.Cell, last int) bool {
	if last == moveHorizontal && candidate.X != best.X {
		return prev.Y != candidate.Y
	}
	if last == moveVertical && candidate.Y != best.Y {
		return prev.X != candidate.X
	}
	if last == moveNone {
		return prev.Y != candidate.Y
	}
	if candidate.Y == best.Y {
		return (n.towards[0] == 1 && candidate.X > best.X) || (n.towards[0] == -1 && candidate.X < best.X)
	}
	if candidate.X == best.X {
		return (n.towards[1] == 1 && candidate.Y > best.Y) || (n.towards[1] == -1 && candidate.Y < best.Y)
	}
	return true
}
