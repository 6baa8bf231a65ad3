// Package board is the local model of one turn: who stands where, how much
// of each currency is left, and what we have queued to place. It answers
// the same legality questions the engine will, so the planners see their
// own earlier placements within a turn.
package board

import (
	"fmt"

	"github.com/nstehr/rampart/model"
)

// Spawn is one unit queued for submission.
type Spawn struct {
	Kind model.UnitKind
	Cell model.Cell
}

// Board implements strategy.Snapshot and strategy.PathQuerier over a
// decoded turn frame.
type Board struct {
	table   *model.ConfigTable
	turn    int
	res     [2]float64
	units   map[model.Cell][]model.Unit
	spawns  []Spawn
	history []model.Placement
}

// New builds the board for a turn frame. p1 units are ours, p2 the
// opponent's; list indexes past the six unit kinds (removal markers) are
// ignored.
func New(table *model.ConfigTable, f model.Frame) *Board {
	b := &Board{
		table: table,
		turn:  f.Turn(),
		units: make(map[model.Cell][]model.Unit),
	}
	b.res[model.Matter] = f.Resource(model.Matter)
	b.res[model.Tempo] = f.Resource(model.Tempo)

	b.load(f.P1Units, model.Self)
	b.load(f.P2Units, model.Enemy)
	return b
}

func (b *Board) load(lists [][]model.UnitRecord, owner model.Owner) {
	for i, records := range lists {
		kind := model.UnitKind(i)
		if !kind.Valid() {
			continue
		}
		for _, r := range records {
			if !model.InArena(r.Cell) {
				continue
			}
			b.units[r.Cell] = append(b.units[r.Cell], model.Unit{
				Kind:   kind,
				Owner:  owner,
				Health: r.Health,
				ID:     r.ID,
			})
		}
	}
}

func (b *Board) Turn() int { return b.turn }

// Resource returns what is left of pool p after this turn's placements.
func (b *Board) Resource(p model.ResourcePool) float64 { return b.res[p] }

// Units returns the units standing on c.
func (b *Board) Units(c model.Cell) []model.Unit { return b.units[c] }

// ContainsStationary reports whether any structure, ours or theirs, is on c.
func (b *Board) ContainsStationary(c model.Cell) bool {
	for _, u := range b.units[c] {
		if u.Kind.Stationary() {
			return true
		}
	}
	return false
}

// EnemyCount counts the opponent's units of the given kind.
func (b *Board) EnemyCount(kind model.UnitKind) int {
	n := 0
	for _, units := range b.units {
		for _, u := range units {
			if u.Owner == model.Enemy && u.Kind == kind {
				n++
			}
		}
	}
	return n
}

func (b *Board) affordable(kind model.UnitKind, count int) bool {
	cost := b.table.Cost(kind)
	for p := range b.res {
		if cost[p]*float64(count) > b.res[p] {
			return false
		}
	}
	return true
}

// check mirrors the engine's spawn rules. Position problems win over
// money problems so a blocked cell never reads as a budget issue.
func (b *Board) check(kind model.UnitKind, c model.Cell, count int) model.Outcome {
	if !kind.Valid() || count < 1 || !model.InArena(c) || !model.OwnHalf(c) {
		return model.Blocked
	}
	stationary := kind.Stationary()
	if stationary && count > 1 {
		return model.Blocked
	}
	if b.ContainsStationary(c) || (stationary && len(b.units[c]) > 0) {
		return model.Blocked
	}
	if !stationary && !model.OnSpawnEdge(c) {
		return model.Blocked
	}
	if !b.affordable(kind, count) {
		return model.Unaffordable
	}
	return model.Placed
}

// CanPlace reports whether count units of kind could go on c right now.
func (b *Board) CanPlace(kind model.UnitKind, c model.Cell, count int) bool {
	return b.check(kind, c, count) == model.Placed
}

// AttemptPlace places up to cmd.Repeat units one at a time, stopping at the
// first refusal.
func (b *Board) AttemptPlace(cmd model.PlacementCommand) model.Placement {
	out := model.Placement{Command: cmd, Outcome: model.Placed}
	for i := 0; i < cmd.Repeat; i++ {
		if why := b.check(cmd.Kind, cmd.Cell, 1); why != model.Placed {
			out.Outcome = why
			break
		}
		cost := b.table.Cost(cmd.Kind)
		b.res[model.Matter] -= cost[model.Matter]
		b.res[model.Tempo] -= cost[model.Tempo]
		b.units[cmd.Cell] = append(b.units[cmd.Cell], model.Unit{
			Kind:   cmd.Kind,
			Owner:  model.Self,
			Health: b.table.Info(cmd.Kind).StartHealth,
		})
		b.spawns = append(b.spawns, Spawn{Kind: cmd.Kind, Cell: cmd.Cell})
		out.Placed++
	}
	if cmd.Repeat < 1 {
		out.Outcome = model.Blocked
	}
	b.history = append(b.history, out)
	return out
}

// Spawns returns every unit queued this turn, in placement order.
func (b *Board) Spawns() []Spawn {
	return append([]Spawn(nil), b.spawns...)
}

// History returns the result of every AttemptPlace call this turn.
func (b *Board) History() []model.Placement {
	return append([]model.Placement(nil), b.history...)
}

// AttackerCount counts enemy structures that deal damage and have c in
// range.
func (b *Board) AttackerCount(c model.Cell) (int, error) {
	if !model.InArena(c) {
		return 0, fmt.Errorf("attackers: %s is outside the arena", c)
	}
	n := 0
	for at, units := range b.units {
		for _, u := range units {
			if u.Owner != model.Enemy || !u.Kind.Stationary() {
				continue
			}
			if b.table.Damage(u.Kind) <= 0 {
				continue
			}
			if model.Distance(at, c) <= b.table.Range(u.Kind) {
				n++
			}
		}
	}
	return n, nil
}
