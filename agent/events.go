package agent

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/nstehr/rampart/model"
	"github.com/nstehr/rampart/strategy"
)

// EventKind identifies a significant change between two consecutive turns.
type EventKind string

const (
	EventStructureLost     EventKind = "structure_lost"
	EventDefenseCollapsed  EventKind = "defense_collapsed"
	EventHealthLost        EventKind = "health_lost"
	EventPhaseTransition   EventKind = "phase_transition"
	EventEnemyFortified    EventKind = "enemy_fortified"
	EventEnemyFirstTurrets EventKind = "enemy_first_turrets"
)

// Event is one detected change, with a human-readable detail for the logs.
type Event struct {
	Kind   EventKind
	Turn   int
	Detail string
}

// collapseFloor is the smallest defense for which a collapse is reported;
// below it a couple of lost walls would read as a collapse.
const collapseFloor = 6

// fortifyThreshold is how many new enemy turrets in one turn count as a
// fortification push.
const fortifyThreshold = 3

// turnSnapshot captures the diffable fields of a turn frame. The agent
// keeps the previous one and compares it with the next turn.
type turnSnapshot struct {
	turn         int
	phase        strategy.Phase
	health       float64
	structures   map[string]model.UnitKind // our stationary units by id
	enemyTurrets int
}

func takeSnapshot(f model.Frame, phase strategy.Phase) turnSnapshot {
	snap := turnSnapshot{
		turn:       f.Turn(),
		phase:      phase,
		health:     f.Health(),
		structures: make(map[string]model.UnitKind),
	}
	for i, list := range f.P1Units {
		kind := model.UnitKind(i)
		if !kind.Valid() || !kind.Stationary() {
			continue
		}
		for _, u := range list {
			// Structures without an id cannot be told apart across turns.
			if u.ID != "" {
				snap.structures[u.ID] = kind
			}
		}
	}
	if int(model.Turret) < len(f.P2Units) {
		snap.enemyTurrets = len(f.P2Units[model.Turret])
	}
	return snap
}

// detectEvents compares the current turn against the previous snapshot.
// Returns nil on the first turn.
func detectEvents(cur turnSnapshot, prev *turnSnapshot) []Event {
	if prev == nil {
		return nil
	}
	var events []Event

	lost := make(map[model.UnitKind]int)
	total := 0
	for id, kind := range prev.structures {
		if _, ok := cur.structures[id]; !ok {
			lost[kind]++
			total++
		}
	}
	if total > 0 {
		events = append(events, Event{
			Kind:   EventStructureLost,
			Turn:   cur.turn,
			Detail: fmt.Sprintf("Lost %s", formatLosses(lost)),
		})
	}

	if n := len(prev.structures); n >= collapseFloor && float64(total)/float64(n) > 0.5 {
		events = append(events, Event{
			Kind:   EventDefenseCollapsed,
			Turn:   cur.turn,
			Detail: fmt.Sprintf("Defense collapsed: %d→%d structures", n, n-total),
		})
	}

	if cur.health < prev.health {
		events = append(events, Event{
			Kind:   EventHealthLost,
			Turn:   cur.turn,
			Detail: fmt.Sprintf("Health %g → %g", prev.health, cur.health),
		})
	}

	if prev.phase != cur.phase {
		events = append(events, Event{
			Kind:   EventPhaseTransition,
			Turn:   cur.turn,
			Detail: fmt.Sprintf("Phase transition: %s → %s", prev.phase, cur.phase),
		})
	}

	switch {
	case prev.enemyTurrets == 0 && cur.enemyTurrets > 0:
		events = append(events, Event{
			Kind:   EventEnemyFirstTurrets,
			Turn:   cur.turn,
			Detail: fmt.Sprintf("Enemy built its first %d turrets", cur.enemyTurrets),
		})
	case cur.enemyTurrets-prev.enemyTurrets >= fortifyThreshold:
		events = append(events, Event{
			Kind:   EventEnemyFortified,
			Turn:   cur.turn,
			Detail: fmt.Sprintf("Enemy turrets %d → %d", prev.enemyTurrets, cur.enemyTurrets),
		})
	}

	return events
}

// formatLosses renders lost structures as "1x wall, 2x turret" in unit
// kind order.
func formatLosses(lost map[model.UnitKind]int) string {
	kinds := slices.Sorted(maps.Keys(lost))
	parts := make([]string, 0, len(kinds))
	for _, k := range kinds {
		parts = append(parts, fmt.Sprintf("%dx %s", lost[k], k))
	}
	return strings.Join(parts, ", ")
}

func eventKinds(events []Event) []string {
	kinds := make([]string, len(events))
	for i, e := range events {
		kinds[i] = string(e.Kind)
	}
	return kinds
}
