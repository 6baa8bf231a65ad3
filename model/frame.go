package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// Frame phases, read from turnInfo[0].
const (
	PhaseDeploy = 0 // start of a turn: we must answer with a submission
	PhaseAction = 1 // one simulation frame while units move
	PhaseEnd    = 2 // game over
)

// Indexes into p1Stats/p2Stats.
const (
	statHealth = 0
	statMatter = 1
	statTempo  = 2
)

// ErrMalformedBreach is returned when a breach event does not have the
// documented [[x, y], damage, unitType, id, player] shape.
var ErrMalformedBreach = errors.New("malformed breach event")

// Frame is one turn or action frame as sent by the engine. p1 is always
// us, p2 the opponent.
type Frame struct {
	TurnInfo []int          `json:"turnInfo"`
	P1Stats  []float64      `json:"p1Stats"`
	P2Stats  []float64      `json:"p2Stats"`
	P1Units  [][]UnitRecord `json:"p1Units"`
	P2Units  [][]UnitRecord `json:"p2Units"`
	Events   Events         `json:"events"`
}

// Events holds the per-frame event lists. Only breaches are decoded; the
// entries stay raw so a bad one can be rejected without losing the frame.
type Events struct {
	Breach []json.RawMessage `json:"breach"`
}

// ParseFrame decodes a turn or action frame.
func ParseFrame(data []byte) (Frame, error) {
	var f Frame
	if err := json.Unmarshal(data, &f); err != nil {
		return Frame{}, fmt.Errorf("decode frame: %w", err)
	}
	if len(f.TurnInfo) < 2 {
		return Frame{}, fmt.Errorf("decode frame: turnInfo has %d entries, want at least 2", len(f.TurnInfo))
	}
	return f, nil
}

func (f Frame) Phase() int { return f.TurnInfo[0] }
func (f Frame) Turn() int  { return f.TurnInfo[1] }

// ActionFrame is the frame number within the turn, or -1 when absent.
func (f Frame) ActionFrame() int {
	if len(f.TurnInfo) < 3 {
		return -1
	}
	return f.TurnInfo[2]
}

// Resource returns our current amount of pool p.
func (f Frame) Resource(p ResourcePool) float64 {
	idx := statMatter
	if p == Tempo {
		idx = statTempo
	}
	if idx >= len(f.P1Stats) {
		return 0
	}
	return f.P1Stats[idx]
}

// Health returns our remaining life points.
func (f Frame) Health() float64 {
	if len(f.P1Stats) <= statHealth {
		return 0
	}
	return f.P1Stats[statHealth]
}

// UnitRecord is one entry of a p1Units/p2Units list: [x, y, health, id].
type UnitRecord struct {
	Cell   Cell
	Health float64
	ID     string
}

func (u *UnitRecord) UnmarshalJSON(data []byte) error {
	var parts []json.RawMessage
	if err := json.Unmarshal(data, &parts); err != nil {
		return fmt.Errorf("unit record: %w", err)
	}
	if len(parts) < 3 {
		return fmt.Errorf("unit record: want at least 3 fields, got %d", len(parts))
	}
	if err := json.Unmarshal(parts[0], &u.Cell.X); err != nil {
		return fmt.Errorf("unit record x: %w", err)
	}
	if err := json.Unmarshal(parts[1], &u.Cell.Y); err != nil {
		return fmt.Errorf("unit record y: %w", err)
	}
	if err := json.Unmarshal(parts[2], &u.Health); err != nil {
		return fmt.Errorf("unit record health: %w", err)
	}
	if len(parts) > 3 {
		id, err := decodeID(parts[3])
		if err != nil {
			return fmt.Errorf("unit record id: %w", err)
		}
		u.ID = id
	}
	return nil
}

// decodeID accepts ids sent either as strings or as bare numbers.
func decodeID(raw json.RawMessage) (string, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", err
	}
	return strconv.FormatFloat(n, 'f', -1, 64), nil
}

// BreachEvent records a unit reaching the far edge. SelfUnit is true when
// the breaching unit was ours, i.e. we scored.
type BreachEvent struct {
	Location Cell
	SelfUnit bool
}

// ParseBreaches decodes every breach entry or none: a single malformed
// entry fails the whole list so callers never act on half a report.
func ParseBreaches(raw []json.RawMessage) ([]BreachEvent, error) {
	events := make([]BreachEvent, 0, len(raw))
	for i, entry := range raw {
		var parts []json.RawMessage
		if err := json.Unmarshal(entry, &parts); err != nil {
			return nil, fmt.Errorf("%w: entry %d: %v", ErrMalformedBreach, i, err)
		}
		if len(parts) < 5 {
			return nil, fmt.Errorf("%w: entry %d has %d fields", ErrMalformedBreach, i, len(parts))
		}
		var loc Cell
		if err := json.Unmarshal(parts[0], &loc); err != nil {
			return nil, fmt.Errorf("%w: entry %d location: %v", ErrMalformedBreach, i, err)
		}
		// Raw frames number players 1 (us) and 2 (opponent).
		var player int
		if err := json.Unmarshal(parts[4], &player); err != nil {
			return nil, fmt.Errorf("%w: entry %d owner: %v", ErrMalformedBreach, i, err)
		}
		events = append(events, BreachEvent{Location: loc, SelfUnit: player == 1})
	}
	return events, nil
}
