package model

import (
	"encoding/json"
	"errors"
	"testing"
)

const turnFrame = `{
	"p2Units": [[], [], [[14, 26, 75.0, "7"]], [], [], [], []],
	"turnInfo": [0, 3, -1],
	"p1Stats": [27.0, 12.5, 9.0, 1200],
	"p1Units": [[[0, 13, 60.0, "1"], [1, 12, 60.0, "2"]], [[14, 1, 30.0, "3"]], [], [], [], [], []],
	"p2Stats": [30.0, 4.0, 5.0, 900],
	"events": {"selfDestruct": [], "breach": [], "damage": [], "shield": [], "move": [], "spawn": [], "death": [], "attack": [], "melee": []}
}`

func TestParseFrame(t *testing.T) {
	f, err := ParseFrame([]byte(turnFrame))
	if err != nil {
		t.Fatalf("ParseFrame: %v", err)
	}
	if f.Phase() != PhaseDeploy {
		t.Errorf("Phase() = %d, want %d", f.Phase(), PhaseDeploy)
	}
	if f.Turn() != 3 {
		t.Errorf("Turn() = %d, want 3", f.Turn())
	}
	if f.ActionFrame() != -1 {
		t.Errorf("ActionFrame() = %d, want -1", f.ActionFrame())
	}
	if got := f.Resource(Matter); got != 12.5 {
		t.Errorf("Resource(Matter) = %v, want 12.5", got)
	}
	if got := f.Resource(Tempo); got != 9 {
		t.Errorf("Resource(Tempo) = %v, want 9", got)
	}
	if got := f.Health(); got != 27 {
		t.Errorf("Health() = %v, want 27", got)
	}

	walls := f.P1Units[Wall]
	if len(walls) != 2 || walls[1].Cell != (Cell{1, 12}) || walls[1].ID != "2" {
		t.Errorf("p1 walls = %+v", walls)
	}
	turrets := f.P2Units[Turret]
	if len(turrets) != 1 || turrets[0].Cell != (Cell{14, 26}) || turrets[0].Health != 75 {
		t.Errorf("p2 turrets = %+v", turrets)
	}
}

func TestParseFrameRejectsShortTurnInfo(t *testing.T) {
	if _, err := ParseFrame([]byte(`{"turnInfo": [0]}`)); err == nil {
		t.Error("expected error for one-element turnInfo")
	}
}

func TestUnitRecordNumericID(t *testing.T) {
	var u UnitRecord
	if err := json.Unmarshal([]byte(`[3, 10, 15.5, 42]`), &u); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if u.ID != "42" {
		t.Errorf("ID = %q, want 42", u.ID)
	}
}

func TestParseBreaches(t *testing.T) {
	raw := []json.RawMessage{
		json.RawMessage(`[[2, 13], 1, 3, "91", 2]`),
		json.RawMessage(`[[20, 20], 1, 3, "92", 1]`),
		json.RawMessage(`[[3, 13], 1, 4, "93", 2]`),
	}
	events, err := ParseBreaches(raw)
	if err != nil {
		t.Fatalf("ParseBreaches: %v", err)
	}
	want := []BreachEvent{
		{Location: Cell{2, 13}, SelfUnit: false},
		{Location: Cell{20, 20}, SelfUnit: true},
		{Location: Cell{3, 13}, SelfUnit: false},
	}
	if len(events) != len(want) {
		t.Fatalf("got %d events, want %d", len(events), len(want))
	}
	for i := range want {
		if events[i] != want[i] {
			t.Errorf("event %d = %+v, want %+v", i, events[i], want[i])
		}
	}
}

func TestParseBreachesAllOrNothing(t *testing.T) {
	tests := []struct {
		name string
		raw  []json.RawMessage
	}{
		{"not an array", []json.RawMessage{json.RawMessage(`{"x": 1}`)}},
		{"too short", []json.RawMessage{json.RawMessage(`[[1, 12], 1, 3]`)}},
		{"bad location", []json.RawMessage{json.RawMessage(`[[1], 1, 3, "1", 2]`)}},
		{"bad owner", []json.RawMessage{json.RawMessage(`[[1, 12], 1, 3, "1", "two"]`)}},
		{"good then bad", []json.RawMessage{
			json.RawMessage(`[[1, 12], 1, 3, "1", 2]`),
			json.RawMessage(`[[1, 12], 1]`),
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			events, err := ParseBreaches(tc.raw)
			if !errors.Is(err, ErrMalformedBreach) {
				t.Errorf("err = %v, want ErrMalformedBreach", err)
			}
			if events != nil {
				t.Errorf("events = %+v, want nil", events)
			}
		})
	}
}
