package strategy

import "testing"

func TestPhaseAdvance(t *testing.T) {
	tests := []struct {
		from Phase
		turn int
		want Phase
	}{
		{Opening, 0, Opening},
		{Opening, 1, Steady},
		{Opening, 7, Steady},
		{Steady, 0, Steady},
		{Steady, 9, Steady},
	}
	for _, tc := range tests {
		if got := tc.from.Advance(tc.turn); got != tc.want {
			t.Errorf("%s.Advance(%d) = %s, want %s", tc.from, tc.turn, got, tc.want)
		}
	}
}

func TestNewState(t *testing.T) {
	s := NewState()
	if s.Phase != Opening {
		t.Errorf("Phase = %s, want opening", s.Phase)
	}
	if s.Breaches.Len() != 0 {
		t.Errorf("Breaches.Len() = %d, want 0", s.Breaches.Len())
	}
	if s.Offense.AwaitingBurst() {
		t.Error("offense should start accumulating")
	}
}
