package strategy

import (
	"math"
	"testing"

	"github.com/nstehr/rampart/model"
	"pgregory.net/rapid"
)

func TestBreachMemoryAverageX(t *testing.T) {
	tests := []struct {
		name  string
		cells []model.Cell
		want  int
	}{
		{"empty", nil, 0},
		{"single left", []model.Cell{{2, 13}}, 1},
		{"two left", []model.Cell{{2, 13}, {3, 13}}, 1},
		{"single right edge", []model.Cell{{27, 13}}, 13},
		{"two right", []model.Cell{{27, 13}, {26, 12}}, 17},
		{"hot spot repeats", []model.Cell{{20, 6}, {20, 6}, {20, 6}}, 15},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var m BreachMemory
			for _, c := range tc.cells {
				m.Record(c)
			}
			if got := m.AverageX(); got != tc.want {
				t.Errorf("AverageX() = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestBreachMemoryLocationsIsCopy(t *testing.T) {
	var m BreachMemory
	m.Record(model.Cell{X: 4, Y: 9})
	locs := m.Locations()
	locs[0] = model.Cell{X: 99, Y: 99}
	if got := m.Locations()[0]; got != (model.Cell{X: 4, Y: 9}) {
		t.Errorf("memory changed through returned slice: %v", got)
	}
}

func TestFloorDiv(t *testing.T) {
	tests := []struct{ a, b, want int }{
		{5, 3, 1},
		{6, 3, 2},
		{0, 1, 0},
		{-1, 2, -1},
		{-4, 2, -2},
	}
	for _, tc := range tests {
		if got := floorDiv(tc.a, tc.b); got != tc.want {
			t.Errorf("floorDiv(%d, %d) = %d, want %d", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestBreachMemoryProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		xs := rapid.SliceOf(rapid.IntRange(0, model.ArenaSize-1)).Draw(t, "xs")

		var m BreachMemory
		sum := 0
		for i, x := range xs {
			before := m.Locations()
			m.Record(model.Cell{X: x, Y: 13})
			sum += x

			if m.Len() != i+1 {
				t.Fatalf("Len() = %d after %d records", m.Len(), i+1)
			}
			after := m.Locations()
			for j := range before {
				if after[j] != before[j] {
					t.Fatalf("entry %d changed from %v to %v", j, before[j], after[j])
				}
			}
		}

		want := int(math.Floor(float64(sum) / float64(len(xs)+1)))
		if got := m.AverageX(); got != want {
			t.Fatalf("AverageX() = %d, want floor(%d/%d) = %d", got, sum, len(xs)+1, want)
		}
	})
}
