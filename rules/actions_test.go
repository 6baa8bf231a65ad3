package rules

import (
	"errors"
	"slices"
	"testing"

	"github.com/nstehr/rampart/board"
	"github.com/nstehr/rampart/model"
	"github.com/nstehr/rampart/strategy"
)

func spawnsOf(b *board.Board, kind model.UnitKind) []model.Cell {
	var out []model.Cell
	for _, s := range b.Spawns() {
		if s.Kind == kind {
			out = append(out, s.Cell)
		}
	}
	return out
}

func TestActionBaselineDefenseCornerWall(t *testing.T) {
	table := testTable(t)
	tests := []struct {
		name string
		turn int
		want []model.Cell
	}{
		{"turn one plugs the corner", 1, []model.Cell{{X: 0, Y: 13}}},
		{"later turns skip it", 2, []model.Cell{{X: 13, Y: 3}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			// One Matter: the support and turrets are unaffordable, so the
			// first wall the baseline reaches is the only one placed.
			b := emptyBoard(table, tc.turn, 1, 0)
			env := turnEnv(table, DefaultDoctrine(), strategy.NewState(), b)
			if err := ActionBaselineDefense(env); err != nil {
				t.Fatalf("ActionBaselineDefense: %v", err)
			}
			if got := spawnsOf(b, model.Wall); !slices.Equal(got, tc.want) {
				t.Errorf("walls = %v, want %v", got, tc.want)
			}
			if n := len(b.Spawns()); n != 1 {
				t.Errorf("spawns = %d, want 1", n)
			}
		})
	}
}

func TestActionReactiveRebuild(t *testing.T) {
	table := testTable(t)
	st := strategy.NewState()
	st.Breaches.Record(model.Cell{X: 20, Y: 6})
	st.Breaches.Record(model.Cell{X: 4, Y: 9})
	b := emptyBoard(table, 6, 100, 0)

	if err := ActionReactiveRebuild(turnEnv(table, DefaultDoctrine(), st, b)); err != nil {
		t.Fatalf("ActionReactiveRebuild: %v", err)
	}
	want := []model.Cell{{X: 20, Y: 7}, {X: 4, Y: 10}}
	if got := spawnsOf(b, model.Turret); !slices.Equal(got, want) {
		t.Errorf("turrets = %v, want %v", got, want)
	}
}

func TestActionSupportLine(t *testing.T) {
	table := testTable(t)
	b := emptyBoard(table, 6, 8, 0)

	if err := ActionSupportLine(turnEnv(table, DefaultDoctrine(), strategy.NewState(), b)); err != nil {
		t.Fatalf("ActionSupportLine: %v", err)
	}
	want := []model.Cell{{X: 19, Y: 6}, {X: 20, Y: 6}}
	if got := spawnsOf(b, model.Support); !slices.Equal(got, want) {
		t.Errorf("supports = %v, want %v (8 Matter at 4 each)", got, want)
	}
}

func TestActionOffenseCycle(t *testing.T) {
	table := testTable(t)
	d := DefaultDoctrine()
	st := strategy.NewState()

	b := emptyBoard(table, 3, 0, 9)
	if err := ActionSplashVolley(turnEnv(table, d, st, b)); err != nil {
		t.Fatalf("ActionSplashVolley: %v", err)
	}
	if got := len(spawnsOf(b, model.SplashAttacker)); got != 3 {
		t.Errorf("splash = %d, want 3", got)
	}
	if !st.Offense.AwaitingBurst() {
		t.Fatal("volley should arm the burst")
	}

	b = emptyBoard(table, 4, 0, 4)
	if err := ActionFastBurst(turnEnv(table, d, st, b)); err != nil {
		t.Fatalf("ActionFastBurst: %v", err)
	}
	if got := spawnsOf(b, model.FastAttacker); len(got) != 4 || got[0] != (model.Cell{X: 13, Y: 0}) {
		t.Errorf("fast = %v, want 4 at [13,0]", got)
	}
	if st.Offense.AwaitingBurst() {
		t.Error("burst should disarm")
	}
}

func TestActionOffenseWithoutLanes(t *testing.T) {
	table := testTable(t)
	st := strategy.NewState()
	b := emptyBoard(table, 0, 0, 5)
	env := turnEnv(table, DefaultDoctrine(), st, b)
	env.Offense = strategy.OffenseScheduler{}

	actions := map[string]ActionFunc{
		"rush":   ActionOpeningRush,
		"volley": ActionSplashVolley,
		"burst":  ActionFastBurst,
	}
	for name, action := range actions {
		if err := action(env); !errors.Is(err, strategy.ErrNoCandidates) {
			t.Errorf("%s: err = %v, want ErrNoCandidates", name, err)
		}
	}
	if len(b.Spawns()) != 0 || st.Offense.AwaitingBurst() {
		t.Error("a failed wave must not place units or move the offense state")
	}
}
