package strategy_test

import (
	"errors"
	"testing"

	"github.com/nstehr/rampart/model"
	"github.com/nstehr/rampart/strategy"
	"github.com/nstehr/rampart/strategy/mocks"
	"go.uber.org/mock/gomock"
)

var (
	laneA = model.Cell{X: 13, Y: 0}
	laneB = model.Cell{X: 14, Y: 0}
)

func expectPaths(paths *mocks.MockPathQuerier, threats map[model.Cell]int) {
	paths.EXPECT().PathToEdge(laneA).Return([]model.Cell{laneA, {X: 13, Y: 1}, {X: 13, Y: 2}}, nil).AnyTimes()
	paths.EXPECT().PathToEdge(laneB).Return([]model.Cell{laneB, {X: 14, Y: 1}, {X: 14, Y: 2}}, nil).AnyTimes()
	paths.EXPECT().AttackerCount(gomock.Any()).DoAndReturn(func(c model.Cell) (int, error) {
		return threats[c], nil
	}).AnyTimes()
}

func TestLeastDamagePicksThreatFreeLane(t *testing.T) {
	ctrl := gomock.NewController(t)
	paths := mocks.NewMockPathQuerier(ctrl)
	expectPaths(paths, map[model.Cell]int{{X: 13, Y: 2}: 1})

	r := strategy.RiskEstimator{Paths: paths, TurretDamage: 4}
	got, err := r.LeastDamage([]model.Cell{laneA, laneB})
	if err != nil {
		t.Fatalf("LeastDamage: %v", err)
	}
	if got != laneB {
		t.Errorf("LeastDamage = %v, want %v", got, laneB)
	}

	scores, err := r.Scores([]model.Cell{laneA, laneB})
	if err != nil {
		t.Fatalf("Scores: %v", err)
	}
	if scores[0] != 4 || scores[1] != 0 {
		t.Errorf("Scores = %v, want [4 0]", scores)
	}
}

func TestLeastDamageTieGoesToFirst(t *testing.T) {
	ctrl := gomock.NewController(t)
	paths := mocks.NewMockPathQuerier(ctrl)
	expectPaths(paths, map[model.Cell]int{{X: 13, Y: 1}: 2, {X: 14, Y: 2}: 2})

	r := strategy.RiskEstimator{Paths: paths, TurretDamage: 4}
	for _, order := range [][]model.Cell{{laneA, laneB}, {laneB, laneA}} {
		got, err := r.LeastDamage(order)
		if err != nil {
			t.Fatalf("LeastDamage: %v", err)
		}
		if got != order[0] {
			t.Errorf("LeastDamage(%v) = %v, want first candidate", order, got)
		}
	}
}

func TestLeastDamageCountsEveryAttacker(t *testing.T) {
	ctrl := gomock.NewController(t)
	paths := mocks.NewMockPathQuerier(ctrl)
	// A: 3 hits total, B: 2 hits on one cell.
	expectPaths(paths, map[model.Cell]int{{X: 13, Y: 1}: 1, {X: 13, Y: 2}: 2, {X: 14, Y: 1}: 2})

	r := strategy.RiskEstimator{Paths: paths, TurretDamage: 4}
	got, err := r.LeastDamage([]model.Cell{laneA, laneB})
	if err != nil {
		t.Fatalf("LeastDamage: %v", err)
	}
	if got != laneB {
		t.Errorf("LeastDamage = %v, want %v", got, laneB)
	}
}

func TestLeastDamagePropagatesPathError(t *testing.T) {
	ctrl := gomock.NewController(t)
	paths := mocks.NewMockPathQuerier(ctrl)
	blocked := errors.New("start blocked")
	paths.EXPECT().PathToEdge(laneA).Return(nil, blocked)

	r := strategy.RiskEstimator{Paths: paths, TurretDamage: 4}
	if _, err := r.LeastDamage([]model.Cell{laneA, laneB}); !errors.Is(err, blocked) {
		t.Errorf("err = %v, want wrapped path error", err)
	}
}

func TestLeastDamagePropagatesAttackerError(t *testing.T) {
	ctrl := gomock.NewController(t)
	paths := mocks.NewMockPathQuerier(ctrl)
	boom := errors.New("unknown cell")
	paths.EXPECT().PathToEdge(laneA).Return([]model.Cell{laneA}, nil)
	paths.EXPECT().AttackerCount(laneA).Return(0, boom)

	r := strategy.RiskEstimator{Paths: paths, TurretDamage: 4}
	if _, err := r.LeastDamage([]model.Cell{laneA}); !errors.Is(err, boom) {
		t.Errorf("err = %v, want wrapped attacker error", err)
	}
}

func TestLeastDamageNoCandidates(t *testing.T) {
	ctrl := gomock.NewController(t)
	paths := mocks.NewMockPathQuerier(ctrl)

	r := strategy.RiskEstimator{Paths: paths, TurretDamage: 4}
	if _, err := r.LeastDamage(nil); !errors.Is(err, strategy.ErrNoCandidates) {
		t.Errorf("err = %v, want ErrNoCandidates", err)
	}
}
