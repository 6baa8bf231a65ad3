package strategy

import (
	"fmt"

	"github.com/nstehr/rampart/model"
)

// maxWave bounds every "place while placeable" loop. The board stops us
// long before this unless a unit costs nothing.
const maxWave = 1000

// OffenseScheduler launches attacker waves from the front cell. With a
// single lane the front is fixed; with several, Risk picks the lane whose
// path takes the least turret fire.
type OffenseScheduler struct {
	Lanes []model.Cell
	Risk  RiskEstimator
}

// Front returns the cell waves are launched from this turn.
func (o OffenseScheduler) Front() (model.Cell, error) {
	switch len(o.Lanes) {
	case 0:
		return model.Cell{}, ErrNoCandidates
	case 1:
		return o.Lanes[0], nil
	}
	front, err := o.Risk.LeastDamage(o.Lanes)
	if err != nil {
		return model.Cell{}, fmt.Errorf("pick attack lane: %w", err)
	}
	return front, nil
}

// Rush spends the opening allotment on fast attackers. It does not touch
// the offense state.
func (o OffenseScheduler) Rush(s Snapshot) (int, error) {
	front, err := o.Front()
	if err != nil {
		return 0, err
	}
	return flood(s, model.FastAttacker, front), nil
}

// Volley releases the saved-up splash wave and arms the follow-up burst.
func (o OffenseScheduler) Volley(s Snapshot, st *OffenseState) (int, error) {
	front, err := o.Front()
	if err != nil {
		return 0, err
	}
	n := flood(s, model.SplashAttacker, front)
	st.awaitingBurst = true
	return n, nil
}

// Burst sends the fast wave that follows a volley and goes back to
// accumulating.
func (o OffenseScheduler) Burst(s Snapshot, st *OffenseState) (int, error) {
	front, err := o.Front()
	if err != nil {
		return 0, err
	}
	n := flood(s, model.FastAttacker, front)
	st.awaitingBurst = false
	return n, nil
}

func flood(s Snapshot, kind model.UnitKind, front model.Cell) int {
	placed := 0
	for i := 0; i < maxWave && s.CanPlace(kind, front, 1); i++ {
		p := s.AttemptPlace(model.PlacementCommand{Kind: kind, Cell: front, Repeat: 1})
		if p.Placed == 0 {
			break
		}
		placed += p.Placed
	}
	return placed
}
