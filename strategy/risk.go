package strategy

import (
	"errors"
	"fmt"

	"github.com/nstehr/rampart/model"
)

// ErrNoCandidates is returned when asked to rank an empty lane list.
var ErrNoCandidates = errors.New("no candidate spawn cells")

// RiskEstimator ranks spawn cells by how much damage a unit would soak
// walking from each one. Every enemy structure in range of a path cell is
// charged TurretDamage, whatever it actually is.
type RiskEstimator struct {
	Paths        PathQuerier
	TurretDamage float64
}

// Scores returns the projected damage for each candidate, in input order.
func (r RiskEstimator) Scores(candidates []model.Cell) ([]float64, error) {
	scores := make([]float64, 0, len(candidates))
	for _, start := range candidates {
		path, err := r.Paths.PathToEdge(start)
		if err != nil {
			return nil, fmt.Errorf("path from %s: %w", start, err)
		}
		damage := 0.0
		for _, c := range path {
			n, err := r.Paths.AttackerCount(c)
			if err != nil {
				return nil, fmt.Errorf("attackers at %s: %w", c, err)
			}
			damage += float64(n) * r.TurretDamage
		}
		scores = append(scores, damage)
	}
	return scores, nil
}

// LeastDamage returns the candidate with the smallest score. Ties go to the
// earliest candidate.
func (r RiskEstimator) LeastDamage(candidates []model.Cell) (model.Cell, error) {
	if len(candidates) == 0 {
		return model.Cell{}, ErrNoCandidates
	}
	scores, err := r.Scores(candidates)
	if err != nil {
		return model.Cell{}, err
	}
	best := 0
	for i := 1; i < len(scores); i++ {
		if scores[i] < scores[best] {
			best = i
		}
	}
	return candidates[best], nil
}
