package rules

import "fmt"

// CompileDoctrine generates the turn's rule set from a doctrine.
// All conditions are built via fmt.Sprintf with interpolated values, so
// the compiler never generates invalid expr.
//
// Defense rules run first and never block each other; the offense rules
// share one exclusive category so a turn launches at most one wave.
func CompileDoctrine(d Doctrine) []*Rule {
	d.Validate()
	var rules []*Rule

	// --- Defense ---

	rules = append(rules, &Rule{
		Name:         "opening-support",
		Priority:     1000,
		Category:     "defense",
		ConditionSrc: `Opening()`,
		Action:       ActionOpeningSupport,
	})

	rules = append(rules, &Rule{
		Name:         "baseline-defense",
		Priority:     900,
		Category:     "defense",
		ConditionSrc: `Steady()`,
		Action:       ActionBaselineDefense,
	})

	rules = append(rules, &Rule{
		Name:         "right-reinforcement",
		Priority:     800,
		Category:     "defense",
		ConditionSrc: `Steady()`,
		Action:       ActionRightReinforcement,
	})

	rules = append(rules, &Rule{
		Name:         "left-reinforcement",
		Priority:     700,
		Category:     "defense",
		ConditionSrc: fmt.Sprintf(`Steady() && BreachCount() > 0 && AverageBreachX() <= %d`, d.LeftBreachX),
		Action:       ActionLeftReinforcement,
	})

	if d.ReactiveRebuild {
		rules = append(rules, &Rule{
			Name:         "reactive-rebuild",
			Priority:     650,
			Category:     "defense",
			ConditionSrc: `Steady() && BreachCount() > 0`,
			Action:       ActionReactiveRebuild,
		})
	}

	if d.SupportLine {
		rules = append(rules, &Rule{
			Name:         "support-line",
			Priority:     600,
			Category:     "defense",
			ConditionSrc: `Steady()`,
			Action:       ActionSupportLine,
		})
	}

	// --- Offense ---

	rules = append(rules, &Rule{
		Name:         "opening-rush",
		Priority:     500,
		Category:     "offense",
		Exclusive:    true,
		ConditionSrc: `Opening()`,
		Action:       ActionOpeningRush,
	})

	rules = append(rules, &Rule{
		Name:         "splash-volley",
		Priority:     400,
		Category:     "offense",
		Exclusive:    true,
		ConditionSrc: fmt.Sprintf(`Steady() && !AwaitingBurst() && Tempo() >= %g`, d.SplashTempo),
		Action:       ActionSplashVolley,
	})

	rules = append(rules, &Rule{
		Name:         "fast-burst",
		Priority:     390,
		Category:     "offense",
		Exclusive:    true,
		ConditionSrc: fmt.Sprintf(`Steady() && AwaitingBurst() && Tempo() >= %g`, d.FastTempo),
		Action:       ActionFastBurst,
	})

	return rules
}
