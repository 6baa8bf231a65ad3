package rules

import (
	"log/slog"

	"github.com/nstehr/rampart/model"
)

func ActionOpeningSupport(env RuleEnv) error {
	logPlacements("opening support", env.Defense.Opening(env.Board))
	return nil
}

func ActionBaselineDefense(env RuleEnv) error {
	logPlacements("baseline defense", env.Defense.Baseline(env.Board))
	return nil
}

func ActionRightReinforcement(env RuleEnv) error {
	logPlacements("right reinforcement", env.Defense.Right(env.Board))
	return nil
}

func ActionLeftReinforcement(env RuleEnv) error {
	slog.Debug("left flank under pressure", "averageBreachX", env.AverageBreachX(), "breaches", env.BreachCount())
	logPlacements("left reinforcement", env.Defense.Left(env.Board))
	return nil
}

func ActionReactiveRebuild(env RuleEnv) error {
	logPlacements("reactive rebuild", env.Defense.ReactiveRebuild(env.Board, env.State.Breaches))
	return nil
}

func ActionSupportLine(env RuleEnv) error {
	logPlacements("support line", env.Defense.SupportLine(env.Board))
	return nil
}

func ActionOpeningRush(env RuleEnv) error {
	n, err := env.Offense.Rush(env.Board)
	if err != nil {
		return err
	}
	slog.Debug("opening rush", "fast", n)
	return nil
}

func ActionSplashVolley(env RuleEnv) error {
	n, err := env.Offense.Volley(env.Board, env.State.Offense)
	if err != nil {
		return err
	}
	slog.Debug("splash volley", "splash", n, "tempoLeft", env.Tempo())
	return nil
}

func ActionFastBurst(env RuleEnv) error {
	n, err := env.Offense.Burst(env.Board, env.State.Offense)
	if err != nil {
		return err
	}
	slog.Debug("fast burst", "fast", n, "tempoLeft", env.Tempo())
	return nil
}

// logPlacements summarises a planner pass. Refusals are expected every turn
// once the layout is built, so they only show at debug level.
func logPlacements(what string, placements []model.Placement) {
	placed, blocked, unaffordable := 0, 0, 0
	for _, p := range placements {
		placed += p.Placed
		switch p.Outcome {
		case model.Blocked:
			blocked++
		case model.Unaffordable:
			unaffordable++
		}
	}
	slog.Debug(what, "placed", placed, "blocked", blocked, "unaffordable", unaffordable)
}
