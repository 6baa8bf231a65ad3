package agent

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/nstehr/rampart/board"
	"github.com/nstehr/rampart/ipc"
	"github.com/nstehr/rampart/journal"
	"github.com/nstehr/rampart/model"
	"github.com/nstehr/rampart/rules"
	"github.com/nstehr/rampart/strategy"
)

// ErrNoConfig is returned for turn frames that arrive before the config
// frame: without the unit table nothing can be priced or placed.
var ErrNoConfig = errors.New("no game config received")

// Recorder receives a copy of what happened each turn. *journal.Journal
// and journal.Nop implement it.
type Recorder interface {
	RecordTurn(t journal.Turn)
	RecordBreach(turn, frame int, c model.Cell)
	RecordFrame(kind string, turn, frame int, payload []byte)
}

type frameKey struct {
	turn, frame int
}

// Agent owns the decision-making for a single game.
type Agent struct {
	Doctrine rules.Doctrine
	Engine   *rules.Engine
	State    *strategy.State
	Journal  Recorder

	table *model.ConfigTable
	prev  *turnSnapshot

	// Action frames seen in the current turn, so a repeated report is
	// counted once.
	seenTurn int
	seen     map[frameKey]bool
}

func New(d rules.Doctrine, engine *rules.Engine, rec Recorder) *Agent {
	if rec == nil {
		rec = journal.Nop{}
	}
	return &Agent{
		Doctrine: d,
		Engine:   engine,
		State:    strategy.NewState(),
		Journal:  rec,
		seenTurn: -1,
		seen:     make(map[frameKey]bool),
	}
}

// HandleConfig loads the unit table. The engine expects no reply.
func (a *Agent) HandleConfig(env ipc.Envelope) (*ipc.Submission, error) {
	table, err := model.ParseConfig(env.Data)
	if err != nil {
		return nil, fmt.Errorf("config frame: %w", err)
	}
	a.table = table

	slog.Info("game config received",
		"doctrine", a.Doctrine.Name,
		"turret_damage", table.Damage(model.Turret),
		"turret_range", table.Range(model.Turret),
		"lanes", a.Doctrine.Lanes(),
	)
	return nil, nil
}

// HandleTurn plans one turn and returns the submission for it.
func (a *Agent) HandleTurn(env ipc.Envelope) (*ipc.Submission, error) {
	if a.table == nil {
		return nil, ErrNoConfig
	}
	f, err := model.ParseFrame(env.Data)
	if err != nil {
		return nil, fmt.Errorf("turn frame: %w", err)
	}

	a.State.Phase = a.State.Phase.Advance(f.Turn())
	snap := takeSnapshot(f, a.State.Phase)
	events := detectEvents(snap, a.prev)
	a.prev = &snap
	for _, e := range events {
		slog.Info("turn event", "turn", e.Turn, "kind", e.Kind, "detail", e.Detail)
	}

	b := board.New(a.table, f)
	matter, tempo := b.Resource(model.Matter), b.Resource(model.Tempo)

	fired := a.Engine.Evaluate(rules.RuleEnv{
		Board:   b,
		State:   a.State,
		Defense: a.Doctrine.Defense(),
		Offense: a.Doctrine.Offense(b, a.table.Damage(model.Turret)),
	})

	spawns := b.Spawns()
	sub := a.submission(spawns)

	refused := 0
	for _, p := range b.History() {
		if p.Outcome != model.Placed {
			refused++
		}
	}

	slog.Info("turn planned",
		"turn", f.Turn(),
		"phase", a.State.Phase,
		"offense", a.State.Offense,
		"health", f.Health(),
		"matter", matter,
		"tempo", tempo,
		"fired", fired,
		"build", len(sub.Build),
		"deploy", len(sub.Deploy),
		"refused", refused,
		"enemy_turrets", b.EnemyCount(model.Turret),
		"enemy_walls", b.EnemyCount(model.Wall),
	)

	a.Journal.RecordFrame(ipc.TypeTurn, f.Turn(), 0, env.Data)
	a.Journal.RecordTurn(journal.Turn{
		Turn:       f.Turn(),
		Matter:     matter,
		Tempo:      tempo,
		Fired:      fired,
		Placements: len(spawns),
		Events:     eventKinds(events),
	})
	return sub, nil
}

// submission splits the queued spawns into the two stacks: structures go
// in the build stack, mobile units in the deploy stack.
func (a *Agent) submission(spawns []board.Spawn) *ipc.Submission {
	sub := &ipc.Submission{}
	for _, s := range spawns {
		sp := ipc.Spawn{Shorthand: a.table.Shorthand(s.Kind), Cell: s.Cell}
		if s.Kind.Stationary() {
			sub.Build = append(sub.Build, sp)
		} else {
			sub.Deploy = append(sub.Deploy, sp)
		}
	}
	return sub
}

// HandleAction records the breaches in one action frame. A report with a
// malformed breach entry is rejected whole.
func (a *Agent) HandleAction(env ipc.Envelope) (*ipc.Submission, error) {
	f, err := model.ParseFrame(env.Data)
	if err != nil {
		return nil, fmt.Errorf("action frame: %w", err)
	}
	if len(f.Events.Breach) == 0 {
		return nil, nil
	}

	turn, frame := f.Turn(), f.ActionFrame()
	if turn < a.seenTurn {
		slog.Debug("stale action frame", "turn", turn, "frame", frame)
		return nil, nil
	}
	if turn > a.seenTurn {
		clear(a.seen)
		a.seenTurn = turn
	}
	key := frameKey{turn: turn, frame: frame}
	if a.seen[key] {
		slog.Debug("duplicate action frame", "turn", turn, "frame", frame)
		return nil, nil
	}

	events, err := model.ParseBreaches(f.Events.Breach)
	if err != nil {
		return nil, fmt.Errorf("action frame turn %d frame %d: %w", turn, frame, err)
	}
	a.seen[key] = true

	taken := 0
	for _, ev := range events {
		if ev.SelfUnit {
			continue
		}
		a.State.Breaches.Record(ev.Location)
		a.Journal.RecordBreach(turn, frame, ev.Location)
		taken++
		slog.Debug("breach recorded", "turn", turn, "frame", frame, "location", ev.Location)
	}
	if taken > 0 {
		slog.Info("breached", "turn", turn, "count", taken, "average_x", a.State.Breaches.AverageX())
	}
	a.Journal.RecordFrame(ipc.TypeAction, turn, frame, env.Data)
	return nil, nil
}

// HandleEnd logs the result. The read loop stops after it.
func (a *Agent) HandleEnd(env ipc.Envelope) (*ipc.Submission, error) {
	f, err := model.ParseFrame(env.Data)
	if err != nil {
		return nil, fmt.Errorf("end frame: %w", err)
	}
	slog.Info("game over",
		"turn", f.Turn(),
		"health", f.Health(),
		"breaches_taken", a.State.Breaches.Len(),
	)
	return nil, nil
}
