// Package journal keeps an optional sqlite record of a game: one row per
// turn with the rules that fired, every breach we took, and the raw turn
// frames (zstd-compressed) for offline replay.
package journal

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"
	_ "modernc.org/sqlite"

	"github.com/nstehr/rampart/model"
)

// Turn summarises one submitted turn.
type Turn struct {
	Turn       int
	Matter     float64 // before placements
	Tempo      float64
	Fired      []string
	Placements int
	Events     []string
}

// queueSize bounds the entries waiting for the writer. A game is a few
// hundred turns, so this only fills if the disk stalls.
const queueSize = 4096

type entryKind int

const (
	entryTurn entryKind = iota + 1
	entryBreach
	entryFrame
)

func (k entryKind) String() string {
	switch k {
	case entryTurn:
		return "turn"
	case entryBreach:
		return "breach"
	case entryFrame:
		return "frame"
	}
	return fmt.Sprintf("entry(%d)", int(k))
}

type entry struct {
	kind entryKind

	turn   Turn
	frame  int
	cell   model.Cell
	label  string
	packed []byte
}

// Journal writes game records from a single goroutine (Run) so the turn
// loop never waits on disk.
type Journal struct {
	db     *sql.DB
	gameID string
	enc    *zstd.Encoder

	mu      sync.RWMutex
	ch      chan entry
	closed  bool
	started bool
	done    chan struct{}
}

// Open creates or appends to the journal at path and starts a new game
// row in it.
func Open(path, doctrine string) (*Journal, error) {
	if path == "" {
		return nil, fmt.Errorf("empty journal path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	j := &Journal{
		db:     db,
		gameID: uuid.NewString(),
		enc:    enc,
		ch:     make(chan entry, queueSize),
		done:   make(chan struct{}),
	}
	_, err = db.Exec(`INSERT INTO games(id,started_at,doctrine) VALUES(?,?,?)`,
		j.gameID, time.Now().UTC().Format(time.RFC3339Nano), doctrine)
	if err != nil {
		_ = enc.Close()
		_ = db.Close()
		return nil, fmt.Errorf("insert game: %w", err)
	}
	return j, nil
}

func initPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
		"PRAGMA temp_store=MEMORY;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return err
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS games (
			id TEXT PRIMARY KEY,
			started_at TEXT NOT NULL,
			doctrine TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS turns (
			game_id TEXT NOT NULL,
			turn INTEGER NOT NULL,
			matter REAL NOT NULL,
			tempo REAL NOT NULL,
			fired TEXT NOT NULL,
			placements INTEGER NOT NULL,
			events TEXT NOT NULL DEFAULT '',
			PRIMARY KEY (game_id, turn)
		);`,
		`CREATE TABLE IF NOT EXISTS breaches (
			game_id TEXT NOT NULL,
			turn INTEGER NOT NULL,
			frame INTEGER NOT NULL,
			x INTEGER NOT NULL,
			y INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_breaches_game_turn ON breaches(game_id, turn);`,
		`CREATE TABLE IF NOT EXISTS frames (
			game_id TEXT NOT NULL,
			turn INTEGER NOT NULL,
			frame INTEGER NOT NULL,
			kind TEXT NOT NULL,
			payload BLOB NOT NULL,
			PRIMARY KEY (game_id, kind, turn, frame)
		);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

// GameID identifies this game's rows.
func (j *Journal) GameID() string { return j.gameID }

func (j *Journal) RecordTurn(t Turn) {
	j.enqueue(entry{kind: entryTurn, turn: t})
}

func (j *Journal) RecordBreach(turn, frame int, c model.Cell) {
	j.enqueue(entry{kind: entryBreach, turn: Turn{Turn: turn}, frame: frame, cell: c})
}

// RecordFrame stores a raw engine frame. kind is the frame type
// ("turn", "action").
func (j *Journal) RecordFrame(kind string, turn, frame int, payload []byte) {
	j.mu.RLock()
	defer j.mu.RUnlock()
	if j.closed {
		return
	}
	packed := j.enc.EncodeAll(payload, make([]byte, 0, len(payload)/4))
	j.send(entry{kind: entryFrame, turn: Turn{Turn: turn}, frame: frame, label: kind, packed: packed})
}

func (j *Journal) enqueue(e entry) {
	j.mu.RLock()
	defer j.mu.RUnlock()
	if j.closed {
		return
	}
	j.send(e)
}

// send queues e without blocking. Callers hold mu.
func (j *Journal) send(e entry) {
	select {
	case j.ch <- e:
	default:
		slog.Warn("journal buffer full, dropping entry", "kind", e.kind)
	}
}

// Run writes queued entries until Close. Writes in flight when ctx is
// cancelled still complete so the journal ends consistent.
func (j *Journal) Run(ctx context.Context) error {
	j.mu.Lock()
	if j.closed || j.started {
		j.mu.Unlock()
		return nil
	}
	j.started = true
	j.mu.Unlock()
	defer close(j.done)

	ctx = context.WithoutCancel(ctx)
	for e := range j.ch {
		j.write(ctx, e)
	}
	return nil
}

func (j *Journal) write(ctx context.Context, e entry) {
	var err error
	switch e.kind {
	case entryTurn:
		_, err = j.db.ExecContext(ctx,
			`INSERT OR REPLACE INTO turns(game_id,turn,matter,tempo,fired,placements,events) VALUES(?,?,?,?,?,?,?)`,
			j.gameID, e.turn.Turn, e.turn.Matter, e.turn.Tempo,
			strings.Join(e.turn.Fired, ","), e.turn.Placements, strings.Join(e.turn.Events, ","))
	case entryBreach:
		_, err = j.db.ExecContext(ctx,
			`INSERT INTO breaches(game_id,turn,frame,x,y) VALUES(?,?,?,?,?)`,
			j.gameID, e.turn.Turn, e.frame, e.cell.X, e.cell.Y)
	case entryFrame:
		_, err = j.db.ExecContext(ctx,
			`INSERT OR REPLACE INTO frames(game_id,turn,frame,kind,payload) VALUES(?,?,?,?,?)`,
			j.gameID, e.turn.Turn, e.frame, e.label, e.packed)
	}
	if err != nil {
		slog.Warn("journal write failed", "kind", e.kind, "error", err)
	}
}

// Close flushes queued entries and closes the database. Entries recorded
// after Close are dropped.
func (j *Journal) Close() error {
	j.mu.Lock()
	if j.closed {
		j.mu.Unlock()
		return nil
	}
	j.closed = true
	close(j.ch)
	started := j.started
	j.mu.Unlock()

	if started {
		<-j.done
	} else {
		for e := range j.ch {
			j.write(context.Background(), e)
		}
	}
	_ = j.enc.Close()
	return j.db.Close()
}

// Nop discards everything; it stands in when no journal path is set.
type Nop struct{}

func (Nop) RecordTurn(Turn)                      {}
func (Nop) RecordBreach(int, int, model.Cell)    {}
func (Nop) RecordFrame(string, int, int, []byte) {}
