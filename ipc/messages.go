package ipc

import (
	"encoding/json"

	"github.com/nstehr/rampart/model"
)

// Frame types the read loop dispatches on.
const (
	TypeConfig = "config"
	TypeTurn   = "turn"
	TypeAction = "action"
	TypeEnd    = "end"
)

// Spawn is one entry of a build or deploy stack, sent as
// [shorthand, x, y].
type Spawn struct {
	Shorthand string
	Cell      model.Cell
}

func (s Spawn) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{s.Shorthand, s.Cell.X, s.Cell.Y})
}

// Submission is our answer to a turn frame. Build carries structures,
// Deploy mobile units; the engine resolves the build stack first.
type Submission struct {
	Build  []Spawn
	Deploy []Spawn
}

// Len is the number of spawns across both stacks.
func (s Submission) Len() int { return len(s.Build) + len(s.Deploy) }
