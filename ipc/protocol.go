package ipc

import (
	"encoding/json"
	"fmt"
	"io"
)

// maxFrameSize caps a single line from the engine. Late-game frames with
// full boards stay well under this.
const maxFrameSize = 16 << 20

// Envelope is one engine frame tagged with its type. Data is the raw line
// so handlers can decode into whatever they need.
type Envelope struct {
	Type string
	Data json.RawMessage
}

// frameProbe decodes just enough of a frame to classify it.
type frameProbe struct {
	UnitInformation json.RawMessage `json:"unitInformation"`
	TurnInfo        []int           `json:"turnInfo"`
}

// Classify tags a raw engine line. The config frame is recognised by its
// unit table; everything else by turnInfo[0].
func Classify(line []byte) (Envelope, error) {
	var probe frameProbe
	if err := json.Unmarshal(line, &probe); err != nil {
		return Envelope{}, fmt.Errorf("classify frame: %w", err)
	}
	env := Envelope{Data: json.RawMessage(line)}
	switch {
	case probe.UnitInformation != nil:
		env.Type = TypeConfig
	case len(probe.TurnInfo) == 0:
		return Envelope{}, fmt.Errorf("classify frame: neither unitInformation nor turnInfo present")
	case probe.TurnInfo[0] == 0:
		env.Type = TypeTurn
	case probe.TurnInfo[0] == 1:
		env.Type = TypeAction
	case probe.TurnInfo[0] == 2:
		env.Type = TypeEnd
	default:
		return Envelope{}, fmt.Errorf("classify frame: unknown turnInfo phase %d", probe.TurnInfo[0])
	}
	return env, nil
}

// WriteSubmission writes the two lines the engine waits for after a turn
// frame: the build stack, then the deploy stack. Both lines go out in a
// single write so the engine never sees half a submission.
func WriteSubmission(w io.Writer, s Submission) error {
	build, err := marshalStack(s.Build)
	if err != nil {
		return fmt.Errorf("marshal build stack: %w", err)
	}
	deploy, err := marshalStack(s.Deploy)
	if err != nil {
		return fmt.Errorf("marshal deploy stack: %w", err)
	}

	payload := make([]byte, 0, len(build)+len(deploy)+2)
	payload = append(payload, build...)
	payload = append(payload, '\n')
	payload = append(payload, deploy...)
	payload = append(payload, '\n')
	if _, err := w.Write(payload); err != nil {
		return fmt.Errorf("write submission: %w", err)
	}
	return nil
}

func marshalStack(spawns []Spawn) ([]byte, error) {
	if spawns == nil {
		spawns = []Spawn{}
	}
	return json.Marshal(spawns)
}
