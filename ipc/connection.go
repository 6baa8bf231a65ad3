package ipc

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
)

// Handler processes one engine frame. A non-nil Submission is written back
// to the engine.
type Handler func(env Envelope) (*Submission, error)

// Connection is the agent's side of the engine's stdio pipe.
type Connection struct {
	r        io.Reader
	w        io.Writer
	handlers map[string]Handler
	maxFrame int
}

func NewConnection(r io.Reader, w io.Writer, handlers map[string]Handler) *Connection {
	if handlers == nil {
		handlers = make(map[string]Handler)
	}
	return &Connection{
		r:        r,
		w:        w,
		handlers: handlers,
		maxFrame: maxFrameSize,
	}
}

func (c *Connection) RegisterHandler(frameType string, handler Handler) {
	c.handlers[frameType] = handler
}

// ReadLoop dispatches frames until the end frame, EOF, a read error or ctx
// cancellation. Handler errors are logged and the loop carries on; a turn
// frame always gets a submission, empty if its handler failed, because the
// engine blocks until it reads one.
func (c *Connection) ReadLoop(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan []byte)
	var scanErr error

	// Reads from stdin cannot be interrupted, so they happen on their own
	// goroutine and the loop below selects on ctx.
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(c.r)
		sc.Buffer(make([]byte, 0, min(64*1024, c.maxFrame)), c.maxFrame)
		for sc.Scan() {
			line := append([]byte(nil), sc.Bytes()...)
			select {
			case lines <- line:
			case <-ctx.Done():
				return
			}
		}
		scanErr = sc.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				if scanErr != nil {
					return fmt.Errorf("read frame: %w", scanErr)
				}
				slog.Info("engine closed the pipe")
				return nil
			}
			done, err := c.dispatch(line)
			if err != nil {
				return err
			}
			if done {
				return nil
			}
		}
	}
}

// dispatch handles one line and reports whether the game is over.
func (c *Connection) dispatch(line []byte) (bool, error) {
	if len(line) == 0 {
		return false, nil
	}
	env, err := Classify(line)
	if err != nil {
		slog.Warn("dropping frame", "error", err)
		return false, nil
	}

	var sub *Submission
	if handler, ok := c.handlers[env.Type]; ok {
		sub, err = handler(env)
		if err != nil {
			slog.Error("handler error", "type", env.Type, "error", err)
			sub = nil
		}
	} else {
		slog.Warn("no handler for frame type", "type", env.Type)
	}

	if env.Type == TypeTurn && sub == nil {
		sub = &Submission{}
	}
	if sub != nil {
		if err := WriteSubmission(c.w, *sub); err != nil {
			return false, err
		}
		slog.Debug("sent submission", "build", len(sub.Build), "deploy", len(sub.Deploy))
	}
	return env.Type == TypeEnd, nil
}
