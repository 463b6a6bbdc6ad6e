// Package voice adapts a platform speech-recognition capability to the chat
// input. Recognized text lands in the session's pending input; it is never
// auto-submitted.
package voice

import (
	"context"
	"strings"
	"sync"

	logx "github.com/orderchat-poc/server/pkg/logger"
)

// Recognizer is the platform capability: one blocking recognition per call,
// returning the transcript text. Cancel the context to stop listening early.
type Recognizer interface {
	Listen(ctx context.Context) (string, error)
}

// Capture drives the microphone affordance: idle -> listening -> idle, with a
// single in-flight recognition. A nil recognizer (unsupported platform)
// degrades to a disabled affordance; Toggle becomes a no-op.
type Capture struct {
	rec  Recognizer
	sink func(string)

	mu        sync.Mutex
	listening bool
	cancel    context.CancelFunc
}

// NewCapture wires a recognizer to a transcript sink, typically
// Session.SetPendingInput.
func NewCapture(rec Recognizer, sink func(string)) *Capture {
	return &Capture{rec: rec, sink: sink}
}

// Supported reports whether speech recognition is available.
func (c *Capture) Supported() bool {
	return c.rec != nil
}

// Listening reports whether a recognition is in flight.
func (c *Capture) Listening() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.listening
}

// Toggle starts a recognition, or stops the one in flight. Errors degrade
// silently: the capture returns to idle and the pending input is untouched.
func (c *Capture) Toggle(ctx context.Context) {
	if !c.Supported() {
		return
	}

	c.mu.Lock()
	if c.listening {
		cancel := c.cancel
		c.mu.Unlock()
		if cancel != nil {
			cancel()
		}
		return
	}

	listenCtx, cancel := context.WithCancel(ctx)
	c.listening = true
	c.cancel = cancel
	c.mu.Unlock()

	go c.listen(listenCtx, cancel)
}

func (c *Capture) listen(ctx context.Context, cancel context.CancelFunc) {
	defer cancel()

	text, err := c.rec.Listen(ctx)

	c.mu.Lock()
	c.listening = false
	c.cancel = nil
	c.mu.Unlock()

	if err != nil {
		logx.Warn().Err(err).Msg("speech recognition ended with error")
		return
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	if c.sink != nil {
		c.sink(text)
	}
}
