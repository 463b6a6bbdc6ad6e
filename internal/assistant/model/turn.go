package model

import "time"

// Speaker identifies the author of a transcript turn.
type Speaker string

const (
	SpeakerUser      Speaker = "user"
	SpeakerAssistant Speaker = "assistant"
)

// Turn is one immutable entry in the conversation transcript. The transcript
// is append-only for the lifetime of a session; IDs increase in creation order.
type Turn struct {
	ID      int64   `json:"id"`
	Speaker Speaker `json:"speaker"`
	Content string  `json:"content"`
	// Structured marks Content as pre-rendered markup (e.g. a result table)
	// that the renderer embeds as-is instead of escaping.
	Structured bool      `json:"structured"`
	CreatedAt  time.Time `json:"created_at"`
}

// Clock returns the display timestamp for the turn (hours:minutes).
func (t Turn) Clock() string {
	return t.CreatedAt.Format("15:04")
}
