package classifier

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/orderchat-poc/server/internal/assistant/model"
)

// Classifier turns a raw utterance into a structured intent. Remote
// implementations may fail or return garbage; callers normalize any error to
// an unrecognized intent rather than surfacing it.
type Classifier interface {
	Classify(ctx context.Context, utterance string, history []model.Turn) (model.Intent, error)
}

// Config holds everything needed to construct a classifier provider.
type Config struct {
	APIKey          string
	BaseURL         string
	Model           model.ClassifierConfig
	Prompt          model.AssistantPromptConfig
	HistoryMaxTurns int
}

// New selects a provider by cfg.Model.Provider: "gemini", "openai" or "rule".
func New(ctx context.Context, cfg Config) (Classifier, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Model.Provider)) {
	case "gemini":
		return NewGemini(ctx, cfg)
	case "openai":
		return NewOpenAI(cfg)
	case "rule":
		return Rule{}, nil
	default:
		return nil, fmt.Errorf("unknown classifier provider %q", cfg.Model.Provider)
	}
}

// wireIntent is the loose JSON shape remote classifiers produce. Older
// classifier prompts used "query" for the search keyword; both are accepted.
type wireIntent struct {
	Action   string `json:"action"`
	Product  string `json:"product"`
	Query    string `json:"query"`
	Quantity any    `json:"quantity"`
}

// DecodeIntent parses a classifier response into a normalized Intent. A
// strict unmarshal is tried first; if the model wrapped the object in prose
// or code fences, the outermost {...} span is salvaged. Quantity is accepted
// as a JSON number or a numeric string and defaults to 1 for addItem.
func DecodeIntent(raw string) (model.Intent, error) {
	var w wireIntent
	if err := json.Unmarshal([]byte(raw), &w); err != nil {
		first := strings.Index(raw, "{")
		last := strings.LastIndex(raw, "}")
		if first < 0 || last <= first {
			return model.Intent{}, fmt.Errorf("decode intent: %w", err)
		}
		if err2 := json.Unmarshal([]byte(raw[first:last+1]), &w); err2 != nil {
			return model.Intent{}, fmt.Errorf("decode intent: %w", err2)
		}
	}

	intent := model.Intent{
		Action:   model.ParseAction(w.Action),
		Product:  strings.TrimSpace(w.Product),
		Quantity: decodeQuantity(w.Quantity),
	}
	if intent.Product == "" {
		intent.Product = strings.TrimSpace(w.Query)
	}
	if intent.Action == model.ActionAddItem && intent.Quantity < 1 {
		intent.Quantity = 1
	}
	return intent, nil
}

func decodeQuantity(v any) int {
	switch q := v.(type) {
	case float64:
		return int(q)
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(q)); err == nil {
			return n
		}
	}
	return 0
}

// parseTimeout returns the configured per-call timeout, defaulting when the
// value is missing or unparsable.
func parseTimeout(s string) time.Duration {
	const fallback = 10 * time.Second
	d, err := time.ParseDuration(strings.TrimSpace(s))
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
