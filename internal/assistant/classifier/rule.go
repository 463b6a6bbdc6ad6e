package classifier

import (
	"context"

	"github.com/orderchat-poc/server/internal/assistant/fallback"
	"github.com/orderchat-poc/server/internal/assistant/model"
)

// Rule is the offline provider: it runs every utterance through the keyword
// fallback resolver and never errors. Selected with CLASSIFIER_PROVIDER=rule.
type Rule struct{}

func (Rule) Classify(ctx context.Context, utterance string, history []model.Turn) (model.Intent, error) {
	if action, ok := fallback.Resolve(utterance); ok {
		return model.Intent{Action: action}, nil
	}
	return model.Intent{Action: model.ActionUnrecognized}, nil
}

var _ Classifier = Rule{}
