package fallback

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/orderchat-poc/server/internal/assistant/model"
)

func TestResolveKeywords(t *testing.T) {
	cases := []struct {
		utterance string
		want      model.Action
	}{
		{"show me your products", model.ActionBrowseCatalog},
		{"any new items?", model.ActionBrowseCatalog},
		{"what's in my cart", model.ActionViewCart},
		{"empty my basket", model.ActionViewCart},
		{"checkout please", model.ActionCheckout},
		{"i want to buy this", model.ActionCheckout},
		{"help", model.ActionHelp},
		{"HELP ME", model.ActionHelp},
	}
	for _, tc := range cases {
		action, ok := Resolve(tc.utterance)
		assert.True(t, ok, "utterance %q", tc.utterance)
		assert.Equal(t, tc.want, action, "utterance %q", tc.utterance)
	}
}

// Multi-keyword utterances must resolve by priority order, first match wins.
func TestResolvePriorityOrder(t *testing.T) {
	action, ok := Resolve("help me buy a product")
	assert.True(t, ok)
	assert.Equal(t, model.ActionBrowseCatalog, action)

	action, ok = Resolve("help me checkout my cart")
	assert.True(t, ok)
	assert.Equal(t, model.ActionViewCart, action)

	action, ok = Resolve("help me buy")
	assert.True(t, ok)
	assert.Equal(t, model.ActionCheckout, action)
}

func TestResolveMissIsTerminal(t *testing.T) {
	action, ok := Resolve("sing me a song")
	assert.False(t, ok)
	assert.Equal(t, model.ActionUnrecognized, action)

	_, ok = Resolve("")
	assert.False(t, ok)
}
