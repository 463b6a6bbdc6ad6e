package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustTime(t *testing.T, v string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, v)
	require.NoError(t, err)
	return ts
}

func TestParseActionCanonicalTags(t *testing.T) {
	cases := map[string]Action{
		"browseCatalog": ActionBrowseCatalog,
		"searchCatalog": ActionSearchCatalog,
		"addItem":       ActionAddItem,
		"removeItem":    ActionRemoveItem,
		"viewCart":      ActionViewCart,
		"checkout":      ActionCheckout,
		"help":          ActionHelp,
		"unrecognized":  ActionUnrecognized,
	}
	for raw, want := range cases {
		assert.Equal(t, want, ParseAction(raw), "tag %q", raw)
	}
}

func TestParseActionLegacyWireTags(t *testing.T) {
	cases := map[string]Action{
		"showProducts":   ActionBrowseCatalog,
		"searchProducts": ActionSearchCatalog,
		"addToCart":      ActionAddItem,
		"removeFromCart": ActionRemoveItem,
		"showCart":       ActionViewCart,
	}
	for raw, want := range cases {
		assert.Equal(t, want, ParseAction(raw), "tag %q", raw)
	}
}

func TestParseActionNormalizesUnknown(t *testing.T) {
	assert.Equal(t, ActionUnrecognized, ParseAction(""))
	assert.Equal(t, ActionUnrecognized, ParseAction("unknown"))
	assert.Equal(t, ActionUnrecognized, ParseAction("makeCoffee"))
	assert.Equal(t, ActionUnrecognized, ParseAction("BROWSECATALOG"))
}

func TestParseActionTrimsWhitespace(t *testing.T) {
	assert.Equal(t, ActionCheckout, ParseAction("  checkout \n"))
}

func TestTurnClock(t *testing.T) {
	turn := Turn{CreatedAt: mustTime(t, "2026-08-28T09:05:00Z")}
	assert.Equal(t, "09:05", turn.Clock())
}
