package classifier

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orderchat-poc/server/internal/assistant/model"
)

func TestDecodeIntentStrictJSON(t *testing.T) {
	intent, err := DecodeIntent(`{"action":"addItem","product":"shirts","quantity":2}`)
	require.NoError(t, err)
	assert.Equal(t, model.ActionAddItem, intent.Action)
	assert.Equal(t, "shirts", intent.Product)
	assert.Equal(t, 2, intent.Quantity)
}

func TestDecodeIntentSalvagesWrappedObject(t *testing.T) {
	raw := "Sure! Here is the result:\n```json\n{\"action\": \"viewCart\"}\n```"
	intent, err := DecodeIntent(raw)
	require.NoError(t, err)
	assert.Equal(t, model.ActionViewCart, intent.Action)
}

func TestDecodeIntentQuantityAsString(t *testing.T) {
	intent, err := DecodeIntent(`{"action":"removeItem","product":"jeans","quantity":"3"}`)
	require.NoError(t, err)
	assert.Equal(t, 3, intent.Quantity)
}

func TestDecodeIntentAddItemDefaultsQuantity(t *testing.T) {
	intent, err := DecodeIntent(`{"action":"addToCart","product":"caps"}`)
	require.NoError(t, err)
	assert.Equal(t, model.ActionAddItem, intent.Action)
	assert.Equal(t, 1, intent.Quantity)
}

func TestDecodeIntentLegacyQuerySlot(t *testing.T) {
	intent, err := DecodeIntent(`{"action":"searchProducts","query":"shirts"}`)
	require.NoError(t, err)
	assert.Equal(t, model.ActionSearchCatalog, intent.Action)
	assert.Equal(t, "shirts", intent.Product)
}

func TestDecodeIntentUnknownActionNormalized(t *testing.T) {
	intent, err := DecodeIntent(`{"action":"danceParty"}`)
	require.NoError(t, err)
	assert.Equal(t, model.ActionUnrecognized, intent.Action)
}

func TestDecodeIntentMalformedJSON(t *testing.T) {
	_, err := DecodeIntent("this is not json at all")
	assert.Error(t, err)

	_, err = DecodeIntent(`{"action": "viewCart"`)
	assert.Error(t, err)
}

func TestRuleProviderNeverErrors(t *testing.T) {
	cls := Rule{}
	ctx := context.Background()

	intent, err := cls.Classify(ctx, "show me your products", nil)
	require.NoError(t, err)
	assert.Equal(t, model.ActionBrowseCatalog, intent.Action)

	intent, err = cls.Classify(ctx, "gibberish with no keywords", nil)
	require.NoError(t, err)
	assert.Equal(t, model.ActionUnrecognized, intent.Action)
}

func TestNewSelectsRuleProvider(t *testing.T) {
	cls, err := New(context.Background(), Config{Model: model.ClassifierConfig{Provider: "rule"}})
	require.NoError(t, err)
	assert.IsType(t, Rule{}, cls)
}

func TestNewRejectsUnknownProvider(t *testing.T) {
	_, err := New(context.Background(), Config{Model: model.ClassifierConfig{Provider: "psychic"}})
	assert.Error(t, err)
}

func TestParseTimeoutDefaults(t *testing.T) {
	assert.Equal(t, 10*time.Second, parseTimeout(""))
	assert.Equal(t, 10*time.Second, parseTimeout("nonsense"))
	assert.Equal(t, 10*time.Second, parseTimeout("-5s"))
	assert.Equal(t, 3*time.Second, parseTimeout("3s"))
}

func TestBuildContextSkipsStructuredTurns(t *testing.T) {
	history := []model.Turn{
		{Speaker: model.SpeakerUser, Content: "show products"},
		{Speaker: model.SpeakerAssistant, Content: "<table></table>", Structured: true},
		{Speaker: model.SpeakerAssistant, Content: "Anything else?"},
	}
	got := buildContext(history, "add 2 shirts", 10)
	assert.Contains(t, got, "UserMessage(show products)")
	assert.Contains(t, got, "AssistantMessage(Anything else?)")
	assert.NotContains(t, got, "<table>")
	assert.Contains(t, got, "<current_message_to_analyze>\nUserMessage(add 2 shirts)")
}

func TestBuildContextBoundsHistory(t *testing.T) {
	history := []model.Turn{
		{Speaker: model.SpeakerUser, Content: "first"},
		{Speaker: model.SpeakerUser, Content: "second"},
		{Speaker: model.SpeakerUser, Content: "third"},
	}
	got := buildContext(history, "now", 2)
	assert.NotContains(t, got, "UserMessage(first)")
	assert.Contains(t, got, "UserMessage(second)")
	assert.Contains(t, got, "UserMessage(third)")
}
