// Package fallback is the rule-based backstop used when intent classification
// fails or comes back unrecognized.
package fallback

import (
	"strings"

	"github.com/orderchat-poc/server/internal/assistant/model"
)

// Resolve performs case-insensitive substring matching over the raw utterance.
// Rules are evaluated in a fixed priority order and the first match wins, so
// multi-keyword utterances like "help me buy a product" resolve
// deterministically. The second return is false when no rule matched; that is
// a terminal outcome for the caller, not an action to re-dispatch.
func Resolve(raw string) (model.Action, bool) {
	m := strings.ToLower(raw)
	switch {
	case containsAny(m, "product", "item"):
		return model.ActionBrowseCatalog, true
	case containsAny(m, "cart", "basket"):
		return model.ActionViewCart, true
	case containsAny(m, "checkout", "buy"):
		return model.ActionCheckout, true
	case strings.Contains(m, "help"):
		return model.ActionHelp, true
	}
	return model.ActionUnrecognized, false
}

func containsAny(s string, needles ...string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
