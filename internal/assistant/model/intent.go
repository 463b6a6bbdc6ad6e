package model

import "strings"

// Action is the closed vocabulary of things the assistant can do with an
// utterance. Anything outside the vocabulary normalizes to ActionUnrecognized
// before dispatch; the dispatcher never branches on an unknown tag.
type Action string

const (
	ActionBrowseCatalog Action = "browseCatalog"
	ActionSearchCatalog Action = "searchCatalog"
	ActionAddItem       Action = "addItem"
	ActionRemoveItem    Action = "removeItem"
	ActionViewCart      Action = "viewCart"
	ActionCheckout      Action = "checkout"
	ActionHelp          Action = "help"
	ActionUnrecognized  Action = "unrecognized"
)

// ParseAction maps a raw classifier tag onto the closed vocabulary. Wire
// classifiers have emitted several generations of tags for the same actions
// (showProducts/browseCatalog, addToCart/addItem, ...); all of them are
// accepted here so the rest of the system only ever sees canonical actions.
func ParseAction(v string) Action {
	switch strings.TrimSpace(v) {
	case string(ActionBrowseCatalog), "showProducts":
		return ActionBrowseCatalog
	case string(ActionSearchCatalog), "searchProducts":
		return ActionSearchCatalog
	case string(ActionAddItem), "addToCart":
		return ActionAddItem
	case string(ActionRemoveItem), "removeFromCart":
		return ActionRemoveItem
	case string(ActionViewCart), "showCart":
		return ActionViewCart
	case string(ActionCheckout):
		return ActionCheckout
	case string(ActionHelp):
		return ActionHelp
	default:
		return ActionUnrecognized
	}
}

// Intent is the structured result of classifying one utterance: an action
// plus the slots relevant to it. Intents are created per utterance and
// discarded after dispatch.
type Intent struct {
	Action   Action `json:"action"`
	Product  string `json:"product,omitempty"`
	Quantity int    `json:"quantity,omitempty"`
}
