package dialogue

// ActionType discriminates action variants.
type ActionType string

const (
	// ActionGiveItem grants an item to the player at conversation end.
	ActionGiveItem ActionType = "give_item"
)

// Action is a deferred side effect, executed only once a conversation
// reaches its terminal line. Unknown action types are silently ignored.
type Action struct {
	Type   ActionType `json:"type"`
	ItemID string     `json:"item_id,omitempty"`
	Amount int        `json:"amount,omitempty"`

	// IfMissing skips the grant when the recipient already holds the item
	// in a countable slot. Defaults to true when nil.
	IfMissing *bool `json:"if_missing,omitempty"`
}

// GrantAmount returns the number of units to place, never less than one.
func (a Action) GrantAmount() int {
	if a.Amount < 1 {
		return 1
	}
	return a.Amount
}

// SkipIfHeld reports whether the grant should be skipped when the item is
// already held.
func (a Action) SkipIfHeld() bool {
	return a.IfMissing == nil || *a.IfMissing
}
