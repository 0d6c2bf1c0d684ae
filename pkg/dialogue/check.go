package dialogue

// CheckType discriminates check variants.
type CheckType string

const (
	// CheckHasItem passes when the player currently holds an item.
	CheckHasItem CheckType = "has_item"
)

// Check is a typed predicate gating a fork or branch.
type Check struct {
	Type   CheckType `json:"type"`
	ItemID string    `json:"item_id,omitempty"`
	Negate bool      `json:"negate,omitempty"`
}

// ItemView provides the minimal inventory lookup needed to evaluate checks.
// This avoids an import cycle with the inventory package.
type ItemView interface {
	// HasItem reports whether the item is held in a countable slot with
	// count > 0, or recorded as equipped.
	HasItem(itemID string) bool
}

// Evaluate evaluates the check against an inventory view. Unknown check
// types evaluate to false (fail closed), as does a nil view.
func (c Check) Evaluate(view ItemView) bool {
	switch c.Type {
	case CheckHasItem:
		held := view != nil && view.HasItem(c.ItemID)
		if c.Negate {
			return !held
		}
		return held
	default:
		return false
	}
}

// evalAll returns true if all checks pass (AND logic).
// An empty check list is vacuously true.
func evalAll(checks []Check, view ItemView) bool {
	for _, c := range checks {
		if !c.Evaluate(view) {
			return false
		}
	}
	return true
}
