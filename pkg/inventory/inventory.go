// Package inventory models the inventory snapshot exchanged with the
// external inventory service.
package inventory

import (
	"encoding/json"
	"strings"
)

// Slot is one countable inventory position. An empty slot has an empty
// item id or a non-positive count.
type Slot struct {
	ItemID string `json:"item_id"`
	Count  int    `json:"count"`
}

// Empty reports whether the slot holds nothing grantable-over.
func (s Slot) Empty() bool {
	return s.ItemID == "" || s.Count <= 0
}

// Snapshot is the full inventory state at a point in time: a slot array
// plus arbitrary extra keys. Keys whose name contains "equipped" record
// equipped items by id.
type Snapshot struct {
	Slots []Slot
	Extra map[string]any
}

// HasItem reports whether the item is held in a slot with count > 0 or
// recorded as equipped. A nil snapshot holds nothing.
func (s *Snapshot) HasItem(itemID string) bool {
	if s == nil {
		return false
	}
	return s.HeldInSlot(itemID) || s.IsEquipped(itemID)
}

// HeldInSlot reports slot possession only, ignoring equipped keys.
func (s *Snapshot) HeldInSlot(itemID string) bool {
	if s == nil {
		return false
	}
	for _, slot := range s.Slots {
		if slot.ItemID == itemID && slot.Count > 0 {
			return true
		}
	}
	return false
}

// IsEquipped reports whether any extra key containing "equipped"
// (case-insensitive) holds the item id.
func (s *Snapshot) IsEquipped(itemID string) bool {
	if s == nil || itemID == "" {
		return false
	}
	for key, val := range s.Extra {
		if !strings.Contains(strings.ToLower(key), "equipped") {
			continue
		}
		if id, ok := val.(string); ok && id == itemID {
			return true
		}
	}
	return false
}

// FirstEmptySlot returns the index of the first empty slot, or -1 when the
// inventory is full.
func (s *Snapshot) FirstEmptySlot() int {
	if s == nil {
		return -1
	}
	for i, slot := range s.Slots {
		if slot.Empty() {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy of the snapshot.
func (s *Snapshot) Clone() *Snapshot {
	if s == nil {
		return nil
	}
	out := &Snapshot{}
	if s.Slots != nil {
		out.Slots = make([]Slot, len(s.Slots))
		copy(out.Slots, s.Slots)
	}
	if s.Extra != nil {
		out.Extra = make(map[string]any, len(s.Extra))
		for k, v := range s.Extra {
			out.Extra[k] = v
		}
	}
	return out
}

// UnmarshalJSON decodes the wire shape: a "slots" array plus arbitrary
// sibling keys, which are preserved in Extra.
func (s *Snapshot) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	s.Slots = nil
	s.Extra = nil

	if slotsRaw, ok := raw["slots"]; ok {
		if err := json.Unmarshal(slotsRaw, &s.Slots); err != nil {
			return err
		}
		delete(raw, "slots")
	}

	if len(raw) > 0 {
		s.Extra = make(map[string]any, len(raw))
		for k, v := range raw {
			var val any
			if err := json.Unmarshal(v, &val); err != nil {
				return err
			}
			s.Extra[k] = val
		}
	}
	return nil
}

// MarshalJSON encodes the snapshot back to the wire shape.
func (s Snapshot) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(s.Extra)+1)
	for k, v := range s.Extra {
		out[k] = v
	}
	slots := s.Slots
	if slots == nil {
		slots = []Slot{}
	}
	out["slots"] = slots
	return json.Marshal(out)
}
