package inventory

import (
	"encoding/json"
	"testing"
)

func TestSnapshot_HasItem(t *testing.T) {
	tests := []struct {
		name   string
		snap   *Snapshot
		itemID string
		want   bool
	}{
		{
			name:   "held in slot",
			snap:   &Snapshot{Slots: []Slot{{ItemID: "fish", Count: 2}}},
			itemID: "fish",
			want:   true,
		},
		{
			name:   "zero count does not hold",
			snap:   &Snapshot{Slots: []Slot{{ItemID: "fish", Count: 0}}},
			itemID: "fish",
			want:   false,
		},
		{
			name: "equipped key satisfies possession",
			snap: &Snapshot{
				Slots: []Slot{{ItemID: "fish", Count: 1}},
				Extra: map[string]any{"equippedRod": "basic_rod"},
			},
			itemID: "basic_rod",
			want:   true,
		},
		{
			name: "equipped match is case-insensitive on key",
			snap: &Snapshot{
				Extra: map[string]any{"EQUIPPED_HAT": "straw_hat"},
			},
			itemID: "straw_hat",
			want:   true,
		},
		{
			name: "non-equipped extra key does not count",
			snap: &Snapshot{
				Extra: map[string]any{"favorite": "basic_rod"},
			},
			itemID: "basic_rod",
			want:   false,
		},
		{
			name: "non-string equipped value does not count",
			snap: &Snapshot{
				Extra: map[string]any{"equippedCount": float64(3)},
			},
			itemID: "3",
			want:   false,
		},
		{
			name:   "nil snapshot holds nothing",
			snap:   nil,
			itemID: "fish",
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.snap.HasItem(tt.itemID); got != tt.want {
				t.Errorf("HasItem(%q) = %v, want %v", tt.itemID, got, tt.want)
			}
		})
	}
}

func TestSnapshot_HeldInSlotIgnoresEquipped(t *testing.T) {
	snap := &Snapshot{Extra: map[string]any{"equippedRod": "basic_rod"}}
	if snap.HeldInSlot("basic_rod") {
		t.Error("HeldInSlot should ignore equipped keys")
	}
	if !snap.HasItem("basic_rod") {
		t.Error("HasItem should honor equipped keys")
	}
}

func TestSnapshot_FirstEmptySlot(t *testing.T) {
	tests := []struct {
		name string
		snap *Snapshot
		want int
	}{
		{
			name: "empty item id",
			snap: &Snapshot{Slots: []Slot{{ItemID: "a", Count: 1}, {}, {ItemID: "b", Count: 1}}},
			want: 1,
		},
		{
			name: "zero count counts as empty",
			snap: &Snapshot{Slots: []Slot{{ItemID: "a", Count: 0}}},
			want: 0,
		},
		{
			name: "full inventory",
			snap: &Snapshot{Slots: []Slot{{ItemID: "a", Count: 1}}},
			want: -1,
		},
		{
			name: "no slots",
			snap: &Snapshot{},
			want: -1,
		},
		{
			name: "nil snapshot",
			snap: nil,
			want: -1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.snap.FirstEmptySlot(); got != tt.want {
				t.Errorf("FirstEmptySlot() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestSnapshot_UnmarshalWireShape(t *testing.T) {
	data := `{
		"slots": [
			{"item_id": "fish", "count": 2},
			{"item_id": "", "count": 0}
		],
		"equippedRod": "basic_rod",
		"gold": 120
	}`

	var snap Snapshot
	if err := json.Unmarshal([]byte(data), &snap); err != nil {
		t.Fatalf("Failed to unmarshal snapshot: %v", err)
	}

	if len(snap.Slots) != 2 || snap.Slots[0].ItemID != "fish" || snap.Slots[0].Count != 2 {
		t.Errorf("Unexpected slots: %+v", snap.Slots)
	}
	if snap.Extra["equippedRod"] != "basic_rod" {
		t.Errorf("Expected equipped key preserved, got %+v", snap.Extra)
	}
	if _, ok := snap.Extra["slots"]; ok {
		t.Error("Slots should not leak into Extra")
	}
	if !snap.HasItem("basic_rod") {
		t.Error("Expected equipped rod to count as held")
	}
}

func TestSnapshot_MarshalRoundTrip(t *testing.T) {
	src := Snapshot{
		Slots: []Slot{{ItemID: "fish", Count: 1}},
		Extra: map[string]any{"equippedRod": "basic_rod"},
	}

	data, err := json.Marshal(src)
	if err != nil {
		t.Fatalf("Failed to marshal snapshot: %v", err)
	}

	var got Snapshot
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Failed to unmarshal snapshot: %v", err)
	}

	if !got.HeldInSlot("fish") || !got.IsEquipped("basic_rod") {
		t.Errorf("Round trip lost data: %+v", got)
	}
}

func TestSnapshot_Clone(t *testing.T) {
	src := &Snapshot{
		Slots: []Slot{{ItemID: "fish", Count: 1}},
		Extra: map[string]any{"equippedRod": "basic_rod"},
	}

	clone := src.Clone()
	clone.Slots[0] = Slot{ItemID: "crab", Count: 9}
	clone.Extra["equippedRod"] = "other"

	if src.Slots[0].ItemID != "fish" {
		t.Error("Clone shares slots with source")
	}
	if src.Extra["equippedRod"] != "basic_rod" {
		t.Error("Clone shares extra map with source")
	}

	var nilSnap *Snapshot
	if nilSnap.Clone() != nil {
		t.Error("Expected nil clone of nil snapshot")
	}
}
