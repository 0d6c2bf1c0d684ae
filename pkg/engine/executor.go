package engine

import (
	"context"

	"github.com/talekeep/dialogue-engine/pkg/dialogue"
	"github.com/talekeep/dialogue-engine/pkg/inventory"
)

// executeActions applies queued side effects in declaration order. Only
// give_item actions are processed; anything else is silently ignored.
func (e *Engine) executeActions(ctx context.Context, actions []dialogue.Action) {
	for _, a := range actions {
		switch a.Type {
		case dialogue.ActionGiveItem:
			e.giveItem(ctx, a)
		default:
			e.log.Debug("ignoring unknown action type", "type", a.Type)
		}
	}
}

// giveItem grants an item into the first empty slot. The grant is skipped
// when the snapshot is missing, when if_missing applies and the item is
// already held in a slot, or when the inventory is full. A grant never
// merges into an existing partial stack of the same item.
func (e *Engine) giveItem(ctx context.Context, a dialogue.Action) {
	snap := e.cachedSnapshot(ctx)
	if snap == nil {
		e.log.Warn("no inventory snapshot, skipping grant", "item_id", a.ItemID)
		return
	}

	// Pre-grant broadcast so the UI reflects current holdings, even when
	// the grant itself is skipped.
	e.notify(snap)

	if a.SkipIfHeld() && snap.HeldInSlot(a.ItemID) {
		e.log.Debug("item already held, skipping grant", "item_id", a.ItemID)
		return
	}

	idx := snap.FirstEmptySlot()
	if idx < 0 {
		e.log.Warn("inventory full, dropping grant", "item_id", a.ItemID)
		return
	}

	updated := snap.Clone()
	updated.Slots[idx] = inventory.Slot{ItemID: a.ItemID, Count: a.GrantAmount()}

	// Fire-and-forget: a failed write is logged, never surfaced.
	if err := e.inv.WriteSlots(ctx, updated.Slots); err != nil {
		e.log.Error("failed to persist inventory", "item_id", a.ItemID, "error", err)
	}

	e.setSnapshot(updated)
	e.notify(updated)
}

func (e *Engine) notify(snap *inventory.Snapshot) {
	if e.notifier != nil {
		e.notifier.InventoryUpdated(snap)
	}
}
