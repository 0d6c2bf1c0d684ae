package storage

import (
	"context"
	"sync"

	"github.com/talekeep/dialogue-engine/pkg/engine"
	"github.com/talekeep/dialogue-engine/pkg/inventory"
)

// MemoryInventory is an in-process inventory service for development and
// tests. Snapshots are returned as copies so callers cannot mutate the
// stored state.
type MemoryInventory struct {
	mu   sync.Mutex
	snap *inventory.Snapshot
}

var _ engine.InventoryService = (*MemoryInventory)(nil)

// NewMemoryInventory creates an inventory service seeded with the given
// snapshot. A nil seed means "no inventory recorded yet".
func NewMemoryInventory(seed *inventory.Snapshot) *MemoryInventory {
	return &MemoryInventory{snap: seed.Clone()}
}

func (m *MemoryInventory) GetInventory(ctx context.Context) (*inventory.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snap.Clone(), nil
}

func (m *MemoryInventory) WriteSlots(ctx context.Context, slots []inventory.Slot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.snap == nil {
		m.snap = &inventory.Snapshot{}
	}
	m.snap.Slots = make([]inventory.Slot, len(slots))
	copy(m.snap.Slots, slots)
	return nil
}
