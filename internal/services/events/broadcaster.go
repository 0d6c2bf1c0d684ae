// Package events bridges the engine's in-process inventory signals to
// Redis Pub/Sub, so inventory changes made elsewhere (another process,
// an admin tool) reach a running engine and vice versa.
package events

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"github.com/talekeep/dialogue-engine/pkg/engine"
	"github.com/talekeep/dialogue-engine/pkg/inventory"
)

func channelFor(playerID string) string {
	return "inventory-events:" + playerID
}

// Broadcaster publishes inventory snapshots to the player's event channel.
// It implements the engine's InventoryNotifier; publishing is
// fire-and-forget.
type Broadcaster struct {
	redisClient *redis.Client
	playerID    string
	logger      *slog.Logger
}

var _ engine.InventoryNotifier = (*Broadcaster)(nil)

// NewBroadcaster creates an inventory event broadcaster for one player.
func NewBroadcaster(redisClient *redis.Client, playerID string, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		redisClient: redisClient,
		playerID:    playerID,
		logger:      logger,
	}
}

// InventoryUpdated publishes the snapshot. Failures are logged, never
// surfaced.
func (b *Broadcaster) InventoryUpdated(snap *inventory.Snapshot) {
	if snap == nil {
		return
	}

	data, err := json.Marshal(snap)
	if err != nil {
		b.logger.Error("Failed to marshal inventory event", "error", err)
		return
	}

	channel := channelFor(b.playerID)
	if err := b.redisClient.Publish(context.Background(), channel, data).Err(); err != nil {
		b.logger.Error("Failed to publish inventory event", "error", err, "channel", channel)
		return
	}

	b.logger.Debug("Inventory event published", "channel", channel)
}
