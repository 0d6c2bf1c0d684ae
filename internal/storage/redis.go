package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/talekeep/dialogue-engine/pkg/engine"
	"github.com/talekeep/dialogue-engine/pkg/inventory"
)

// RedisInventory implements the inventory service against Redis. The
// snapshot for one player lives under inventory:<player_id>.
type RedisInventory struct {
	client   *redis.Client
	playerID string
	logger   *slog.Logger
}

var _ engine.InventoryService = (*RedisInventory)(nil)

// NewRedisInventory creates a Redis-backed inventory service bound to one
// player.
func NewRedisInventory(redisURL string, playerID string, logger *slog.Logger) (*RedisInventory, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	return &RedisInventory{
		client:   redis.NewClient(opt),
		playerID: playerID,
		logger:   logger,
	}, nil
}

func (r *RedisInventory) key() string {
	return "inventory:" + r.playerID
}

// GetInventory loads the player's snapshot. Returns nil when none is
// stored yet.
func (r *RedisInventory) GetInventory(ctx context.Context) (*inventory.Snapshot, error) {
	cmd := r.client.Get(ctx, r.key())
	if err := cmd.Err(); err != nil {
		if err == redis.Nil {
			r.logger.Debug("Inventory not found", "player_id", r.playerID)
			return nil, nil
		}
		r.logger.Error("Failed to load inventory", "player_id", r.playerID, "error", err)
		return nil, fmt.Errorf("failed to load inventory: %w", err)
	}

	var snap inventory.Snapshot
	if err := json.Unmarshal([]byte(cmd.Val()), &snap); err != nil {
		r.logger.Error("Failed to unmarshal inventory", "player_id", r.playerID, "error", err)
		return nil, fmt.Errorf("failed to unmarshal inventory: %w", err)
	}

	return &snap, nil
}

// WriteSlots replaces the stored slot list, preserving any equipped keys
// already recorded on the snapshot.
func (r *RedisInventory) WriteSlots(ctx context.Context, slots []inventory.Slot) error {
	snap, err := r.GetInventory(ctx)
	if err != nil {
		return err
	}
	if snap == nil {
		snap = &inventory.Snapshot{}
	}
	snap.Slots = slots

	return r.SaveSnapshot(ctx, snap)
}

// SaveSnapshot stores a full snapshot, equipped keys included. Used by
// tooling and tests to seed state.
func (r *RedisInventory) SaveSnapshot(ctx context.Context, snap *inventory.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal inventory: %w", err)
	}

	if err := r.client.Set(ctx, r.key(), string(data), 0).Err(); err != nil {
		r.logger.Error("Failed to save inventory", "player_id", r.playerID, "error", err)
		return fmt.Errorf("failed to save inventory: %w", err)
	}

	return nil
}

func (r *RedisInventory) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (r *RedisInventory) Close() error {
	if err := r.client.Close(); err != nil {
		r.logger.Error("Failed to close Redis connection", "error", err)
		return err
	}
	r.logger.Info("Redis connection closed")
	return nil
}

// GetClient returns the underlying Redis client for pub/sub wiring.
func (r *RedisInventory) GetClient() *redis.Client {
	return r.client
}

// WaitForConnection waits for Redis to become available (used during startup)
func (r *RedisInventory) WaitForConnection(ctx context.Context) error {
	maxRetries := 30
	retryDelay := 2 * time.Second

	for i := 0; i < maxRetries; i++ {
		if err := r.Ping(ctx); err != nil {
			r.logger.Debug("Redis not ready yet", "error", err, "attempt", i+1)

			select {
			case <-ctx.Done():
				return fmt.Errorf("context cancelled while waiting for redis: %w", ctx.Err())
			case <-time.After(retryDelay):
				continue
			}
		}

		r.logger.Info("Redis connection established")
		return nil
	}

	return fmt.Errorf("redis did not become available after %d attempts", maxRetries)
}
