package events

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"github.com/talekeep/dialogue-engine/pkg/bus"
	"github.com/talekeep/dialogue-engine/pkg/inventory"
)

// Listener subscribes to a player's inventory event channel and
// republishes decoded snapshots onto an in-process topic, which the engine
// uses to refresh its cached snapshot.
type Listener struct {
	pubsub *redis.PubSub
	topic  *bus.Topic[*inventory.Snapshot]
	logger *slog.Logger
	done   chan struct{}
}

// NewListener starts listening for inventory events. Call Close to stop
// and release the subscription.
func NewListener(redisClient *redis.Client, playerID string, topic *bus.Topic[*inventory.Snapshot], logger *slog.Logger) *Listener {
	l := &Listener{
		pubsub: redisClient.Subscribe(context.Background(), channelFor(playerID)),
		topic:  topic,
		logger: logger,
		done:   make(chan struct{}),
	}

	go l.run()
	return l
}

func (l *Listener) run() {
	defer close(l.done)

	for msg := range l.pubsub.Channel() {
		var snap inventory.Snapshot
		if err := json.Unmarshal([]byte(msg.Payload), &snap); err != nil {
			l.logger.Warn("Failed to unmarshal inventory event", "error", err)
			continue
		}
		l.topic.Publish(&snap)
	}
}

// Close stops the listener and waits for the delivery goroutine to exit.
func (l *Listener) Close() error {
	err := l.pubsub.Close()
	<-l.done
	return err
}
