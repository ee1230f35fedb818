package notify

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/redis/rueidis"
)

const channel = "wallet:balance"

// RedisBroker mirrors events through a Redis pub/sub channel so every
// instance behind a load balancer sees every balance change. Locally it
// fans out through a MemoryBroker fed by the subscription loop; our own
// publishes come back through Redis like everyone else's.
type RedisBroker struct {
	client rueidis.Client
	local  *MemoryBroker
}

func NewRedisBroker(addr string) (*RedisBroker, error) {
	client, err := rueidis.NewClient(rueidis.ClientOption{InitAddress: []string{addr}})
	if err != nil {
		return nil, err
	}
	b := &RedisBroker{client: client, local: NewMemoryBroker()}
	go b.listen()
	return b, nil
}

func (b *RedisBroker) listen() {
	err := b.client.Receive(context.Background(),
		b.client.B().Subscribe().Channel(channel).Build(),
		func(msg rueidis.PubSubMessage) {
			var e Event
			if err := json.Unmarshal([]byte(msg.Message), &e); err != nil {
				slog.Warn("bad balance event payload", "err", err)
				return
			}
			b.local.Publish(e)
		})
	if err != nil {
		slog.Error("balance event subscription ended", "err", err)
	}
}

func (b *RedisBroker) Publish(e Event) {
	buf, err := json.Marshal(e)
	if err != nil {
		slog.Warn("marshal balance event", "err", err)
		return
	}
	cmd := b.client.B().Publish().Channel(channel).Message(string(buf)).Build()
	if err := b.client.Do(context.Background(), cmd).Error(); err != nil {
		slog.Warn("publish balance event", "err", err)
	}
}

func (b *RedisBroker) Subscribe() (<-chan Event, func()) {
	return b.local.Subscribe()
}

func (b *RedisBroker) Close() {
	b.client.Close()
}
