package realtime

import (
	"context"
	"encoding/json"
	"log"

	"github.com/go-redis/redis/v8"
)

const channel = "clinic:changes"

// Broker fans row-change events out to every subscriber through redis
// pub/sub, so dashboards on any instance see writes made on any other.
type Broker struct {
	rdb *redis.Client
}

func NewBroker(rdb *redis.Client) *Broker {
	return &Broker{rdb: rdb}
}

// Publish sends a change event. Failures are logged, never propagated: a
// write that reached the store must not fail because the fanout did.
func (b *Broker) Publish(ctx context.Context, ev Event) {
	payload, err := json.Marshal(ev)
	if err != nil {
		log.Printf("realtime: encode event: %v", err)
		return
	}
	if err := b.rdb.Publish(ctx, channel, payload).Err(); err != nil {
		log.Printf("realtime: publish %s/%s: %v", ev.Collection, ev.Action, err)
	}
}

// Subscribe opens a subscription scoped to ctx. The returned channel closes
// when ctx is cancelled; slow consumers lose events rather than block the
// pump.
func (b *Broker) Subscribe(ctx context.Context) <-chan Event {
	pubsub := b.rdb.Subscribe(ctx, channel)
	out := make(chan Event, 16)

	go func() {
		defer close(out)
		defer pubsub.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-pubsub.Channel():
				if !ok {
					return
				}
				var ev Event
				if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
					log.Printf("realtime: decode event: %v", err)
					continue
				}
				select {
				case out <- ev:
				default:
				}
			}
		}
	}()

	return out
}
