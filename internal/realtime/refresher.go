package realtime

import (
	"context"
	"time"
)

// Refresher consumes change events and coalesces bursts into single refresh
// invocations: the first event of a burst arms a timer, further events inside
// the window ride along, and one refresh fires when it expires.
type Refresher struct {
	debounce time.Duration
	refresh  func(ctx context.Context)
}

func NewRefresher(debounce time.Duration, refresh func(ctx context.Context)) *Refresher {
	if debounce <= 0 {
		debounce = 250 * time.Millisecond
	}
	return &Refresher{debounce: debounce, refresh: refresh}
}

// Run blocks until ctx is cancelled or events closes.
func (r *Refresher) Run(ctx context.Context, events <-chan Event) {
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-events:
			if !ok {
				return
			}
			if fire == nil {
				fire = time.After(r.debounce)
			}
		case <-fire:
			fire = nil
			r.refresh(ctx)
		}
	}
}
