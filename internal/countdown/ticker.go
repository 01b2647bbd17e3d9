package countdown

import (
	"context"
	"time"
)

// DefaultTick is the display refresh interval.
const DefaultTick = time.Second

// Run calls fn once immediately and then on every tick until ctx is done.
// The ticker is released when Run returns.
func Run(ctx context.Context, interval time.Duration, fn func(now time.Time)) {
	if interval <= 0 {
		interval = DefaultTick
	}
	fn(time.Now())

	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			fn(now)
		}
	}
}
