package roster

import (
	"context"
	"time"

	"playmatch/lobby/internal/clock"
)

// DefaultInterval is how often the roster snapshot is refreshed.
const DefaultInterval = 5 * time.Second

// Poller drives periodic roster refreshes.
type Poller struct {
	Clock    clock.Clock
	Interval time.Duration
}

// Run calls refresh on every interval until ctx is done. The first snapshot
// is the caller's to fetch. refresh must not block; it only schedules the fetch.
func (p Poller) Run(ctx context.Context, refresh func()) {
	interval := p.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	clk := p.Clock
	if clk == nil {
		clk = clock.Real()
	}

	ticker := clk.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			refresh()
		}
	}
}
