package sim

import (
	"context"
	"log"
	"time"

	"github.com/efritioff/gtav-timer/internal/holdings"
)

// Loop owns the wall-clock timer and feeds the engine from the holdings
// store. All eligible businesses are recomputed together per tick and
// committed as a single state update.
type Loop struct {
	Engine   *Engine
	Store    *holdings.Store
	Interval time.Duration
	Logger   *log.Logger
	Metrics  *Metrics
}

// Run ticks until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) {
	interval := l.Interval
	if interval <= 0 {
		interval = time.Second
	}
	logger := l.Logger
	if logger == nil {
		logger = log.Default()
	}

	logger.Printf("sim: loop started, tick every %s", interval)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Printf("sim: loop stopped")
			return
		case <-ticker.C:
			l.Step()
		}
	}
}

// Step runs exactly one tick against the store. The tick CLI command reuses
// it for explicit offline advancement.
func (l *Loop) Step() {
	if l.Metrics != nil {
		l.Metrics.Ticks.Inc()
		if l.Engine.Paused() {
			l.Metrics.Paused.Set(1)
		} else {
			l.Metrics.Paused.Set(0)
		}
	}

	owned, levels := l.Store.ProductionSnapshot()
	next, advanced := l.Engine.Tick(owned, levels)
	if advanced == 0 {
		return
	}
	l.Store.ApplyProduction(next)
	if l.Metrics != nil {
		l.Metrics.Advanced.Add(float64(advanced))
	}
}
