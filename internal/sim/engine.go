// Package sim advances supply/product levels for owned businesses, one
// wall-clock second per tick.
package sim

import (
	"sync"

	"github.com/efritioff/gtav-timer/internal/catalog"
	"github.com/efritioff/gtav-timer/internal/holdings"
)

// Engine computes production ticks. Tick is a pure function of its inputs,
// so the engine tests without a real clock; the timer lives in Loop.
type Engine struct {
	cat *catalog.Catalog

	mu     sync.RWMutex
	paused bool
}

func NewEngine(cat *catalog.Catalog) *Engine {
	return &Engine{cat: cat}
}

// Pause stops ticks from advancing anything. Skipped ticks are simply lost;
// there is no catch-up on resume.
func (e *Engine) Pause(paused bool) {
	e.mu.Lock()
	e.paused = paused
	e.mu.Unlock()
}

func (e *Engine) Paused() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.paused
}

// Tick advances one second of production and returns the next levels map
// plus the number of businesses that moved. A business advances iff it is
// owned, produces at all (ProductionSeconds > 0), has supplies left and has
// room for more product. Everything else is returned unchanged.
func (e *Engine) Tick(owned []string, levels map[string]holdings.Levels) (map[string]holdings.Levels, int) {
	if e.Paused() {
		return levels, 0
	}

	next := make(map[string]holdings.Levels, len(levels))
	for id, l := range levels {
		next[id] = l
	}

	advanced := 0
	for _, id := range owned {
		def, err := e.cat.Get(id)
		if err != nil {
			// Stale id in a hand-edited owned blob; never simulated.
			continue
		}
		if def.ProductionSeconds <= 0 {
			continue
		}
		l := next[id]
		if l.Supplies <= 0 || l.Product >= 100 {
			continue
		}

		// Consuming supplies at a constant rate produces product at the
		// same rate, until either bar hits its bound.
		rate := 100 / def.ProductionSeconds
		l.Supplies = max(0, l.Supplies-rate)
		l.Product = min(100, l.Product+rate)
		next[id] = l
		advanced++
	}
	return next, advanced
}
