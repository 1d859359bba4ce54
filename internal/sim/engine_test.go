package sim

import (
	"testing"

	"github.com/efritioff/gtav-timer/internal/catalog"
	"github.com/efritioff/gtav-timer/internal/holdings"
	"github.com/efritioff/gtav-timer/internal/kvstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTickAdvancesEligibleBusiness(t *testing.T) {
	e := NewEngine(catalog.Default())

	levels := map[string]holdings.Levels{
		"meth": {Supplies: 100, Product: 0},
	}
	next, advanced := e.Tick([]string{"meth"}, levels)

	require.Equal(t, 1, advanced)
	rate := 100.0 / 9000
	assert.InDelta(t, 100-rate, next["meth"].Supplies, 1e-9)
	assert.InDelta(t, rate, next["meth"].Product, 1e-9)

	// Conservation law: the unclamped transfer keeps the sum constant.
	assert.InDelta(t, 100, next["meth"].Supplies+next["meth"].Product, 1e-9)

	// Input map is untouched.
	assert.Equal(t, holdings.Levels{Supplies: 100, Product: 0}, levels["meth"])
}

func TestTickSkipsUnownedBusinesses(t *testing.T) {
	e := NewEngine(catalog.Default())

	levels := map[string]holdings.Levels{
		"meth": {Supplies: 100, Product: 0},
	}
	next, advanced := e.Tick(nil, levels)
	assert.Zero(t, advanced)
	assert.Equal(t, levels["meth"], next["meth"])
}

func TestTickNonEligibilityBounds(t *testing.T) {
	e := NewEngine(catalog.Default())

	levels := map[string]holdings.Levels{
		"weed":    {Supplies: 0, Product: 40},  // out of supplies
		"cocaine": {Supplies: 50, Product: 100}, // product full
	}
	next, advanced := e.Tick([]string{"weed", "cocaine"}, levels)
	assert.Zero(t, advanced)
	assert.Equal(t, levels, next)
}

func TestZeroProductionSecondsNeverAdvances(t *testing.T) {
	e := NewEngine(catalog.Default())

	levels := map[string]holdings.Levels{
		"import-export": {Supplies: 100, Product: 0},
	}
	for i := 0; i < 1000; i++ {
		var advanced int
		levels, advanced = e.Tick([]string{"import-export"}, levels)
		require.Zero(t, advanced)
	}
	assert.Equal(t, holdings.Levels{Supplies: 100, Product: 0}, levels["import-export"])
}

func TestPausedTickIsNoOp(t *testing.T) {
	e := NewEngine(catalog.Default())
	e.Pause(true)

	levels := map[string]holdings.Levels{
		"meth": {Supplies: 100, Product: 0},
	}
	for i := 0; i < 50; i++ {
		var advanced int
		levels, advanced = e.Tick([]string{"meth"}, levels)
		require.Zero(t, advanced)
	}
	assert.Equal(t, holdings.Levels{Supplies: 100, Product: 0}, levels["meth"])

	e.Pause(false)
	_, advanced := e.Tick([]string{"meth"}, levels)
	assert.Equal(t, 1, advanced)
}

func TestStaleOwnedIDIsIgnored(t *testing.T) {
	e := NewEngine(catalog.Default())

	levels := map[string]holdings.Levels{}
	_, advanced := e.Tick([]string{"not-a-business"}, levels)
	assert.Zero(t, advanced)
}

func TestMethFullCycleTakesExactlyItsProductionTime(t *testing.T) {
	e := NewEngine(catalog.Default())

	levels := map[string]holdings.Levels{
		"meth": {Supplies: 100, Product: 0},
	}
	owned := []string{"meth"}

	for i := 0; i < 4500; i++ {
		levels, _ = e.Tick(owned, levels)
	}
	assert.InDelta(t, 50, levels["meth"].Supplies, 1e-6)
	assert.InDelta(t, 50, levels["meth"].Product, 1e-6)

	for i := 0; i < 4500; i++ {
		levels, _ = e.Tick(owned, levels)
	}
	assert.InDelta(t, 0, levels["meth"].Supplies, 1e-6)
	assert.InDelta(t, 100, levels["meth"].Product, 1e-6)

	// Ticks past completion stay pinned at the bounds.
	for i := 0; i < 10; i++ {
		levels, _ = e.Tick(owned, levels)
	}
	assert.InDelta(t, 0, levels["meth"].Supplies, 1e-6)
	assert.InDelta(t, 100, levels["meth"].Product, 1e-6)
}

func TestLoopStepCommitsToStore(t *testing.T) {
	store := holdings.NewStore(kvstore.NewMemory(), nil)
	store.SetOwned("cocaine", true)
	store.Resupply("cocaine")

	l := &Loop{Engine: NewEngine(catalog.Default()), Store: store}
	l.Step()

	rate := 100.0 / 7200
	got := store.RuntimeState("cocaine")
	assert.InDelta(t, 100-rate, got.Supplies, 1e-9)
	assert.InDelta(t, rate, got.Product, 1e-9)

	// Paused step leaves the store alone.
	l.Engine.Pause(true)
	l.Step()
	assert.Equal(t, got, store.RuntimeState("cocaine"))
}
