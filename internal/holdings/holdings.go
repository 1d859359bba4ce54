// Package holdings tracks which businesses the player owns, their supply and
// product levels, and where they sit on the map. Every mutation persists
// synchronously before returning; persistence failures are logged and
// swallowed so the session keeps working from memory.
package holdings

import (
	"fmt"
	"log"
	"sort"
	"sync"

	"github.com/efritioff/gtav-timer/internal/catalog"
	"github.com/efritioff/gtav-timer/internal/kvstore"
)

// Storage keys. Each entity is its own blob so corruption of one never
// touches the others.
const (
	keyOwned     = "ownedBusinesses"
	keyLevels    = "businessData"
	keyLocations = "businessLocations"
)

// Field names accepted by SetRuntimeValue.
type Field string

const (
	FieldSupplies Field = "supplies"
	FieldProduct  Field = "product"
)

// ParseField maps API input onto a known field.
func ParseField(s string) (Field, error) {
	switch Field(s) {
	case FieldSupplies:
		return FieldSupplies, nil
	case FieldProduct:
		return FieldProduct, nil
	default:
		return "", fmt.Errorf("unknown field %q (want %q or %q)", s, FieldSupplies, FieldProduct)
	}
}

// Levels is the runtime state of one business. Both values stay in [0,100];
// a business with no record reads as {0,0}.
type Levels struct {
	Supplies float64 `json:"supplies"`
	Product  float64 `json:"product"`
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func (l Levels) clamped() Levels {
	return Levels{Supplies: clamp(l.Supplies), Product: clamp(l.Product)}
}

// Store is the ownership and location store. It is the serialization point
// between the HTTP handlers and the simulation loop.
type Store struct {
	mu        sync.RWMutex
	kv        kvstore.Store
	log       *log.Logger
	owned     map[string]struct{}
	levels    map[string]Levels
	locations map[string]catalog.Coord
}

// NewStore loads the three persisted blobs, substituting empty defaults for
// anything absent or corrupt.
func NewStore(kv kvstore.Store, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.Default()
	}
	s := &Store{
		kv:        kv,
		log:       logger,
		owned:     map[string]struct{}{},
		levels:    map[string]Levels{},
		locations: map[string]catalog.Coord{},
	}

	var ownedList []string
	kv.Load(keyOwned, &ownedList)
	for _, id := range ownedList {
		s.owned[id] = struct{}{}
	}

	loaded := map[string]Levels{}
	kv.Load(keyLevels, &loaded)
	for id, l := range loaded {
		s.levels[id] = l.clamped()
	}

	kv.Load(keyLocations, &s.locations)
	return s
}

// CheckStorage re-saves the owned set and reports whether the backend still
// accepts writes. Readiness probes use this.
func (s *Store) CheckStorage() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.kv.Save(keyOwned, s.ownedLocked())
}

func (s *Store) IsOwned(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.owned[id]
	return ok
}

// Owned returns the owned ids, sorted for stable output.
func (s *Store) Owned() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ownedLocked()
}

func (s *Store) ownedLocked() []string {
	out := make([]string, 0, len(s.owned))
	for id := range s.owned {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// SetOwned adds or removes id from the owned set. Runtime levels survive
// un-owning; they just stop being simulated.
func (s *Store) SetOwned(id string, owned bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if owned {
		s.owned[id] = struct{}{}
	} else {
		delete(s.owned, id)
	}
	s.persistOwnedLocked()
}

// RuntimeState returns the levels for id, defaulting to {0,0}.
func (s *Store) RuntimeState(id string) Levels {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.levels[id]
}

// SetRuntimeValue sets one field, clamped to [0,100], leaving the other
// field untouched.
func (s *Store) SetRuntimeValue(id string, field Field, value float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	l := s.levels[id]
	switch field {
	case FieldSupplies:
		l.Supplies = clamp(value)
	case FieldProduct:
		l.Product = clamp(value)
	default:
		return fmt.Errorf("unknown field %q", field)
	}
	s.levels[id] = l
	s.persistLevelsLocked()
	return nil
}

// Resupply fills supplies to 100. Product is untouched.
func (s *Store) Resupply(id string) {
	_ = s.SetRuntimeValue(id, FieldSupplies, 100)
}

// Sell empties product to 0. Supplies are untouched.
func (s *Store) Sell(id string) {
	_ = s.SetRuntimeValue(id, FieldProduct, 0)
}

func (s *Store) Location(id string) (catalog.Coord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.locations[id]
	return c, ok
}

// Locations returns a copy of every assignment for rendering.
func (s *Store) Locations() map[string]catalog.Coord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]catalog.Coord, len(s.locations))
	for id, c := range s.locations {
		out[id] = c
	}
	return out
}

// SetLocation overwrites the assignment for id. Assignments are never
// auto-removed.
func (s *Store) SetLocation(id string, at catalog.Coord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.locations[id] = at
	s.persistLocationsLocked()
}

// ProductionSnapshot returns a consistent view for one simulation tick.
func (s *Store) ProductionSnapshot() (owned []string, levels map[string]Levels) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	levels = make(map[string]Levels, len(s.levels))
	for id, l := range s.levels {
		levels[id] = l
	}
	return s.ownedLocked(), levels
}

// ApplyProduction commits a tick result as one state update and one write.
// Entries are merged so anything created since the snapshot survives.
func (s *Store) ApplyProduction(next map[string]Levels) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, l := range next {
		s.levels[id] = l.clamped()
	}
	s.persistLevelsLocked()
}

func (s *Store) persistOwnedLocked() {
	ids := make([]string, 0, len(s.owned))
	for id := range s.owned {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	if err := s.kv.Save(keyOwned, ids); err != nil {
		s.log.Printf("holdings: save %s: %v", keyOwned, err)
	}
}

func (s *Store) persistLevelsLocked() {
	if err := s.kv.Save(keyLevels, s.levels); err != nil {
		s.log.Printf("holdings: save %s: %v", keyLevels, err)
	}
}

func (s *Store) persistLocationsLocked() {
	if err := s.kv.Save(keyLocations, s.locations); err != nil {
		s.log.Printf("holdings: save %s: %v", keyLocations, err)
	}
}
