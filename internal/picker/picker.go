// Package picker runs the short-lived flow for assigning a map location to
// a business: cycle through preset landmarks, or click anywhere on the map,
// then commit or cancel. One session at a time.
package picker

import (
	"errors"
	"fmt"
	"sync"

	"github.com/efritioff/gtav-timer/internal/catalog"
	"github.com/efritioff/gtav-timer/internal/holdings"

	"github.com/google/uuid"
)

var (
	// ErrAlreadyPicking means a session is active; cancel it before starting
	// another. Starting over an open session used to silently drop it, which
	// was never clearly intentional.
	ErrAlreadyPicking = errors.New("a location-picking session is already active")
	ErrNotPicking     = errors.New("no location-picking session is active")
	ErrNotOwned       = errors.New("business must be owned before picking a location")
	ErrNoCandidates   = errors.New("no preset locations to confirm; click the map instead")
)

// Session is the transient picking state. Never persisted.
type Session struct {
	ID         string             `json:"id"`
	BusinessID string             `json:"businessId"`
	Candidates []catalog.Landmark `json:"candidates"`
	Index      int                `json:"index"`
}

// Flow is the one-at-a-time picking state machine.
type Flow struct {
	mu      sync.Mutex
	cat     *catalog.Catalog
	store   *holdings.Store
	session *Session
}

func NewFlow(cat *catalog.Catalog, store *holdings.Store) *Flow {
	return &Flow{cat: cat, store: store}
}

// Start opens a session for businessID. The business must exist and be
// owned; candidates are the preset landmarks carrying the business blip and
// may be empty.
func (f *Flow) Start(businessID string) (Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.session != nil {
		return Session{}, ErrAlreadyPicking
	}
	b, err := f.cat.Get(businessID)
	if err != nil {
		return Session{}, err
	}
	if !f.store.IsOwned(businessID) {
		return Session{}, fmt.Errorf("%w: %q", ErrNotOwned, businessID)
	}

	f.session = &Session{
		ID:         uuid.NewString(),
		BusinessID: businessID,
		Candidates: catalog.LandmarksFor(b.BlipID),
	}
	return *f.session, nil
}

// Current returns a copy of the active session, if any.
func (f *Flow) Current() (Session, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.session == nil {
		return Session{}, false
	}
	return *f.session, true
}

// Next moves the selection forward, wrapping at the end. No-op when there
// are no candidates.
func (f *Flow) Next() (Session, error) {
	return f.move(1)
}

// Previous moves the selection back, wrapping at the start.
func (f *Flow) Previous() (Session, error) {
	return f.move(-1)
}

func (f *Flow) move(delta int) (Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.session == nil {
		return Session{}, ErrNotPicking
	}
	if n := len(f.session.Candidates); n > 0 {
		f.session.Index = (f.session.Index + delta + n) % n
	}
	return *f.session, nil
}

// Select jumps straight to candidate i (marker click in the UI).
func (f *Flow) Select(i int) (Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.session == nil {
		return Session{}, ErrNotPicking
	}
	if i < 0 || i >= len(f.session.Candidates) {
		return Session{}, fmt.Errorf("candidate index %d out of range", i)
	}
	f.session.Index = i
	return *f.session, nil
}

// ConfirmSelected commits the highlighted preset as the business location
// and ends the session.
func (f *Flow) ConfirmSelected() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.session == nil {
		return ErrNotPicking
	}
	if len(f.session.Candidates) == 0 {
		return ErrNoCandidates
	}
	chosen := f.session.Candidates[f.session.Index]
	f.store.SetLocation(f.session.BusinessID, chosen.At)
	f.session = nil
	return nil
}

// ConfirmClick commits an arbitrary map coordinate, bypassing the preset
// list, and ends the session.
func (f *Flow) ConfirmClick(at catalog.Coord) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.session == nil {
		return ErrNotPicking
	}
	f.store.SetLocation(f.session.BusinessID, at)
	f.session = nil
	return nil
}

// Cancel discards the session without touching the store.
func (f *Flow) Cancel() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.session == nil {
		return ErrNotPicking
	}
	f.session = nil
	return nil
}
