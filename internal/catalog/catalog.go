package catalog

import (
	"errors"
	"fmt"

	"github.com/agnivade/levenshtein"
)

var ErrNotFound = errors.New("business not found")

// Business is one entry in the static catalog. Entries are never created or
// destroyed at runtime.
type Business struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	BlipID            int     `json:"blipId"`
	ProductionSeconds float64 `json:"productionSeconds"`
}

// Catalog is a read-only lookup table over the known businesses.
type Catalog struct {
	order []string
	byID  map[string]Business
}

func New(businesses []Business) *Catalog {
	c := &Catalog{
		order: make([]string, 0, len(businesses)),
		byID:  make(map[string]Business, len(businesses)),
	}
	for _, b := range businesses {
		c.order = append(c.order, b.ID)
		c.byID[b.ID] = b
	}
	return c
}

// Default returns the in-game business table. Production seconds are how long
// a full supply bar takes to convert into a full product bar; zero means the
// business never produces on its own.
func Default() *Catalog {
	return New([]Business{
		{ID: "bunker", Name: "Bunker", BlipID: 557, ProductionSeconds: 11*3600 + 40*60},
		{ID: "cocaine", Name: "Cocaine", BlipID: 497, ProductionSeconds: 2 * 3600},
		{ID: "meth", Name: "Meth", BlipID: 499, ProductionSeconds: 2.5 * 3600},
		{ID: "counterfeit-cash", Name: "Counterfeit Cash", BlipID: 500, ProductionSeconds: 2.3 * 3600},
		{ID: "weed", Name: "Weed", BlipID: 496, ProductionSeconds: 3 * 3600},
		{ID: "doc-forgery", Name: "Doc. Forgery", BlipID: 498, ProductionSeconds: 4 * 3600},
		{ID: "acid", Name: "Acid", BlipID: 840, ProductionSeconds: 4 * 3600},
		{ID: "nightclub", Name: "Nightclub", BlipID: 614, ProductionSeconds: 20 * 3600},
		{ID: "import-export", Name: "Import / Export", BlipID: 524, ProductionSeconds: 0},
	})
}

// IDs returns all business ids in fixed catalog order.
func (c *Catalog) IDs() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// List returns all businesses in catalog order.
func (c *Catalog) List() []Business {
	out := make([]Business, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id])
	}
	return out
}

// Get looks up a business by id. The id set is closed, so a miss on an
// internal path is a programming error; the returned error carries a nearest
// match to make typos in CLI input and hand-edited state obvious.
func (c *Catalog) Get(id string) (Business, error) {
	if b, ok := c.byID[id]; ok {
		return b, nil
	}
	if near := c.nearest(id); near != "" {
		return Business{}, fmt.Errorf("%w: %q (did you mean %q?)", ErrNotFound, id, near)
	}
	return Business{}, fmt.Errorf("%w: %q", ErrNotFound, id)
}

// Has reports whether id is a known catalog entry.
func (c *Catalog) Has(id string) bool {
	_, ok := c.byID[id]
	return ok
}

func (c *Catalog) nearest(id string) string {
	best := ""
	bestDist := 4 // anything further is noise, not a typo
	for _, known := range c.order {
		if d := levenshtein.ComputeDistance(id, known); d < bestDist {
			best, bestDist = known, d
		}
	}
	return best
}
