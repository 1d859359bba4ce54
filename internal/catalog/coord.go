package catalog

import (
	"encoding/json"
	"fmt"
)

// Backdrop dimensions of the map image, in pixels.
const (
	MapWidth  = 8192
	MapHeight = 8192
)

// Coord is a pixel coordinate on the map backdrop. Its JSON form is the
// two-element array [x, y], matching the stored businessLocations blob.
type Coord struct {
	X float64
	Y float64
}

func (c Coord) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{c.X, c.Y})
}

func (c *Coord) UnmarshalJSON(b []byte) error {
	var pair [2]float64
	if err := json.Unmarshal(b, &pair); err != nil {
		return fmt.Errorf("coordinate must be a [x, y] pair: %w", err)
	}
	c.X, c.Y = pair[0], pair[1]
	return nil
}
