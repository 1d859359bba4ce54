package catalog

// Landmark is a preset spot on the map where a business of a given blip type
// can be placed. The picker cycles through these before falling back to a
// free map click.
type Landmark struct {
	Name   string `json:"name"`
	BlipID int    `json:"blipId"`
	At     Coord  `json:"at"`
}

var landmarks = []Landmark{
	// nightclub
	{Name: "Elysian Island", BlipID: 614, At: Coord{X: 4225, Y: 1075}},
	{Name: "LSIA", BlipID: 614, At: Coord{X: 3720, Y: 1500}},
	{Name: "Cypress Flats", BlipID: 614, At: Coord{X: 4605, Y: 1660}},
	{Name: "La Mesa", BlipID: 614, At: Coord{X: 4520, Y: 2120}},
	{Name: "Strawberry", BlipID: 614, At: Coord{X: 4025, Y: 2125}},
	{Name: "Vespucci Canals", BlipID: 614, At: Coord{X: 3440, Y: 2200}},
	{Name: "Del Perro", BlipID: 614, At: Coord{X: 3400, Y: 2470}},
	{Name: "Mission Row", BlipID: 614, At: Coord{X: 4310, Y: 2290}},
	{Name: "West Vinewood", BlipID: 614, At: Coord{X: 4090, Y: 2960}},
	{Name: "Downtown Vinewood", BlipID: 614, At: Coord{X: 4300, Y: 2970}},
	// bunker
	{Name: "Chumash", BlipID: 557, At: Coord{X: 2345, Y: 3620}},
	{Name: "Lago Zancudo", BlipID: 557, At: Coord{X: 2390, Y: 4690}},
	{Name: "Farmhouse", BlipID: 557, At: Coord{X: 5000, Y: 4100}},
	{Name: "Route 68", BlipID: 557, At: Coord{X: 4550, Y: 4580}},
	{Name: "Grand Senora Oilfields", BlipID: 557, At: Coord{X: 4350, Y: 4550}},
	{Name: "Grand Senora Desert", BlipID: 557, At: Coord{X: 4095, Y: 4510}},
	{Name: "Smoke Tree Road", BlipID: 557, At: Coord{X: 5280, Y: 4710}},
	{Name: "Thomson Scrapyard", BlipID: 557, At: Coord{X: 5500, Y: 4600}},
	{Name: "Paleto Forest", BlipID: 557, At: Coord{X: 3660, Y: 6180}},
	{Name: "Raton Canyon", BlipID: 557, At: Coord{X: 3890, Y: 5275}},
	{Name: "Grapeseed", BlipID: 557, At: Coord{X: 5120, Y: 5470}},
	// cocaine lockup
	{Name: "Elysian Island", BlipID: 497, At: Coord{X: 3970, Y: 1390}},
	{Name: "Morningwood", BlipID: 497, At: Coord{X: 3285, Y: 2625}},
	{Name: "Alamo Sea", BlipID: 497, At: Coord{X: 4310, Y: 4830}},
	{Name: "Paleto Bay", BlipID: 497, At: Coord{X: 4120, Y: 6480}},
	// weed farm
	{Name: "Elysian Island", BlipID: 496, At: Coord{X: 4190, Y: 1480}},
	{Name: "Downtown Vinewood", BlipID: 496, At: Coord{X: 4170, Y: 2946}},
	{Name: "San Chianski Mountain Range", BlipID: 496, At: Coord{X: 5710, Y: 5340}},
	{Name: "Mount Chiliad", BlipID: 496, At: Coord{X: 4340, Y: 6490}},
	// counterfeit cash factory
	{Name: "Paleto Bay", BlipID: 500, At: Coord{X: 4500, Y: 1370}},
	{Name: "Vespucci Canals", BlipID: 500, At: Coord{X: 3445, Y: 2065}},
	{Name: "Grand Senora Desert", BlipID: 500, At: Coord{X: 4190, Y: 4230}},
	{Name: "Cypress Flats", BlipID: 500, At: Coord{X: 4500, Y: 4400}},
	// meth lab
	{Name: "Terminal", BlipID: 499, At: Coord{X: 4760, Y: 1100}},
	{Name: "El Burro Heights", BlipID: 499, At: Coord{X: 4920, Y: 1940}},
	{Name: "Strawberry", BlipID: 499, At: Coord{X: 4750, Y: 1100}},
}

// Landmarks returns every preset location.
func Landmarks() []Landmark {
	out := make([]Landmark, len(landmarks))
	copy(out, landmarks)
	return out
}

// LandmarksFor returns the ordered preset locations carrying the given blip.
// The result may be empty; not every business type has presets.
func LandmarksFor(blipID int) []Landmark {
	var out []Landmark
	for _, l := range landmarks {
		if l.BlipID == blipID {
			out = append(out, l)
		}
	}
	return out
}
