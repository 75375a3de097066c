package domain

// Hierarchy is a nested, identity-free snapshot of the registry used for
// import and export. Stations without a city live at the top level.
type Hierarchy struct {
	Cities   []CityEntry    `json:"cities" yaml:"cities"`
	Stations []StationEntry `json:"stations,omitempty" yaml:"stations,omitempty"`
}

// CityEntry is a city together with everything it owns
type CityEntry struct {
	Name          string              `json:"name" yaml:"name"`
	State         string              `json:"state,omitempty" yaml:"state,omitempty"`
	Country       string              `json:"country,omitempty" yaml:"country,omitempty"`
	Neighborhoods []NeighborhoodEntry `json:"neighborhoods,omitempty" yaml:"neighborhoods,omitempty"`
	Stations      []StationEntry      `json:"stations,omitempty" yaml:"stations,omitempty"`
}

// NeighborhoodEntry is a neighborhood and its street names
type NeighborhoodEntry struct {
	Name    string   `json:"name" yaml:"name"`
	Streets []string `json:"streets,omitempty" yaml:"streets,omitempty"`
}

// StationEntry is a police station without its city link
type StationEntry struct {
	Name    string `json:"name" yaml:"name"`
	Address string `json:"address,omitempty" yaml:"address,omitempty"`
}

// NewHierarchy creates an empty hierarchy
func NewHierarchy() *Hierarchy {
	return &Hierarchy{
		Cities: make([]CityEntry, 0),
	}
}

// AddCity appends a city entry
func (h *Hierarchy) AddCity(entry CityEntry) {
	h.Cities = append(h.Cities, entry)
}

// AddStation appends a station that has no city
func (h *Hierarchy) AddStation(entry StationEntry) {
	h.Stations = append(h.Stations, entry)
}

// HierarchyCounts tallies the entities in a hierarchy
type HierarchyCounts struct {
	Cities         int `json:"cities"`
	Neighborhoods  int `json:"neighborhoods"`
	Streets        int `json:"streets"`
	PoliceStations int `json:"police_stations"`
}

// Counts returns how many entities of each kind the hierarchy holds
func (h *Hierarchy) Counts() HierarchyCounts {
	var c HierarchyCounts
	c.PoliceStations = len(h.Stations)
	for _, city := range h.Cities {
		c.Cities++
		c.PoliceStations += len(city.Stations)
		for _, nb := range city.Neighborhoods {
			c.Neighborhoods++
			c.Streets += len(nb.Streets)
		}
	}
	return c
}
