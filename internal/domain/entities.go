package domain

// City is a municipality. State and Country are optional two-letter codes;
// an empty string means absent.
type City struct {
	ID      ID     `json:"id" yaml:"id"`
	Name    string `json:"name" yaml:"name"`
	State   string `json:"state,omitempty" yaml:"state,omitempty"`
	Country string `json:"country,omitempty" yaml:"country,omitempty"`
}

// Fields returns the writable fields of the city
func (c City) Fields() CityFields {
	return CityFields{Name: c.Name, State: c.State, Country: c.Country}
}

// Neighborhood belongs to exactly one City
type Neighborhood struct {
	ID     ID     `json:"id" yaml:"id"`
	Name   string `json:"name" yaml:"name"`
	CityID ID     `json:"city_id" yaml:"city_id"`
}

// Fields returns the writable fields of the neighborhood
func (n Neighborhood) Fields() NeighborhoodFields {
	return NeighborhoodFields{Name: n.Name, CityID: SomeID(n.CityID)}
}

// Street belongs to exactly one Neighborhood
type Street struct {
	ID             ID     `json:"id" yaml:"id"`
	Name           string `json:"name" yaml:"name"`
	NeighborhoodID ID     `json:"neighborhood_id" yaml:"neighborhood_id"`
}

// Fields returns the writable fields of the street
func (s Street) Fields() StreetFields {
	return StreetFields{Name: s.Name, NeighborhoodID: SomeID(s.NeighborhoodID)}
}

// PoliceStation optionally belongs to a City. Deleting the city detaches the
// station instead of deleting it.
type PoliceStation struct {
	ID      ID     `json:"id" yaml:"id"`
	Name    string `json:"name" yaml:"name"`
	CityID  NullID `json:"-" yaml:"-"`
	Address string `json:"address,omitempty" yaml:"address,omitempty"`
}

// Fields returns the writable fields of the station
func (p PoliceStation) Fields() PoliceStationFields {
	return PoliceStationFields{Name: p.Name, CityID: p.CityID, Address: p.Address}
}
