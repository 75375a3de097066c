package domain

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Maximum field lengths, counted in runes after trimming
const (
	MaxCityNameLen          = 120
	MaxNeighborhoodNameLen  = 120
	MaxStreetNameLen        = 200
	MaxPoliceStationNameLen = 200
	MaxAddressLen           = 255
	MaxRegionCodeLen        = 2
)

// requireText checks a trimmed required field
func requireText(field, value string, max int) error {
	if value == "" {
		return &ValidationError{Field: field, Reason: "is required"}
	}
	return limitText(field, value, max)
}

// limitText checks the length of a trimmed field; empty is always allowed
func limitText(field, value string, max int) error {
	if n := utf8.RuneCountInString(value); n > max {
		return &ValidationError{Field: field, Reason: fmt.Sprintf("must be at most %d characters, got %d", max, n)}
	}
	return nil
}

// requireRef checks a required parent reference
func requireRef(field string, ref NullID) error {
	if !ref.Valid {
		return &ValidationError{Field: field, Reason: "is required"}
	}
	if ref.ID <= 0 {
		return &ValidationError{Field: field, Reason: fmt.Sprintf("invalid identity %d", ref.ID)}
	}
	return nil
}

// CityFields are the writable fields of a City
type CityFields struct {
	Name    string
	State   string
	Country string
}

// Normalize trims every field
func (f CityFields) Normalize() CityFields {
	return CityFields{
		Name:    strings.TrimSpace(f.Name),
		State:   strings.TrimSpace(f.State),
		Country: strings.TrimSpace(f.Country),
	}
}

// Validate checks already-normalized fields
func (f CityFields) Validate() error {
	if err := requireText("name", f.Name, MaxCityNameLen); err != nil {
		return err
	}
	if err := limitText("state", f.State, MaxRegionCodeLen); err != nil {
		return err
	}
	return limitText("country", f.Country, MaxRegionCodeLen)
}

// NeighborhoodFields are the writable fields of a Neighborhood
type NeighborhoodFields struct {
	Name   string
	CityID NullID
}

// Normalize trims every field
func (f NeighborhoodFields) Normalize() NeighborhoodFields {
	f.Name = strings.TrimSpace(f.Name)
	return f
}

// Validate checks already-normalized fields
func (f NeighborhoodFields) Validate() error {
	if err := requireText("name", f.Name, MaxNeighborhoodNameLen); err != nil {
		return err
	}
	return requireRef("city_id", f.CityID)
}

// StreetFields are the writable fields of a Street
type StreetFields struct {
	Name           string
	NeighborhoodID NullID
}

// Normalize trims every field
func (f StreetFields) Normalize() StreetFields {
	f.Name = strings.TrimSpace(f.Name)
	return f
}

// Validate checks already-normalized fields
func (f StreetFields) Validate() error {
	if err := requireText("name", f.Name, MaxStreetNameLen); err != nil {
		return err
	}
	return requireRef("neighborhood_id", f.NeighborhoodID)
}

// PoliceStationFields are the writable fields of a PoliceStation
type PoliceStationFields struct {
	Name    string
	CityID  NullID
	Address string
}

// Normalize trims every field
func (f PoliceStationFields) Normalize() PoliceStationFields {
	f.Name = strings.TrimSpace(f.Name)
	f.Address = strings.TrimSpace(f.Address)
	return f
}

// Validate checks already-normalized fields. The city is optional, but when
// present it must be a positive identity.
func (f PoliceStationFields) Validate() error {
	if err := requireText("name", f.Name, MaxPoliceStationNameLen); err != nil {
		return err
	}
	if f.CityID.Valid && f.CityID.ID <= 0 {
		return &ValidationError{Field: "city_id", Reason: fmt.Sprintf("invalid identity %d", f.CityID.ID)}
	}
	return limitText("address", f.Address, MaxAddressLen)
}
