package service

import (
	"testing"

	"pms/internal/domain"
)

func TestCityLabel(t *testing.T) {
	tests := []struct {
		city domain.City
		want string
	}{
		{domain.City{Name: "Springfield", State: "IL", Country: "US"}, "Springfield, IL, US"},
		{domain.City{Name: "Springfield", Country: "US"}, "Springfield, US"},
		{domain.City{Name: "Springfield"}, "Springfield"},
	}

	for _, tt := range tests {
		if got := CityLabel(tt.city); got != tt.want {
			t.Errorf("CityLabel(%+v) = %q, want %q", tt.city, got, tt.want)
		}
	}
}

func TestNeighborhoodLabel(t *testing.T) {
	cities := CityIndex([]domain.City{{ID: 1, Name: "Springfield", State: "IL"}})

	if got := NeighborhoodLabel(domain.Neighborhood{Name: "Downtown", CityID: 1}, cities); got != "Downtown (Springfield, IL)" {
		t.Errorf("NeighborhoodLabel() = %q", got)
	}
	if got := NeighborhoodLabel(domain.Neighborhood{Name: "Downtown", CityID: 2}, cities); got != "Downtown (Unknown City)" {
		t.Errorf("NeighborhoodLabel() = %q, want unknown city", got)
	}
}
