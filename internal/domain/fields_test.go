package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCityFieldsNormalize(t *testing.T) {
	got := CityFields{Name: "  Springfield\t", State: " IL ", Country: "   "}.Normalize()

	assert.Equal(t, CityFields{Name: "Springfield", State: "IL", Country: ""}, got)
}

func TestCityFieldsValidate(t *testing.T) {
	tests := []struct {
		name      string
		fields    CityFields
		wantField string
	}{
		{name: "valid with codes", fields: CityFields{Name: "Springfield", State: "IL", Country: "US"}},
		{name: "valid without codes", fields: CityFields{Name: "Springfield"}},
		{name: "empty name", fields: CityFields{State: "IL"}, wantField: "name"},
		{name: "name too long", fields: CityFields{Name: strings.Repeat("a", MaxCityNameLen+1)}, wantField: "name"},
		{name: "state too long", fields: CityFields{Name: "X", State: "ILL"}, wantField: "state"},
		{name: "country too long", fields: CityFields{Name: "X", Country: "USA"}, wantField: "country"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.fields.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, ErrValidation)
			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.wantField, verr.Field)
		})
	}
}

func TestNameLengthCountsRunes(t *testing.T) {
	name := strings.Repeat("é", MaxCityNameLen)
	assert.NoError(t, CityFields{Name: name}.Validate())
}

func TestNeighborhoodFieldsValidate(t *testing.T) {
	t.Run("requires city", func(t *testing.T) {
		err := NeighborhoodFields{Name: "Downtown"}.Validate()
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("rejects non-positive city", func(t *testing.T) {
		err := NeighborhoodFields{Name: "Downtown", CityID: SomeID(0)}.Validate()
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("whitespace name is empty after normalize", func(t *testing.T) {
		f := NeighborhoodFields{Name: "   ", CityID: SomeID(1)}.Normalize()
		assert.ErrorIs(t, f.Validate(), ErrValidation)
	})

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, NeighborhoodFields{Name: "Downtown", CityID: SomeID(1)}.Validate())
	})
}

func TestStreetFieldsValidate(t *testing.T) {
	assert.ErrorIs(t, StreetFields{Name: "Main St"}.Validate(), ErrValidation)
	assert.ErrorIs(t, StreetFields{NeighborhoodID: SomeID(1)}.Validate(), ErrValidation)
	assert.ErrorIs(t, StreetFields{Name: strings.Repeat("s", MaxStreetNameLen+1), NeighborhoodID: SomeID(1)}.Validate(), ErrValidation)
	assert.NoError(t, StreetFields{Name: "Main St", NeighborhoodID: SomeID(1)}.Validate())
}

func TestPoliceStationFields(t *testing.T) {
	t.Run("city and address optional", func(t *testing.T) {
		f := PoliceStationFields{Name: " 1st Precinct ", Address: "  "}.Normalize()
		require.NoError(t, f.Validate())
		assert.Equal(t, "1st Precinct", f.Name)
		assert.Empty(t, f.Address)
		assert.False(t, f.CityID.Valid)
	})

	t.Run("address too long", func(t *testing.T) {
		f := PoliceStationFields{Name: "P", Address: strings.Repeat("a", MaxAddressLen+1)}
		assert.ErrorIs(t, f.Validate(), ErrValidation)
	})

	t.Run("invalid city identity", func(t *testing.T) {
		f := PoliceStationFields{Name: "P", CityID: SomeID(-3)}
		assert.ErrorIs(t, f.Validate(), ErrValidation)
	})
}

func TestNullID(t *testing.T) {
	assert.True(t, NoID.Equal(NullID{}))
	assert.True(t, SomeID(4).Equal(SomeID(4)))
	assert.False(t, SomeID(4).Equal(SomeID(5)))
	assert.False(t, SomeID(4).Equal(NoID))
	assert.Equal(t, "none", NoID.String())
	assert.Equal(t, "4", SomeID(4).String())

	id, err := ParseID("42")
	require.NoError(t, err)
	assert.Equal(t, ID(42), id)

	_, err = ParseID("forty-two")
	assert.Error(t, err)
}
