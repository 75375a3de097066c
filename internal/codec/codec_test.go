package codec

import (
	"bytes"
	"strings"
	"testing"

	"pms/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleHierarchy() *domain.Hierarchy {
	h := domain.NewHierarchy()
	h.AddCity(domain.CityEntry{
		Name:    "Springfield",
		State:   "IL",
		Country: "US",
		Neighborhoods: []domain.NeighborhoodEntry{
			{Name: "Downtown", Streets: []string{"Elm St", "Main St"}},
			{Name: "Uptown"},
		},
		Stations: []domain.StationEntry{{Name: "Central", Address: "1 Main St"}},
	})
	h.AddCity(domain.CityEntry{Name: "Ogdenville"})
	h.AddStation(domain.StationEntry{Name: "County"})
	return h
}

func TestForFormat(t *testing.T) {
	tests := []struct {
		name   string
		format string
	}{
		{"yaml", "yaml"},
		{"yml", "yaml"},
		{" JSON ", "json"},
	}
	for _, tt := range tests {
		c, err := ForFormat(tt.name)
		require.NoError(t, err, tt.name)
		assert.Equal(t, tt.format, c.Format())
	}

	_, err := ForFormat("ansible")
	assert.ErrorContains(t, err, "unsupported format")
}

func TestForPath(t *testing.T) {
	c, err := ForPath("/tmp/seed.yml")
	require.NoError(t, err)
	assert.Equal(t, "yaml", c.Format())

	c, err = ForPath("export.JSON")
	require.NoError(t, err)
	assert.Equal(t, "json", c.Format())

	_, err = ForPath("seed")
	assert.ErrorContains(t, err, "no file extension")

	_, err = ForPath("seed.csv")
	assert.Error(t, err)
}

func TestRoundTrip(t *testing.T) {
	for _, format := range Formats() {
		t.Run(format, func(t *testing.T) {
			c, err := ForFormat(format)
			require.NoError(t, err)

			var buf bytes.Buffer
			require.NoError(t, c.Export(sampleHierarchy(), &buf))

			parsed, err := c.Parse(&buf)
			require.NoError(t, err)
			assert.Equal(t, sampleHierarchy(), parsed)
		})
	}
}

func TestYAMLParse(t *testing.T) {
	doc := `
cities:
  - name: Springfield
    state: IL
    neighborhoods:
      - name: Downtown
        streets: [Main St]
stations:
  - name: County
    address: Route 9
`
	h, err := NewYAMLCodec().Parse(strings.NewReader(doc))
	require.NoError(t, err)

	require.Len(t, h.Cities, 1)
	assert.Equal(t, "IL", h.Cities[0].State)
	assert.Equal(t, []string{"Main St"}, h.Cities[0].Neighborhoods[0].Streets)
	assert.Equal(t, domain.HierarchyCounts{Cities: 1, Neighborhoods: 1, Streets: 1, PoliceStations: 1}, h.Counts())
}

func TestParseEmptyDocument(t *testing.T) {
	for _, c := range []Codec{NewYAMLCodec(), NewJSONCodec()} {
		h, err := c.Parse(strings.NewReader(""))
		require.NoError(t, err, c.Format())
		assert.Empty(t, h.Cities)
		assert.NotNil(t, h.Cities)
	}
}

func TestParseRejectsUnknownFields(t *testing.T) {
	_, err := NewYAMLCodec().Parse(strings.NewReader("cities:\n  - name: X\n    mayor: Quimby\n"))
	assert.ErrorContains(t, err, "failed to parse YAML")

	_, err = NewJSONCodec().Parse(strings.NewReader(`{"cities":[{"name":"X","mayor":"Quimby"}]}`))
	assert.ErrorContains(t, err, "failed to parse JSON")
}

func TestJSONExportShape(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONCodec().Export(sampleHierarchy(), &buf))

	out := buf.String()
	assert.Contains(t, out, `"cities": [`)
	assert.Contains(t, out, `"streets": [`)
	assert.NotContains(t, out, `"state": ""`, "empty optional fields are omitted")
}
