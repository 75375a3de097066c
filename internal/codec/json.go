package codec

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"pms/internal/domain"
)

// JSONCodec handles JSON import/export
type JSONCodec struct{}

// NewJSONCodec creates a new JSON codec
func NewJSONCodec() *JSONCodec {
	return &JSONCodec{}
}

// Format returns the codec format identifier
func (c *JSONCodec) Format() string {
	return "json"
}

// Parse imports a hierarchy from JSON. Unknown fields are rejected.
func (c *JSONCodec) Parse(r io.Reader) (*domain.Hierarchy, error) {
	h := domain.NewHierarchy()
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(h); err != nil {
		if errors.Is(err, io.EOF) {
			return h, nil
		}
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	if h.Cities == nil {
		h.Cities = make([]domain.CityEntry, 0)
	}
	return h, nil
}

// Export exports a hierarchy to JSON
func (c *JSONCodec) Export(h *domain.Hierarchy, w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(h); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	return nil
}
