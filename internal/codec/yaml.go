package codec

import (
	"errors"
	"fmt"
	"io"

	"pms/internal/domain"

	"gopkg.in/yaml.v3"
)

// YAMLCodec handles YAML import/export
type YAMLCodec struct{}

// NewYAMLCodec creates a new YAML codec
func NewYAMLCodec() *YAMLCodec {
	return &YAMLCodec{}
}

// Format returns the codec format identifier
func (c *YAMLCodec) Format() string {
	return "yaml"
}

// Parse imports a hierarchy from YAML. An empty document is an empty
// hierarchy; unknown keys are rejected.
func (c *YAMLCodec) Parse(r io.Reader) (*domain.Hierarchy, error) {
	h := domain.NewHierarchy()
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(h); err != nil {
		if errors.Is(err, io.EOF) {
			return h, nil
		}
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if h.Cities == nil {
		h.Cities = make([]domain.CityEntry, 0)
	}
	return h, nil
}

// Export exports a hierarchy to YAML
func (c *YAMLCodec) Export(h *domain.Hierarchy, w io.Writer) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)

	if err := encoder.Encode(h); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("failed to flush YAML: %w", err)
	}

	return nil
}
