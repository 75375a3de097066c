// Package codec reads and writes registry hierarchies as documents.
package codec

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"pms/internal/domain"
)

// Importer interface for importing a hierarchy from various formats
type Importer interface {
	Parse(r io.Reader) (*domain.Hierarchy, error)
	Format() string
}

// Exporter interface for exporting a hierarchy to various formats
type Exporter interface {
	Export(h *domain.Hierarchy, w io.Writer) error
	Format() string
}

// Codec both imports and exports one format
type Codec interface {
	Importer
	Exporter
}

// Formats lists the supported format names
func Formats() []string {
	return []string{"yaml", "json"}
}

// ForFormat returns the codec registered under name
func ForFormat(name string) (Codec, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "yaml", "yml":
		return NewYAMLCodec(), nil
	case "json":
		return NewJSONCodec(), nil
	default:
		return nil, fmt.Errorf("unsupported format %q (want one of %s)", name, strings.Join(Formats(), ", "))
	}
}

// ForPath picks a codec from a file extension
func ForPath(path string) (Codec, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return nil, fmt.Errorf("cannot infer format of %s: no file extension", path)
	}
	return ForFormat(ext)
}
