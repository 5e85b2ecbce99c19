package catalog

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/PabloGalante/atelier-agent/internal/domain"
)

// defaultYAML is the school's catalog shipped with the binary.
//
//go:embed data/catalog.yaml
var defaultYAML []byte

type file struct {
	Courses  []domain.Course          `yaml:"courses"`
	Journeys []domain.LearningJourney `yaml:"journeys"`
	Packages []domain.CoursePackage   `yaml:"packages"`
}

// Parse decodes and validates a YAML catalog document.
func Parse(raw []byte) (*Catalog, error) {
	var f file
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("catalog: parse yaml: %w", err)
	}
	c := New(f.Courses, f.Journeys, f.Packages)
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Load reads a catalog from path. An empty path loads the embedded default.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", path, err)
	}
	return Parse(raw)
}

// Default returns the embedded catalog.
func Default() (*Catalog, error) {
	return Parse(defaultYAML)
}

// MustDefault is Default for tests and static setup; it panics on a broken embed.
func MustDefault() *Catalog {
	c, err := Default()
	if err != nil {
		panic(err)
	}
	return c
}
