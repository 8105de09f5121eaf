package image

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Mapping is an immutable region to image ID table.
type Mapping struct {
	images map[string]string
}

// NewMapping copies entries into a new Mapping.
func NewMapping(entries map[string]string) *Mapping {
	images := make(map[string]string, len(entries))
	for region, id := range entries {
		images[region] = id
	}
	return &Mapping{images: images}
}

// Get returns the image ID for region.
func (m *Mapping) Get(region string) (string, bool) {
	if m == nil {
		return "", false
	}
	id, ok := m.images[region]
	return id, ok
}

// Len returns the number of regions in the mapping.
func (m *Mapping) Len() int {
	if m == nil {
		return 0
	}
	return len(m.images)
}

// Regions returns the mapped regions in lexical order.
func (m *Mapping) Regions() []string {
	if m == nil {
		return nil
	}
	regions := make([]string, 0, len(m.images))
	for region := range m.images {
		regions = append(regions, region)
	}
	sort.Strings(regions)
	return regions
}

// Entries returns a copy of the mapping.
func (m *Mapping) Entries() map[string]string {
	out := make(map[string]string, m.Len())
	if m == nil {
		return out
	}
	for region, id := range m.images {
		out[region] = id
	}
	return out
}

// mappingFile is the on-disk YAML form.
type mappingFile struct {
	NamePattern string            `yaml:"namePattern,omitempty"`
	Owner       string            `yaml:"owner,omitempty"`
	Images      map[string]string `yaml:"images"`
}

// MarshalYAML encodes the mapping as a plain region to ID map.
func (m *Mapping) MarshalYAML() (interface{}, error) {
	return m.Entries(), nil
}

// Save writes the mapping with the query that produced it to path.
func (m *Mapping) Save(path string, q Query) error {
	data, err := yaml.Marshal(mappingFile{
		NamePattern: q.NamePattern,
		Owner:       q.Owner,
		Images:      m.Entries(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal image mapping: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write image mapping: %w", err)
	}
	return nil
}

// LoadMapping reads a mapping written by Save.
func LoadMapping(path string) (*Mapping, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read image mapping: %w", err)
	}

	var f mappingFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse image mapping: %w", err)
	}
	if len(f.Images) == 0 {
		return nil, fmt.Errorf("image mapping %s contains no images", path)
	}
	for region, id := range f.Images {
		if id == "" {
			return nil, fmt.Errorf("image mapping %s has an empty image ID for %s", path, region)
		}
	}
	return NewMapping(f.Images), nil
}
