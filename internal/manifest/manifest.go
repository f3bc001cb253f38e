// Package manifest loads work-item manifests for template fan-out.
//
// A manifest lists the work items to instantiate from a single template:
//
//	name: affinity-models
//	set:
//	  work_dir: /scratch/run1
//	items:
//	  - name: item-0
//	    set: {work_item_num: "0"}
//	  - name: item-1
//	    set: {work_item_num: "1", work_dir: /scratch/run1/alt}
//
// Item-level keys override the manifest-level `set` defaults.
package manifest

import (
	"errors"
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// Common errors
var (
	// ErrManifestNotFound indicates the manifest file was not found
	ErrManifestNotFound = errors.New("manifest file not found")

	// ErrNoItems indicates the manifest declares no work items
	ErrNoItems = errors.New("manifest has no work items")
)

// Item is a single work item: one render-and-submit with its own substitutions.
type Item struct {
	Name string            `yaml:"name"`
	Set  map[string]string `yaml:"set"`
}

// Manifest describes a set of work items sharing one template.
type Manifest struct {
	Name  string            `yaml:"name"`
	Set   map[string]string `yaml:"set"`
	Items []Item            `yaml:"items"`
}

// Load reads and validates a manifest file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrManifestNotFound, path)
		}
		return nil, err
	}
	return Parse(data)
}

// Parse decodes manifest YAML and validates it.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.UnmarshalWithOptions(data, &m, yaml.Strict()); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}

	if len(m.Items) == 0 {
		return nil, ErrNoItems
	}

	seen := make(map[string]struct{}, len(m.Items))
	for i, item := range m.Items {
		if item.Name == "" {
			return nil, fmt.Errorf("work item %d has no name", i)
		}
		if _, dup := seen[item.Name]; dup {
			return nil, fmt.Errorf("duplicate work item name: %s", item.Name)
		}
		seen[item.Name] = struct{}{}
	}

	return &m, nil
}

// Substitutions returns the merged substitution map for an item:
// manifest-level defaults overlaid with the item's own keys.
// The result is a fresh map; neither source is mutated.
func (m *Manifest) Substitutions(item Item) map[string]string {
	merged := make(map[string]string, len(m.Set)+len(item.Set))
	for k, v := range m.Set {
		merged[k] = v
	}
	for k, v := range item.Set {
		merged[k] = v
	}
	return merged
}
