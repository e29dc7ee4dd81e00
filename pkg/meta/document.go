package meta

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// Validate checks the document for internal consistency. Returns a slice of
// validation errors (empty if valid).
func (d *Document) Validate() []error {
	var errs []error

	names := make(map[string]bool, len(d.Components))

	for i, comp := range d.Components {
		if comp.Name == "" {
			errs = append(errs, fmt.Errorf("components[%d]: name is required", i))
			continue
		}
		if names[comp.Name] {
			errs = append(errs, fmt.Errorf("component %q: duplicate display name", comp.Name))
			continue
		}
		names[comp.Name] = true

		if comp.FilePath == "" {
			errs = append(errs, fmt.Errorf("component %q: file_path is required", comp.Name))
		}

		propNames := make(map[string]bool, len(comp.Props))
		for j, prop := range comp.Props {
			if prop.Name == "" {
				errs = append(errs, fmt.Errorf("component %q props[%d]: name is required", comp.Name, j))
				continue
			}
			if propNames[prop.Name] {
				errs = append(errs, fmt.Errorf("component %q: duplicate prop %q", comp.Name, prop.Name))
			}
			propNames[prop.Name] = true

			// Primary classification is exclusive: kind > values > fields.
			if prop.Kind != RenderNone && (len(prop.Values) > 0 || len(prop.Fields) > 0) {
				errs = append(errs, fmt.Errorf("component %q prop %q: renderable kind excludes values/fields", comp.Name, prop.Name))
			}
			if len(prop.Values) > 0 && len(prop.Fields) > 0 {
				errs = append(errs, fmt.Errorf("component %q prop %q: literal values exclude structured fields", comp.Name, prop.Name))
			}
		}

		for j, w := range comp.Wrappers {
			if w.Name == "" {
				errs = append(errs, fmt.Errorf("component %q wrappers[%d]: name is required", comp.Name, j))
			}
		}
	}

	return errs
}

// Index provides O(1) lookups into a validated document.
type Index struct {
	ComponentByName map[string]*ComponentDescriptor
}

// BuildIndex creates lookup maps. Call after Validate() passes.
func (d *Document) BuildIndex() *Index {
	idx := &Index{
		ComponentByName: make(map[string]*ComponentDescriptor, len(d.Components)),
	}
	for i := range d.Components {
		idx.ComponentByName[d.Components[i].Name] = &d.Components[i]
	}
	return idx
}

// LoadFromFile loads a document from a JSON file, validates it, and builds
// the index.
func LoadFromFile(path string) (*Document, *Index, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read document file: %w", err)
	}
	return LoadFromBytes(data)
}

// LoadFromBytes parses a document from raw JSON, validates it, and builds
// the index.
func LoadFromBytes(data []byte) (*Document, *Index, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, nil, fmt.Errorf("failed to parse document JSON: %w", err)
	}

	if errs := doc.Validate(); len(errs) > 0 {
		return nil, nil, fmt.Errorf("document validation failed: %w", errors.Join(errs...))
	}

	return &doc, doc.BuildIndex(), nil
}

// SaveToFile writes the document as indented JSON.
func (d *Document) SaveToFile(path string) error {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write document: %w", err)
	}
	return nil
}
