package prefabs

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/milk9111/pulserun/registry"
)

// TemplateSpec is the on-disk form of an object template.
type TemplateSpec struct {
	ObjectID   uint32          `yaml:"object_id"`
	Name       string          `yaml:"name"`
	Components []ComponentSpec `yaml:"components"`
}

type ComponentSpec struct {
	ID       uint32 `yaml:"id"`
	Type     string `yaml:"type"`
	Defaults any    `yaml:"defaults"`
}

func LoadSpec[T any](dir, filename string) (T, error) {
	var zero T
	data, err := Load(dir, filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&spec); err != nil && !errors.Is(err, io.EOF) {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// Template resolves the component type names of spec.
func (spec TemplateSpec) Template() (*registry.Template, error) {
	t := &registry.Template{
		ObjectID:   registry.ObjectID(spec.ObjectID),
		Name:       spec.Name,
		Components: make([]registry.TemplateComponent, 0, len(spec.Components)),
	}
	for _, cs := range spec.Components {
		ct, ok := componentType(cs.Type)
		if !ok {
			return nil, fmt.Errorf("prefabs: %s: unknown component type %q", spec.Name, cs.Type)
		}
		t.Components = append(t.Components, registry.TemplateComponent{
			ID:       registry.ComponentID(cs.ID),
			Type:     ct,
			Defaults: cs.Defaults,
		})
	}
	return t, nil
}

// LoadTemplates reads and resolves every template file.
func LoadTemplates(dir string) ([]*registry.Template, error) {
	names, err := Names(dir)
	if err != nil {
		return nil, fmt.Errorf("prefabs: list %s: %w", dir, err)
	}
	templates := make([]*registry.Template, 0, len(names))
	for _, name := range names {
		spec, err := LoadSpec[TemplateSpec](dir, name)
		if err != nil {
			return nil, err
		}
		if spec.Name == "" {
			return nil, fmt.Errorf("prefabs: %s: template has no name", name)
		}
		t, err := spec.Template()
		if err != nil {
			return nil, err
		}
		// Reject templates whose defaults do not decode.
		for _, tc := range t.Components {
			if _, err := tc.Type.New(tc.Defaults); err != nil {
				return nil, fmt.Errorf("prefabs: %s: %w", name, err)
			}
		}
		templates = append(templates, t)
	}
	return templates, nil
}

// NewRegistry builds the registry from the embedded catalog, overridden by
// any template files found in dir.
func NewRegistry(dir string) (*registry.Registry, error) {
	templates, err := LoadTemplates(dir)
	if err != nil {
		return nil, err
	}
	b := registry.NewBuilder()
	for _, t := range templates {
		b.Template(t)
	}
	r, err := b.Build()
	if err != nil {
		return nil, fmt.Errorf("prefabs: build registry: %w", err)
	}
	return r, nil
}
