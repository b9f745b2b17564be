package registry

import (
	"errors"
	"fmt"

	"github.com/milk9111/pulserun/ecs/component"
)

// Builder collects templates and validates them into a Registry.
type Builder struct {
	templates []*Template
}

func NewBuilder() *Builder {
	return &Builder{}
}

// Template queues t for registration.
func (b *Builder) Template(t *Template) *Builder {
	b.templates = append(b.templates, t)
	return b
}

// Build validates every queued template and returns the frozen registry.
// All problems are reported together.
func (b *Builder) Build() (*Registry, error) {
	r := &Registry{
		templates: make(map[ObjectID]*Template, len(b.templates)),
		byName:    make(map[string]*Template, len(b.templates)),
	}

	var errs []error
	checkedTypes := make(map[ComponentType]bool)
	for _, t := range b.templates {
		if t == nil {
			continue
		}
		if prev, ok := r.templates[t.ObjectID]; ok {
			errs = append(errs, fmt.Errorf("%w: %d (%s and %s)", ErrDuplicateObject, t.ObjectID, prev.Name, t.Name))
			continue
		}
		if prev, ok := r.byName[t.Name]; ok {
			errs = append(errs, fmt.Errorf("%w: %q (objects %d and %d)", ErrDuplicateName, t.Name, prev.ObjectID, t.ObjectID))
			continue
		}

		seen := make(map[ComponentID]bool, len(t.Components))
		stores := make(map[component.ComponentID]ComponentID, len(t.Components))
		for _, tc := range t.Components {
			if seen[tc.ID] {
				errs = append(errs, fmt.Errorf("%w: %d in %s", ErrDuplicateComponent, tc.ID, t.Name))
			}
			seen[tc.ID] = true
			if tc.Type == nil {
				errs = append(errs, fmt.Errorf("%w: component %d in %s", ErrNilComponentType, tc.ID, t.Name))
				continue
			}
			if prev, ok := stores[tc.Type.store()]; ok {
				errs = append(errs, fmt.Errorf("%w: %s in %s (components %d and %d)", ErrDuplicateComponentType, tc.Type.Name(), t.Name, prev, tc.ID))
			} else {
				stores[tc.Type.store()] = tc.ID
			}
			if !checkedTypes[tc.Type] {
				checkedTypes[tc.Type] = true
				errs = append(errs, checkFields(tc.Type)...)
			}
		}

		r.templates[t.ObjectID] = t
		r.byName[t.Name] = t
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	r.ids = sortedIDs(r.templates)
	return r, nil
}

func checkFields(ct ComponentType) []error {
	var errs []error
	seen := make(map[FieldID]bool)
	for _, f := range ct.Fields() {
		if seen[f.ID] {
			errs = append(errs, fmt.Errorf("%w: %d in %s", ErrDuplicateField, f.ID, ct.Name()))
		}
		seen[f.ID] = true
	}
	return errs
}
