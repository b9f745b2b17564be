// Package registry maps the numeric identifiers stored in level files to
// object templates, component types and field descriptors.
//
// A Registry is assembled once through a Builder and never changes
// afterwards; every lookup is total and reports a miss with ok=false.
package registry

import (
	"errors"
	"sort"
)

// ObjectID identifies an object template. Stable across catalog versions.
type ObjectID uint32

// ComponentID identifies a component slot within one template.
type ComponentID uint32

// FieldID identifies a field within one component type.
type FieldID uint32

var (
	ErrDuplicateObject    = errors.New("registry: duplicate object id")
	ErrDuplicateName      = errors.New("registry: duplicate template name")
	ErrDuplicateComponent = errors.New("registry: duplicate component id")
	ErrDuplicateField     = errors.New("registry: duplicate field id")
	ErrNilComponentType   = errors.New("registry: nil component type")
	ErrInstanceType       = errors.New("registry: instance has wrong type")

	// ErrDuplicateComponentType means two slots of one template would share
	// a single ECS store, so one would overwrite the other on instantiate.
	ErrDuplicateComponentType = errors.New("registry: component type used twice in one template")
)

type Registry struct {
	templates map[ObjectID]*Template
	byName    map[string]*Template
	ids       []ObjectID
}

// ResolveObjectTemplate finds the template placed objects with id are
// instantiated from.
func (r *Registry) ResolveObjectTemplate(id ObjectID) (*Template, bool) {
	if r == nil {
		return nil, false
	}
	t, ok := r.templates[id]
	return t, ok
}

// ResolveComponentType finds the concrete type behind a component slot of
// an object template.
func (r *Registry) ResolveComponentType(object ObjectID, id ComponentID) (ComponentType, bool) {
	t, ok := r.ResolveObjectTemplate(object)
	if !ok {
		return nil, false
	}
	tc, ok := t.Component(id)
	if !ok {
		return nil, false
	}
	return tc.Type, true
}

func (r *Registry) ResolveFieldDescriptor(ct ComponentType, id FieldID) (FieldDescriptor, bool) {
	if ct == nil {
		return FieldDescriptor{}, false
	}
	return ct.Field(id)
}

// TemplateByName finds a template by its catalog name.
func (r *Registry) TemplateByName(name string) (*Template, bool) {
	if r == nil {
		return nil, false
	}
	t, ok := r.byName[name]
	return t, ok
}

// Templates returns every template ordered by ObjectID.
func (r *Registry) Templates() []*Template {
	if r == nil {
		return nil
	}
	out := make([]*Template, 0, len(r.ids))
	for _, id := range r.ids {
		out = append(out, r.templates[id])
	}
	return out
}

func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.templates)
}

func sortedIDs(m map[ObjectID]*Template) []ObjectID {
	ids := make([]ObjectID, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
