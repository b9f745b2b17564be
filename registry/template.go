package registry

import (
	"fmt"

	"github.com/milk9111/pulserun/ecs"
	"github.com/milk9111/pulserun/ecs/component"
)

// Template is the blueprint a placed object is instantiated from.
type Template struct {
	ObjectID   ObjectID
	Name       string
	Components []TemplateComponent
}

// TemplateComponent is one component slot of a template. Defaults holds
// YAML-shaped data (maps, slices, scalars) decoded into a fresh instance
// each time the template is instantiated.
type TemplateComponent struct {
	ID       ComponentID
	Type     ComponentType
	Defaults any
}

func (t *Template) Component(id ComponentID) (TemplateComponent, bool) {
	for _, tc := range t.Components {
		if tc.ID == id {
			return tc, true
		}
	}
	return TemplateComponent{}, false
}

// Instantiate creates an entity under parent with a Placed marker, an
// identity Transform and every template component. Nothing is created when
// a component's defaults fail to decode.
func (t *Template) Instantiate(w *ecs.World, parent ecs.Entity) (ecs.Entity, error) {
	instances := make([]any, len(t.Components))
	for i, tc := range t.Components {
		inst, err := tc.Type.New(tc.Defaults)
		if err != nil {
			return 0, fmt.Errorf("registry: instantiate %s: component %d: %w", t.Name, tc.ID, err)
		}
		instances[i] = inst
	}

	e := ecs.CreateChild(w, parent)
	if !e.Valid() {
		return 0, fmt.Errorf("registry: instantiate %s: %w", t.Name, component.ErrEntityNotAlive)
	}
	placed := &component.Placed{ObjectID: uint32(t.ObjectID), Template: t.Name}
	if err := ecs.Add(w, e, component.PlacedComponent.Kind(), placed); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("registry: instantiate %s: %w", t.Name, err)
	}
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), component.NewTransform()); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("registry: instantiate %s: %w", t.Name, err)
	}
	for i, tc := range t.Components {
		if err := tc.Type.Attach(w, e, instances[i]); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("registry: instantiate %s: component %d: %w", t.Name, tc.ID, err)
		}
	}
	return e, nil
}

// DefaultInstance decodes the defaults of component id without touching a
// world.
func (t *Template) DefaultInstance(id ComponentID) (any, error) {
	tc, ok := t.Component(id)
	if !ok {
		return nil, fmt.Errorf("registry: %s has no component %d", t.Name, id)
	}
	return tc.Type.New(tc.Defaults)
}
