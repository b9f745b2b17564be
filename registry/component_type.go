package registry

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/milk9111/pulserun/ecs"
	"github.com/milk9111/pulserun/ecs/component"
)

// ComponentType binds a gameplay component struct to its ECS store and its
// field table. Instances are passed around as pointers to the struct.
type ComponentType interface {
	Name() string
	Fields() []FieldDescriptor
	Field(id FieldID) (FieldDescriptor, bool)
	// New returns a fresh instance decoded from template defaults. nil
	// defaults yield the zero value.
	New(defaults any) (any, error)
	Attach(w *ecs.World, e ecs.Entity, instance any) error
	Instance(w *ecs.World, e ecs.Entity) (any, bool)

	store() component.ComponentID
}

type componentType[C any] struct {
	name   string
	kind   component.ComponentKind[C]
	fields []FieldDescriptor
	byID   map[FieldID]int
}

// NewComponentType describes component C. Field lookups by ID are indexed
// here, once; when two fields share an ID the first wins and Builder.Build
// reports the conflict.
func NewComponentType[C any](name string, kind component.ComponentKind[C], fields ...FieldDescriptor) ComponentType {
	ct := &componentType[C]{
		name:   name,
		kind:   kind,
		fields: fields,
		byID:   make(map[FieldID]int, len(fields)),
	}
	for i, f := range fields {
		if _, ok := ct.byID[f.ID]; !ok {
			ct.byID[f.ID] = i
		}
	}
	return ct
}

func (c *componentType[C]) Name() string { return c.name }

func (c *componentType[C]) store() component.ComponentID { return c.kind.ID() }

func (c *componentType[C]) Fields() []FieldDescriptor {
	return append([]FieldDescriptor(nil), c.fields...)
}

func (c *componentType[C]) Field(id FieldID) (FieldDescriptor, bool) {
	i, ok := c.byID[id]
	if !ok {
		return FieldDescriptor{}, false
	}
	return c.fields[i], true
}

func (c *componentType[C]) New(defaults any) (any, error) {
	out := new(C)
	if defaults == nil {
		return out, nil
	}
	b, err := yaml.Marshal(defaults)
	if err != nil {
		return nil, fmt.Errorf("registry: %s defaults: %w", c.name, err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("registry: %s defaults: %w", c.name, err)
	}
	return out, nil
}

func (c *componentType[C]) Attach(w *ecs.World, e ecs.Entity, instance any) error {
	v, ok := instance.(*C)
	if !ok {
		return fmt.Errorf("%w: %s wants *%s, got %T", ErrInstanceType, c.name, c.kind, instance)
	}
	return ecs.Add(w, e, c.kind, v)
}

func (c *componentType[C]) Instance(w *ecs.World, e ecs.Entity) (any, bool) {
	v, ok := ecs.Get(w, e, c.kind)
	if !ok {
		return nil, false
	}
	return v, true
}
