// Package level defines the level document and its YAML file format.
package level

import (
	"github.com/milk9111/pulserun/codec"
	"github.com/milk9111/pulserun/common"
	"github.com/milk9111/pulserun/ecs/component"
	"github.com/milk9111/pulserun/registry"
)

var (
	DefaultBackgroundColor = common.RGBA(0.157, 0.388, 0.965, 1)
	DefaultGroundColor     = common.RGBA(0, 0.4, 1, 1)
	DefaultFogColor        = common.RGBA(0, 0, 0, 0)
)

// Document is one saved level: metadata plus every placed object in
// placement order.
type Document struct {
	Name            string             `yaml:"name"`
	Description     string             `yaml:"description,omitempty"`
	BackgroundColor common.Color       `yaml:"background_color"`
	GroundColor     common.Color       `yaml:"ground_color"`
	FogColor        common.Color       `yaml:"fog_color"`
	StartGamemode   component.Gamemode `yaml:"start_gamemode"`
	StartSpeed      component.Speed    `yaml:"start_speed"`
	Difficulty      Difficulty         `yaml:"difficulty"`
	Song            string             `yaml:"song,omitempty"`
	Objects         []PlacedObject     `yaml:"objects,omitempty"`
}

// PlacedObject is one instance of an object template.
type PlacedObject struct {
	ObjectID   registry.ObjectID   `yaml:"id"`
	Position   common.Vec3         `yaml:"position"`
	Rotation   common.Quat         `yaml:"rotation"`
	Scale      common.Vec3         `yaml:"scale"`
	Components []ComponentOverride `yaml:"components,omitempty"`
}

type ComponentOverride struct {
	ComponentID registry.ComponentID `yaml:"id"`
	Fields      []FieldOverride      `yaml:"fields,omitempty"`
}

// FieldOverride holds one encoded field value. Its type is not stored; it
// comes from the field descriptor when the level is built.
type FieldOverride struct {
	FieldID registry.FieldID   `yaml:"id"`
	Value   codec.EncodedValue `yaml:"value"`
}

// Default returns an empty level with default colors and start state.
func Default() *Document {
	return &Document{
		BackgroundColor: DefaultBackgroundColor,
		GroundColor:     DefaultGroundColor,
		FogColor:        DefaultFogColor,
		StartGamemode:   component.GamemodeCube,
		StartSpeed:      component.SpeedNormal,
	}
}

// New returns a default level called name.
func New(name string) *Document {
	d := Default()
	d.Name = name
	return d
}

// Place returns a placement of id at position with identity rotation and
// unit scale.
func Place(id registry.ObjectID, position common.Vec3) PlacedObject {
	return PlacedObject{ObjectID: id, Position: position, Rotation: common.Identity, Scale: common.One}
}

// Add appends obj and returns a pointer to the stored copy.
func (d *Document) Add(obj PlacedObject) *PlacedObject {
	d.Objects = append(d.Objects, obj)
	return &d.Objects[len(d.Objects)-1]
}

// Override sets field of component to value, replacing an existing override
// of the same field and otherwise appending in call order.
func (o *PlacedObject) Override(comp registry.ComponentID, field registry.FieldID, value codec.EncodedValue) {
	var co *ComponentOverride
	for i := range o.Components {
		if o.Components[i].ComponentID == comp {
			co = &o.Components[i]
			break
		}
	}
	if co == nil {
		o.Components = append(o.Components, ComponentOverride{ComponentID: comp})
		co = &o.Components[len(o.Components)-1]
	}
	for i := range co.Fields {
		if co.Fields[i].FieldID == field {
			co.Fields[i].Value = value
			return
		}
	}
	co.Fields = append(co.Fields, FieldOverride{FieldID: field, Value: value})
}

// OverrideCount returns the number of field overrides across all objects.
func (d *Document) OverrideCount() int {
	n := 0
	for _, obj := range d.Objects {
		for _, co := range obj.Components {
			n += len(co.Fields)
		}
	}
	return n
}
