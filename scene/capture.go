package scene

import (
	"fmt"

	"github.com/milk9111/pulserun/common"
	"github.com/milk9111/pulserun/ecs"
	"github.com/milk9111/pulserun/ecs/component"
	"github.com/milk9111/pulserun/level"
	"github.com/milk9111/pulserun/registry"
)

// Capture writes the placed children of parent back into a document.
//
// Metadata is copied from meta when given, otherwise from the parent's
// LevelSettings. For every template component, only fields whose live
// value encodes differently from the template default are recorded, in
// component then field table order.
func Capture(w *ecs.World, reg *registry.Registry, parent ecs.Entity, meta *level.Document) (*level.Document, error) {
	doc := level.Default()
	switch {
	case meta != nil:
		*doc = *meta
	default:
		if s, ok := ecs.Get(w, parent, component.LevelSettingsComponent.Kind()); ok {
			doc.Name = s.Name
			doc.BackgroundColor = s.BackgroundColor
			doc.GroundColor = s.GroundColor
			doc.FogColor = s.FogColor
			doc.StartGamemode = s.Gamemode
			doc.StartSpeed = s.Speed
			doc.Song = s.Song
		}
	}
	doc.Objects = nil

	for _, child := range ecs.Children(w, parent) {
		placed, ok := ecs.Get(w, child, component.PlacedComponent.Kind())
		if !ok {
			continue
		}
		obj, err := captureObject(w, reg, child, placed)
		if err != nil {
			return nil, err
		}
		doc.Objects = append(doc.Objects, obj)
	}
	return doc, nil
}

func captureObject(w *ecs.World, reg *registry.Registry, e ecs.Entity, placed *component.Placed) (level.PlacedObject, error) {
	id := registry.ObjectID(placed.ObjectID)
	obj := level.Place(id, common.Vec3{})
	if tr, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		obj.Position = tr.Position
		obj.Rotation = tr.Rotation
		obj.Scale = tr.Scale
	}

	tmpl, ok := reg.ResolveObjectTemplate(id)
	if !ok {
		return obj, nil
	}
	for _, tc := range tmpl.Components {
		live, ok := tc.Type.Instance(w, e)
		if !ok {
			continue
		}
		def, err := tmpl.DefaultInstance(tc.ID)
		if err != nil {
			return obj, fmt.Errorf("scene: capture %s: %w", tmpl.Name, err)
		}
		for _, fd := range tc.Type.Fields() {
			got, err := fd.Capture(live)
			if err != nil {
				return obj, fmt.Errorf("scene: capture %s.%s: %w", tc.Type.Name(), fd.Name, err)
			}
			want, err := fd.Capture(def)
			if err != nil {
				return obj, fmt.Errorf("scene: capture %s.%s: %w", tc.Type.Name(), fd.Name, err)
			}
			if got != want {
				obj.Override(tc.ID, fd.ID, got)
			}
		}
	}
	return obj, nil
}
