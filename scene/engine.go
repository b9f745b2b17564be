// Package scene rebuilds live ECS entities from level documents and
// captures them back.
package scene

import (
	"go.uber.org/zap"

	"github.com/milk9111/pulserun/config"
	"github.com/milk9111/pulserun/ecs"
	"github.com/milk9111/pulserun/ecs/component"
	"github.com/milk9111/pulserun/level"
	"github.com/milk9111/pulserun/registry"
)

// Stats counts what one reconstruction created and what it skipped.
type Stats struct {
	Objects             int
	FieldsApplied       int
	UnknownObjects      int
	InstantiateFailures int
	UnknownComponents   int
	MissingInstances    int
	UnknownFields       int
	DecodeFailures      int
}

// Skipped is the total number of records dropped.
func (s Stats) Skipped() int {
	return s.UnknownObjects + s.InstantiateFailures + s.UnknownComponents +
		s.MissingInstances + s.UnknownFields + s.DecodeFailures
}

// Engine instantiates level documents against a registry. It holds no
// per-load state, so one Engine can build into many worlds.
type Engine struct {
	reg  *registry.Registry
	mode config.Mode
	log  *zap.Logger
}

// NewEngine returns an engine over reg. In development mode malformed field
// values are logged at warn level instead of debug.
func NewEngine(reg *registry.Registry, mode config.Mode, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{reg: reg, mode: mode, log: log.Named("scene")}
}

func (e *Engine) Registry() *registry.Registry {
	return e.reg
}

// Reconstruct creates one child of parent per resolvable placed object, in
// document order, and applies its field overrides. Nothing in doc can make
// it fail: unknown IDs and bad values are skipped, counted and logged.
func (e *Engine) Reconstruct(w *ecs.World, parent ecs.Entity, doc *level.Document) ([]ecs.Entity, Stats) {
	var stats Stats
	if doc == nil {
		return nil, stats
	}

	created := make([]ecs.Entity, 0, len(doc.Objects))
	for i := range doc.Objects {
		obj := &doc.Objects[i]
		ent, ok := e.place(w, parent, i, obj, &stats)
		if !ok {
			continue
		}
		created = append(created, ent)
		stats.Objects++
	}

	e.log.Debug("reconstructed level",
		zap.String("level", doc.Name),
		zap.Int("objects", stats.Objects),
		zap.Int("fields", stats.FieldsApplied),
		zap.Int("skipped", stats.Skipped()),
	)
	return created, stats
}

func (e *Engine) place(w *ecs.World, parent ecs.Entity, index int, obj *level.PlacedObject, stats *Stats) (ecs.Entity, bool) {
	tmpl, ok := e.reg.ResolveObjectTemplate(obj.ObjectID)
	if !ok {
		stats.UnknownObjects++
		e.log.Debug("skip object: unknown id",
			zap.Int("index", index),
			zap.Uint32("object_id", uint32(obj.ObjectID)),
		)
		return 0, false
	}

	ent, err := tmpl.Instantiate(w, parent)
	if err != nil {
		stats.InstantiateFailures++
		e.log.Debug("skip object: instantiate failed",
			zap.Int("index", index),
			zap.Uint32("object_id", uint32(obj.ObjectID)),
			zap.Error(err),
		)
		return 0, false
	}

	if tr, ok := ecs.Get(w, ent, component.TransformComponent.Kind()); ok {
		tr.Position = obj.Position
		tr.Rotation = obj.Rotation
		tr.Scale = tr.Scale.Scale(obj.Scale)
	}

	for _, co := range obj.Components {
		e.patch(w, ent, index, obj.ObjectID, co, stats)
	}
	return ent, true
}

func (e *Engine) patch(w *ecs.World, ent ecs.Entity, index int, object registry.ObjectID, co level.ComponentOverride, stats *Stats) {
	ct, ok := e.reg.ResolveComponentType(object, co.ComponentID)
	if !ok {
		stats.UnknownComponents++
		e.log.Debug("skip component: unknown id",
			zap.Int("index", index),
			zap.Uint32("object_id", uint32(object)),
			zap.Uint32("component_id", uint32(co.ComponentID)),
		)
		return
	}
	inst, ok := ct.Instance(w, ent)
	if !ok {
		stats.MissingInstances++
		e.log.Debug("skip component: not on entity",
			zap.Int("index", index),
			zap.Uint32("object_id", uint32(object)),
			zap.String("component", ct.Name()),
		)
		return
	}

	for _, fo := range co.Fields {
		fd, ok := e.reg.ResolveFieldDescriptor(ct, fo.FieldID)
		if !ok {
			stats.UnknownFields++
			e.log.Debug("skip field: unknown id",
				zap.Int("index", index),
				zap.String("component", ct.Name()),
				zap.Uint32("field_id", uint32(fo.FieldID)),
			)
			continue
		}
		if err := fd.Apply(inst, fo.Value); err != nil {
			stats.DecodeFailures++
			logf := e.log.Debug
			if e.mode.Development() {
				logf = e.log.Warn
			}
			logf("skip field: bad value",
				zap.Int("index", index),
				zap.String("component", ct.Name()),
				zap.String("field", fd.Name),
				zap.Error(err),
			)
			continue
		}
		stats.FieldsApplied++
	}
}
