package scene

import (
	"go.uber.org/zap"

	"github.com/milk9111/pulserun/ecs"
	"github.com/milk9111/pulserun/ecs/component"
	"github.com/milk9111/pulserun/level"
)

// Build creates a level root carrying the document's settings and
// reconstructs every placed object under it.
func Build(w *ecs.World, engine *Engine, doc *level.Document) (ecs.Entity, []ecs.Entity, Stats) {
	if doc == nil {
		doc = level.Default()
	}
	root := ecs.CreateEntity(w)
	if err := ecs.Add(w, root, component.TransformComponent.Kind(), component.NewTransform()); err != nil {
		engine.log.Error("level root: add transform", zap.String("level", doc.Name), zap.Error(err))
	}
	if err := ecs.Add(w, root, component.LevelSettingsComponent.Kind(), Settings(doc)); err != nil {
		engine.log.Error("level root: add settings", zap.String("level", doc.Name), zap.Error(err))
	}

	objects, stats := engine.Reconstruct(w, root, doc)
	return root, objects, stats
}

// Settings extracts the runtime level settings from doc.
func Settings(doc *level.Document) *component.LevelSettings {
	return &component.LevelSettings{
		Name:            doc.Name,
		BackgroundColor: doc.BackgroundColor,
		GroundColor:     doc.GroundColor,
		FogColor:        doc.FogColor,
		Gamemode:        doc.StartGamemode,
		Speed:           doc.StartSpeed,
		Song:            doc.Song,
	}
}
