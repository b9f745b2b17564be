package scene

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/milk9111/pulserun/ecs"
	"github.com/milk9111/pulserun/ecs/component"
	"github.com/milk9111/pulserun/level"
	"github.com/milk9111/pulserun/levels"
)

// Loader is the part of levels.Store a session reads from.
type Loader interface {
	Load(name string, ns levels.Namespace) (*level.Document, error)
}

type reloadMode int

const (
	onLevelChange reloadMode = iota
	onReload
)

// Session owns the level currently built into a world. Gameplay systems
// never load levels themselves; they add ReloadRequest,
// LevelChangeRequest or ResetToInitialLevelRequest entities and the session
// acts on them in Update.
type Session struct {
	world  *ecs.World
	engine *Engine
	loader Loader
	log    *zap.Logger

	levelName        string
	namespace        levels.Namespace
	initialLevelName string
	initialNamespace levels.Namespace

	initialized bool
	root        ecs.Entity
	stats       Stats
	loads       uint64
}

func NewSession(w *ecs.World, engine *Engine, loader Loader, initial string, ns levels.Namespace, log *zap.Logger) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	return &Session{
		world:            w,
		engine:           engine,
		loader:           loader,
		log:              log.Named("session"),
		levelName:        initial,
		namespace:        ns,
		initialLevelName: initial,
		initialNamespace: ns,
	}
}

// Update performs the first load, then serves at most one pending request
// per call. Reset wins over reload, which wins over a level change.
func (s *Session) Update() error {
	if s == nil || s.world == nil {
		return nil
	}
	w := s.world

	if !s.initialized {
		if err := s.reloadWorld(onReload); err != nil {
			return fmt.Errorf("scene: initial load: %w", err)
		}
		s.initialized = true
		return nil
	}

	if _, ok := ecs.First(w, component.ResetToInitialLevelRequestComponent.Kind()); ok {
		destroyAll(w, component.ResetToInitialLevelRequestComponent.Kind())
		return s.Load(s.initialLevelName, s.initialNamespace)
	}

	if _, ok := ecs.First(w, component.ReloadRequestComponent.Kind()); ok {
		destroyAll(w, component.ReloadRequestComponent.Kind())
		return s.Reload()
	}

	if e, ok := ecs.First(w, component.LevelChangeRequestComponent.Kind()); ok {
		req, _ := ecs.Get(w, e, component.LevelChangeRequestComponent.Kind())
		target := *req
		destroyAll(w, component.LevelChangeRequestComponent.Kind())

		if target.TargetLevel == "" {
			return nil
		}
		ns := levels.Builtin
		if target.UserLevel {
			ns = levels.User
		}
		return s.Load(target.TargetLevel, ns)
	}
	return nil
}

// Load switches to another level. When the level cannot be read the
// current one stays built.
func (s *Session) Load(name string, ns levels.Namespace) error {
	prevName, prevNS := s.levelName, s.namespace
	s.levelName, s.namespace = name, ns
	if err := s.reloadWorld(onLevelChange); err != nil {
		s.levelName, s.namespace = prevName, prevNS
		return err
	}
	s.initialized = true
	return nil
}

// Reload rebuilds the current level from storage.
func (s *Session) Reload() error {
	return s.reloadWorld(onReload)
}

func (s *Session) Root() ecs.Entity { return s.root }
func (s *Session) Stats() Stats     { return s.stats }
func (s *Session) Loads() uint64    { return s.loads }

func (s *Session) Level() (string, levels.Namespace) {
	return s.levelName, s.namespace
}

func (s *Session) reloadWorld(mode reloadMode) error {
	doc, err := s.loader.Load(s.levelName, s.namespace)
	if err != nil {
		return fmt.Errorf("scene: load %s/%s: %w", s.namespace, s.levelName, err)
	}

	s.prune(mode)
	root, _, stats := Build(s.world, s.engine, doc)
	loaded := &component.LevelLoaded{
		Name:    doc.Name,
		Objects: stats.Objects,
		Skipped: stats.Skipped(),
	}
	if err := ecs.Add(s.world, root, component.LevelLoadedComponent.Kind(), loaded); err != nil {
		s.log.Error("mark level loaded", zap.String("name", s.levelName), zap.Error(err))
	}
	s.root = root
	s.stats = stats
	s.loads++

	s.log.Info("level loaded",
		zap.String("name", s.levelName),
		zap.Stringer("namespace", s.namespace),
		zap.Int("objects", stats.Objects),
		zap.Int("skipped", stats.Skipped()),
		zap.Uint64("sequence", s.loads),
	)
	return nil
}

// prune destroys every entity that does not survive mode.
func (s *Session) prune(mode reloadMode) {
	toDestroy := make([]ecs.Entity, 0)
	for _, e := range ecs.Entities(s.world) {
		p, ok := ecs.Get(s.world, e, component.PersistentComponent.Kind())
		if !ok || !shouldKeep(p, mode) {
			toDestroy = append(toDestroy, e)
		}
	}
	for _, e := range toDestroy {
		ecs.DestroyEntity(s.world, e)
	}
}

func shouldKeep(p *component.Persistent, mode reloadMode) bool {
	if mode == onLevelChange {
		return p.KeepOnLevelChange
	}
	return p.KeepOnReload
}

func destroyAll[T any](w *ecs.World, kind component.ComponentKind[T]) {
	var doomed []ecs.Entity
	ecs.ForEach(w, kind, func(e ecs.Entity, _ *T) {
		doomed = append(doomed, e)
	})
	for _, e := range doomed {
		ecs.DestroyEntity(w, e)
	}
}
