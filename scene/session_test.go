package scene

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/pulserun/common"
	"github.com/milk9111/pulserun/ecs"
	"github.com/milk9111/pulserun/ecs/component"
	"github.com/milk9111/pulserun/level"
	"github.com/milk9111/pulserun/levels"
)

type memLoader map[string]*level.Document

func (m memLoader) Load(name string, ns levels.Namespace) (*level.Document, error) {
	doc, ok := m[ns.String()+"/"+name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", levels.ErrNotFound, name)
	}
	return doc, nil
}

func withObjects(name string, n int) *level.Document {
	d := level.New(name)
	for i := 0; i < n; i++ {
		d.Add(level.Place(1, common.V3(float64(i), 0, 0)))
	}
	return d
}

func newSession(t *testing.T, loader memLoader) (*Session, *ecs.World) {
	t.Helper()
	w := ecs.NewWorld()
	return NewSession(w, newEngine(t), loader, "intro", levels.Builtin, nil), w
}

func request[T any](w *ecs.World, kind component.ComponentKind[T], v *T) {
	_ = ecs.Add(w, ecs.CreateEntity(w), kind, v)
}

func TestSessionInitialLoad(t *testing.T) {
	s, w := newSession(t, memLoader{"builtin/intro": withObjects("intro", 3)})

	require.NoError(t, s.Update())
	assert.Equal(t, 3, s.Stats().Objects)
	assert.Len(t, ecs.Children(w, s.Root()), 3)

	loaded, ok := ecs.Get(w, s.Root(), component.LevelLoadedComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, component.LevelLoaded{Name: "intro", Objects: 3}, *loaded)
}

func TestSessionInitialLoadFails(t *testing.T) {
	s, _ := newSession(t, memLoader{})
	err := s.Update()
	assert.ErrorIs(t, err, levels.ErrNotFound)
}

func TestSessionLevelChangeRequest(t *testing.T) {
	loader := memLoader{
		"builtin/intro": withObjects("intro", 2),
		"user/mine":     withObjects("mine", 5),
	}
	s, w := newSession(t, loader)
	require.NoError(t, s.Update())
	oldRoot := s.Root()

	request(w, component.LevelChangeRequestComponent.Kind(), &component.LevelChangeRequest{TargetLevel: "mine", UserLevel: true})
	require.NoError(t, s.Update())

	name, ns := s.Level()
	assert.Equal(t, "mine", name)
	assert.Equal(t, levels.User, ns)
	assert.False(t, ecs.IsAlive(w, oldRoot))
	assert.Len(t, ecs.Children(w, s.Root()), 5)
	_, pending := ecs.First(w, component.LevelChangeRequestComponent.Kind())
	assert.False(t, pending)
	assert.Len(t, ecs.Entities(w), 6)
}

func TestSessionFailedChangeKeepsLevel(t *testing.T) {
	s, w := newSession(t, memLoader{"builtin/intro": withObjects("intro", 2)})
	require.NoError(t, s.Update())
	root := s.Root()

	request(w, component.LevelChangeRequestComponent.Kind(), &component.LevelChangeRequest{TargetLevel: "missing"})
	assert.ErrorIs(t, s.Update(), levels.ErrNotFound)

	name, _ := s.Level()
	assert.Equal(t, "intro", name)
	assert.True(t, ecs.IsAlive(w, root))
	assert.Equal(t, uint64(1), s.Loads())
}

func TestSessionReloadPicksUpChanges(t *testing.T) {
	loader := memLoader{"builtin/intro": withObjects("intro", 1)}
	s, w := newSession(t, loader)
	require.NoError(t, s.Update())

	loader["builtin/intro"] = withObjects("intro", 4)
	request(w, component.ReloadRequestComponent.Kind(), &component.ReloadRequest{})
	require.NoError(t, s.Update())

	assert.Equal(t, 4, s.Stats().Objects)
	assert.Equal(t, uint64(2), s.Loads())
}

func TestSessionResetToInitial(t *testing.T) {
	loader := memLoader{
		"builtin/intro": withObjects("intro", 1),
		"builtin/next":  withObjects("next", 2),
	}
	s, w := newSession(t, loader)
	require.NoError(t, s.Update())
	require.NoError(t, s.Load("next", levels.Builtin))

	request(w, component.ResetToInitialLevelRequestComponent.Kind(), &component.ResetToInitialLevelRequest{})
	require.NoError(t, s.Update())

	name, _ := s.Level()
	assert.Equal(t, "intro", name)
}

func TestSessionKeepsPersistentEntities(t *testing.T) {
	loader := memLoader{
		"builtin/intro": withObjects("intro", 1),
		"builtin/next":  withObjects("next", 1),
	}
	s, w := newSession(t, loader)
	require.NoError(t, s.Update())

	camera := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, camera, component.PersistentComponent.Kind(), &component.Persistent{ID: "camera", KeepOnLevelChange: true, KeepOnReload: true}))
	hud := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, hud, component.PersistentComponent.Kind(), &component.Persistent{ID: "hud", KeepOnReload: true}))

	require.NoError(t, s.Reload())
	assert.True(t, ecs.IsAlive(w, camera))
	assert.True(t, ecs.IsAlive(w, hud))

	require.NoError(t, s.Load("next", levels.Builtin))
	assert.True(t, ecs.IsAlive(w, camera))
	assert.False(t, ecs.IsAlive(w, hud))
}
