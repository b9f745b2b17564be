package scene

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/milk9111/pulserun/codec"
	"github.com/milk9111/pulserun/common"
	"github.com/milk9111/pulserun/config"
	"github.com/milk9111/pulserun/ecs"
	"github.com/milk9111/pulserun/ecs/component"
	"github.com/milk9111/pulserun/level"
	"github.com/milk9111/pulserun/levels"
	"github.com/milk9111/pulserun/prefabs"
	"github.com/milk9111/pulserun/registry"
)

func newEngine(t *testing.T) *Engine {
	t.Helper()
	reg, err := prefabs.NewRegistry("")
	require.NoError(t, err)
	return NewEngine(reg, config.Production, nil)
}

func exampleDoc() *level.Document {
	d := level.New("Test")
	obj := d.Add(level.Place(7, common.V3(0, 0, 0)))
	obj.Override(2, 1, codec.MustEncode(common.RGBA(1, 0, 0, 1)))
	return d
}

func tintOf(t *testing.T, w *ecs.World, e ecs.Entity) *component.Tint {
	t.Helper()
	tint, ok := ecs.Get(w, e, component.TintComponent.Kind())
	require.True(t, ok)
	return tint
}

func TestExampleScenario(t *testing.T) {
	store := levels.NewStore(config.Storage{Root: t.TempDir(), BuiltinDir: "b", UserDir: "u"}, config.Development, nil)
	doc := exampleDoc()
	require.NoError(t, store.Save(doc, levels.User))

	loaded, err := store.Load("Test", levels.User)
	require.NoError(t, err)
	require.Empty(t, cmp.Diff(doc, loaded, cmpopts.EquateEmpty()))

	w := ecs.NewWorld()
	root := ecs.CreateEntity(w)
	objects, stats := newEngine(t).Reconstruct(w, root, loaded)

	require.Len(t, objects, 1)
	assert.Equal(t, 1, stats.Objects)
	assert.Equal(t, 1, stats.FieldsApplied)
	assert.Zero(t, stats.Skipped())
	assert.Equal(t, common.Red, tintOf(t, w, objects[0]).Color)
	assert.Equal(t, []ecs.Entity{objects[0]}, ecs.Children(w, root))
}

func TestUnknownObjectIsSkipped(t *testing.T) {
	doc := level.New("gaps")
	doc.Add(level.Place(7, common.V3(1, 0, 0)))
	doc.Add(level.Place(999, common.V3(2, 0, 0)))
	doc.Add(level.Place(1, common.V3(3, 0, 0)))

	w := ecs.NewWorld()
	objects, stats := newEngine(t).Reconstruct(w, 0, doc)

	require.Len(t, objects, 2)
	assert.Equal(t, 1, stats.UnknownObjects)
	for i, x := range []float64{1, 3} {
		tr, ok := ecs.Get(w, objects[i], component.TransformComponent.Kind())
		require.True(t, ok)
		assert.Equal(t, x, tr.Position.X, "document order kept")
	}
}

func TestUnknownFieldDoesNotBlockSiblings(t *testing.T) {
	doc := level.New("fields")
	obj := doc.Add(level.Place(7, common.Vec3{}))
	obj.Override(2, 99, codec.MustEncode("ghost"))
	obj.Override(2, 1, codec.MustEncode(common.Red))
	obj.Override(2, 2, codec.MustEncode(true))

	w := ecs.NewWorld()
	objects, stats := newEngine(t).Reconstruct(w, 0, doc)

	require.Len(t, objects, 1)
	tint := tintOf(t, w, objects[0])
	assert.Equal(t, common.Red, tint.Color)
	assert.True(t, tint.Glow)
	assert.Equal(t, 1, stats.UnknownFields)
	assert.Equal(t, 2, stats.FieldsApplied)
}

func TestBadValueAndUnknownComponentAreSkipped(t *testing.T) {
	doc := level.New("bad")
	obj := doc.Add(level.Place(7, common.Vec3{}))
	obj.Override(42, 1, codec.MustEncode(1))
	obj.Override(2, 1, codec.EncodedValue("{v: notacolor}"))
	obj.Override(2, 2, codec.EncodedValue("not even yaml: ["))
	obj.Override(1, 1, codec.MustEncode(5))

	w := ecs.NewWorld()
	objects, stats := newEngine(t).Reconstruct(w, 0, doc)

	require.Len(t, objects, 1)
	assert.Equal(t, 1, stats.UnknownComponents)
	assert.Equal(t, 2, stats.DecodeFailures)
	assert.Equal(t, 1, stats.FieldsApplied)
	assert.Equal(t, common.White, tintOf(t, w, objects[0]).Color)

	group, ok := ecs.Get(w, objects[0], component.GroupComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, 5, group.ID)
}

func TestSkipsAreLoggedAtDebug(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	reg, err := prefabs.NewRegistry("")
	require.NoError(t, err)
	engine := NewEngine(reg, config.Production, zap.New(core))

	doc := level.New("logged")
	doc.Add(level.Place(999, common.Vec3{}))
	obj := doc.Add(level.Place(7, common.Vec3{}))
	obj.Override(2, 77, codec.MustEncode(1))

	engine.Reconstruct(ecs.NewWorld(), 0, doc)

	unknown := logs.FilterMessage("skip object: unknown id").All()
	require.Len(t, unknown, 1)
	assert.Equal(t, zapcore.DebugLevel, unknown[0].Level)
	assert.EqualValues(t, 999, unknown[0].ContextMap()["object_id"])
	assert.Equal(t, 1, logs.FilterMessage("skip field: unknown id").Len())
}

func TestPatchSkipsComponentMissingFromEntity(t *testing.T) {
	engine := newEngine(t)
	tmpl, ok := engine.Registry().ResolveObjectTemplate(7)
	require.True(t, ok)

	w := ecs.NewWorld()
	ent, err := tmpl.Instantiate(w, 0)
	require.NoError(t, err)
	require.True(t, ecs.Remove(w, ent, component.TintComponent.Kind()))

	obj := level.Place(7, common.Vec3{})
	obj.Override(2, 1, codec.MustEncode(common.Red))

	var stats Stats
	require.NotPanics(t, func() {
		engine.patch(w, ent, 0, 7, obj.Components[0], &stats)
	})
	assert.Equal(t, 1, stats.MissingInstances)
	assert.Zero(t, stats.FieldsApplied)
	assert.False(t, ecs.Has(w, ent, component.TintComponent.Kind()))
}

func TestBadValuesWarnInDevelopment(t *testing.T) {
	reg, err := prefabs.NewRegistry("")
	require.NoError(t, err)

	doc := level.New("dev")
	obj := doc.Add(level.Place(7, common.Vec3{}))
	obj.Override(2, 1, codec.MustEncode("not a color"))

	for mode, want := range map[config.Mode]zapcore.Level{
		config.Development: zapcore.WarnLevel,
		config.Production:  zapcore.DebugLevel,
	} {
		t.Run(string(mode), func(t *testing.T) {
			core, logs := observer.New(zapcore.DebugLevel)
			_, stats := NewEngine(reg, mode, zap.New(core)).Reconstruct(ecs.NewWorld(), 0, doc)
			assert.Equal(t, 1, stats.DecodeFailures)

			bad := logs.FilterMessage("skip field: bad value").All()
			require.Len(t, bad, 1)
			assert.Equal(t, want, bad[0].Level)
		})
	}
}

func TestTransformApplied(t *testing.T) {
	doc := level.New("xf")
	obj := level.Place(3, common.V3(4, 5, 6))
	obj.Rotation = common.Euler(0, 0, 45)
	obj.Scale = common.V3(2, 3, 1)
	doc.Add(obj)

	w := ecs.NewWorld()
	objects, _ := newEngine(t).Reconstruct(w, 0, doc)
	require.Len(t, objects, 1)

	tr, ok := ecs.Get(w, objects[0], component.TransformComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, obj.Position, tr.Position)
	assert.Equal(t, obj.Rotation, tr.Rotation)
	assert.Equal(t, obj.Scale, tr.Scale)
}

func TestReconstructDoesNotMutateDocument(t *testing.T) {
	doc := exampleDoc()
	doc.Add(level.Place(999, common.Vec3{}))
	before, err := level.Marshal(doc)
	require.NoError(t, err)

	newEngine(t).Reconstruct(ecs.NewWorld(), 0, doc)

	after, err := level.Marshal(doc)
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after))
}

func TestJumpPadForceFallback(t *testing.T) {
	doc := level.New("pads")
	doc.Add(level.Place(3, common.Vec3{}))
	explicit := doc.Add(level.Place(4, common.Vec3{}))
	explicit.Override(1, 2, codec.MustEncode(15.5))

	w := ecs.NewWorld()
	objects, stats := newEngine(t).Reconstruct(w, 0, doc)
	require.Len(t, objects, 2)
	assert.Zero(t, stats.Skipped())

	yellow, _ := ecs.Get(w, objects[0], component.JumpPadComponent.Kind())
	assert.False(t, yellow.Force.Set)
	assert.Equal(t, 18.6, yellow.Resolve(component.GamemodeCube))
	assert.Equal(t, 14.4, yellow.Resolve(component.GamemodeShip))
	assert.Equal(t, 18.6, yellow.Resolve(component.GamemodeWave), "missing gamemode uses cube row")

	pink, _ := ecs.Get(w, objects[1], component.JumpPadComponent.Kind())
	assert.Equal(t, 15.5, pink.Resolve(component.GamemodeBall))
}

func TestBuildCarriesSettings(t *testing.T) {
	doc := exampleDoc()
	doc.StartGamemode = component.GamemodeWave
	doc.StartSpeed = component.SpeedHalf
	doc.Song = "songs/x.ogg"

	reg, err := prefabs.NewRegistry("")
	require.NoError(t, err)
	core, logs := observer.New(zapcore.ErrorLevel)

	w := ecs.NewWorld()
	root, objects, stats := Build(w, NewEngine(reg, config.Production, zap.New(core)), doc)
	assert.Zero(t, logs.Len(), "level root components attach cleanly")

	settings, ok := ecs.Get(w, root, component.LevelSettingsComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, component.LevelSettings{
		Name:            "Test",
		BackgroundColor: level.DefaultBackgroundColor,
		GroundColor:     level.DefaultGroundColor,
		FogColor:        level.DefaultFogColor,
		Gamemode:        component.GamemodeWave,
		Speed:           component.SpeedHalf,
		Song:            "songs/x.ogg",
	}, *settings)
	assert.Len(t, objects, 1)
	assert.Equal(t, 1, stats.Objects)
}

func TestCaptureReproducesOverrides(t *testing.T) {
	doc := exampleDoc()
	doc.Difficulty = level.DifficultyHard
	pad := level.Place(3, common.V3(5, 1, 0))
	pad.Scale = common.V3(1, 2, 1)
	pad.Override(1, 2, codec.MustEncode(30.0))
	doc.Add(pad)
	doc.Add(level.Place(11, common.V3(9, 9, 0)))

	engine := newEngine(t)
	w := ecs.NewWorld()
	root, _, _ := Build(w, engine, doc)

	got, err := Capture(w, engine.Registry(), root, doc)
	require.NoError(t, err)
	if diff := cmp.Diff(doc, got, cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("capture mismatch (-want +got):\n%s", diff)
	}
}

func TestCaptureRecordsLiveEdits(t *testing.T) {
	engine := newEngine(t)
	w := ecs.NewWorld()
	root, objects, _ := Build(w, engine, exampleDoc())

	tint := tintOf(t, w, objects[0])
	tint.Color = common.White
	tint.Glow = true
	ecs.Add(w, ecs.CreateChild(w, root), component.LabelComponent.Kind(), &component.Label{Text: "not placed"})

	got, err := Capture(w, engine.Registry(), root, nil)
	require.NoError(t, err)

	assert.Equal(t, "Test", got.Name, "metadata from level settings")
	require.Len(t, got.Objects, 1)
	assert.Equal(t, []level.ComponentOverride{{
		ComponentID: 2,
		Fields:      []level.FieldOverride{{FieldID: 2, Value: codec.MustEncode(true)}},
	}}, got.Objects[0].Components)
}

func TestCaptureKeepsUnknownTemplatePlacement(t *testing.T) {
	w := ecs.NewWorld()
	root := ecs.CreateEntity(w)
	e := ecs.CreateChild(w, root)
	require.NoError(t, ecs.Add(w, e, component.PlacedComponent.Kind(), &component.Placed{ObjectID: 500}))

	got, err := Capture(w, &registry.Registry{}, root, level.New("x"))
	require.NoError(t, err)
	require.Len(t, got.Objects, 1)
	assert.Equal(t, registry.ObjectID(500), got.Objects[0].ObjectID)
	assert.Equal(t, common.Identity, got.Objects[0].Rotation)
}
