package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/pulserun/common"
	"github.com/milk9111/pulserun/config"
	"github.com/milk9111/pulserun/level"
	"github.com/milk9111/pulserun/levels"
)

func seededStore(t *testing.T) *levels.Store {
	t.Helper()
	s := levels.NewStore(config.Storage{Root: t.TempDir(), BuiltinDir: "b", UserDir: "u"}, config.Production, nil)

	add := func(name string, ns levels.Namespace, diff level.Difficulty, objects int) {
		d := level.New(name)
		d.Difficulty = diff
		d.Song = name + ".ogg"
		for i := 0; i < objects; i++ {
			d.Add(level.Place(1, common.V3(float64(i), 0, 0)))
		}
		require.NoError(t, s.Save(d, ns))
	}
	add("alpha", levels.Builtin, level.DifficultyEasy, 3)
	add("bravo", levels.Builtin, level.DifficultyHard, 10)
	add("charlie", levels.User, level.DifficultyEasy, 1)
	add("delta", levels.User, level.DifficultyInsane, 40)
	add("alpha", levels.User, level.DifficultyNormal, 5)
	return s
}

func openCatalog(t *testing.T, src Source) *Catalog {
	t.Helper()
	c, err := Open(":memory:", nil)
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	n, err := c.Rebuild(context.Background(), src)
	require.NoError(t, err)
	require.Equal(t, 5, n)
	return c
}

func names(entries []Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Namespace.String()+"/"+e.Name)
	}
	return out
}

func TestQueryOrdersByDifficultyThenName(t *testing.T) {
	c := openCatalog(t, seededStore(t))

	got, err := c.Query(context.Background(), Filter{})
	require.NoError(t, err)
	assert.Equal(t, []string{"builtin/alpha", "user/charlie", "user/alpha", "builtin/bravo", "user/delta"}, names(got))
}

func TestQueryFilters(t *testing.T) {
	c := openCatalog(t, seededStore(t))
	user := levels.User
	normal := level.DifficultyNormal
	hard := level.DifficultyHard

	cases := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"namespace", Filter{Namespace: &user}, []string{"user/charlie", "user/alpha", "user/delta"}},
		{"min difficulty", Filter{MinDifficulty: &hard}, []string{"builtin/bravo", "user/delta"}},
		{"range", Filter{MinDifficulty: &normal, MaxDifficulty: &hard}, []string{"user/alpha", "builtin/bravo"}},
		{"where objects", Filter{Where: "objects >= 5"}, []string{"user/alpha", "builtin/bravo", "user/delta"}},
		{"where combined", Filter{Namespace: &user, Where: `difficulty == "easy" || rank > 5`}, []string{"user/charlie", "user/delta"}},
		{"where song", Filter{Where: `song == "bravo.ogg"`}, []string{"builtin/bravo"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := c.Query(context.Background(), tc.filter)
			require.NoError(t, err)
			assert.Equal(t, tc.want, names(got))
		})
	}
}

func TestQueryWhereErrors(t *testing.T) {
	c := openCatalog(t, seededStore(t))

	_, err := c.Query(context.Background(), Filter{Where: "objects +"})
	assert.Error(t, err, "syntax error")

	_, err = c.Query(context.Background(), Filter{Where: "objects * 2"})
	assert.ErrorContains(t, err, "not bool")
}

func TestGet(t *testing.T) {
	src := seededStore(t)
	c := openCatalog(t, src)

	e, err := c.Get(context.Background(), "delta", levels.User)
	require.NoError(t, err)
	assert.Equal(t, level.DifficultyInsane, e.Difficulty)
	assert.Equal(t, 40, e.Objects)
	path, _ := src.Path("delta", levels.User)
	assert.Equal(t, path, e.Path)

	_, err = c.Get(context.Background(), "delta", levels.Builtin)
	assert.ErrorIs(t, err, ErrNotIndexed)
}

func TestRebuildSkipsBrokenLevels(t *testing.T) {
	src := seededStore(t)
	require.NoError(t, os.WriteFile(filepath.Join(src.Dir(levels.User), "broken.ulevel"), []byte("objects: 3"), 0o644))

	c := openCatalog(t, src)
	_, err := c.Get(context.Background(), "broken", levels.User)
	assert.ErrorIs(t, err, ErrNotIndexed)
}

func TestRebuildReplacesIndex(t *testing.T) {
	src := seededStore(t)
	c := openCatalog(t, src)

	require.NoError(t, src.Delete("delta", levels.User))
	n, err := c.Rebuild(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	_, err = c.Get(context.Background(), "delta", levels.User)
	assert.ErrorIs(t, err, ErrNotIndexed)
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "catalog.db")
	c, err := Open(path, nil)
	require.NoError(t, err)
	require.NoError(t, c.Close())

	c, err = Open(path, nil)
	require.NoError(t, err, "reopen runs migrations again")
	require.NoError(t, c.Close())
}
