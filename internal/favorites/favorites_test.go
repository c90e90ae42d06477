package favorites

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kamusis/deck-cli/internal/catalog"
	"github.com/kamusis/deck-cli/internal/prefs"
)

func ids(list []Favorite) []string {
	out := make([]string, len(list))
	for i, f := range list {
		out[i] = f.ID
	}
	return out
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	store := prefs.NewMemStore()
	f, err := Load(store)
	require.NoError(t, err)
	assert.Equal(t, Defaults, f.List())

	var saved []Favorite
	ok, err := store.Get(prefs.KeyFavorites, &saved)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, Defaults, saved)
}

func TestLoad_SavedEmptyListStaysEmpty(t *testing.T) {
	t.Parallel()

	store := prefs.NewMemStore()
	require.NoError(t, store.Set(prefs.KeyFavorites, []Favorite{}))
	f, err := Load(store)
	require.NoError(t, err)
	assert.Empty(t, f.List())
}

func TestLoad_Corrupt(t *testing.T) {
	t.Parallel()

	store := prefs.NewMemStore()
	require.NoError(t, store.Set(prefs.KeyFavorites, "oops"))
	_, err := Load(store)
	assert.Error(t, err)
}

func TestAddRemove(t *testing.T) {
	t.Parallel()

	store := prefs.NewMemStore()
	require.NoError(t, store.Set(prefs.KeyFavorites, []Favorite{}))
	f, err := Load(store)
	require.NoError(t, err)

	added, err := f.Add("deepl", "correcteur")
	require.NoError(t, err)
	assert.True(t, added)

	added, err = f.Add("deepl", "other")
	require.NoError(t, err)
	assert.False(t, added)
	assert.True(t, f.IsFavorite("deepl"))

	reloaded, err := Load(store)
	require.NoError(t, err)
	assert.Equal(t, []Favorite{{ID: "deepl", CategoryID: "correcteur"}}, reloaded.List())

	removed, err := f.Remove("deepl")
	require.NoError(t, err)
	assert.True(t, removed)
	removed, err = f.Remove("deepl")
	require.NoError(t, err)
	assert.False(t, removed)
	assert.False(t, f.IsFavorite("deepl"))
}

func TestReorder(t *testing.T) {
	t.Parallel()

	f, err := Load(prefs.NewMemStore())
	require.NoError(t, err)

	require.NoError(t, f.Reorder([]string{"goal-srv1", "ghost", "notion", "goal-srv1"}))
	assert.Equal(t,
		[]string{"goal-srv1", "notion", "opti-srv1", "secuopti-srv1", "scribben"},
		ids(f.List()))
}

func TestMove(t *testing.T) {
	t.Parallel()

	f, err := Load(prefs.NewMemStore())
	require.NoError(t, err)

	require.NoError(t, f.Move("scribben", 0))
	assert.Equal(t, "scribben", f.List()[0].ID)

	require.NoError(t, f.Move("scribben", 99))
	assert.Equal(t, "scribben", f.List()[4].ID)

	assert.ErrorIs(t, f.Move("ghost", 0), catalog.ErrAppNotFound)
}

func TestResolve(t *testing.T) {
	t.Parallel()

	c, err := catalog.New([]catalog.Category{
		{ID: "gestion", Name: "Gestion", HasApps: true, Apps: []catalog.App{{ID: "notion", Name: "Notion"}}},
	}, nil)
	require.NoError(t, err)

	f, err := Load(prefs.NewMemStore())
	require.NoError(t, err)
	_, err = f.Add("ghost", "gestion")
	require.NoError(t, err)

	got := f.Resolve(c)
	require.Len(t, got, 1)
	assert.Equal(t, "Notion", got[0].Name)
	assert.Equal(t, "Gestion", got[0].CategoryName)
}

// failingStore rejects every write.
type failingStore struct{ *prefs.MemStore }

func (failingStore) Set(string, any) error { return errors.New("disk full") }

func TestFailedSaveKeepsList(t *testing.T) {
	t.Parallel()

	mem := prefs.NewMemStore()
	start := []Favorite{{ID: "notion", CategoryID: "gestion"}, {ID: "deepl", CategoryID: "outils"}}
	require.NoError(t, mem.Set(prefs.KeyFavorites, start))
	f, err := Load(failingStore{mem})
	require.NoError(t, err)

	_, err = f.Add("github", "gestion")
	assert.Error(t, err)
	_, err = f.Remove("notion")
	assert.Error(t, err)
	assert.Error(t, f.Reorder([]string{"deepl", "notion"}))
	assert.Error(t, f.Move("deepl", 0))

	assert.Equal(t, start, f.List())
}
