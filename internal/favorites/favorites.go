// Package favorites manages the user's ordered list of favorite apps.
package favorites

import (
	"fmt"
	"slices"
	"sync"

	"github.com/kamusis/deck-cli/internal/catalog"
	"github.com/kamusis/deck-cli/internal/prefs"
)

// Favorite points at an app inside a category.
type Favorite struct {
	ID         string `yaml:"id"`
	CategoryID string `yaml:"categoryId"`
}

// Defaults is the favorites list used until the user saves one.
var Defaults = []Favorite{
	{ID: "opti-srv1", CategoryID: "opti"},
	{ID: "secuopti-srv1", CategoryID: "secuopti"},
	{ID: "notion", CategoryID: "gestion"},
	{ID: "scribben", CategoryID: "correcteur"},
	{ID: "goal-srv1", CategoryID: "goal"},
}

// Favorites is the persisted favorites list. App ids are unique in the list.
type Favorites struct {
	store prefs.Store
	mu    sync.Mutex
	list  []Favorite
}

// Load reads the favorites from store. When nothing has been saved yet the
// defaults are stored and used.
func Load(store prefs.Store) (*Favorites, error) {
	f := &Favorites{store: store}
	var saved []Favorite
	ok, err := store.Get(prefs.KeyFavorites, &saved)
	if err != nil {
		return nil, fmt.Errorf("cannot load favorites: %w", err)
	}
	if !ok {
		return f, f.save(slices.Clone(Defaults))
	}
	f.list = dedup(saved)
	return f, nil
}

// List returns the favorites in display order.
func (f *Favorites) List() []Favorite {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.list)
}

// IsFavorite reports whether appID is a favorite.
func (f *Favorites) IsFavorite(appID string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.index(appID) >= 0
}

// Add appends an app. It reports false when the app is already a favorite.
func (f *Favorites) Add(appID, categoryID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.index(appID) >= 0 {
		return false, nil
	}
	return true, f.save(append(slices.Clone(f.list), Favorite{ID: appID, CategoryID: categoryID}))
}

// Remove drops an app. It reports false when the app was not a favorite.
func (f *Favorites) Remove(appID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.index(appID)
	if i < 0 {
		return false, nil
	}
	return true, f.save(slices.Delete(slices.Clone(f.list), i, i+1))
}

// Reorder moves the listed app ids to the front, in the given order.
// Unknown ids are ignored and favorites not listed keep their relative order
// after the listed ones.
func (f *Favorites) Reorder(appIDs []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]Favorite, 0, len(f.list))
	placed := make(map[string]bool, len(f.list))
	for _, id := range appIDs {
		i := f.index(id)
		if i < 0 || placed[id] {
			continue
		}
		out = append(out, f.list[i])
		placed[id] = true
	}
	for _, fav := range f.list {
		if !placed[fav.ID] {
			out = append(out, fav)
		}
	}
	return f.save(out)
}

// Move places appID at position to (0-based, clamped to the list bounds).
func (f *Favorites) Move(appID string, to int) error {
	f.mu.Lock()
	i := f.index(appID)
	if i < 0 {
		f.mu.Unlock()
		return fmt.Errorf("%w: %s is not a favorite", catalog.ErrAppNotFound, appID)
	}
	ids := make([]string, 0, len(f.list))
	for _, fav := range f.list {
		if fav.ID != appID {
			ids = append(ids, fav.ID)
		}
	}
	f.mu.Unlock()

	to = max(0, min(to, len(ids)))
	ids = slices.Insert(ids, to, appID)
	return f.Reorder(ids)
}

// Resolved is a favorite whose app was found in the catalog.
type Resolved struct {
	catalog.App
	CategoryID   string
	CategoryName string
}

// Resolve looks the favorites up in c, skipping those whose app or category
// no longer exists.
func (f *Favorites) Resolve(c *catalog.Catalog) []Resolved {
	var out []Resolved
	for _, fav := range f.List() {
		cat, err := c.Category(fav.CategoryID)
		if err != nil {
			continue
		}
		for _, app := range cat.Apps {
			if app.ID == fav.ID {
				out = append(out, Resolved{App: app, CategoryID: cat.ID, CategoryName: cat.Name})
				break
			}
		}
	}
	return out
}

func (f *Favorites) index(appID string) int {
	return slices.IndexFunc(f.list, func(fav Favorite) bool { return fav.ID == appID })
}

// save persists list and makes it current. On error the current list is
// left unchanged.
func (f *Favorites) save(list []Favorite) error {
	if err := f.store.Set(prefs.KeyFavorites, list); err != nil {
		return fmt.Errorf("cannot save favorites: %w", err)
	}
	f.list = list
	return nil
}

func dedup(list []Favorite) []Favorite {
	out := make([]Favorite, 0, len(list))
	seen := make(map[string]bool, len(list))
	for _, fav := range list {
		if fav.ID == "" || seen[fav.ID] {
			continue
		}
		seen[fav.ID] = true
		out = append(out, fav)
	}
	return out
}
