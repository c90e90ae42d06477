// Package display holds the presentation preferences of the dashboard:
// hidden categories, density, layout, dock state and the last category shown.
package display

import (
	"errors"
	"fmt"
	"slices"

	"github.com/kamusis/deck-cli/internal/catalog"
	"github.com/kamusis/deck-cli/internal/prefs"
)

// FavoritesID is the pseudo category holding the user's favorites. It can
// never be hidden by HideAll.
const FavoritesID = "favorites"

var (
	ErrInvalidDensity = errors.New("invalid display density")
	ErrInvalidLayout  = errors.New("invalid display layout")
)

// Densities and layouts, first entry is the default.
var (
	Densities = []string{"standard", "compact", "comfortable"}
	Layouts   = []string{"grid", "list"}
)

// legacyLayouts maps retired layout names to their replacement.
var legacyLayouts = map[string]string{"detailed": "list"}

// Settings reads and writes display preferences. Every call goes to the
// store, so several processes sharing a file store see each other's changes.
type Settings struct {
	store prefs.Store
}

// New returns settings backed by store.
func New(store prefs.Store) *Settings {
	return &Settings{store: store}
}

// Hidden returns the ids of hidden categories.
func (s *Settings) Hidden() []string {
	return prefs.GetOr[[]string](s.store, prefs.KeyHiddenCategories, nil)
}

// IsVisible reports whether a category is shown.
func (s *Settings) IsVisible(categoryID string) bool {
	return !slices.Contains(s.Hidden(), categoryID)
}

// SetVisible shows or hides a category.
func (s *Settings) SetVisible(categoryID string, visible bool) error {
	hidden := s.Hidden()
	i := slices.Index(hidden, categoryID)
	switch {
	case visible && i >= 0:
		hidden = slices.Delete(hidden, i, i+1)
	case !visible && i < 0:
		hidden = append(hidden, categoryID)
	default:
		return nil
	}
	return s.set(prefs.KeyHiddenCategories, hidden)
}

// Toggle flips the visibility of a category and returns the new state.
func (s *Settings) Toggle(categoryID string) (bool, error) {
	visible := !s.IsVisible(categoryID)
	return visible, s.SetVisible(categoryID, visible)
}

// ShowAll makes every category visible.
func (s *Settings) ShowAll() error {
	return s.set(prefs.KeyHiddenCategories, []string{})
}

// HideAll hides every category in ids except the favorites group.
func (s *Settings) HideAll(ids []string) error {
	hidden := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != FavoritesID && !slices.Contains(hidden, id) {
			hidden = append(hidden, id)
		}
	}
	return s.set(prefs.KeyHiddenCategories, hidden)
}

// Density returns the card density, falling back to the default for unknown
// stored values.
func (s *Settings) Density() string {
	d := prefs.GetOr(s.store, prefs.KeyDisplayDensity, Densities[0])
	if !slices.Contains(Densities, d) {
		return Densities[0]
	}
	return d
}

// SetDensity stores the card density.
func (s *Settings) SetDensity(d string) error {
	if !slices.Contains(Densities, d) {
		return fmt.Errorf("%w: %q (want one of %v)", ErrInvalidDensity, d, Densities)
	}
	return s.set(prefs.KeyDisplayDensity, d)
}

// Layout returns the card layout. Retired layout names are migrated.
func (s *Settings) Layout() string {
	l := prefs.GetOr(s.store, prefs.KeyDisplayLayout, Layouts[0])
	if repl, ok := legacyLayouts[l]; ok {
		_ = s.store.Set(prefs.KeyDisplayLayout, repl)
		return repl
	}
	if !slices.Contains(Layouts, l) {
		return Layouts[0]
	}
	return l
}

// SetLayout stores the card layout.
func (s *Settings) SetLayout(l string) error {
	if !slices.Contains(Layouts, l) {
		return fmt.Errorf("%w: %q (want one of %v)", ErrInvalidLayout, l, Layouts)
	}
	return s.set(prefs.KeyDisplayLayout, l)
}

// Reset restores the default density and layout.
func (s *Settings) Reset() error {
	if err := s.set(prefs.KeyDisplayDensity, Densities[0]); err != nil {
		return err
	}
	return s.set(prefs.KeyDisplayLayout, Layouts[0])
}

// DockOpen reports whether the favorites dock is expanded. It is open by
// default.
func (s *Settings) DockOpen() bool {
	return prefs.GetOr(s.store, prefs.KeyDockOpen, true)
}

// SetDockOpen stores the dock state.
func (s *Settings) SetDockOpen(open bool) error {
	return s.set(prefs.KeyDockOpen, open)
}

// ToggleDock flips the dock state and returns the new one.
func (s *Settings) ToggleDock() (bool, error) {
	open := !s.DockOpen()
	return open, s.SetDockOpen(open)
}

// LastCategory returns the category to show first: the stored one if it
// still exists, else def if it exists, else the first category of c.
func (s *Settings) LastCategory(c *catalog.Catalog, def string) string {
	for _, id := range []string{prefs.GetOr(s.store, prefs.KeyLastCategory, ""), def} {
		if id == "" {
			continue
		}
		if _, err := c.Category(id); err == nil {
			return id
		}
	}
	if ids := c.IDs(); len(ids) > 0 {
		return ids[0]
	}
	return ""
}

// SetLastCategory stores the category shown last. The category must exist.
func (s *Settings) SetLastCategory(c *catalog.Catalog, id string) error {
	if _, err := c.Category(id); err != nil {
		return err
	}
	return s.set(prefs.KeyLastCategory, id)
}

func (s *Settings) set(key string, v any) error {
	if err := s.store.Set(key, v); err != nil {
		return fmt.Errorf("cannot save %s: %w", key, err)
	}
	return nil
}
