// Package catalog holds the categories and app shortcuts shown on the
// dashboard and feeds them to the search index.
package catalog

import (
	"errors"
	"fmt"
	"slices"

	"github.com/kamusis/deck-cli/internal/search"
)

var (
	ErrCategoryNotFound  = errors.New("category not found")
	ErrAppNotFound       = errors.New("app not found")
	ErrDuplicateApp      = errors.New("app already exists in category")
	ErrDuplicateCategory = errors.New("duplicate category id")
)

// DefaultOrder is the display order of the built-in categories.
var DefaultOrder = []string{"gestion", "outils", "correcteur", "opti", "secuopti", "opc", "goal"}

// App is a single shortcut.
type App struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	URL         string   `yaml:"url,omitempty"`
	Icon        string   `yaml:"icon,omitempty"`
	Color       string   `yaml:"color,omitempty"`
	Description string   `yaml:"description,omitempty"`
	Tags        []string `yaml:"tags,omitempty"`
}

// Category groups apps under a common heading.
type Category struct {
	ID            string
	Name          string
	Description   string
	ProcedureLink string
	Icon          string
	Color         string
	Tags          []string
	Apps          []App

	// HasApps is false when the source declared no usable apps list. Such a
	// category is still listed but never indexed.
	HasApps bool
}

// Catalog is an ordered, read-only set of categories.
type Catalog struct {
	cats []Category
	byID map[string]int
}

// New orders categories: ids listed in order come first, in that order,
// followed by the remaining categories in their original order.
func New(categories []Category, order []string) (*Catalog, error) {
	byID := make(map[string]int, len(categories))
	for i, c := range categories {
		if _, dup := byID[c.ID]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateCategory, c.ID)
		}
		byID[c.ID] = i
	}

	ordered := make([]Category, 0, len(categories))
	placed := make(map[string]bool, len(categories))
	for _, id := range order {
		i, ok := byID[id]
		if !ok || placed[id] {
			continue
		}
		ordered = append(ordered, categories[i])
		placed[id] = true
	}
	for _, c := range categories {
		if !placed[c.ID] {
			ordered = append(ordered, c)
		}
	}

	cat := &Catalog{cats: ordered, byID: make(map[string]int, len(ordered))}
	for i, c := range ordered {
		cat.byID[c.ID] = i
	}
	return cat, nil
}

// Len returns the number of categories.
func (c *Catalog) Len() int { return len(c.cats) }

// IDs returns category ids in display order.
func (c *Catalog) IDs() []string {
	ids := make([]string, len(c.cats))
	for i, cat := range c.cats {
		ids[i] = cat.ID
	}
	return ids
}

// List returns a copy of the ordered categories.
func (c *Catalog) List() []Category {
	out := make([]Category, len(c.cats))
	for i, cat := range c.cats {
		out[i] = cat.clone()
	}
	return out
}

// Category returns the category with the given id.
func (c *Catalog) Category(id string) (Category, error) {
	i, ok := c.byID[id]
	if !ok {
		return Category{}, fmt.Errorf("%w: %s", ErrCategoryNotFound, id)
	}
	return c.cats[i].clone(), nil
}

// Apps returns the apps of a category.
func (c *Catalog) Apps(categoryID string) ([]App, error) {
	cat, err := c.Category(categoryID)
	if err != nil {
		return nil, err
	}
	return cat.Apps, nil
}

// App returns the app appID of category categoryID.
func (c *Catalog) App(categoryID, appID string) (App, error) {
	apps, err := c.Apps(categoryID)
	if err != nil {
		return App{}, err
	}
	for _, a := range apps {
		if a.ID == appID {
			return a, nil
		}
	}
	return App{}, fmt.Errorf("%w: %s/%s", ErrAppNotFound, categoryID, appID)
}

// FindApp returns the first app with the given id, scanning categories in
// display order. App ids are only unique within a category.
func (c *Catalog) FindApp(appID string) (App, Category, bool) {
	for _, cat := range c.cats {
		for _, a := range cat.Apps {
			if a.ID == appID {
				return a, cat.clone(), true
			}
		}
	}
	return App{}, Category{}, false
}

// Categories implements search.Corpus.
func (c *Catalog) Categories() []search.Category {
	out := make([]search.Category, 0, len(c.cats))
	for _, cat := range c.cats {
		out = append(out, cat.SearchCategory())
	}
	return out
}

// SearchCategory converts the category to its indexable form.
func (c Category) SearchCategory() search.Category {
	sc := search.Category{ID: c.ID, Name: c.Name}
	if !c.HasApps {
		return sc
	}
	sc.Apps = make([]search.Item, 0, len(c.Apps))
	for _, a := range c.Apps {
		sc.Apps = append(sc.Apps, a.Item())
	}
	return sc
}

// Item converts the app to a search item.
func (a App) Item() search.Item {
	return search.Item{
		ID:          a.ID,
		Name:        a.Name,
		Description: a.Description,
		Tags:        slices.Clone(a.Tags),
		URL:         a.URL,
		Icon:        a.Icon,
		Color:       a.Color,
	}
}

func (c Category) clone() Category {
	c.Tags = slices.Clone(c.Tags)
	if c.Apps != nil {
		apps := make([]App, len(c.Apps))
		for i, a := range c.Apps {
			a.Tags = slices.Clone(a.Tags)
			apps[i] = a
		}
		c.Apps = apps
	}
	return c
}
