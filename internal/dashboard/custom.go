package dashboard

import (
	"fmt"
	"slices"

	"github.com/kamusis/deck-cli/internal/catalog"
	"github.com/kamusis/deck-cli/internal/prefs"
)

// CustomApp is an app added by the user on top of the catalog.
type CustomApp struct {
	CategoryID  string `yaml:"categoryId"`
	catalog.App `yaml:",inline"`
}

// CustomApps returns the stored custom apps.
func (d *Dashboard) CustomApps() []CustomApp {
	return prefs.GetOr[[]CustomApp](d.store, prefs.KeyCustomApps, nil)
}

// AddApp stores a custom app in an existing category and re-indexes.
func (d *Dashboard) AddApp(categoryID string, app catalog.App) error {
	if app.ID == "" {
		return fmt.Errorf("app id is required")
	}
	if app.Name == "" {
		app.Name = app.ID
	}
	c := d.Catalog()
	if _, err := c.Category(categoryID); err != nil {
		return err
	}
	if _, err := c.App(categoryID, app.ID); err == nil {
		return fmt.Errorf("%w: %s/%s", catalog.ErrDuplicateApp, categoryID, app.ID)
	}

	apps := append(d.CustomApps(), CustomApp{CategoryID: categoryID, App: app})
	if err := d.store.Set(prefs.KeyCustomApps, apps); err != nil {
		return fmt.Errorf("cannot save custom apps: %w", err)
	}
	return d.Rebuild()
}

// RemoveApp deletes a custom app, drops it from the favorites and
// re-indexes. Catalog apps cannot be removed.
func (d *Dashboard) RemoveApp(categoryID, appID string) error {
	apps := d.CustomApps()
	i := slices.IndexFunc(apps, func(a CustomApp) bool {
		return a.CategoryID == categoryID && a.ID == appID
	})
	if i < 0 {
		return fmt.Errorf("%w: no custom app %s/%s", catalog.ErrAppNotFound, categoryID, appID)
	}
	apps = slices.Delete(apps, i, i+1)
	if err := d.store.Set(prefs.KeyCustomApps, apps); err != nil {
		return fmt.Errorf("cannot save custom apps: %w", err)
	}
	for _, fav := range d.Favorites.List() {
		if fav.ID == appID && fav.CategoryID == categoryID {
			if _, err := d.Favorites.Remove(appID); err != nil {
				return err
			}
		}
	}
	return d.Rebuild()
}

// remerge rebuilds the merged catalog from the base catalog and the stored
// custom apps.
func (d *Dashboard) remerge() error {
	d.mu.RLock()
	base := d.base
	d.mu.RUnlock()

	cats := base.List()
	pos := make(map[string]int, len(cats))
	for i, c := range cats {
		pos[c.ID] = i
	}
	for _, ca := range d.CustomApps() {
		i, ok := pos[ca.CategoryID]
		if !ok {
			d.logger.Warn("skipping custom app in unknown category", "app", ca.ID, "category", ca.CategoryID)
			continue
		}
		if slices.ContainsFunc(cats[i].Apps, func(a catalog.App) bool { return a.ID == ca.ID }) {
			d.logger.Warn("skipping custom app shadowed by catalog", "app", ca.ID, "category", ca.CategoryID)
			continue
		}
		cats[i].Apps = append(cats[i].Apps, ca.App)
		cats[i].HasApps = true
	}

	merged, err := catalog.New(cats, base.IDs())
	if err != nil {
		return err
	}
	d.mu.Lock()
	d.merged = merged
	d.mu.Unlock()
	return nil
}
