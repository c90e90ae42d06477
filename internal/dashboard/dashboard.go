// Package dashboard ties the catalog, the user's preferences and the search
// engine together.
//
// The engine indexes the catalog merged with the user's custom apps. Every
// Dashboard method that changes that set rebuilds the index before
// returning; code that changes the corpus some other way must call Rebuild.
package dashboard

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/kamusis/deck-cli/internal/catalog"
	"github.com/kamusis/deck-cli/internal/display"
	"github.com/kamusis/deck-cli/internal/favorites"
	"github.com/kamusis/deck-cli/internal/history"
	"github.com/kamusis/deck-cli/internal/prefs"
	"github.com/kamusis/deck-cli/internal/search"
	"github.com/kamusis/deck-cli/internal/usage"
)

// Options configures New.
type Options struct {
	// Catalog is the base catalog. Required.
	Catalog *catalog.Catalog
	// Store persists preferences. Nil means an in-memory store.
	Store prefs.Store
	// Logger reports rebuilds and skipped custom apps. Nil discards.
	Logger *slog.Logger
	// HistorySize caps the search history.
	HistorySize int
	// DefaultCategory is shown when no last category is stored.
	DefaultCategory string
	// Now replaces time.Now for history and usage.
	Now func() time.Time
}

// Dashboard is the application state behind the CLI and the TUI.
type Dashboard struct {
	Favorites *favorites.Favorites
	History   *history.History
	Usage     *usage.Tracker
	Display   *display.Settings

	store           prefs.Store
	logger          *slog.Logger
	defaultCategory string
	engine          *search.Engine

	mu     sync.RWMutex
	base   *catalog.Catalog
	merged *catalog.Catalog
}

// New loads the user's state and builds the first index.
func New(opts Options) (*Dashboard, error) {
	if opts.Catalog == nil {
		return nil, fmt.Errorf("dashboard: catalog is required")
	}
	if opts.Store == nil {
		opts.Store = prefs.NewMemStore()
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	fav, err := favorites.Load(opts.Store)
	if err != nil {
		return nil, err
	}

	d := &Dashboard{
		Favorites:       fav,
		History:         history.Load(opts.Store, history.WithMax(opts.HistorySize), history.WithClock(opts.Now)),
		Usage:           usage.Load(opts.Store, usage.WithClock(opts.Now)),
		Display:         display.New(opts.Store),
		store:           opts.Store,
		logger:          opts.Logger,
		defaultCategory: opts.DefaultCategory,
		base:            opts.Catalog,
	}
	if err := d.remerge(); err != nil {
		return nil, err
	}
	d.engine = search.NewEngine(search.CorpusFunc(d.corpus), search.WithLogger(opts.Logger))
	return d, nil
}

// Catalog returns the catalog including custom apps.
func (d *Dashboard) Catalog() *catalog.Catalog {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.merged
}

func (d *Dashboard) corpus() []search.Category {
	return d.Catalog().Categories()
}

// Engine exposes the search engine.
func (d *Dashboard) Engine() *search.Engine { return d.engine }

// Rebuild re-reads custom apps and re-indexes.
func (d *Dashboard) Rebuild() error {
	if err := d.remerge(); err != nil {
		return err
	}
	d.engine.Rebuild()
	return nil
}

// ReplaceCatalog swaps the base catalog, for instance after the catalog
// directory changed on disk, and re-indexes.
func (d *Dashboard) ReplaceCatalog(c *catalog.Catalog) error {
	d.mu.Lock()
	d.base = c
	d.mu.Unlock()
	return d.Rebuild()
}

// Categories returns the categories in display order, without hidden ones
// unless includeHidden is set.
func (d *Dashboard) Categories(includeHidden bool) []catalog.Category {
	all := d.Catalog().List()
	if includeHidden {
		return all
	}
	hidden := d.Display.Hidden()
	return slices.DeleteFunc(all, func(c catalog.Category) bool {
		return slices.Contains(hidden, c.ID)
	})
}

// CurrentCategory returns the category to show first.
func (d *Dashboard) CurrentCategory() string {
	return d.Display.LastCategory(d.Catalog(), d.defaultCategory)
}

// SelectCategory remembers categoryID as the category shown last.
func (d *Dashboard) SelectCategory(categoryID string) error {
	return d.Display.SetLastCategory(d.Catalog(), categoryID)
}

// Open records a launch of the app and returns it.
//
// An empty categoryID picks the first category holding appID.
func (d *Dashboard) Open(appID, categoryID string) (catalog.App, catalog.Category, error) {
	c := d.Catalog()
	var (
		app catalog.App
		cat catalog.Category
		err error
	)
	if categoryID == "" {
		var ok bool
		app, cat, ok = c.FindApp(appID)
		if !ok {
			return catalog.App{}, catalog.Category{}, fmt.Errorf("%w: %s", catalog.ErrAppNotFound, appID)
		}
	} else {
		if cat, err = c.Category(categoryID); err != nil {
			return catalog.App{}, catalog.Category{}, err
		}
		if app, err = c.App(categoryID, appID); err != nil {
			return catalog.App{}, catalog.Category{}, err
		}
	}
	if err := d.Usage.Track(app.ID, cat.ID); err != nil {
		d.logger.Warn("cannot record app usage", "app", app.ID, "err", err)
	}
	return app, cat, nil
}

// AddFavorite marks an existing app as favorite.
func (d *Dashboard) AddFavorite(appID, categoryID string) (bool, error) {
	if _, err := d.Catalog().App(categoryID, appID); err != nil {
		return false, err
	}
	return d.Favorites.Add(appID, categoryID)
}
