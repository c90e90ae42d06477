// Package usage tracks how often and when apps are opened and derives a usage
// score from it.
package usage

import (
	"fmt"
	"maps"
	"sort"
	"sync"
	"time"

	"github.com/kamusis/deck-cli/internal/prefs"
)

// SlotHours is the width of a time-of-day slot. A day has 24/SlotHours slots.
const SlotHours = 4

const (
	maxCountScore  = 10.0
	recencyScore   = 5.0
	recencyDays    = 30.0
	maxPatternHits = 5.0
)

// Record is the usage of one app in one category.
type Record struct {
	AppID        string      `yaml:"appId,omitempty"`
	Count        int         `yaml:"count"`
	LastUsed     time.Time   `yaml:"lastUsed,omitempty"`
	CategoryID   string      `yaml:"categoryId,omitempty"`
	TimePatterns map[int]int `yaml:"timePatterns,omitempty"`
}

// Ranked is a Record with its app id.
type Ranked struct {
	AppID string
	Record
}

// Tracker records app launches. App ids are only unique within a category,
// so records are kept per category and app.
type Tracker struct {
	store prefs.Store
	now   func() time.Time

	mu      sync.Mutex
	records map[string]Record
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

// Key returns the storage key of an app in a category.
func Key(categoryID, appID string) string {
	return categoryID + "/" + appID
}

// Load reads usage records from store. Unreadable data starts empty. Records
// stored under a bare app id are moved to the key of their category.
func Load(store prefs.Store, opts ...Option) *Tracker {
	t := &Tracker{store: store, now: time.Now}
	for _, opt := range opts {
		opt(t)
	}
	stored := prefs.GetOr[map[string]Record](store, prefs.KeyAppUsage, nil)
	t.records = make(map[string]Record, len(stored))
	for k, r := range stored {
		if r.AppID == "" {
			r.AppID = k
		}
		t.records[Key(r.CategoryID, r.AppID)] = r
	}
	return t
}

// Slot returns the time-of-day slot of tm, in local time.
func Slot(tm time.Time) int {
	return tm.Hour() / SlotHours
}

// Track records one launch of appID in categoryID.
func (t *Tracker) Track(appID, categoryID string) error {
	if appID == "" {
		return nil
	}
	now := t.now()
	key := Key(categoryID, appID)

	t.mu.Lock()
	defer t.mu.Unlock()
	r := t.records[key]
	r.AppID = appID
	r.CategoryID = categoryID
	r.Count++
	r.LastUsed = now
	patterns := make(map[int]int, len(r.TimePatterns)+1)
	maps.Copy(patterns, r.TimePatterns)
	patterns[Slot(now)]++
	r.TimePatterns = patterns

	records := maps.Clone(t.records)
	records[key] = r
	if err := t.store.Set(prefs.KeyAppUsage, records); err != nil {
		return fmt.Errorf("cannot save usage: %w", err)
	}
	t.records = records
	return nil
}

// Get returns the record of appID in categoryID.
func (t *Tracker) Get(appID, categoryID string) (Record, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	r, ok := t.records[Key(categoryID, appID)]
	if ok {
		r.TimePatterns = maps.Clone(r.TimePatterns)
	}
	return r, ok
}

// MostUsed returns up to limit records by launch count, highest first. Ties
// are ordered by app id, then category id. A limit below 1 returns every
// record.
func (t *Tracker) MostUsed(limit int) []Ranked {
	t.mu.Lock()
	out := make([]Ranked, 0, len(t.records))
	for _, r := range t.records {
		r.TimePatterns = maps.Clone(r.TimePatterns)
		out = append(out, Ranked{AppID: r.AppID, Record: r})
	}
	t.mu.Unlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		if out[i].AppID != out[j].AppID {
			return out[i].AppID < out[j].AppID
		}
		return out[i].CategoryID < out[j].CategoryID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Score rates how relevant appID in categoryID is right now: up to 10 points
// for the launch count, up to 5 for a launch within the last 30 days and up to
// 5 for launches in the current time slot. Unknown apps score 0.
func (t *Tracker) Score(appID, categoryID string) float64 {
	r, ok := t.Get(appID, categoryID)
	if !ok {
		return 0
	}
	now := t.now()

	score := min(maxCountScore, float64(r.Count))
	if !r.LastUsed.IsZero() {
		days := now.Sub(r.LastUsed).Hours() / 24
		if days < recencyDays {
			score += recencyScore * (1 - days/recencyDays)
		}
	}
	if hits := r.TimePatterns[Slot(now)]; hits > 0 {
		score += min(maxPatternHits, float64(hits))
	}
	return score
}
