// Package history records recent search queries, newest first.
package history

import (
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/sahilm/fuzzy"

	"github.com/kamusis/deck-cli/internal/prefs"
)

// DefaultMax is the number of entries kept when no limit is configured.
const DefaultMax = 10

// Entry is one remembered query.
type Entry struct {
	Term      string    `yaml:"term"`
	Timestamp time.Time `yaml:"timestamp"`
}

// History is the persisted search history. Terms are unique ignoring case.
type History struct {
	store prefs.Store
	max   int
	now   func() time.Time

	mu      sync.Mutex
	entries []Entry
}

// Option configures a History.
type Option func(*History)

// WithMax sets the number of entries kept. Values below 1 are ignored.
func WithMax(n int) Option {
	return func(h *History) {
		if n > 0 {
			h.max = n
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(h *History) { h.now = now }
}

// Load reads the history from store. An unreadable value starts an empty
// history.
func Load(store prefs.Store, opts ...Option) *History {
	h := &History{store: store, max: DefaultMax, now: time.Now}
	for _, opt := range opts {
		opt(h)
	}
	h.entries = prefs.GetOr[[]Entry](store, prefs.KeySearchHistory, nil)
	if len(h.entries) > h.max {
		h.entries = h.entries[:h.max]
	}
	return h
}

// Add records term at the front of the history. Blank terms are ignored and
// reported as false.
func (h *History) Add(term string) (bool, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return false, nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	entries := slices.Clone(h.entries)
	if i := h.index(term); i >= 0 {
		entries = slices.Delete(entries, i, i+1)
	}
	entries = slices.Insert(entries, 0, Entry{Term: term, Timestamp: h.now().UTC()})
	if len(entries) > h.max {
		entries = entries[:h.max]
	}
	return true, h.save(entries)
}

// List returns every entry, newest first.
func (h *History) List() []Entry {
	h.mu.Lock()
	defer h.mu.Unlock()
	return slices.Clone(h.entries)
}

// Recent returns at most n entries, newest first.
func (h *History) Recent(n int) []Entry {
	h.mu.Lock()
	defer h.mu.Unlock()
	n = max(0, min(n, len(h.entries)))
	return slices.Clone(h.entries[:n])
}

// Remove deletes term, ignoring case. It reports false when term was absent.
func (h *History) Remove(term string) (bool, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	i := h.index(strings.TrimSpace(term))
	if i < 0 {
		return false, nil
	}
	return true, h.save(slices.Delete(slices.Clone(h.entries), i, i+1))
}

// Clear removes every entry.
func (h *History) Clear() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.save(nil)
}

// Suggest returns up to limit past terms that fuzzily match input, best match
// first. An empty input returns the most recent terms. A limit below 1
// returns nothing.
func (h *History) Suggest(input string, limit int) []string {
	limit = max(0, limit)
	input = strings.TrimSpace(input)
	entries := h.List()
	if input == "" {
		out := make([]string, 0, min(limit, len(entries)))
		for _, e := range entries {
			if len(out) == limit {
				break
			}
			out = append(out, e.Term)
		}
		return out
	}

	matches := fuzzy.FindFrom(input, terms(entries))
	out := make([]string, 0, min(limit, len(matches)))
	for _, m := range matches {
		if len(out) == limit {
			break
		}
		out = append(out, m.Str)
	}
	return out
}

// terms implements fuzzy.Source over history entries.
type terms []Entry

func (t terms) String(i int) string { return t[i].Term }
func (t terms) Len() int            { return len(t) }

func (h *History) index(term string) int {
	return slices.IndexFunc(h.entries, func(e Entry) bool {
		return strings.EqualFold(e.Term, term)
	})
}

// save persists entries and makes them current. On error the current
// entries are left unchanged.
func (h *History) save(entries []Entry) error {
	if err := h.store.Set(prefs.KeySearchHistory, entries); err != nil {
		return fmt.Errorf("cannot save search history: %w", err)
	}
	h.entries = entries
	return nil
}
