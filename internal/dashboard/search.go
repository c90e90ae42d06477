package dashboard

import (
	"slices"

	"github.com/kamusis/deck-cli/internal/search"
)

// SearchOptions controls Dashboard.Search.
type SearchOptions struct {
	// CategoryID restricts results to one category.
	CategoryID string
	// DisableFuzzy turns off typo tolerance.
	DisableFuzzy bool
	// IncludeHidden keeps results from hidden categories.
	IncludeHidden bool
	// UsageBoost adds each app's usage score to its text score.
	UsageBoost bool
	// Limit caps the number of results. Zero means no cap.
	Limit int
	// Record adds the query to the search history.
	Record bool
}

// Search runs query against the current index.
func (d *Dashboard) Search(query string, opts SearchOptions) []search.Result {
	results := d.engine.Search(query, search.Options{
		CategoryID:   opts.CategoryID,
		DisableFuzzy: opts.DisableFuzzy,
	})

	if !opts.IncludeHidden {
		if hidden := d.Display.Hidden(); len(hidden) > 0 {
			results = slices.DeleteFunc(results, func(r search.Result) bool {
				return slices.Contains(hidden, r.CategoryID)
			})
		}
	}
	if opts.UsageBoost {
		for i := range results {
			results[i].Score += d.Usage.Score(results[i].ID, results[i].CategoryID)
		}
		search.SortResults(results)
	}
	if opts.Limit > 0 && len(results) > opts.Limit {
		results = results[:opts.Limit]
	}

	if opts.Record {
		d.RecordQuery(query)
	}
	return results
}

// RecordQuery adds query to the search history unless it has no searchable
// token.
func (d *Dashboard) RecordQuery(query string) {
	if len(search.Tokenize(query)) == 0 {
		return
	}
	if _, err := d.History.Add(query); err != nil {
		d.logger.Warn("cannot record search", "query", query, "err", err)
	}
}
