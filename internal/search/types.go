package search

// Item represents one searchable app shortcut.
//
// CategoryID and CategoryName are filled in by BuildIndex from the category the
// item was found in; values set by the caller are overwritten.
type Item struct {
	ID           string
	Name         string
	Description  string
	Tags         []string
	CategoryID   string
	CategoryName string

	// Presentation fields, carried through to results untouched.
	URL   string
	Icon  string
	Color string
}

// Category is a named, ordered group of items.
//
// A nil Apps slice marks a category without usable items; it is skipped at
// index time.
type Category struct {
	ID   string
	Name string
	Apps []Item
}

// Corpus supplies the categories to index, in display order.
type Corpus interface {
	Categories() []Category
}

// CorpusFunc adapts a plain function to Corpus.
type CorpusFunc func() []Category

// Categories implements Corpus.
func (f CorpusFunc) Categories() []Category { return f() }

// Options controls a single query.
type Options struct {
	// CategoryID restricts results to one category. Filtering happens after
	// scoring.
	CategoryID string
	// DisableFuzzy turns off the edit-distance pass. Fuzzy matching is on by
	// default.
	DisableFuzzy bool
}

// Result is one scored item.
type Result struct {
	Item
	Score     float64
	ItemIndex int
}
