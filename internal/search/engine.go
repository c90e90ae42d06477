package search

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// Engine serves queries from an index snapshot and rebuilds it on demand.
//
// Rebuild builds a new Index from the corpus and publishes it atomically;
// readers keep whatever snapshot they loaded. The corpus is only read during
// NewEngine and Rebuild, so changes to it stay invisible until the next
// Rebuild.
type Engine struct {
	corpus  Corpus
	logger  *slog.Logger
	current atomic.Pointer[Index]
	mu      sync.Mutex // serializes rebuilds
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithLogger sets the logger used to report rebuilds.
func WithLogger(l *slog.Logger) EngineOption {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// NewEngine builds the initial index from corpus.
func NewEngine(corpus Corpus, opts ...EngineOption) *Engine {
	e := &Engine{
		corpus: corpus,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.Rebuild()
	return e
}

// Rebuild discards the current index and indexes the corpus from scratch.
func (e *Engine) Rebuild() {
	e.mu.Lock()
	defer e.mu.Unlock()

	start := time.Now()
	idx := BuildIndex(e.corpus)
	e.current.Store(idx)

	st := idx.Stats()
	e.logger.Debug("search index rebuilt",
		"items", st.Items,
		"terms", st.Terms,
		"postings", st.Postings,
		"took", time.Since(start),
	)
}

// Snapshot returns the index currently served.
func (e *Engine) Snapshot() *Index {
	return e.current.Load()
}

// Search runs query against the current snapshot.
func (e *Engine) Search(query string, opts Options) []Result {
	return e.Snapshot().Search(query, opts)
}
