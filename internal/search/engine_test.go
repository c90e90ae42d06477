package search

import (
	"bytes"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mutableCorpus struct {
	mu   sync.Mutex
	cats []Category
}

func (m *mutableCorpus) Categories() []Category {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Category, len(m.cats))
	for i, c := range m.cats {
		c.Apps = append([]Item(nil), c.Apps...)
		out[i] = c
	}
	return out
}

func (m *mutableCorpus) add(catID string, app Item) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.cats {
		if m.cats[i].ID == catID {
			m.cats[i].Apps = append(m.cats[i].Apps, app)
			return
		}
	}
	m.cats = append(m.cats, Category{ID: catID, Apps: []Item{app}})
}

func TestEngine_RebuildPublishesCorpusChanges(t *testing.T) {
	t.Parallel()

	corpus := &mutableCorpus{cats: []Category{{ID: "gestion", Apps: []Item{{ID: "notion", Name: "Notion"}}}}}
	e := NewEngine(corpus)
	assert.Equal(t, 1, e.Snapshot().Len())
	assert.Empty(t, e.Search("zephyr", Options{}))

	corpus.add("gestion", Item{ID: "zephyr", Name: "Zephyr"})
	assert.Empty(t, e.Search("zephyr", Options{}), "changes must stay invisible until Rebuild")

	e.Rebuild()
	res := e.Search("zephyr", Options{})
	require.Len(t, res, 1)
	assert.Equal(t, "zephyr", res[0].ID)
	assert.Equal(t, 1, res[0].ItemIndex)
	assert.Equal(t, 2, e.Snapshot().Len())
}

func TestEngine_SnapshotSurvivesRebuild(t *testing.T) {
	t.Parallel()

	corpus := &mutableCorpus{cats: []Category{{ID: "gestion", Apps: []Item{{ID: "notion", Name: "Notion"}}}}}
	e := NewEngine(corpus)
	old := e.Snapshot()

	corpus.add("outils", Item{ID: "trello", Name: "Trello"})
	e.Rebuild()

	assert.NotSame(t, old, e.Snapshot())
	assert.Equal(t, 1, old.Len())
	assert.Empty(t, old.Search("trello", Options{}))
	assert.Len(t, e.Search("trello", Options{}), 1)
}

func TestEngine_NilCorpus(t *testing.T) {
	t.Parallel()

	e := NewEngine(nil)
	require.NotNil(t, e.Snapshot())
	assert.Equal(t, 0, e.Snapshot().Len())
	assert.Empty(t, e.Search("notion", Options{}))
}

func TestEngine_LogsRebuild(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	NewEngine(deeplCorpus(), WithLogger(logger))

	assert.Contains(t, buf.String(), "search index rebuilt")
	assert.Contains(t, buf.String(), "items=1")
}

func TestEngine_ConcurrentSearchDuringRebuild(t *testing.T) {
	t.Parallel()

	e := NewEngine(deeplCorpus())
	want := e.Search("deepl", Options{})
	require.Len(t, want, 1)

	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				e.Rebuild()
			}
		}()
	}
	errs := make(chan string, 8)
	for r := 0; r < 8; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				got := e.Search("deepl", Options{})
				if len(got) != 1 || got[0].Score != want[0].Score {
					errs <- "unexpected result during rebuild"
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for msg := range errs {
		t.Error(msg)
	}
}
