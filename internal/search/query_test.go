package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func deeplCorpus() Corpus {
	return corpusOf(Category{
		ID:   "correcteur",
		Name: "Outils linguistiques",
		Apps: []Item{{
			ID:          "deepl",
			Name:        "DeepL",
			Description: "Traducteur IA de haute qualité",
			Tags:        []string{"traduction", "ia", "langue"},
		}},
	})
}

func scoreOf(t *testing.T, results []Result, id string) float64 {
	t.Helper()
	for _, r := range results {
		if r.ID == id {
			return r.Score
		}
	}
	t.Fatalf("result %q not found in %v", id, results)
	return 0
}

func TestSearch_DeepLExactMatch(t *testing.T) {
	t.Parallel()

	idx := BuildIndex(deeplCorpus())
	res := idx.Search("deepl", Options{})
	require.Len(t, res, 1)
	assert.Equal(t, "deepl", res[0].ID)
	assert.Equal(t, "correcteur", res[0].CategoryID)
	assert.Equal(t, "Outils linguistiques", res[0].CategoryName)
	assert.GreaterOrEqual(t, res[0].Score, WeightName)

	// exact 10 + fuzzy self match 10 + fuzzy "deep" (6.4 at distance 1).
	assert.InDelta(t, 20+6.4*(1-1.0/6), res[0].Score, 1e-9)
}

func TestSearch_DeepLPrefix(t *testing.T) {
	t.Parallel()

	idx := BuildIndex(deeplCorpus())
	trad := idx.Search("trad", Options{})
	require.Len(t, trad, 1)
	assert.Equal(t, "deepl", trad[0].ID)
	assert.Greater(t, trad[0].Score, 0.0)

	full := idx.Search("traduction", Options{})
	require.Len(t, full, 1)
	assert.Greater(t, full[0].Score, 0.0)

	// Without the fuzzy pass only the exact and prefix passes contribute.
	noFuzzy := idx.Search("trad", Options{DisableFuzzy: true})
	require.Len(t, noFuzzy, 1)
	assert.Less(t, noFuzzy[0].Score, trad[0].Score)
}

func TestSearch_NoMatch(t *testing.T) {
	t.Parallel()

	idx := BuildIndex(deeplCorpus())
	res := idx.Search("xyz123", Options{})
	assert.NotNil(t, res)
	assert.Empty(t, res)
}

func TestSearch_EmptyQueries(t *testing.T) {
	t.Parallel()

	idx := BuildIndex(deeplCorpus())
	for _, q := range []string{"", "   ", "d", "!!!", "a b c", "?-+"} {
		res := idx.Search(q, Options{})
		assert.NotNil(t, res, "query %q", q)
		assert.Empty(t, res, "query %q", q)
	}
}

func TestSearch_CaseAndDiacriticInsensitive(t *testing.T) {
	t.Parallel()

	idx := BuildIndex(deeplCorpus())
	base := idx.Search("deepl", Options{})
	require.NotEmpty(t, base)
	assert.Equal(t, base, idx.Search("DEEPL", Options{}))
	assert.Equal(t, base, idx.Search("dèèpl", Options{}))
	assert.Equal(t, base, idx.Search("  DéePl! ", Options{}))

	q := idx.Search("qualite", Options{})
	assert.Equal(t, q, idx.Search("qualité", Options{}))
	assert.Equal(t, q, idx.Search("QUALITÉ", Options{}))
}

func TestSearch_PrefixScoresBelowFullWord(t *testing.T) {
	t.Parallel()

	idx := BuildIndex(corpusOf(Category{ID: "gestion", Name: "Gestion", Apps: []Item{{ID: "notion", Name: "Notion"}}}))

	not := idx.Search("not", Options{})
	full := idx.Search("notion", Options{})
	require.Len(t, not, 1)
	require.Len(t, full, 1)
	assert.Greater(t, not[0].Score, 0.0)
	assert.Less(t, not[0].Score, full[0].Score)

	// notion: exact 10 + fuzzy self 10 + fuzzy "notio" (10*5/6*0.8 at distance 1).
	assert.InDelta(t, 20+(50.0/6*0.8)*(1-1.0/7), full[0].Score, 1e-9)
}

func TestSearch_PrefixPassWithoutFuzzy(t *testing.T) {
	t.Parallel()

	idx := BuildIndex(corpusOf(Category{ID: "gg", Apps: []Item{{ID: "notion", Name: "Notion"}}}))
	res := idx.Search("noti", Options{DisableFuzzy: true})
	require.Len(t, res, 1)

	// Fragment "noti" matched exactly, then "notio" and "notion" by prefix.
	exact := 10.0 * 4 / 6 * 0.8
	prefix := (10.0*5/6*0.8)*(4.0/5)*0.9 + 10*(4.0/6)*0.9
	assert.InDelta(t, exact+prefix, res[0].Score, 1e-9)
}

func TestSearch_FuzzyToleranceBoundary(t *testing.T) {
	t.Parallel()

	idx := BuildIndex(corpusOf(Category{ID: "misc", Apps: []Item{
		{ID: "one", Name: "wxyq"}, // distance 1 from "wxyz"
		{ID: "two", Name: "wxqq"}, // distance 2 from "wxyz"
	}}))

	res := idx.Search("wxyz", Options{})
	require.Len(t, res, 1)
	assert.Equal(t, "one", res[0].ID)

	assert.Empty(t, idx.Search("wxyz", Options{DisableFuzzy: true}))
}

func TestSearch_FuzzyTypo(t *testing.T) {
	t.Parallel()

	idx := BuildIndex(corpusOf(Category{ID: "gestion", Apps: []Item{
		{ID: "notion", Name: "Notion"},
		{ID: "trello", Name: "Trello"},
	}}))

	res := idx.Search("notian", Options{})
	require.NotEmpty(t, res)
	assert.Equal(t, "notion", res[0].ID)
}

func TestSearch_CategoryFilter(t *testing.T) {
	t.Parallel()

	idx := BuildIndex(corpusOf(
		Category{ID: "alpha", Name: "Alpha", Apps: []Item{{ID: "notion-a", Name: "Notion"}}},
		Category{ID: "beta", Name: "Beta", Apps: []Item{{ID: "notion-b", Name: "Notion"}}},
	))

	all := idx.Search("notion", Options{})
	require.Len(t, all, 2)

	res := idx.Search("notion", Options{CategoryID: "alpha"})
	require.Len(t, res, 1)
	assert.Equal(t, "notion-a", res[0].ID)
	assert.Equal(t, "alpha", res[0].CategoryID)

	assert.Empty(t, idx.Search("notion", Options{CategoryID: "missing"}))
}

func TestSearch_CategoryIDIsSearchable(t *testing.T) {
	t.Parallel()

	idx := BuildIndex(corpusOf(Category{ID: "correcteur", Name: "Outils", Apps: []Item{{ID: "x", Name: "Scribens"}}}))
	res := idx.Search("correcteur", Options{DisableFuzzy: true})
	require.Len(t, res, 1)
	assert.InDelta(t, WeightCategory, res[0].Score, 1e-9)
}

func TestSearch_MultipleTokensAdd(t *testing.T) {
	t.Parallel()

	idx := BuildIndex(deeplCorpus())
	one := scoreOf(t, idx.Search("deepl", Options{DisableFuzzy: true}), "deepl")
	two := scoreOf(t, idx.Search("deepl langue", Options{DisableFuzzy: true}), "deepl")
	assert.InDelta(t, one+WeightTag, two, 1e-9)
}

func TestSearch_RankedDescendingWithNameTieBreak(t *testing.T) {
	t.Parallel()

	idx := BuildIndex(corpusOf(Category{ID: "gg", Apps: []Item{
		{ID: "z-doc", Name: "Wiki", Description: "notion"},
		{ID: "b-id", Name: "Notion"},
		{ID: "a-id", Name: "Notion"},
	}}))

	res := idx.Search("notion", Options{})
	require.Len(t, res, 3)
	assert.Equal(t, "a-id", res[0].ID)
	assert.Equal(t, "b-id", res[1].ID)
	assert.Equal(t, "z-doc", res[2].ID)
	assert.Equal(t, res[0].Score, res[1].Score)
	assert.Greater(t, res[1].Score, res[2].Score)
}

func TestSortResults(t *testing.T) {
	t.Parallel()

	results := []Result{
		{Item: Item{ID: "c", Name: "Zeta"}, Score: 1, ItemIndex: 0},
		{Item: Item{ID: "b", Name: "alpha"}, Score: 1, ItemIndex: 1},
		{Item: Item{ID: "a", Name: "Alpha"}, Score: 1, ItemIndex: 2},
		{Item: Item{ID: "d", Name: "Omega"}, Score: 5, ItemIndex: 3},
	}
	SortResults(results)

	ids := make([]string, len(results))
	for i, r := range results {
		ids[i] = r.ID
	}
	assert.Equal(t, []string{"d", "a", "b", "c"}, ids)
}
