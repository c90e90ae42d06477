package search

import (
	"sort"
	"strings"
)

// Search scores every indexed item against query and returns the matches,
// best first.
//
// Each query token contributes through three passes whose amounts are added
// together: an exact term lookup, a prefix scan of the vocabulary and, unless
// disabled, an edit-distance scan. A query without usable tokens returns an
// empty slice.
func (idx *Index) Search(query string, opts Options) []Result {
	results := []Result{}
	if idx == nil {
		return results
	}
	tokens := Tokenize(query)
	if len(tokens) == 0 {
		return results
	}

	scores := make(map[int]float64)
	for _, tok := range tokens {
		idx.scoreExact(tok, scores)
		idx.scorePrefix(tok, scores)
		if !opts.DisableFuzzy {
			idx.scoreFuzzy(tok, scores)
		}
	}

	for i, score := range scores {
		app, ok := idx.Item(i)
		if !ok {
			continue
		}
		if opts.CategoryID != "" && app.CategoryID != opts.CategoryID {
			continue
		}
		results = append(results, Result{Item: app, Score: score, ItemIndex: i})
	}
	SortResults(results)
	return results
}

// scoreExact adds the full weight of every posting of tok.
func (idx *Index) scoreExact(tok string, scores map[int]float64) {
	for _, p := range idx.terms[tok] {
		scores[p.ItemIndex] += p.Weight
	}
}

// scorePrefix adds a length-proportional share of the weight of every term
// that extends tok.
func (idx *Index) scorePrefix(tok string, scores map[int]float64) {
	// vocab is sorted, so every term starting with tok follows tok directly.
	start := sort.SearchStrings(idx.vocab, tok)
	for _, term := range idx.vocab[start:] {
		if !strings.HasPrefix(term, tok) {
			break
		}
		if term == tok {
			continue
		}
		ratio := float64(len(tok)) / float64(len(term))
		for _, p := range idx.terms[term] {
			scores[p.ItemIndex] += p.Weight * ratio * prefixFactor
		}
	}
}

// scoreFuzzy adds a distance-discounted weight for every term within the edit
// distance tolerance of tok. Exact matches (distance 0) are counted again here.
func (idx *Index) scoreFuzzy(tok string, scores map[int]float64) {
	maxDistance := MaxDistance(tok)
	for _, term := range idx.vocab {
		// The length gap is a lower bound on the distance.
		if abs(len(term)-len(tok)) > maxDistance {
			continue
		}
		d := Levenshtein(tok, term)
		if d > maxDistance {
			continue
		}
		factor := 1 - float64(d)/float64(len(tok)+1)
		for _, p := range idx.terms[term] {
			scores[p.ItemIndex] += p.Weight * factor
		}
	}
}

// MaxDistance returns the edit distance tolerated for a query token:
// one edit per four characters, at least one.
func MaxDistance(tok string) int {
	return max(1, len([]rune(tok))/4)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
