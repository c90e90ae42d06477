package search

import "sort"

// SortResults sorts results by score (descending), then by normalized name,
// ID and item index (ascending).
func SortResults(results []Result) {
	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if na, nb := NormalizeTerm(a.Name), NormalizeTerm(b.Name); na != nb {
			return na < nb
		}
		if a.ID != b.ID {
			return a.ID < b.ID
		}
		return a.ItemIndex < b.ItemIndex
	})
}
