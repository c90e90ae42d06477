package search

// Levenshtein returns the edit distance between a and b, counting insertions,
// deletions and substitutions of runes at cost one each.
func Levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	// d[i][j] is the distance between rb[:i] and ra[:j].
	d := make([][]int, len(rb)+1)
	for i := range d {
		d[i] = make([]int, len(ra)+1)
		d[i][0] = i
	}
	for j := 0; j <= len(ra); j++ {
		d[0][j] = j
	}

	for i := 1; i <= len(rb); i++ {
		for j := 1; j <= len(ra); j++ {
			if rb[i-1] == ra[j-1] {
				d[i][j] = d[i-1][j-1]
				continue
			}
			d[i][j] = min(
				d[i-1][j-1]+1, // substitution
				d[i][j-1]+1,   // insertion
				d[i-1][j]+1,   // deletion
			)
		}
	}
	return d[len(rb)][len(ra)]
}
