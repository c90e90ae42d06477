package search

import (
	"slices"
	"sort"
)

// Field weights applied at index time.
const (
	WeightName        = 10.0
	WeightTag         = 8.0
	WeightDescription = 5.0
	WeightCategory    = 3.0
)

const (
	// fragmentFactor scales the weight of a prefix fragment of an indexed word.
	fragmentFactor = 0.8
	// prefixFactor scales the weight of a vocabulary term matched by prefix.
	prefixFactor = 0.9
)

// Posting associates an item with the weight of one term.
type Posting struct {
	ItemIndex int
	Weight    float64
}

// Index is an immutable inverted index over a flattened list of items.
//
// Item indices are dense, 0-based positions assigned in category-then-item
// order. An Index is never modified after BuildIndex returns, so it can be
// shared between goroutines without locking.
type Index struct {
	apps  []Item
	terms map[string][]Posting
	vocab []string // sorted keys of terms
}

// BuildIndex flattens the corpus and indexes every item's name, tags,
// description and category id.
//
// Categories with a nil Apps slice are skipped. BuildIndex never fails; a nil
// corpus yields an empty index.
func BuildIndex(corpus Corpus) *Index {
	b := &indexBuilder{
		idx:  &Index{terms: make(map[string][]Posting)},
		seen: make(map[postingKey]int),
	}
	if corpus != nil {
		for _, c := range corpus.Categories() {
			if c.Apps == nil {
				continue
			}
			for _, app := range c.Apps {
				b.add(app, c)
			}
		}
	}

	vocab := make([]string, 0, len(b.idx.terms))
	for t := range b.idx.terms {
		vocab = append(vocab, t)
	}
	sort.Strings(vocab)
	b.idx.vocab = vocab
	return b.idx
}

// Len returns the number of indexed items.
func (idx *Index) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.apps)
}

// Item returns the item at itemIndex.
func (idx *Index) Item(itemIndex int) (Item, bool) {
	if idx == nil || itemIndex < 0 || itemIndex >= len(idx.apps) {
		return Item{}, false
	}
	return idx.apps[itemIndex], true
}

// Items returns a copy of the flattened item list.
func (idx *Index) Items() []Item {
	if idx == nil {
		return nil
	}
	return slices.Clone(idx.apps)
}

// Postings returns a copy of the postings recorded for term.
func (idx *Index) Postings(term string) []Posting {
	if idx == nil {
		return nil
	}
	return slices.Clone(idx.terms[term])
}

// Terms returns the indexed vocabulary in lexicographic order.
func (idx *Index) Terms() []string {
	if idx == nil {
		return nil
	}
	return slices.Clone(idx.vocab)
}

// Stats summarizes the size of an index.
type Stats struct {
	Items    int
	Terms    int
	Postings int
}

// Stats returns item, term and posting counts.
func (idx *Index) Stats() Stats {
	if idx == nil {
		return Stats{}
	}
	s := Stats{Items: len(idx.apps), Terms: len(idx.terms)}
	for _, ps := range idx.terms {
		s.Postings += len(ps)
	}
	return s
}

type postingKey struct {
	term string
	item int
}

type indexBuilder struct {
	idx  *Index
	seen map[postingKey]int // position of the posting in idx.terms[term]
}

func (b *indexBuilder) add(app Item, c Category) {
	app.CategoryID = c.ID
	app.CategoryName = c.Name
	app.Tags = slices.Clone(app.Tags)

	i := len(b.idx.apps)
	b.idx.apps = append(b.idx.apps, app)

	b.indexText(app.Name, i, WeightName)
	for _, tag := range app.Tags {
		b.indexText(tag, i, WeightTag)
	}
	b.indexText(app.Description, i, WeightDescription)
	b.indexText(c.ID, i, WeightCategory)
}

// indexText indexes every token of text, plus its prefix fragments, for item i.
func (b *indexBuilder) indexText(text string, i int, weight float64) {
	for _, word := range Tokenize(text) {
		b.indexWord(word, i, weight)
		if len(word) <= minTokenLen {
			continue
		}
		for n := minTokenLen; n < len(word); n++ {
			w := weight * (float64(n) / float64(len(word))) * fragmentFactor
			b.indexWord(word[:n], i, w)
		}
	}
}

// indexWord records a posting, keeping the highest weight seen for the pair.
func (b *indexBuilder) indexWord(term string, i int, weight float64) {
	key := postingKey{term: term, item: i}
	if pos, ok := b.seen[key]; ok {
		p := &b.idx.terms[term][pos]
		p.Weight = max(p.Weight, weight)
		return
	}
	b.seen[key] = len(b.idx.terms[term])
	b.idx.terms[term] = append(b.idx.terms[term], Posting{ItemIndex: i, Weight: weight})
}
