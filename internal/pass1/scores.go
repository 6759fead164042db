package pass1

import "sort"

// ScoredTerm is a candidate term with its accumulated score.
type ScoredTerm struct {
	Term  string  `json:"term"`
	Score float64 `json:"score"`
}

// termTable accumulates candidate term scores. Iteration follows first
// insertion so that ties always resolve the same way.
type termTable struct {
	keys   []string
	scores map[string]float64
}

func newTermTable() *termTable {
	return &termTable{scores: make(map[string]float64)}
}

func (t *termTable) get(term string) (float64, bool) {
	v, ok := t.scores[term]
	return v, ok
}

func (t *termTable) has(term string) bool {
	_, ok := t.scores[term]
	return ok
}

func (t *termTable) set(term string, v float64) {
	if _, ok := t.scores[term]; !ok {
		t.keys = append(t.keys, term)
	}
	t.scores[term] = v
}

func (t *termTable) add(term string, v float64) {
	t.set(term, t.scores[term]+v)
}

// multiply scales an existing term by f or inserts f for a new term.
func (t *termTable) multiply(term string, f float64) {
	if v, ok := t.scores[term]; ok {
		t.scores[term] = v * f
		return
	}
	t.set(term, f)
}

func (t *termTable) scaleAll(f float64) {
	for k, v := range t.scores {
		t.scores[k] = v * f
	}
}

func (t *termTable) terms() []string {
	return append([]string(nil), t.keys...)
}

func (t *termTable) len() int {
	return len(t.keys)
}

// sorted returns all terms by score, highest first, stable on insertion order.
func (t *termTable) sorted() []ScoredTerm {
	out := make([]ScoredTerm, len(t.keys))
	for i, k := range t.keys {
		out[i] = ScoredTerm{Term: k, Score: t.scores[k]}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out
}

// linkTable maps terms to links in first-insertion order.
type linkTable struct {
	keys  []string
	links map[string][]string
}

func newLinkTable() *linkTable {
	return &linkTable{links: make(map[string][]string)}
}

func (t *linkTable) add(term, link string) {
	if _, ok := t.links[term]; !ok {
		t.keys = append(t.keys, term)
	}
	t.links[term] = append(t.links[term], link)
}

func (t *linkTable) get(term string) []string {
	return t.links[term]
}

func (t *linkTable) empty() bool {
	return len(t.keys) == 0
}
