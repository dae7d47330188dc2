// Package search builds a prefix index over parsed documents.
//
// Field keys, descriptions and values are broken into lowercase words
// and inserted into per-concern tries, so a query term matches any
// field containing a word with that prefix. Key matches outrank
// description matches, which outrank value matches.
package search

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/lmutools/cfged/doc"
)

const (
	minWordLen = 2
	maxResults = 100
	// values longer than this are not indexed
	maxValueLen = 100
)

var wordRE = regexp.MustCompile(`\w{2,}`)

type MatchKind int

const (
	NameMatch MatchKind = iota
	DescriptionMatch
	ValueMatch
)

func (k MatchKind) String() string {
	switch k {
	case NameMatch:
		return "name"
	case DescriptionMatch:
		return "description"
	case ValueMatch:
		return "value"
	}
	return fmt.Sprintf("MatchKind(%d)", int(k))
}

type Result struct {
	Group       string
	Key         string
	Kind        MatchKind
	Score       float64
	Matched     string
	Value       string
	Description string
}

type entry struct {
	group, key, value, desc string
}

type node struct {
	children map[rune]*node
	paths    map[string]struct{}
}

func newNode() *node {
	return &node{children: map[rune]*node{}}
}

func (n *node) insert(word, path string) {
	for _, r := range word {
		child := n.children[r]
		if child == nil {
			child = newNode()
			n.children[r] = child
		}
		n = child
		if n.paths == nil {
			n.paths = map[string]struct{}{}
		}
		n.paths[path] = struct{}{}
	}
}

// prefix returns every path reachable under the prefix. Paths were
// accumulated on each node during insert, so no subtree walk is
// needed.
func (n *node) prefix(p string) map[string]struct{} {
	for _, r := range p {
		n = n.children[r]
		if n == nil {
			return nil
		}
	}
	return n.paths
}

// Index holds the built tries. Rebuild after document mutation; there
// is no incremental update.
type Index struct {
	names  *node
	descs  *node
	values *node
	fields map[string]entry
	words  map[string]int
}

// New indexes every field of the given documents.
func New(docs ...*doc.Document) *Index {
	ix := &Index{
		names:  newNode(),
		descs:  newNode(),
		values: newNode(),
		fields: map[string]entry{},
		words:  map[string]int{},
	}
	for _, d := range docs {
		for _, g := range d.Groups {
			for _, f := range g.Fields {
				path := g.Name + "\x00" + f.Key
				ix.fields[path] = entry{
					group: g.Name,
					key:   f.Key,
					value: f.Value,
					desc:  f.Description,
				}
				ix.add(ix.names, f.Key, path)
				ix.add(ix.descs, f.Description, path)
				if len(f.Value) <= maxValueLen {
					ix.add(ix.values, f.Value, path)
				}
			}
		}
	}
	return ix
}

func (ix *Index) add(t *node, text, path string) {
	for _, w := range words(text) {
		t.insert(w, path)
		ix.words[w]++
	}
}

// Search matches the query's words against the index and returns
// scored results, best first. Queries shorter than two characters
// yield nothing.
func (ix *Index) Search(query string) []Result {
	query = strings.ToLower(strings.TrimSpace(query))
	terms := words(query)
	if len(terms) == 0 {
		return nil
	}
	hit := map[string]struct{}{}
	for _, t := range []*node{ix.names, ix.descs, ix.values} {
		for _, term := range terms {
			for p := range t.prefix(term) {
				hit[p] = struct{}{}
			}
		}
	}
	var res []Result
	for p := range hit {
		if r, ok := ix.score(ix.fields[p], query, terms); ok {
			res = append(res, r)
		}
	}
	sort.Slice(res, func(i, j int) bool {
		if res[i].Score != res[j].Score {
			return res[i].Score > res[j].Score
		}
		if res[i].Group != res[j].Group {
			return res[i].Group < res[j].Group
		}
		return res[i].Key < res[j].Key
	})
	if len(res) > maxResults {
		res = res[:maxResults]
	}
	return res
}

func (ix *Index) score(e entry, query string, terms []string) (Result, bool) {
	r := Result{
		Group:       e.group,
		Key:         e.key,
		Value:       e.value,
		Description: e.desc,
	}
	keyLower := strings.ToLower(e.key)
	switch {
	case containsAny(keyLower, terms):
		r.Kind = NameMatch
		r.Matched = e.key
		r.Score = 100
		if strings.Contains(keyLower, query) {
			r.Score = 150
		}
		if strings.HasPrefix(keyLower, query) {
			r.Score = 200
		}
	case containsAny(strings.ToLower(e.desc), terms):
		r.Kind = DescriptionMatch
		r.Matched = e.desc
		r.Score = 75
	case containsAny(strings.ToLower(e.value), terms):
		r.Kind = ValueMatch
		r.Matched = e.value
		r.Score = 50
	default:
		return Result{}, false
	}
	// short keys are more likely the field the user meant
	if len(e.key) <= 20 {
		r.Score *= 1.05
	}
	return r, true
}

// Suggest completes a partial query from indexed words, most frequent
// first.
func (ix *Index) Suggest(partial string, limit int) []string {
	partial = strings.ToLower(strings.TrimSpace(partial))
	if len(partial) < minWordLen {
		return nil
	}
	var sug []string
	for w := range ix.words {
		if strings.HasPrefix(w, partial) {
			sug = append(sug, w)
		}
	}
	sort.Slice(sug, func(i, j int) bool {
		if ix.words[sug[i]] != ix.words[sug[j]] {
			return ix.words[sug[i]] > ix.words[sug[j]]
		}
		return sug[i] < sug[j]
	})
	if len(sug) > limit {
		sug = sug[:limit]
	}
	return sug
}

func containsAny(s string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}

func words(text string) []string {
	if text == "" {
		return nil
	}
	found := wordRE.FindAllString(strings.ToLower(text), -1)
	out := found[:0]
	for _, w := range found {
		if len(w) >= minWordLen {
			out = append(out, w)
		}
	}
	return out
}
