// Package query implements the conjunctive top-k query engine: a naive
// sort-merge intersection and Fagin's Threshold Algorithm.
package query

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/gegeAi/text-indexing/document"
	"github.com/gegeAi/text-indexing/index"
)

// Sentinel errors surfaced to callers. A missing query term is not among
// them: it is converted to an empty result, never an error.
var (
	ErrEmptyQuery  = errors.New("query: query string tokenized to no terms")
	ErrUnsupported = errors.New("query: only conjunctive queries are supported")
)

// Result is one scored document in a query's answer set.
type Result struct {
	DocID uint64
	Score uint64
}

// terms tokenizes q with tok, deduplicates, and validates it is a
// non-empty, conjunctive query. conjunctive is always true in this engine,
// which has no disjunctive mode; it is threaded through so a caller
// attempting one gets ErrUnsupported instead of silently-wrong results.
func terms(q string, tok document.Tokenizer, conjunctive bool) ([]string, error) {
	if !conjunctive {
		return nil, ErrUnsupported
	}
	raw := tok.WordTokenize(q)
	seen := make(map[string]bool, len(raw))
	var out []string
	for _, t := range raw {
		if seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	if len(out) == 0 {
		return nil, ErrEmptyQuery
	}
	return out, nil
}

// Terms exposes the tokenize-dedupe-validate preprocessing shared by Naive
// and Threshold, for callers that want to inspect the term set before
// running a query.
func Terms(q string, tok document.Tokenizer) ([]string, error) {
	return terms(q, tok, true)
}

// loadTermSet loads the posting lists for terms from idx and reports
// whether every term is present; a missing term means the conjunctive
// query cannot match anything and must return an empty result rather than
// an error.
func loadTermSet(idx *index.Reader, qTerms []string) (map[string][]postingEntry, bool, error) {
	want := make(map[string]bool, len(qTerms))
	for _, t := range qTerms {
		want[t] = true
	}
	loaded, err := idx.ReadPostingLists(want)
	if err != nil {
		return nil, false, errors.Wrap(err, "loading query term posting lists")
	}

	lists := make(map[string][]postingEntry, len(qTerms))
	for _, t := range qTerms {
		pl, ok := loaded.PostingList(t)
		if !ok {
			return nil, false, nil
		}
		entries := make([]postingEntry, len(pl))
		for i, p := range pl {
			entries[i] = postingEntry{docID: p.DocID, score: p.Score}
		}
		lists[t] = entries
	}
	return lists, true, nil
}

type postingEntry struct {
	docID uint64
	score uint64
}

// sortResultsDescending sorts by score descending, stable, ties broken by
// ascending DocID so top-(k) is always a prefix of top-(k+1).
func sortResultsDescending(results []Result) {
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].DocID < results[j].DocID
	})
}
