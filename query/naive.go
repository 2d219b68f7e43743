package query

import (
	"github.com/gegeAi/text-indexing/document"
	"github.com/gegeAi/text-indexing/index"
)

// Naive answers a conjunctive top-k query by loading every query term's
// posting list, intersecting them pairwise with a two-pointer merge on
// ascending DocId, and sorting the result by score descending.
func Naive(q string, tok document.Tokenizer, idx *index.Reader, topK int) ([]Result, error) {
	qTerms, err := terms(q, tok, true)
	if err != nil {
		return nil, err
	}
	if topK <= 0 {
		return nil, nil
	}

	lists, allPresent, err := loadTermSet(idx, qTerms)
	if err != nil {
		return nil, err
	}
	if !allPresent {
		return nil, nil
	}

	result := lists[qTerms[0]]
	for _, t := range qTerms[1:] {
		result = intersect(result, lists[t])
		if len(result) == 0 {
			return nil, nil
		}
	}

	out := make([]Result, len(result))
	for i, e := range result {
		out[i] = Result{DocID: e.docID, Score: e.score}
	}
	sortResultsDescending(out)
	if len(out) > topK {
		out = out[:topK]
	}
	return out, nil
}

// intersect merges two ascending-DocId posting lists, emitting one entry
// per shared DocId with combined (summed) score.
func intersect(a, b []postingEntry) []postingEntry {
	var out []postingEntry
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i].docID == b[j].docID:
			out = append(out, postingEntry{docID: a[i].docID, score: a[i].score + b[j].score})
			i++
			j++
		case a[i].docID < b[j].docID:
			i++
		default:
			j++
		}
	}
	return out
}
