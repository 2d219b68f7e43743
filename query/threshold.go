package query

import (
	"sort"

	"github.com/gegeAi/text-indexing/document"
	"github.com/gegeAi/text-indexing/index"
)

// missingScoreSentinel is added to a candidate's combined score for every
// query term whose posting list does not contain the candidate document.
// Candidates whose combined score ends up negative are dropped, which
// filters non-conjunctive candidates without a separate presence check as
// long as the scores from the lists that do contain the candidate sum to
// less than 1,000,000; a larger sum offsets the sentinel and the candidate
// is kept.
const missingScoreSentinel = -1000000

// Threshold answers a conjunctive top-k query with Fagin's Threshold
// Algorithm: round-robin sorted access across the m query-term posting
// lists, random access (binary search) into every other list to compute a
// candidate's combined score, and early termination once the current
// worst survivor's score can no longer be beaten by any unseen document.
func Threshold(q string, tok document.Tokenizer, idx *index.Reader, topK int) ([]Result, error) {
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

	m := len(qTerms)
	byID := make([][]postingEntry, m)    // sorted ascending by DocId, for random access
	byScore := make([][]postingEntry, m) // sorted descending by score, for sorted access
	for j, t := range qTerms {
		byID[j] = lists[t]
		cp := make([]postingEntry, len(lists[t]))
		copy(cp, lists[t])
		sort.SliceStable(cp, func(i, k int) bool { return cp[i].score > cp[k].score })
		byScore[j] = cp
	}

	cursor := make([]int, m)
	seen := make(map[uint64]bool)
	heap := newTopKHeap(topK)
	lastSeenScore := make([]uint64, m) // score at the last position accessed in term j's sorted-by-score view
	var sortedAccessCount int
	var tau uint64
	tauKnown := false

	for {
		scoreMin, haveMin := heap.min()
		if !(heap.len() < topK || (haveMin && scoreMin < tau) || !tauKnown) {
			break
		}

		for j := 0; j < m; j++ {
			var docID uint64
			var score uint64
			found := false
			for cursor[j] < len(byScore[j]) {
				e := byScore[j][cursor[j]]
				cursor[j]++
				if seen[e.docID] {
					continue
				}
				docID, score = e.docID, e.score
				found = true
				break
			}
			if !found {
				// this list is exhausted: no unseen document remains to consider.
				return heap.sorted(), nil
			}
			seen[docID] = true
			sortedAccessCount++
			lastSeenScore[j] = score

			combined := int64(score)
			for jOther := 0; jOther < m; jOther++ {
				if jOther == j {
					continue
				}
				if otherScore, ok := randomAccess(byID[jOther], docID); ok {
					combined += int64(otherScore)
				} else {
					combined += missingScoreSentinel
				}
			}
			if combined >= 0 {
				heap.offer(Result{DocID: docID, Score: uint64(combined)})
			}

			if sortedAccessCount >= m {
				tauKnown = true
				tau = 0
				for jj := 0; jj < m; jj++ {
					tau += lastSeenScore[jj]
				}
			}
		}
	}
	return heap.sorted(), nil
}

// randomAccess binary-searches a DocId-ascending posting list for docID.
func randomAccess(list []postingEntry, docID uint64) (uint64, bool) {
	lo, hi := 0, len(list)
	for lo < hi {
		mid := (lo + hi) / 2
		switch {
		case list[mid].docID < docID:
			lo = mid + 1
		case list[mid].docID > docID:
			hi = mid
		default:
			return list[mid].score, true
		}
	}
	return 0, false
}
