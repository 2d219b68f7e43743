package query

// topKHeap is a bounded min-heap of at most k Results, ordered by Score
// ascending at the root so the current worst survivor is always available
// in O(1) and evictable in O(log k).
type topKHeap struct {
	k     int
	items []Result
}

func newTopKHeap(k int) *topKHeap {
	return &topKHeap{k: k, items: make([]Result, 0, k)}
}

func (h *topKHeap) len() int {
	return len(h.items)
}

// min returns the lowest score currently held, or false if the heap has
// not yet reached capacity k (i.e. the worst-survivor threshold is
// effectively +infinity).
func (h *topKHeap) min() (uint64, bool) {
	if len(h.items) < h.k {
		return 0, false
	}
	return h.items[0].Score, true
}

// offer inserts r if the heap has room, or if r beats the current worst
// survivor (evicting it). Returns true if r was kept.
func (h *topKHeap) offer(r Result) bool {
	if len(h.items) < h.k {
		h.items = append(h.items, r)
		h.siftUp(len(h.items) - 1)
		return true
	}
	if r.Score <= h.items[0].Score {
		return false
	}
	h.items[0] = r
	h.siftDown(0)
	return true
}

// sorted returns the held results ordered by score descending, DocId
// ascending on ties.
func (h *topKHeap) sorted() []Result {
	out := make([]Result, len(h.items))
	copy(out, h.items)
	sortResultsDescending(out)
	return out
}

func (h *topKHeap) siftUp(i int) {
	items := h.items
	for i > 0 {
		parent := (i - 1) / 2
		if items[parent].Score <= items[i].Score {
			break
		}
		items[parent], items[i] = items[i], items[parent]
		i = parent
	}
}

func (h *topKHeap) siftDown(i int) {
	items := h.items
	n := len(items)
	for {
		left := 2*i + 1
		if left >= n {
			break
		}
		smallest := left
		if right := left + 1; right < n && items[right].Score < items[left].Score {
			smallest = right
		}
		if items[i].Score <= items[smallest].Score {
			break
		}
		items[i], items[smallest] = items[smallest], items[i]
		i = smallest
	}
}
