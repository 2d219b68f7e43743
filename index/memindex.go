// Package index implements the in-memory index builder (InMemoryIndex) and
// the on-disk IndexFile reader (Reader): a term -> posting-list map that
// ingests documents and streams itself out in sorted order, and a
// sequential/selective reader for the resulting file.
package index

import (
	"bufio"
	"os"
	"sort"

	"github.com/google/btree"
	"github.com/pkg/errors"

	"github.com/gegeAi/text-indexing/codec"
	"github.com/gegeAi/text-indexing/document"
)

// term is the btree element: a term and its accumulated posting list.
// Ordering is lexicographic byte comparison of the term's UTF-8 bytes.
type term struct {
	key      string
	postings codec.PostingList
}

func termLess(a, b *term) bool {
	return a.key < b.key
}

// InMemoryIndex is the builder side of the format: an ordered term ->
// posting-list map, built by accumulating entries before a single sorted
// flush, with postings appended directly under their term (a corpus's
// vocabulary is small enough that per-term slices need no intermediate
// spill-to-disk step).
type InMemoryIndex struct {
	tree       *btree.BTreeG[*term]
	scoreFn    document.ScoreFn
	codec      codec.Codec
	widths     codec.Widths
	lastDocs   map[string]uint64 // last DocID appended per term, to detect ingest disorder
	outOfOrder map[string]bool   // terms whose postings need a sort before Save
}

// Option configures an InMemoryIndex at construction.
type Option func(*InMemoryIndex)

// WithCodec selects the posting-list codec used by Save. The default is
// NaiveCodec, matching the legacy, tag-free on-disk format.
func WithCodec(c codec.Codec) Option {
	return func(ix *InMemoryIndex) { ix.codec = c }
}

// WithWidths overrides the default tunable widths.
func WithWidths(w codec.Widths) Option {
	return func(ix *InMemoryIndex) { ix.widths = w }
}

// New constructs an empty InMemoryIndex. scoreFn is invoked at most once
// per distinct (token, document) pair as documents are added.
func New(scoreFn document.ScoreFn, opts ...Option) *InMemoryIndex {
	ix := &InMemoryIndex{
		tree:     btree.NewG(32, termLess),
		scoreFn:  scoreFn,
		widths:   codec.DefaultWidths(),
		lastDocs: make(map[string]uint64),
	}
	for _, opt := range opts {
		opt(ix)
	}
	if ix.codec == nil {
		ix.codec = codec.NaiveCodec{Widths: ix.widths}
	}
	return ix
}

// AddDocument ingests doc: for every distinct token found anywhere in
// doc.Title or doc.Text, scoreFn is called exactly once and (doc.ID, score)
// is appended to that token's posting list. Callers must not present the
// same doc.ID to a single builder twice; per-document token deduplication
// is handled here with a hash set, not a linear scan.
func (ix *InMemoryIndex) AddDocument(doc document.Document) {
	seen := make(map[document.Token]struct{})
	add := func(tok document.Token) {
		if _, ok := seen[tok]; ok {
			return
		}
		seen[tok] = struct{}{}
		score := ix.scoreFn(tok, doc)
		ix.append(tok, doc.ID, score)
	}
	for _, tok := range doc.Title {
		add(tok)
	}
	for _, paragraph := range doc.Text {
		for _, tok := range paragraph {
			add(tok)
		}
	}
}

func (ix *InMemoryIndex) append(key string, docID, score uint64) {
	t, ok := ix.tree.Get(&term{key: key})
	if !ok {
		t = &term{key: key}
		ix.tree.ReplaceOrInsert(t)
	} else if last, seen := ix.lastDocs[key]; seen && docID < last {
		ix.forceSort(key)
	}
	t.postings = append(t.postings, codec.Posting{DocID: docID, Score: score})
	ix.lastDocs[key] = docID
}

// forceSort marks that term's list as requiring a sort by DocID before Save;
// the actual sort happens lazily in Save so repeated out-of-order appends
// only cost one sort per term.
func (ix *InMemoryIndex) forceSort(key string) {
	if ix.outOfOrder == nil {
		ix.outOfOrder = make(map[string]bool)
	}
	ix.outOfOrder[key] = true
}

// Save streams an encoded record for every term in ascending order,
// truncating any prior contents at path. Postings are sorted ascending by
// DocID (out-of-order ingest notwithstanding), and terms come out in
// ascending key order because the btree is walked in order.
func (ix *InMemoryIndex) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "creating index file %s", path)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	var saveErr error
	ix.tree.Ascend(func(t *term) bool {
		postings := t.postings
		if ix.outOfOrder[t.key] {
			sorted := make(codec.PostingList, len(postings))
			copy(sorted, postings)
			sort.Slice(sorted, func(i, j int) bool { return sorted[i].DocID < sorted[j].DocID })
			postings = sorted
		}
		listBytes, err := ix.codec.EncodeList(postings)
		if err != nil {
			saveErr = errors.Wrapf(err, "encoding posting list for term %q", t.key)
			return false
		}
		rec, err := codec.EncodeRecord(t.key, listBytes, ix.widths)
		if err != nil {
			saveErr = errors.Wrapf(err, "encoding record for term %q", t.key)
			return false
		}
		if _, err := w.Write(rec); err != nil {
			saveErr = errors.Wrapf(err, "writing record for term %q", t.key)
			return false
		}
		return true
	})
	if saveErr != nil {
		return saveErr
	}
	return errors.Wrap(w.Flush(), "flushing index file")
}

// Len reports the number of distinct terms currently held.
func (ix *InMemoryIndex) Len() int {
	return ix.tree.Len()
}

// PostingList returns the posting list currently held for term, and
// whether the term is present.
func (ix *InMemoryIndex) PostingList(key string) (codec.PostingList, bool) {
	t, ok := ix.tree.Get(&term{key: key})
	if !ok {
		return nil, false
	}
	return t.postings, true
}
