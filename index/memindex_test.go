package index

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gegeAi/text-indexing/codec"
	"github.com/gegeAi/text-indexing/document"
)

func countScore(tok document.Token, doc document.Document) uint64 {
	var n uint64
	for _, paragraph := range doc.Text {
		for _, t := range paragraph {
			if t == tok {
				n++
			}
		}
	}
	for _, t := range doc.Title {
		if t == tok {
			n++
		}
	}
	return n
}

func TestSingleDocumentSingleTermByteExact(t *testing.T) {
	ix := New(countScore)
	ix.AddDocument(document.Document{ID: 1, Text: [][]document.Token{{"cat"}}})

	dir := t.TempDir()
	path := filepath.Join(dir, "idx")
	require.NoError(t, ix.Save(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	want := []byte{
		0x01, 'c', 'a', 't',
		0x00, 0x00, 0x00, 0x09,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x01,
		0x00, 0x00, 0x00, 0x01,
	}
	require.Equal(t, want, data)
}

func TestReadOnlyKeysReturnsSortedOffsets(t *testing.T) {
	ix := New(countScore)
	ix.AddDocument(document.Document{ID: 1, Text: [][]document.Token{{"zebra", "ant", "mule"}}})

	dir := t.TempDir()
	path := filepath.Join(dir, "idx")
	require.NoError(t, ix.Save(path))

	r := Open(path, nil, codec.DefaultWidths())
	keys, err := r.ReadOnlyKeys()
	require.NoError(t, err)
	require.Len(t, keys, 3)
	require.Equal(t, []string{"ant", "mule", "zebra"}, []string{keys[0].Term, keys[1].Term, keys[2].Term})
	require.True(t, keys[0].Offset < keys[1].Offset)
	require.True(t, keys[1].Offset < keys[2].Offset)
}

func TestReadPostingListsSelective(t *testing.T) {
	ix := New(countScore)
	ix.AddDocument(document.Document{ID: 1, Text: [][]document.Token{{"cat", "dog"}}})
	ix.AddDocument(document.Document{ID: 2, Text: [][]document.Token{{"cat"}}})

	dir := t.TempDir()
	path := filepath.Join(dir, "idx")
	require.NoError(t, ix.Save(path))

	r := Open(path, nil, codec.DefaultWidths())
	loaded, err := r.ReadPostingLists(map[string]bool{"cat": true})
	require.NoError(t, err)

	pl, ok := loaded.PostingList("cat")
	require.True(t, ok)
	require.Equal(t, codec.PostingList{{DocID: 1, Score: 1}, {DocID: 2, Score: 1}}, pl)

	_, ok = loaded.PostingList("dog")
	require.False(t, ok)
}

func TestAddDocumentDeduplicatesTokensWithinDocument(t *testing.T) {
	ix := New(countScore)
	ix.AddDocument(document.Document{ID: 1, Text: [][]document.Token{{"black", "hound", "ate", "the", "black", "bear"}}})
	pl, ok := ix.PostingList("black")
	require.True(t, ok)
	require.Len(t, pl, 1)
	require.Equal(t, uint64(2), pl[0].Score)
}

func TestOutOfOrderIngestStillProducesSortedOutput(t *testing.T) {
	ix := New(countScore)
	ix.AddDocument(document.Document{ID: 5, Text: [][]document.Token{{"a"}}})
	ix.AddDocument(document.Document{ID: 2, Text: [][]document.Token{{"a"}}})
	ix.AddDocument(document.Document{ID: 9, Text: [][]document.Token{{"a"}}})

	dir := t.TempDir()
	path := filepath.Join(dir, "idx")
	require.NoError(t, ix.Save(path))

	r := Open(path, nil, codec.DefaultWidths())
	loaded, err := r.ReadPostingLists(nil)
	require.NoError(t, err)
	pl, ok := loaded.PostingList("a")
	require.True(t, ok)
	require.Equal(t, []uint64{2, 5, 9}, []uint64{pl[0].DocID, pl[1].DocID, pl[2].DocID})
}
