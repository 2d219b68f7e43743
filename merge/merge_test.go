package merge

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/gegeAi/text-indexing/codec"
	"github.com/gegeAi/text-indexing/document"
	"github.com/gegeAi/text-indexing/index"
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
	return n
}

func TestMergeDisjointEqualsCombinedBuild(t *testing.T) {
	dir := t.TempDir()

	a := index.New(countScore)
	a.AddDocument(document.Document{ID: 1, Text: [][]document.Token{{"cat", "dog"}}})
	pathA := filepath.Join(dir, "a")
	require.NoError(t, a.Save(pathA))

	b := index.New(countScore)
	b.AddDocument(document.Document{ID: 2, Text: [][]document.Token{{"cat"}}})
	pathB := filepath.Join(dir, "b")
	require.NoError(t, b.Save(pathB))

	merged := filepath.Join(dir, "merged")
	require.NoError(t, Merge(merged, pathA, pathB, codec.NaiveCodec{Widths: codec.DefaultWidths()}, codec.DefaultWidths(), zerolog.Nop()))

	combined := index.New(countScore)
	combined.AddDocument(document.Document{ID: 1, Text: [][]document.Token{{"cat", "dog"}}})
	combined.AddDocument(document.Document{ID: 2, Text: [][]document.Token{{"cat"}}})
	pathCombined := filepath.Join(dir, "combined")
	require.NoError(t, combined.Save(pathCombined))

	mergedBytes, err := os.ReadFile(merged)
	require.NoError(t, err)
	combinedBytes, err := os.ReadFile(pathCombined)
	require.NoError(t, err)
	require.Equal(t, combinedBytes, mergedBytes)
}

func TestMergeWithEmptyIsIdempotent(t *testing.T) {
	dir := t.TempDir()

	a := index.New(countScore)
	a.AddDocument(document.Document{ID: 1, Text: [][]document.Token{{"cat"}}})
	pathA := filepath.Join(dir, "a")
	require.NoError(t, a.Save(pathA))

	empty := index.New(countScore)
	pathEmpty := filepath.Join(dir, "empty")
	require.NoError(t, empty.Save(pathEmpty))

	merged := filepath.Join(dir, "merged")
	require.NoError(t, Merge(merged, pathA, pathEmpty, codec.NaiveCodec{Widths: codec.DefaultWidths()}, codec.DefaultWidths(), zerolog.Nop()))

	aBytes, err := os.ReadFile(pathA)
	require.NoError(t, err)
	mergedBytes, err := os.ReadFile(merged)
	require.NoError(t, err)
	require.Equal(t, aBytes, mergedBytes)
}

func TestMergeUnionsTermSet(t *testing.T) {
	dir := t.TempDir()

	a := index.New(countScore)
	a.AddDocument(document.Document{ID: 1, Text: [][]document.Token{{"alpha"}}})
	pathA := filepath.Join(dir, "a")
	require.NoError(t, a.Save(pathA))

	b := index.New(countScore)
	b.AddDocument(document.Document{ID: 2, Text: [][]document.Token{{"beta"}}})
	pathB := filepath.Join(dir, "b")
	require.NoError(t, b.Save(pathB))

	merged := filepath.Join(dir, "merged")
	require.NoError(t, Merge(merged, pathA, pathB, codec.NaiveCodec{Widths: codec.DefaultWidths()}, codec.DefaultWidths(), zerolog.Nop()))

	r := index.Open(merged, nil, codec.DefaultWidths())
	keys, err := r.ReadOnlyKeys()
	require.NoError(t, err)
	require.Len(t, keys, 2)
	require.Equal(t, "alpha", keys[0].Term)
	require.Equal(t, "beta", keys[1].Term)
}
