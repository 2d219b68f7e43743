// Package score provides the default document.ScoreFn: raw term frequency
// across a document's title and body text.
package score

import "github.com/gegeAi/text-indexing/document"

// TermFrequency counts how many times tok occurs in doc's title and text
// paragraphs combined. No normalization: no IDF, no length scaling.
func TermFrequency(tok document.Token, doc document.Document) uint64 {
	var n uint64
	for _, t := range doc.Title {
		if t == tok {
			n++
		}
	}
	for _, paragraph := range doc.Text {
		for _, t := range paragraph {
			if t == tok {
				n++
			}
		}
	}
	return n
}

var _ document.ScoreFn = TermFrequency
