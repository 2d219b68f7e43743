// Package tokenize implements the document.Tokenizer used to turn document
// and query text into the index's vocabulary: Unicode folding, punctuation
// stripping, and Porter2 stemming.
package tokenize

import (
	"strings"
	"unicode"

	"github.com/rainycape/unidecode"
	"github.com/surgebase/porter2"

	"github.com/gegeAi/text-indexing/document"
)

// Tokenizer folds non-ASCII runes to their closest ASCII spelling, lowercases,
// turns everything but letters and digits (hyphens and underscores included)
// into spaces, splits on whitespace, and stems what's left with Porter2.
type Tokenizer struct {
	// NoStem disables Porter2 stemming when true. Default (zero value) stems.
	NoStem bool
}

var _ document.Tokenizer = Tokenizer{}

// WordTokenize implements document.Tokenizer.
func (t Tokenizer) WordTokenize(text string) []document.Token {
	if isNotASCII(text) {
		text = unidecode.Unidecode(text)
	}
	text = strings.ToLower(text)

	text = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' || r == '-' || r == '_' {
			return r
		}
		return ' '
	}, text)
	text = strings.ReplaceAll(text, "_", " ")
	text = strings.ReplaceAll(text, "-", " ")

	fields := strings.Fields(text)
	if len(fields) == 0 {
		return nil
	}
	out := make([]document.Token, 0, len(fields))
	for _, f := range fields {
		if !t.NoStem {
			f = porter2.Stem(f)
		}
		if f == "" {
			continue
		}
		out = append(out, document.Token(f))
	}
	return out
}

func isNotASCII(s string) bool {
	for _, r := range s {
		if r > unicode.MaxASCII {
			return true
		}
	}
	return false
}
