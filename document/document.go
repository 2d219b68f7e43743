// Package document defines the contracts the core index consumes from, and
// exposes to, external collaborators: the shape of a Document, the
// Tokenizer that turns text into tokens, and the ScoreFn that turns a
// (token, document) pair into a score. Nothing in this package decides how
// text becomes tokens or how a score is computed — those are supplied by
// the tokenize and score packages (or by a caller's own implementation).
package document

// Token is an opaque, normalized word. The codec rejects tokens longer
// than 255 bytes after UTF-8 encoding.
type Token = string

// Document is the sole input to InMemoryIndex.AddDocument. ID must fit the
// configured ID byte width; it is otherwise opaque to the core.
type Document struct {
	ID     uint64
	Title  []Token
	Text   [][]Token
	Date   *string
	Length *uint32
}

// Tokenizer turns free text into a list of tokens. Implementations may
// stem and may drop punctuation; they must be pure.
type Tokenizer interface {
	WordTokenize(text string) []Token
}

// ScoreFn computes the score contribution of a single distinct token
// within a document. It is called at most once per distinct (token,
// document) pair regardless of the token's frequency in that document, and
// must be deterministic: the same (token, document) always yields the same
// score.
type ScoreFn func(token Token, doc Document) uint64
