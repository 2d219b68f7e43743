// Package codec implements the on-disk posting-list format: fixed-width
// number encoding, the MSB-first varint used by the delta codec, and the
// self-delimiting term/posting-list record framing shared by every codec.
//
// The framing is byte-for-byte compatible with the legacy format: no magic
// number, no header, a flat sequence of records in ascending term order.
package codec

import (
	"bufio"
	"io"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// Sentinel errors. Wrap with errors.Wrap/Wrapf at the call site; recover
// the sentinel with errors.Is.
var (
	ErrOutOfRange  = errors.New("codec: value out of range for configured width")
	ErrTruncated   = errors.New("codec: unexpected end of file mid-record")
	ErrInvalidUTF8 = errors.New("codec: term bytes are not valid UTF-8")
)

// Widths holds the tunable byte widths that define an on-disk format.
// Every file in a corpus must share one Widths value; a mismatched reader
// must refuse to decode.
type Widths struct {
	KeyLenLen  int // bytes for the term length prefix
	ListLenLen int // bytes for the posting-list byte-length prefix
	IDLen      int // bytes per DocId in the naive codec
	ScoreLen   int // bytes per Score
}

// DefaultWidths returns the format-defining widths (1, 4, 6, 4).
func DefaultWidths() Widths {
	return Widths{KeyLenLen: 1, ListLenLen: 4, IDLen: 6, ScoreLen: 4}
}

// Posting is a (DocId, Score) pair.
type Posting struct {
	DocID uint64
	Score uint64
}

// PostingList is a sequence of postings sorted strictly ascending by DocID.
type PostingList []Posting

// Codec encodes and decodes the posting-list portion of a record. The term
// framing around it (key_len/key/list_len) is shared by every Codec and
// lives in EncodeRecord/ReadRecordHeader below.
type Codec interface {
	// EncodeList returns the encoded list_bytes for postings, in the order
	// given (callers must supply them already sorted ascending by DocID).
	EncodeList(postings PostingList) ([]byte, error)
	// DecodeList decodes a complete list_bytes buffer.
	DecodeList(data []byte) (PostingList, error)
}

// EncodeNumber writes n as a w-byte big-endian unsigned integer.
func EncodeNumber(n uint64, w int) ([]byte, error) {
	if w <= 0 || w > 8 {
		return nil, errors.Wrapf(ErrOutOfRange, "invalid width %d", w)
	}
	if w < 8 && n>>uint(8*w) != 0 {
		return nil, errors.Wrapf(ErrOutOfRange, "%d does not fit in %d bytes", n, w)
	}
	out := make([]byte, w)
	for i := w - 1; i >= 0; i-- {
		out[i] = byte(n)
		n >>= 8
	}
	return out, nil
}

// DecodeNumber reads a big-endian unsigned integer of any width.
func DecodeNumber(b []byte) uint64 {
	var n uint64
	for _, c := range b {
		n = n<<8 | uint64(c)
	}
	return n
}

// EncodeVarint writes n as a sequence of 7-bit groups, most-significant
// group first; every byte but the last has its high bit set. This is a
// different bit order from encoding/binary's Uvarint (LSB-group-first):
// 127 -> 0x7F, 128 -> 0x81 0x00.
func EncodeVarint(n uint64) []byte {
	if n == 0 {
		return []byte{0}
	}
	var groups []byte
	for n > 0 {
		groups = append(groups, byte(n&0x7f))
		n >>= 7
	}
	out := make([]byte, len(groups))
	for i, g := range groups {
		out[len(groups)-1-i] = g
	}
	for i := 0; i < len(out)-1; i++ {
		out[i] |= 0x80
	}
	return out
}

// DecodeVarint reads one MSB-first varint from r.
func DecodeVarint(r io.ByteReader) (uint64, error) {
	var n uint64
	for {
		b, err := r.ReadByte()
		if err != nil {
			return 0, errors.Wrap(ErrTruncated, "reading varint")
		}
		n = n<<7 | uint64(b&0x7f)
		if b&0x80 == 0 {
			return n, nil
		}
	}
}

// EncodeRecord frames a term and its already-encoded posting-list bytes as
//
//	key_len(KeyLenLen) key_bytes(key_len) list_len(ListLenLen) list_bytes
func EncodeRecord(term string, listBytes []byte, w Widths) ([]byte, error) {
	keyLen, err := EncodeNumber(uint64(len(term)), w.KeyLenLen)
	if err != nil {
		return nil, errors.Wrapf(err, "encoding key length for term %q", term)
	}
	listLen, err := EncodeNumber(uint64(len(listBytes)), w.ListLenLen)
	if err != nil {
		return nil, errors.Wrapf(err, "encoding list length for term %q", term)
	}
	out := make([]byte, 0, len(keyLen)+len(term)+len(listLen)+len(listBytes))
	out = append(out, keyLen...)
	out = append(out, term...)
	out = append(out, listLen...)
	out = append(out, listBytes...)
	return out, nil
}

// ReadRecordHeader reads key_len, the term bytes, and list_len from r,
// leaving the reader positioned at the start of list_bytes. It returns
// io.EOF (unwrapped) when called exactly at a record boundary with no
// more records, and ErrTruncated when EOF occurs mid-record.
func ReadRecordHeader(r *bufio.Reader, w Widths) (term string, listLen int, err error) {
	keyLenBuf := make([]byte, w.KeyLenLen)
	if _, err := io.ReadFull(r, keyLenBuf); err != nil {
		if err == io.EOF {
			return "", 0, io.EOF
		}
		return "", 0, errors.Wrap(ErrTruncated, "reading key length")
	}
	keyLen := DecodeNumber(keyLenBuf)

	keyBuf := make([]byte, keyLen)
	if _, err := io.ReadFull(r, keyBuf); err != nil {
		return "", 0, errors.Wrap(ErrTruncated, "reading key bytes")
	}
	if !utf8.Valid(keyBuf) {
		return "", 0, ErrInvalidUTF8
	}

	listLenBuf := make([]byte, w.ListLenLen)
	if _, err := io.ReadFull(r, listLenBuf); err != nil {
		return "", 0, errors.Wrap(ErrTruncated, "reading list length")
	}

	return string(keyBuf), int(DecodeNumber(listLenBuf)), nil
}
