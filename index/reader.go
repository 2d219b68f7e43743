package index

import (
	"bufio"
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/gegeAi/text-indexing/codec"
)

// KeyOffset pairs a term with the byte offset of its record's start.
type KeyOffset struct {
	Term   string
	Offset int64
}

// Reader provides read-only, single-pass, forward-only access to an
// on-disk IndexFile: sequential keys-only scan, and selective posting-list
// load. It never caches across calls and never mutates the file.
type Reader struct {
	path   string
	codec  codec.Codec
	widths codec.Widths
}

// Open returns a Reader for the index file at path, using the given codec
// to decode posting lists (a NaiveCodec with widths if c is nil).
func Open(path string, c codec.Codec, widths codec.Widths) *Reader {
	if c == nil {
		c = codec.NaiveCodec{Widths: widths}
	}
	return &Reader{path: path, codec: c, widths: widths}
}

// ReadOnlyKeys scans every record, recording each record's starting offset
// and using list_len to seek past list_bytes without decoding them.
func (r *Reader) ReadOnlyKeys() ([]KeyOffset, error) {
	f, err := os.Open(r.path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening index file %s", r.path)
	}
	defer f.Close()

	br := bufio.NewReader(f)
	var out []KeyOffset
	var offset int64
	for {
		key, listLen, err := codec.ReadRecordHeader(br, r.widths)
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		headerLen := r.widths.KeyLenLen + len(key) + r.widths.ListLenLen
		out = append(out, KeyOffset{Term: key, Offset: offset})
		offset += int64(headerLen) + int64(listLen)

		if err := skip(br, f, listLen); err != nil {
			return nil, err
		}
	}
}

// ReadPostingLists walks the file once in order, decoding and collecting
// the posting list for every record whose term is in terms, skipping the
// rest. Complexity is one sequential pass; seeks only move forward.
func (r *Reader) ReadPostingLists(terms map[string]bool) (*InMemoryIndex, error) {
	f, err := os.Open(r.path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening index file %s", r.path)
	}
	defer f.Close()

	br := bufio.NewReader(f)
	result := New(nil, WithCodec(r.codec), WithWidths(r.widths))
	for {
		key, listLen, err := codec.ReadRecordHeader(br, r.widths)
		if err == io.EOF {
			return result, nil
		}
		if err != nil {
			return nil, err
		}
		if terms == nil || terms[key] {
			buf := make([]byte, listLen)
			if _, err := io.ReadFull(br, buf); err != nil {
				return nil, errors.Wrapf(codec.ErrTruncated, "reading posting list for %q", key)
			}
			postings, err := r.codec.DecodeList(buf)
			if err != nil {
				return nil, errors.Wrapf(err, "decoding posting list for %q", key)
			}
			result.tree.ReplaceOrInsert(&term{key: key, postings: postings})
		} else if err := skip(br, f, listLen); err != nil {
			return nil, err
		}
	}
}

// skip advances past n bytes of list_bytes, using the file's Seek when the
// bufio.Reader's buffer is empty (cheap skip-over) and falling back to a
// Discard through the buffer otherwise.
func skip(br *bufio.Reader, f *os.File, n int) error {
	if n == 0 {
		return nil
	}
	if br.Buffered() == 0 {
		if _, err := f.Seek(int64(n), io.SeekCurrent); err != nil {
			return errors.Wrap(err, "seeking past posting list")
		}
		return nil
	}
	if _, err := br.Discard(n); err != nil {
		return errors.Wrap(codec.ErrTruncated, "skipping posting list")
	}
	return nil
}
