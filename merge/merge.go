// Package merge implements the external, two-way streaming merge of two
// sorted IndexFiles into a third: a three-branch comparison loop
// (left.term < right.term / == / >) over two record streams, with a
// shared term's two posting lists concatenated rather than de-duplicated
// under the assumption that they are already disjoint in DocId.
package merge

import (
	"bufio"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/gegeAi/text-indexing/codec"
)

// record is one decoded (term, posting-list) pair read from a stream.
type record struct {
	term     string
	postings codec.PostingList
}

// stream wraps a single sorted input file, exposing peek/advance over its
// decoded records.
type stream struct {
	path  string
	f     *os.File
	br    *bufio.Reader
	codec codec.Codec
	w     codec.Widths
	cur   *record
	err   error
}

func openStream(path string, c codec.Codec, w codec.Widths) (*stream, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", path)
	}
	s := &stream{path: path, f: f, br: bufio.NewReader(f), codec: c, w: w}
	s.advance()
	return s, s.err
}

func (s *stream) advance() {
	if s.err != nil {
		return
	}
	term, listLen, err := codec.ReadRecordHeader(s.br, s.w)
	if err == io.EOF {
		s.cur = nil
		return
	}
	if err != nil {
		s.err = err
		s.cur = nil
		return
	}
	buf := make([]byte, listLen)
	if _, err := io.ReadFull(s.br, buf); err != nil {
		s.err = errors.Wrapf(codec.ErrTruncated, "reading posting list for %q in %s", term, s.path)
		s.cur = nil
		return
	}
	postings, err := s.codec.DecodeList(buf)
	if err != nil {
		s.err = errors.Wrapf(err, "decoding posting list for %q in %s", term, s.path)
		s.cur = nil
		return
	}
	s.cur = &record{term: term, postings: postings}
}

func (s *stream) close() {
	s.f.Close()
}

// Merge streams two sorted index files at left and right into a new file
// at dst, emitting one record at a time (O(|left|+|right|) bytes, bounded
// per-record memory). Keys equal in both inputs are merged by posting-list
// concatenation, under the assumption that the two lists are already
// disjoint in DocId.
func Merge(dst, left, right string, c codec.Codec, w codec.Widths, logger zerolog.Logger) error {
	if c == nil {
		c = codec.NaiveCodec{Widths: w}
	}

	ls, err := openStream(left, c, w)
	if err != nil {
		return errors.Wrapf(err, "opening left input %s", left)
	}
	defer ls.close()

	rs, err := openStream(right, c, w)
	if err != nil {
		return errors.Wrapf(err, "opening right input %s", right)
	}
	defer rs.close()

	out, err := os.Create(dst)
	if err != nil {
		return errors.Wrapf(err, "creating output %s", dst)
	}
	defer out.Close()
	bw := bufio.NewWriter(out)

	var terms int
	emit := func(term string, postings codec.PostingList) error {
		listBytes, err := c.EncodeList(postings)
		if err != nil {
			return errors.Wrapf(err, "encoding merged list for %q", term)
		}
		rec, err := codec.EncodeRecord(term, listBytes, w)
		if err != nil {
			return errors.Wrapf(err, "framing merged record for %q", term)
		}
		if _, err := bw.Write(rec); err != nil {
			return errors.Wrapf(err, "writing merged record for %q", term)
		}
		terms++
		return nil
	}

	for ls.cur != nil || rs.cur != nil {
		switch {
		case rs.cur == nil || (ls.cur != nil && ls.cur.term < rs.cur.term):
			if err := emit(ls.cur.term, ls.cur.postings); err != nil {
				return err
			}
			ls.advance()
		case ls.cur == nil || ls.cur.term > rs.cur.term:
			if err := emit(rs.cur.term, rs.cur.postings); err != nil {
				return err
			}
			rs.advance()
		default:
			combined := make(codec.PostingList, 0, len(ls.cur.postings)+len(rs.cur.postings))
			combined = append(combined, ls.cur.postings...)
			combined = append(combined, rs.cur.postings...)
			if err := emit(ls.cur.term, combined); err != nil {
				return err
			}
			ls.advance()
			rs.advance()
		}
		if ls.err != nil {
			return ls.err
		}
		if rs.err != nil {
			return rs.err
		}
	}

	if err := bw.Flush(); err != nil {
		return errors.Wrap(err, "flushing merged output")
	}
	logger.Info().Str("left", left).Str("right", right).Str("dst", dst).Int("terms", terms).Msg("merge complete")
	return nil
}
