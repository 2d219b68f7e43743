package codec

import (
	"bytes"
	"io"

	"github.com/pkg/errors"
)

// DeltaCodec stores postings as
//
//	VarInt(doc_id_0) score(ScoreLen)  VarInt(doc_id_i - doc_id_{i-1}) score(ScoreLen) ...
//
// Gaps between consecutive DocIds are usually small for high-frequency
// terms, so this compresses better than NaiveCodec at the cost of one more
// decode pass per query. The running "last id" lives entirely in the local
// decode loop below, never in package state.
type DeltaCodec struct {
	Widths Widths
}

var _ Codec = DeltaCodec{}

func (c DeltaCodec) EncodeList(postings PostingList) ([]byte, error) {
	var out []byte
	var lastID uint64
	for i, p := range postings {
		var delta uint64
		if i == 0 {
			delta = p.DocID
		} else {
			delta = p.DocID - lastID
		}
		out = append(out, EncodeVarint(delta)...)
		score, err := EncodeNumber(p.Score, c.Widths.ScoreLen)
		if err != nil {
			return nil, errors.Wrapf(err, "encoding score %d", p.Score)
		}
		out = append(out, score...)
		lastID = p.DocID
	}
	return out, nil
}

func (c DeltaCodec) DecodeList(data []byte) (PostingList, error) {
	r := bytes.NewReader(data)
	var out PostingList
	var lastID uint64
	first := true
	for r.Len() > 0 {
		delta, err := DecodeVarint(r)
		if err != nil {
			return nil, errors.Wrap(err, "decoding doc id delta")
		}
		scoreBuf := make([]byte, c.Widths.ScoreLen)
		if _, err := io.ReadFull(r, scoreBuf); err != nil {
			return nil, errors.Wrap(ErrTruncated, "reading score")
		}
		docID := delta
		if !first {
			docID = lastID + delta
		}
		first = false
		out = append(out, Posting{DocID: docID, Score: DecodeNumber(scoreBuf)})
		lastID = docID
	}
	return out, nil
}
