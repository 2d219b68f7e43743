package codec

import "github.com/pkg/errors"

// NaiveCodec stores postings as a flat sequence of
// (doc_id(IDLen) score(ScoreLen)) tuples, in the order given. It is the
// zero-config default: no tag byte, no compression.
type NaiveCodec struct {
	Widths Widths
}

var _ Codec = NaiveCodec{}

func (c NaiveCodec) EncodeList(postings PostingList) ([]byte, error) {
	entrySize := c.Widths.IDLen + c.Widths.ScoreLen
	out := make([]byte, 0, entrySize*len(postings))
	for _, p := range postings {
		id, err := EncodeNumber(p.DocID, c.Widths.IDLen)
		if err != nil {
			return nil, errors.Wrapf(err, "encoding doc id %d", p.DocID)
		}
		score, err := EncodeNumber(p.Score, c.Widths.ScoreLen)
		if err != nil {
			return nil, errors.Wrapf(err, "encoding score %d", p.Score)
		}
		out = append(out, id...)
		out = append(out, score...)
	}
	return out, nil
}

func (c NaiveCodec) DecodeList(data []byte) (PostingList, error) {
	entrySize := c.Widths.IDLen + c.Widths.ScoreLen
	if entrySize == 0 || len(data)%entrySize != 0 {
		return nil, errors.Wrap(ErrTruncated, "posting list length is not a multiple of the entry size")
	}
	n := len(data) / entrySize
	out := make(PostingList, 0, n)
	for i := 0; i < n; i++ {
		entry := data[i*entrySize : (i+1)*entrySize]
		docID := DecodeNumber(entry[:c.Widths.IDLen])
		score := DecodeNumber(entry[c.Widths.IDLen:])
		out = append(out, Posting{DocID: docID, Score: score})
	}
	return out, nil
}
