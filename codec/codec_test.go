package codec

import (
	"bufio"
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeNumberRoundTrip(t *testing.T) {
	for _, tc := range []struct {
		n uint64
		w int
	}{
		{0, 1}, {255, 1}, {256, 2}, {1, 6}, {1<<32 - 1, 4},
	} {
		b, err := EncodeNumber(tc.n, tc.w)
		require.NoError(t, err)
		require.Len(t, b, tc.w)
		require.Equal(t, tc.n, DecodeNumber(b))
	}
}

func TestEncodeNumberOutOfRange(t *testing.T) {
	_, err := EncodeNumber(1<<32, 4)
	require.ErrorIs(t, err, ErrOutOfRange)
}

func TestVarintRoundTrip(t *testing.T) {
	cases := []uint64{0, 1, 127, 128, 16383, 16384, 1<<63 - 1}
	for _, n := range cases {
		enc := EncodeVarint(n)
		got, err := DecodeVarint(bytes.NewReader(enc))
		require.NoError(t, err)
		require.Equal(t, n, got)
	}
}

func TestVarintEncodesMultiByteContinuation(t *testing.T) {
	require.Equal(t, []byte{0x7F}, EncodeVarint(127))
	require.Equal(t, []byte{0x81, 0x00}, EncodeVarint(128))
	require.Equal(t, []byte{0x81, 0x80, 0x00}, EncodeVarint(16384))
}

func TestEncodeRecordSingleTermSinglePosting(t *testing.T) {
	// doc {id=1, text=[[cat]]}, score=count.
	w := DefaultWidths()
	codec := NaiveCodec{Widths: w}
	list, err := codec.EncodeList(PostingList{{DocID: 1, Score: 1}})
	require.NoError(t, err)
	rec, err := EncodeRecord("cat", list, w)
	require.NoError(t, err)

	want := []byte{
		0x01, 'c', 'a', 't',
		0x00, 0x00, 0x00, 0x09,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x01,
		0x00, 0x00, 0x00, 0x01,
	}
	require.Equal(t, want, rec)
}

func TestReadRecordHeaderRoundTrip(t *testing.T) {
	w := DefaultWidths()
	codec := NaiveCodec{Widths: w}
	list, err := codec.EncodeList(PostingList{{DocID: 1, Score: 1}, {DocID: 2, Score: 1}})
	require.NoError(t, err)
	rec, err := EncodeRecord("dog", list, w)
	require.NoError(t, err)

	r := bufio.NewReader(bytes.NewReader(rec))
	term, listLen, err := ReadRecordHeader(r, w)
	require.NoError(t, err)
	require.Equal(t, "dog", term)
	require.Equal(t, len(list), listLen)

	got := make([]byte, listLen)
	_, err = r.Read(got)
	require.NoError(t, err)
	decoded, err := codec.DecodeList(got)
	require.NoError(t, err)
	require.Equal(t, PostingList{{DocID: 1, Score: 1}, {DocID: 2, Score: 1}}, decoded)
}

func TestReadRecordHeaderEOF(t *testing.T) {
	r := bufio.NewReader(bytes.NewReader(nil))
	_, _, err := ReadRecordHeader(r, DefaultWidths())
	require.ErrorIs(t, err, io.EOF)
}

func TestReadRecordHeaderTruncated(t *testing.T) {
	r := bufio.NewReader(bytes.NewReader([]byte{0x03, 'c', 'a'}))
	_, _, err := ReadRecordHeader(r, DefaultWidths())
	require.ErrorIs(t, err, ErrTruncated)
}

func TestDeltaCodecRoundTrip(t *testing.T) {
	w := DefaultWidths()
	codec := DeltaCodec{Widths: w}
	postings := PostingList{{DocID: 1, Score: 2}, {DocID: 6, Score: 3}, {DocID: 7, Score: 4}}
	enc, err := codec.EncodeList(postings)
	require.NoError(t, err)
	dec, err := codec.DecodeList(enc)
	require.NoError(t, err)
	require.Equal(t, postings, dec)
}

func TestInvalidUTF8(t *testing.T) {
	w := DefaultWidths()
	bad := []byte{0x02, 0xff, 0xfe, 0x00, 0x00, 0x00, 0x00}
	r := bufio.NewReader(bytes.NewReader(bad))
	_, _, err := ReadRecordHeader(r, w)
	require.ErrorIs(t, err, ErrInvalidUTF8)
}
