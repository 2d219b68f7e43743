// Package corpus reads the XML document collections the index is built
// from, converting each <DOC> into a document.Document ready for
// index.InMemoryIndex.AddDocument.
package corpus

import (
	"encoding/xml"
	"io"
	"regexp"
	"strconv"

	"github.com/pkg/errors"

	"github.com/gegeAi/text-indexing/document"
)

// xmlCollection mirrors a <RAC><DOC>...</DOC></RAC> document collection,
// where each <DOC> carries DOCID/DOCNO identifiers and HEADLINE/DATE/
// LENGTH/TEXT fields each wrapping a <P> element (TEXT may repeat <P> once
// per paragraph).
type xmlCollection struct {
	XMLName xml.Name `xml:"RAC"`
	Docs    []xmlDoc `xml:"DOC"`
}

type xmlDoc struct {
	DocID    string `xml:"DOCID"`
	DocNo    string `xml:"DOCNO"`
	Headline struct {
		P string `xml:"P"`
	} `xml:"HEADLINE"`
	Date struct {
		P string `xml:"P"`
	} `xml:"DATE"`
	Length struct {
		P string `xml:"P"`
	} `xml:"LENGTH"`
	Text struct {
		P []string `xml:"P"`
	} `xml:"TEXT"`
}

var digits = regexp.MustCompile(`\d+`)

// Read parses an XML document collection from r, tokenizing title and text
// with tok. Document IDs are taken from the first run of digits in <DOCID>,
// since document.Document.ID is a uint64 used directly as the posting key.
func Read(r io.Reader, tok document.Tokenizer) ([]document.Document, error) {
	var coll xmlCollection
	if err := xml.NewDecoder(r).Decode(&coll); err != nil {
		return nil, errors.Wrap(err, "decoding document collection")
	}

	out := make([]document.Document, 0, len(coll.Docs))
	for _, d := range coll.Docs {
		id, err := parseID(d.DocID)
		if err != nil {
			return nil, errors.Wrapf(err, "document with DOCNO %q", d.DocNo)
		}

		doc := document.Document{
			ID:    id,
			Title: tok.WordTokenize(d.Headline.P),
		}
		for _, p := range d.Text.P {
			doc.Text = append(doc.Text, tok.WordTokenize(p))
		}
		if d.Date.P != "" {
			date := d.Date.P
			doc.Date = &date
		}
		if n, ok := parseLength(d.Length.P); ok {
			doc.Length = &n
		}
		out = append(out, doc)
	}
	return out, nil
}

func parseID(docID string) (uint64, error) {
	match := digits.FindString(docID)
	if match == "" {
		return 0, errors.Errorf("no numeric id in DOCID %q", docID)
	}
	return strconv.ParseUint(match, 10, 64)
}

func parseLength(s string) (uint32, bool) {
	match := digits.FindString(s)
	if match == "" {
		return 0, false
	}
	n, err := strconv.ParseUint(match, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint32(n), true
}
