package table

import (
	"bufio"
	"bytes"
	"io"
	"io/ioutil"
	"strings"
)

// QuoteFixReader rewrites the invalid \" quote escape, which some annotation
// exports emit, into the "" escape that encoding/csv understands.
type QuoteFixReader struct {
	r        *bufio.Reader
	leftover *strings.Reader
	err      error
}

func NewQuoteFixReader(r io.Reader) *QuoteFixReader {
	return &QuoteFixReader{r: bufio.NewReader(r), leftover: &strings.Reader{}}
}

func (q *QuoteFixReader) Read(p []byte) (int, error) {
	for q.leftover.Len() == 0 {
		if q.err != nil {
			return 0, q.err
		}

		// A final line without a newline arrives together with io.EOF
		var line string
		line, q.err = q.r.ReadString('\n')
		q.leftover = strings.NewReader(strings.ReplaceAll(line, `\"`, `""`))
	}

	return q.leftover.Read(p)
}

// FixQuotes applies QuoteFixReader to in-memory content.
func FixQuotes(content []byte) ([]byte, error) {
	return ioutil.ReadAll(NewQuoteFixReader(bytes.NewReader(content)))
}
