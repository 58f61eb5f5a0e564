package degexplore

import (
	"bytes"
	"io"

	"github.com/csimplestring/go-csv/detector"
)

// DetermineDelimiter returns the single most likely rune that would delimit the
// values in the reader, assuming a CSV-like file.
func DetermineDelimiter(r io.Reader) rune {
	d := detector.New()
	delimiters := d.DetectDelimiter(r, '"')

	if len(delimiters) > 0 {
		return rune(delimiters[0][0])
	}

	return ','
}

// DelimiterMismatch reports whether a file whose first line parsed into a
// single field was actually delimited by some other character. It returns the
// delimiter that the content appears to use.
func DelimiterMismatch(content []byte, declared rune) (rune, bool) {
	firstLine := content
	if i := bytes.IndexByte(content, '\n'); i >= 0 {
		firstLine = content[:i]
	}

	sniffed := DetermineDelimiter(bytes.NewReader(content))
	if sniffed == declared {
		return sniffed, false
	}

	return sniffed, bytes.ContainsRune(firstLine, sniffed)
}
