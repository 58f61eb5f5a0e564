package table

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/carbocation/degexplore"
	"github.com/carbocation/pfx"
)

// ParseRecords parses delimited text. If the first line holds only one field
// while the content is evidently delimited by something else, the result is
// ErrDelimiterMismatch rather than a one-column table.
func ParseRecords(content []byte, comma rune) ([][]string, error) {
	content, err := degexplore.MaybeDecompress(content)
	if err != nil {
		return nil, err
	}

	cr := csv.NewReader(bytes.NewReader(content))
	cr.Comma = comma
	cr.LazyQuotes = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, pfx.Err(err)
	}

	if len(records) < 1 {
		return nil, fmt.Errorf("no header row")
	}

	if len(records[0]) == 1 {
		if sniffed, bad := degexplore.DelimiterMismatch(content, comma); bad {
			return nil, fmt.Errorf("%w: declared %q but found %q", ErrDelimiterMismatch, comma, sniffed)
		}
	}

	return records, nil
}

// ParseDelimited parses delimited text into a Table.
func ParseDelimited(content []byte, comma rune) (*Table, error) {
	records, err := ParseRecords(content, comma)
	if err != nil {
		return nil, err
	}

	return FromRecords(records)
}
