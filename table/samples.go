package table

import (
	"io"

	"github.com/carbocation/pfx"
	"github.com/gocarina/gocsv"
)

// Sample is one row of the sample metadata.
type Sample struct {
	SampleID  string `csv:"Sample_ID"`
	Phenotype string `csv:"Phenotype"`
}

// ParseSamples decodes sample metadata. Header names are trimmed of
// whitespace before being matched against the Sample fields, and both fields
// must be present. Values are kept as written.
func ParseSamples(content []byte, comma rune) ([]*Sample, error) {
	records, err := ParseRecords(content, comma)
	if err != nil {
		return nil, err
	}

	records[0] = TrimHeader(records[0])

	t := &Table{Header: records[0]}
	if err := RequireColumns(t, "Sample_ID", "Phenotype"); err != nil {
		return nil, err
	}

	out := []*Sample{}
	if err := gocsv.UnmarshalCSV(&recordReader{records: records}, &out); err != nil {
		return nil, pfx.Err(err)
	}

	return out, nil
}

// Phenotypes builds the Sample_ID => Phenotype lookup. Later rows win.
func Phenotypes(samples []*Sample) map[string]string {
	out := make(map[string]string, len(samples))
	for _, s := range samples {
		out[s.SampleID] = s.Phenotype
	}

	return out
}

// recordReader satisfies gocsv.CSVReader over records that were already
// parsed.
type recordReader struct {
	records [][]string
	pos     int
}

func (r *recordReader) Read() ([]string, error) {
	if r.pos >= len(r.records) {
		return nil, io.EOF
	}
	r.pos++

	return r.records[r.pos-1], nil
}

func (r *recordReader) ReadAll() ([][]string, error) {
	out := r.records[r.pos:]
	r.pos = len(r.records)

	return out, nil
}
