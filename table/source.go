package table

import (
	"context"
	"log"

	"cloud.google.com/go/storage"
	"github.com/carbocation/degexplore"
	"github.com/carbocation/pfx"
)

// FileSource loads the three inputs from local paths, URLs or gs:// paths.
type FileSource struct {
	ExpressionPath string
	GenesPath      string
	SamplesPath    string

	// Delimiters for the gene and sample metadata. The expression matrix uses
	// GenesComma when it is not a spreadsheet.
	GenesComma   rune
	SamplesComma rune

	// FixQuotes rewrites \" escapes in the delimited metadata before parsing.
	FixQuotes bool

	// Storage is only needed for gs:// paths.
	Storage *storage.Client
}

func (s FileSource) Expression(ctx context.Context) (*Matrix, error) {
	log.Println("Loading expression matrix from", s.ExpressionPath)

	content, err := degexplore.OpenFileOrURL(ctx, s.ExpressionPath, s.Storage)
	if err != nil {
		return nil, pfx.Err(err)
	}

	records, err := SpreadsheetRecords(s.ExpressionPath, content, s.GenesComma)
	if err != nil {
		return nil, pfx.Err(err)
	}

	m, err := MatrixFromRecords(records)
	if err != nil {
		return nil, pfx.Err(err)
	}
	log.Printf("Loaded %d probes and %d samples\n", len(m.Probes), len(m.Columns()))

	return m, nil
}

func (s FileSource) Genes(ctx context.Context) (*Table, error) {
	log.Println("Loading gene information from", s.GenesPath)

	content, err := degexplore.OpenFileOrURL(ctx, s.GenesPath, s.Storage)
	if err != nil {
		return nil, pfx.Err(err)
	}

	if s.FixQuotes {
		if content, err = decompressAndFix(content); err != nil {
			return nil, pfx.Err(err)
		}
	}

	t, err := ParseDelimited(content, s.GenesComma)
	if err != nil {
		return nil, pfx.Err(err)
	}

	return t, nil
}

func (s FileSource) Samples(ctx context.Context) ([]*Sample, error) {
	log.Println("Loading sample information from", s.SamplesPath)

	content, err := degexplore.OpenFileOrURL(ctx, s.SamplesPath, s.Storage)
	if err != nil {
		return nil, pfx.Err(err)
	}

	if s.FixQuotes {
		if content, err = decompressAndFix(content); err != nil {
			return nil, pfx.Err(err)
		}
	}

	samples, err := ParseSamples(content, s.SamplesComma)
	if err != nil {
		return nil, pfx.Err(err)
	}

	return samples, nil
}

// The quote fix has to see plain text, so compressed metadata is expanded
// first. ParseRecords leaves uncompressed content alone.
func decompressAndFix(content []byte) ([]byte, error) {
	content, err := degexplore.MaybeDecompress(content)
	if err != nil {
		return nil, err
	}

	return FixQuotes(content)
}
