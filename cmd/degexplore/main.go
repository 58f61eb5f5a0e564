// degexplore computes tumor vs normal fold changes for every probe of an
// expression matrix, keeps the differentially expressed genes, renders five
// exploratory charts and prints a summary of the findings.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"cloud.google.com/go/storage"
	_ "github.com/carbocation/degexplore/compileinfoprint"
	"github.com/carbocation/degexplore/config"
	"github.com/carbocation/degexplore/pipeline"
	"github.com/carbocation/degexplore/plot"
	"github.com/carbocation/degexplore/report"
	"github.com/carbocation/degexplore/table"
)

func main() {
	fmt.Fprintf(os.Stderr, "%q\n", os.Args)

	defaults := config.Default()

	var configPath, expression, genes, samples, outputDir, viewer string
	var threshold float64
	var summary bool

	flag.StringVar(&configPath, "config", "", "Optional. Path to a JSON config file. Flags set explicitly override its values.")
	flag.StringVar(&expression, "expression", defaults.ExpressionPath, "Expression matrix (xlsx, xls, csv or tsv). Local path, URL or gs:// path.")
	flag.StringVar(&genes, "genes", defaults.GenesPath, "Gene information with Probe_ID and Chromosome columns.")
	flag.StringVar(&samples, "samples", defaults.SamplesPath, "Sample information with Sample_ID and Phenotype columns.")
	flag.Float64Var(&threshold, "threshold", defaults.Analysis.Threshold, "Probes whose absolute fold change exceeds this value are reported.")
	flag.StringVar(&outputDir, "out", defaults.OutputDir, "Folder where the charts are written.")
	flag.StringVar(&viewer, "viewer", defaults.Viewer, "Optional. Command that displays each chart; the next chart is rendered once it exits.")
	flag.BoolVar(&summary, "summary", defaults.Summary, "Print DEG counts and fold change statistics before the findings.")
	flag.Parse()

	cfg := defaults
	if configPath != "" {
		var err error
		cfg, err = config.ParseJSONConfigFromPath(configPath)
		if err != nil {
			log.Fatalln(err)
		}
	}

	// Only flags passed on the command line take precedence over the file
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "expression":
			cfg.ExpressionPath = expression
		case "genes":
			cfg.GenesPath = genes
		case "samples":
			cfg.SamplesPath = samples
		case "threshold":
			cfg.Analysis.Threshold = threshold
		case "out":
			cfg.OutputDir = outputDir
		case "viewer":
			cfg.Viewer = viewer
		case "summary":
			cfg.Summary = summary
		}
	})

	if err := cfg.Validate(); err != nil {
		log.Fatalln(err)
	}

	if _, err := run(context.Background(), cfg); err != nil {
		log.Fatalln(err)
	}
}

func run(ctx context.Context, cfg config.Config) (*pipeline.Outcome, error) {
	genesComma, err := config.Delimiter(cfg.GenesDelimiter)
	if err != nil {
		return nil, err
	}
	samplesComma, err := config.Delimiter(cfg.SamplesDelimiter)
	if err != nil {
		return nil, err
	}

	source := table.FileSource{
		ExpressionPath: cfg.ExpressionPath,
		GenesPath:      cfg.GenesPath,
		SamplesPath:    cfg.SamplesPath,
		GenesComma:     genesComma,
		SamplesComma:   samplesComma,
		FixQuotes:      cfg.FixQuotes,
	}

	// Initialize the Google Storage client only if we're pointing to Google
	// Storage paths.
	for _, path := range []string{cfg.ExpressionPath, cfg.GenesPath, cfg.SamplesPath} {
		if strings.HasPrefix(path, "gs://") {
			client, err := storage.NewClient(ctx)
			if err != nil {
				return nil, err
			}
			defer client.Close()
			source.Storage = client

			break
		}
	}

	renderer, err := plot.NewRenderer(cfg, plot.NewViewer(cfg.Viewer))
	if err != nil {
		return nil, err
	}

	reporter := report.Reporter{
		W:       os.Stdout,
		Summary: cfg.Summary,
		Labels:  renderer.Labels,
	}

	return pipeline.Run(ctx, cfg, source, renderer, reporter)
}
