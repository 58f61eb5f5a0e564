// Package config holds the overridable settings of the analysis: input files,
// threshold, group markers, labels and chart titles.
package config

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"unicode/utf8"

	"github.com/carbocation/degexplore"
	"github.com/carbocation/pfx"
)

type Config struct {
	ConfigPath string `json:"-"`

	ExpressionPath   string `json:"expression"`
	GenesPath        string `json:"genes"`
	SamplesPath      string `json:"samples"`
	GenesDelimiter   string `json:"genes_delimiter"`
	SamplesDelimiter string `json:"samples_delimiter"`

	// FixQuotes repairs \" escapes in the gene and sample files.
	FixQuotes bool `json:"fix_quotes"`

	Analysis Analysis `json:"analysis"`
	Charts   Charts   `json:"charts"`

	OutputDir string `json:"output_dir"`
	Viewer    string `json:"viewer"`
	Summary   bool   `json:"summary"`
}

type Analysis struct {
	Threshold    float64 `json:"threshold"`
	TumorMarker  string  `json:"tumor_marker"`
	NormalMarker string  `json:"normal_marker"`
	HigherLabel  string  `json:"higher_label"`
	LowerLabel   string  `json:"lower_label"`
}

type Chart struct {
	Title    string `json:"title"`
	XLabel   string `json:"x_label"`
	YLabel   string `json:"y_label"`
	Filename string `json:"filename"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
}

type Charts struct {
	ByChromosome          Chart   `json:"by_chromosome"`
	ByChromosomeAndChange Chart   `json:"by_chromosome_and_change"`
	ChangeCounts          Chart   `json:"change_counts"`
	Heatmap               Chart   `json:"heatmap"`
	Clustermap            Chart   `json:"clustermap"`
	UpLabel               string  `json:"up_label"`
	DownLabel             string  `json:"down_label"`
	Palette               Palette `json:"palette"`
}

// Palette holds the hex colors of a diverging color scale.
type Palette struct {
	Low  string `json:"low"`
	Mid  string `json:"mid"`
	High string `json:"high"`
	NaN  string `json:"nan"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		ExpressionPath:   "Gene_Expression_Data.xlsx",
		GenesPath:        "Gene_Information.csv",
		SamplesPath:      "Sample_Information.tsv",
		GenesDelimiter:   ",",
		SamplesDelimiter: "\t",
		Analysis: Analysis{
			Threshold:    5,
			TumorMarker:  "Tumor",
			NormalMarker: "Normal",
			HigherLabel:  "Higher in Tumor",
			LowerLabel:   "Lower in Tumor",
		},
		Charts: Charts{
			ByChromosome: Chart{
				Title:    "Distribution of Differentially Expressed Genes (DEGs) by Chromosome",
				XLabel:   "Chromosome",
				YLabel:   "Count of DEGs",
				Filename: "degs_by_chromosome.png",
				Width:    1200,
				Height:   600,
			},
			ByChromosomeAndChange: Chart{
				Title:    "Distribution of DEGs by Chromosome and Sample Type",
				XLabel:   "Chromosome",
				YLabel:   "Count of DEGs",
				Filename: "degs_by_chromosome_and_change.png",
				Width:    1200,
				Height:   600,
			},
			ChangeCounts: Chart{
				Title:    "Count of DEGs: Upregulated vs Downregulated in Tumor Samples",
				XLabel:   "Expression Change",
				YLabel:   "Count",
				Filename: "degs_up_vs_down.png",
				Width:    800,
				Height:   600,
			},
			Heatmap: Chart{
				Title:    "Heatmap of Gene Expression by Sample",
				XLabel:   "Samples",
				YLabel:   "Gene Probes",
				Filename: "expression_heatmap.png",
				Width:    1200,
				Height:   800,
			},
			Clustermap: Chart{
				Title:    "Clustermap of Gene Expression by Sample",
				Filename: "expression_clustermap.png",
				Width:    1200,
				Height:   1000,
			},
			UpLabel:   "Upregulated",
			DownLabel: "Downregulated",
			Palette: Palette{
				Low:  "#3b4cc0",
				Mid:  "#dddddd",
				High: "#b40426",
				NaN:  "#808080",
			},
		},
		OutputDir: ".",
		Summary:   true,
	}
}

// ParseJSONConfigFromPath overlays the JSON file at path onto the defaults.
// Keys absent from the file keep their default values.
func ParseJSONConfigFromPath(path string) (Config, error) {
	out := Default()
	out.ConfigPath = degexplore.ExpandHome(path)

	f, err := os.Open(out.ConfigPath)
	if err != nil {
		return out, pfx.Err(err)
	}
	defer f.Close()

	if err := json.NewDecoder(f).Decode(&out); err != nil {
		if e, ok := err.(*json.SyntaxError); ok {
			log.Printf("syntax error at byte offset %d", e.Offset)
		}

		return out, pfx.Err(err)
	}

	// Interpret ~ if present
	out.ExpressionPath = degexplore.ExpandHome(out.ExpressionPath)
	out.GenesPath = degexplore.ExpandHome(out.GenesPath)
	out.SamplesPath = degexplore.ExpandHome(out.SamplesPath)
	out.OutputDir = degexplore.ExpandHome(out.OutputDir)

	return out, pfx.Err(out.Validate())
}

// Validate checks the settings that would otherwise fail late.
func (c Config) Validate() error {
	if _, err := Delimiter(c.GenesDelimiter); err != nil {
		return fmt.Errorf("genes_delimiter: %w", err)
	}
	if _, err := Delimiter(c.SamplesDelimiter); err != nil {
		return fmt.Errorf("samples_delimiter: %w", err)
	}
	if c.Analysis.Threshold < 0 {
		return fmt.Errorf("threshold must not be negative, got %v", c.Analysis.Threshold)
	}
	if c.Analysis.TumorMarker == "" || c.Analysis.NormalMarker == "" {
		return fmt.Errorf("both group markers must be set")
	}

	for _, chart := range []Chart{
		c.Charts.ByChromosome,
		c.Charts.ByChromosomeAndChange,
		c.Charts.ChangeCounts,
		c.Charts.Heatmap,
		c.Charts.Clustermap,
	} {
		if chart.Filename == "" {
			return fmt.Errorf("chart %q has no filename", chart.Title)
		}
		if chart.Width <= 0 || chart.Height <= 0 {
			return fmt.Errorf("chart %q has invalid size %dx%d", chart.Title, chart.Width, chart.Height)
		}
	}

	return nil
}

// Delimiter converts a one-character setting into a rune. The two-character
// escape `\t` is accepted for a tab.
func Delimiter(s string) (rune, error) {
	if s == `\t` {
		return '\t', nil
	}

	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("delimiter must be a single character, got %q", s)
	}

	r, _ := utf8.DecodeRuneInString(s)

	return r, nil
}
