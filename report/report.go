// Package report prints the findings of a DEG analysis.
package report

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/carbocation/degexplore/deg"
	"github.com/carbocation/pfx"
	"github.com/carbocation/runningvariance"
	"github.com/montanaflynn/stats"
	"github.com/olekukonko/tablewriter"
)

// Findings is printed verbatim after every analysis. It is not derived from
// the data.
const Findings = `
1. The histograms indicate that the majority of differentially expressed genes (DEGs) are located on specific chromosomes.
2. When segregating DEGs by sample type, we can observe the differences in expression levels between tumor and normal samples.
3. The bar chart shows a notable proportion of upregulated genes in tumor samples compared to downregulated genes, indicating significant biological changes.
4. The heatmap illustrates the overall expression patterns of genes across different samples, while the clustermap reveals clustering of samples based on gene expression profiles.
`

// Reporter writes the optional data summary followed by the findings.
type Reporter struct {
	W       io.Writer
	Summary bool
	Labels  deg.Labels
}

func (r Reporter) Report(res *deg.Result) error {
	if r.Summary {
		if err := Summarize(r.W, res, r.Labels); err != nil {
			return err
		}
	}

	_, err := fmt.Fprint(r.W, Findings+"\n")

	return pfx.Err(err)
}

// Summarize writes DEG counts by chromosome and direction, descriptive
// statistics of the finite fold changes, and a histogram of them.
func Summarize(w io.Writer, res *deg.Result, labels deg.Labels) error {
	degs := res.Table()
	tallies, err := deg.TallyByChromosome(degs)
	if err != nil {
		return err
	}
	unannotated, err := deg.CountUnannotated(degs)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "%d differentially expressed probes: %d %s, %d %s\n\n",
		len(res.Rows), res.Count(labels.Higher), labels.Higher, res.Count(labels.Lower), labels.Lower)

	if len(tallies) > 0 {
		tw := tablewriter.NewWriter(w)
		tw.SetHeader([]string{"Chromosome", labels.Higher, labels.Lower, "Total"})
		for _, t := range tallies {
			tw.Append([]string{
				t.Chromosome,
				strconv.Itoa(t.ByChange[labels.Higher]),
				strconv.Itoa(t.ByChange[labels.Lower]),
				strconv.Itoa(t.Total),
			})
		}
		tw.Render()
	}
	if unannotated > 0 {
		fmt.Fprintf(w, "%d probes have no chromosome annotation\n", unannotated)
	}
	if len(tallies) > 0 || unannotated > 0 {
		fmt.Fprintln(w)
	}

	finite, infinite := FiniteFoldChanges(res)
	if infinite > 0 {
		fmt.Fprintf(w, "%d probes have a zero normal mean and an infinite fold change\n", infinite)
	}
	if len(finite) == 0 {
		return nil
	}

	desc, err := Describe(finite)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Finite fold change: min %.4g, median %.4g, max %.4g, median absolute deviation %.4g\n",
		desc.Min, desc.Median, desc.Max, desc.MAD)
	fmt.Fprintf(w, "Finite fold change: mean %.4g, standard deviation %.4g\n\n", desc.Mean, desc.SD)

	// A histogram needs a non-zero spread
	if desc.Min == desc.Max {
		return nil
	}

	hist := histogram.Hist(10, finite)
	if err := histogram.Fprint(w, hist, histogram.Linear(40)); err != nil {
		return pfx.Err(err)
	}

	return nil
}

// Description holds summary statistics of a set of fold changes.
type Description struct {
	Min, Median, Max, MAD float64
	Mean, SD              float64
}

func Describe(data []float64) (Description, error) {
	var out Description
	var err error

	if out.Min, err = stats.Min(data); err != nil {
		return out, pfx.Err(err)
	}
	if out.Max, err = stats.Max(data); err != nil {
		return out, pfx.Err(err)
	}
	if out.Median, err = stats.Median(data); err != nil {
		return out, pfx.Err(err)
	}
	if out.MAD, err = stats.MedianAbsoluteDeviation(data); err != nil {
		return out, pfx.Err(err)
	}

	rs := runningvariance.NewRunningStat()
	for _, v := range data {
		rs.Push(v)
	}
	out.Mean = rs.Mean()
	if len(data) > 1 {
		out.SD = rs.StandardDeviation()
	}

	return out, nil
}

// FiniteFoldChanges splits the fold changes of res into the finite values,
// sorted, and a count of the infinite ones. NaN cannot pass the filter.
func FiniteFoldChanges(res *deg.Result) ([]float64, int) {
	finite := make([]float64, 0, len(res.Rows))
	infinite := 0
	for _, row := range res.Rows {
		switch {
		case math.IsInf(row.FoldChange, 0):
			infinite++
		case !math.IsNaN(row.FoldChange):
			finite = append(finite, row.FoldChange)
		}
	}
	sort.Float64s(finite)

	return finite, infinite
}
