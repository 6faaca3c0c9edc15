package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"

	"go-hep.org/x/hep/hbook"
	"go-hep.org/x/hep/hplot"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"

	"github.com/decibelcooper/hfplot"
	"github.com/decibelcooper/hfplot/accum"
	"github.com/decibelcooper/hfplot/dplus"
)

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: `+os.Args[0]+` [options] <dplus-output-dir>

options:
`,
	)
	flag.PrintDefaults()
}

func main() {
	log.SetPrefix("dplus-mass: ")
	log.SetFlags(0)

	var (
		title  = flag.String("title", "", "plot title")
		output = flag.String("output", "out.png", "output file")
		column = flag.String("column", "", "also plot this column of the signal tuple to <column>-<output>")
		nBins  = flag.Int("nbins", 50, "number of bins of the column histogram")
		xRange hfplot.FloatArrayFlags
	)
	flag.Var(&xRange, "range", "x range of the column histogram (give twice: min then max)")
	flag.Usage = printUsage
	flag.Parse()
	if flag.NArg() != 1 {
		printUsage()
		log.Fatal("Invalid arguments")
	}

	out, err := accum.Load(flag.Arg(0))
	if err != nil {
		log.Fatal(err)
	}

	p, _ := plot.New()
	p.Title.Text = *title
	p.X.Label.Text = "M (GeV)"
	p.X.Tick.Marker = hfplot.PreciseTicks{NSuggestedTicks: 5}
	p.Y.Tick.Marker = hfplot.PreciseTicks{NSuggestedTicks: 5}

	for i, name := range []string{dplus.HistMass, dplus.HistSignal, dplus.HistBackground} {
		hist := out.H1D(name)
		if hist == nil {
			log.Fatalf("no histogram %q in %s", name, flag.Arg(0))
		}

		h := hplot.NewH1D(hist)
		h.FillColor = nil
		h.LineStyle.Color = hfplot.LineColor(i)
		if i == 0 {
			h.Infos.Style = hplot.HInfoSummary
		}

		p.Add(h)
		p.Legend.Add(accum.Title(hist), h)
	}

	p.Save(6*vg.Inch, 4*vg.Inch, *output)

	if *column == "" {
		return
	}

	nt := out.Ntuple(dplus.NtupleSignal)
	if nt == nil {
		log.Fatalf("no ntuple %q in %s", dplus.NtupleSignal, flag.Arg(0))
	}
	vs, err := nt.Column(*column)
	if err != nil {
		log.Fatal(err)
	}

	lo, hi := valueRange(vs)
	if len(xRange.Array) == 2 {
		lo, hi = xRange.Array[0], xRange.Array[1]
	}
	if hi <= lo {
		hi = lo + 1
	}

	hist := hbook.NewH1D(*nBins, lo, hi)
	for _, v := range vs {
		hist.Fill(v, 1)
	}

	p, _ = plot.New()
	p.Title.Text = *title
	p.X.Label.Text = *column
	p.X.Tick.Marker = hfplot.PreciseTicks{NSuggestedTicks: 5}
	p.Y.Tick.Marker = hfplot.PreciseTicks{NSuggestedTicks: 5}

	h := hplot.NewH1D(hist)
	h.Infos.Style = hplot.HInfoSummary
	p.Add(h)

	p.Save(6*vg.Inch, 4*vg.Inch, columnOutput(*output, *column))
}

// columnOutput names the column plot after the mass plot, in the same
// directory.
func columnOutput(output, column string) string {
	return filepath.Join(filepath.Dir(output), column+"-"+filepath.Base(output))
}

func valueRange(vs []float64) (float64, float64) {
	lo, hi := math.Inf(+1), math.Inf(-1)
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if lo > hi {
		return 0, 1
	}
	// include the maximum in the last bin
	return lo, hi + 1e-9*math.Max(1, math.Abs(hi))
}
