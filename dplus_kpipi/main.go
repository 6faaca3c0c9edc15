package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/pkg/profile"

	"github.com/decibelcooper/hfplot/accum"
	"github.com/decibelcooper/hfplot/dplus"
	"github.com/decibelcooper/hfplot/proioaod"
	"github.com/decibelcooper/hfplot/sched"
)

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: `+os.Args[0]+` [options] <proio-input-files>...

Selects D+ -> K pi pi candidates, matches them to the generated D+ and
writes the mass histograms and the signal/background tuples to the output
directory.

options:
`,
	)
	flag.PrintDefaults()
}

func main() {
	log.SetPrefix("dplus-kpipi: ")
	log.SetFlags(0)

	var (
		config   = flag.String("config", "", "selection cuts file (.toml or .yaml), default cuts if empty")
		output   = flag.String("o", "dplus-out", "output directory")
		nThreads = flag.Int("t", 2, "number of concurrent files to process")
		maxEvts  = flag.Int64("n", 0, "maximum number of events to process (0: all)")
		doCSV    = flag.Bool("csv", false, "also export the tuples as CSV files")
		debug    = flag.Int("debug", 0, "task debug level")
		doProf   = flag.Bool("profile", false, "write a CPU profile")
	)
	flag.Usage = printUsage
	flag.Parse()
	if flag.NArg() < 1 {
		printUsage()
		log.Fatal("Invalid arguments")
	}

	if *doProf {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	}

	task := dplus.New("dplus", *config)
	task.Debug = *debug

	var srcs []sched.Source
	for _, fname := range flag.Args() {
		srcs = append(srcs, proioaod.NewSource(fname))
	}

	mgr := &sched.Manager{
		NThreads:  *nThreads,
		MaxEvents: *maxEvts,
		OutputDir: *output,
		Progress:  1000,
		Log:       log.New(os.Stderr, "dplus-kpipi: ", 0),
	}

	err := mgr.Run(context.Background(), task, srcs...)
	if err != nil {
		log.Fatalf("could not run analysis: %+v", err)
	}

	if *doCSV {
		err = writeCSV(task.Output(), *output)
		if err != nil {
			log.Fatalf("could not export tuples: %+v", err)
		}
	}
}

func writeCSV(out *accum.Container, dir string) error {
	if out == nil {
		return fmt.Errorf("no output container")
	}

	for _, name := range []string{dplus.NtupleSignal, dplus.NtupleBackground} {
		nt := out.Ntuple(name)
		if nt == nil {
			return fmt.Errorf("no ntuple %q in output", name)
		}
		fname := filepath.Join(dir, name+".csv")
		err := nt.WriteCSV(fname)
		if err != nil {
			return err
		}
		log.Printf("wrote %d rows to %s", nt.Entries(), fname)
	}
	return nil
}
