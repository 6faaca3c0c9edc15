// Package dplus extracts the D+ → K- π+ π+ signal from reconstructed 3-prong
// candidates, using the generator-level record to split the selected
// candidates into signal and background.
package dplus

import (
	"log"
	"os"

	"go-hep.org/x/hep/hbook"

	"github.com/decibelcooper/hfplot/accum"
	"github.com/decibelcooper/hfplot/vertexing"
)

// Names of the output objects.
const (
	HistMass         = "hMass"
	HistSignal       = "hSignal"
	HistBackground   = "hBackground"
	NtupleSignal     = "ntDplus"
	NtupleBackground = "ntDplusBkg"
)

var (
	signalColumns = []string{
		"pdg", "Px", "Py", "Pz",
		"Ptpi", "Ptpi2", "PtK", "PtRec", "PtTrue",
		"PointingAngle", "DecLeng", "VxTrue", "VxRec", "InvMass", "sigvert",
	}
	backgroundColumns = []string{
		"Ptpibkg", "Ptpi2bkg", "PtKbkg", "PtRecbkg",
		"PointingAnglebkg", "DLbkg", "VxRecbkg", "InvMassbkg", "sigvertbkg",
	}
)

const (
	massBins = 100
	massMin  = 1.765
	massMax  = 1.965
)

// Task is the D+ analysis. It is driven by an event loop calling Init and
// CreateOutputObjects once, BeginEvent and Exec for every event, and
// Terminate at the end.
type Task struct {
	name    string
	cfgPath string

	// Debug is the verbosity of the task diagnostics.
	Debug int

	msg *log.Logger
	vhf *vertexing.Config

	ievt  int64
	stats stats

	out         *accum.Container
	hMass       *hbook.H1D
	hSignal     *hbook.H1D
	hBackground *hbook.H1D
	ntSignal    *accum.Ntuple
	ntBackg     *accum.Ntuple
}

// New returns a task reading its cuts from cfgPath. An empty cfgPath
// selects the default cuts.
func New(name, cfgPath string) *Task {
	return &Task{
		name:    name,
		cfgPath: cfgPath,
		msg:     log.New(os.Stderr, name+": ", 0),
	}
}

func (t *Task) Name() string { return t.name }

// SetLogger redirects the task diagnostics.
func (t *Task) SetLogger(l *log.Logger) { t.msg = l }

// Init loads the selection cuts.
func (t *Task) Init() error {
	if t.Debug > 1 {
		t.msg.Printf("Init()")
	}

	if t.cfgPath == "" {
		t.vhf = vertexing.DefaultConfig()
	} else {
		cfg, err := vertexing.LoadConfig(t.cfgPath)
		if err != nil {
			return err
		}
		t.vhf = cfg
	}

	t.vhf.PrintStatus(t.msg.Writer())
	return nil
}

// CreateOutputObjects books the histograms and tuples and returns the
// container holding them.
func (t *Task) CreateOutputObjects() *accum.Container {
	if t.Debug > 1 {
		t.msg.Printf("CreateOutputObjects()")
	}

	t.hMass = accum.NewH1D(HistMass, "D^{+} invariant mass; M [GeV]; Entries", massBins, massMin, massMax)
	t.hSignal = accum.NewH1D(HistSignal, "D^{+} invariant mass - MC; M [GeV]; Entries", massBins, massMin, massMax)
	t.hBackground = accum.NewH1D(HistBackground, "Background invariant mass - MC; M [GeV]; Entries", massBins, massMin, massMax)
	t.ntSignal = accum.NewNtuple(NtupleSignal, "D +", signalColumns...)
	t.ntBackg = accum.NewNtuple(NtupleBackground, "D + backg", backgroundColumns...)

	t.out = accum.NewContainer()
	for _, obj := range []accum.Object{t.hMass, t.hSignal, t.hBackground, t.ntSignal, t.ntBackg} {
		t.out.Add(obj)
	}
	return t.out
}

// BeginEvent records the number of the event about to be processed.
func (t *Task) BeginEvent(ievt int64) {
	t.ievt = ievt
}
