package dplus

import (
	"github.com/decibelcooper/hfplot/accum"
)

// Summary is the outcome of a run, computed at Terminate.
type Summary struct {
	Entries    int64 // all selected candidates
	Signal     int64
	Background int64
	Purity     float64

	SignalRows     int
	BackgroundRows int
}

// Terminate looks the output objects up by name in out, which may be a
// container read back from disk or merged from several event loops, and
// reports the results. A nil container or missing objects are reported
// and leave the task untouched.
func (t *Task) Terminate(out *accum.Container) {
	if t.Debug > 1 {
		t.msg.Printf("Terminate()")
	}

	if out == nil {
		t.msg.Printf("ERROR: output container not available")
		return
	}

	hMass := out.H1D(HistMass)
	hSignal := out.H1D(HistSignal)
	hBackground := out.H1D(HistBackground)
	ntSignal := out.Ntuple(NtupleSignal)
	ntBackg := out.Ntuple(NtupleBackground)

	missing := false
	for _, obj := range []struct {
		name  string
		found bool
	}{
		{HistMass, hMass != nil},
		{HistSignal, hSignal != nil},
		{HistBackground, hBackground != nil},
		{NtupleSignal, ntSignal != nil},
		{NtupleBackground, ntBackg != nil},
	} {
		if !obj.found {
			t.msg.Printf("ERROR: %s not available in output container %v", obj.name, out.ID())
			missing = true
		}
	}
	if missing {
		return
	}

	t.out = out
	t.hMass, t.hSignal, t.hBackground = hMass, hSignal, hBackground
	t.ntSignal, t.ntBackg = ntSignal, ntBackg

	sum := t.Summary()
	t.msg.Printf("output %v: %d events, %d skipped", out.ID(), t.stats.events, t.stats.skipped)
	t.msg.Printf("selected D+ candidates: %d (signal: %d, background: %d, purity: %.3f)",
		sum.Entries, sum.Signal, sum.Background, sum.Purity,
	)
	t.msg.Printf("tuples: %s=%d rows, %s=%d rows",
		NtupleSignal, sum.SignalRows, NtupleBackground, sum.BackgroundRows,
	)
}

// Summary reports the content of the output objects the task currently
// refers to.
func (t *Task) Summary() Summary {
	var sum Summary
	if t.hMass == nil {
		return sum
	}

	sum.Entries = t.hMass.Entries()
	sum.Signal = t.hSignal.Entries()
	sum.Background = t.hBackground.Entries()
	if n := sum.Signal + sum.Background; n > 0 {
		sum.Purity = float64(sum.Signal) / float64(n)
	}
	sum.SignalRows = t.ntSignal.Entries()
	sum.BackgroundRows = t.ntBackg.Entries()
	return sum
}

// Output returns the container the task currently refers to.
func (t *Task) Output() *accum.Container {
	return t.out
}
