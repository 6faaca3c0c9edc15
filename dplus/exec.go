package dplus

import (
	"github.com/decibelcooper/hfplot/hfevent"
	"github.com/decibelcooper/hfplot/vertexing"
)

type stats struct {
	events     int64
	skipped    int64
	candidates int64
	selected   int64
}

// Exec analyses one event: every 3-prong candidate passing the D+ cuts is
// filled into the overall mass histogram and, depending on whether it
// matches a generated D+, into the signal or the background histogram and
// tuple.
//
// Events without candidates, MC particles or MC header are skipped.
func (t *Task) Exec(evt hfevent.Event) {
	t.stats.events++

	cands, ok := evt.Candidates3Prong()
	if !ok {
		t.skip(hfevent.Charm3ProngBranch)
		return
	}

	vtx1 := evt.PrimaryVertex()

	mc, ok := evt.MCParticles()
	if !ok {
		t.skip(hfevent.MCParticlesBranch)
		return
	}

	if _, ok := evt.MCHeader(); !ok {
		t.skip(hfevent.MCHeaderBranch)
		return
	}

	if t.Debug > 0 {
		t.msg.Printf("event %d: number of D+->Kpipi: %d", t.ievt, len(cands))
	}

	cuts := t.vhf.DplusCuts()
	for _, d := range cands {
		t.stats.candidates++
		t.process(d, vtx1, mc, cuts)
	}
}

func (t *Task) skip(branch string) {
	t.stats.skipped++
	t.msg.Printf("Exec: event %d: %s branch not found!", t.ievt, branch)
}

func (t *Task) process(d hfevent.Candidate, vtx1 *vertexing.Vertex, mc vertexing.MCParticles, cuts vertexing.DplusCuts) {
	defer attachPrimaryVtx(d, vtx1)()

	if !d.SelectDplus(cuts) {
		return
	}
	t.stats.selected++

	lab := d.MatchToMC(vertexing.PdgDplus, mc)
	if part, ok := mc.At(lab); ok && abs(part.PdgCode) == vertexing.PdgDplus {
		t.fillSignal(d, part)
		return
	}
	t.fillBackground(d)
}

// attachPrimaryVtx makes vtx the primary vertex of d if d has none yet.
// The returned function undoes the attachment.
func attachPrimaryVtx(d hfevent.Candidate, vtx *vertexing.Vertex) (detach func()) {
	if vtx == nil || d.OwnPrimaryVtx() != nil {
		return func() {}
	}
	d.SetOwnPrimaryVtx(vtx)
	return d.UnsetOwnPrimaryVtx
}

func (t *Task) fillSignal(d hfevent.Candidate, part *vertexing.MCParticle) {
	mass := d.InvMassDplus()
	t.hSignal.Fill(mass, 1)
	t.hMass.Fill(mass, 1)

	err := t.ntSignal.Fill(
		vertexing.PdgDplus,
		part.Px()-d.Px(), part.Py()-d.Py(), part.Pz()-d.Pz(),
		d.PtProng(0), d.PtProng(2), d.PtProng(1),
		d.Pt(), part.Pt(),
		d.CosPointingAngle(), d.DecayLength(),
		part.Xv, d.Xv(),
		mass, d.SigmaVert(),
	)
	if err != nil {
		t.msg.Printf("Exec: event %d: %+v", t.ievt, err)
	}
}

func (t *Task) fillBackground(d hfevent.Candidate) {
	mass := d.InvMassDplus()
	t.hBackground.Fill(mass, 1)
	t.hMass.Fill(mass, 1)

	err := t.ntBackg.Fill(
		d.PtProng(0), d.PtProng(2), d.PtProng(1),
		d.Pt(),
		d.CosPointingAngle(), d.DecayLength(),
		d.Xv(),
		mass, d.SigmaVert(),
	)
	if err != nil {
		t.msg.Printf("Exec: event %d: %+v", t.ievt, err)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
