// Package hfevent defines what a charm analysis sees of an event: the
// reconstructed 3-prong candidates, the primary vertex and the
// generator-level record.
package hfevent

import "github.com/decibelcooper/hfplot/vertexing"

// Branch names. They are only used where events cross an I/O boundary and
// in diagnostics.
const (
	Charm3ProngBranch   = "Charm3Prong"
	PrimaryVertexBranch = "PrimaryVertex"
	MCParticlesBranch   = "MCParticles"
	MCHeaderBranch      = "MCHeader"
)

// Candidate is a reconstructed 3-prong decay as used by the D+ analysis.
// Candidates are owned by the event.
type Candidate interface {
	OwnPrimaryVtx() *vertexing.Vertex
	SetOwnPrimaryVtx(v *vertexing.Vertex)
	UnsetOwnPrimaryVtx()

	SelectDplus(cuts vertexing.DplusCuts) bool
	MatchToMC(pdgabs int, mc vertexing.MCParticles) int

	Px() float64
	Py() float64
	Pz() float64
	Pt() float64
	PtProng(i int) float64
	InvMassDplus() float64
	CosPointingAngle() float64
	DecayLength() float64
	Xv() float64
	SigmaVert() float64
}

var _ Candidate = (*vertexing.Decay3Prong)(nil)

// MCHeader is the generator-level event header.
type MCHeader struct {
	Event int64

	// generated primary vertex
	VtxX, VtxY, VtxZ float64
}

// Event gives typed access to the branches of one event. The boolean
// results report whether the branch exists in the event at all.
type Event interface {
	Candidates3Prong() ([]Candidate, bool)
	PrimaryVertex() *vertexing.Vertex
	MCParticles() (vertexing.MCParticles, bool)
	MCHeader() (*MCHeader, bool)
}
