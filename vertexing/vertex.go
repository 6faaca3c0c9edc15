// Package vertexing holds the reconstructed heavy-flavour decay candidates
// used by the charm analyses: vertices, 3-prong decays, their selection
// cuts and their association to generator-level particles.
package vertexing

import "math"

// Particle masses in GeV.
const (
	MassPion  = 0.13957
	MassKaon  = 0.493677
	MassDplus = 1.86966
)

// PdgDplus is the PDG code of the D+ meson.
const PdgDplus = 411

type Vertex struct {
	X, Y, Z float64

	// Dispersion is the spread of the tracks around the fitted position.
	Dispersion float64
}

func (v *Vertex) Pos() [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

// DistanceTo returns the distance between two vertices.
func (v *Vertex) DistanceTo(o *Vertex) float64 {
	dx := v.X - o.X
	dy := v.Y - o.Y
	dz := v.Z - o.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}
