package vertexing

import "math"

// Prong is one daughter track of a decay candidate.
type Prong struct {
	P      [3]float64
	Charge int

	// Label is the index of the generator-level particle that produced the
	// track, or -1 if the track could not be associated.
	Label int
}

func (p Prong) Pt() float64 {
	return math.Hypot(p.P[0], p.P[1])
}

func (p Prong) P2() float64 {
	return p.P[0]*p.P[0] + p.P[1]*p.P[1] + p.P[2]*p.P[2]
}

// Decay3Prong is a reconstructed three-track secondary vertex. For the D+
// hypothesis prong 1 is the kaon and prongs 0 and 2 are the pions.
//
// The primary vertex is a reference to an object owned by the event. It is
// only needed for the quantities measured relative to the primary vertex
// (decay length, pointing angle) and is usually attached for the duration
// of a selection only.
type Decay3Prong struct {
	Prongs    [3]Prong
	Secondary Vertex

	primary *Vertex
}

func (d *Decay3Prong) OwnPrimaryVtx() *Vertex {
	return d.primary
}

func (d *Decay3Prong) SetOwnPrimaryVtx(v *Vertex) {
	d.primary = v
}

func (d *Decay3Prong) UnsetOwnPrimaryVtx() {
	d.primary = nil
}

func (d *Decay3Prong) Px() float64 {
	return d.Prongs[0].P[0] + d.Prongs[1].P[0] + d.Prongs[2].P[0]
}

func (d *Decay3Prong) Py() float64 {
	return d.Prongs[0].P[1] + d.Prongs[1].P[1] + d.Prongs[2].P[1]
}

func (d *Decay3Prong) Pz() float64 {
	return d.Prongs[0].P[2] + d.Prongs[1].P[2] + d.Prongs[2].P[2]
}

func (d *Decay3Prong) Pt() float64 {
	return math.Hypot(d.Px(), d.Py())
}

func (d *Decay3Prong) P() float64 {
	px, py, pz := d.Px(), d.Py(), d.Pz()
	return math.Sqrt(px*px + py*py + pz*pz)
}

// PtProng returns the transverse momentum of prong i.
func (d *Decay3Prong) PtProng(i int) float64 {
	return d.Prongs[i].Pt()
}

// InvMass returns the invariant mass of the candidate with prong i taking
// mass masses[i].
func (d *Decay3Prong) InvMass(masses [3]float64) float64 {
	var e float64
	for i, prong := range d.Prongs {
		e += math.Sqrt(prong.P2() + masses[i]*masses[i])
	}
	p := d.P()
	m2 := e*e - p*p
	if m2 < 0 {
		return 0
	}
	return math.Sqrt(m2)
}

func (d *Decay3Prong) InvMassDplus() float64 {
	return d.InvMass([3]float64{MassPion, MassKaon, MassPion})
}

// DecayLength is the distance between the primary and the secondary
// vertex. It is zero when no primary vertex is attached.
func (d *Decay3Prong) DecayLength() float64 {
	if d.primary == nil {
		return 0
	}
	return d.Secondary.DistanceTo(d.primary)
}

// CosPointingAngle is the cosine of the angle between the candidate
// momentum and its flight line. It is zero when no primary vertex is
// attached or the flight line is degenerate.
func (d *Decay3Prong) CosPointingAngle() float64 {
	if d.primary == nil {
		return 0
	}
	fx := d.Secondary.X - d.primary.X
	fy := d.Secondary.Y - d.primary.Y
	fz := d.Secondary.Z - d.primary.Z
	flight := math.Sqrt(fx*fx + fy*fy + fz*fz)
	p := d.P()
	if flight == 0 || p == 0 {
		return 0
	}
	return (d.Px()*fx + d.Py()*fy + d.Pz()*fz) / (p * flight)
}

func (d *Decay3Prong) Xv() float64 { return d.Secondary.X }
func (d *Decay3Prong) Yv() float64 { return d.Secondary.Y }
func (d *Decay3Prong) Zv() float64 { return d.Secondary.Z }

// SigmaVert is the dispersion of the secondary vertex fit.
func (d *Decay3Prong) SigmaVert() float64 {
	return d.Secondary.Dispersion
}
