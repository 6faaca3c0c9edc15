package vertexing

import "math"

// MCParticle is a generator-level particle. Its label is its index in the
// event's MCParticles.
type MCParticle struct {
	PdgCode int
	Mother  int
	P       [3]float64

	// production vertex
	Xv, Yv, Zv float64
}

func (p *MCParticle) Px() float64 { return p.P[0] }
func (p *MCParticle) Py() float64 { return p.P[1] }
func (p *MCParticle) Pz() float64 { return p.P[2] }

func (p *MCParticle) Pt() float64 {
	return math.Hypot(p.P[0], p.P[1])
}

type MCParticles []MCParticle

// At returns the particle with the given label, or false if the label does
// not point into the collection.
func (mc MCParticles) At(label int) (*MCParticle, bool) {
	if label < 0 || label >= len(mc) {
		return nil, false
	}
	return &mc[label], true
}

// ancestor walks the mother chain starting at label and returns the label
// of the first particle with |pdg| == pdgabs, or -1.
func (mc MCParticles) ancestor(label, pdgabs int) int {
	for steps := 0; steps <= len(mc); steps++ {
		part, ok := mc.At(label)
		if !ok {
			return -1
		}
		if abs(part.PdgCode) == pdgabs {
			return label
		}
		label = part.Mother
	}
	// cycle in the mother chain
	return -1
}

// MatchToMC returns the label of the generator-level particle with
// |pdg| == pdgabs that all prongs descend from, or -1 if there is none.
func (d *Decay3Prong) MatchToMC(pdgabs int, mc MCParticles) int {
	mother := -1
	for i, prong := range d.Prongs {
		part, ok := mc.At(prong.Label)
		if !ok {
			return -1
		}
		lab := mc.ancestor(part.Mother, pdgabs)
		if lab < 0 {
			return -1
		}
		if i > 0 && lab != mother {
			return -1
		}
		mother = lab
	}
	return mother
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
