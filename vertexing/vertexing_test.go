package vertexing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCandidate() *Decay3Prong {
	d := &Decay3Prong{
		Prongs: [3]Prong{
			{P: [3]float64{0.8, 0.1, 0.5}, Charge: +1, Label: 1},
			{P: [3]float64{0.7, -0.2, 0.4}, Charge: -1, Label: 2},
			{P: [3]float64{0.9, 0.3, 0.6}, Charge: +1, Label: 3},
		},
		Secondary: Vertex{X: 0.1, Z: 0.05, Dispersion: 0.01},
	}
	d.SetOwnPrimaryVtx(&Vertex{})
	return d
}

func TestKinematics(t *testing.T) {
	d := &Decay3Prong{
		Prongs: [3]Prong{
			{P: [3]float64{1, 0, 0}},
			{P: [3]float64{0, 1, 0}},
			{P: [3]float64{0, 0, 1}},
		},
		Secondary: Vertex{X: 0.3, Y: 0.4, Dispersion: 0.02},
	}

	assert.Equal(t, 1.0, d.Px())
	assert.Equal(t, 1.0, d.Py())
	assert.Equal(t, 1.0, d.Pz())
	assert.InDelta(t, math.Sqrt2, d.Pt(), 1e-12)
	assert.InDelta(t, math.Sqrt(3), d.P(), 1e-12)
	assert.InDelta(t, 1.0, d.PtProng(0), 1e-12)
	assert.InDelta(t, 0.0, d.PtProng(2), 1e-12)
	assert.InDelta(t, math.Sqrt(6), d.InvMass([3]float64{}), 1e-12)
	assert.Equal(t, 0.3, d.Xv())
	assert.Equal(t, 0.02, d.SigmaVert())

	// no primary vertex attached
	assert.Equal(t, 0.0, d.DecayLength())
	assert.Equal(t, 0.0, d.CosPointingAngle())

	d.SetOwnPrimaryVtx(&Vertex{})
	assert.InDelta(t, 0.5, d.DecayLength(), 1e-12)
	assert.InDelta(t, 0.7/(0.5*math.Sqrt(3)), d.CosPointingAngle(), 1e-12)

	d.UnsetOwnPrimaryVtx()
	assert.Nil(t, d.OwnPrimaryVtx())
}

func TestInvMassDplusUsesKaonForProng1(t *testing.T) {
	d := newCandidate()
	want := d.InvMass([3]float64{MassPion, MassKaon, MassPion})
	assert.Equal(t, want, d.InvMassDplus())
	assert.NotEqual(t, d.InvMass([3]float64{MassKaon, MassPion, MassPion}), d.InvMassDplus())
}

func TestSelectDplus(t *testing.T) {
	loose := DefaultDplusCuts()
	loose.MassWindow = 10

	require.True(t, newCandidate().SelectDplus(loose))

	for _, tc := range []struct {
		name string
		cut  func(c *DplusCuts)
		cand func(d *Decay3Prong)
	}{
		{name: "mass window", cut: func(c *DplusCuts) { c.MassWindow = 1e-6 }},
		{name: "kaon pt", cut: func(c *DplusCuts) { c.PtKaonMin = 0.75 }},
		{name: "pion pt", cut: func(c *DplusCuts) { c.PtPionMin = 0.85 }},
		{name: "highest prong pt", cut: func(c *DplusCuts) { c.PtMaxProngMin = 1 }},
		{name: "vertex dispersion", cut: func(c *DplusCuts) { c.SigmaVertMax = 0.005 }},
		{name: "decay length", cut: func(c *DplusCuts) { c.DecayLengthMin = 0.2 }},
		{name: "pointing angle", cut: func(c *DplusCuts) { c.CosPointingMin = 0.999 }},
		{name: "charge pattern", cand: func(d *Decay3Prong) { d.Prongs[1].Charge = +1 }},
		{name: "neutral prong", cand: func(d *Decay3Prong) { d.Prongs[0].Charge = 0 }},
		{name: "no primary vertex", cand: func(d *Decay3Prong) { d.UnsetOwnPrimaryVtx() }},
		{name: "NaN momentum", cand: func(d *Decay3Prong) { d.Prongs[2].P[0] = math.NaN() }},
		{name: "infinite momentum", cand: func(d *Decay3Prong) { d.Prongs[1].P[2] = math.Inf(1) }},
		{name: "NaN dispersion", cand: func(d *Decay3Prong) { d.Secondary.Dispersion = math.NaN() }},
		{name: "NaN secondary vertex", cand: func(d *Decay3Prong) { d.Secondary.X = math.NaN() }},
	} {
		t.Run(tc.name, func(t *testing.T) {
			cuts := loose
			if tc.cut != nil {
				tc.cut(&cuts)
			}
			d := newCandidate()
			if tc.cand != nil {
				tc.cand(d)
			}
			assert.False(t, d.SelectDplus(cuts))
		})
	}
}

func TestMatchToMC(t *testing.T) {
	mc := MCParticles{
		{PdgCode: 411, Mother: -1},
		{PdgCode: 211, Mother: 0},
		{PdgCode: -321, Mother: 0},
		{PdgCode: 211, Mother: 0},
		{PdgCode: -411, Mother: -1},
		{PdgCode: -211, Mother: 4},
		{PdgCode: 313, Mother: 0},
		{PdgCode: -321, Mother: 6},
	}

	for _, tc := range []struct {
		name   string
		labels [3]int
		pdg    int
		want   int
	}{
		{name: "direct", labels: [3]int{1, 2, 3}, pdg: 411, want: 0},
		{name: "resonant", labels: [3]int{1, 7, 3}, pdg: 411, want: 0},
		{name: "different mothers", labels: [3]int{1, 2, 5}, pdg: 411, want: -1},
		{name: "unlabelled prong", labels: [3]int{1, -1, 3}, pdg: 411, want: -1},
		{name: "label out of range", labels: [3]int{1, 2, 99}, pdg: 411, want: -1},
		{name: "other species", labels: [3]int{1, 2, 3}, pdg: 421, want: -1},
	} {
		t.Run(tc.name, func(t *testing.T) {
			d := newCandidate()
			for i, lab := range tc.labels {
				d.Prongs[i].Label = lab
			}
			assert.Equal(t, tc.want, d.MatchToMC(tc.pdg, mc))
		})
	}
}

func TestMatchToMCMotherCycle(t *testing.T) {
	mc := MCParticles{
		{PdgCode: 211, Mother: 1},
		{PdgCode: 211, Mother: 0},
	}
	d := newCandidate()
	d.Prongs[0].Label, d.Prongs[1].Label, d.Prongs[2].Label = 0, 1, 0
	assert.Equal(t, -1, d.MatchToMC(411, mc))
}

func TestMCParticlesAt(t *testing.T) {
	mc := MCParticles{{PdgCode: 411, P: [3]float64{3, 4, 1}}}

	p, ok := mc.At(0)
	require.True(t, ok)
	assert.Equal(t, 5.0, p.Pt())

	_, ok = mc.At(-1)
	assert.False(t, ok)
	_, ok = mc.At(1)
	assert.False(t, ok)
}
