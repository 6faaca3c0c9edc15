package vertexing

import (
	"fmt"
	"io"
	"math"
	"text/tabwriter"
)

// DplusCuts is the D+ → K π π selection.
type DplusCuts struct {
	MassWindow     float64 `toml:"mass_window" yaml:"mass_window"`
	PtKaonMin      float64 `toml:"pt_kaon_min" yaml:"pt_kaon_min"`
	PtPionMin      float64 `toml:"pt_pion_min" yaml:"pt_pion_min"`
	SigmaVertMax   float64 `toml:"sigma_vert_max" yaml:"sigma_vert_max"`
	DecayLengthMin float64 `toml:"decay_length_min" yaml:"decay_length_min"`
	PtMaxProngMin  float64 `toml:"pt_max_prong_min" yaml:"pt_max_prong_min"`
	CosPointingMin float64 `toml:"cos_pointing_min" yaml:"cos_pointing_min"`
}

func DefaultDplusCuts() DplusCuts {
	return DplusCuts{
		MassWindow:     0.2,
		PtKaonMin:      0.4,
		PtPionMin:      0.4,
		SigmaVertMax:   0.06,
		DecayLengthMin: 0.02,
		PtMaxProngMin:  0,
		CosPointingMin: 0.85,
	}
}

func (c DplusCuts) validate() error {
	switch {
	case c.MassWindow <= 0:
		return fmt.Errorf("vertexing: invalid D+ mass window %v", c.MassWindow)
	case c.SigmaVertMax < 0:
		return fmt.Errorf("vertexing: invalid D+ vertex dispersion cut %v", c.SigmaVertMax)
	case c.CosPointingMin < -1 || c.CosPointingMin > 1:
		return fmt.Errorf("vertexing: invalid D+ pointing angle cut %v", c.CosPointingMin)
	}
	return nil
}

func (c DplusCuts) print(w io.Writer) {
	tw := tabwriter.NewWriter(w, 0, 8, 1, ' ', 0)
	fmt.Fprintf(tw, "  inv. mass window [GeV]\t%g\n", c.MassWindow)
	fmt.Fprintf(tw, "  pT K min [GeV/c]\t%g\n", c.PtKaonMin)
	fmt.Fprintf(tw, "  pT pi min [GeV/c]\t%g\n", c.PtPionMin)
	fmt.Fprintf(tw, "  sigma vertex max [cm]\t%g\n", c.SigmaVertMax)
	fmt.Fprintf(tw, "  decay length min [cm]\t%g\n", c.DecayLengthMin)
	fmt.Fprintf(tw, "  highest prong pT min [GeV/c]\t%g\n", c.PtMaxProngMin)
	fmt.Fprintf(tw, "  cos(pointing angle) min\t%g\n", c.CosPointingMin)
	tw.Flush()
}

// SelectDplus reports whether the candidate passes the D+ cuts. Decay
// length and pointing angle are measured with respect to the attached
// primary vertex. Candidates with non-finite kinematics are rejected.
func (d *Decay3Prong) SelectDplus(cuts DplusCuts) bool {
	// K- pi+ pi+ or K+ pi- pi-
	q0, q1, q2 := d.Prongs[0].Charge, d.Prongs[1].Charge, d.Prongs[2].Charge
	if q0 == 0 || q0 != q2 || q1 != -q0 {
		return false
	}

	var (
		mass   = d.InvMassDplus()
		ptPi   = d.PtProng(0)
		ptK    = d.PtProng(1)
		ptPi2  = d.PtProng(2)
		sigma  = d.SigmaVert()
		declen = d.DecayLength()
		cosp   = d.CosPointingAngle()
	)
	if !finite(mass, ptPi, ptK, ptPi2, sigma, declen, cosp) {
		return false
	}

	if math.Abs(mass-MassDplus) > cuts.MassWindow {
		return false
	}

	if ptK < cuts.PtKaonMin {
		return false
	}
	if ptPi < cuts.PtPionMin || ptPi2 < cuts.PtPionMin {
		return false
	}

	if math.Max(ptPi, math.Max(ptK, ptPi2)) < cuts.PtMaxProngMin {
		return false
	}

	if sigma > cuts.SigmaVertMax {
		return false
	}
	if declen < cuts.DecayLengthMin {
		return false
	}
	if cosp < cuts.CosPointingMin {
		return false
	}

	return true
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
