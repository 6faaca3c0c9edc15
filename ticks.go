// Package hfplot holds the plotting helpers shared by the heavy-flavour
// analysis commands.
package hfplot

import (
	"math"
	"strconv"

	"gonum.org/v1/plot"
)

// PreciseTicks places about NSuggestedTicks labelled ticks on round values
// and unlabelled ticks in between. Labels are rounded to the precision of
// the tick spacing, so narrow ranges such as a mass window keep readable
// labels.
type PreciseTicks struct {
	NSuggestedTicks int
}

func (t PreciseTicks) Ticks(min, max float64) []plot.Tick {
	if t.NSuggestedTicks < 2 {
		t.NSuggestedTicks = 4
	}

	if max <= min {
		panic("illegal range")
	}

	mult, delta := majorSpacing(min, max, t.NSuggestedTicks)
	ticks := majorTicks(min, max, delta)
	return append(ticks, minorTicks(min, max, minorSpacing(mult, delta), ticks)...)
}

// majorSpacing returns the spacing of the labelled ticks as a multiple of a
// power of ten.
func majorSpacing(min, max float64, n int) (int, float64) {
	tens := math.Pow10(int(math.Floor(math.Log10(max - min))))
	for (max-min)/tens < float64(n)-1 {
		tens /= 10
	}

	mult := int((max - min) / tens / float64(n-1))
	switch mult {
	case 7:
		mult = 6
	case 9:
		mult = 8
	}
	return mult, float64(mult) * tens
}

func minorSpacing(mult int, delta float64) float64 {
	switch mult {
	case 3, 6:
		return delta / 3
	case 5:
		return delta / 5
	}
	return delta / 2
}

func majorTicks(min, max, delta float64) []plot.Tick {
	var vals []float64
	val := math.Floor(min/delta) * delta
	for ; val <= max; val += delta {
		if val >= min {
			vals = append(vals, val)
		}
	}

	prec := int(math.Ceil(math.Log10(math.Abs(val))) - math.Floor(math.Log10(delta)))
	ticks := make([]plot.Tick, len(vals))
	for i, v := range vals {
		v = round(v, prec)
		ticks[i] = plot.Tick{Value: v, Label: strconv.FormatFloat(v, 'g', -1, 64)}
	}
	return ticks
}

func minorTicks(min, max, delta float64, major []plot.Tick) []plot.Tick {
	var ticks []plot.Tick
	for val := math.Floor(min/delta) * delta; val <= max; val += delta {
		if val < min || isMajor(val, major) {
			continue
		}
		ticks = append(ticks, plot.Tick{Value: val})
	}
	return ticks
}

func isMajor(val float64, major []plot.Tick) bool {
	for _, t := range major {
		if t.Value == val {
			return true
		}
	}
	return false
}

// round rounds x to prec decimal places, half away from zero.
func round(x float64, prec int) float64 {
	if x == 0 {
		// no negative zero
		return 0
	}
	if prec >= 0 && x == math.Trunc(x) {
		return x
	}

	pow := math.Pow10(prec)
	intermed := x * pow
	if math.IsInf(intermed, 0) {
		return x
	}
	if x < 0 {
		x = math.Ceil(intermed - 0.5)
	} else {
		x = math.Floor(intermed + 0.5)
	}
	if x == 0 {
		return 0
	}
	return x / pow
}
