package hfplot

import "image/color"

// LineColor returns the colour of the i-th histogram of an overlay.
func LineColor(i int) color.Color {
	switch i {
	case 1:
		return color.RGBA{G: 255, A: 255}
	case 2:
		return color.RGBA{B: 255, A: 255}
	case 3:
		return color.RGBA{R: 255, B: 127, G: 127, A: 255}
	}
	return color.RGBA{A: 255}
}
