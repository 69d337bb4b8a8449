package gioplot

import "image/color"

// Palette holds the colors used to draw a figure.
type Palette struct {
	Background color.NRGBA
	Frame      color.NRGBA
	Grid       color.NRGBA
	Line       color.NRGBA
	Marker     color.NRGBA
	Text       color.NRGBA
	BoxFill    color.NRGBA
	BoxEdge    color.NRGBA
}

// DefaultPalette draws blue step lines with red point markers on white.
var DefaultPalette = Palette{
	Background: color.NRGBA{R: 255, G: 255, B: 255, A: 255},
	Frame:      color.NRGBA{R: 34, G: 37, B: 49, A: 255},
	Grid:       color.NRGBA{R: 176, G: 176, B: 176, A: 110},
	Line:       color.NRGBA{R: 31, G: 119, B: 180, A: 255},
	Marker:     color.NRGBA{R: 255, G: 0, B: 0, A: 255},
	Text:       color.NRGBA{R: 34, G: 37, B: 49, A: 255},
	BoxFill:    color.NRGBA{R: 255, G: 255, B: 255, A: 230}, // alpha 0.9
	BoxEdge:    color.NRGBA{R: 128, G: 128, B: 128, A: 255},
}

// DarkPalette matches a dark window theme.
var DarkPalette = Palette{
	Background: color.NRGBA{R: 18, G: 20, B: 26, A: 255},
	Frame:      color.NRGBA{R: 150, G: 156, B: 170, A: 255},
	Grid:       color.NRGBA{R: 90, G: 96, B: 110, A: 140},
	Line:       color.NRGBA{R: 100, G: 170, B: 240, A: 255},
	Marker:     color.NRGBA{R: 255, G: 90, B: 90, A: 255},
	Text:       color.NRGBA{R: 233, G: 236, B: 245, A: 255},
	BoxFill:    color.NRGBA{R: 34, G: 40, B: 50, A: 230},
	BoxEdge:    color.NRGBA{R: 150, G: 156, B: 170, A: 255},
}
