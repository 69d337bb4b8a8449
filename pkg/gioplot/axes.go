package gioplot

import (
	"gioui.org/f32"

	"github.com/OpenTraceLab/OpenTracePlot/pkg/plot"
)

// Axes is one subplot of a Figure. It keeps everything drawn into it so the
// figure can repaint on every frame.
type Axes struct {
	fig *Figure

	xs, ys      []float64
	markers     []*Marker
	annotations []*Annotation

	title  string
	xLabel string
	yLabel string
	grid   bool
	bounds plot.Bounds

	viewport Viewport
}

// Line sets the step path of the subplot.
func (a *Axes) Line(xs, ys []float64) {
	a.xs = append([]float64(nil), xs...)
	a.ys = append([]float64(nil), ys...)
}

// Marker adds a pickable point.
func (a *Axes) Marker(x, y float64) plot.Marker {
	m := &Marker{axes: a, X: x, Y: y}
	a.markers = append(a.markers, m)
	return m
}

// Annotate attaches a text box to m. New annotations are visible, like any
// freshly drawn artist.
func (a *Axes) Annotate(m plot.Marker, x, y float64, label string) plot.Annotation {
	an := &Annotation{X: x, Y: y, Label: label, visible: true}
	if mk, ok := m.(*Marker); ok {
		an.marker = mk
	}
	a.annotations = append(a.annotations, an)
	return an
}

func (a *Axes) SetTitle(title string) { a.title = title }

func (a *Axes) SetLabels(x, y string) { a.xLabel, a.yLabel = x, y }

func (a *Axes) SetGrid(on bool) { a.grid = on }

// SetBounds sets the data range. An empty range is widened around its value.
func (a *Axes) SetBounds(b plot.Bounds) {
	a.bounds = b
	a.viewport.Bounds = nonsingular(b)
}

// Viewport returns the data to screen mapping of the last layout.
func (a *Axes) Viewport() Viewport {
	return a.viewport
}

// Title returns the subplot title.
func (a *Axes) Title() string {
	return a.title
}

// Markers returns the markers in insertion order.
func (a *Axes) Markers() []*Marker {
	return a.markers
}

// Annotations returns the annotations in insertion order.
func (a *Axes) Annotations() []*Annotation {
	return a.annotations
}

// Marker is a point glyph hit-tested in screen space.
type Marker struct {
	axes *Axes
	X, Y float64
}

// Screen returns the marker center from the last layout.
func (m *Marker) Screen() f32.Point {
	return m.axes.viewport.DataToScreen(m.X, m.Y)
}

// Contains reports whether loc is within the pick radius of the marker.
// Markers outside the visible data range never match.
func (m *Marker) Contains(loc plot.Location) bool {
	vp := m.axes.viewport
	if !vp.Valid() {
		return false
	}
	c := m.Screen()
	if !vp.Contains(c) {
		return false
	}
	r := m.axes.fig.pickRadiusPx()
	d := f32.Pt(loc.X, loc.Y).Sub(c)
	return d.X*d.X+d.Y*d.Y <= r*r
}

// Annotation is a label box shown next to a marker.
type Annotation struct {
	marker  *Marker
	X, Y    float64
	Label   string
	visible bool
}

func (a *Annotation) Visible() bool { return a.visible }

func (a *Annotation) SetVisible(v bool) { a.visible = v }
