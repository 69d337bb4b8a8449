package plot

import "math"

type fakeSurface struct {
	grid     [][3]int
	axes     []*fakeAxes
	layout   Layout
	triggers Trigger
	redraws  int
	events   []PointerEvent
}

func (f *fakeSurface) Subplot(rows, cols, index int) Axes {
	f.grid = append(f.grid, [3]int{rows, cols, index})
	ax := &fakeAxes{}
	f.axes = append(f.axes, ax)
	return ax
}

func (f *fakeSurface) SetLayout(l Layout) { f.layout = l }
func (f *fakeSurface) Subscribe(t Trigger) { f.triggers = t }
func (f *fakeSurface) Redraw() { f.redraws++ }

func (f *fakeSurface) Show(d Dispatcher) error {
	for _, ev := range f.events {
		d.Dispatch(ev)
	}
	return nil
}

type fakeAxes struct {
	xs, ys      []float64
	markers     []*fakeMarker
	annotations []*fakeAnnotation
	title       string
	xLabel      string
	yLabel      string
	grid        bool
	bounds      Bounds
}

func (a *fakeAxes) Line(xs, ys []float64) {
	a.xs, a.ys = xs, ys
}

// Markers sit at their data coordinates, so data and pointer space coincide.
func (a *fakeAxes) Marker(x, y float64) Marker {
	m := &fakeMarker{x: x, y: y}
	a.markers = append(a.markers, m)
	return m
}

func (a *fakeAxes) Annotate(m Marker, x, y float64, label string) Annotation {
	an := &fakeAnnotation{label: label, visible: true}
	a.annotations = append(a.annotations, an)
	return an
}

func (a *fakeAxes) SetTitle(title string) { a.title = title }
func (a *fakeAxes) SetLabels(x, y string) { a.xLabel, a.yLabel = x, y }
func (a *fakeAxes) SetGrid(on bool) { a.grid = on }
func (a *fakeAxes) SetBounds(b Bounds) { a.bounds = b }

type fakeMarker struct {
	x, y float64
}

func (m *fakeMarker) Contains(loc Location) bool {
	return math.Hypot(float64(loc.X)-m.x, float64(loc.Y)-m.y) <= 0.5
}

type fakeAnnotation struct {
	label   string
	visible bool
	toggles int
}

func (a *fakeAnnotation) Visible() bool { return a.visible }

func (a *fakeAnnotation) SetVisible(v bool) {
	if v != a.visible {
		a.toggles++
	}
	a.visible = v
}
