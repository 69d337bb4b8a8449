package gioplot

import (
	"image"
	"math"
	"slices"
	"testing"

	"gioui.org/f32"
	"gioui.org/unit"

	"github.com/OpenTraceLab/OpenTracePlot/pkg/plot"
	"github.com/OpenTraceLab/OpenTracePlot/pkg/sample"
)

func TestViewportRoundTrip(t *testing.T) {
	vp := Viewport{
		Bounds: plot.Bounds{MinX: 0, MaxX: 100, MinY: -0.2, MaxY: 1.2},
		Rect:   image.Rect(10, 20, 210, 160),
	}

	p := vp.DataToScreen(0, -0.2)
	if p != f32.Pt(10, 160) {
		t.Errorf("Expected bottom-left corner at (10,160), got %v", p)
	}
	p = vp.DataToScreen(100, 1.2)
	if p != f32.Pt(210, 20) {
		t.Errorf("Expected top-right corner at (210,20), got %v", p)
	}

	x, y := vp.ScreenToData(vp.DataToScreen(42, 0.5))
	if math.Abs(x-42) > 1e-4 || math.Abs(y-0.5) > 1e-4 {
		t.Errorf("Round trip drifted to (%v, %v)", x, y)
	}
	if !vp.Contains(f32.Pt(10, 20)) || vp.Contains(f32.Pt(9, 20)) {
		t.Error("Contains must include the edges and nothing outside")
	}
}

func TestViewportInvalid(t *testing.T) {
	for _, vp := range []Viewport{
		{Bounds: plot.Bounds{MaxX: 0, MaxY: 1}, Rect: image.Rect(0, 0, 10, 10)},
		{Bounds: plot.Bounds{MaxX: 1, MaxY: 1}},
	} {
		if vp.Valid() {
			t.Errorf("Expected %+v to be invalid", vp)
		}
		// must not divide by zero
		vp.DataToScreen(1, 1)
		vp.ScreenToData(f32.Pt(1, 1))
	}
}

func TestCellRect(t *testing.T) {
	size := image.Pt(1000, 1000)

	r := CellRect(size, plot.DefaultLayout, 1, 1, 0)
	if r != image.Rect(30, 40, 990, 970) {
		t.Errorf("Unexpected single cell %v", r)
	}

	var cells []image.Rectangle
	for i := 0; i < 3; i++ {
		cells = append(cells, CellRect(size, plot.DefaultLayout, 3, 1, i))
	}
	if cells[0].Min.Y != 40 || cells[2].Max.Y != 970 {
		t.Errorf("Cells must span the margins, got %v", cells)
	}
	for i := 1; i < 3; i++ {
		if cells[i].Min.Y != cells[i-1].Max.Y {
			t.Errorf("Zero hspace cells must touch: %v then %v", cells[i-1], cells[i])
		}
		if cells[i].Dx() != cells[0].Dx() {
			t.Errorf("Cells must share the x extent: %v vs %v", cells[i], cells[0])
		}
	}

	spaced := plot.Layout{Top: 1, Bottom: 0, Left: 0, Right: 1, HSpace: 1}
	tall := image.Pt(1000, 900)
	a, b := CellRect(tall, spaced, 2, 1, 0), CellRect(tall, spaced, 2, 1, 1)
	if b.Min.Y-a.Max.Y != a.Dy() {
		t.Errorf("hspace 1 must leave a gap of one cell height, got %v and %v", a, b)
	}

	if !CellRect(size, plot.DefaultLayout, 2, 1, 2).Empty() {
		t.Error("Out of range index must yield an empty rectangle")
	}
	if !CellRect(size, plot.Layout{Top: 0.1, Bottom: 0.9, Right: 1}, 1, 1, 0).Empty() {
		t.Error("Inverted margins must yield an empty rectangle")
	}
}

func TestTicks(t *testing.T) {
	for _, tc := range []struct {
		min, max float64
		n        int
		want     []float64
	}{
		{0, 25, 5, []float64{0, 5, 10, 15, 20, 25}},
		{-0.2, 1.2, 3, []float64{0, 0.5, 1}},
		{0, 1000, 4, []float64{0, 500, 1000}},
		{3, 3, 4, nil},
		{0, 1, 0, nil},
	} {
		got := Ticks(tc.min, tc.max, tc.n)
		if !slices.Equal(got, tc.want) {
			t.Errorf("Ticks(%v, %v, %d) = %v, want %v", tc.min, tc.max, tc.n, got, tc.want)
		}
	}
}

type testSurface struct {
	*Figure
	redraws int
}

func (s *testSurface) Redraw() { s.redraws++ }
func (s *testSurface) Show(d plot.Dispatcher) error { return nil }

func renderFigure(t *testing.T, opts Options) (*testSurface, *plot.Session) {
	t.Helper()
	c := plot.New(plot.WithLayout(plot.Layout{Top: 1, Bottom: 0, Left: 0, Right: 1}))
	c.AddPlot([]sample.Sample{{X: 0, Y: 0, Label: "'U'"}, {X: 50, Y: 1, Label: "'S'"}, {X: 100, Y: 0, Label: "'x'"}}, "states", "", "")
	c.AddPlot([]sample.Sample{{X: 50, Y: 1, Label: "'1'"}}, "bytes", "", "")

	surface := &testSurface{Figure: NewFigure(opts)}
	s := c.Render(surface)
	surface.Resize(image.Pt(100, 200), unit.Metric{PxPerDp: 1})
	return surface, s
}

func TestFigureSubplotsFromComposer(t *testing.T) {
	surface, s := renderFigure(t, Options{})

	axes := surface.Axes()
	if len(axes) != 2 {
		t.Fatalf("Expected 2 axes, got %d", len(axes))
	}
	if axes[0].Title() != "states" || axes[1].Title() != "bytes" {
		t.Errorf("Unexpected titles %q, %q", axes[0].Title(), axes[1].Title())
	}
	if len(axes[0].Markers()) != 3 || len(axes[0].Annotations()) != 3 {
		t.Errorf("Expected 3 markers and annotations, got %d and %d", len(axes[0].Markers()), len(axes[0].Annotations()))
	}
	if axes[0].Viewport().Rect != image.Rect(0, 0, 100, 100) || axes[1].Viewport().Rect != image.Rect(0, 100, 100, 200) {
		t.Errorf("Unexpected cells %v, %v", axes[0].Viewport().Rect, axes[1].Viewport().Rect)
	}
	if s.Visible() != 0 {
		t.Errorf("Expected hidden annotations, got %d visible", s.Visible())
	}
	if surface.Triggers() != plot.TriggerPick {
		t.Errorf("Expected pick trigger, got %v", surface.Triggers())
	}
}

func TestMarkerContainsPickRadius(t *testing.T) {
	surface, _ := renderFigure(t, Options{})
	m := surface.Axes()[0].Markers()[1]

	c := m.Screen()
	if c.X != 50 {
		t.Errorf("Expected marker at x=50, got %v", c)
	}
	if !m.Contains(plot.Location{X: c.X, Y: c.Y}) {
		t.Error("Marker must contain its center")
	}
	if !m.Contains(plot.Location{X: c.X + 3, Y: c.Y + 3.9}) {
		t.Error("Marker must contain points just inside 5dp")
	}
	if m.Contains(plot.Location{X: c.X + 4, Y: c.Y + 4}) {
		t.Error("Marker must not contain points beyond 5dp")
	}

	surface.Resize(image.Pt(100, 200), unit.Metric{PxPerDp: 2})
	c = m.Screen()
	if !m.Contains(plot.Location{X: c.X + 8, Y: c.Y}) {
		t.Error("Pick radius must scale with the display density")
	}
}

func TestMarkerContainsCustomRadius(t *testing.T) {
	surface, _ := renderFigure(t, Options{PickRadius: 10})
	m := surface.Axes()[0].Markers()[0]
	c := m.Screen()
	if !m.Contains(plot.Location{X: c.X + 9, Y: c.Y}) {
		t.Error("Expected custom pick radius to be used")
	}
}

func TestMarkerBeforeLayout(t *testing.T) {
	fig := NewFigure(Options{})
	ax := fig.Subplot(1, 1, 0)
	ax.SetBounds(plot.Bounds{MaxX: 10, MaxY: 1})
	m := ax.Marker(0, 0)
	if m.Contains(plot.Location{}) {
		t.Error("Markers must not match before the figure has a size")
	}
}

func TestSessionWithFigure(t *testing.T) {
	surface, s := renderFigure(t, Options{})
	m := surface.Axes()[0].Markers()[1]
	c := m.Screen()

	if !plot.HandlePick(s, plot.PointerEvent{Kind: plot.TriggerPick, Location: plot.Location{X: c.X, Y: c.Y}}) {
		t.Fatal("Expected pick on marker to redraw")
	}
	visible := surface.Axes()[0].Annotations()[1]
	if !visible.Visible() || visible.Label != "'S'" {
		t.Errorf("Expected the 'S' annotation to be visible, got %+v", visible)
	}
	if surface.redraws != 1 {
		t.Errorf("Expected one redraw, got %d", surface.redraws)
	}
	if plot.HandlePick(s, plot.PointerEvent{Kind: plot.TriggerPick, Location: plot.Location{X: c.X, Y: c.Y}}) {
		t.Error("Repeated pick must not redraw")
	}
}

func TestSubplotGridChange(t *testing.T) {
	fig := NewFigure(Options{})
	first := fig.Subplot(2, 1, 0)
	if fig.Subplot(2, 1, 0) != first {
		t.Error("Same cell must return the same axes")
	}
	fig.Subplot(3, 1, 2)
	if len(fig.Axes()) != 1 {
		t.Errorf("Changing the grid must drop old axes, got %d", len(fig.Axes()))
	}
	if fig.Subplot(3, 1, 5) == nil {
		t.Error("Out of range cells must still return axes")
	}
	if len(fig.Axes()) != 1 {
		t.Error("Out of range axes must not be drawn")
	}
}

func TestFigureReset(t *testing.T) {
	surface, _ := renderFigure(t, Options{})
	surface.Reset()
	if len(surface.Axes()) != 0 {
		t.Errorf("Expected no axes after reset, got %d", len(surface.Axes()))
	}
	if surface.Subplot(2, 1, 0) == nil || len(surface.Axes()) != 1 {
		t.Error("Expected a fresh grid after reset")
	}
}

func TestSingleSampleAtOrigin(t *testing.T) {
	c := plot.New(plot.WithLayout(plot.Layout{Top: 1, Bottom: 0, Left: 0, Right: 1}))
	c.AddPlot([]sample.Sample{{X: 0, Y: 1, Label: "'1'"}}, "lone", "", "")
	surface := &testSurface{Figure: NewFigure(Options{})}
	c.Render(surface)
	surface.Resize(image.Pt(100, 100), unit.Metric{PxPerDp: 1})

	if c.Bounds().MaxX != 0 {
		t.Errorf("Global bounds must stay at max x 0, got %v", c.Bounds().MaxX)
	}
	ax := surface.Axes()[0]
	if ax.bounds.MinX != 0 || ax.bounds.MaxX != 0 {
		t.Errorf("Axes must keep the requested x range, got %+v", ax.bounds)
	}
	vp := ax.Viewport()
	if !vp.Valid() {
		t.Fatalf("Expected widened viewport to be valid, got %+v", vp.Bounds)
	}
	if vp.Bounds.MinX >= 0 || vp.Bounds.MaxX <= 0 {
		t.Errorf("Expected x range around 0, got %+v", vp.Bounds)
	}

	m := ax.Markers()[0]
	center := m.Screen()
	if center.X != 50 {
		t.Errorf("Expected lone marker centered at x=50, got %v", center)
	}
	if !m.Contains(plot.Location{X: center.X, Y: center.Y}) {
		t.Error("Lone marker must be pickable")
	}
}

func TestNonsingular(t *testing.T) {
	b := nonsingular(plot.Bounds{MinX: 10, MaxX: 10, MinY: -0.2, MaxY: 1.2})
	if b.MinX >= 10 || b.MaxX <= 10 || b.MaxX-10 != 10-b.MinX {
		t.Errorf("Expected range centered on 10, got %+v", b)
	}
	if b.MinY != -0.2 || b.MaxY != 1.2 {
		t.Errorf("Non-empty y range must be kept, got %+v", b)
	}
	if got := nonsingular(plot.Bounds{MaxX: 5, MaxY: 1}); got != (plot.Bounds{MaxX: 5, MaxY: 1}) {
		t.Errorf("Non-empty ranges must be kept, got %+v", got)
	}
}
