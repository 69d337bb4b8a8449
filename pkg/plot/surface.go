package plot

import "strings"

// Location is a pointer position in surface pixels.
type Location struct {
	X, Y float32
}

// Bounds is the data range shown by one subplot.
type Bounds struct {
	MinX, MaxX float64
	MinY, MaxY float64
}

// Layout holds the figure margins as fractions of the figure size, plus the
// spacing between subplots as a fraction of the average subplot size.
type Layout struct {
	Top, Bottom float32
	Left, Right float32
	HSpace      float32
	WSpace      float32
}

// DefaultLayout stacks subplots edge to edge with thin outer margins.
var DefaultLayout = Layout{
	Top:    0.96,
	Bottom: 0.03,
	Left:   0.03,
	Right:  0.99,
}

// Trigger is a set of pointer interactions that update annotation visibility.
type Trigger uint8

const (
	// TriggerPick fires on a primary button press.
	TriggerPick Trigger = 1 << iota
	// TriggerMove fires whenever the pointer moves over the surface.
	TriggerMove

	TriggerNone Trigger = 0
	TriggerBoth         = TriggerPick | TriggerMove
)

// Has reports whether every trigger in o is part of t.
func (t Trigger) Has(o Trigger) bool {
	return o != 0 && t&o == o
}

func (t Trigger) String() string {
	if t == TriggerNone {
		return "none"
	}
	var parts []string
	if t.Has(TriggerPick) {
		parts = append(parts, "pick")
	}
	if t.Has(TriggerMove) {
		parts = append(parts, "move")
	}
	return strings.Join(parts, "+")
}

// PointerEvent is a pick or move reported by a surface. Kind holds exactly
// one of TriggerPick or TriggerMove.
type PointerEvent struct {
	Kind     Trigger
	Location Location
}

// Dispatcher receives pointer events from a surface.
type Dispatcher interface {
	Dispatch(ev PointerEvent)
}

// Surface is the rendering and hit-testing backend a Composer draws on.
type Surface interface {
	// Subplot returns the axes for cell index of a rows x cols grid,
	// counted from zero in row-major order.
	Subplot(rows, cols, index int) Axes
	SetLayout(l Layout)
	// Subscribe selects which pointer interactions are delivered to the
	// dispatcher passed to Show.
	Subscribe(t Trigger)
	// Redraw schedules a repaint of the surface.
	Redraw()
	// Show blocks until the interactive view is closed.
	Show(d Dispatcher) error
}

// Axes is one subplot of a Surface.
type Axes interface {
	Line(xs, ys []float64)
	Marker(x, y float64) Marker
	Annotate(m Marker, x, y float64, label string) Annotation
	SetTitle(title string)
	SetLabels(x, y string)
	SetGrid(on bool)
	SetBounds(b Bounds)
}

// Marker is a pickable point glyph.
type Marker interface {
	Contains(loc Location) bool
}

// Annotation is a text box anchored at a marker.
type Annotation interface {
	Visible() bool
	SetVisible(v bool)
}
