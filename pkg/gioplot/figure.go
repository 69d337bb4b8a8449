// Package gioplot draws stacked step charts with Gio and turns pointer input
// into pick and move events for plot sessions.
package gioplot

import (
	"image"

	"gioui.org/font/gofont"
	"gioui.org/io/event"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget/material"

	"github.com/OpenTraceLab/OpenTracePlot/pkg/plot"
)

// DefaultPickRadius is the distance within which a click or hover selects a
// marker.
const DefaultPickRadius = unit.Dp(5)

// Options configures a Figure. Zero fields take defaults.
type Options struct {
	PickRadius   unit.Dp
	LineWidth    unit.Dp
	MarkerRadius unit.Dp
	TextSize     unit.Sp
	Palette      *Palette
}

func (o Options) withDefaults() Options {
	if o.PickRadius <= 0 {
		o.PickRadius = DefaultPickRadius
	}
	if o.LineWidth <= 0 {
		o.LineWidth = 1.5
	}
	if o.MarkerRadius <= 0 {
		o.MarkerRadius = 3
	}
	if o.TextSize <= 0 {
		o.TextSize = 12
	}
	if o.Palette == nil {
		p := DefaultPalette
		o.Palette = &p
	}
	return o
}

// Figure is a grid of subplots drawn with Gio. It provides the drawing and
// subscription half of plot.Surface; the window owning it adds Redraw and Show.
type Figure struct {
	opts   Options
	shaper *text.Shaper

	layout   plot.Layout
	triggers plot.Trigger

	rows, cols int
	axes       []*Axes

	size   image.Point
	metric unit.Metric
}

// NewFigure returns an empty figure using plot.DefaultLayout.
func NewFigure(opts Options) *Figure {
	return &Figure{
		opts:     opts.withDefaults(),
		shaper:   text.NewShaper(text.WithCollection(gofont.Collection())),
		layout:   plot.DefaultLayout,
		triggers: plot.TriggerPick,
	}
}

// Subplot returns the axes of cell index in a rows x cols grid. Changing the
// grid shape discards previously allocated axes.
func (f *Figure) Subplot(rows, cols, index int) plot.Axes {
	if rows != f.rows || cols != f.cols {
		f.rows, f.cols = rows, cols
		f.axes = make([]*Axes, max(rows*cols, 0))
	}
	if index < 0 || index >= len(f.axes) {
		// out of grid: hand out detached axes that are never drawn
		return &Axes{fig: f}
	}
	if f.axes[index] == nil {
		f.axes[index] = &Axes{fig: f}
	}
	f.updateViewports()
	return f.axes[index]
}

// Reset drops every subplot.
func (f *Figure) Reset() {
	f.rows, f.cols = 0, 0
	f.axes = nil
}

// SetLayout sets the figure margins and subplot spacing.
func (f *Figure) SetLayout(l plot.Layout) {
	f.layout = l
	f.updateViewports()
}

// Subscribe selects which pointer interactions Update dispatches.
func (f *Figure) Subscribe(t plot.Trigger) {
	f.triggers = t
}

// SetPalette replaces the drawing colors.
func (f *Figure) SetPalette(p Palette) {
	f.opts.Palette = &p
}

// Triggers returns the subscribed interactions.
func (f *Figure) Triggers() plot.Trigger {
	return f.triggers
}

// Axes returns the allocated subplots in grid order.
func (f *Figure) Axes() []*Axes {
	out := make([]*Axes, 0, len(f.axes))
	for _, a := range f.axes {
		if a != nil {
			out = append(out, a)
		}
	}
	return out
}

// Resize lays the subplots out on a figure of the given pixel size.
func (f *Figure) Resize(size image.Point, metric unit.Metric) {
	f.size = size
	f.metric = metric
	f.updateViewports()
}

func (f *Figure) updateViewports() {
	for i, a := range f.axes {
		if a == nil {
			continue
		}
		a.viewport = Viewport{
			Bounds: nonsingular(a.bounds),
			Rect:   CellRect(f.size, f.layout, f.rows, f.cols, i),
		}
	}
}

func (f *Figure) pickRadiusPx() float32 {
	return f.dp(f.opts.PickRadius)
}

func (f *Figure) dp(v unit.Dp) float32 {
	px := f.metric.PxPerDp
	if px == 0 {
		px = 1
	}
	return float32(v) * px
}

// Update dispatches the pointer events received since the last frame. A
// primary button press becomes a pick, pointer motion a move; interactions
// not subscribed to are dropped.
func (f *Figure) Update(gtx layout.Context, d plot.Dispatcher) {
	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target: f,
			Kinds:  pointer.Press | pointer.Move | pointer.Enter | pointer.Leave,
		})
		if !ok {
			break
		}
		pe, ok := ev.(pointer.Event)
		if !ok {
			continue
		}
		loc := plot.Location{X: pe.Position.X, Y: pe.Position.Y}
		switch pe.Kind {
		case pointer.Press:
			if pe.Buttons == pointer.ButtonPrimary && f.triggers.Has(plot.TriggerPick) {
				d.Dispatch(plot.PointerEvent{Kind: plot.TriggerPick, Location: loc})
			}
		case pointer.Move, pointer.Enter, pointer.Leave:
			if f.triggers.Has(plot.TriggerMove) {
				d.Dispatch(plot.PointerEvent{Kind: plot.TriggerMove, Location: loc})
			}
		}
	}
}

// Layout draws every subplot and its visible annotations, filling the
// available space.
func (f *Figure) Layout(gtx layout.Context, th *material.Theme) layout.Dimensions {
	size := gtx.Constraints.Max
	f.Resize(size, gtx.Metric)

	shaper := f.shaper
	if th != nil && th.Shaper != nil {
		shaper = th.Shaper
	}
	pal := f.opts.Palette

	paint.FillShape(gtx.Ops, pal.Background, clip.Rect{Max: size}.Op())
	for i, a := range f.axes {
		if a == nil {
			continue
		}
		f.drawAxes(gtx, shaper, a, i/max(f.cols, 1) == f.rows-1)
	}
	// Annotations go on top of every subplot
	for _, a := range f.axes {
		if a == nil {
			continue
		}
		for _, an := range a.annotations {
			if an.visible {
				f.drawAnnotation(gtx, shaper, a, an)
			}
		}
	}

	area := clip.Rect{Max: size}.Push(gtx.Ops)
	event.Op(gtx.Ops, f)
	area.Pop()

	return layout.Dimensions{Size: size}
}
