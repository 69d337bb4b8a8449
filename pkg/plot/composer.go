package plot

import (
	"fmt"

	"github.com/go-logr/logr"

	"github.com/OpenTraceLab/OpenTracePlot/pkg/sample"
)

// Margin added above and below the value range of every subplot.
const yPadding = 0.2

// SubplotSpec is one queued chart.
type SubplotSpec struct {
	Series sample.Series
	Title  string
	XLabel string
	YLabel string
	MaxY   float64
}

// GlobalBounds is the running extent of every added series. MaxX is shared
// by all subplots so their x axes line up.
type GlobalBounds struct {
	MaxX float64
	MaxY float64
}

// Option configures a Composer.
type Option func(*Composer)

// WithLogger sets the logger used for skipped plots and interaction traces.
func WithLogger(l logr.Logger) Option {
	return func(c *Composer) {
		c.log = l
	}
}

// WithLayout overrides DefaultLayout.
func WithLayout(l Layout) Option {
	return func(c *Composer) {
		c.layout = l
	}
}

// WithTriggers selects the pointer interactions that toggle annotations.
// The default is TriggerPick.
func WithTriggers(t Trigger) Option {
	return func(c *Composer) {
		c.triggers = t
	}
}

// Composer collects step charts and renders them as vertically stacked
// subplots sharing one x range.
type Composer struct {
	log      logr.Logger
	layout   Layout
	triggers Trigger

	subplots []SubplotSpec
	bounds   GlobalBounds
}

// New returns an empty Composer.
func New(opts ...Option) *Composer {
	c := &Composer{
		log:      logr.Discard(),
		layout:   DefaultLayout,
		triggers: TriggerPick,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Logger returns the logger configured with WithLogger.
func (c *Composer) Logger() logr.Logger {
	return c.log
}

// AddPlot discretizes samples and queues them as a new subplot. Nil or
// empty input is ignored.
func (c *Composer) AddPlot(samples []sample.Sample, title, xLabel, yLabel string) {
	series, ok := sample.Discretize(samples)
	if !ok {
		return
	}
	c.subplots = append(c.subplots, SubplotSpec{
		Series: series,
		Title:  title,
		XLabel: xLabel,
		YLabel: yLabel,
		MaxY:   series.MaxY,
	})
	if last := series.LastX(); last > c.bounds.MaxX {
		c.bounds.MaxX = last
	}
	c.bounds.MaxY = max(c.bounds.MaxY, series.MaxY)
	c.log.V(1).Info("plot added", "title", title, "samples", len(samples), "points", series.Len())
}

// AddResult adds the samples of a found result. A NotFound result is
// logged and skipped; the return value reports whether a subplot was queued.
func (c *Composer) AddResult(res sample.Result, title, xLabel, yLabel string) bool {
	if !res.Found() {
		c.log.Info("cannot add plot", "title", title, "selector", res.Selector, "reason", res.Reason)
		return false
	}
	if len(res.Samples()) == 0 {
		return false
	}
	c.AddPlot(res.Samples(), title, xLabel, yLabel)
	return true
}

// Subplots returns the queued subplots in insertion order.
func (c *Composer) Subplots() []SubplotSpec {
	out := make([]SubplotSpec, len(c.subplots))
	copy(out, c.subplots)
	return out
}

// Bounds returns the current global bounds.
func (c *Composer) Bounds() GlobalBounds {
	return c.bounds
}

// Render draws every queued subplot onto surface, one row each, and returns
// the session holding the marker/annotation bindings.
func (c *Composer) Render(surface Surface) *Session {
	s := &Session{surface: surface, log: c.log}
	rows := len(c.subplots)
	for i, sp := range c.subplots {
		ax := surface.Subplot(rows, 1, i)
		xs, ys, _ := sp.Series.Columns()
		ax.Line(xs, ys)
		for _, p := range sp.Series.Points {
			if p.Synthetic {
				continue
			}
			m := ax.Marker(p.X, p.Y)
			a := ax.Annotate(m, p.X, p.Y, p.Label)
			a.SetVisible(false)
			s.bindings = append(s.bindings, Binding{Marker: m, Annotation: a})
		}
		ax.SetTitle(sp.Title)
		ax.SetLabels(sp.XLabel, sp.YLabel)
		ax.SetGrid(true)
		ax.SetBounds(Bounds{
			MinX: 0,
			MaxX: c.bounds.MaxX,
			MinY: -yPadding,
			MaxY: sp.MaxY + yPadding,
		})
	}
	surface.SetLayout(c.layout)
	surface.Subscribe(c.triggers)
	c.log.V(1).Info("rendered", "subplots", rows, "annotations", len(s.bindings), "triggers", c.triggers.String())
	return s
}

// Show renders onto surface and blocks until the view is closed.
func (c *Composer) Show(surface Surface) error {
	s := c.Render(surface)
	if err := surface.Show(s); err != nil {
		return fmt.Errorf("show plots: %w", err)
	}
	return nil
}
