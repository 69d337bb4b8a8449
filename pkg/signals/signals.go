// Package signals adds the common particle charts (wires, interrupt
// facets and memory buffers) from a sample log to a plot composer.
package signals

import (
	"errors"
	"fmt"

	"github.com/OpenTraceLab/OpenTracePlot/pkg/config"
	"github.com/OpenTraceLab/OpenTracePlot/pkg/plot"
	"github.com/OpenTraceLab/OpenTracePlot/pkg/samplelog"
)

// InterruptDomain is the log domain of interrupt samples.
const InterruptDomain = "INT"

// ErrUnknownInterrupt is reported for interrupt names without a vector.
var ErrUnknownInterrupt = errors.New("unknown interrupt")

// InterruptPlot describes one facet (post, invoke, enable) of an interrupt.
type InterruptPlot struct {
	Title     string
	Node      int
	Vectors   map[string]string
	Facet     string
	Interrupt string
	Alias     string
	YLabel    string
}

// SignalPlot describes a plain signal chart.
type SignalPlot struct {
	Title  string
	Node   int
	Domain string
	Name   string
	Alias  string
	YLabel string
}

// AddInterrupt charts one interrupt facet. The chart title is prefixed with
// the interrupt vector. Unknown interrupts and empty selections are logged
// through the composer's logger and skipped.
func AddInterrupt(f *samplelog.Filter, c *plot.Composer, p InterruptPlot) (bool, error) {
	vector, ok := p.Vectors[p.Interrupt]
	if !ok {
		c.Logger().Info("cannot add plot", "title", p.Title, "selector", fmt.Sprintf("%s[%s]", InterruptDomain, p.Interrupt), "reason", ErrUnknownInterrupt.Error())
		return false, nil
	}
	sel := samplelog.Selector{
		Node:   p.Node,
		Domain: InterruptDomain,
		Name:   vector + "-" + p.Facet,
		Alias:  p.Alias,
	}
	res, err := f.Query(sel)
	if err != nil {
		return false, fmt.Errorf("interrupt %s: %w", p.Interrupt, err)
	}
	return c.AddResult(res, vector+" - "+p.Title, "", p.YLabel), nil
}

// AddSignal charts one signal of one node.
func AddSignal(f *samplelog.Filter, c *plot.Composer, p SignalPlot) (bool, error) {
	sel := samplelog.Selector{Node: p.Node, Domain: p.Domain, Name: p.Name, Alias: p.Alias}
	res, err := f.Query(sel)
	if err != nil {
		return false, err
	}
	return c.AddResult(res, p.Title, "", p.YLabel), nil
}

// AddPreset adds every plot of cfg in order, switching the filter to each
// plot's mapping table first. Plots whose samples cannot be mapped are
// logged and skipped. It returns the number of subplots added and fails
// only when a plot names an unknown mapping table.
func AddPreset(f *samplelog.Filter, c *plot.Composer, cfg *config.Config) (int, error) {
	added := 0
	for _, p := range cfg.Plots {
		mapping, err := cfg.Table(p.Mapping)
		if err != nil {
			return added, fmt.Errorf("plot %q: %w", p.Title, err)
		}
		f.SetValueMapping(mapping)

		var ok bool
		if p.IsInterrupt() {
			ok, err = AddInterrupt(f, c, InterruptPlot{
				Title:     p.Title,
				Node:      p.Node,
				Vectors:   cfg.Vectors,
				Facet:     p.Facet,
				Interrupt: p.Interrupt,
				Alias:     p.Alias,
				YLabel:    p.YLabel,
			})
		} else {
			if p.Reselect {
				f.Remove(samplelog.Selector{Node: p.Node, Domain: p.Domain, Name: p.Name, Alias: p.Alias})
			}
			ok, err = AddSignal(f, c, SignalPlot{
				Title:  p.Title,
				Node:   p.Node,
				Domain: p.Domain,
				Name:   p.Name,
				Alias:  p.Alias,
				YLabel: p.YLabel,
			})
		}
		if err != nil {
			c.Logger().Error(err, "cannot add plot", "title", p.Title)
			continue
		}
		if ok {
			added++
		}
	}
	return added, nil
}
