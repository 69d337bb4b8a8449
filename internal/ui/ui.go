// Package ui hosts the Gio window that shows composed plots.
package ui

import (
	"os"

	"gioui.org/app"
	"gioui.org/unit"
	"github.com/go-logr/logr"

	"github.com/OpenTraceLab/OpenTracePlot/pkg/gioplot"
	"github.com/OpenTraceLab/OpenTracePlot/pkg/plot"
)

// Run opens a viewer for c and blocks until the window closes. A non-nil
// load enables opening other logs. Gio needs the main goroutine, so Run
// never returns: the process exits with the window.
func Run(c *plot.Composer, load Loader, state *AppState, config *ViewerConfig, log logr.Logger) error {
	if state == nil {
		state = NewState()
	}
	if config == nil {
		config = DefaultViewerConfig()
	}

	go func() {
		fig := gioplot.NewFigure(gioplot.Options{PickRadius: unit.Dp(config.PickRadius)})
		v := NewViewer(new(app.Window), fig, state, config, log)
		v.SetLoader(load)
		if err := c.Show(v); err != nil {
			log.Error(err, "viewer failed")
			os.Exit(1)
		}
		os.Exit(0)
	}()

	app.Main()
	return nil
}
