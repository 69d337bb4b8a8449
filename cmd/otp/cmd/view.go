package cmd

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTracePlot/internal/ui"
	"github.com/OpenTraceLab/OpenTracePlot/pkg/plot"
	"github.com/OpenTraceLab/OpenTracePlot/pkg/samplelog"
	"github.com/OpenTraceLab/OpenTracePlot/pkg/signals"
)

var (
	plotFlags   []string
	plotTable   string
	hover       bool
	triggerFlag string
)

var viewCmd = &cobra.Command{
	Use:   "view <log-file>",
	Short: "Show step charts of a sample log",
	Long: `Open an interactive window with one step chart per signal. Without
--plot the plots of the configuration are shown (the built-in preset covers
wires, interrupt facets and SRAM buffers).

Controls:
  Left Click  - Show the values of the markers under the pointer
  H           - Hide all annotations
  Q / Escape  - Quit

Examples:
  otp view particle-state.log
  otp view --hover particle-state.log
  otp view --plot WIRE:tx-south@1 --plot SRAM:int16-out particle.log
  otp view --plot SRAM:char-out --table char-bytes particle.log`,
	Args: cobra.ExactArgs(1),
	RunE: runView,
}

func init() {
	rootCmd.AddCommand(viewCmd)

	viewCmd.Flags().StringArrayVarP(&plotFlags, "plot", "p", nil,
		"signal to chart as DOMAIN:name[@node] (repeatable)")
	viewCmd.Flags().StringVarP(&plotTable, "table", "t", "",
		"mapping table for --plot charts")
	viewCmd.Flags().BoolVar(&hover, "hover", false,
		"show annotations while hovering instead of on click")
	viewCmd.Flags().StringVar(&triggerFlag, "trigger", "",
		"pointer interaction: pick, hover or both (overrides saved settings)")
}

func runView(cmd *cobra.Command, args []string) error {
	state := ui.NewState()
	state.SetTitle("OpenTracePlot - " + filepath.Base(args[0]))
	logger := ui.NewLogger(state, consoleLogger(), verbosity())

	viewerCfg, err := ui.LoadConfig()
	if err != nil {
		logger.Error(err, "cannot load viewer settings, using defaults")
		viewerCfg = ui.DefaultViewerConfig()
	}
	triggers := viewerCfg.Triggers()
	switch {
	case triggerFlag != "":
		if triggers, err = ui.ParseTrigger(triggerFlag); err != nil {
			return err
		}
	case hover:
		triggers = plot.TriggerMove
	}

	f, err := samplelog.Open(args[0], nil)
	if err != nil {
		return err
	}
	c := plot.New(plot.WithLogger(logger), plot.WithTriggers(triggers))
	if err := buildPlots(c, f); err != nil {
		return err
	}
	if len(c.Subplots()) == 0 {
		return errors.New("nothing to plot")
	}
	state.SetStatus(fmt.Sprintf("Loaded %d plots", len(c.Subplots())))

	load := func(r io.Reader, name string) (*plot.Composer, error) {
		f, err := samplelog.Read(r, nil)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		c := plot.New(plot.WithLogger(logger))
		if err := buildPlots(c, f); err != nil {
			return nil, err
		}
		return c, nil
	}
	return ui.Run(c, load, state, viewerCfg, logger)
}

// buildPlots adds the --plot charts, or the configured preset, to c.
func buildPlots(c *plot.Composer, f *samplelog.Filter) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if len(plotFlags) == 0 {
		_, err := signals.AddPreset(f, c, cfg)
		return err
	}

	mapping, err := cfg.Table(plotTable)
	if err != nil {
		return err
	}
	f.SetValueMapping(mapping)
	for _, spec := range plotFlags {
		p, err := parsePlotFlag(spec)
		if err != nil {
			return err
		}
		if _, err := signals.AddSignal(f, c, p); err != nil {
			c.Logger().Error(err, "cannot add plot", "title", p.Title)
		}
	}
	return nil
}

// parsePlotFlag parses DOMAIN:name[@node]. The node defaults to 0.
func parsePlotFlag(spec string) (signals.SignalPlot, error) {
	target, nodeText, hasNode := strings.Cut(spec, "@")
	domain, name, ok := strings.Cut(target, ":")
	if !ok || domain == "" || name == "" {
		return signals.SignalPlot{}, fmt.Errorf("invalid plot %q: expected DOMAIN:name[@node]", spec)
	}

	node := 0
	if hasNode {
		n, err := strconv.Atoi(nodeText)
		if err != nil {
			return signals.SignalPlot{}, fmt.Errorf("invalid plot %q: bad node: %w", spec, err)
		}
		node = n
	}

	return signals.SignalPlot{
		Title:  samplelog.Selector{Node: node, Domain: domain, Name: name}.String(),
		Node:   node,
		Domain: domain,
		Name:   name,
	}, nil
}
