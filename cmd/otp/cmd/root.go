package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose    bool
	configFile string
)

var rootCmd = &cobra.Command{
	Use:   "otp",
	Short: "OpenTracePlot - step charts for particle state logs",
	Long: `OpenTracePlot (otp) renders the samples of a particle state log as
vertically stacked step charts. Every sample gets a marker; clicking a
marker (or hovering, with --hover) shows the raw value it was logged with.

Examples:
  otp view particle-state.log                       # Default charts
  otp view --plot SRAM:char-out@0 particle.log      # One ad-hoc chart
  otp info particle-state.log                       # List signals
  otp values --table reception-states run.log       # Show value mapping`,
	Version: "0.9.0",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			stdr.SetVerbosity(1)
		}
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "",
		"plot and mapping table file (s-expressions); defaults to the built-in tables")
}

// consoleLogger logs to stderr.
func consoleLogger() logr.Logger {
	return stdr.New(log.New(os.Stderr, "", log.LstdFlags))
}

func verbosity() int {
	if verbose {
		return 1
	}
	return 0
}
