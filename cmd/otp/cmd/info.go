package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTracePlot/pkg/samplelog"
)

var infoCmd = &cobra.Command{
	Use:   "info <log-file>",
	Short: "List the signals of a sample log",
	Long: `List every signal (domain, name and node) found in a sample log with
its sample count and the first and last sample index.

Examples:
  otp info particle-state.log`,
	Args: cobra.ExactArgs(1),
	RunE: runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	f, err := samplelog.Open(args[0], nil)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	signals := samplelog.Summarize(f.Records())
	fmt.Fprintf(out, "%s: %d records, %d signals\n\n", args[0], len(f.Records()), len(signals))
	fmt.Fprintf(out, "%-8s %-24s %4s %8s %10s %10s\n", "DOMAIN", "NAME", "NODE", "SAMPLES", "FIRST", "LAST")
	for _, s := range signals {
		fmt.Fprintf(out, "%-8s %-24s %4d %8d %10d %10d\n", s.Domain, s.Name, s.Node, s.Count, s.First, s.Last)
	}
	return nil
}
