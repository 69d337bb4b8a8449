package cmd

import (
	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTracePlot/pkg/samplelog"
)

var valuesTable string

var valuesCmd = &cobra.Command{
	Use:   "values <log-file>",
	Short: "Print the distinct values of every signal",
	Long: `Print every distinct raw value per signal together with the chart
value a mapping table assigns to it. Symbolic values without a mapping are
shown as "unmapped"; numeric values chart as themselves.

Examples:
  otp values particle-state.log
  otp values --table reception-states particle-state.log
  otp values -c tables.sexp --table mine particle-state.log`,
	Args: cobra.ExactArgs(1),
	RunE: runValues,
}

func init() {
	rootCmd.AddCommand(valuesCmd)

	valuesCmd.Flags().StringVarP(&valuesTable, "table", "t", "",
		"mapping table to apply")
}

func runValues(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	mapping, err := cfg.Table(valuesTable)
	if err != nil {
		return err
	}
	f, err := samplelog.Open(args[0], mapping)
	if err != nil {
		return err
	}
	return f.WriteValues(cmd.OutOrStdout())
}
