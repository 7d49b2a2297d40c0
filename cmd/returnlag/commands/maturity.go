package commands

import (
	"returnlag/internal/report"
	"returnlag/internal/stats"

	"github.com/spf13/cobra"
)

var maturityFlags analysisFlags

var maturityCmd = &cobra.Command{
	Use:   "maturity",
	Short: "Project the final return rate of the orders placed since the cutoff",
	RunE: func(cmd *cobra.Command, args []string) error {
		cutoff, span, err := maturityFlags.resolve(cfg)
		if err != nil {
			return err
		}
		now, err := maturityFlags.now()
		if err != nil {
			return err
		}
		records, err := maturityFlags.load(cfg)
		if err != nil {
			return err
		}

		res := stats.AnalyzeMaturity(records, stats.Params{Cutoff: cutoff, SpanDays: span, ProductID: maturityFlags.product})
		guidance := report.MaturityGuidance(res)
		if res != nil {
			guidance = append(report.Staleness(now, res.S, cfg.StaleDays), guidance...)
		}

		return writeJSON(cmd.OutOrStdout(), output{Data: res, Guidance: guidance})
	},
}

func init() {
	maturityFlags.register(maturityCmd)
	rootCmd.AddCommand(maturityCmd)
}
