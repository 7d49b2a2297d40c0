package commands

import (
	"returnlag/internal/report"
	"returnlag/internal/stats"

	"github.com/spf13/cobra"
)

var contrastFlags analysisFlags

var contrastCmd = &cobra.Command{
	Use:   "contrast",
	Short: "Compare return rates before and after the cutoff over censored mirror windows",
	RunE: func(cmd *cobra.Command, args []string) error {
		cutoff, span, err := contrastFlags.resolve(cfg)
		if err != nil {
			return err
		}
		now, err := contrastFlags.now()
		if err != nil {
			return err
		}
		records, err := contrastFlags.load(cfg)
		if err != nil {
			return err
		}

		res := stats.CompareWindows(records, stats.Params{Cutoff: cutoff, SpanDays: span, ProductID: contrastFlags.product})
		guidance := append(report.Staleness(now, res.S, cfg.StaleDays), report.ContrastGuidance(res)...)

		return writeJSON(cmd.OutOrStdout(), output{Data: res, Guidance: guidance})
	},
}

func init() {
	contrastFlags.register(contrastCmd)
	rootCmd.AddCommand(contrastCmd)
}
