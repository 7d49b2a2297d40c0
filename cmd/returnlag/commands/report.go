package commands

import (
	"returnlag/internal/report"

	"github.com/spf13/cobra"
)

var (
	reportFlags    analysisFlags
	reportProducts []string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Run both analyses for every product (plus an ALL aggregate)",
	RunE: func(cmd *cobra.Command, args []string) error {
		cutoff, span, err := reportFlags.resolve(cfg)
		if err != nil {
			return err
		}
		now, err := reportFlags.now()
		if err != nil {
			return err
		}
		records, err := reportFlags.load(cfg)
		if err != nil {
			return err
		}

		products := reportProducts
		if reportFlags.product != "" {
			products = append(products, reportFlags.product)
		}

		rep, err := report.Run(cmd.Context(), records, report.Options{
			Cutoff:    cutoff,
			Span:      span,
			Products:  products,
			Now:       now,
			StaleDays: cfg.StaleDays,
			Workers:   cfg.Workers,
		})
		if err != nil {
			return err
		}

		return writeJSON(cmd.OutOrStdout(), rep)
	},
}

func init() {
	reportFlags.register(reportCmd)
	reportCmd.Flags().StringSliceVar(&reportProducts, "products", nil, "comma-separated product ids (default every product plus ALL)")
	rootCmd.AddCommand(reportCmd)
}
