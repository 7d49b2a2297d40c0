package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"returnlag/internal/config"
	"returnlag/internal/logging"
	"returnlag/internal/orders"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	// Version, Commit, and BuildDate are set at build time via ldflags.
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"

	verbose bool
	cfg     *config.AppConfig
)

// analysisFlags are shared by the commands that run the engines on a file.
type analysisFlags struct {
	file    string
	cutoff  string
	span    int
	product string
	today   string
}

var rootCmd = &cobra.Command{
	Use:   "returnlag",
	Short: "returnlag estimates when post-change return rates can be trusted",
	Long: `A return-lag analysis tool for marketplace order exports. It learns how long customers take to
return purchases, projects the final return rate of recent cohorts, and compares return rates
before and after a cutoff date over fairly censored windows.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Init(verbose)

		// Load configuration
		var err error
		cfg, err = config.Load()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load configuration")
		}

		log.Debug().
			Str("version", Version).
			Str("commit", Commit).
			Str("buildDate", BuildDate).
			Msg("returnlag starting")
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

func (f *analysisFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.file, "file", "f", "", "order export (.csv, .xlsx, .jsonl), relative to DATA_PATH or absolute")
	cmd.Flags().StringVarP(&f.cutoff, "cutoff", "c", "", "cutoff date T0 (YYYY-MM-DD)")
	cmd.Flags().IntVar(&f.span, "span", 0, "forecast window length in days (default RETURNLAG_DEFAULT_SPAN)")
	cmd.Flags().StringVarP(&f.product, "product", "p", "", "restrict the analysis to one product id")
	cmd.Flags().StringVar(&f.today, "today", "", "reference date for staleness guidance (YYYY-MM-DD, default today)")
	_ = cmd.MarkFlagRequired("file")
	_ = cmd.MarkFlagRequired("cutoff")
}

func (f *analysisFlags) resolve(c *config.AppConfig) (cutoff time.Time, span int, err error) {
	t, err := orders.ParseDate(f.cutoff)
	if err != nil {
		return time.Time{}, 0, fmt.Errorf("invalid --cutoff %q: %w", f.cutoff, err)
	}

	span = f.span
	if span == 0 {
		span = c.DefaultSpan
	}
	if span < 1 || span > config.MaxSpanDays {
		return time.Time{}, 0, fmt.Errorf("--span must be between 1 and %d, got %d", config.MaxSpanDays, span)
	}

	return orders.Day(t), span, nil
}

func (f *analysisFlags) now() (time.Time, error) {
	if f.today == "" {
		return orders.Day(time.Now()), nil
	}
	t, err := orders.ParseDate(f.today)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --today %q: %w", f.today, err)
	}
	return orders.Day(t), nil
}

func (f *analysisFlags) load(c *config.AppConfig) ([]orders.OrderRecord, error) {
	store := orders.NewStore(c.DataPath)
	records, ls, err := store.Get(f.file)
	if err != nil {
		return nil, err
	}
	if ls.Dropped > 0 {
		log.Warn().Str("path", ls.Path).Int("dropped", ls.Dropped).Int("rows", ls.Rows).Msg("Rows dropped while loading")
	}
	return records, nil
}

type output struct {
	Data     any      `json:"data"`
	Guidance []string `json:"guidance,omitempty"`
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
