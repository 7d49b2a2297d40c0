package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"returnlag/internal/mcp"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the analyses as MCP tools over stdio",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		log.Info().
			Str("version", Version).
			Str("commit", Commit).
			Str("buildDate", BuildDate).
			Msg("returnlag MCP server starting")

		return mcp.NewServer(cfg, Version).Start(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
