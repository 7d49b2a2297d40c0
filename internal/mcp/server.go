package mcp

import (
	"context"
	"time"

	"returnlag/internal/config"
	"returnlag/internal/orders"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"
)

// Server exposes the return-lag engines as MCP tools.
type Server struct {
	cfg   *config.AppConfig
	store *orders.Store
	now   func() time.Time
	mcp   *sdk.Server
}

// NewServer creates a new MCP server reading datasets below cfg.DataPath.
func NewServer(cfg *config.AppConfig, version string) *Server {
	s := &Server{
		cfg:   cfg,
		store: orders.NewStore(cfg.DataPath),
		now:   time.Now,
	}
	s.mcp = sdk.NewServer(&sdk.Implementation{Name: "returnlag", Version: version}, nil)
	s.registerTools()
	return s
}

// Start serves MCP over stdio until the client disconnects or ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	log.Info().Str("dataPath", s.cfg.DataPath).Msg("MCP Server starting Stdio loop")
	return s.mcp.Run(ctx, &sdk.StdioTransport{})
}
