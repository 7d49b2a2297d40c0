package mcp

import (
	"encoding/json"
	"fmt"
	"time"

	"returnlag/internal/config"
	"returnlag/internal/orders"

	"github.com/google/uuid"
	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Envelope is the JSON body of every tool response.
type Envelope struct {
	AnalysisID string   `json:"analysis_id"`
	Data       any      `json:"data"`
	Guidance   []string `json:"guidance,omitempty"`
}

// WrapResponse assigns a fresh analysis id to data.
func WrapResponse(data any, guidance []string) *Envelope {
	return &Envelope{
		AnalysisID: uuid.NewString(),
		Data:       data,
		Guidance:   guidance,
	}
}

func toolResult(env *Envelope) (*sdk.CallToolResult, any, error) {
	out, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode result: %w", err)
	}
	return &sdk.CallToolResult{
		Content: []sdk.Content{&sdk.TextContent{Text: string(out)}},
	}, nil, nil
}

func parseCutoff(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("cutoff is required (YYYY-MM-DD)")
	}
	t, err := orders.ParseDate(value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid cutoff %q: %w", value, err)
	}
	return orders.Day(t), nil
}

func (s *Server) resolveSpan(span int) (int, error) {
	if span == 0 {
		return s.cfg.DefaultSpan, nil
	}
	if span < 1 || span > config.MaxSpanDays {
		return 0, fmt.Errorf("span_days must be between 1 and %d, got %d", config.MaxSpanDays, span)
	}
	return span, nil
}

func (s *Server) loadRecords(file string) ([]orders.OrderRecord, orders.LoadStats, error) {
	if file == "" {
		return nil, orders.LoadStats{}, fmt.Errorf("file is required")
	}
	return s.store.Get(file)
}
