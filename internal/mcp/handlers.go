package mcp

import (
	"context"
	"fmt"

	"returnlag/internal/orders"
	"returnlag/internal/report"
	"returnlag/internal/stats"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"
)

func (s *Server) handleAnalyzeMaturity(ctx context.Context, req *sdk.CallToolRequest, in AnalysisInput) (*sdk.CallToolResult, any, error) {
	env, err := s.analyzeMaturity(in)
	if err != nil {
		return nil, nil, err
	}
	return toolResult(env)
}

func (s *Server) handleCompareWindows(ctx context.Context, req *sdk.CallToolRequest, in AnalysisInput) (*sdk.CallToolResult, any, error) {
	env, err := s.compareWindows(in)
	if err != nil {
		return nil, nil, err
	}
	return toolResult(env)
}

func (s *Server) handleReport(ctx context.Context, req *sdk.CallToolRequest, in ReportInput) (*sdk.CallToolResult, any, error) {
	env, err := s.runReport(ctx, in)
	if err != nil {
		return nil, nil, err
	}
	return toolResult(env)
}

func (s *Server) handleListProducts(ctx context.Context, req *sdk.CallToolRequest, in FileInput) (*sdk.CallToolResult, any, error) {
	env, err := s.listProducts(in)
	if err != nil {
		return nil, nil, err
	}
	return toolResult(env)
}

func (s *Server) params(in AnalysisInput) ([]orders.OrderRecord, stats.Params, error) {
	cutoff, err := parseCutoff(in.Cutoff)
	if err != nil {
		return nil, stats.Params{}, err
	}
	span, err := s.resolveSpan(in.SpanDays)
	if err != nil {
		return nil, stats.Params{}, err
	}
	records, _, err := s.loadRecords(in.File)
	if err != nil {
		return nil, stats.Params{}, err
	}
	return records, stats.Params{Cutoff: cutoff, SpanDays: span, ProductID: in.Product}, nil
}

func (s *Server) analyzeMaturity(in AnalysisInput) (*Envelope, error) {
	records, p, err := s.params(in)
	if err != nil {
		return nil, err
	}

	res := stats.AnalyzeMaturity(records, p)
	guidance := report.MaturityGuidance(res)
	if res != nil {
		guidance = append(report.Staleness(s.now(), res.S, s.cfg.StaleDays), guidance...)
	}

	log.Info().Str("file", in.File).Str("product", in.Product).Bool("result", res != nil).Msg("Maturity analyzed")
	return WrapResponse(res, guidance), nil
}

func (s *Server) compareWindows(in AnalysisInput) (*Envelope, error) {
	records, p, err := s.params(in)
	if err != nil {
		return nil, err
	}

	res := stats.CompareWindows(records, p)
	guidance := append(report.Staleness(s.now(), res.S, s.cfg.StaleDays), report.ContrastGuidance(res)...)

	log.Info().Str("file", in.File).Str("product", in.Product).Bool("hasData", res.HasData).Msg("Windows compared")
	return WrapResponse(res, guidance), nil
}

func (s *Server) runReport(ctx context.Context, in ReportInput) (*Envelope, error) {
	cutoff, err := parseCutoff(in.Cutoff)
	if err != nil {
		return nil, err
	}
	span, err := s.resolveSpan(in.SpanDays)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if in.Today != "" {
		t, err := orders.ParseDate(in.Today)
		if err != nil {
			return nil, fmt.Errorf("invalid today %q: %w", in.Today, err)
		}
		now = t
	}

	records, _, err := s.loadRecords(in.File)
	if err != nil {
		return nil, err
	}

	rep, err := report.Run(ctx, records, report.Options{
		Cutoff:    cutoff,
		Span:      span,
		Products:  in.Products,
		Now:       orders.Day(now),
		StaleDays: s.cfg.StaleDays,
		Workers:   s.cfg.Workers,
	})
	if err != nil {
		return nil, err
	}

	return &Envelope{AnalysisID: rep.ID.String(), Data: rep}, nil
}

func (s *Server) listProducts(in FileInput) (*Envelope, error) {
	records, ls, err := s.loadRecords(in.File)
	if err != nil {
		return nil, err
	}

	res := map[string]interface{}{
		"products": orders.Products(records),
		"load":     ls,
		"latest":   latestLabel(records),
	}

	var guidance []string
	if ls.Dropped > 0 {
		guidance = append(guidance, fmt.Sprintf("%d of %d rows were dropped (missing purchase date or malformed values).", ls.Dropped, ls.Rows))
	}
	return WrapResponse(res, guidance), nil
}

func latestLabel(records []orders.OrderRecord) string {
	s := orders.LatestPurchase(records)
	if s.IsZero() {
		return ""
	}
	return orders.Label(s)
}
