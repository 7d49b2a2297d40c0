package mcp

import (
	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

// AnalysisInput selects a dataset slice for the single-product engines.
type AnalysisInput struct {
	File     string `json:"file" jsonschema:"Order export to analyze (.csv, .xlsx, .jsonl), relative to DATA_PATH or absolute"`
	Cutoff   string `json:"cutoff" jsonschema:"Cutoff date T0 (YYYY-MM-DD), the first day the change was live"`
	SpanDays int    `json:"span_days,omitempty" jsonschema:"Forecast window length in days (default from configuration)"`
	Product  string `json:"product,omitempty" jsonschema:"Optional product id (ASIN/FASIN/SKU); empty analyzes all products together"`
}

// ReportInput selects the products of a batch report.
type ReportInput struct {
	File     string   `json:"file" jsonschema:"Order export to analyze, relative to DATA_PATH or absolute"`
	Cutoff   string   `json:"cutoff" jsonschema:"Cutoff date T0 (YYYY-MM-DD)"`
	SpanDays int      `json:"span_days,omitempty" jsonschema:"Forecast window length in days (default from configuration)"`
	Products []string `json:"products,omitempty" jsonschema:"Product ids to include; empty means every product plus the ALL aggregate"`
	Today    string   `json:"today,omitempty" jsonschema:"Reference date for staleness checks (YYYY-MM-DD); defaults to the current date"`
}

// FileInput names a dataset.
type FileInput struct {
	File string `json:"file" jsonschema:"Order export, relative to DATA_PATH or absolute"`
}

func (s *Server) registerTools() {
	sdk.AddTool(s.mcp, &sdk.Tool{
		Name: "analyze_return_maturity",
		Description: "Project the final return rate of orders placed since a cutoff date. " +
			"Learns the purchase-to-return lag from the 60 days before the cutoff, classifies each post-cutoff purchase day " +
			"as ramp_up, mature or finalized, and grosses up mature days by the share of returns the lag curve says has arrived. " +
			"Guidance: if 'isEvaluable' is false, DO NOT present the projected rate as a conclusion; report 'daysToWait' instead.",
	}, s.handleAnalyzeMaturity)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name: "compare_return_windows",
		Description: "Compare return rates before and after a cutoff over mirrored windows of equal length. " +
			"Returns of the historical side are censored to the age the matching recent day could reach, so both sides " +
			"had the same time to return. A negative 'deltaRate' means the return rate improved.",
	}, s.handleCompareWindows)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name: "analyze_returns_report",
		Description: "Run both the maturity projection and the before/after comparison for every product in a dataset " +
			"(plus an ALL aggregate), with staleness and waiting guidance per product.",
	}, s.handleReport)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "list_products",
		Description: "List the distinct product ids of a dataset together with load statistics (rows kept and dropped).",
	}, s.handleListProducts)
}
