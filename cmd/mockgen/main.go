package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"returnlag/cmd/mockgen/engine"
	"returnlag/internal/orders"
)

func main() {
	scenario := flag.String("scenario", "mild", "Scenario to generate: mild, chaos, drift, improved")
	distribution := flag.String("distribution", "uniform", "Return lag distribution: uniform, weibull")
	out := flag.String("out", "./.cache/orders.jsonl", "Output JSONL file")
	products := flag.Int("products", 3, "Number of products")
	days := flag.Int("days", 180, "Days of purchase history ending today")
	cutoff := flag.String("cutoff", "", "Cutoff date (YYYY-MM-DD) for the improved scenario; defaults to the middle of the history")
	seed := flag.Int64("seed", time.Now().UnixNano(), "Random seed")
	flag.Parse()

	cfg := engine.GeneratorConfig{
		Scenario:     *scenario,
		Distribution: *distribution,
		Products:     *products,
		Days:         *days,
		Now:          time.Now(),
		Seed:         *seed,
	}
	if *cutoff != "" {
		t, err := orders.ParseDate(*cutoff)
		if err != nil {
			fmt.Printf("Invalid cutoff: %v\n", err)
			os.Exit(1)
		}
		cfg.Cutoff = t
	}

	fmt.Printf("Generating scenario '%s' (Distribution: %s, Products: %d, Days: %d) to %s...\n", cfg.Scenario, cfg.Distribution, cfg.Products, cfg.Days, *out)

	records := engine.Generate(cfg)
	if err := engine.Save(*out, records); err != nil {
		fmt.Printf("Failed to save mock data: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Done. %d order lines written.\n", len(records))
}
