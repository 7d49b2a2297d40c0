package engine

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"returnlag/internal/orders"
)

type GeneratorConfig struct {
	Scenario     string // "mild", "chaos", "drift" or "improved"
	Distribution string // "uniform" or "weibull"
	Products     int
	Days         int
	Cutoff       time.Time // "improved" halves the return probability from this day on
	Now          time.Time
	Seed         int64
}

const baseReturnRate = 0.12

func Generate(cfg GeneratorConfig) []orders.OrderRecord {
	if cfg.Now.IsZero() {
		cfg.Now = time.Now()
	}
	now := orders.Day(cfg.Now)
	if cfg.Cutoff.IsZero() {
		cfg.Cutoff = orders.AddDays(now, -cfg.Days/2)
	}
	cutoff := orders.Day(cfg.Cutoff)
	rng := rand.New(rand.NewSource(cfg.Seed))

	var records []orders.OrderRecord
	start := orders.AddDays(now, -cfg.Days)

	for p := 0; p < cfg.Products; p++ {
		product := fmt.Sprintf("B0MOCK%04d", p+1)

		for d := 0; d <= cfg.Days; d++ {
			purchase := orders.AddDays(start, d)

			// 1. Return probability for the purchase day
			prob := baseReturnRate
			switch cfg.Scenario {
			case "drift":
				prob = baseReturnRate * (0.5 + float64(d)/float64(cfg.Days))
			case "improved":
				if !purchase.Before(cutoff) {
					prob = baseReturnRate / 2
				}
			}

			// 2. Orders of the day: 1-3 lines of 1-3 units
			lines := 1 + rng.Intn(3)
			for i := 0; i < lines; i++ {
				rec := orders.OrderRecord{
					OrderID:      fmt.Sprintf("%s-%s-%d", product, orders.Label(purchase), i+1),
					PurchaseDate: purchase,
					UnitsSold:    1 + rng.Intn(3),
					ProductID:    product,
				}

				// 3. Returns become visible only once their date has passed
				if rng.Float64() < prob {
					returned := orders.AddDays(purchase, sampleLag(rng, cfg))
					if !returned.After(now) {
						rec.ReturnDate = &returned
						rec.UnitsReturned = 1 + rng.Intn(rec.UnitsSold)
					}
				}
				records = append(records, rec)
			}
		}
	}

	return records
}

func sampleLag(rng *rand.Rand, cfg GeneratorConfig) int {
	var lag float64
	if cfg.Distribution == "weibull" {
		k, lambda := 1.5, 12.0
		if cfg.Scenario == "chaos" {
			k = 0.8
		}
		lag = weibullSample(rng, k, lambda)
	} else {
		// Uniform baseline: 2-20 days
		lag = 2 + rng.Float64()*18
		if cfg.Scenario == "chaos" && rng.Float64() < 0.2 {
			lag += 30 + rng.Float64()*30 // late stragglers
		}
	}
	return int(math.Round(lag))
}

func weibullSample(rng *rand.Rand, k, lambda float64) float64 {
	u := rng.Float64()
	if u == 0 {
		u = 0.0001
	}
	// X = lambda * (-ln(1-u))^(1/k)
	return lambda * math.Pow(-math.Log(1.0-u), 1.0/k)
}

// Save writes records as JSONL, the format orders.LoadFile reads for .jsonl files.
func Save(path string, records []orders.OrderRecord) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := writeJSONL(f, records); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeJSONL(out io.Writer, records []orders.OrderRecord) error {
	w := bufio.NewWriter(out)
	enc := json.NewEncoder(w)
	for _, r := range records {
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("failed to encode order %s: %w", r.OrderID, err)
		}
	}
	return w.Flush()
}
