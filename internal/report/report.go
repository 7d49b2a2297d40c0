package report

import (
	"context"
	"fmt"
	"sort"
	"time"

	"returnlag/internal/orders"
	"returnlag/internal/stats"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// AllProducts is the product id of the aggregate item covering every product.
const AllProducts = "ALL"

// Options controls a batch run.
type Options struct {
	Cutoff    time.Time
	Span      int
	Products  []string
	Now       time.Time
	StaleDays int
	Workers   int
}

// Item is the outcome of both engines for one product.
type Item struct {
	ProductID string                `json:"productId"`
	Maturity  *stats.MaturityResult `json:"maturity"`
	Contrast  stats.ContrastResult  `json:"contrast"`
	Guidance  []string              `json:"guidance"`
}

// Report is a batch of per-product analyses sharing one cutoff.
type Report struct {
	ID           uuid.UUID `json:"id"`
	GeneratedFor time.Time `json:"generatedFor"`
	Cutoff       time.Time `json:"cutoff"`
	SpanDays     int       `json:"spanDays"`
	Items        []Item    `json:"items"`
}

// Run analyzes every requested product in parallel. Without an explicit product list
// it covers each product found in records plus the AllProducts aggregate.
func Run(ctx context.Context, records []orders.OrderRecord, opts Options) (*Report, error) {
	if opts.Cutoff.IsZero() {
		return nil, fmt.Errorf("cutoff date is required")
	}

	products := opts.Products
	if len(products) == 0 {
		products = append(orders.Products(records), AllProducts)
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = 1
	}

	items := make([]Item, len(products))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, product := range products {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			items[i] = analyze(records, product, opts)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("report interrupted: %w", err)
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].ProductID < items[j].ProductID
	})

	log.Info().
		Int("products", len(items)).
		Str("cutoff", orders.Label(opts.Cutoff)).
		Msg("Report generated")

	return &Report{
		ID:           uuid.New(),
		GeneratedFor: opts.Now,
		Cutoff:       orders.Day(opts.Cutoff),
		SpanDays:     spanOrDefault(opts.Span),
		Items:        items,
	}, nil
}

func analyze(records []orders.OrderRecord, product string, opts Options) Item {
	filter := product
	if product == AllProducts {
		filter = ""
	}

	p := stats.Params{Cutoff: opts.Cutoff, SpanDays: opts.Span, ProductID: filter}
	m := stats.AnalyzeMaturity(records, p)
	c := stats.CompareWindows(records, p)

	s := c.S
	if m != nil {
		s = m.S
	}

	log.Debug().
		Str("product", product).
		Bool("maturity", m != nil).
		Bool("contrast", c.HasData).
		Msg("Product analyzed")

	return Item{
		ProductID: product,
		Maturity:  m,
		Contrast:  c,
		Guidance:  Guidance(opts.Now, s, m, c, opts.StaleDays),
	}
}

func spanOrDefault(span int) int {
	if span <= 0 {
		return stats.DefaultSpanDays
	}
	return span
}
