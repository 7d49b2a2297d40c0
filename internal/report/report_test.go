package report

import (
	"context"
	"testing"
	"time"

	"returnlag/internal/orders"
	"returnlag/internal/stats"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func rec(product, purchase string, sold int, returnOn string) orders.OrderRecord {
	r := orders.OrderRecord{PurchaseDate: day(purchase), UnitsSold: sold, ProductID: product}
	if returnOn != "" {
		rd := day(returnOn)
		r.ReturnDate = &rd
	}
	return r
}

func fixture() []orders.OrderRecord {
	return []orders.OrderRecord{
		rec("B", "2024-01-15", 1, "2024-01-20"),
		rec("B", "2024-02-25", 10, ""),
		rec("B", "2024-03-05", 10, ""),
		rec("A", "2024-01-20", 1, "2024-01-30"),
		rec("A", "2024-02-10", 5, ""),
	}
}

func TestRun_AllProducts(t *testing.T) {
	rep, err := Run(context.Background(), fixture(), Options{
		Cutoff:    day("2024-03-01"),
		Now:       day("2024-03-06"),
		StaleDays: 7,
		Workers:   2,
	})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, rep.ID)
	assert.Equal(t, stats.DefaultSpanDays, rep.SpanDays)
	assert.True(t, rep.GeneratedFor.Equal(day("2024-03-06")))
	require.Len(t, rep.Items, 3)

	ids := []string{rep.Items[0].ProductID, rep.Items[1].ProductID, rep.Items[2].ProductID}
	assert.Equal(t, []string{"A", AllProducts, "B"}, ids)

	a := rep.Items[0]
	require.NotNil(t, a.Maturity)
	assert.Equal(t, "A", a.Maturity.FASIN)
	// A stopped selling before the cutoff but is still observed up to the dataset's S
	assert.True(t, a.Maturity.S.Equal(day("2024-03-05")))
	assert.True(t, a.Contrast.HasData)
	assert.True(t, a.Contrast.S.Equal(day("2024-03-05")))
	assert.Equal(t, 0, a.Contrast.After.Sales)
	assert.Contains(t, a.Guidance[len(a.Guidance)-1], "No defensible projection")

	all := rep.Items[1]
	require.NotNil(t, all.Maturity)
	assert.Equal(t, "", all.Maturity.FASIN)
	assert.Equal(t, 17, all.Maturity.Segments.Baseline.Sales)
	assert.True(t, all.Contrast.HasData)

	b := rep.Items[2]
	require.NotNil(t, b.Maturity)
	assert.True(t, b.Maturity.S.Equal(day("2024-03-05")))
	assert.Equal(t, 10, b.Contrast.After.Sales)
}

func TestRun_ExplicitProducts(t *testing.T) {
	rep, err := Run(context.Background(), fixture(), Options{
		Cutoff:   day("2024-03-01"),
		Products: []string{"B", "MISSING"},
		Span:     14,
	})
	require.NoError(t, err)
	require.Len(t, rep.Items, 2)

	assert.Equal(t, "B", rep.Items[0].ProductID)
	assert.Equal(t, 14, rep.SpanDays)
	assert.Equal(t, 14, rep.Items[0].Maturity.ForecastRange.DayCount())

	missing := rep.Items[1]
	assert.Nil(t, missing.Maturity)
	assert.False(t, missing.Contrast.HasData)
	assert.Contains(t, missing.Guidance, "No maturity analysis: the selection has no orders with a purchase date.")
}

func TestRun_Errors(t *testing.T) {
	_, err := Run(context.Background(), fixture(), Options{})
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Run(ctx, fixture(), Options{Cutoff: day("2024-03-01")})
	assert.ErrorIs(t, err, context.Canceled)
}
