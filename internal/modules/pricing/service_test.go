package pricing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"porter/internal/types"
)

type fakeFeed struct {
	regions    []Region
	prices     map[string][]Entry
	err        error
	priceCalls int
}

func (f *fakeFeed) ListRegions(context.Context) ([]Region, error) {
	return f.regions, f.err
}

func (f *fakeFeed) ListCityPrices(_ context.Context, code string) ([]Entry, error) {
	f.priceCalls++
	return f.prices[code], f.err
}

func newFakeFeed() *fakeFeed {
	return &fakeFeed{
		regions: []Region{
			{Code: "NCR", Name: "NCR"},
			{Code: "R07", Name: "Central Visayas"},
			{Code: "R04A", Name: "CALABARZON"},
		},
		prices: map[string][]Entry{
			"NCR": sampleEntries(),
			"R07": {{Region: "Central Visayas", City: "Cebu City", BasePrice: types.PHP(300)}},
		},
	}
}

func TestService_QuoteUsesFeedRegionName(t *testing.T) {
	svc := NewService(newFakeFeed(), zap.NewNop())
	ctx := context.Background()

	q := svc.Quote(ctx, "Cebu City", "Region VII (Central Visayas)")
	assert.Equal(t, Quote{Fee: types.PHP(300), Status: StatusOK}, q)

	q = svc.Quote(ctx, "City of Makati", "National Capital Region (NCR)")
	assert.Equal(t, Quote{Fee: types.PHP(350), Status: StatusOK}, q)
}

func TestService_QuoteStatuses(t *testing.T) {
	ctx := context.Background()
	feed := newFakeFeed()
	svc := NewService(feed, zap.NewNop())

	assert.Equal(t, StatusNoMatch, svc.Quote(ctx, "Mandaue City", "Central Visayas").Status)
	assert.Equal(t, StatusNoPricing, svc.Quote(ctx, "Bacoor", "CALABARZON").Status)
	assert.Equal(t, StatusNoPricing, svc.Quote(ctx, "Davao City", "Davao Region").Status)

	feed.err = errors.New("connection refused")
	assert.Equal(t, StatusNoPricing, svc.Quote(ctx, "Cebu City", "Central Visayas").Status)
}

func TestService_QuoteBooking(t *testing.T) {
	svc := NewService(newFakeFeed(), zap.NewNop())

	bq := svc.QuoteBooking(context.Background(), "Cebu City", "Central Visayas", []int{1, 7})
	require.Equal(t, StatusOK, bq.Status)
	assert.Equal(t, []types.Money{types.PHP(0), types.PHP(600)}, bq.Surcharges)
	assert.Equal(t, types.PHP(300+900), bq.Total)

	bq = svc.QuoteBooking(context.Background(), "Nowhere", "Central Visayas", []int{1})
	assert.Equal(t, StatusNoMatch, bq.Status)
	assert.Empty(t, bq.Surcharges)
}
