// README: Pricing entries, quote status values and the per-region feed contract.
package pricing

import (
	"context"
	"errors"

	"porter/internal/types"
)

var (
	ErrNoPricing = errors.New("pricing: no pricing available")
	ErrNoMatch   = errors.New("pricing: no price for city")
)

type Status string

const (
	StatusOK        Status = "ok"
	StatusNoPricing Status = "no_pricing"
	StatusNoMatch   Status = "no_match"
)

// Err maps a non-ok status to its sentinel error.
func (s Status) Err() error {
	switch s {
	case StatusOK:
		return nil
	case StatusNoMatch:
		return ErrNoMatch
	default:
		return ErrNoPricing
	}
}

type Region struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Entry is one row of a region's city price list.
type Entry struct {
	Region    string      `json:"region"`
	City      string      `json:"city"`
	BasePrice types.Money `json:"basePrice"`
}

type Quote struct {
	Fee    types.Money `json:"fee"`
	Status Status      `json:"status"`
}

// Feed is the pricing data source: a region list and, per region, its city
// price list.
type Feed interface {
	ListRegions(ctx context.Context) ([]Region, error)
	ListCityPrices(ctx context.Context, regionCode string) ([]Entry, error)
}
