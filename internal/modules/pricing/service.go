// README: Pricing service resolves a region's price list and quotes against it.
package pricing

import (
	"context"

	"go.uber.org/zap"

	"porter/internal/names"
	"porter/internal/types"
)

type Service struct {
	feed Feed
	log  *zap.Logger
}

func NewService(feed Feed, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{feed: feed, log: log}
}

func (s *Service) ListRegions(ctx context.Context) ([]Region, error) {
	return s.feed.ListRegions(ctx)
}

// Table loads the price list of the feed region matching region. A region
// the feed does not know yields an empty table.
func (s *Service) Table(ctx context.Context, region string) (*Table, error) {
	t, _, err := s.table(ctx, region)
	return t, err
}

// Quote never fails: an unreachable feed is reported as no_pricing. The
// lookup uses the feed's own region name so gazetteer and feed spellings of
// the same region agree.
func (s *Service) Quote(ctx context.Context, city, region string) Quote {
	t, r, err := s.table(ctx, region)
	if err != nil {
		s.log.Warn("pricing feed unavailable", zap.String("region", region), zap.Error(err))
		return Quote{Status: StatusNoPricing}
	}
	return t.Quote(city, r.Name)
}

func (s *Service) table(ctx context.Context, region string) (*Table, Region, error) {
	regions, err := s.feed.ListRegions(ctx)
	if err != nil {
		return nil, Region{}, err
	}
	r, ok := findRegion(regions, region)
	if !ok {
		return NewTable(nil, s.log), Region{}, nil
	}
	entries, err := s.feed.ListCityPrices(ctx, r.Code)
	if err != nil {
		return nil, Region{}, err
	}
	return NewTable(entries, s.log), r, nil
}

// BookingQuote is the priced breakdown of a multi-passenger booking.
type BookingQuote struct {
	Quote
	Surcharges []types.Money `json:"surcharges,omitempty"`
	Total      types.Money   `json:"total"`
}

func (s *Service) QuoteBooking(ctx context.Context, city, region string, quantities []int) BookingQuote {
	q := s.Quote(ctx, city, region)
	out := BookingQuote{Quote: q}
	if q.Status != StatusOK {
		return out
	}
	for _, n := range quantities {
		out.Surcharges = append(out.Surcharges, Surcharge(q.Fee, n))
	}
	out.Total = BookingTotal(q.Fee, quantities)
	return out
}

func findRegion(regions []Region, name string) (Region, bool) {
	want := names.Canonical(name)
	if want == "" {
		return Region{}, false
	}
	for _, r := range regions {
		if names.Canonical(r.Name) == want || r.Code == name {
			return r, true
		}
	}
	for _, r := range regions {
		if names.Matches(names.Canonical(r.Name), want) {
			return r, true
		}
	}
	return Region{}, false
}
