// README: Pricing feed backed by PostgreSQL.
package pricing

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"porter/internal/types"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

func (s *Store) ListRegions(ctx context.Context) ([]Region, error) {
	rows, err := s.db.Query(ctx, `
		SELECT code, name
		FROM pricing_regions
		ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Region
	for rows.Next() {
		var r Region
		if err := rows.Scan(&r.Code, &r.Name); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Store) ListCityPrices(ctx context.Context, regionCode string) ([]Entry, error) {
	rows, err := s.db.Query(ctx, `
		SELECT r.name, c.city, c.base_price, c.currency
		FROM city_prices c
		JOIN pricing_regions r ON r.code = c.region_code
		WHERE c.region_code = $1
		ORDER BY c.position`, regionCode)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Region, &e.City, &e.BasePrice.Amount, &e.BasePrice.Currency); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// RegionPrices is the seed document shape: one region and its price list.
type RegionPrices struct {
	Region
	Cities []CityPrice `json:"cities"`
}

type CityPrice struct {
	City      string `json:"city"`
	BasePrice int64  `json:"basePrice"`
}

// Replace swaps the whole pricing feed in one transaction.
func (s *Store) Replace(ctx context.Context, regions []RegionPrices) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `TRUNCATE city_prices, pricing_regions`); err != nil {
		return fmt.Errorf("truncate pricing: %w", err)
	}

	var regionRows, cityRows [][]any
	for i, r := range regions {
		regionRows = append(regionRows, []any{r.Code, r.Name, i})
		for j, c := range r.Cities {
			cityRows = append(cityRows, []any{r.Code, c.City, c.BasePrice, types.DefaultCurrency, j})
		}
	}
	if _, err := tx.CopyFrom(ctx, pgx.Identifier{"pricing_regions"},
		[]string{"code", "name", "position"}, pgx.CopyFromRows(regionRows)); err != nil {
		return fmt.Errorf("copy pricing_regions: %w", err)
	}
	if _, err := tx.CopyFrom(ctx, pgx.Identifier{"city_prices"},
		[]string{"region_code", "city", "base_price", "currency", "position"}, pgx.CopyFromRows(cityRows)); err != nil {
		return fmt.Errorf("copy city_prices: %w", err)
	}
	return tx.Commit(ctx)
}
