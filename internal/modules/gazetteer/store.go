// README: Gazetteer store backed by PostgreSQL (four reference tables).
package gazetteer

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// Load fetches all four datasets, ordered by their position column so that
// snapshot order matches the order they were seeded in.
func (s *Store) Load(ctx context.Context) (Dataset, error) {
	var d Dataset
	var err error

	d.Regions, err = queryAll(ctx, s.db, `SELECT code, name FROM gazetteer_regions ORDER BY position`,
		func(row pgx.Rows) (Region, error) {
			var r Region
			return r, row.Scan(&r.Code, &r.Name)
		})
	if err != nil {
		return Dataset{}, fmt.Errorf("loading regions: %w", err)
	}

	d.Provinces, err = queryAll(ctx, s.db, `SELECT code, name, region_code FROM gazetteer_provinces ORDER BY position`,
		func(row pgx.Rows) (Province, error) {
			var p Province
			return p, row.Scan(&p.Code, &p.Name, &p.RegionCode)
		})
	if err != nil {
		return Dataset{}, fmt.Errorf("loading provinces: %w", err)
	}

	d.Cities, err = queryAll(ctx, s.db, `SELECT code, name, province_code, COALESCE(postal_code, '') FROM gazetteer_cities ORDER BY position`,
		func(row pgx.Rows) (City, error) {
			var c City
			return c, row.Scan(&c.Code, &c.Name, &c.ProvinceCode, &c.PostalCode)
		})
	if err != nil {
		return Dataset{}, fmt.Errorf("loading cities: %w", err)
	}

	d.Barangays, err = queryAll(ctx, s.db, `SELECT code, name, city_code FROM gazetteer_barangays ORDER BY position`,
		func(row pgx.Rows) (Barangay, error) {
			var b Barangay
			return b, row.Scan(&b.Code, &b.Name, &b.CityCode)
		})
	if err != nil {
		return Dataset{}, fmt.Errorf("loading barangays: %w", err)
	}
	return d, nil
}

// Replace swaps the stored hierarchy for d inside one transaction.
func (s *Store) Replace(ctx context.Context, d Dataset) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `TRUNCATE gazetteer_barangays, gazetteer_cities, gazetteer_provinces, gazetteer_regions`); err != nil {
		return fmt.Errorf("truncating gazetteer: %w", err)
	}

	copies := []struct {
		table string
		cols  []string
		rows  [][]any
	}{
		{"gazetteer_regions", []string{"code", "name", "position"}, regionRows(d.Regions)},
		{"gazetteer_provinces", []string{"code", "name", "region_code", "position"}, provinceRows(d.Provinces)},
		{"gazetteer_cities", []string{"code", "name", "province_code", "postal_code", "position"}, cityRows(d.Cities)},
		{"gazetteer_barangays", []string{"code", "name", "city_code", "position"}, barangayRows(d.Barangays)},
	}
	for _, c := range copies {
		if _, err := tx.CopyFrom(ctx, pgx.Identifier{c.table}, c.cols, pgx.CopyFromRows(c.rows)); err != nil {
			return fmt.Errorf("copying %s: %w", c.table, err)
		}
	}
	return tx.Commit(ctx)
}

func queryAll[T any](ctx context.Context, db *pgxpool.Pool, sql string, scan func(pgx.Rows) (T, error)) ([]T, error) {
	rows, err := db.Query(ctx, sql)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func regionRows(in []Region) [][]any {
	out := make([][]any, len(in))
	for i, r := range in {
		out[i] = []any{r.Code, r.Name, i}
	}
	return out
}

func provinceRows(in []Province) [][]any {
	out := make([][]any, len(in))
	for i, p := range in {
		out[i] = []any{p.Code, p.Name, p.RegionCode, i}
	}
	return out
}

func cityRows(in []City) [][]any {
	out := make([][]any, len(in))
	for i, c := range in {
		var postal *string
		if c.PostalCode != "" {
			v := c.PostalCode
			postal = &v
		}
		out[i] = []any{c.Code, c.Name, c.ProvinceCode, postal, i}
	}
	return out
}

func barangayRows(in []Barangay) [][]any {
	out := make([][]any, len(in))
	for i, b := range in {
		out[i] = []any{b.Code, b.Name, b.CityCode, i}
	}
	return out
}
