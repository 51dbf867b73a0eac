// README: Shipment store backed by PostgreSQL (goqu builds the dynamic queries).
package shipment

import (
	"context"
	"errors"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"porter/internal/types"
)

const uniqueViolation = "23505"

var dialect = goqu.Dialect("postgres")

var columns = []any{
	"id", "owner_id", "courier_id", "status",
	"first_name", "middle_name", "last_name", "suffix", "flight_number", "contact_number",
	"luggage_quantity", "luggage_descriptions",
	"pickup_terminal", "pickup_bay", "pickup_lat", "pickup_lng",
	"dropoff_location", "dropoff_lat", "dropoff_lng",
	"region", "province", "city", "barangay", "postal_code", "address_line1", "address_line2",
	"current_lat", "current_lng",
	"currency", "delivery_charge", "delivery_surcharge",
	"created_at", "accepted_at", "pickup_at", "delivered_at", "cancelled_at",
}

// statusTimestamps names the column stamped when a shipment enters a status.
var statusTimestamps = map[Status]string{
	StatusAccepted:  "accepted_at",
	StatusInTransit: "pickup_at",
	StatusDelivered: "delivered_at",
	StatusCancelled: "cancelled_at",
}

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

func (s *Store) Insert(ctx context.Context, sh *Shipment) error {
	pickupLat, pickupLng := splitPoint(sh.Pickup)
	dropoffLat, dropoffLng := splitPoint(sh.Dropoff)
	currentLat, currentLng := splitPoint(sh.CurrentLocation)

	_, err := s.db.Exec(ctx, `
		INSERT INTO shipments (
			id, owner_id, courier_id, status,
			first_name, middle_name, last_name, suffix, flight_number, contact_number,
			luggage_quantity, luggage_descriptions,
			pickup_terminal, pickup_bay, pickup_lat, pickup_lng,
			dropoff_location, dropoff_lat, dropoff_lng,
			region, province, city, barangay, postal_code, address_line1, address_line2,
			current_lat, current_lng,
			currency, delivery_charge, delivery_surcharge, created_at
		) VALUES (
			$1, $2, $3, $4,
			$5, $6, $7, $8, $9, $10,
			$11, $12,
			$13, $14, $15, $16,
			$17, $18, $19,
			$20, $21, $22, $23, $24, $25, $26,
			$27, $28,
			$29, $30, $31, $32
		)`,
		string(sh.ID), string(sh.OwnerID), idPtr(sh.CourierID), string(sh.Status),
		sh.FirstName, sh.MiddleName, sh.LastName, sh.Suffix, sh.FlightNumber, sh.ContactNumber,
		sh.LuggageQuantity, sh.LuggageDescriptions,
		sh.PickupTerminal, sh.PickupBay, pickupLat, pickupLng,
		sh.DropoffLocation, dropoffLat, dropoffLng,
		sh.Region, sh.Province, sh.City, sh.Barangay, sh.PostalCode, sh.AddressLine1, sh.AddressLine2,
		currentLat, currentLng,
		sh.DeliveryCharge.Currency, sh.DeliveryCharge.Amount, sh.DeliverySurcharge.Amount, sh.CreatedAt,
	)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return ErrDuplicateID
	}
	return err
}

func (s *Store) Get(ctx context.Context, id types.ID) (*Shipment, error) {
	query, args, err := dialect.From("shipments").Prepared(true).
		Select(columns...).
		Where(goqu.C("id").Eq(string(id))).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build get: %w", err)
	}
	sh, err := scanShipment(s.db.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return sh, nil
}

func (s *Store) ListByOwner(ctx context.Context, ownerID types.ID) ([]Shipment, error) {
	query, args, err := dialect.From("shipments").Prepared(true).
		Select(columns...).
		Where(goqu.C("owner_id").Eq(string(ownerID))).
		Order(goqu.C("created_at").Desc(), goqu.C("id").Asc()).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list: %w", err)
	}
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Shipment
	for rows.Next() {
		sh, err := scanShipment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *sh)
	}
	return out, rows.Err()
}

// Update writes the non-nil fields of p.
func (s *Store) Update(ctx context.Context, id types.ID, p Patch) error {
	rec := patchRecord(p)
	if len(rec) == 0 {
		_, err := s.Get(ctx, id)
		return err
	}
	query, args, err := dialect.Update("shipments").Prepared(true).
		Set(rec).
		Where(goqu.C("id").Eq(string(id))).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}
	tag, err := s.db.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Transition moves the shipment from one status to another only if it is
// still in from, stamping the matching timestamp column. It reports false
// when another writer got there first.
func (s *Store) Transition(ctx context.Context, id types.ID, from, to Status, p Patch) (bool, error) {
	p.Status = &to
	rec := patchRecord(p)
	if col, ok := statusTimestamps[to]; ok {
		rec[col] = goqu.L("NOW()")
	}
	query, args, err := dialect.Update("shipments").Prepared(true).
		Set(rec).
		Where(goqu.C("id").Eq(string(id)), goqu.C("status").Eq(string(from))).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build transition: %w", err)
	}
	tag, err := s.db.Exec(ctx, query, args...)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func patchRecord(p Patch) goqu.Record {
	rec := goqu.Record{}
	if p.Status != nil {
		rec["status"] = string(*p.Status)
	}
	if p.ClearCourier {
		rec["courier_id"] = nil
	}
	if p.CourierID != nil {
		rec["courier_id"] = string(*p.CourierID)
	}
	if p.CurrentLocation != nil {
		rec["current_lat"] = p.CurrentLocation.Lat
		rec["current_lng"] = p.CurrentLocation.Lng
	}
	if p.ClearAccepted {
		rec["accepted_at"] = nil
	}
	if p.AcceptedAt != nil {
		rec["accepted_at"] = *p.AcceptedAt
	}
	if p.PickupAt != nil {
		rec["pickup_at"] = *p.PickupAt
	}
	if p.DeliveredAt != nil {
		rec["delivered_at"] = *p.DeliveredAt
	}
	if p.CancelledAt != nil {
		rec["cancelled_at"] = *p.CancelledAt
	}
	return rec
}

func scanShipment(row pgx.Row) (*Shipment, error) {
	var sh Shipment
	var courierID *string
	var pickupLat, pickupLng, dropoffLat, dropoffLng, currentLat, currentLng *float64
	var currency string
	err := row.Scan(
		&sh.ID, &sh.OwnerID, &courierID, &sh.Status,
		&sh.FirstName, &sh.MiddleName, &sh.LastName, &sh.Suffix, &sh.FlightNumber, &sh.ContactNumber,
		&sh.LuggageQuantity, &sh.LuggageDescriptions,
		&sh.PickupTerminal, &sh.PickupBay, &pickupLat, &pickupLng,
		&sh.DropoffLocation, &dropoffLat, &dropoffLng,
		&sh.Region, &sh.Province, &sh.City, &sh.Barangay, &sh.PostalCode, &sh.AddressLine1, &sh.AddressLine2,
		&currentLat, &currentLng,
		&currency, &sh.DeliveryCharge.Amount, &sh.DeliverySurcharge.Amount,
		&sh.CreatedAt, &sh.AcceptedAt, &sh.PickupAt, &sh.DeliveredAt, &sh.CancelledAt,
	)
	if err != nil {
		return nil, err
	}
	if courierID != nil {
		c := types.ID(*courierID)
		sh.CourierID = &c
	}
	sh.Pickup = joinPoint(pickupLat, pickupLng)
	sh.Dropoff = joinPoint(dropoffLat, dropoffLng)
	sh.CurrentLocation = joinPoint(currentLat, currentLng)
	if currency == "" {
		currency = types.DefaultCurrency
	}
	sh.DeliveryCharge.Currency = currency
	sh.DeliverySurcharge.Currency = currency
	return &sh, nil
}

func splitPoint(p *types.Point) (lat, lng *float64) {
	if p == nil {
		return nil, nil
	}
	la, ln := p.Lat, p.Lng
	return &la, &ln
}

func joinPoint(lat, lng *float64) *types.Point {
	if lat == nil || lng == nil {
		return nil
	}
	return &types.Point{Lat: *lat, Lng: *lng}
}

func idPtr(id *types.ID) *string {
	if id == nil {
		return nil
	}
	v := string(*id)
	return &v
}
