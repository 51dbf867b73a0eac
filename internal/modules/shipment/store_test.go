package shipment

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"porter/internal/infra"
	"porter/internal/types"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dsn := os.Getenv("PORTER_DB_DSN")
	if dsn == "" {
		t.Skip("PORTER_DB_DSN not set; skipping integration test")
	}
	require.NoError(t, infra.Migrate(dsn, "../../../migrations", zap.NewNop()))
	pool, err := pgxpool.New(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return NewStore(pool)
}

func testShipment(id types.ID) *Shipment {
	return &Shipment{
		ID:                  id,
		OwnerID:             "owner-it",
		Status:              StatusAvailable,
		FirstName:           "Maria",
		LastName:            "Santos",
		FlightNumber:        "PR 102",
		ContactNumber:       "+63 917 123 4567",
		LuggageQuantity:     2,
		LuggageDescriptions: []string{"Black suitcase", "Blue duffel"},
		PickupTerminal:      "Terminal 3",
		PickupBay:           "Bay 4",
		Pickup:              &types.Point{Lat: 14.5208, Lng: 121.0194},
		DropoffLocation:     "Bel-Air, Makati",
		Dropoff:             &types.Point{Lat: 14.5614, Lng: 121.0296},
		Region:              "NCR",
		Province:            "Metro Manila",
		City:                "Makati",
		Barangay:            "Bel-Air",
		PostalCode:          "1209",
		AddressLine1:        "12 Jupiter St.",
		DeliveryCharge:      types.PHP(350),
		DeliverySurcharge:   types.PHP(0),
		CreatedAt:           time.Now().UTC().Truncate(time.Millisecond),
	}
}

func TestStore_RoundTripAndTransitions(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	id := types.ID(fmt.Sprintf("IT%d", time.Now().UnixNano()))
	t.Cleanup(func() { _, _ = store.db.Exec(context.Background(), `DELETE FROM shipments WHERE id = $1`, string(id)) })

	require.NoError(t, store.Insert(ctx, testShipment(id)))
	assert.ErrorIs(t, store.Insert(ctx, testShipment(id)), ErrDuplicateID)

	got, err := store.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []string{"Black suitcase", "Blue duffel"}, got.LuggageDescriptions)
	assert.Equal(t, types.PHP(350), got.DeliveryCharge)
	assert.Nil(t, got.CurrentLocation)
	assert.Nil(t, got.CourierID)

	courier := types.ID("courier-it")
	ok, err := store.Transition(ctx, id, StatusAvailable, StatusAccepted, Patch{CourierID: &courier})
	require.NoError(t, err)
	require.True(t, ok)
	ok, err = store.Transition(ctx, id, StatusAvailable, StatusAccepted, Patch{CourierID: &courier})
	require.NoError(t, err)
	assert.False(t, ok, "stale from status loses")

	loc := types.Point{Lat: 14.55, Lng: 121.02}
	require.NoError(t, store.Update(ctx, id, Patch{CurrentLocation: &loc}))

	got, err = store.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, StatusAccepted, got.Status)
	require.NotNil(t, got.CourierID)
	assert.Equal(t, courier, *got.CourierID)
	assert.NotNil(t, got.AcceptedAt)
	assert.Equal(t, &loc, got.CurrentLocation)

	ok, err = store.Transition(ctx, id, StatusAccepted, StatusAvailable, Patch{ClearCourier: true, ClearAccepted: true})
	require.NoError(t, err)
	require.True(t, ok)
	got, err = store.Get(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, got.CourierID)
	assert.Nil(t, got.AcceptedAt)

	list, err := store.ListByOwner(ctx, "owner-it")
	require.NoError(t, err)
	assert.NotEmpty(t, list)

	_, err = store.Get(ctx, "NOPE")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, store.Update(ctx, "NOPE", Patch{CurrentLocation: &loc}), ErrNotFound)
}
