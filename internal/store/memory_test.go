package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemoryStoreInsertGet(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	id, err := s.Insert(ctx, ColTours, Row{"name": "Solang"})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	row, err := s.Get(ctx, ColTours, id)
	require.NoError(t, err)
	require.Equal(t, "Solang", row["name"])
	require.EqualValues(t, 1, VersionOf(row))

	_, err = s.Get(ctx, ColTours, "missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreInsertKeepsGivenID(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	id, err := s.Insert(ctx, ColHotels, Row{"id": "hotel-x", "name": "X"})
	require.NoError(t, err)
	require.Equal(t, "hotel-x", id)
}

func TestMemoryStoreSelectFilters(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	_, err := s.Insert(ctx, ColBookings, Row{"type": "tour", "itemId": "t1"})
	require.NoError(t, err)
	_, err = s.Insert(ctx, ColBookings, Row{"type": "hotel", "itemId": "h1"})
	require.NoError(t, err)

	rows, err := s.Select(ctx, ColBookings, Eq("type", "tour"))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "t1", rows[0]["itemId"])

	rows, err = s.Select(ctx, ColBookings, In("itemId", []string{"t1", "h1"}))
	require.NoError(t, err)
	require.Len(t, rows, 2)
}

func TestMemoryStoreUpdateIfConflict(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	id, err := s.Insert(ctx, ColBikeRentals, Row{"availableQty": 4})
	require.NoError(t, err)

	row, err := s.Get(ctx, ColBikeRentals, id)
	require.NoError(t, err)
	version := VersionOf(row)

	// First conditional write wins and bumps the version.
	require.NoError(t, s.UpdateIf(ctx, ColBikeRentals, id, Row{"availableQty": 3}, version))

	// Second writer holding the stale version loses.
	err = s.UpdateIf(ctx, ColBikeRentals, id, Row{"availableQty": 2}, version)
	require.ErrorIs(t, err, ErrVersionConflict)

	row, err = s.Get(ctx, ColBikeRentals, id)
	require.NoError(t, err)
	require.EqualValues(t, 3, row["availableQty"])
	require.EqualValues(t, version+1, VersionOf(row))
}

func TestMemoryStorePatchNeverTouchesReservedKeys(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	id, err := s.Insert(ctx, ColCoupons, Row{"code": "FIRSTTRIP"})
	require.NoError(t, err)

	require.NoError(t, s.Update(ctx, ColCoupons, id, Row{"id": "hijack", "_version": int64(99), "code": "MONSOON5"}))

	row, err := s.Get(ctx, ColCoupons, id)
	require.NoError(t, err)
	require.Equal(t, id, IDOf(row))
	require.EqualValues(t, 2, VersionOf(row))
	require.Equal(t, "MONSOON5", row["code"])
}

func TestMemoryStoreGetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	id, err := s.Insert(ctx, ColSettings, Row{"currency": "INR"})
	require.NoError(t, err)

	row, err := s.Get(ctx, ColSettings, id)
	require.NoError(t, err)
	row["currency"] = "USD"

	again, err := s.Get(ctx, ColSettings, id)
	require.NoError(t, err)
	require.Equal(t, "INR", again["currency"])
}

func TestSeedPopulatesEveryCatalog(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, Seed(ctx, s))

	for _, col := range []string{ColSettings, ColTours, ColHotels, ColRestaurants,
		ColCabProviders, ColBusRoutes, ColBikeRentals, ColServiceAreas, ColCoupons, ColUsers} {
		rows, err := s.Select(ctx, col)
		require.NoError(t, err)
		require.NotEmptyf(t, rows, "collection %s is empty", col)
	}
}
