package testfixtures

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
	reservationRepo "github.com/m04kA/SMC-FacilityBooking/internal/infra/storage/reservation"
)

func TestReservationStore_CreateEnforcesExclusion(t *testing.T) {
	ctx := context.Background()
	store := NewReservationStore(nil)
	start := ReferenceTime().Add(24 * time.Hour)

	first := NewReservation(1, 10, start, start.Add(time.Hour))
	first.BookingNumber = "BKG-00000001"
	_, err := store.Create(ctx, first)
	require.NoError(t, err)

	overlapping := NewReservation(1, 11, start.Add(30*time.Minute), start.Add(90*time.Minute))
	overlapping.BookingNumber = "BKG-00000002"
	_, err = store.Create(ctx, overlapping)
	assert.ErrorIs(t, err, reservationRepo.ErrOverlap)

	adjacent := NewReservation(1, 11, start.Add(time.Hour), start.Add(2*time.Hour))
	adjacent.BookingNumber = "BKG-00000001"
	_, err = store.Create(ctx, adjacent)
	assert.ErrorIs(t, err, reservationRepo.ErrDuplicateBookingNumber)

	adjacent.BookingNumber = "BKG-00000003"
	_, err = store.Create(ctx, adjacent)
	require.NoError(t, err)
	assert.Len(t, store.All(), 2)
}

func TestReservationStore_CompleteExpired(t *testing.T) {
	ctx := context.Background()
	store := NewReservationStore(nil)
	now := ReferenceTime()

	store.Seed(
		NewReservation(1, 10, now.Add(-3*time.Hour), now.Add(-2*time.Hour)),
		NewReservation(1, 11, now.Add(-2*time.Hour), now.Add(-time.Hour)),
		NewReservation(1, 10, now.Add(time.Hour), now.Add(2*time.Hour)),
	)

	userID := int64(10)
	completed, err := store.CompleteExpired(ctx, now, &userID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), completed)

	all := store.All()
	assert.Equal(t, domain.StatusCompleted, all[0].Status)
	assert.Equal(t, domain.StatusConfirmed, all[1].Status)
	assert.Equal(t, domain.StatusConfirmed, all[2].Status)
}
