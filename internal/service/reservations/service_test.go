package reservations

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
	"github.com/m04kA/SMC-FacilityBooking/internal/service/reservations/models"
	"github.com/m04kA/SMC-FacilityBooking/internal/testfixtures"
)

type countingMetrics struct {
	mu        sync.Mutex
	cancelled int
	completed int64
}

func (m *countingMetrics) IncReservationCancelled() {
	m.mu.Lock()
	m.cancelled++
	m.mu.Unlock()
}

func (m *countingMetrics) AddReservationsCompleted(n int64) {
	m.mu.Lock()
	m.completed += n
	m.mu.Unlock()
}

type env struct {
	svc     *Service
	store   *testfixtures.ReservationStore
	events  *testfixtures.EventRecorder
	users   *testfixtures.UserDirectory
	metrics *countingMetrics
	clock   *testfixtures.Clock
}

func newEnv(t *testing.T) *env {
	t.Helper()
	clock := testfixtures.NewClock(testfixtures.ReferenceTime())
	e := &env{
		store:   testfixtures.NewReservationStore(clock.Now),
		events:  &testfixtures.EventRecorder{},
		users:   testfixtures.NewUserDirectory(testfixtures.Student(1), testfixtures.Student(2), testfixtures.Admin(9)),
		metrics: &countingMetrics{},
		clock:   clock,
	}
	e.svc = NewService(e.store, e.users, e.events, e.metrics, testfixtures.NewLogger())
	e.svc.timeProvider = clock
	return e
}

func (e *env) seed(userID int64, start time.Time, hours int, status domain.ReservationStatus) *domain.Reservation {
	r := testfixtures.NewReservation(100, userID, start, start.Add(time.Duration(hours)*time.Hour))
	r.Status = status
	return e.store.Seed(r)[0]
}

func TestCancel_Idempotent(t *testing.T) {
	e := newEnv(t)
	r := e.seed(1, e.clock.Now().Add(2*time.Hour), 1, domain.StatusConfirmed)

	require.NoError(t, e.svc.Cancel(context.Background(), r.ID))
	require.NoError(t, e.svc.Cancel(context.Background(), r.ID))

	stored, err := e.store.GetByID(context.Background(), r.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, stored.Status)
	assert.Len(t, e.events.Cancelled, 1)
	assert.Equal(t, 1, e.metrics.cancelled)
}

func TestCancel_StaleReadEmitsOnce(t *testing.T) {
	e := newEnv(t)
	r := e.seed(1, e.clock.Now().Add(2*time.Hour), 1, domain.StatusConfirmed)

	// оба вызова видели confirmed до обновления
	first, err := e.store.GetByID(context.Background(), r.ID)
	require.NoError(t, err)
	second, err := e.store.GetByID(context.Background(), r.ID)
	require.NoError(t, err)

	require.NoError(t, e.svc.cancel(context.Background(), first))
	require.NoError(t, e.svc.cancel(context.Background(), second))

	assert.Len(t, e.events.Cancelled, 1)
	assert.Equal(t, 1, e.metrics.cancelled)
}

func TestCancel_ConcurrentCallsEmitOnce(t *testing.T) {
	e := newEnv(t)
	r := e.seed(1, e.clock.Now().Add(2*time.Hour), 1, domain.StatusConfirmed)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, e.svc.Cancel(context.Background(), r.ID))
		}()
	}
	wg.Wait()

	assert.Len(t, e.events.Cancelled, 1)
	assert.Equal(t, 1, e.metrics.cancelled)
}

func TestCancel_CompletedReservation(t *testing.T) {
	e := newEnv(t)
	r := e.seed(1, e.clock.Now().Add(-3*time.Hour), 1, domain.StatusCompleted)

	require.NoError(t, e.svc.Cancel(context.Background(), r.ID))

	stored, err := e.store.GetByID(context.Background(), r.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, stored.Status)
	assert.Len(t, e.events.Cancelled, 1)
}

func TestCancel_NotFound(t *testing.T) {
	e := newEnv(t)

	err := e.svc.Cancel(context.Background(), 404)

	assert.ErrorIs(t, err, ErrReservationNotFound)
	assert.Empty(t, e.events.Cancelled)
}

func TestCancel_StoreFailure(t *testing.T) {
	e := newEnv(t)
	e.store.Err = errors.New("connection reset")

	err := e.svc.Cancel(context.Background(), 1)

	assert.ErrorIs(t, err, ErrInternal)
}

func TestCancel_PublishFailureIsNotFatal(t *testing.T) {
	e := newEnv(t)
	e.events.Err = errors.New("broker down")
	r := e.seed(1, e.clock.Now().Add(2*time.Hour), 1, domain.StatusConfirmed)

	require.NoError(t, e.svc.Cancel(context.Background(), r.ID))

	stored, _ := e.store.GetByID(context.Background(), r.ID)
	assert.Equal(t, domain.StatusCancelled, stored.Status)
}

func TestCancelByRequester_Access(t *testing.T) {
	tests := []struct {
		name        string
		requesterID int64
		wantErr     error
	}{
		{name: "owner", requesterID: 1},
		{name: "admin", requesterID: 9},
		{name: "other student", requesterID: 2, wantErr: ErrAccessDenied},
		{name: "unknown user", requesterID: 77, wantErr: ErrUserNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv(t)
			r := e.seed(1, e.clock.Now().Add(2*time.Hour), 1, domain.StatusConfirmed)

			err := e.svc.CancelByRequester(context.Background(), r.ID, tt.requesterID)

			stored, _ := e.store.GetByID(context.Background(), r.ID)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, domain.StatusConfirmed, stored.Status)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, domain.StatusCancelled, stored.Status)
		})
	}
}

func TestCancelByRequester_UserServiceDown(t *testing.T) {
	e := newEnv(t)
	r := e.seed(1, e.clock.Now().Add(2*time.Hour), 1, domain.StatusConfirmed)
	e.users.Err = errors.New("timeout")

	err := e.svc.CancelByRequester(context.Background(), r.ID, 9)

	assert.ErrorIs(t, err, ErrUserServiceUnavailable)
}

func TestGetByID(t *testing.T) {
	e := newEnv(t)
	r := e.seed(1, e.clock.Now().Add(2*time.Hour), 1, domain.StatusConfirmed)

	resp, err := e.svc.GetByID(context.Background(), r.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, r.BookingNumber, resp.BookingNumber)
	assert.Equal(t, 60, resp.DurationMinutes)
	assert.Equal(t, "confirmed", resp.Status)

	_, err = e.svc.GetByID(context.Background(), r.ID, 2)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = e.svc.GetByID(context.Background(), r.ID, 9)
	assert.NoError(t, err)
}

func TestGetUserReservations_CompletesExpired(t *testing.T) {
	e := newEnv(t)
	now := e.clock.Now()
	past := e.seed(1, now.Add(-3*time.Hour), 1, domain.StatusConfirmed)
	future := e.seed(1, now.Add(3*time.Hour), 1, domain.StatusConfirmed)
	otherUser := e.seed(2, now.Add(-3*time.Hour), 1, domain.StatusConfirmed)

	resp, err := e.svc.GetUserReservations(context.Background(), &models.GetUserReservationsRequest{UserID: 1, RequesterID: 1})
	require.NoError(t, err)
	require.Len(t, resp.Reservations, 2)

	statuses := map[int64]string{}
	for _, r := range resp.Reservations {
		statuses[r.ID] = r.Status
	}
	assert.Equal(t, "completed", statuses[past.ID])
	assert.Equal(t, "confirmed", statuses[future.ID])
	assert.Equal(t, int64(1), e.metrics.completed)

	stored, _ := e.store.GetByID(context.Background(), otherUser.ID)
	assert.Equal(t, domain.StatusConfirmed, stored.Status)
}

func TestGetUserReservations_StatusFilter(t *testing.T) {
	e := newEnv(t)
	now := e.clock.Now()
	e.seed(1, now.Add(3*time.Hour), 1, domain.StatusConfirmed)
	e.seed(1, now.Add(5*time.Hour), 1, domain.StatusCancelled)

	status := "cancelled"
	resp, err := e.svc.GetUserReservations(context.Background(), &models.GetUserReservationsRequest{UserID: 1, RequesterID: 1, Status: &status})
	require.NoError(t, err)
	require.Len(t, resp.Reservations, 1)
	assert.Equal(t, "cancelled", resp.Reservations[0].Status)

	bad := "done"
	_, err = e.svc.GetUserReservations(context.Background(), &models.GetUserReservationsRequest{UserID: 1, RequesterID: 1, Status: &bad})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetUserReservations_Period(t *testing.T) {
	e := newEnv(t)
	now := e.clock.Now()
	early := e.seed(1, now.Add(2*time.Hour), 1, domain.StatusConfirmed)
	late := e.seed(1, now.Add(26*time.Hour), 1, domain.StatusConfirmed)
	e.seed(2, now.Add(26*time.Hour), 1, domain.StatusConfirmed)

	from := now.Add(24 * time.Hour)
	resp, err := e.svc.GetUserReservations(context.Background(), &models.GetUserReservationsRequest{UserID: 1, RequesterID: 1, From: &from})
	require.NoError(t, err)
	require.Len(t, resp.Reservations, 1)
	assert.Equal(t, late.ID, resp.Reservations[0].ID)

	to := now.Add(4 * time.Hour)
	resp, err = e.svc.GetUserReservations(context.Background(), &models.GetUserReservationsRequest{UserID: 1, RequesterID: 1, To: &to})
	require.NoError(t, err)
	require.Len(t, resp.Reservations, 1)
	assert.Equal(t, early.ID, resp.Reservations[0].ID)

	_, err = e.svc.GetUserReservations(context.Background(), &models.GetUserReservationsRequest{UserID: 1, RequesterID: 1, From: &from, To: &to})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetUserReservations_OtherUserRequiresAdmin(t *testing.T) {
	e := newEnv(t)

	_, err := e.svc.GetUserReservations(context.Background(), &models.GetUserReservationsRequest{UserID: 1, RequesterID: 2})
	assert.ErrorIs(t, err, ErrAccessDenied)

	resp, err := e.svc.GetUserReservations(context.Background(), &models.GetUserReservationsRequest{UserID: 1, RequesterID: 9})
	require.NoError(t, err)
	assert.Empty(t, resp.Reservations)
}

func TestList(t *testing.T) {
	e := newEnv(t)
	now := e.clock.Now()
	e.seed(1, now.Add(3*time.Hour), 1, domain.StatusConfirmed)
	e.seed(2, now.Add(5*time.Hour), 1, domain.StatusCancelled)

	_, err := e.svc.List(context.Background(), &models.ListReservationsRequest{RequesterID: 1})
	assert.ErrorIs(t, err, ErrAccessDenied)

	resp, err := e.svc.List(context.Background(), &models.ListReservationsRequest{
		RequesterID: 9,
		Statuses:    []string{"confirmed", "pending_approval"},
	})
	require.NoError(t, err)
	require.Len(t, resp.Reservations, 1)
	assert.Equal(t, int64(1), resp.Reservations[0].UserID)

	from := now.Add(4 * time.Hour)
	resp, err = e.svc.List(context.Background(), &models.ListReservationsRequest{RequesterID: 9, From: &from})
	require.NoError(t, err)
	require.Len(t, resp.Reservations, 1)
	assert.Equal(t, int64(2), resp.Reservations[0].UserID)

	_, err = e.svc.List(context.Background(), &models.ListReservationsRequest{RequesterID: 9, Statuses: []string{"archived"}})
	assert.ErrorIs(t, err, ErrInvalidInput)

	to := from.Add(-time.Hour)
	_, err = e.svc.List(context.Background(), &models.ListReservationsRequest{RequesterID: 9, From: &from, To: &to})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
