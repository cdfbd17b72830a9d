package completion

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
	"github.com/m04kA/SMC-FacilityBooking/internal/testfixtures"
)

type counter struct {
	mu    sync.Mutex
	total int64
}

func (c *counter) AddReservationsCompleted(n int64) {
	c.mu.Lock()
	c.total += n
	c.mu.Unlock()
}

func (c *counter) value() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.total
}

func TestRunOnce(t *testing.T) {
	clock := testfixtures.NewClock(testfixtures.ReferenceTime())
	store := testfixtures.NewReservationStore(clock.Now)
	now := clock.Now()

	expired := store.Seed(
		testfixtures.NewReservation(1, 1, now.Add(-3*time.Hour), now.Add(-2*time.Hour)),
		testfixtures.NewReservation(1, 2, now.Add(-2*time.Hour), now.Add(-time.Hour)),
	)
	running := store.Seed(testfixtures.NewReservation(1, 3, now.Add(-30*time.Minute), now.Add(30*time.Minute)))[0]
	cancelled := testfixtures.NewReservation(2, 1, now.Add(-3*time.Hour), now.Add(-2*time.Hour))
	cancelled.Status = domain.StatusCancelled
	store.Seed(cancelled)

	metrics := &counter{}
	s := NewSweeper(store, metrics, time.Minute, testfixtures.NewLogger())
	s.timeProvider = clock

	assert.Equal(t, int64(2), s.RunOnce(context.Background()))
	assert.Equal(t, int64(2), metrics.value())

	for _, r := range expired {
		stored, err := store.GetByID(context.Background(), r.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusCompleted, stored.Status)
	}
	stored, _ := store.GetByID(context.Background(), running.ID)
	assert.Equal(t, domain.StatusConfirmed, stored.Status)
	stored, _ = store.GetByID(context.Background(), cancelled.ID)
	assert.Equal(t, domain.StatusCancelled, stored.Status)

	assert.Equal(t, int64(0), s.RunOnce(context.Background()))
}

func TestRunOnce_StoreError(t *testing.T) {
	store := testfixtures.NewReservationStore(nil)
	store.Err = errors.New("connection refused")
	log := testfixtures.NewLogger()
	s := NewSweeper(store, &counter{}, time.Minute, log)

	assert.Equal(t, int64(0), s.RunOnce(context.Background()))
	assert.NotEmpty(t, log.Entries())
}

func TestRun_StopsOnCancel(t *testing.T) {
	store := testfixtures.NewReservationStore(nil)
	s := NewSweeper(store, &counter{}, 10*time.Millisecond, testfixtures.NewLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool { return store.Calls() >= 2 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop")
	}
}

func TestRun_DisabledInterval(t *testing.T) {
	store := testfixtures.NewReservationStore(nil)
	s := NewSweeper(store, &counter{}, 0, testfixtures.NewLogger())

	s.Run(context.Background())

	assert.Equal(t, 0, store.Calls())
}
