package get_availability

import (
	"context"
	"errors"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
	"github.com/m04kA/SMC-FacilityBooking/internal/testfixtures"
)

type env struct {
	uc           *UseCase
	clock        *testfixtures.Clock
	facilities   *testfixtures.FacilityStore
	reservations *testfixtures.ReservationStore
}

func newEnv(t *testing.T, slotMinutes int, facilities ...*domain.Facility) *env {
	t.Helper()
	clock := testfixtures.NewClock(time.Time{})
	e := &env{
		clock:        clock,
		facilities:   testfixtures.NewFacilityStore(facilities...),
		reservations: testfixtures.NewReservationStore(clock.Now),
	}
	e.uc = NewUseCase(e.facilities, e.reservations, time.UTC, slotMinutes, testfixtures.NewLogger())
	e.uc.timeProvider = clock
	return e
}

func day(offset int) time.Time {
	ref := testfixtures.ReferenceTime()
	return time.Date(ref.Year(), ref.Month(), ref.Day()+offset, 0, 0, 0, 0, time.UTC)
}

func TestExecute_PartitionCoversWindow(t *testing.T) {
	facility := testfixtures.NewFacility(testfixtures.WithHours("08:00", "22:00"))
	e := newEnv(t, 30, facility)

	resp, err := e.uc.Execute(context.Background(), &Request{FacilityID: facility.ID, Date: day(1)})
	require.NoError(t, err)

	require.Len(t, resp.Slots, 28)
	assert.Equal(t, day(1).Add(8*time.Hour), resp.Slots[0].Start)
	assert.Equal(t, day(1).Add(22*time.Hour), resp.Slots[len(resp.Slots)-1].End)
	for i := 1; i < len(resp.Slots); i++ {
		assert.Equal(t, resp.Slots[i-1].End, resp.Slots[i].Start, "slot %d is not contiguous", i)
	}
	for _, slot := range resp.Slots {
		assert.True(t, slot.IsFree())
	}
}

func TestExecute_TruncatesTrailingSlot(t *testing.T) {
	facility := testfixtures.NewFacility(testfixtures.WithHours("08:00", "09:45"))
	e := newEnv(t, 30, facility)

	resp, err := e.uc.Execute(context.Background(), &Request{FacilityID: facility.ID, Date: day(1)})
	require.NoError(t, err)

	require.Len(t, resp.Slots, 4)
	last := resp.Slots[3]
	assert.Equal(t, day(1).Add(9*time.Hour+30*time.Minute), last.Start)
	assert.Equal(t, day(1).Add(9*time.Hour+45*time.Minute), last.End)
	assert.Equal(t, 15, last.DurationMinutes())
}

func TestExecute_MarksOverlapsAndBoundaries(t *testing.T) {
	facility := testfixtures.NewFacility(testfixtures.WithHours("11:00", "13:00"))
	e := newEnv(t, 30, facility)
	d := day(1)

	e.reservations.Seed(
		// 11:20-11:40 overlaps 11:00-11:30 and 11:30-12:00
		testfixtures.NewReservation(facility.ID, 1, d.Add(11*time.Hour+20*time.Minute), d.Add(11*time.Hour+40*time.Minute)),
		// 12:30-13:00 touches 12:00-12:30 only at the boundary
		testfixtures.NewReservation(facility.ID, 2, d.Add(12*time.Hour+30*time.Minute), d.Add(13*time.Hour)),
	)
	cancelled := testfixtures.NewReservation(facility.ID, 3, d.Add(12*time.Hour), d.Add(12*time.Hour+30*time.Minute))
	cancelled.Status = domain.StatusCancelled
	e.reservations.Seed(cancelled)

	resp, err := e.uc.Execute(context.Background(), &Request{FacilityID: facility.ID, Date: d})
	require.NoError(t, err)

	occupied := make([]bool, len(resp.Slots))
	for i, slot := range resp.Slots {
		occupied[i] = slot.Occupied
	}
	assert.Equal(t, []bool{true, true, false, true}, occupied)
}

func TestExecute_PendingApprovalBlocksSlot(t *testing.T) {
	facility := testfixtures.NewFacility(testfixtures.WithHours("10:00", "11:00"))
	e := newEnv(t, 30, facility)
	d := day(2)

	pending := testfixtures.NewReservation(facility.ID, 1, d.Add(10*time.Hour), d.Add(10*time.Hour+30*time.Minute))
	pending.Status = domain.StatusPendingApproval
	e.reservations.Seed(pending)

	resp, err := e.uc.Execute(context.Background(), &Request{FacilityID: facility.ID, Date: d})
	require.NoError(t, err)

	require.Len(t, resp.Slots, 2)
	assert.True(t, resp.Slots[0].Occupied)
	assert.False(t, resp.Slots[1].Occupied)
}

func TestExecute_PastSlotsAreOccupied(t *testing.T) {
	facility := testfixtures.NewFacility(testfixtures.WithHours("08:00", "12:00"))
	e := newEnv(t, 60, facility)
	// now = 09:00 on the reference day
	today := day(0)

	resp, err := e.uc.Execute(context.Background(), &Request{FacilityID: facility.ID, Date: today})
	require.NoError(t, err)

	require.Len(t, resp.Slots, 4)
	assert.True(t, resp.Slots[0].Occupied, "08:00 already started")
	assert.False(t, resp.Slots[1].Occupied, "09:00 starts exactly now")
	assert.False(t, resp.Slots[2].Occupied)

	resp, err = e.uc.Execute(context.Background(), &Request{FacilityID: facility.ID, Date: day(-1)})
	require.NoError(t, err)
	for _, slot := range resp.Slots {
		assert.True(t, slot.Occupied)
	}
}

func TestExecute_UsesCampusLocation(t *testing.T) {
	facility := testfixtures.NewFacility(testfixtures.WithHours("08:00", "09:00"))
	e := newEnv(t, 30, facility)
	campus := time.FixedZone("campus", 5*60*60)
	e.uc.location = campus

	resp, err := e.uc.Execute(context.Background(), &Request{FacilityID: facility.ID, Date: day(3)})
	require.NoError(t, err)

	require.Len(t, resp.Slots, 2)
	want := time.Date(day(3).Year(), day(3).Month(), day(3).Day(), 8, 0, 0, 0, campus)
	assert.True(t, want.Equal(resp.Slots[0].Start))
}

func TestExecute_DaylightSavingDays(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	for _, date := range []time.Time{
		time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC),
	} {
		t.Run(date.Format(domain.DateFormat), func(t *testing.T) {
			facility := testfixtures.NewFacility(testfixtures.WithHours("08:00", "22:00"))
			e := newEnv(t, 30, facility)
			e.uc.location = loc

			resp, err := e.uc.Execute(context.Background(), &Request{FacilityID: facility.ID, Date: date})
			require.NoError(t, err)

			require.Len(t, resp.Slots, 28)
			first := resp.Slots[0].Start.In(loc)
			last := resp.Slots[len(resp.Slots)-1].End.In(loc)
			assert.Equal(t, 8, first.Hour())
			assert.Equal(t, 22, last.Hour())
			assert.Equal(t, date.Day(), last.Day())
		})
	}
}

func TestExecute_Errors(t *testing.T) {
	facility := testfixtures.NewFacility()
	e := newEnv(t, 30, facility)

	_, err := e.uc.Execute(context.Background(), &Request{FacilityID: 0, Date: day(1)})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = e.uc.Execute(context.Background(), &Request{FacilityID: facility.ID + 1000, Date: day(1)})
	assert.ErrorIs(t, err, ErrFacilityNotFound)

	e.reservations.Err = errors.New("connection refused")
	_, err = e.uc.Execute(context.Background(), &Request{FacilityID: facility.ID, Date: day(1)})
	assert.ErrorIs(t, err, ErrStore)
}

func TestExecute_IsPure(t *testing.T) {
	facility := testfixtures.NewFacility()
	e := newEnv(t, 30, facility)
	req := &Request{FacilityID: facility.ID, Date: day(1)}

	first, err := e.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	second, err := e.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first.Slots, second.Slots)
	assert.Empty(t, e.reservations.All())
}
