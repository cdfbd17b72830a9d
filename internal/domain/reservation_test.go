package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(hour, minute int) time.Time {
	return time.Date(2026, 10, 18, hour, minute, 0, 0, time.UTC)
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name       string
		aStart     time.Time
		aEnd       time.Time
		bStart     time.Time
		bEnd       time.Time
		wantResult bool
	}{
		{name: "partial overlap", aStart: at(11, 30), aEnd: at(12, 0), bStart: at(11, 20), bEnd: at(11, 40), wantResult: true},
		{name: "touching before", aStart: at(11, 30), aEnd: at(12, 0), bStart: at(11, 0), bEnd: at(11, 30), wantResult: false},
		{name: "touching after", aStart: at(11, 30), aEnd: at(12, 0), bStart: at(12, 0), bEnd: at(12, 30), wantResult: false},
		{name: "containment", aStart: at(10, 0), aEnd: at(16, 0), bStart: at(14, 0), bEnd: at(15, 0), wantResult: true},
		{name: "identical", aStart: at(14, 0), aEnd: at(15, 0), bStart: at(14, 0), bEnd: at(15, 0), wantResult: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantResult, Overlaps(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd))
			assert.Equal(t, tt.wantResult, Overlaps(tt.bStart, tt.bEnd, tt.aStart, tt.aEnd))
		})
	}
}

func TestReservation_IsExpired(t *testing.T) {
	r := &Reservation{StartTime: at(9, 0), EndTime: at(10, 0), Status: StatusConfirmed}

	assert.True(t, r.IsExpired(at(10, 1)))
	assert.False(t, r.IsExpired(at(10, 0)))

	r.Status = StatusCancelled
	assert.False(t, r.IsExpired(at(12, 0)))
}

func TestParseReservationStatus(t *testing.T) {
	status, err := ParseReservationStatus("pending_approval")
	require.NoError(t, err)
	assert.Equal(t, StatusPendingApproval, status)
	assert.True(t, status.IsActive())

	_, err = ParseReservationStatus("Confirmed")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestFacility_IsEligible(t *testing.T) {
	f := &Facility{EligibilityRole: RoleFaculty}
	assert.True(t, f.IsEligible(RoleFaculty))
	assert.False(t, f.IsEligible(RoleStudent))

	f.EligibilityRole = RoleAny
	assert.True(t, f.IsEligible(RoleStudent))
}

func TestFacility_OperatingHours(t *testing.T) {
	f := &Facility{}
	open, closeAt := f.OperatingHours()

	assert.Equal(t, "08:00", open.String())
	assert.Equal(t, "22:00", closeAt.String())
}

func TestBookingRule_AppliesTo(t *testing.T) {
	rule := &BookingRule{MaxConcurrentBookingsPerUser: 1, AppliesToRoles: []Role{RoleStudent}}

	assert.True(t, rule.HasConcurrencyLimit())
	assert.True(t, rule.AppliesTo(RoleStudent))
	assert.False(t, rule.AppliesTo(RoleFaculty))
	assert.False(t, DefaultBookingRule(FacilityTypeLab).HasConcurrencyLimit())
}
