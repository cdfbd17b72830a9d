package testfixtures

import (
	"sync/atomic"
	"time"

	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
	"github.com/m04kA/SMC-FacilityBooking/pkg/types"
)

var facilityCounter int64

// FacilityOption configures a generated facility.
type FacilityOption func(*domain.Facility)

// NewFacility returns a bookable study room open 08:00-22:00 with optional overrides.
func NewFacility(opts ...FacilityOption) *domain.Facility {
	id := atomic.AddInt64(&facilityCounter, 1)
	f := &domain.Facility{
		ID:              id,
		BuildingID:      1,
		BuildingName:    "Main Library",
		Name:            "Study Room",
		Type:            domain.FacilityTypeStudyRoom,
		Capacity:        6,
		IsBookable:      true,
		EligibilityRole: domain.RoleAny,
		OpenTime:        types.MustTimeString("08:00"),
		CloseTime:       types.MustTimeString("22:00"),
		CreatedAt:       referenceTime,
		UpdatedAt:       referenceTime,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// WithFacilityType overrides the facility type.
func WithFacilityType(t domain.FacilityType) FacilityOption {
	return func(f *domain.Facility) { f.Type = t }
}

// WithEligibility restricts the facility to a role.
func WithEligibility(role domain.Role) FacilityOption {
	return func(f *domain.Facility) { f.EligibilityRole = role }
}

// WithBookable toggles the bookable flag.
func WithBookable(bookable bool) FacilityOption {
	return func(f *domain.Facility) { f.IsBookable = bookable }
}

// WithHours overrides the operating window.
func WithHours(open, closeAt string) FacilityOption {
	return func(f *domain.Facility) {
		f.OpenTime = types.MustTimeString(open)
		f.CloseTime = types.MustTimeString(closeAt)
	}
}

// NewReservation returns a confirmed reservation for the interval.
func NewReservation(facilityID, userID int64, start, end time.Time) *domain.Reservation {
	return &domain.Reservation{
		FacilityID: facilityID,
		UserID:     userID,
		StartTime:  start,
		EndTime:    end,
		Status:     domain.StatusConfirmed,
	}
}

// Student returns an active student.
func Student(id int64) *domain.User {
	return &domain.User{ID: id, Role: domain.RoleStudent, IsActive: true}
}

// Faculty returns an active faculty member.
func Faculty(id int64) *domain.User {
	return &domain.User{ID: id, Role: domain.RoleFaculty, IsActive: true}
}

// Admin returns an active administrator.
func Admin(id int64) *domain.User {
	return &domain.User{ID: id, Role: domain.RoleAdmin, IsActive: true}
}
