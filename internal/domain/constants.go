package domain

import "github.com/m04kA/SMC-FacilityBooking/pkg/types"

// Default engine values
const (
	DefaultSlotMinutes           = 30
	DefaultMaxDurationMinutes    = 180
	DefaultMinAdvanceHours       = 0
	DefaultMaxConcurrentBookings = 0 // 0 = unlimited
)

// Default operating window applied to facilities without explicit hours
var (
	DefaultOpenTime  = types.MustTimeString("08:00")
	DefaultCloseTime = types.MustTimeString("22:00")
)

// Booking rule validation bounds
const (
	MinRuleDurationMinutes      = 1
	MaxRuleDurationMinutes      = 1440 // 24 hours
	MinRuleAdvanceHours         = 0
	MaxRuleAdvanceHours         = 720 // 30 days
	MinRuleConcurrentBookings   = 0
	MaxRuleConcurrentBookings   = 100
	MaxPurposeLength            = 500
	BookingNumberPrefix         = "BKG-"
	BookingNumberSuffixLength   = 8
	DefaultBookingNumberRetries = 5
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses statuses that hold a claim on a facility
// Used by availability queries and the commit-time conflict check
var ActiveStatuses = []ReservationStatus{
	StatusConfirmed,
	StatusPendingApproval,
}

// ConcurrencyStatuses statuses counted against the per-user concurrency cap
var ConcurrencyStatuses = []ReservationStatus{
	StatusConfirmed,
}
