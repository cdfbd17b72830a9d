package domain

// BookingRule is the booking policy for one facility type
type BookingRule struct {
	ID                           int64
	FacilityType                 FacilityType
	MaxDurationMinutes           int
	MinAdvanceHours              int
	MaxConcurrentBookingsPerUser int // 0 = unlimited
	CanRecur                     bool
	AppliesToRoles               []Role
}

// DefaultBookingRule returns the policy used when no rule row exists for the type
func DefaultBookingRule(facilityType FacilityType) *BookingRule {
	return &BookingRule{
		FacilityType:                 facilityType,
		MaxDurationMinutes:           DefaultMaxDurationMinutes,
		MinAdvanceHours:              DefaultMinAdvanceHours,
		MaxConcurrentBookingsPerUser: DefaultMaxConcurrentBookings,
	}
}

// HasConcurrencyLimit returns true if active bookings per user are capped
func (r *BookingRule) HasConcurrencyLimit() bool {
	return r.MaxConcurrentBookingsPerUser > 0
}

// AppliesTo returns true if the concurrency cap applies to the role
func (r *BookingRule) AppliesTo(role Role) bool {
	for _, applies := range r.AppliesToRoles {
		if applies == role {
			return true
		}
	}
	return false
}
