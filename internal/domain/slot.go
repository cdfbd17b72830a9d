package domain

import "time"

// AvailabilitySlot is a derived half-open interval [Start, End) tagged free or occupied
type AvailabilitySlot struct {
	Start    time.Time
	End      time.Time
	Occupied bool
}

// IsFree returns true if the slot can be booked
func (s *AvailabilitySlot) IsFree() bool {
	return !s.Occupied
}

// DurationMinutes returns the slot width in minutes
func (s *AvailabilitySlot) DurationMinutes() int {
	return int(s.End.Sub(s.Start) / time.Minute)
}
