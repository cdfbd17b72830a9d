package domain

import (
	"errors"
	"time"
)

// ReservationStatus represents the lifecycle state of a reservation
type ReservationStatus string

const (
	StatusConfirmed       ReservationStatus = "confirmed"
	StatusPendingApproval ReservationStatus = "pending_approval"
	StatusCompleted       ReservationStatus = "completed"
	StatusCancelled       ReservationStatus = "cancelled"
)

// ErrInvalidStatus is returned when a string is not a known reservation status
var ErrInvalidStatus = errors.New("domain: invalid reservation status")

// ParseReservationStatus converts a raw value into a ReservationStatus
func ParseReservationStatus(s string) (ReservationStatus, error) {
	status := ReservationStatus(s)
	switch status {
	case StatusConfirmed, StatusPendingApproval, StatusCompleted, StatusCancelled:
		return status, nil
	default:
		return "", ErrInvalidStatus
	}
}

// IsActive returns true for statuses that hold a claim on the facility
func (s ReservationStatus) IsActive() bool {
	return s == StatusConfirmed || s == StatusPendingApproval
}

// IsTerminal returns true for statuses that never become active again
func (s ReservationStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Reservation represents a claim on a facility for a half-open interval [StartTime, EndTime)
type Reservation struct {
	ID            int64
	BookingNumber string
	FacilityID    int64
	UserID        int64
	StartTime     time.Time
	EndTime       time.Time
	Status        ReservationStatus
	Purpose       *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the reservation blocks the facility
func (r *Reservation) IsActive() bool {
	return r.Status.IsActive()
}

// Overlaps returns true if the reservation intersects [start, end)
func (r *Reservation) Overlaps(start, end time.Time) bool {
	return Overlaps(r.StartTime, r.EndTime, start, end)
}

// IsExpired returns true if a confirmed reservation has already ended
func (r *Reservation) IsExpired(now time.Time) bool {
	return r.Status == StatusConfirmed && r.EndTime.Before(now)
}

// DurationMinutes returns the reservation length in whole minutes
func (r *Reservation) DurationMinutes() int {
	return int(r.EndTime.Sub(r.StartTime) / time.Minute)
}

// Overlaps reports whether [aStart, aEnd) and [bStart, bEnd) intersect
// Intervals that only touch at a boundary do not overlap
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// ReservationFilter selects reservations; every nil or empty field is ignored
type ReservationFilter struct {
	FacilityID *int64
	UserID     *int64
	From       *time.Time // reservations ending after From
	To         *time.Time // reservations starting before To
	Statuses   []ReservationStatus
	SearchTerm *string // booking number or purpose substring
	Limit      uint64
	Offset     uint64
}
