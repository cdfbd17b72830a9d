package events

import (
	"time"

	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
)

// Ключи маршрутизации событий жизненного цикла бронирования
const (
	RoutingKeyReservationCreated   = "reservation.created"
	RoutingKeyReservationCancelled = "reservation.cancelled"
)

// ReservationEvent тело события о бронировании
type ReservationEvent struct {
	ReservationID int64     `json:"reservation_id"`
	BookingNumber string    `json:"booking_number"`
	FacilityID    int64     `json:"facility_id"`
	UserID        int64     `json:"user_id"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	Status        string    `json:"status"`
	OccurredAt    time.Time `json:"occurred_at"`
}

func newReservationEvent(r *domain.Reservation, occurredAt time.Time) ReservationEvent {
	return ReservationEvent{
		ReservationID: r.ID,
		BookingNumber: r.BookingNumber,
		FacilityID:    r.FacilityID,
		UserID:        r.UserID,
		StartTime:     r.StartTime,
		EndTime:       r.EndTime,
		Status:        string(r.Status),
		OccurredAt:    occurredAt,
	}
}
