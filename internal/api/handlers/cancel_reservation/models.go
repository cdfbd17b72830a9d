package cancel_reservation

// CancelReservationResponse HTTP response model
type CancelReservationResponse struct {
	ID     int64  `json:"id"`
	Status string `json:"status"`
}
