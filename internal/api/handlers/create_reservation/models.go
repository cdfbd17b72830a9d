package create_reservation

import (
	"fmt"
	"time"

	createReservation "github.com/m04kA/SMC-FacilityBooking/internal/usecase/create_reservation"
)

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	FacilityID int64   `json:"facilityId"`
	StartTime  string  `json:"startTime"` // RFC 3339, "2026-10-19T14:00:00Z"
	EndTime    string  `json:"endTime"`
	Purpose    *string `json:"purpose,omitempty"`
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID              int64   `json:"id"`
	BookingNumber   string  `json:"bookingNumber"`
	FacilityID      int64   `json:"facilityId"`
	UserID          int64   `json:"userId"`
	StartTime       string  `json:"startTime"`
	EndTime         string  `json:"endTime"`
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	Purpose         *string `json:"purpose,omitempty"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateReservationRequest) ToUseCaseRequest(userID int64) (*createReservation.Request, error) {
	start, err := time.Parse(time.RFC3339, r.StartTime)
	if err != nil {
		return nil, fmt.Errorf("startTime: %w", err)
	}

	end, err := time.Parse(time.RFC3339, r.EndTime)
	if err != nil {
		return nil, fmt.Errorf("endTime: %w", err)
	}

	return &createReservation.Request{
		UserID:     userID,
		FacilityID: r.FacilityID,
		Start:      start,
		End:        end,
		Purpose:    r.Purpose,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createReservation.Response) *ReservationResponse {
	r := resp.Reservation
	return &ReservationResponse{
		ID:              r.ID,
		BookingNumber:   r.BookingNumber,
		FacilityID:      r.FacilityID,
		UserID:          r.UserID,
		StartTime:       r.StartTime.Format(time.RFC3339),
		EndTime:         r.EndTime.Format(time.RFC3339),
		DurationMinutes: r.DurationMinutes(),
		Status:          string(r.Status),
		Purpose:         r.Purpose,
		CreatedAt:       r.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       r.UpdatedAt.Format(time.RFC3339),
	}
}
