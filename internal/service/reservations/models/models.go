package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid reservation status")

	// ErrInvalidPeriod возвращается, если конец периода не позже начала
	ErrInvalidPeriod = errors.New("invalid period")
)

// MaxListLimit максимальный размер страницы административного списка
const MaxListLimit = 500

// Request модели

// GetUserReservationsRequest запрос на получение бронирований пользователя
type GetUserReservationsRequest struct {
	UserID      int64      `json:"userId"`
	RequesterID int64      `json:"requesterId"`
	Status      *string    `json:"status,omitempty"`
	From        *time.Time `json:"from,omitempty"`
	To          *time.Time `json:"to,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр по истории пользователя
// История возвращается целиком, без пагинации
func (r *GetUserReservationsRequest) ToDomainFilter() (domain.ReservationFilter, error) {
	filter := domain.ReservationFilter{
		UserID: &r.UserID,
		From:   r.From,
		To:     r.To,
	}

	if r.From != nil && r.To != nil && !r.To.After(*r.From) {
		return filter, ErrInvalidPeriod
	}

	if r.Status != nil {
		status, err := ToDomainStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Statuses = []domain.ReservationStatus{status}
	}

	return filter, nil
}

// ListReservationsRequest запрос администратора на выборку бронирований
type ListReservationsRequest struct {
	RequesterID int64      `json:"requesterId"`
	FacilityID  *int64     `json:"facilityId,omitempty"`
	UserID      *int64     `json:"userId,omitempty"`
	From        *time.Time `json:"from,omitempty"`
	To          *time.Time `json:"to,omitempty"`
	Statuses    []string   `json:"statuses,omitempty"`
	Search      *string    `json:"search,omitempty"` // номер брони или цель
	Limit       uint64     `json:"limit,omitempty"`
	Offset      uint64     `json:"offset,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListReservationsRequest) ToDomainFilter() (domain.ReservationFilter, error) {
	filter := domain.ReservationFilter{
		FacilityID: r.FacilityID,
		UserID:     r.UserID,
		From:       r.From,
		To:         r.To,
		SearchTerm: r.Search,
		Limit:      r.Limit,
		Offset:     r.Offset,
	}

	if r.From != nil && r.To != nil && !r.To.After(*r.From) {
		return filter, ErrInvalidPeriod
	}

	if filter.Limit == 0 || filter.Limit > MaxListLimit {
		filter.Limit = MaxListLimit
	}

	for _, raw := range r.Statuses {
		status, err := ToDomainStatus(raw)
		if err != nil {
			return filter, err
		}
		filter.Statuses = append(filter.Statuses, status)
	}

	return filter, nil
}

// Response модели

// ReservationResponse ответ с данными бронирования
type ReservationResponse struct {
	ID              int64     `json:"id"`
	BookingNumber   string    `json:"bookingNumber"`
	FacilityID      int64     `json:"facilityId"`
	UserID          int64     `json:"userId"`
	StartTime       time.Time `json:"startTime"`
	EndTime         time.Time `json:"endTime"`
	DurationMinutes int       `json:"durationMinutes"`
	Status          string    `json:"status"`
	Purpose         *string   `json:"purpose,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// ReservationListResponse ответ со списком бронирований
type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
}

// Методы конвертации

// FromDomainReservation конвертирует domain модель в DTO
func FromDomainReservation(r *domain.Reservation) *ReservationResponse {
	if r == nil {
		return nil
	}

	return &ReservationResponse{
		ID:              r.ID,
		BookingNumber:   r.BookingNumber,
		FacilityID:      r.FacilityID,
		UserID:          r.UserID,
		StartTime:       r.StartTime,
		EndTime:         r.EndTime,
		DurationMinutes: r.DurationMinutes(),
		Status:          string(r.Status),
		Purpose:         r.Purpose,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

// FromDomainReservationList конвертирует список domain моделей в DTO
func FromDomainReservationList(reservations []*domain.Reservation) *ReservationListResponse {
	resp := &ReservationListResponse{
		Reservations: make([]ReservationResponse, 0, len(reservations)),
	}

	for _, r := range reservations {
		if item := FromDomainReservation(r); item != nil {
			resp.Reservations = append(resp.Reservations, *item)
		}
	}

	return resp
}

// ToDomainStatus конвертирует строку в domain.ReservationStatus с валидацией
func ToDomainStatus(status string) (domain.ReservationStatus, error) {
	s, err := domain.ParseReservationStatus(status)
	if err != nil {
		return "", ErrInvalidStatus
	}
	return s, nil
}
