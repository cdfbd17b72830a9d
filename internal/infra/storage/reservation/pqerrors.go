package reservation

import (
	"errors"

	"github.com/lib/pq"
)

// Коды ошибок PostgreSQL, которые обрабатываются отдельно
const (
	pqExclusionViolation pq.ErrorCode = "23P01"
	pqUniqueViolation    pq.ErrorCode = "23505"
)

// translatePQError переводит ошибку драйвера в ошибку репозитория
// Возвращает nil, если ошибка не требует отдельной обработки
func translatePQError(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return nil
	}

	switch pqErr.Code {
	case pqExclusionViolation:
		return ErrOverlap
	case pqUniqueViolation:
		if pqErr.Constraint == "reservations_booking_number_key" {
			return ErrDuplicateBookingNumber
		}
		return nil
	default:
		return nil
	}
}
