package create_reservation

import (
	"fmt"
	"unicode/utf8"

	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
	"github.com/m04kA/SMC-FacilityBooking/internal/usecase/validate_reservation"
)

// validateRequest проверяет запрос без обращения к хранилищу
// Некорректный интервал отклоняется до любых запросов
func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: empty request", ErrInvalidInput)
	}

	if req.Start.IsZero() || req.End.IsZero() || !req.End.After(req.Start) {
		return validate_reservation.ErrInvalidInterval
	}

	if req.UserID <= 0 {
		return fmt.Errorf("%w: user_id must be positive", ErrInvalidInput)
	}

	if req.FacilityID <= 0 {
		return fmt.Errorf("%w: facility_id must be positive", ErrInvalidInput)
	}

	if req.Purpose != nil && utf8.RuneCountInString(*req.Purpose) > domain.MaxPurposeLength {
		return fmt.Errorf("%w: purpose must not exceed %d characters", ErrInvalidInput, domain.MaxPurposeLength)
	}

	return nil
}
