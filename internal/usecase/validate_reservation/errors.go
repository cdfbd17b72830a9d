package validate_reservation

import "errors"

var (
	// ErrInvalidInterval возвращается, если конец интервала не позже начала
	ErrInvalidInterval = errors.New("validate_reservation: end must be after start")

	// ErrRoleNotEligible возвращается, если роль пользователя не допущена к помещению
	ErrRoleNotEligible = errors.New("validate_reservation: role is not eligible for this facility")

	// ErrFacilityNotBookable возвращается, если помещение закрыто для бронирования
	ErrFacilityNotBookable = errors.New("validate_reservation: facility is not bookable")

	// ErrDurationExceeded возвращается, если длительность превышает максимум правила
	ErrDurationExceeded = errors.New("validate_reservation: duration exceeds the maximum")

	// ErrInsufficientAdvanceNotice возвращается, если бронирование создаётся слишком поздно
	ErrInsufficientAdvanceNotice = errors.New("validate_reservation: insufficient advance notice")

	// ErrConcurrencyLimitExceeded возвращается, если у пользователя слишком много активных бронирований
	ErrConcurrencyLimitExceeded = errors.New("validate_reservation: concurrent booking limit reached")

	// ErrStore возвращается при ошибке чтения правил или бронирований
	ErrStore = errors.New("validate_reservation: store unavailable")
)

// Reason возвращает короткий код причины отказа для метрик и логов
// Для ошибок вне таксономии валидатора возвращает пустую строку
func Reason(err error) string {
	switch {
	case errors.Is(err, ErrInvalidInterval):
		return "invalid_interval"
	case errors.Is(err, ErrRoleNotEligible):
		return "role_not_eligible"
	case errors.Is(err, ErrFacilityNotBookable):
		return "facility_not_bookable"
	case errors.Is(err, ErrDurationExceeded):
		return "duration_exceeded"
	case errors.Is(err, ErrInsufficientAdvanceNotice):
		return "insufficient_advance_notice"
	case errors.Is(err, ErrConcurrencyLimitExceeded):
		return "concurrency_limit_exceeded"
	default:
		return ""
	}
}
