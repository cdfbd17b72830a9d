package create_reservation

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrUserNotFound возвращается, когда пользователь не найден в UserService
	ErrUserNotFound = errors.New("create_reservation: user not found")

	// ErrUserInactive возвращается для деактивированных пользователей
	ErrUserInactive = errors.New("create_reservation: user is inactive")

	// ErrFacilityNotFound возвращается, когда помещение не найдено
	ErrFacilityNotFound = errors.New("create_reservation: facility not found")

	// ErrConflict возвращается, когда интервал пересекается с активным бронированием
	ErrConflict = errors.New("create_reservation: time range conflicts with an existing reservation")

	// ErrStore возвращается при недоступности хранилища, повторно не выполняется
	ErrStore = errors.New("create_reservation: store unavailable")

	// ErrUserServiceUnavailable возвращается при недоступности UserService
	ErrUserServiceUnavailable = errors.New("create_reservation: user service unavailable")

	// ErrBookingNumberExhausted возвращается, если все попытки сгенерировать уникальный номер исчерпаны
	ErrBookingNumberExhausted = errors.New("create_reservation: could not generate a unique booking number")
)
