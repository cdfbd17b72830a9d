package rules

import "errors"

var (
	// ErrRuleNotFound возвращается при удалении несуществующего правила
	ErrRuleNotFound = errors.New("booking rule not found")

	// ErrUnknownFacilityType возвращается для типа помещения вне допустимого набора
	ErrUnknownFacilityType = errors.New("unknown facility type")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrUserNotFound возвращается, когда пользователь неизвестен UserService
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrUserServiceUnavailable возвращается, когда UserService недоступен
	ErrUserServiceUnavailable = errors.New("user service unavailable")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
