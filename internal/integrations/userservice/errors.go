package userservice

import "errors"

var (
	// ErrUserNotFound возвращается, когда пользователь не найден в UserService
	ErrUserNotFound = errors.New("userservice client: user not found")

	// ErrUnknownRole возвращается, когда UserService вернул роль вне допустимого набора
	ErrUnknownRole = errors.New("userservice client: unknown user role")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("userservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("userservice client: invalid response")

	// ErrServiceUnavailable возвращается, когда UserService недоступен
	ErrServiceUnavailable = errors.New("userservice client: service unavailable")
)
