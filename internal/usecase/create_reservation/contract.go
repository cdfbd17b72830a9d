package create_reservation

import (
	"context"
	"time"

	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
)

// FacilityRepository интерфейс репозитория помещений
type FacilityRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Facility, error)
}

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	FindOverlapping(ctx context.Context, facilityID int64, start, end time.Time, statuses []domain.ReservationStatus) ([]*domain.Reservation, error)
	Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error)
}

// UserDirectory интерфейс источника ролей пользователей (UserService)
type UserDirectory interface {
	GetUser(ctx context.Context, userID int64) (*domain.User, error)
}

// Validator интерфейс проверки правил бронирования
type Validator interface {
	Validate(ctx context.Context, user *domain.User, facility *domain.Facility, start, end time.Time) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher интерфейс публикации событий бронирования
type EventPublisher interface {
	PublishReservationCreated(ctx context.Context, reservation *domain.Reservation) error
}

// MetricsRecorder интерфейс счётчиков бронирования (*metrics.Metrics, допускает nil)
type MetricsRecorder interface {
	IncReservationCreated()
	IncReservationConflict()
	IncValidationFailure(reason string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
