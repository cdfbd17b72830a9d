package reservations

import (
	"context"
	"time"

	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	GetWithFilter(ctx context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error)
	Cancel(ctx context.Context, id int64) (bool, error)
	CompleteExpired(ctx context.Context, now time.Time, userID *int64) (int64, error)
}

// UserDirectory интерфейс источника ролей пользователей (UserService)
type UserDirectory interface {
	GetUser(ctx context.Context, userID int64) (*domain.User, error)
}

// EventPublisher интерфейс публикации событий бронирования
type EventPublisher interface {
	PublishReservationCancelled(ctx context.Context, reservation *domain.Reservation) error
}

// MetricsRecorder интерфейс счётчиков жизненного цикла бронирований
type MetricsRecorder interface {
	IncReservationCancelled()
	AddReservationsCompleted(n int64)
}

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реализация TimeProvider с реальным временем
type RealTimeProvider struct{}

// Now возвращает текущее время
func (RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
