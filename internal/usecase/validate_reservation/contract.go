package validate_reservation

import (
	"context"
	"time"

	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
)

// RuleRepository интерфейс репозитория правил бронирования
type RuleRepository interface {
	GetByFacilityType(ctx context.Context, facilityType domain.FacilityType) (*domain.BookingRule, error)
}

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	CountActive(ctx context.Context, userID int64, statuses []domain.ReservationStatus, endAfter time.Time) (int, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
