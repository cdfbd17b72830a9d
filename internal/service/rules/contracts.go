package rules

import (
	"context"

	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
)

// RuleRepository интерфейс репозитория правил бронирования
type RuleRepository interface {
	GetByFacilityType(ctx context.Context, facilityType domain.FacilityType) (*domain.BookingRule, error)
	List(ctx context.Context) ([]*domain.BookingRule, error)
	Upsert(ctx context.Context, rule *domain.BookingRule) (*domain.BookingRule, error)
	Delete(ctx context.Context, facilityType domain.FacilityType) error
}

// UserDirectory интерфейс источника ролей пользователей (UserService)
type UserDirectory interface {
	GetUser(ctx context.Context, userID int64) (*domain.User, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
