package facilities

import (
	"context"

	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
)

// FacilityRepository интерфейс репозитория помещений
type FacilityRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Facility, error)
	Search(ctx context.Context, filter domain.FacilityFilter) ([]*domain.Facility, error)
}

// BuildingRepository интерфейс репозитория зданий
type BuildingRepository interface {
	Search(ctx context.Context, term *string) ([]*domain.Building, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
