package get_availability

import (
	"time"

	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
)

// Request модель запроса на получение слотов помещения
type Request struct {
	FacilityID int64
	Date       time.Time // Дата (значимы только год, месяц, день)
}

// Response модель ответа со слотами на день
type Response struct {
	FacilityID  int64
	Date        time.Time
	OpenTime    string // HH:MM
	CloseTime   string // HH:MM
	SlotMinutes int
	Slots       []domain.AvailabilitySlot // По возрастанию времени начала
}
