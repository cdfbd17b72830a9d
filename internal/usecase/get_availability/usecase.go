package get_availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
	facilityRepo "github.com/m04kA/SMC-FacilityBooking/internal/infra/storage/facility"
)

// UseCase use case расчёта слотов доступности помещения на день
// Результат не кэшируется и пересчитывается при каждом вызове
type UseCase struct {
	facilityRepo    FacilityRepository
	reservationRepo ReservationRepository
	location        *time.Location
	slotMinutes     int
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
// location задаёт часовой пояс кампуса, в котором интерпретируются часы работы
func NewUseCase(
	facilityRepo FacilityRepository,
	reservationRepo ReservationRepository,
	location *time.Location,
	slotMinutes int,
	logger Logger,
) *UseCase {
	if location == nil {
		location = time.UTC
	}
	if slotMinutes <= 0 {
		slotMinutes = domain.DefaultSlotMinutes
	}
	return &UseCase{
		facilityRepo:    facilityRepo,
		reservationRepo: reservationRepo,
		location:        location,
		slotMinutes:     slotMinutes,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case получения слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if req == nil || req.FacilityID <= 0 || req.Date.IsZero() {
		return nil, fmt.Errorf("%w: facility id and date are required", ErrInvalidInput)
	}

	uc.logger.Info("GetAvailability: facility=%d, date=%s", req.FacilityID, req.Date.Format(domain.DateFormat))

	// 2. Получаем помещение
	facility, err := uc.facilityRepo.GetByID(ctx, req.FacilityID)
	if err != nil {
		if errors.Is(err, facilityRepo.ErrFacilityNotFound) {
			uc.logger.Warn("GetAvailability: facility id=%d not found", req.FacilityID)
			return nil, ErrFacilityNotFound
		}
		uc.logger.Error("GetAvailability: failed to get facility id=%d: %v", req.FacilityID, err)
		return nil, fmt.Errorf("%w: failed to get facility: %v", ErrStore, err)
	}

	// 3. Вычисляем окно работы помещения на дату в часовом поясе кампуса
	openTime, closeTime := facility.OperatingHours()
	windowStart := openTime.On(req.Date, uc.location)
	windowEnd := closeTime.On(req.Date, uc.location)

	response := &Response{
		FacilityID:  facility.ID,
		Date:        req.Date,
		OpenTime:    openTime.String(),
		CloseTime:   closeTime.String(),
		SlotMinutes: uc.slotMinutes,
		Slots:       []domain.AvailabilitySlot{},
	}

	if !windowStart.Before(windowEnd) {
		uc.logger.Warn("GetAvailability: facility id=%d has empty operating window %s-%s",
			facility.ID, openTime, closeTime)
		return response, nil
	}

	// 4. Получаем активные бронирования, пересекающие окно
	reservations, err := uc.reservationRepo.FindOverlapping(ctx, facility.ID, windowStart, windowEnd, domain.ActiveStatuses)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get reservations for facility id=%d: %v", facility.ID, err)
		return nil, fmt.Errorf("%w: failed to get reservations: %v", ErrStore, err)
	}

	// 5. Генерируем слоты и помечаем занятые
	slots := generateSlots(windowStart, windowEnd, uc.slotMinutes)
	markOccupied(slots, reservations, uc.timeProvider.Now())
	response.Slots = slots

	uc.logger.Info("GetAvailability: generated %d slots for facility=%d, date=%s, %d reservations",
		len(slots), facility.ID, req.Date.Format(domain.DateFormat), len(reservations))

	return response, nil
}
