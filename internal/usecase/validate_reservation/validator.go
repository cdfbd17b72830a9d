package validate_reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
	ruleRepo "github.com/m04kA/SMC-FacilityBooking/internal/infra/storage/rule"
)

// Validator проверяет предлагаемое бронирование по правилам
// Проверки выполняются в фиксированном порядке, возвращается первая нарушенная
type Validator struct {
	ruleRepo        RuleRepository
	reservationRepo ReservationRepository
	timeProvider    TimeProvider
	logger          Logger
}

// NewValidator создает новый валидатор
func NewValidator(ruleRepo RuleRepository, reservationRepo ReservationRepository, logger Logger) *Validator {
	return NewValidatorWithClock(ruleRepo, reservationRepo, &RealTimeProvider{}, logger)
}

// NewValidatorWithClock создает валидатор с заданным источником текущего времени
func NewValidatorWithClock(
	ruleRepo RuleRepository,
	reservationRepo ReservationRepository,
	timeProvider TimeProvider,
	logger Logger,
) *Validator {
	return &Validator{
		ruleRepo:        ruleRepo,
		reservationRepo: reservationRepo,
		timeProvider:    timeProvider,
		logger:          logger,
	}
}

// Validate проверяет интервал [start, end) для пользователя и помещения
//
// Порядок проверок:
// 1. end > start
// 2. роль пользователя допущена к помещению
// 3. помещение доступно для бронирования
// 4. длительность не превышает максимум правила
// 5. до начала осталось не меньше минимального срока
// 6. не превышен лимит активных бронирований пользователя
func (v *Validator) Validate(ctx context.Context, user *domain.User, facility *domain.Facility, start, end time.Time) error {
	// 1. Корректность интервала, без обращения к хранилищу
	if !end.After(start) {
		return ErrInvalidInterval
	}

	// 2. Допуск по роли
	if !facility.IsEligible(user.Role) {
		v.logger.Warn("ValidateReservation: role %s not eligible for facility id=%d (requires %s)",
			user.Role, facility.ID, facility.EligibilityRole)
		return fmt.Errorf("%w: requires %s", ErrRoleNotEligible, facility.EligibilityRole)
	}

	// 3. Помещение доступно для бронирования
	if !facility.IsBookable {
		return ErrFacilityNotBookable
	}

	// 4. Получаем правило для типа помещения, при отсутствии используем значения по умолчанию
	rule, err := v.getRule(ctx, facility.Type)
	if err != nil {
		return err
	}

	durationMinutes := int(end.Sub(start) / time.Minute)
	if end.Sub(start) > time.Duration(rule.MaxDurationMinutes)*time.Minute {
		return fmt.Errorf("%w: %d minutes requested, %d allowed",
			ErrDurationExceeded, durationMinutes, rule.MaxDurationMinutes)
	}

	// 5. Минимальный срок до начала
	now := v.timeProvider.Now()
	earliestStart := now.Add(time.Duration(rule.MinAdvanceHours) * time.Hour)
	if start.Before(earliestStart) {
		return fmt.Errorf("%w: at least %d hours required",
			ErrInsufficientAdvanceNotice, rule.MinAdvanceHours)
	}

	// 6. Лимит одновременных бронирований (только для ролей, к которым применяется правило)
	if rule.HasConcurrencyLimit() && rule.AppliesTo(user.Role) {
		count, err := v.reservationRepo.CountActive(ctx, user.ID, domain.ConcurrencyStatuses, now)
		if err != nil {
			v.logger.Error("ValidateReservation: failed to count active reservations for user id=%d: %v", user.ID, err)
			return fmt.Errorf("%w: count active reservations: %w", ErrStore, err)
		}
		if count >= rule.MaxConcurrentBookingsPerUser {
			v.logger.Warn("ValidateReservation: user id=%d has %d/%d active reservations",
				user.ID, count, rule.MaxConcurrentBookingsPerUser)
			return fmt.Errorf("%w: %d of %d active reservations",
				ErrConcurrencyLimitExceeded, count, rule.MaxConcurrentBookingsPerUser)
		}
	}

	return nil
}

func (v *Validator) getRule(ctx context.Context, facilityType domain.FacilityType) (*domain.BookingRule, error) {
	rule, err := v.ruleRepo.GetByFacilityType(ctx, facilityType)
	if err == nil {
		return rule, nil
	}
	if errors.Is(err, ruleRepo.ErrRuleNotFound) {
		v.logger.Info("ValidateReservation: no rule for facility type %s, using defaults", facilityType)
		return domain.DefaultBookingRule(facilityType), nil
	}

	v.logger.Error("ValidateReservation: failed to get rule for facility type %s: %v", facilityType, err)
	return nil, fmt.Errorf("%w: get booking rule: %w", ErrStore, err)
}
