package create_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
	facilityRepo "github.com/m04kA/SMC-FacilityBooking/internal/infra/storage/facility"
	reservationRepo "github.com/m04kA/SMC-FacilityBooking/internal/infra/storage/reservation"
	userClient "github.com/m04kA/SMC-FacilityBooking/internal/integrations/userservice"
	"github.com/m04kA/SMC-FacilityBooking/internal/usecase/validate_reservation"
	"github.com/m04kA/SMC-FacilityBooking/pkg/txmanager"
)

// UseCase use case создания бронирования
// Проверка пересечений и вставка выполняются в одной сериализуемой транзакции,
// поэтому из конкурентных запросов на пересекающиеся интервалы успешен ровно один
type UseCase struct {
	facilityRepo    FacilityRepository
	reservationRepo ReservationRepository
	users           UserDirectory
	validator       Validator
	txManager       TransactionManager
	publisher       EventPublisher
	metrics         MetricsRecorder
	generateNumber  NumberGenerator
	numberAttempts  int
	logger          Logger
}

// Option настройка use case
type Option func(*UseCase)

// WithNumberGenerator подменяет генератор номеров бронирования
func WithNumberGenerator(gen NumberGenerator) Option {
	return func(uc *UseCase) {
		if gen != nil {
			uc.generateNumber = gen
		}
	}
}

// WithNumberAttempts задаёт количество попыток при коллизии номера
func WithNumberAttempts(n int) Option {
	return func(uc *UseCase) {
		if n > 0 {
			uc.numberAttempts = n
		}
	}
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	facilityRepo FacilityRepository,
	reservationRepo ReservationRepository,
	users UserDirectory,
	validator Validator,
	txManager TransactionManager,
	publisher EventPublisher,
	metrics MetricsRecorder,
	logger Logger,
	opts ...Option,
) *UseCase {
	uc := &UseCase{
		facilityRepo:    facilityRepo,
		reservationRepo: reservationRepo,
		users:           users,
		validator:       validator,
		txManager:       txManager,
		publisher:       publisher,
		metrics:         metrics,
		generateNumber:  GenerateBookingNumber,
		numberAttempts:  domain.DefaultBookingNumberRetries,
		logger:          logger,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Execute выполняет use case создания бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных (без обращения к хранилищу)
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		if reason := validate_reservation.Reason(err); reason != "" {
			uc.metrics.IncValidationFailure(reason)
		}
		return nil, err
	}

	uc.logger.Info("CreateReservation: user=%d, facility=%d, start=%s, end=%s",
		req.UserID, req.FacilityID, req.Start.Format(timeLayout), req.End.Format(timeLayout))

	// 2. Получаем пользователя и его роль
	user, err := uc.users.GetUser(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, userClient.ErrUserNotFound) {
			uc.logger.Warn("CreateReservation: user id=%d not found", req.UserID)
			return nil, ErrUserNotFound
		}
		uc.logger.Error("CreateReservation: failed to get user id=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: %v", ErrUserServiceUnavailable, err)
	}
	if !user.IsActive {
		uc.logger.Warn("CreateReservation: user id=%d is inactive", req.UserID)
		return nil, ErrUserInactive
	}

	// 3. Получаем помещение
	facility, err := uc.facilityRepo.GetByID(ctx, req.FacilityID)
	if err != nil {
		if errors.Is(err, facilityRepo.ErrFacilityNotFound) {
			uc.logger.Warn("CreateReservation: facility id=%d not found", req.FacilityID)
			return nil, ErrFacilityNotFound
		}
		uc.logger.Error("CreateReservation: failed to get facility id=%d: %v", req.FacilityID, err)
		return nil, fmt.Errorf("%w: failed to get facility: %v", ErrStore, err)
	}

	var result *domain.Reservation

	// 4. Проверка правил, поиск пересечений и вставка в сериализуемой транзакции
	// При serialization failure txmanager повторяет функцию целиком
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Правила бронирования
		if err := uc.validator.Validate(txCtx, user, facility, req.Start, req.End); err != nil {
			return err
		}

		// 4.2. Активные бронирования, пересекающие интервал (FOR UPDATE)
		overlapping, err := uc.reservationRepo.FindOverlapping(txCtx, facility.ID, req.Start, req.End, domain.ActiveStatuses)
		if err != nil {
			return fmt.Errorf("%w: find overlapping: %w", ErrStore, err)
		}
		if len(overlapping) > 0 {
			uc.logger.Warn("CreateReservation: facility id=%d has %d overlapping reservations, first %s",
				facility.ID, len(overlapping), overlapping[0].BookingNumber)
			return ErrConflict
		}

		// 4.3. Вставка с повтором при коллизии номера бронирования
		created, err := uc.insert(txCtx, req, facility.ID)
		if err != nil {
			return err
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, uc.handleCommitError(req, err)
	}

	uc.metrics.IncReservationCreated()
	uc.logger.Info("CreateReservation: created reservation id=%d, number=%s, facility=%d, user=%d",
		result.ID, result.BookingNumber, result.FacilityID, result.UserID)

	// 5. Публикуем событие, ошибка публикации не отменяет бронирование
	if err := uc.publisher.PublishReservationCreated(ctx, result); err != nil {
		uc.logger.Error("CreateReservation: failed to publish event for reservation id=%d: %v", result.ID, err)
	}

	return &Response{Reservation: result}, nil
}

func (uc *UseCase) insert(ctx context.Context, req *Request, facilityID int64) (*domain.Reservation, error) {
	for attempt := 1; attempt <= uc.numberAttempts; attempt++ {
		reservation := &domain.Reservation{
			BookingNumber: uc.generateNumber(),
			FacilityID:    facilityID,
			UserID:        req.UserID,
			StartTime:     req.Start,
			EndTime:       req.End,
			Status:        domain.StatusConfirmed,
			Purpose:       req.Purpose,
		}

		created, err := uc.reservationRepo.Create(ctx, reservation)
		switch {
		case err == nil:
			return created, nil
		case errors.Is(err, reservationRepo.ErrDuplicateBookingNumber):
			uc.logger.Warn("CreateReservation: booking number %s already taken, attempt %d/%d",
				reservation.BookingNumber, attempt, uc.numberAttempts)
			continue
		case errors.Is(err, reservationRepo.ErrOverlap):
			return nil, ErrConflict
		default:
			// Исходная ошибка сохраняется, чтобы txmanager распознал serialization failure
			return nil, fmt.Errorf("%w: insert reservation: %w", ErrStore, err)
		}
	}

	return nil, ErrBookingNumberExhausted
}

// handleCommitError приводит ошибку транзакции к таксономии use case
func (uc *UseCase) handleCommitError(req *Request, err error) error {
	if reason := validate_reservation.Reason(err); reason != "" {
		uc.logger.Warn("CreateReservation: rule violation for user=%d, facility=%d: %v", req.UserID, req.FacilityID, err)
		uc.metrics.IncValidationFailure(reason)
		return err
	}

	switch {
	case errors.Is(err, ErrConflict):
		uc.metrics.IncReservationConflict()
		return ErrConflict
	case txmanager.IsRetryable(err):
		// Повторы исчерпаны: интервал оспаривается конкурентной транзакцией
		uc.logger.Warn("CreateReservation: serialization retries exhausted for facility=%d: %v", req.FacilityID, err)
		uc.metrics.IncReservationConflict()
		return ErrConflict
	case errors.Is(err, ErrBookingNumberExhausted):
		uc.logger.Error("CreateReservation: %v", err)
		return err
	case errors.Is(err, validate_reservation.ErrStore):
		uc.logger.Error("CreateReservation: failed to validate: %v", err)
		return fmt.Errorf("%w: %v", ErrStore, err)
	default:
		uc.logger.Error("CreateReservation: transaction failed: %v", err)
		if errors.Is(err, ErrStore) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrStore, err)
	}
}

const timeLayout = "2006-01-02 15:04"
