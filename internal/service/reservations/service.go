package reservations

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
	reservationRepo "github.com/m04kA/SMC-FacilityBooking/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-FacilityBooking/internal/integrations/userservice"
	"github.com/m04kA/SMC-FacilityBooking/internal/service/reservations/models"
)

// Service сервис для работы с бронированиями после их создания
type Service struct {
	reservationRepo ReservationRepository
	users           UserDirectory
	publisher       EventPublisher
	metrics         MetricsRecorder
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	reservationRepo ReservationRepository,
	users UserDirectory,
	publisher EventPublisher,
	metrics MetricsRecorder,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		users:           users,
		publisher:       publisher,
		metrics:         metrics,
		timeProvider:    RealTimeProvider{},
		logger:          logger,
	}
}

// GetByID получает бронирование по ID
// Пользователь видит только своё бронирование, администратор видит любое
func (s *Service) GetByID(ctx context.Context, id int64, requesterID int64) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%d for user=%d", id, requesterID)

	reservation, err := s.getReservation(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if err := s.checkOwnerOrAdmin(ctx, reservation, requesterID); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to reservation id=%d", requesterID, id)
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched reservation id=%d", id)
	return models.FromDomainReservation(reservation), nil
}

// Cancel переводит бронирование в статус cancelled без проверки прав
// Повторная отмена ничего не меняет и не считается ошибкой
func (s *Service) Cancel(ctx context.Context, id int64) error {
	s.logger.Info("Cancel: cancelling reservation id=%d", id)

	reservation, err := s.getReservation(ctx, "Cancel", id)
	if err != nil {
		return err
	}

	return s.cancel(ctx, reservation)
}

// CancelByRequester отменяет бронирование от имени пользователя
// Отменить может владелец бронирования или администратор
func (s *Service) CancelByRequester(ctx context.Context, id int64, requesterID int64) error {
	s.logger.Info("CancelByRequester: cancelling reservation id=%d by user=%d", id, requesterID)

	reservation, err := s.getReservation(ctx, "CancelByRequester", id)
	if err != nil {
		return err
	}

	if err := s.checkOwnerOrAdmin(ctx, reservation, requesterID); err != nil {
		s.logger.Warn("CancelByRequester: access denied for user=%d to reservation id=%d", requesterID, id)
		return err
	}

	return s.cancel(ctx, reservation)
}

// GetUserReservations получает историю бронирований пользователя
// Перед чтением завершает истёкшие подтверждённые бронирования этого пользователя
func (s *Service) GetUserReservations(ctx context.Context, req *models.GetUserReservationsRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("GetUserReservations: fetching reservations for user=%d by user=%d, status=%v, from=%v, to=%v",
		req.UserID, req.RequesterID, req.Status, req.From, req.To)

	// 1. Проверяем права: свой список или администратор
	if req.UserID != req.RequesterID {
		if err := s.checkAdmin(ctx, req.RequesterID); err != nil {
			s.logger.Warn("GetUserReservations: user=%d cannot read reservations of user=%d", req.RequesterID, req.UserID)
			return nil, err
		}
	}

	// 2. Валидируем фильтр по статусу и периоду
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetUserReservations: invalid filter for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 3. Ленивое завершение прошедших бронирований
	completed, err := s.reservationRepo.CompleteExpired(ctx, s.timeProvider.Now(), &req.UserID)
	if err != nil {
		s.logger.Error("GetUserReservations: failed to complete expired reservations for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserReservations - complete expired: %v", ErrInternal, err)
	}
	if completed > 0 {
		s.metrics.AddReservationsCompleted(completed)
		s.logger.Info("GetUserReservations: completed %d expired reservations for user=%d", completed, req.UserID)
	}

	// 4. Читаем список
	reservations, err := s.reservationRepo.GetWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetUserReservations: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserReservations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserReservations: successfully fetched %d reservations for user=%d", len(reservations), req.UserID)
	return models.FromDomainReservationList(reservations), nil
}

// List возвращает бронирования по фильтру, доступно только администраторам
func (s *Service) List(ctx context.Context, req *models.ListReservationsRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("List: fetching reservations by user=%d, facility=%v, user=%v, statuses=%v",
		req.RequesterID, req.FacilityID, req.UserID, req.Statuses)

	if err := s.checkAdmin(ctx, req.RequesterID); err != nil {
		s.logger.Warn("List: user=%d is not an admin", req.RequesterID)
		return nil, err
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	reservations, err := s.reservationRepo.GetWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d reservations", len(reservations))
	return models.FromDomainReservationList(reservations), nil
}

// Вспомогательные методы

func (s *Service) getReservation(ctx context.Context, op string, id int64) (*domain.Reservation, error) {
	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("%s: reservation id=%d not found", op, id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("%s: repository error for reservation id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return reservation, nil
}

// cancel выставляет статус cancelled условным UPDATE
// Событие и метрика только если строка действительно изменилась,
// поэтому из конкурентных отмен их отправляет ровно одна
func (s *Service) cancel(ctx context.Context, reservation *domain.Reservation) error {
	if reservation.Status == domain.StatusCancelled {
		s.logger.Info("Cancel: reservation id=%d is already cancelled", reservation.ID)
		return nil
	}

	changed, err := s.reservationRepo.Cancel(ctx, reservation.ID)
	if err != nil {
		s.logger.Error("Cancel: repository error for reservation id=%d: %v", reservation.ID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}
	if !changed {
		s.logger.Info("Cancel: reservation id=%d was cancelled concurrently", reservation.ID)
		return nil
	}

	previous := reservation.Status
	reservation.Status = domain.StatusCancelled
	s.metrics.IncReservationCancelled()

	if err := s.publisher.PublishReservationCancelled(ctx, reservation); err != nil {
		s.logger.Warn("Cancel: failed to publish event for reservation id=%d: %v", reservation.ID, err)
	}

	if previous.IsTerminal() {
		s.logger.Warn("Cancel: reservation id=%d moved from terminal status %s to %s", reservation.ID, previous, domain.StatusCancelled)
	} else {
		s.logger.Info("Cancel: reservation id=%d moved from %s to %s", reservation.ID, previous, domain.StatusCancelled)
	}
	return nil
}

// checkOwnerOrAdmin разрешает доступ владельцу бронирования или администратору
func (s *Service) checkOwnerOrAdmin(ctx context.Context, reservation *domain.Reservation, requesterID int64) error {
	if reservation.UserID == requesterID {
		return nil
	}
	return s.checkAdmin(ctx, requesterID)
}

// checkAdmin проверяет через UserService, что пользователь активный администратор
func (s *Service) checkAdmin(ctx context.Context, userID int64) error {
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, userservice.ErrUserNotFound) {
			s.logger.Warn("checkAdmin: user=%d not found", userID)
			return ErrUserNotFound
		}
		if userservice.IsUnavailable(err) {
			s.logger.Error("checkAdmin: user service unavailable: %v", err)
			return fmt.Errorf("%w: %v", ErrUserServiceUnavailable, err)
		}
		s.logger.Error("checkAdmin: failed to get user=%d: %v", userID, err)
		return fmt.Errorf("%w: checkAdmin - failed to get user: %v", ErrInternal, err)
	}

	if !user.IsActive || !user.IsAdmin() {
		return ErrAccessDenied
	}
	return nil
}
