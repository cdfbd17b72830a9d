package rules

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
	ruleRepo "github.com/m04kA/SMC-FacilityBooking/internal/infra/storage/rule"
	"github.com/m04kA/SMC-FacilityBooking/internal/integrations/userservice"
	"github.com/m04kA/SMC-FacilityBooking/internal/service/rules/models"
)

// Service сервис администрирования правил бронирования
type Service struct {
	ruleRepo RuleRepository
	users    UserDirectory
	logger   Logger
}

// NewService создает новый экземпляр сервиса правил
func NewService(ruleRepo RuleRepository, users UserDirectory, logger Logger) *Service {
	return &Service{
		ruleRepo: ruleRepo,
		users:    users,
		logger:   logger,
	}
}

// Get возвращает правило для типа помещения
// Публичный метод, если правило не задано, возвращаются значения по умолчанию
func (s *Service) Get(ctx context.Context, facilityType string) (*models.RuleResponse, error) {
	s.logger.Info("Get: fetching rule for facility type=%s", facilityType)

	ft := domain.FacilityType(facilityType)
	if !ft.IsValid() {
		s.logger.Warn("Get: unknown facility type=%s", facilityType)
		return nil, ErrUnknownFacilityType
	}

	rule, err := s.ruleRepo.GetByFacilityType(ctx, ft)
	if err != nil {
		if errors.Is(err, ruleRepo.ErrRuleNotFound) {
			s.logger.Info("Get: no rule for facility type=%s, using defaults", facilityType)
			return models.FromDomainRule(domain.DefaultBookingRule(ft), true), nil
		}
		s.logger.Error("Get: repository error for facility type=%s: %v", facilityType, err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainRule(rule, false), nil
}

// List возвращает все заданные правила
func (s *Service) List(ctx context.Context) (*models.RuleListResponse, error) {
	s.logger.Info("List: fetching all booking rules")

	rules, err := s.ruleRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d rules", len(rules))
	return models.FromDomainRuleList(rules), nil
}

// Upsert создает или заменяет правило для типа помещения
// Доступно только администраторам
func (s *Service) Upsert(ctx context.Context, req *models.UpsertRuleRequest) (*models.RuleResponse, error) {
	s.logger.Info("Upsert: saving rule for facility type=%s by user=%d", req.FacilityType, req.RequesterID)

	// 1. Валидируем входные данные
	rule := req.ToDomainRule()
	if err := validateRule(rule); err != nil {
		s.logger.Warn("Upsert: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем права доступа
	if err := s.checkAdmin(ctx, req.RequesterID); err != nil {
		s.logger.Warn("Upsert: user=%d is not allowed to change rules: %v", req.RequesterID, err)
		return nil, err
	}

	// 3. Сохраняем правило
	saved, err := s.ruleRepo.Upsert(ctx, rule)
	if err != nil {
		s.logger.Error("Upsert: repository error: %v", err)
		return nil, fmt.Errorf("%w: Upsert - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Upsert: successfully saved rule id=%d for facility type=%s", saved.ID, saved.FacilityType)
	return models.FromDomainRule(saved, false), nil
}

// Delete удаляет правило, после чего для типа действуют значения по умолчанию
// Доступно только администраторам
func (s *Service) Delete(ctx context.Context, requesterID int64, facilityType string) error {
	s.logger.Info("Delete: deleting rule for facility type=%s by user=%d", facilityType, requesterID)

	ft := domain.FacilityType(facilityType)
	if !ft.IsValid() {
		s.logger.Warn("Delete: unknown facility type=%s", facilityType)
		return ErrUnknownFacilityType
	}

	if err := s.checkAdmin(ctx, requesterID); err != nil {
		s.logger.Warn("Delete: user=%d is not allowed to change rules: %v", requesterID, err)
		return err
	}

	if err := s.ruleRepo.Delete(ctx, ft); err != nil {
		if errors.Is(err, ruleRepo.ErrRuleNotFound) {
			s.logger.Warn("Delete: rule for facility type=%s not found", facilityType)
			return ErrRuleNotFound
		}
		s.logger.Error("Delete: repository error: %v", err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted rule for facility type=%s", facilityType)
	return nil
}

// Вспомогательные методы

// validateRule проверяет диапазоны параметров правила
func validateRule(rule *domain.BookingRule) error {
	if !rule.FacilityType.IsValid() {
		return ErrUnknownFacilityType
	}

	if rule.MaxDurationMinutes < domain.MinRuleDurationMinutes || rule.MaxDurationMinutes > domain.MaxRuleDurationMinutes {
		return fmt.Errorf("%w: maxDurationMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinRuleDurationMinutes, domain.MaxRuleDurationMinutes)
	}

	if rule.MinAdvanceHours < domain.MinRuleAdvanceHours || rule.MinAdvanceHours > domain.MaxRuleAdvanceHours {
		return fmt.Errorf("%w: minAdvanceHours must be between %d and %d",
			ErrInvalidInput, domain.MinRuleAdvanceHours, domain.MaxRuleAdvanceHours)
	}

	if rule.MaxConcurrentBookingsPerUser < domain.MinRuleConcurrentBookings ||
		rule.MaxConcurrentBookingsPerUser > domain.MaxRuleConcurrentBookings {
		return fmt.Errorf("%w: maxConcurrentBookingsPerUser must be between %d and %d",
			ErrInvalidInput, domain.MinRuleConcurrentBookings, domain.MaxRuleConcurrentBookings)
	}

	seen := make(map[domain.Role]struct{}, len(rule.AppliesToRoles))
	for _, role := range rule.AppliesToRoles {
		if !role.IsValid() {
			return fmt.Errorf("%w: unknown role %q", ErrInvalidInput, role)
		}
		if _, ok := seen[role]; ok {
			return fmt.Errorf("%w: duplicate role %q", ErrInvalidInput, role)
		}
		seen[role] = struct{}{}
	}

	return nil
}

// checkAdmin проверяет через UserService, что пользователь активный администратор
func (s *Service) checkAdmin(ctx context.Context, userID int64) error {
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, userservice.ErrUserNotFound) {
			return ErrUserNotFound
		}
		if userservice.IsUnavailable(err) {
			return fmt.Errorf("%w: %v", ErrUserServiceUnavailable, err)
		}
		return fmt.Errorf("%w: checkAdmin - failed to get user: %v", ErrInternal, err)
	}

	if !user.IsActive || !user.IsAdmin() {
		return ErrAccessDenied
	}
	return nil
}
