package models

import (
	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
)

// Request модели

// UpsertRuleRequest запрос на создание или замену правила для типа помещения
type UpsertRuleRequest struct {
	RequesterID                  int64    `json:"-"`
	FacilityType                 string   `json:"-"` // из пути запроса
	MaxDurationMinutes           int      `json:"maxDurationMinutes"`
	MinAdvanceHours              int      `json:"minAdvanceHours"`
	MaxConcurrentBookingsPerUser int      `json:"maxConcurrentBookingsPerUser"` // 0 = без ограничений
	CanRecur                     bool     `json:"canRecur"`
	AppliesToRoles               []string `json:"appliesToRoles"`
}

// ToDomainRule конвертирует request в domain модель без валидации
func (r *UpsertRuleRequest) ToDomainRule() *domain.BookingRule {
	roles := make([]domain.Role, 0, len(r.AppliesToRoles))
	for _, role := range r.AppliesToRoles {
		roles = append(roles, domain.Role(role))
	}

	return &domain.BookingRule{
		FacilityType:                 domain.FacilityType(r.FacilityType),
		MaxDurationMinutes:           r.MaxDurationMinutes,
		MinAdvanceHours:              r.MinAdvanceHours,
		MaxConcurrentBookingsPerUser: r.MaxConcurrentBookingsPerUser,
		CanRecur:                     r.CanRecur,
		AppliesToRoles:               roles,
	}
}

// Response модели

// RuleResponse ответ с данными правила бронирования
type RuleResponse struct {
	FacilityType                 string   `json:"facilityType"`
	MaxDurationMinutes           int      `json:"maxDurationMinutes"`
	MinAdvanceHours              int      `json:"minAdvanceHours"`
	MaxConcurrentBookingsPerUser int      `json:"maxConcurrentBookingsPerUser"`
	CanRecur                     bool     `json:"canRecur"`
	AppliesToRoles               []string `json:"appliesToRoles"`
	IsDefault                    bool     `json:"isDefault"` // правило не задано, действуют значения по умолчанию
}

// RuleListResponse ответ со списком правил
type RuleListResponse struct {
	Rules []RuleResponse `json:"rules"`
}

// Методы конвертации

// FromDomainRule конвертирует domain модель в DTO
func FromDomainRule(r *domain.BookingRule, isDefault bool) *RuleResponse {
	if r == nil {
		return nil
	}

	roles := make([]string, 0, len(r.AppliesToRoles))
	for _, role := range r.AppliesToRoles {
		roles = append(roles, string(role))
	}

	return &RuleResponse{
		FacilityType:                 string(r.FacilityType),
		MaxDurationMinutes:           r.MaxDurationMinutes,
		MinAdvanceHours:              r.MinAdvanceHours,
		MaxConcurrentBookingsPerUser: r.MaxConcurrentBookingsPerUser,
		CanRecur:                     r.CanRecur,
		AppliesToRoles:               roles,
		IsDefault:                    isDefault,
	}
}

// FromDomainRuleList конвертирует список domain моделей в DTO
func FromDomainRuleList(rules []*domain.BookingRule) *RuleListResponse {
	resp := &RuleListResponse{Rules: make([]RuleResponse, 0, len(rules))}
	for _, r := range rules {
		if item := FromDomainRule(r, false); item != nil {
			resp.Rules = append(resp.Rules, *item)
		}
	}
	return resp
}
