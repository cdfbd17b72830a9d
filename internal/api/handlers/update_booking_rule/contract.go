package update_booking_rule

import (
	"context"

	"github.com/m04kA/SMC-FacilityBooking/internal/service/rules/models"
)

type RuleService interface {
	Upsert(ctx context.Context, req *models.UpsertRuleRequest) (*models.RuleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
