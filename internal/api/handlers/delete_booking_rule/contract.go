package delete_booking_rule

import "context"

type RuleService interface {
	Delete(ctx context.Context, requesterID int64, facilityType string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
