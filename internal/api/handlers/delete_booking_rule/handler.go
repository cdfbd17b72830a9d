package delete_booking_rule

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-FacilityBooking/internal/api/handlers"
	"github.com/m04kA/SMC-FacilityBooking/internal/api/middleware"
	"github.com/m04kA/SMC-FacilityBooking/internal/service/rules"
)

const (
	msgMissingUserID       = "отсутствует ID пользователя"
	msgUnknownFacilityType = "неизвестный тип помещения"
	msgRuleNotFound        = "правило для типа помещения не задано"
	msgForbidden           = "изменять правила могут только администраторы"
)

type Handler struct {
	service RuleService
	logger  Logger
}

func NewHandler(service RuleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/booking-rules/{facilityType}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	facilityType := mux.Vars(r)["facilityType"]

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /booking-rules/{type} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	if err := h.service.Delete(r.Context(), userID, facilityType); err != nil {
		switch {
		case errors.Is(err, rules.ErrUnknownFacilityType):
			handlers.RespondNotFound(w, msgUnknownFacilityType)

		case errors.Is(err, rules.ErrRuleNotFound):
			handlers.RespondNotFound(w, msgRuleNotFound)

		case errors.Is(err, rules.ErrAccessDenied), errors.Is(err, rules.ErrUserNotFound):
			h.logger.Warn("DELETE /booking-rules/{type} - Access denied: user_id=%d", userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, rules.ErrUserServiceUnavailable):
			h.logger.Error("DELETE /booking-rules/{type} - User service unavailable: %v", err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("DELETE /booking-rules/{type} - Failed to delete rule: facility_type=%s, error=%v", facilityType, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /booking-rules/{type} - Rule deleted: facility_type=%s, user_id=%d", facilityType, userID)
	w.WriteHeader(http.StatusNoContent)
}
