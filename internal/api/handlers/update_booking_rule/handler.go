package update_booking_rule

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-FacilityBooking/internal/api/handlers"
	"github.com/m04kA/SMC-FacilityBooking/internal/api/middleware"
	"github.com/m04kA/SMC-FacilityBooking/internal/service/rules"
	"github.com/m04kA/SMC-FacilityBooking/internal/service/rules/models"
)

const (
	msgMissingUserID       = "отсутствует ID пользователя"
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgUnknownFacilityType = "неизвестный тип помещения"
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

// Handle PUT /api/v1/booking-rules/{facilityType}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	facilityType := mux.Vars(r)["facilityType"]

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /booking-rules/{type} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.UpsertRuleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /booking-rules/{type} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.RequesterID = userID
	req.FacilityType = facilityType

	rule, err := h.service.Upsert(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, rules.ErrUnknownFacilityType):
			handlers.RespondNotFound(w, msgUnknownFacilityType)

		case errors.Is(err, rules.ErrInvalidInput):
			// Текст ошибки валидации содержит допустимые границы
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, rules.ErrAccessDenied), errors.Is(err, rules.ErrUserNotFound):
			h.logger.Warn("PUT /booking-rules/{type} - Access denied: user_id=%d", userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, rules.ErrUserServiceUnavailable):
			h.logger.Error("PUT /booking-rules/{type} - User service unavailable: %v", err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("PUT /booking-rules/{type} - Failed to save rule: facility_type=%s, error=%v", facilityType, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /booking-rules/{type} - Rule saved: facility_type=%s, user_id=%d", facilityType, userID)
	handlers.RespondJSON(w, http.StatusOK, rule)
}
