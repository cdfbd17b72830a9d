package get_booking_rule

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-FacilityBooking/internal/api/handlers"
	"github.com/m04kA/SMC-FacilityBooking/internal/service/rules"
)

const msgUnknownFacilityType = "неизвестный тип помещения"

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

// Handle GET /api/v1/booking-rules/{facilityType}
// Если правило не задано, возвращаются значения по умолчанию с isDefault=true
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	facilityType := mux.Vars(r)["facilityType"]

	rule, err := h.service.Get(r.Context(), facilityType)
	if err != nil {
		if errors.Is(err, rules.ErrUnknownFacilityType) {
			h.logger.Warn("GET /booking-rules/{type} - Unknown facility type: %s", facilityType)
			handlers.RespondNotFound(w, msgUnknownFacilityType)
			return
		}
		h.logger.Error("GET /booking-rules/{type} - Failed to get rule: facility_type=%s, error=%v", facilityType, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, rule)
}
