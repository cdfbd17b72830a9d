package search_buildings

import (
	"net/http"
	"strings"

	"github.com/m04kA/SMC-FacilityBooking/internal/api/handlers"
)

type Handler struct {
	service BuildingService
	logger  Logger
}

func NewHandler(service BuildingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/buildings?search=library
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var search *string
	if s := strings.TrimSpace(r.URL.Query().Get("search")); s != "" {
		search = &s
	}

	result, err := h.service.SearchBuildings(r.Context(), search)
	if err != nil {
		h.logger.Error("GET /buildings - Failed to search buildings: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /buildings - Buildings found: count=%d", len(result.Buildings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
