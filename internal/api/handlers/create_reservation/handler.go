package create_reservation

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-FacilityBooking/internal/api/handlers"
	"github.com/m04kA/SMC-FacilityBooking/internal/api/middleware"
	createReservation "github.com/m04kA/SMC-FacilityBooking/internal/usecase/create_reservation"
	"github.com/m04kA/SMC-FacilityBooking/internal/usecase/validate_reservation"
)

const (
	msgMissingUserID          = "отсутствует ID пользователя"
	msgInvalidRequestBody     = "некорректное тело запроса"
	msgInvalidTime            = "некорректный формат времени, ожидается RFC 3339"
	msgInvalidInput           = "некорректные параметры бронирования"
	msgInvalidInterval        = "время окончания должно быть позже времени начала"
	msgRoleNotEligible        = "ваша роль не допускает бронирование этого помещения"
	msgFacilityNotBookable    = "помещение недоступно для бронирования"
	msgDurationExceeded       = "превышена максимальная длительность бронирования"
	msgInsufficientNotice     = "бронирование нужно создавать заранее"
	msgConcurrencyLimit       = "достигнут лимит активных бронирований"
	msgConflict               = "выбранное время уже занято"
	msgUserNotFound           = "пользователь не найден"
	msgUserInactive           = "пользователь деактивирован"
	msgFacilityNotFound       = "помещение не найдено"
	msgBookingNumberExhausted = "не удалось сгенерировать номер бронирования, повторите попытку"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /reservations - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /reservations - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		h.respondError(w, err, userID, req.FacilityID)
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /reservations - Reservation created successfully: reservation_id=%d, number=%s, user_id=%d, facility_id=%d",
		response.ID, response.BookingNumber, userID, req.FacilityID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}

func (h *Handler) respondError(w http.ResponseWriter, err error, userID, facilityID int64) {
	switch {
	case errors.Is(err, validate_reservation.ErrInvalidInterval):
		handlers.RespondBadRequest(w, msgInvalidInterval)

	case errors.Is(err, validate_reservation.ErrRoleNotEligible):
		handlers.RespondForbidden(w, msgRoleNotEligible)

	case errors.Is(err, validate_reservation.ErrFacilityNotBookable):
		handlers.RespondBadRequest(w, msgFacilityNotBookable)

	case errors.Is(err, validate_reservation.ErrDurationExceeded):
		handlers.RespondBadRequest(w, msgDurationExceeded)

	case errors.Is(err, validate_reservation.ErrInsufficientAdvanceNotice):
		handlers.RespondBadRequest(w, msgInsufficientNotice)

	case errors.Is(err, validate_reservation.ErrConcurrencyLimitExceeded):
		handlers.RespondBadRequest(w, msgConcurrencyLimit)

	case errors.Is(err, createReservation.ErrInvalidInput):
		handlers.RespondBadRequest(w, msgInvalidInput)

	case errors.Is(err, createReservation.ErrConflict):
		handlers.RespondConflict(w, msgConflict)

	case errors.Is(err, createReservation.ErrUserNotFound):
		handlers.RespondNotFound(w, msgUserNotFound)

	case errors.Is(err, createReservation.ErrUserInactive):
		handlers.RespondForbidden(w, msgUserInactive)

	case errors.Is(err, createReservation.ErrFacilityNotFound):
		handlers.RespondNotFound(w, msgFacilityNotFound)

	case errors.Is(err, createReservation.ErrBookingNumberExhausted):
		handlers.RespondError(w, http.StatusServiceUnavailable, msgBookingNumberExhausted)

	case errors.Is(err, createReservation.ErrStore),
		errors.Is(err, createReservation.ErrUserServiceUnavailable):
		h.logger.Error("POST /reservations - Dependency unavailable: user_id=%d, facility_id=%d, error=%v",
			userID, facilityID, err)
		handlers.RespondServiceUnavailable(w)
		return

	default:
		h.logger.Error("POST /reservations - Failed to create reservation: user_id=%d, facility_id=%d, error=%v",
			userID, facilityID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Warn("POST /reservations - Rejected: user_id=%d, facility_id=%d, reason=%v", userID, facilityID, err)
}
