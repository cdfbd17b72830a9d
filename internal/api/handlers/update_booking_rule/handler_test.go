package update_booking_rule

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FacilityBooking/internal/api/middleware"
	"github.com/m04kA/SMC-FacilityBooking/internal/service/rules"
	"github.com/m04kA/SMC-FacilityBooking/internal/service/rules/models"
	"github.com/m04kA/SMC-FacilityBooking/internal/testfixtures"
)

type stubRuleService struct {
	got *models.UpsertRuleRequest
	err error
}

func (s *stubRuleService) Upsert(_ context.Context, req *models.UpsertRuleRequest) (*models.RuleResponse, error) {
	s.got = req
	if s.err != nil {
		return nil, s.err
	}
	return &models.RuleResponse{
		FacilityType:       req.FacilityType,
		MaxDurationMinutes: req.MaxDurationMinutes,
		MinAdvanceHours:    req.MinAdvanceHours,
		AppliesToRoles:     req.AppliesToRoles,
	}, nil
}

const validBody = `{"maxDurationMinutes":120,"minAdvanceHours":2,"maxConcurrentBookingsPerUser":3,"canRecur":false,"appliesToRoles":["student","faculty"]}`

func serve(svc RuleService, body string, userID int64) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/booking-rules/{facilityType}", NewHandler(svc, testfixtures.NewLogger()).Handle).Methods(http.MethodPut)

	req := httptest.NewRequest(http.MethodPut, "/booking-rules/study_room", strings.NewReader(body))
	if userID > 0 {
		req = req.WithContext(middleware.WithUserID(req.Context(), userID))
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandle_Saved(t *testing.T) {
	svc := &stubRuleService{}

	rec := serve(svc, validBody, 1)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.got)
	assert.Equal(t, int64(1), svc.got.RequesterID)
	assert.Equal(t, "study_room", svc.got.FacilityType)
	assert.Equal(t, []string{"student", "faculty"}, svc.got.AppliesToRoles)

	var resp models.RuleResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 120, resp.MaxDurationMinutes)
}

func TestHandle_RequestErrors(t *testing.T) {
	t.Run("missing user", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, serve(&stubRuleService{}, validBody, 0).Code)
	})
	t.Run("unknown field", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, serve(&stubRuleService{}, `{"maxHours":3}`, 1).Code)
	})
	t.Run("empty body", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, serve(&stubRuleService{}, "", 1).Code)
	})
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"unknown type", rules.ErrUnknownFacilityType, http.StatusNotFound},
		{"out of bounds", fmt.Errorf("%w: maxDurationMinutes must be between 1 and 1440", rules.ErrInvalidInput), http.StatusBadRequest},
		{"not admin", rules.ErrAccessDenied, http.StatusForbidden},
		{"unknown user", rules.ErrUserNotFound, http.StatusForbidden},
		{"user service down", fmt.Errorf("%w: timeout", rules.ErrUserServiceUnavailable), http.StatusServiceUnavailable},
		{"store failure", fmt.Errorf("%w: Upsert - repository error: boom", rules.ErrInternal), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&stubRuleService{err: tt.err}, validBody, 1)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
