package search_buildings

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FacilityBooking/internal/service/facilities/models"
	"github.com/m04kA/SMC-FacilityBooking/internal/testfixtures"
)

type stubBuildingService struct {
	got *string
	err error
}

func (s *stubBuildingService) SearchBuildings(_ context.Context, search *string) (*models.BuildingListResponse, error) {
	s.got = search
	if s.err != nil {
		return nil, s.err
	}
	return &models.BuildingListResponse{Buildings: []models.BuildingResponse{{ID: 1, Name: "Main Library"}}}, nil
}

func serve(svc BuildingService, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	NewHandler(svc, testfixtures.NewLogger()).Handle(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandle_Search(t *testing.T) {
	svc := &stubBuildingService{}

	rec := serve(svc, "/buildings?search=%20library%20")

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.got)
	assert.Equal(t, "library", *svc.got)

	var body models.BuildingListResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Len(t, body.Buildings, 1)
	assert.Equal(t, "Main Library", body.Buildings[0].Name)
}

func TestHandle_NoSearch(t *testing.T) {
	svc := &stubBuildingService{}

	rec := serve(svc, "/buildings?search=")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, svc.got)
}

func TestHandle_ServiceFailure(t *testing.T) {
	svc := &stubBuildingService{err: errors.New("boom")}

	rec := serve(svc, "/buildings")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
