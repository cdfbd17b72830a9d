package cancel_reservation

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FacilityBooking/internal/api/middleware"
	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
	"github.com/m04kA/SMC-FacilityBooking/internal/service/reservations"
	"github.com/m04kA/SMC-FacilityBooking/internal/testfixtures"
	"github.com/m04kA/SMC-FacilityBooking/pkg/metrics"
)

func setup(t *testing.T) (http.Handler, *testfixtures.ReservationStore, *domain.Reservation) {
	t.Helper()
	store := testfixtures.NewReservationStore(nil)
	start := testfixtures.ReferenceTime().Add(24 * time.Hour)
	r := store.Seed(testfixtures.NewReservation(1, 5, start, start.Add(time.Hour)))[0]

	svc := reservations.NewService(
		store,
		testfixtures.NewUserDirectory(testfixtures.Student(5), testfixtures.Student(6), testfixtures.Admin(9)),
		&testfixtures.EventRecorder{},
		(*metrics.Metrics)(nil),
		testfixtures.NewLogger(),
	)
	h := NewHandler(svc, testfixtures.NewLogger())

	router := mux.NewRouter()
	router.Use(middleware.Auth)
	router.HandleFunc("/reservations/{reservationId}/cancel", h.Handle).Methods(http.MethodPatch)
	return router, store, r
}

func patch(h http.Handler, id string, userID string) int {
	req := httptest.NewRequest(http.MethodPatch, "/reservations/"+id+"/cancel", nil)
	if userID != "" {
		req.Header.Set(middleware.UserIDHeader, userID)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec.Code
}

func TestHandle_OwnerCancelsTwice(t *testing.T) {
	h, store, r := setup(t)
	id := strconv.FormatInt(r.ID, 10)

	assert.Equal(t, http.StatusOK, patch(h, id, "5"))
	assert.Equal(t, http.StatusOK, patch(h, id, "5"))

	stored, err := store.GetByID(context.Background(), r.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, stored.Status)
}

func TestHandle_Statuses(t *testing.T) {
	h, _, r := setup(t)
	id := strconv.FormatInt(r.ID, 10)

	assert.Equal(t, http.StatusUnauthorized, patch(h, id, ""))
	assert.Equal(t, http.StatusBadRequest, patch(h, "x", "5"))
	assert.Equal(t, http.StatusNotFound, patch(h, "999", "5"))
	assert.Equal(t, http.StatusForbidden, patch(h, id, "6"))
	assert.Equal(t, http.StatusOK, patch(h, id, "9"))
}
