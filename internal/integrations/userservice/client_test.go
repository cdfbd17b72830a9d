package userservice

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL, time.Second, nopLogger{})
}

func TestClient_GetUser(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/internal/users/42", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id": 42, "role": "faculty", "is_active": true}`)
	})

	user, err := client.GetUser(context.Background(), 42)

	require.NoError(t, err)
	assert.Equal(t, &domain.User{ID: 42, Role: domain.RoleFaculty, IsActive: true}, user)
}

func TestClient_GetUser_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{name: "not found", status: http.StatusNotFound, wantErr: ErrUserNotFound},
		{name: "server error", status: http.StatusBadGateway, wantErr: ErrServiceUnavailable},
		{name: "unknown role", status: http.StatusOK, body: `{"id": 1, "role": "janitor"}`, wantErr: ErrUnknownRole},
		{name: "broken body", status: http.StatusOK, body: `{`, wantErr: ErrInvalidResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				fmt.Fprint(w, tt.body)
			})

			_, err := client.GetUser(context.Background(), 1)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
