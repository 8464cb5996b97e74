package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPinger struct{ err error }

func (s stubPinger) Ping(context.Context) error { return s.err }

func serve(t *testing.T, h *HealthHandler, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.HandleMethodNotAllowed = true
	h.RegisterRoutes(router)

	req, err := http.NewRequest(method, path, nil)
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestRoot(t *testing.T) {
	rr := serve(t, NewHealthHandler("test-service", "1.0.0", nil), "GET", "/")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, RootMessage, rr.Body.String())
	assert.Contains(t, rr.Header().Get("Content-Type"), "text/plain")
}

func TestHealthCheck(t *testing.T) {
	tests := []struct {
		name   string
		db     Pinger
		wantDB string
	}{
		{name: "no database", db: nil, wantDB: "disabled"},
		{name: "database up", db: stubPinger{}, wantDB: "up"},
		{name: "database down", db: stubPinger{err: errors.New("refused")}, wantDB: "down"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := serve(t, NewHealthHandler("test-service", "1.0.0", tt.db), "GET", "/health")
			require.Equal(t, http.StatusOK, rr.Code)

			var response HealthResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
			assert.Equal(t, "healthy", response.Status)
			assert.Equal(t, "test-service", response.Service)
			assert.Equal(t, "1.0.0", response.Version)
			assert.Equal(t, tt.wantDB, response.DB)
		})
	}
}

func TestHealthCheckMethodNotAllowed(t *testing.T) {
	rr := serve(t, NewHealthHandler("test-service", "1.0.0", nil), "POST", "/health")
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}
