package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/GoSim-25-26J-441/portfolio-backend/internal/documents/domain"
	"github.com/GoSim-25-26J-441/portfolio-backend/internal/storage/memstore"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupHandler(t *testing.T, opts ...Option) (*gin.Engine, *memstore.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := memstore.New()
	r := gin.New()
	New(store, domain.CollectionMessages, opts...).Register(r.Group("/messages"), "messageId")
	return r, store
}

func newRequest(method, path, body, contentType string) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", contentType)
	return req
}

func TestCreateStampsWithClock(t *testing.T) {
	fixed := time.Date(2025, 1, 2, 3, 4, 5, 6000000, time.UTC)
	r, store := setupHandler(t, WithClock(func() time.Time { return fixed }))

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, newRequest("POST", "/messages", `{"name":"Ada","createdAt":"x"}`, "application/json"))
	require.Equal(t, http.StatusOK, rr.Code)

	var res domain.InsertResult
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))

	doc, err := store.FindByID(context.Background(), domain.CollectionMessages, res.InsertedID)
	require.NoError(t, err)
	assert.Equal(t, "2025-01-02T03:04:05.006Z", doc.CreatedAt())
	assert.Equal(t, "Ada", doc["name"])
}

func TestCreateAcceptsNullBody(t *testing.T) {
	r, _ := setupHandler(t)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, newRequest("POST", "/messages", `null`, "application/json"))
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestCreateRejectsNonObjectBody(t *testing.T) {
	r, _ := setupHandler(t)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, newRequest("POST", "/messages", `[1,2,3]`, "application/json"))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestCreateParsesOnlyJSONBodies(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		body        string
		wantFields  int
	}{
		{name: "json with charset", contentType: "application/json; charset=utf-8", body: `{"name":"Ada"}`, wantFields: 3},
		{name: "plain text", contentType: "text/plain", body: `hello`, wantFields: 2},
		{name: "form", contentType: "application/x-www-form-urlencoded", body: `name=Ada`, wantFields: 2},
		{name: "json text without header", contentType: "", body: `{"name":"Ada"}`, wantFields: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, store := setupHandler(t)

			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, newRequest("POST", "/messages", tt.body, tt.contentType))
			require.Equal(t, http.StatusOK, rr.Code)

			var res domain.InsertResult
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))

			doc, err := store.FindByID(context.Background(), domain.CollectionMessages, res.InsertedID)
			require.NoError(t, err)
			assert.Len(t, doc, tt.wantFields)
			assert.Contains(t, doc, domain.FieldCreatedAt)
		})
	}
}

func TestGetMissUsesConfiguredStatus(t *testing.T) {
	r, _ := setupHandler(t, WithNotFoundStatus(http.StatusNotFound))

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest("GET", "/messages/64b7f0c2e4b0a1a2b3c4d5e6", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "null", rr.Body.String())
}

func TestMalformedIDIsRecordedOnContext(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	var errs []*gin.Error
	r.Use(func(c *gin.Context) {
		c.Next()
		errs = c.Errors
	})
	New(memstore.New(), domain.CollectionProjects).Register(r.Group("/projects"), "projectId")

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest("DELETE", "/projects/123", nil))

	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0].Err, domain.ErrInvalidIdentifier)
}
