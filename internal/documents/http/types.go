package http

import (
	"net/http"
	"time"

	"github.com/GoSim-25-26J-441/portfolio-backend/internal/storage"
)

// Handler serves one collection.
type Handler struct {
	store          storage.Store
	collection     string
	now            func() time.Time
	notFoundStatus int
}

type Option func(*Handler)

// WithClock replaces time.Now for createdAt stamping.
func WithClock(now func() time.Time) Option {
	return func(h *Handler) { h.now = now }
}

// WithNotFoundStatus sets the status written when a lookup by id misses.
// The body is null either way.
func WithNotFoundStatus(status int) Option {
	return func(h *Handler) { h.notFoundStatus = status }
}

func New(store storage.Store, collection string, opts ...Option) *Handler {
	h := &Handler{
		store:          store,
		collection:     collection,
		now:            time.Now,
		notFoundStatus: http.StatusOK,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}
