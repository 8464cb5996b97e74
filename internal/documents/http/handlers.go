package http

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/GoSim-25-26J-441/portfolio-backend/internal/documents/domain"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// fail hands err to the error middleware, which answers 500.
func fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

func (h *Handler) create(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		c.String(http.StatusBadRequest, "Bad Request")
		return
	}

	// Only JSON bodies are parsed; anything else is stored as an empty document.
	doc := domain.Document{}
	if c.ContentType() == binding.MIMEJSON && len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, &doc); err != nil {
			c.String(http.StatusBadRequest, "Bad Request")
			return
		}
		if doc == nil {
			doc = domain.Document{}
		}
	}

	// _id belongs to the store and createdAt to the server.
	delete(doc, domain.FieldID)
	doc.Stamp(h.now())

	res, err := h.store.Insert(c.Request.Context(), h.collection, doc)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *Handler) list(c *gin.Context) {
	docs, err := h.store.ListAll(c.Request.Context(), h.collection, domain.FieldCreatedAt, domain.Descending)
	if err != nil {
		fail(c, err)
		return
	}
	if docs == nil {
		docs = []domain.Document{}
	}

	c.JSON(http.StatusOK, docs)
}

func (h *Handler) get(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		doc, err := h.store.FindByID(c.Request.Context(), h.collection, c.Param(param))
		if err != nil {
			fail(c, err)
			return
		}
		if doc == nil {
			c.JSON(h.notFoundStatus, nil)
			return
		}

		c.JSON(http.StatusOK, doc)
	}
}

func (h *Handler) delete(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, err := h.store.DeleteByID(c.Request.Context(), h.collection, c.Param(param))
		if err != nil {
			fail(c, err)
			return
		}

		c.JSON(http.StatusOK, res)
	}
}
