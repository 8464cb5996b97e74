package http

import "github.com/gin-gonic/gin"

// Register attaches the collection routes to the given router group. param
// names the path parameter carrying the document id.
func (h *Handler) Register(rg *gin.RouterGroup, param string) {
	rg.POST("", h.create)
	rg.GET("", h.list)
	rg.GET("/:"+param, h.get(param))
	rg.DELETE("/:"+param, h.delete(param))
}
