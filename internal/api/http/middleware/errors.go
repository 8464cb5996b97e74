package middleware

import (
	"net/http"

	"github.com/GoSim-25-26J-441/portfolio-backend/internal/logging"
	"github.com/gin-gonic/gin"
)

const faultBody = "Internal Server Error"

// ErrorHandler turns any error a handler attached with c.Error into a bare 500.
// No error detail reaches the client; the cause is logged.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		logger := logging.WithContext(c.Request.Context())
		for _, e := range c.Errors {
			logger.Error().Err(e.Err).
				Str("method", c.Request.Method).
				Str("path", c.Request.URL.Path).
				Msg("request failed")
		}

		if !c.Writer.Written() {
			c.String(http.StatusInternalServerError, faultBody)
		}
	}
}

// Recovery answers a panicking request with the same bare 500 and keeps the
// process alive.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger := logging.WithContext(c.Request.Context())
		logger.Error().
			Interface("panic", recovered).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("handler panicked")
		c.String(http.StatusInternalServerError, faultBody)
		c.Abort()
	})
}
