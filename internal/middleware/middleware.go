package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/joshua-takyi/breeze/internal/helpers"
	"github.com/joshua-takyi/breeze/internal/models"
)

// RequestID middleware adds a unique request ID to each request
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := helpers.StringTrim(c.GetHeader(helpers.RequestHeader))
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set(helpers.RequestIDKey, requestID)
		c.Header(helpers.RequestHeader, requestID)
		c.Next()
	}
}

// Session makes sure every browser carries a planner session cookie so
// submissions can be sequenced per session.
func Session(secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(helpers.SessionCookie)
		if err != nil || uuid.Validate(sessionID) != nil {
			sessionID = uuid.New().String()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(helpers.SessionCookie, sessionID, 0, "/", "", secure, true)
		}
		c.Set(helpers.SessionIDKey, sessionID)
		c.Next()
	}
}

// StructuredLogger provides structured logging middleware
func StructuredLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		// Process request
		c.Next()

		if raw != "" {
			path = path + "?" + raw
		}

		logger.Info("HTTP Request",
			"request_id", helpers.RequestID(c),
			"method", c.Request.Method,
			"path", path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
			"client_ip", c.ClientIP(),
		)
	}
}

// ErrorHandler reports errors attached with c.Error that no handler answered.
func ErrorHandler(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last()
		requestID := helpers.RequestID(c)

		logger.Error("Request error",
			"request_id", requestID,
			"error", err.Error(),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
		)

		if c.Writer.Written() {
			return
		}

		// Don't return error details to clients
		c.JSON(http.StatusInternalServerError,
			models.ErrorResponse("Internal server error").WithRequestID(requestID))
	}
}

// Timeout bounds the request context, and with it the model call.
func Timeout(d time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
