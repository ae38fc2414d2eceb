package server

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	userports "github.com/Apurer/plant-nursery-api/internal/domains/users/ports"
	apierrors "github.com/Apurer/plant-nursery-api/internal/shared/errors"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "nursery.request_id"
	loggerKey       = "nursery.logger"
	claimsKey       = "nursery.claims"
)

// requestID reuses a caller supplied X-Request-ID or mints one.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(requestIDHeader))
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func requestLogger(base *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		logger := base.With(slog.String("request_id", c.GetString(requestIDKey)))
		c.Set(loggerKey, logger)
		c.Next()

		attrs := []slog.Attr{
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("latency", time.Since(start)),
		}
		level := slog.LevelInfo
		if len(c.Errors) > 0 {
			level = slog.LevelError
			attrs = append(attrs, slog.String("error", c.Errors.String()))
		}
		logger.LogAttrs(c.Request.Context(), level, "http request", attrs...)
	}
}

func (a *api) recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				a.requestLogger(c).Error("panic serving request", slog.String("panic", fmt.Sprint(r)))
				a.responder.Respond(c, apierrors.ErrInternal.WithDetail("Internal server error"))
			}
		}()
		c.Next()
	}
}

// authenticate resolves the bearer token. When required is false a missing
// or unusable token lets the request through as a guest.
func (a *api) authenticate(required bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			if required {
				a.responder.Respond(c, apierrors.ErrUnauthorized.WithDetail("No token provided"))
				return
			}
			c.Next()
			return
		}
		claims, err := a.services.Users.Authenticate(c.Request.Context(), token)
		if err != nil {
			if required {
				a.responder.Respond(c, apierrors.ErrUnauthorized.WithDetail("Invalid token"))
				return
			}
			a.requestLogger(c).Warn("ignoring invalid token on guest route", slog.String("error", err.Error()))
			c.Next()
			return
		}
		c.Set(claimsKey, claims)
		c.Next()
	}
}

func (a *api) requireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := currentClaims(c)
		if claims == nil || !claims.IsAdmin {
			a.responder.Respond(c, apierrors.ErrForbidden.WithDetail("Unauthorized"))
			return
		}
		c.Next()
	}
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

func currentClaims(c *gin.Context) *userports.Claims {
	value, ok := c.Get(claimsKey)
	if !ok {
		return nil
	}
	claims, _ := value.(*userports.Claims)
	return claims
}

func currentUserID(c *gin.Context) string {
	if claims := currentClaims(c); claims != nil {
		return claims.UserID
	}
	return ""
}

func (a *api) requestLogger(c *gin.Context) *slog.Logger {
	if value, ok := c.Get(loggerKey); ok {
		if logger, ok := value.(*slog.Logger); ok {
			return logger
		}
	}
	return a.logger
}
