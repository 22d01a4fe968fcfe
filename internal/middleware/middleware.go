package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/clinicflow/clinicflow/internal/domain"
	"github.com/clinicflow/clinicflow/pkg/auth"
	"github.com/clinicflow/clinicflow/pkg/metrics"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const claimsKey = "auth.claims"
const requestIDKey = "request.id"

// Auth verifies the bearer token and stores the caller claims on the
// request context for the audit trail.
func Auth(verifier *auth.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		claims, err := verifier.VerifyAccessToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

// Caller returns the verified claims set by Auth, or an anonymous claims
// value on routes without authentication.
func Caller(c *gin.Context) *domain.Claims {
	if v, ok := c.Get(claimsKey); ok {
		if claims, ok := v.(*domain.Claims); ok {
			return claims
		}
	}
	return &domain.Claims{}
}

// RequestID assigns each request a correlation id, honoring one supplied
// by an upstream proxy.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Writer.Header().Set("X-Request-ID", id)
		c.Next()
	}
}

func GetRequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

// Observe records per-request metrics and a structured access log line.
func Observe(collect *metrics.Collector, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		collect.InFlightGauge.Inc()

		c.Next()

		collect.InFlightGauge.Dec()
		elapsed := time.Since(start)

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())

		collect.RequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		collect.RequestDuration.WithLabelValues(c.Request.Method, path, status).Observe(elapsed.Seconds())

		log.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", elapsed),
			zap.String("request_id", GetRequestID(c)),
			zap.String("ip", c.ClientIP()),
		)
	}
}
