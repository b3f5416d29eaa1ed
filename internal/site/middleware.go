package site

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Zachkp/neon-portfolio/internal/storage"
)

// RequestLogger logs one line per request.
func RequestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.Int("bytes", c.Writer.Size()),
		}
		if errs := c.Errors.ByType(gin.ErrorTypePrivate).String(); errs != "" {
			fields = append(fields, zap.String("errors", errs))
		}
		switch status := c.Writer.Status(); {
		case status >= http.StatusInternalServerError:
			logger.Error("request", fields...)
		case status >= http.StatusBadRequest:
			logger.Warn("request", fields...)
		default:
			logger.Debug("request", fields...)
		}
	}
}

// Recovery turns panics into 500s and logs them.
func Recovery(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered any) {
		logger.Error("panic recovered",
			zap.Any("panic", recovered),
			zap.String("path", c.Request.URL.Path),
			zap.Stack("stack"))
		c.AbortWithStatus(http.StatusInternalServerError)
	})
}

var untrackedPrefixes = []string{
	"/static/",
	"/images/",
	"/admin/",
	"/backdrop/",
	"/prefs/",
	"/sections/",
	"/favicon",
	"/privacy",
	"/healthz",
}

// shouldTrack reports whether a request counts as a page view. Only
// successful full-page GETs are counted; HTMX fragment loads belong to the
// page that triggered them. Do Not Track is honored.
func shouldTrack(r *http.Request, status int) bool {
	if r.Method != http.MethodGet || status >= http.StatusBadRequest {
		return false
	}
	if r.Header.Get("HX-Request") == "true" {
		return false
	}
	if r.Header.Get("DNT") == "1" || r.Header.Get("Sec-GPC") == "1" {
		return false
	}
	for _, prefix := range untrackedPrefixes {
		if strings.HasPrefix(r.URL.Path, prefix) {
			return false
		}
	}
	return true
}

const trackTimeout = 2 * time.Second

func (s *Server) trackVisits() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		if s.visits == nil || !shouldTrack(c.Request, c.Writer.Status()) {
			return
		}
		v := storage.Visit{
			IP:        c.ClientIP(),
			UserAgent: c.Request.UserAgent(),
			Path:      c.Request.URL.Path,
		}
		// Recorded off the request path; the response is already written.
		s.tracking.Add(1)
		go func() {
			defer s.tracking.Done()
			ctx, cancel := context.WithTimeout(context.Background(), trackTimeout)
			defer cancel()
			if err := s.visits.RecordVisit(ctx, v); err != nil {
				s.logger.Warn("record visit", zap.Error(err))
			}
		}()
	}
}

// WaitVisits blocks until every visit recorded in the background has been
// written. Call it after the HTTP server has stopped and before closing the
// store.
func (s *Server) WaitVisits() {
	s.tracking.Wait()
}
