package middleware

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const requestIDHeader = "X-Request-ID"

// healthLogPaths lists probe endpoints whose repeated successes are
// suppressed from the request log.
var healthLogPaths = map[string]struct{}{
	"/healthz": {},
	"/readyz":  {},
}

// probeState tracks, per health path, whether the last probe succeeded.
// Only transitions are logged for successes; failures always log.
type probeState struct {
	mu sync.Mutex
	ok map[string]bool
}

// markOK records a success and reports whether it is a transition that
// should be logged.
func (p *probeState) markOK(path string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ok[path] {
		return false
	}
	p.ok[path] = true
	return true
}

func (p *probeState) markFailed(path string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.ok[path] = false
}

// RequestLog returns Echo middleware that logs requests with structured
// fields. It generates a request ID if none is provided and propagates
// it through the response header and echo context. Health probes are
// noisy, so their successes log only on the transition into a healthy
// state; probe failures log at WARN every time.
func RequestLog(log *slog.Logger) echo.MiddlewareFunc {
	probes := &probeState{ok: make(map[string]bool)}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			reqID := c.Request().Header.Get(requestIDHeader)
			if reqID == "" {
				reqID = uuid.NewString()
			}

			c.Set("request_id", reqID)
			c.Response().Header().Set(requestIDHeader, reqID)

			err := next(c)

			path := c.Request().URL.Path
			status := c.Response().Status
			fields := []any{
				"method", c.Request().Method,
				"path", path,
				"status", status,
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", reqID,
			}

			if _, probe := healthLogPaths[path]; probe {
				if status >= 200 && status < 300 {
					if probes.markOK(path) {
						log.Info("request", fields...)
					}
				} else {
					probes.markFailed(path)
					log.Warn("request", fields...)
				}
				return err
			}

			log.Info("request", fields...)
			return err
		}
	}
}
