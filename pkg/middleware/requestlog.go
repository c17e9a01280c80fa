package middleware

import (
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
)

// RequestID tags each request with a UUID in X-Request-Id unless the
// client already sent one.
func RequestID() echo.MiddlewareFunc {
	return echoMiddleware.RequestIDWithConfig(echoMiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	})
}

// AccessLog writes one line per request through the standard logger.
// Paths in skip (e.g. /health) are not logged.
func AccessLog(skip ...string) echo.MiddlewareFunc {
	quiet := map[string]bool{}
	for _, p := range skip {
		quiet[p] = true
	}
	return echoMiddleware.RequestLoggerWithConfig(echoMiddleware.RequestLoggerConfig{
		Skipper: func(c echo.Context) bool {
			return quiet[c.Request().URL.Path]
		},
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		LogValuesFunc: func(_ echo.Context, v echoMiddleware.RequestLoggerValues) error {
			if v.Error != nil {
				log.Printf("[http] %s %s %d %s id=%s err=%v", v.Method, v.URI, v.Status, v.Latency.Round(time.Millisecond), v.RequestID, v.Error)
				return nil
			}
			log.Printf("[http] %s %s %d %s id=%s", v.Method, v.URI, v.Status, v.Latency.Round(time.Millisecond), v.RequestID)
			return nil
		},
	})
}
