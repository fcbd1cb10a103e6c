package middleware

import (
    "time"

    "github.com/labstack/echo/v4"
    log "github.com/sirupsen/logrus"
)

// RequestLogger logs one line per request with logrus.  Server errors are
// logged at error level, client errors at warn.
func RequestLogger() echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            start := time.Now()
            err := next(c)
            if err != nil {
                // let the error handler write the response so the status is final
                c.Error(err)
            }
            req, res := c.Request(), c.Response()
            entry := log.WithFields(log.Fields{
                "method":     req.Method,
                "path":       req.URL.Path,
                "status":     res.Status,
                "latency_ms": time.Since(start).Milliseconds(),
                "ip":         c.RealIP(),
            })
            switch {
            case res.Status >= 500:
                entry.Error("request")
            case res.Status >= 400:
                entry.Warn("request")
            default:
                entry.Debug("request")
            }
            return nil
        }
    }
}
