package handler

import (
    "errors"
    "net/http"

    "github.com/labstack/echo/v4"
    log "github.com/sirupsen/logrus"

    "github.com/iliyamo/localrot/internal/service"
)

// writeError maps service errors to HTTP responses.  Anything it does not
// recognise is logged and reported as a 500 without detail.
func writeError(c echo.Context, err error) error {
    if msg, ok := service.ValidationMessage(err); ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
    }
    switch {
    case errors.Is(err, service.ErrUsernameTaken):
        return c.JSON(http.StatusConflict, echo.Map{"error": "User already exists"})
    case errors.Is(err, service.ErrInvalidCredentials):
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid credentials"})
    case errors.Is(err, service.ErrReservationNotFound):
        return c.JSON(http.StatusNotFound, echo.Map{"error": "Reservation not found"})
    }
    log.WithError(err).WithFields(log.Fields{
        "method": c.Request().Method,
        "path":   c.Path(),
    }).Error("request failed")
    return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal server error"})
}

func badBody(c echo.Context) error {
    return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
}

// HTTPErrorHandler renders errors that escape handlers and middleware.
// Unmatched routes (and unsupported methods on known paths) become a JSON
// 404.
func HTTPErrorHandler(err error, c echo.Context) {
    if c.Response().Committed {
        return
    }
    code := http.StatusInternalServerError
    msg := "Internal server error"
    var he *echo.HTTPError
    if errors.As(err, &he) {
        code = he.Code
        if m, ok := he.Message.(string); ok {
            msg = m
        } else {
            msg = http.StatusText(code)
        }
    } else {
        log.WithError(err).WithField("path", c.Request().URL.Path).Error("unhandled error")
    }
    if code == http.StatusNotFound || code == http.StatusMethodNotAllowed {
        code, msg = http.StatusNotFound, "Route not found"
    }

    var werr error
    if c.Request().Method == http.MethodHead {
        werr = c.NoContent(code)
    } else {
        werr = c.JSON(code, echo.Map{"error": msg})
    }
    if werr != nil {
        log.WithError(werr).Warn("write error response")
    }
}
