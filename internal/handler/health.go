package handler // declare the package name; contains HTTP handlers

import (
    "net/http"

    "github.com/labstack/echo/v4"
)

// Health is a liveness probe.  It returns a plain text "ok" with 200 and
// does not touch the record store.
func Health(c echo.Context) error {
    return c.String(http.StatusOK, "ok")
}
