package middleware

import "github.com/labstack/echo/v4"

// currentUserID returns the authenticated user id placed in the context by
// JWTAuth, or "anon" for unauthenticated requests.
func currentUserID(c echo.Context) string {
    if s, ok := c.Get(CtxUserID).(string); ok && s != "" {
        return s
    }
    return "anon"
}
