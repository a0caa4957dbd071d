package httpapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/okomarov/driveup/internal/server/auth"
)

// ownerIDContextKey stores the resolved owner ID on the echo context. The
// principal is always threaded explicitly into service calls; handlers never
// read ambient globals.
const ownerIDContextKey = "ownerID"

// requireOwner resolves the authenticated principal from the bearer token
// and rejects requests without a valid one.
func (s *Server) requireOwner(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
		}

		ownerID, err := auth.GetUserIDFromToken(token, s.jwtSecret)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
		}

		c.Set(ownerIDContextKey, ownerID)
		return next(c)
	}
}
