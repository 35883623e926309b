package controller

import (
	"net/http"

	"freelance-market-api/internal/identity"

	"github.com/labstack/echo"
)

const claimsContextKey = "identityClaims"

// authMiddleware requires a valid bearer token and stores its claims on the
// request context for handlers that care about the caller.
func authMiddleware(tokens *identity.Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenStr := identity.ExtractToken(c.Request())
			if tokenStr == "" {
				return c.JSON(http.StatusUnauthorized, errorResponse{"missing bearer token"})
			}

			claims, err := tokens.ParseToken(tokenStr)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, errorResponse{"invalid bearer token"})
			}

			c.Set(claimsContextKey, claims)

			return next(c)
		}
	}
}

// callerClaims returns the claims stored by authMiddleware, nil when the
// route runs unauthenticated.
func callerClaims(c echo.Context) *identity.Claims {
	claims, _ := c.Get(claimsContextKey).(*identity.Claims)

	return claims
}
