package auth

import (
	"context"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	apperrors "apoteka/internal/errors"
	"apoteka/internal/model"
)

// ContextUserKey is where the resolved user is stored on the echo context.
const ContextUserKey = "current_user"

// UserResolver resolves a token subject to a user record.
type UserResolver interface {
	FindByUsername(ctx context.Context, username string) (*model.User, error)
}

// CurrentUser resolves the validated token's subject to a User and puts
// it on the context. It runs after the JWT middleware; a subject that no
// longer resolves to a user is the same generic 401 as a bad token.
func CurrentUser(users UserResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return unauthorized()
			}
			claims, ok := token.Claims.(*Claims)
			if !ok || claims.Subject == "" {
				return unauthorized()
			}
			user, err := users.FindByUsername(c.Request().Context(), claims.Subject)
			if err != nil || user == nil {
				return unauthorized()
			}
			c.Set(ContextUserKey, user)
			return next(c)
		}
	}
}

// RequireRole rejects requests whose user does not hold one of the roles.
func RequireRole(roles ...model.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := UserFromContext(c)
			if !ok {
				return unauthorized()
			}
			for _, role := range roles {
				if user.Role == role {
					return next(c)
				}
			}
			return echo.NewHTTPError(http.StatusForbidden, apperrors.ErrorResponse{
				Error: "insufficient permissions",
				Code:  "FORBIDDEN",
			})
		}
	}
}

// UserFromContext returns the authenticated user set by CurrentUser.
func UserFromContext(c echo.Context) (*model.User, bool) {
	user, ok := c.Get(ContextUserKey).(*model.User)
	return user, ok
}

func unauthorized() error {
	he := apperrors.MapErrorToHTTP(apperrors.ErrUnauthorized)
	return echo.NewHTTPError(he.StatusCode, he.ToErrorResponse())
}
