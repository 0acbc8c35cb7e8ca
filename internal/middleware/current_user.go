package middleware

import (
	"context"
	"strings"

	"github.com/Eursukkul/booking-microservice/booking-flow/internal/models"
	"github.com/Eursukkul/booking-microservice/booking-flow/internal/service"
	"github.com/labstack/echo/v4"
)

// HeaderUserName carries the authenticated user's name, set by the auth proxy.
const HeaderUserName = "X-User-Name"

type userKey struct{}

// CurrentUser copies the authenticated user from the request header into
// the request context. Requests without the header pass through anonymous.
func CurrentUser() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if name := strings.TrimSpace(c.Request().Header.Get(HeaderUserName)); name != "" {
				ctx := WithUser(c.Request().Context(), models.User{UserName: name})
				c.SetRequest(c.Request().WithContext(ctx))
			}
			return next(c)
		}
	}
}

func WithUser(ctx context.Context, user models.User) context.Context {
	return context.WithValue(ctx, userKey{}, user)
}

// ContextUsers resolves the current user from the request context.
type ContextUsers struct{}

func (ContextUsers) CurrentUser(ctx context.Context) (models.User, error) {
	user, ok := ctx.Value(userKey{}).(models.User)
	if !ok {
		return models.User{}, service.ErrNoCurrentUser
	}
	return user, nil
}
