package middleware

import (
	"strings"

	"go-interview-crm/core/cache"
	"go-interview-crm/core/config"
	"go-interview-crm/core/constants"
	"go-interview-crm/core/controller"
	"go-interview-crm/core/errors"
	"go-interview-crm/core/logger"
	"go-interview-crm/core/utils"

	"github.com/labstack/echo/v4"
)

type Middleware struct {
	cache *cache.Cache
	base  controller.BaseController
}

func NewMiddleware(c *cache.Cache) *Middleware {
	return &Middleware{
		cache: c,
		base:  controller.NewBaseController(),
	}
}

// AuthMiddleware validates the Bearer token on private routes and stores the
// claims in the request context.
func (m *Middleware) AuthMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if header == "" {
				return m.base.Unauthorized(errors.ErrMissingAuthorizationHeader, "Missing authorization header")
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				return m.base.Unauthorized(errors.ErrInvalidTokenFormat, "Invalid authorization header format")
			}
			token := parts[1]

			if m.cache != nil {
				blacklisted, err := m.cache.IsTokenBlacklisted(c.Request().Context(), token)
				if err != nil {
					logger.Warn("Middleware:AuthMiddleware:Blacklist", "error", err)
				} else if blacklisted {
					return m.base.Unauthorized(errors.ErrUnauthorized, "Token has been revoked")
				}
			}

			cfg := config.Get()
			claims, err := utils.ParseToken(token, cfg.JWT.Secret)
			if err != nil {
				return m.base.Unauthorized(errors.ErrTokenExpired, "Invalid or expired token")
			}

			c.Set(constants.ContextTokenData, claims)
			return next(c)
		}
	}
}
