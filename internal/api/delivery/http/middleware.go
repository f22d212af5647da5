package http

import (
	"net/http"
	"strings"
	"time"

	"tradex/internal/api/dto"
	"tradex/internal/api/service"
	"tradex/internal/entity"
	"tradex/pkg/common"

	"github.com/labstack/echo/v4"
	gocache "github.com/patrickmn/go-cache"
)

const userContextKey = "user"

// TokenAuthMiddleware validates "Authorization: Token <key>" headers and
// stores the resolved user on the echo context. Resolved tokens are held
// in an in-process TTL cache to avoid a database hit per request.
type TokenAuthMiddleware struct {
	authService service.AuthService
	cache       *gocache.Cache
}

// NewTokenAuthMiddleware creates the middleware with the given cache TTL.
func NewTokenAuthMiddleware(authService service.AuthService, cacheTTL time.Duration) *TokenAuthMiddleware {
	return &TokenAuthMiddleware{
		authService: authService,
		cache:       gocache.New(cacheTTL, 2*cacheTTL),
	}
}

// Handle is the echo middleware function.
func (m *TokenAuthMiddleware) Handle(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		scheme := common.AuthScheme + " "
		if !strings.HasPrefix(header, scheme) {
			return c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Missing or malformed token"})
		}
		key := strings.TrimSpace(strings.TrimPrefix(header, scheme))

		if cached, ok := m.cache.Get(key); ok {
			c.Set(userContextKey, cached.(*entity.User))
			return next(c)
		}

		user, err := m.authService.ResolveToken(c.Request().Context(), key)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Invalid token"})
		}

		m.cache.SetDefault(key, user)
		c.Set(userContextKey, user)
		return next(c)
	}
}

// currentUser returns the authenticated user stored by the middleware.
func currentUser(c echo.Context) *entity.User {
	user, _ := c.Get(userContextKey).(*entity.User)
	return user
}
