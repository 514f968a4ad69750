package middleware

import (
	"strings"
	"time"

	"Backend-Schoolhub/src/logger"
	"Backend-Schoolhub/src/models"
	"Backend-Schoolhub/src/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	localPrincipal = "principal"
	localToken     = "token"
	localExpiresAt = "tokenExpiresAt"
)

// AuthJWT accepts "Authorization: Bearer <token>" or a "token" cookie and stores the
// resolved principal for later handlers.
func AuthJWT(c *fiber.Ctx) error {
	tokenStr := bearerToken(c)
	if tokenStr == "" {
		return utils.HandleError(c, fiber.StatusUnauthorized, "Missing or invalid Authorization header")
	}

	// fails open on Redis errors; exposure is bounded by the token ttl
	revoked, err := utils.IsTokenBlacklisted(c.UserContext(), tokenStr)
	if err != nil {
		logger.Log.Warn("blacklist lookup failed", zap.Error(err))
	}
	if revoked {
		return utils.HandleError(c, fiber.StatusUnauthorized, "Token has been revoked")
	}

	claims, err := utils.ParseJWT(tokenStr)
	if err != nil {
		return utils.HandleError(c, fiber.StatusUnauthorized, "Invalid or expired token")
	}
	principal, err := claims.Principal()
	if err != nil {
		return utils.HandleError(c, fiber.StatusUnauthorized, "Invalid or expired token")
	}

	c.Locals(localPrincipal, principal)
	c.Locals(localToken, tokenStr)
	if claims.ExpiresAt != nil {
		c.Locals(localExpiresAt, claims.ExpiresAt.Time)
	}
	return c.Next()
}

func bearerToken(c *fiber.Ctx) string {
	if h := c.Get(fiber.HeaderAuthorization); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	return c.Cookies("token")
}

// CurrentPrincipal returns the principal stored by AuthJWT.
func CurrentPrincipal(c *fiber.Ctx) (models.Principal, bool) {
	p, ok := c.Locals(localPrincipal).(models.Principal)
	return p, ok
}

// CurrentToken returns the raw token and its expiry.
func CurrentToken(c *fiber.Ctx) (string, time.Time) {
	tok, _ := c.Locals(localToken).(string)
	exp, _ := c.Locals(localExpiresAt).(time.Time)
	return tok, exp
}

// RequireKinds lets only the listed principal kinds through. Must run after AuthJWT.
func RequireKinds(kinds ...models.Kind) fiber.Handler {
	allowed := make(map[models.Kind]struct{}, len(kinds))
	for _, k := range kinds {
		allowed[k] = struct{}{}
	}
	return func(c *fiber.Ctx) error {
		p, ok := CurrentPrincipal(c)
		if !ok {
			return utils.HandleError(c, fiber.StatusUnauthorized, "Not authenticated")
		}
		if _, ok := allowed[p.Kind]; !ok {
			return utils.HandleError(c, fiber.StatusForbidden, "You are not allowed to perform this action")
		}
		return c.Next()
	}
}
