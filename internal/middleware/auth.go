package middleware

import (
	"context"
	"log/slog"
	"strings"

	"jobboard/internal/models"
	"jobboard/internal/security"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// TokenCookie is the cookie login sets and the verifier reads first.
const TokenCookie = "token"

// UnauthorizedMessage is the only message a failed verification produces.
const UnauthorizedMessage = "Unauthorized access"

// TokenVerifier validates a raw token string.
type TokenVerifier interface {
	Verify(token string) (*security.Claims, error)
}

// AuthRequired rejects requests without a valid, unrevoked token. On success
// the caller's id, email and role are stored in Fiber locals and the id is
// added to the user context for logging.
func AuthRequired(verifier TokenVerifier, rdb *redis.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := TokenFromRequest(c)
		if tokenString == "" {
			return unauthorized(c)
		}

		claims, err := verifier.Verify(tokenString)
		if err != nil {
			Logger.DebugContext(c.UserContext(), "token rejected", slog.String("error", err.Error()))
			return unauthorized(c)
		}

		revoked, err := security.IsRevoked(c.UserContext(), rdb, claims.JTI)
		if err != nil {
			// Revocation store unavailable: the signature is still valid.
			Logger.WarnContext(c.UserContext(), "token revocation check failed", slog.String("error", err.Error()))
		}
		if revoked {
			return unauthorized(c)
		}

		c.Locals("userID", claims.UserID)
		c.Locals("userEmail", claims.Email)
		c.Locals("userRole", claims.Role)
		c.Locals("claims", claims)

		ctx := context.WithValue(c.UserContext(), UserIDKey, claims.UserID)
		c.SetUserContext(ctx)

		return c.Next()
	}
}

// TokenFromRequest returns the token from the cookie, falling back to an
// "Authorization: Bearer" header.
func TokenFromRequest(c *fiber.Ctx) string {
	if token := strings.TrimSpace(c.Cookies(TokenCookie)); token != "" {
		return token
	}

	parts := strings.Fields(c.Get(fiber.HeaderAuthorization))
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return parts[1]
	}
	return ""
}

// UserID returns the authenticated caller, if any.
func UserID(c *fiber.Ctx) (uint, bool) {
	id, ok := c.Locals("userID").(uint)
	return id, ok && id != 0
}

// ClaimsFrom returns the verified claims stored by AuthRequired.
func ClaimsFrom(c *fiber.Ctx) (*security.Claims, bool) {
	claims, ok := c.Locals("claims").(*security.Claims)
	return claims, ok
}

func unauthorized(c *fiber.Ctx) error {
	return models.RespondWithError(c, fiber.StatusUnauthorized,
		models.NewUnauthorizedError(UnauthorizedMessage))
}
