package rest

import (
	"strings"

	"github.com/Builder-Lawyers/site-builder/internal/infra/auth"
	"github.com/gofiber/fiber/v2"
)

const identityKey = "identity"

type IdentityResolver interface {
	GetIdentity(tokenString string) (*auth.Identity, error)
}

// RequireIdentity resolves the bearer token (or the access_token cookie) into
// an identity stored on the request.
func RequireIdentity(provider IdentityResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := strings.TrimSpace(strings.TrimPrefix(c.Get(fiber.HeaderAuthorization), "Bearer "))
		if token == "" {
			token = c.Cookies("access_token")
		}
		identity, err := provider.GetIdentity(token)
		if err != nil {
			return err
		}
		c.Locals(identityKey, identity)
		return c.Next()
	}
}

func identityFrom(c *fiber.Ctx) (*auth.Identity, error) {
	identity, ok := c.Locals(identityKey).(*auth.Identity)
	if !ok || identity == nil {
		return nil, auth.ErrUnauthenticated
	}
	return identity, nil
}
