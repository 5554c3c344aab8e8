package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrUnauthenticated = errors.New("missing or invalid access token")

type Identity struct {
	UserID uuid.UUID
	Email  string
}

type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

type IdentityProvider struct {
	cfg     *AuthConfig
	keyfunc jwt.Keyfunc
}

// NewIdentityProvider fetches the JWKS when a URL is configured, otherwise
// tokens are checked with the shared secret.
func NewIdentityProvider(ctx context.Context, cfg *AuthConfig) (*IdentityProvider, error) {
	p := &IdentityProvider{cfg: cfg}
	switch {
	case cfg.JWKSURL != "":
		timeoutCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		jwks, err := keyfunc.NewDefaultCtx(timeoutCtx, []string{cfg.JWKSURL})
		if err != nil {
			return nil, fmt.Errorf("failed to get JWKS: %v", err)
		}
		p.keyfunc = jwks.Keyfunc
	case cfg.JWTSecret != "":
		secret := []byte(cfg.JWTSecret)
		p.keyfunc = func(*jwt.Token) (any, error) { return secret, nil }
	case cfg.IsTestMode():
	default:
		return nil, errors.New("either SUPABASE_JWT_SECRET or AUTH_JWKS_URL must be set")
	}
	return p, nil
}

// GetIdentity verifies the token and returns the user in its sub claim. In
// test mode an empty token resolves to the configured test user.
func (p *IdentityProvider) GetIdentity(tokenString string) (*Identity, error) {
	if tokenString == "" || p.keyfunc == nil {
		if p.cfg.IsTestMode() && p.cfg.TestUser != nil {
			return &Identity{UserID: *p.cfg.TestUser}, nil
		}
		return nil, ErrUnauthenticated
	}

	opts := []jwt.ParserOption{
		jwt.WithLeeway(10 * time.Second),
		jwt.WithExpirationRequired(),
		jwt.WithValidMethods([]string{"HS256", "RS256", "ES256"}),
	}
	if p.cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(p.cfg.Issuer))
	}
	if p.cfg.Audience != "" {
		opts = append(opts, jwt.WithAudience(p.cfg.Audience))
	}

	claims := &Claims{}
	if _, err := jwt.ParseWithClaims(tokenString, claims, p.keyfunc, opts...); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("%w: sub is not a user id", ErrUnauthenticated)
	}
	return &Identity{UserID: userID, Email: claims.Email}, nil
}
