package auth

import (
	"log/slog"

	"github.com/Builder-Lawyers/site-builder/pkg/env"
	"github.com/google/uuid"
)

type AuthConfig struct {
	// JWTSecret verifies HS256 tokens, as issued by Supabase auth.
	JWTSecret string
	// JWKSURL, when set, is used instead of JWTSecret.
	JWKSURL  string
	Issuer   string
	Audience string
	Mode     string
	TestUser *uuid.UUID
}

func NewAuthConfig() *AuthConfig {
	cfg := &AuthConfig{
		JWTSecret: env.GetEnv("SUPABASE_JWT_SECRET", ""),
		JWKSURL:   env.GetEnv("AUTH_JWKS_URL", ""),
		Issuer:    env.GetEnv("AUTH_ISSUER", ""),
		Audience:  env.GetEnv("AUTH_AUDIENCE", "authenticated"),
		Mode:      env.GetEnv("MODE", ""),
	}
	if testUser := env.GetEnv("TEST_USER", ""); testUser != "" {
		testUserID, err := uuid.Parse(testUser)
		if err != nil {
			slog.Error("error getting test user ID", "err", err)
		} else {
			cfg.TestUser = &testUserID
		}
	}
	return cfg
}

func (c *AuthConfig) IsTestMode() bool {
	return c.Mode == "TEST"
}
