package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"

	cfg "assetmapper/src/configuration"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/gin-gonic/gin"
)

type (
	// TokenVerifier checks a raw ID token. *oidc.IDTokenVerifier satisfies it.
	TokenVerifier interface {
		Verify(ctx context.Context, rawIDToken string) (*oidc.IDToken, error)
	}
)

const subjectKey = "subject"

// NewTokenVerifier discovers the OIDC provider configured in AUTH_HOST. It
// returns a nil verifier when authentication is disabled.
func NewTokenVerifier(ctx context.Context, config *cfg.Properties) (TokenVerifier, error) {
	if !config.Auth.Enabled() {
		return nil, nil
	}
	if config.Auth.ID == "" {
		return nil, fmt.Errorf("AUTH_ID is required when AUTH_HOST is set")
	}
	provider, err := oidc.NewProvider(ctx, config.Auth.Host)
	if err != nil {
		return nil, fmt.Errorf("error creating OIDC provider: %w", err)
	}
	log.Printf("endpoint is %v", provider.Endpoint())
	return provider.Verifier(&oidc.Config{ClientID: config.Auth.ID}), nil
}

// RequireToken rejects requests without a valid bearer ID token. A nil
// verifier lets every request through.
func RequireToken(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if verifier == nil {
			c.Next()
			return
		}

		text := c.GetHeader("Authorization")
		index := strings.Index(text, " ")
		if index < 0 || !strings.EqualFold(text[:index], "bearer") {
			log.Printf("bearer: missing or malformed authorization header")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "error", "error": "bearer token required"})
			return
		}

		token, err := verifier.Verify(c.Request.Context(), strings.TrimSpace(text[index+1:]))
		if err != nil {
			log.Printf("bearer: authentication failed: %v", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "error", "error": "invalid token"})
			return
		}
		c.Set(subjectKey, token.Subject)
		c.Next()
	}
}
