package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// context key for the request-scoped principal
const principalKey = "auth_principal"

// CredentialExtractor pulls a session token out of an incoming request.
// Exactly one extractor is active per deployment.
type CredentialExtractor func(c *gin.Context) (string, bool)

// reads "Authorization: Bearer <token>"; anything without the Bearer prefix
// counts as no credential
func BearerHeaderExtractor() CredentialExtractor {
	return func(c *gin.Context) (string, bool) {
		header := c.GetHeader("Authorization")
		if header == "" {
			return "", false
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			return "", false
		}

		return parts[1], true
	}
}

// reads the raw token from a named cookie (no Bearer prefix in this variant)
func CookieExtractor(name string) CredentialExtractor {
	return func(c *gin.Context) (string, bool) {
		token, err := c.Cookie(name)
		if err != nil || token == "" {
			return "", false
		}

		return token, true
	}
}

// Gate verifies the request credential and installs the principal. It runs
// once per request and never lets a verification failure escape: expired and
// invalid tokens short-circuit with a 401 body, requests without a credential
// continue anonymously for downstream handlers to judge.
func Gate(codec *Codec, extract CredentialExtractor) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := extract(c)
		if !ok {
			c.Next()
			return
		}

		claims, err := codec.Verify(token)
		if err != nil {
			if errors.Is(err, ErrTokenExpired) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token expired"})
				return
			}

			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(principalKey, Principal{
			UserID:   claims.UserID,
			Email:    claims.Email,
			GlobalID: claims.GlobalID,
			Role:     claims.Role,
		})

		c.Next()
	}
}

// rejects anonymous requests; use on routes that require authentication
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentPrincipal(c); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		c.Next()
	}
}

// extracts the authenticated principal installed by Gate
func CurrentPrincipal(c *gin.Context) (Principal, bool) {
	v, exists := c.Get(principalKey)
	if !exists {
		return Principal{}, false
	}

	p, ok := v.(Principal)
	return p, ok
}
