package auth

import (
	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims is the identity snapshot embedded in a session token.
// Tokens are self-contained; nothing here is looked up server-side on verify.
type SessionClaims struct {
	UserID   int64
	Email    string
	GlobalID string // provider + ":" + providerId
	Role     string
}

// represents JWT claims as serialized on the wire
type Claims struct {
	UserID   int64  `json:"userId"`
	Email    string `json:"email"`
	GlobalID string `json:"globalId"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// returns the portable claim set carried by a verified token
func (c *Claims) Session() SessionClaims {
	return SessionClaims{
		UserID:   c.UserID,
		Email:    c.Email,
		GlobalID: c.GlobalID,
		Role:     c.Role,
	}
}

// Principal is the request-scoped identity installed by the authentication
// middleware. It is threaded through the gin context, never global state.
type Principal struct {
	UserID   int64
	Email    string
	GlobalID string
	Role     string
}

// the principal's granted authorities: a single-element set containing the role
func (p Principal) Authorities() []string {
	return []string{p.Role}
}
