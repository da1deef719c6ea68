package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// valid signature but the expiry instant has passed
	ErrTokenExpired = errors.New("token expired")
	// bad signature, wrong algorithm, or structurally malformed input
	ErrTokenInvalid = errors.New("invalid token")
)

// Codec issues and verifies signed session tokens. The signing key is fixed
// for the process lifetime; rotation is out of scope.
type Codec struct {
	secret []byte
	parser *jwt.Parser
}

func NewCodec(secret string) (*Codec, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt secret must not be empty")
	}

	// strict decoding: without it the unused low bits of the signature
	// segment's final base64 char are ignored, so some single-bit tampering
	// would still verify
	parser := jwt.NewParser(
		jwt.WithStrictDecoding(),
		jwt.WithValidMethods([]string{"HS256"}),
	)

	return &Codec{secret: []byte(secret), parser: parser}, nil
}

// creates a signed token embedding the claims plus issuedAt/expiresAt.
// ttl is an explicit duration; callers never pass raw unit-less numbers.
func (cd *Codec) Issue(claims SessionClaims, ttl time.Duration) (string, error) {
	now := time.Now()

	wire := Claims{
		UserID:   claims.UserID,
		Email:    claims.Email,
		GlobalID: claims.GlobalID,
		Role:     claims.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, wire)
	return token.SignedString(cd.secret)
}

// checks the signature, then expiry, and returns the embedded claims.
// Every failure maps to ErrTokenExpired or ErrTokenInvalid; verification
// never panics on hostile input.
func (cd *Codec) Verify(tokenString string) (*Claims, error) {
	token, err := cd.parser.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		return cd.secret, nil
	})

	if err != nil {
		// the library verifies the signature before validating expiry, so a
		// tampered token reports invalid here even when it is also stale
		if errors.Is(err, jwt.ErrTokenExpired) && !errors.Is(err, jwt.ErrTokenSignatureInvalid) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}
