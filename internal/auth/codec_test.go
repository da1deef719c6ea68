package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-testing"

func testClaims() SessionClaims {
	return SessionClaims{
		UserID:   7,
		Email:    "test@example.com",
		GlobalID: "google:108204567890123456789",
		Role:     "USER",
	}
}

func TestNewCodec_EmptySecret(t *testing.T) {
	_, err := NewCodec("")
	assert.Error(t, err)
}

func TestCodec_RoundTrip(t *testing.T) {
	codec, err := NewCodec(testSecret)
	require.NoError(t, err)

	token, err := codec.Issue(testClaims(), time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 3, len(strings.Split(token, ".")), "JWT should have 3 parts")

	claims, err := codec.Verify(token)
	require.NoError(t, err)

	assert.Equal(t, testClaims(), claims.Session())
	assert.WithinDuration(t, time.Now(), claims.IssuedAt.Time, 5*time.Second)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestCodec_Expired(t *testing.T) {
	codec, err := NewCodec(testSecret)
	require.NoError(t, err)

	token, err := codec.Issue(testClaims(), -time.Minute)
	require.NoError(t, err)

	_, err = codec.Verify(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestCodec_TamperedSignature(t *testing.T) {
	codec, err := NewCodec(testSecret)
	require.NoError(t, err)

	token, err := codec.Issue(testClaims(), time.Hour)
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	sig := parts[2]

	// flipping any byte of the signature segment must yield invalid,
	// never expired, never a crash
	for i := 0; i < len(sig); i++ {
		mutated := []byte(sig)
		if mutated[i] == 'A' {
			mutated[i] = 'B'
		} else {
			mutated[i] = 'A'
		}

		tampered := parts[0] + "." + parts[1] + "." + string(mutated)

		_, err := codec.Verify(tampered)
		assert.ErrorIs(t, err, ErrTokenInvalid, "byte %d", i)
		assert.NotErrorIs(t, err, ErrTokenExpired, "byte %d", i)
	}
}

func TestCodec_SignaturePaddingBitFlip(t *testing.T) {
	codec, err := NewCodec(testSecret)
	require.NoError(t, err)

	token, err := codec.Issue(testClaims(), time.Hour)
	require.NoError(t, err)

	// a 32-byte HS256 MAC spans 43 base64 chars, so the final char carries
	// 2 unused low bits. Flipping the lowest bit of its sextet changes the
	// char but, under lenient decoding, not the decoded MAC; it must still
	// be rejected.
	const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"

	last := token[len(token)-1]
	idx := strings.IndexByte(alphabet, last)
	require.NotEqual(t, -1, idx)

	mutated := token[:len(token)-1] + string(alphabet[idx^1])
	require.NotEqual(t, token, mutated)

	_, err = codec.Verify(mutated)
	assert.ErrorIs(t, err, ErrTokenInvalid)
	assert.NotErrorIs(t, err, ErrTokenExpired)
}

func TestCodec_TamperedExpiredToken(t *testing.T) {
	codec, err := NewCodec(testSecret)
	require.NoError(t, err)

	token, err := codec.Issue(testClaims(), -time.Minute)
	require.NoError(t, err)

	// a stale token with a broken signature is invalid, not expired
	tampered := token[:len(token)-5] + "XXXXX"

	_, err = codec.Verify(tampered)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestCodec_WrongSecret(t *testing.T) {
	issuer, err := NewCodec(testSecret)
	require.NoError(t, err)

	verifier, err := NewCodec("different-secret-key")
	require.NoError(t, err)

	token, err := issuer.Issue(testClaims(), time.Hour)
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestCodec_AlgorithmConfusionAttack(t *testing.T) {
	codec, err := NewCodec(testSecret)
	require.NoError(t, err)

	claims := Claims{
		UserID:   1,
		Email:    "attacker@evil.com",
		GlobalID: "google:attacker",
		Role:     "ADMIN",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	// attempt to use the "none" signing method
	token := jwt.NewWithClaims(jwt.SigningMethodNone, claims)
	tokenString, _ := token.SignedString(jwt.UnsafeAllowNoneSignatureType) //nolint:errcheck // test code

	_, err = codec.Verify(tokenString)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestCodec_MalformedToken(t *testing.T) {
	codec, err := NewCodec(testSecret)
	require.NoError(t, err)

	malformedTokens := []string{
		"",
		"not.a.jwt",
		"only.two",
		"too.many.parts.in.this.token",
		"<script>alert('xss')</script>",
	}

	for _, token := range malformedTokens {
		_, err := codec.Verify(token)
		assert.ErrorIs(t, err, ErrTokenInvalid, "malformed token %q should be rejected", token)
	}
}
