package config

import "time"

// CredentialTransport selects where the authentication gate reads the
// session token from. Exactly one transport is active per deployment.
type CredentialTransport string

const (
	// TransportHeader reads "Authorization: Bearer <token>"
	TransportHeader CredentialTransport = "header"
	// TransportCookie reads the raw token from an "Authorization" cookie
	TransportCookie CredentialTransport = "cookie"
)

type Config struct {
	DatabaseURL   string
	RedisURL      string
	JWTSecret     string
	SessionSecret string

	// session token lifetime, explicit duration (default 1h)
	TokenTTL time.Duration

	AuthTransport CredentialTransport

	BaseURL     string
	FrontendURL string
	Environment string

	GoogleClientID     string
	GoogleClientSecret string
	NaverClientID      string
	NaverClientSecret  string
	KakaoClientID      string
	KakaoClientSecret  string
}
