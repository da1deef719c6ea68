package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// loads configuration from environment variables
func LoadEnvironmentVariables() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		_ = err // not an error - production environments may not have .env file
	}

	databaseURL := os.Getenv("DATABASE_URL")
	redisURL := os.Getenv("REDIS_URL")
	jwtSecret := os.Getenv("JWT_SECRET")
	sessionSecret := os.Getenv("SESSION_SECRET")
	environment := os.Getenv("ENVIRONMENT")

	if databaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	if redisURL == "" {
		return nil, fmt.Errorf("REDIS_URL environment variable is required")
	}

	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is required")
	}

	if sessionSecret == "" {
		return nil, fmt.Errorf("SESSION_SECRET environment variable is required")
	}

	if environment == "" {
		environment = "development"
	}

	tokenTTL := time.Hour
	if v := os.Getenv("JWT_TTL"); v != "" {
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("JWT_TTL must be a valid duration (e.g. 1h, 30m): %w", err)
		}
		if parsed <= 0 {
			return nil, fmt.Errorf("JWT_TTL must be positive, got %s", parsed)
		}
		tokenTTL = parsed
	}

	transport := TransportHeader
	switch v := os.Getenv("AUTH_TRANSPORT"); v {
	case "", "header":
		transport = TransportHeader
	case "cookie":
		transport = TransportCookie
	default:
		return nil, fmt.Errorf("AUTH_TRANSPORT must be \"header\" or \"cookie\", got %q", v)
	}

	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	frontendURL := os.Getenv("FRONTEND_URL")
	if frontendURL == "" {
		frontendURL = "http://localhost:5173"
	}

	return &Config{
		DatabaseURL:        databaseURL,
		RedisURL:           redisURL,
		JWTSecret:          jwtSecret,
		SessionSecret:      sessionSecret,
		TokenTTL:           tokenTTL,
		AuthTransport:      transport,
		BaseURL:            baseURL,
		FrontendURL:        frontendURL,
		Environment:        environment,
		GoogleClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		NaverClientID:      os.Getenv("NAVER_CLIENT_ID"),
		NaverClientSecret:  os.Getenv("NAVER_CLIENT_SECRET"),
		KakaoClientID:      os.Getenv("KAKAO_CLIENT_ID"),
		KakaoClientSecret:  os.Getenv("KAKAO_CLIENT_SECRET"),
	}, nil
}
