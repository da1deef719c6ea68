package auth

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/bottlen/server/internal/config"
	"github.com/gorilla/sessions"
	"github.com/markbates/goth"
	"github.com/markbates/goth/gothic"
	"github.com/markbates/goth/providers/google"
	"github.com/markbates/goth/providers/kakao"
	"github.com/markbates/goth/providers/naver"
)

// sets up all OAuth providers using goth
func InitializeProviders(cfg *config.Config) error {
	// initialize gothic session store for the OAuth handshake
	store := sessions.NewCookieStore([]byte(cfg.SessionSecret))

	isHTTPS := strings.HasPrefix(cfg.BaseURL, "https://")

	// configure cookie for OAuth redirects
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   300, // 5 minutes, enough for OAuth flow
		HttpOnly: true,
		Secure:   isHTTPS,
		SameSite: http.SameSiteLaxMode,
	}

	gothic.Store = store

	if cfg.GoogleClientID == "" || cfg.GoogleClientSecret == "" {
		return fmt.Errorf("GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET must be set")
	}

	providers := []goth.Provider{
		google.New(
			cfg.GoogleClientID,
			cfg.GoogleClientSecret,
			cfg.BaseURL+"/api/v1/auth/google/callback",
			"email", "profile",
		),
	}

	if cfg.NaverClientID != "" && cfg.NaverClientSecret != "" {
		providers = append(providers, naver.New(
			cfg.NaverClientID,
			cfg.NaverClientSecret,
			cfg.BaseURL+"/api/v1/auth/naver/callback",
		))
	}

	if cfg.KakaoClientID != "" && cfg.KakaoClientSecret != "" {
		providers = append(providers, kakao.New(
			cfg.KakaoClientID,
			cfg.KakaoClientSecret,
			cfg.BaseURL+"/api/v1/auth/kakao/callback",
		))
	}

	goth.UseProviders(providers...)
	return nil
}
