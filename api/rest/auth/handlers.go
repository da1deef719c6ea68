package auth

import (
	"net/http"
	"net/url"
	"slices"

	"github.com/gin-gonic/gin"
	"github.com/markbates/goth/gothic"

	"github.com/bottlen/server/bottlen/users"
	"github.com/bottlen/server/internal/auth"
	"github.com/bottlen/server/internal/config"
	"github.com/bottlen/server/internal/errors"
	"github.com/bottlen/server/internal/identity"
	"github.com/bottlen/server/internal/logger"
)

// BeginAuthHandler godoc
// @Summary Start OAuth authentication
// @Description Begin OAuth authentication flow with specified provider (google, naver, kakao)
// @Tags auth
// @Param provider path string true "OAuth provider" Enums(google, naver, kakao)
// @Success 302 {string} string "Redirect to OAuth provider"
// @Failure 400 {object} errors.ErrorResponse
// @Router /api/v1/auth/{provider} [get]
func BeginAuthHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		provider := c.Param("provider")

		if !isValidProvider(provider) {
			errors.BadRequest(c, "invalid provider", nil)
			return
		}

		// set provider in query for gothic
		q := c.Request.URL.Query()
		q.Add("provider", provider)
		c.Request.URL.RawQuery = q.Encode()

		gothic.BeginAuthHandler(c.Writer, c.Request)
	}
}

// CallbackHandler godoc
// @Summary OAuth callback
// @Description Provider callback. Provisions the local user, issues a session token and redirects to the frontend
// @Tags auth
// @Param provider path string true "OAuth provider" Enums(google, naver, kakao)
// @Success 302 {string} string "Redirect to frontend oauth-callback with token"
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /api/v1/auth/{provider}/callback [get]
func CallbackHandler(
	registry *identity.Registry,
	resolver IdentityResolver,
	codec *auth.Codec,
	cfg *config.Config,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		provider := c.Param("provider")

		q := c.Request.URL.Query()
		q.Add("provider", provider)
		c.Request.URL.RawQuery = q.Encode()

		gothUser, err := gothic.CompleteUserAuth(c.Writer, c.Request)
		if err != nil {
			// a failed or denied handshake is the caller's problem, not ours
			logger.Warn("oauth handshake failed", "provider", provider, "error", err)
			errors.Unauthorized(c, "authentication failed")
			return
		}

		finishLogin(c, provider, gothUser.RawData, registry, resolver, codec, cfg)
	}
}

// finishLogin runs the post-handshake chain: normalize the raw payload,
// resolve the local user, issue a session token and redirect to the frontend
func finishLogin(
	c *gin.Context,
	provider string,
	raw map[string]any,
	registry *identity.Registry,
	resolver IdentityResolver,
	codec *auth.Codec,
	cfg *config.Config,
) {
	// the raw userinfo payload keeps each provider's native shape;
	// normalization decides per provider which fields are mandatory
	id, err := registry.Normalize(identity.Provider(provider), raw)
	if err != nil {
		logger.Warn("provider payload rejected", "provider", provider, "error", err)
		errors.Unauthorized(c, err.Error())
		return
	}

	user, isNewUser, err := resolver.Resolve(c.Request.Context(), id)
	if err != nil {
		errors.InternalError(c, "failed to provision user", err)
		return
	}

	token, err := codec.Issue(auth.SessionClaims{
		UserID:   user.ID,
		Email:    id.Email,
		GlobalID: id.GlobalID(),
		Role:     string(user.Role),
	}, cfg.TokenTTL)
	if err != nil {
		errors.InternalError(c, "failed to issue session token", err)
		return
	}

	redirectTo := "/"
	if isNewUser {
		redirectTo = "/signup-extra"
	}

	target := cfg.FrontendURL + "/oauth-callback?" + url.Values{
		"token":      {token},
		"redirectTo": {redirectTo},
	}.Encode()

	c.Redirect(http.StatusFound, target)
}

// GetCurrentUserHandler godoc
// @Summary Get current user
// @Description Get authenticated user's profile
// @Tags auth
// @Produce json
// @Success 200 {object} UserResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /api/v1/auth/me [get]
// @Security BearerAuth
func GetCurrentUserHandler(userRepo *users.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := auth.CurrentPrincipal(c)
		if !ok {
			errors.Unauthorized(c, "")
			return
		}

		user, err := userRepo.FindByID(c.Request.Context(), principal.UserID)
		if err != nil {
			errors.NotFound(c, "user")
			return
		}

		c.JSON(http.StatusOK, UserResponse{User: user})
	}
}

// LogoutHandler godoc
// @Summary Logout
// @Description Clear the OAuth handshake session
// @Tags auth
// @Produce json
// @Success 200 {object} MessageResponse
// @Router /api/v1/auth/logout [post]
func LogoutHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := gothic.Logout(c.Writer, c.Request); err != nil {
			logger.ErrorErr(err, "failed to clear gothic session")
		}
		c.JSON(http.StatusOK, MessageResponse{Message: "logged out successfully"})
	}
}

func isValidProvider(provider string) bool {
	validProviders := []string{"google", "naver", "kakao"}
	return slices.Contains(validProviders, provider)
}
