package auth

import (
	"github.com/gin-gonic/gin"

	"github.com/bottlen/server/bottlen/users"
	"github.com/bottlen/server/internal/auth"
	"github.com/bottlen/server/internal/config"
	"github.com/bottlen/server/internal/identity"
)

// registers all authentication routes
func RegisterRoutes(
	router *gin.RouterGroup,
	registry *identity.Registry,
	resolver IdentityResolver,
	codec *auth.Codec,
	userRepo *users.Repository,
	cfg *config.Config,
) {
	authGroup := router.Group("/auth")
	{
		authGroup.GET("/:provider", BeginAuthHandler())
		authGroup.GET("/:provider/callback", CallbackHandler(registry, resolver, codec, cfg))
		authGroup.POST("/logout", LogoutHandler())
		authGroup.GET("/me", auth.RequireAuth(), GetCurrentUserHandler(userRepo))
	}
}
