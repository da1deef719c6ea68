package users

import (
	"github.com/gin-gonic/gin"

	"github.com/bottlen/server/bottlen/users"
	"github.com/bottlen/server/internal/auth"
	"github.com/bottlen/server/internal/cache"
)

// RegisterRoutes sets up user profile routes
func RegisterRoutes(router *gin.RouterGroup, repo *users.Repository, store *cache.Client) {
	router.POST("/complete-signup", auth.RequireAuth(), CompleteSignupHandler(repo, store))
	router.POST("/phone/code", SendPhoneCodeHandler(store))
	router.POST("/phone/verify", VerifyPhoneCodeHandler(store))
}
