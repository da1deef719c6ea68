package main

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/bottlen/server/api/rest/auth"
	"github.com/bottlen/server/api/rest/health"
	"github.com/bottlen/server/api/rest/users"
	authmw "github.com/bottlen/server/internal/auth"
	"github.com/bottlen/server/internal/config"
)

// sets up all API routes and middleware
func RegisterRoutes(router *gin.Engine, server *Server) {
	router.Use(CORSMiddleware(server.config))
	router.Use(authmw.Gate(server.codec, credentialExtractor(server.config)))

	router.GET("/health", health.Handler)

	v1 := router.Group("/api/v1")

	{
		v1.GET("/ping", health.PingHandler)

		auth.RegisterRoutes(v1, server.registry, server.provisioner, server.codec, server.userRepo, server.config)
		users.RegisterRoutes(v1.Group("/users"), server.userRepo, server.cache)
	}
}

// picks where the gate reads session tokens from
func credentialExtractor(cfg *config.Config) authmw.CredentialExtractor {
	if cfg.AuthTransport == config.TransportCookie {
		return authmw.CookieExtractor("Authorization")
	}
	return authmw.BearerHeaderExtractor()
}

func CORSMiddleware(cfg *config.Config) gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins:     []string{cfg.FrontendURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}
