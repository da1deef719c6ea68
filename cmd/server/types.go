package main

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bottlen/server/bottlen/users"
	"github.com/bottlen/server/internal/auth"
	"github.com/bottlen/server/internal/cache"
	"github.com/bottlen/server/internal/config"
	"github.com/bottlen/server/internal/identity"
	"github.com/bottlen/server/internal/provision"
)

// holds all dependencies and state for the API server
type Server struct {
	db          *pgxpool.Pool
	config      *config.Config
	userRepo    *users.Repository
	cache       *cache.Client
	codec       *auth.Codec
	registry    *identity.Registry
	provisioner *provision.Provisioner
	router      *gin.Engine
}
