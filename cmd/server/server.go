package main

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bottlen/server/bottlen/users"
	"github.com/bottlen/server/internal/auth"
	"github.com/bottlen/server/internal/cache"
	"github.com/bottlen/server/internal/config"
	"github.com/bottlen/server/internal/identity"
	"github.com/bottlen/server/internal/provision"
)

// creates and configures a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	ctx := context.Background()

	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	// configure connection pool for pooler compatibility
	// managed poolers hand out few connections, so keep our pool small
	poolConfig.MaxConns = 5
	poolConfig.MinConns = 1
	poolConfig.MaxConnLifetime = 30 * time.Minute
	poolConfig.MaxConnIdleTime = 5 * time.Minute
	poolConfig.HealthCheckPeriod = 1 * time.Minute

	// use simple protocol for PgBouncer compatibility: transaction mode
	// doesn't support prepared statements
	poolConfig.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol

	db, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create database pool: %w", err)
	}

	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store, err := cache.NewClient(cfg.RedisURL)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	codec, err := auth.NewCodec(cfg.JWTSecret)
	if err != nil {
		store.Close() //nolint:errcheck,gosec // best-effort cleanup on init failure
		db.Close()
		return nil, fmt.Errorf("failed to create token codec: %w", err)
	}

	userRepo := users.NewRepository(db)

	server := &Server{
		db:          db,
		config:      cfg,
		userRepo:    userRepo,
		cache:       store,
		codec:       codec,
		registry:    identity.DefaultRegistry(),
		provisioner: provision.New(userRepo, store),
		router:      gin.Default(),
	}

	RegisterRoutes(server.router, server)

	return server, nil
}
