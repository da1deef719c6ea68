package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/bottlen/server/internal/auth"
)

func main() {
	// load environment
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found")
	}

	// connect to database
	dbConnString := os.Getenv("DATABASE_URL")
	if dbConnString == "" {
		log.Fatal("DATABASE_URL not set")
	}

	dbPool, err := pgxpool.New(context.Background(), dbConnString)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer dbPool.Close()

	ctx := context.Background()

	// create or find test user
	testEmail := "test@bottlen.dev"
	testProvider := "google"
	testProviderID := "test-user-123"
	var userID int64

	// check if user exists
	err = dbPool.QueryRow(ctx, "SELECT id FROM users WHERE provider = $1 AND provider_id = $2", testProvider, testProviderID).Scan(&userID)

	if err != nil {
		// create test user
		err = dbPool.QueryRow(ctx, `
			INSERT INTO users (provider, provider_id, email, created_at, updated_at)
			VALUES ($1, $2, $3, NOW(), NOW())
			RETURNING id
		`, testProvider, testProviderID, testEmail).Scan(&userID)

		if err != nil {
			log.Fatalf("Failed to create test user: %v", err)
		}
		fmt.Printf("✅ Created test user: %s (ID: %d)\n", testEmail, userID)
	} else {
		fmt.Printf("✅ Using existing test user (ID: %d)\n", userID)
	}

	// generate session token
	codec, err := auth.NewCodec(os.Getenv("JWT_SECRET"))
	if err != nil {
		log.Fatalf("Failed to create token codec: %v", err)
	}

	token, err := codec.Issue(auth.SessionClaims{
		UserID:   userID,
		Email:    testEmail,
		GlobalID: testProvider + ":" + testProviderID,
		Role:     "USER",
	}, time.Hour)
	if err != nil {
		log.Fatalf("Failed to generate token: %v", err)
	}

	fmt.Printf("\n🔑 Test JWT Token:\n%s\n\n", token)
	fmt.Printf("Export this token for testing:\nexport TEST_TOKEN=\"%s\"\n", token)
}
