// Dev seeder: creates the schema and a handful of demo users so the
// leaderboard has something to rank locally.
package main

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/focusclub/leaderboard-api/internal/models"
	"github.com/focusclub/leaderboard-api/internal/store"
)

const schema = `
CREATE TABLE IF NOT EXISTS user_stats (
	id UUID PRIMARY KEY,
	owner_id UUID UNIQUE NOT NULL,
	time_today DOUBLE PRECISION NOT NULL DEFAULT 0,
	time_total DOUBLE PRECISION NOT NULL DEFAULT 0,
	daily_stats JSONB NOT NULL DEFAULT '{}',
	score_week INTEGER NOT NULL DEFAULT 0,
	score_alltime INTEGER NOT NULL DEFAULT 0,
	all_time_score_record JSONB NOT NULL DEFAULT '[]',
	scored_days JSONB NOT NULL DEFAULT '{}',
	last_updated TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS api_tokens (
	token_hash TEXT PRIMARY KEY,
	owner_id UUID NOT NULL,
	revoked BOOLEAN NOT NULL DEFAULT false,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	dbURL := os.Getenv("POSTGRES_URL")
	if dbURL == "" {
		log.Fatal("POSTGRES_URL is not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer pool.Close()

	if _, err := pool.Exec(ctx, schema); err != nil {
		log.Fatalf("Failed to create schema: %v", err)
	}
	log.Println("Schema ready")

	stats := store.NewPostgresStatStore(pool)

	for i := 0; i < 5; i++ {
		ownerID := uuid.New().String()
		stat := models.NewUserStat(uuid.New().String(), ownerID)
		stat.TimeToday = float64(rand.Intn(120))
		stat.TimeTotal = stat.TimeToday

		if _, err := stats.Create(ctx, stat); err != nil {
			log.Fatalf("Failed to seed stat record: %v", err)
		}

		// one dev token per user: "dev-token-<n>"
		token := fmt.Sprintf("dev-token-%d", i)
		sum := sha256.Sum256([]byte(token))
		if _, err := pool.Exec(ctx,
			"INSERT INTO api_tokens (token_hash, owner_id) VALUES ($1, $2) ON CONFLICT DO NOTHING",
			hex.EncodeToString(sum[:]), ownerID); err != nil {
			log.Fatalf("Failed to seed token: %v", err)
		}

		log.Printf("Seeded user %s (today=%.0f, token=%s)", ownerID, stat.TimeToday, token)
	}

	log.Println("Done")
}
