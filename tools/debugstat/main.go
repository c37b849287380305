package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/focusclub/leaderboard-api/internal/store"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: debugstat <owner-id>")
	}
	ownerID := os.Args[1]

	dbURL := os.Getenv("POSTGRES_URL")
	if dbURL == "" {
		dbURL = "postgres://localhost:5432/focusclub"
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer pool.Close()

	stat, err := store.NewPostgresStatStore(pool).FindOne(ctx, ownerID)
	if err != nil {
		log.Fatalf("Lookup failed: %v", err)
	}

	fmt.Printf("owner:        %s\n", stat.OwnerID)
	fmt.Printf("last_updated: %q\n", stat.LastUpdated)
	fmt.Printf("time_today:   %.1f\n", stat.TimeToday)
	fmt.Printf("time_total:   %.1f\n", stat.TimeTotal)
	fmt.Printf("daily_stats:  %v\n", stat.DailyStats)
	fmt.Printf("score_week:   %d\n", stat.ScoreWeek)
	fmt.Printf("score_all:    %d (record %v)\n", stat.ScoreAlltime, stat.AllTimeScoreRecord)
	fmt.Printf("scored_days:  %v\n", stat.ScoredDays)
}
