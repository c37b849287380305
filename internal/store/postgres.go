package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/focusclub/leaderboard-api/internal/models"
)

// ErrStatNotFound is returned when no stat record exists for an owner.
var ErrStatNotFound = errors.New("stat record not found")

// PgPool defines the interface for the PostgreSQL connection pool
type PgPool interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

const statColumns = `id, owner_id, time_today, time_total, daily_stats,
	score_week, score_alltime, all_time_score_record, scored_days,
	last_updated, created_at, updated_at`

// PostgresStatStore implements StatStore on a user_stats table. Every
// record is written independently; there are no cross-record transactions.
type PostgresStatStore struct {
	db PgPool
}

func NewPostgresStatStore(db PgPool) *PostgresStatStore {
	return &PostgresStatStore{db: db}
}

func (s *PostgresStatStore) FindAll(ctx context.Context) ([]models.UserStat, error) {
	rows, err := s.db.Query(ctx, `
		SELECT `+statColumns+`
		FROM user_stats
		ORDER BY created_at
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query user stats: %w", err)
	}
	defer rows.Close()

	var stats []models.UserStat
	for rows.Next() {
		stat, err := scanStat(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user stat: %w", err)
		}
		stats = append(stats, *stat)
	}
	return stats, rows.Err()
}

func (s *PostgresStatStore) FindOne(ctx context.Context, ownerID string) (*models.UserStat, error) {
	row := s.db.QueryRow(ctx, `
		SELECT `+statColumns+`
		FROM user_stats
		WHERE owner_id = $1
	`, ownerID)

	stat, err := scanStat(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrStatNotFound
		}
		return nil, fmt.Errorf("failed to get user stat: %w", err)
	}
	return stat, nil
}

func (s *PostgresStatStore) Create(ctx context.Context, stat *models.UserStat) (*models.UserStat, error) {
	if stat.ID == "" {
		stat.ID = uuid.New().String()
	}
	daily, record, scored, err := marshalStatFields(stat)
	if err != nil {
		return nil, err
	}

	row := s.db.QueryRow(ctx, `
		INSERT INTO user_stats (id, owner_id, time_today, time_total, daily_stats,
			score_week, score_alltime, all_time_score_record, scored_days,
			last_updated, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
		RETURNING `+statColumns+`
	`, stat.ID, stat.OwnerID, stat.TimeToday, stat.TimeTotal, daily,
		stat.ScoreWeek, stat.ScoreAlltime, record, scored, stat.LastUpdated)

	created, err := scanStat(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create user stat: %w", err)
	}
	return created, nil
}

func (s *PostgresStatStore) Update(ctx context.Context, stat *models.UserStat) (*models.UserStat, error) {
	daily, record, scored, err := marshalStatFields(stat)
	if err != nil {
		return nil, err
	}

	row := s.db.QueryRow(ctx, `
		UPDATE user_stats
		SET time_today = $2,
		    time_total = $3,
		    daily_stats = $4,
		    score_week = $5,
		    score_alltime = $6,
		    all_time_score_record = $7,
		    scored_days = $8,
		    last_updated = $9,
		    updated_at = NOW()
		WHERE owner_id = $1
		RETURNING `+statColumns+`
	`, stat.OwnerID, stat.TimeToday, stat.TimeTotal, daily, stat.ScoreWeek,
		stat.ScoreAlltime, record, scored, stat.LastUpdated)

	updated, err := scanStat(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrStatNotFound
		}
		return nil, fmt.Errorf("failed to update user stat: %w", err)
	}
	return updated, nil
}

// AddTime folds minutes into the running counters with a single in-place
// increment. The rollover fields are never read or rewritten here, so a
// concurrent cycle cannot be clobbered by a stale snapshot.
func (s *PostgresStatStore) AddTime(ctx context.Context, ownerID string, minutes float64) (*models.UserStat, error) {
	row := s.db.QueryRow(ctx, `
		UPDATE user_stats
		SET time_today = time_today + $2,
		    time_total = time_total + $2,
		    updated_at = NOW()
		WHERE owner_id = $1
		RETURNING `+statColumns+`
	`, ownerID, minutes)

	updated, err := scanStat(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrStatNotFound
		}
		return nil, fmt.Errorf("failed to add time: %w", err)
	}
	return updated, nil
}

func marshalStatFields(stat *models.UserStat) (daily, record, scored []byte, err error) {
	if daily, err = json.Marshal(stat.DailyStats); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to marshal daily_stats: %w", err)
	}
	if record, err = json.Marshal(stat.AllTimeScoreRecord); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to marshal all_time_score_record: %w", err)
	}
	if scored, err = json.Marshal(stat.ScoredDays); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to marshal scored_days: %w", err)
	}
	return daily, record, scored, nil
}

func scanStat(row pgx.Row) (*models.UserStat, error) {
	var (
		stat      models.UserStat
		daily     []byte
		record    []byte
		scored    []byte
		createdAt time.Time
		updatedAt time.Time
	)
	err := row.Scan(&stat.ID, &stat.OwnerID, &stat.TimeToday, &stat.TimeTotal,
		&daily, &stat.ScoreWeek, &stat.ScoreAlltime, &record, &scored,
		&stat.LastUpdated, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	stat.DailyStats = make(map[int]float64)
	if len(daily) > 0 {
		if err := json.Unmarshal(daily, &stat.DailyStats); err != nil {
			return nil, fmt.Errorf("failed to unmarshal daily_stats: %w", err)
		}
	}
	stat.AllTimeScoreRecord = []int{}
	if len(record) > 0 {
		if err := json.Unmarshal(record, &stat.AllTimeScoreRecord); err != nil {
			return nil, fmt.Errorf("failed to unmarshal all_time_score_record: %w", err)
		}
	}
	stat.ScoredDays = make(map[int]int)
	if len(scored) > 0 {
		if err := json.Unmarshal(scored, &stat.ScoredDays); err != nil {
			return nil, fmt.Errorf("failed to unmarshal scored_days: %w", err)
		}
	}
	stat.CreatedAt = createdAt
	stat.UpdatedAt = updatedAt
	return &stat, nil
}
