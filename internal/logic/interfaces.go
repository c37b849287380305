package logic

import (
	"context"
	"time"

	"github.com/focusclub/leaderboard-api/internal/models"
)

// DateLayout is the client-local calendar date format used by LastUpdated.
const DateLayout = "02/01/2006"

// StatStore is the persistence port for user stat records. Implementations
// do not provide cross-record transactions; every record is written
// independently.
type StatStore interface {
	FindAll(ctx context.Context) ([]models.UserStat, error)
	FindOne(ctx context.Context, ownerID string) (*models.UserStat, error)
	Create(ctx context.Context, stat *models.UserStat) (*models.UserStat, error)
	Update(ctx context.Context, stat *models.UserStat) (*models.UserStat, error)
}

// DateSource provides "today" as a DateLayout string. Injectable so cycle
// tests can pin the calendar.
type DateSource interface {
	Today() string
}

// LocalDateSource formats the current time in a fixed location.
type LocalDateSource struct {
	loc *time.Location
}

func NewLocalDateSource(loc *time.Location) *LocalDateSource {
	return &LocalDateSource{loc: loc}
}

func (s *LocalDateSource) Today() string {
	return time.Now().In(s.loc).Format(DateLayout)
}

// CycleService runs one full leaderboard cycle over all users.
type CycleService interface {
	RunCycle(ctx context.Context) (*models.CycleReport, error)
}
