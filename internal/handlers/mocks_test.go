package handlers

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/focusclub/leaderboard-api/internal/models"
	"github.com/focusclub/leaderboard-api/internal/store"
)

// MockStatStore implements store.StatStore for handler tests
type MockStatStore struct {
	Records    []models.UserStat
	FindAllErr error
	UpdateErr  error
	Created    []models.UserStat
	Updated    []models.UserStat
	TimeAdds   []models.UserStat
}

func (m *MockStatStore) FindAll(ctx context.Context) ([]models.UserStat, error) {
	if m.FindAllErr != nil {
		return nil, m.FindAllErr
	}
	return m.Records, nil
}

func (m *MockStatStore) FindOne(ctx context.Context, ownerID string) (*models.UserStat, error) {
	for i := range m.Records {
		if m.Records[i].OwnerID == ownerID {
			c := m.Records[i].Clone()
			return &c, nil
		}
	}
	return nil, store.ErrStatNotFound
}

func (m *MockStatStore) Create(ctx context.Context, stat *models.UserStat) (*models.UserStat, error) {
	m.Created = append(m.Created, stat.Clone())
	return stat, nil
}

func (m *MockStatStore) Update(ctx context.Context, stat *models.UserStat) (*models.UserStat, error) {
	if m.UpdateErr != nil {
		return nil, m.UpdateErr
	}
	m.Updated = append(m.Updated, stat.Clone())
	return stat, nil
}

func (m *MockStatStore) AddTime(ctx context.Context, ownerID string, minutes float64) (*models.UserStat, error) {
	if m.UpdateErr != nil {
		return nil, m.UpdateErr
	}
	for i := range m.Records {
		if m.Records[i].OwnerID == ownerID {
			m.Records[i].TimeToday += minutes
			m.Records[i].TimeTotal += minutes
			c := m.Records[i].Clone()
			m.TimeAdds = append(m.TimeAdds, c)
			return &c, nil
		}
	}
	return nil, store.ErrStatNotFound
}

// MockCycleRunner implements CycleRunner
type MockCycleRunner struct {
	Report     *models.CycleReport
	TriggerErr error
	Last       *models.CycleReport
	Triggers   int
}

func (m *MockCycleRunner) TriggerCycle(ctx context.Context) (*models.CycleReport, error) {
	m.Triggers++
	if m.TriggerErr != nil {
		return nil, m.TriggerErr
	}
	return m.Report, nil
}

func (m *MockCycleRunner) LastReport() *models.CycleReport {
	return m.Last
}

var errBoom = errors.New("boom")

func newTestHandler(stats *MockStatStore, cycle *MockCycleRunner) *Handler {
	return New(Config{
		Logger: zap.NewNop(),
		Stats:  stats,
		Cycle:  cycle,
	})
}

func statWith(ownerID string, today, total float64, week, alltime int) models.UserStat {
	st := models.NewUserStat("stat-"+ownerID, ownerID)
	st.TimeToday = today
	st.TimeTotal = total
	st.ScoreWeek = week
	st.ScoreAlltime = alltime
	return *st
}
