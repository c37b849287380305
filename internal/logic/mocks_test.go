package logic

import (
	"context"
	"errors"
	"sync"

	"github.com/focusclub/leaderboard-api/internal/models"
)

// MockStatStore implements StatStore for cycle tests
type MockStatStore struct {
	mu      sync.Mutex
	Records []models.UserStat

	FindAllErr error
	// UpdateErrFor fails Update for the listed owner ids
	UpdateErrFor map[string]error

	Updated []models.UserStat
}

func (m *MockStatStore) FindAll(ctx context.Context) ([]models.UserStat, error) {
	if m.FindAllErr != nil {
		return nil, m.FindAllErr
	}
	out := make([]models.UserStat, len(m.Records))
	for i, r := range m.Records {
		out[i] = r.Clone()
	}
	return out, nil
}

func (m *MockStatStore) FindOne(ctx context.Context, ownerID string) (*models.UserStat, error) {
	for _, r := range m.Records {
		if r.OwnerID == ownerID {
			c := r.Clone()
			return &c, nil
		}
	}
	return nil, errors.New("not found")
}

func (m *MockStatStore) Create(ctx context.Context, stat *models.UserStat) (*models.UserStat, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Records = append(m.Records, stat.Clone())
	return stat, nil
}

func (m *MockStatStore) Update(ctx context.Context, stat *models.UserStat) (*models.UserStat, error) {
	if err, ok := m.UpdateErrFor[stat.OwnerID]; ok {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Updated = append(m.Updated, stat.Clone())
	return stat, nil
}

// FixedDate implements DateSource with a pinned calendar
type FixedDate string

func (d FixedDate) Today() string { return string(d) }
