package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	redisclient "github.com/jcastell/wellness-backend/internal/clients/redis"
	"github.com/jcastell/wellness-backend/internal/logger"
	"github.com/jcastell/wellness-backend/internal/repos"
	"github.com/jcastell/wellness-backend/internal/requestdata"
	"github.com/jcastell/wellness-backend/internal/types"
)

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("failed to build test logger: %v", err)
	}
	return log
}

func authedCtx(userID uuid.UUID) context.Context {
	return requestdata.WithRequestData(context.Background(), &requestdata.RequestData{
		UserID: userID,
		Role:   types.RoleUser,
	})
}

func ip(v int) *int         { return &v }
func fp(v float64) *float64 { return &v }

// fakeTrackerRepo serves canned rows and counts queries.
type fakeTrackerRepo struct {
	recent     []*types.Tracker
	since      []*types.Tracker
	latest     *types.Tracker
	byID       *types.Tracker
	deleteOK   bool
	aggregates map[uuid.UUID]*repos.TrackerAggregates

	sinceCalls int
	aggCalls   int
	listSkip   int
	listLimit  int
}

func (f *fakeTrackerRepo) Create(ctx context.Context, tx *gorm.DB, tracker *types.Tracker) error {
	return nil
}

func (f *fakeTrackerRepo) GetByID(ctx context.Context, tx *gorm.DB, userID, trackerID uuid.UUID) (*types.Tracker, error) {
	if f.byID != nil && f.byID.ID == trackerID {
		return f.byID, nil
	}
	return nil, nil
}

func (f *fakeTrackerRepo) ExistsForDate(ctx context.Context, tx *gorm.DB, userID uuid.UUID, date time.Time) (bool, error) {
	return false, nil
}

func (f *fakeTrackerRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, skip, limit int) ([]*types.Tracker, error) {
	f.listSkip = skip
	f.listLimit = limit
	return f.recent, nil
}

func (f *fakeTrackerRepo) ListRecent(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.Tracker, error) {
	if limit < len(f.recent) {
		return f.recent[:limit], nil
	}
	return f.recent, nil
}

func (f *fakeTrackerRepo) ListSince(ctx context.Context, tx *gorm.DB, userID uuid.UUID, since time.Time) ([]*types.Tracker, error) {
	f.sinceCalls++
	return f.since, nil
}

func (f *fakeTrackerRepo) Latest(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.Tracker, error) {
	return f.latest, nil
}

func (f *fakeTrackerRepo) Update(ctx context.Context, tx *gorm.DB, tracker *types.Tracker) error {
	return nil
}

func (f *fakeTrackerRepo) Delete(ctx context.Context, tx *gorm.DB, userID, trackerID uuid.UUID) (bool, error) {
	return f.deleteOK, nil
}

func (f *fakeTrackerRepo) Aggregates(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*repos.TrackerAggregates, error) {
	f.aggCalls++
	if agg, ok := f.aggregates[userID]; ok {
		return agg, nil
	}
	return &repos.TrackerAggregates{}, nil
}

// fakeInsightRepo records created insights in order.
type fakeInsightRepo struct {
	created []*types.Insight
}

func (f *fakeInsightRepo) Create(ctx context.Context, tx *gorm.DB, insight *types.Insight) error {
	f.created = append(f.created, insight)
	return nil
}

func (f *fakeInsightRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.Insight, error) {
	if limit < len(f.created) {
		return f.created[:limit], nil
	}
	return f.created, nil
}

// fakeUserRepo serves a fixed user list.
type fakeUserRepo struct {
	users        []*types.User
	listAllCalls int
}

func (f *fakeUserRepo) Create(ctx context.Context, tx *gorm.DB, user *types.User) error {
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.User, error) {
	for _, u := range f.users {
		if u.ID == userID {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*types.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) EmailExists(ctx context.Context, tx *gorm.DB, email string) (bool, error) {
	u, _ := f.GetByEmail(ctx, tx, email)
	return u != nil, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, tx *gorm.DB, user *types.User) error {
	return nil
}

func (f *fakeUserRepo) ListAll(ctx context.Context, tx *gorm.DB) ([]*types.User, error) {
	f.listAllCalls++
	return f.users, nil
}

// fakeCache is an in-memory Cache. With unavailable set every lookup
// reports Unavailable, mirroring a down Redis.
type fakeCache struct {
	entries     map[string]string
	unavailable bool
	storeErr    error

	lastStoreKey string
	lastStoreTTL time.Duration
	storeCalls   int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string]string{}}
}

func (f *fakeCache) Lookup(ctx context.Context, key string) (string, redisclient.LookupResult) {
	if f.unavailable {
		return "", redisclient.Unavailable
	}
	if val, ok := f.entries[key]; ok {
		return val, redisclient.Hit
	}
	return "", redisclient.Miss
}

func (f *fakeCache) Store(ctx context.Context, key, value string, ttl time.Duration) error {
	f.storeCalls++
	f.lastStoreKey = key
	f.lastStoreTTL = ttl
	if f.storeErr != nil {
		return f.storeErr
	}
	if !f.unavailable {
		f.entries[key] = value
	}
	return nil
}

func (f *fakeCache) Close() error { return nil }

// fakeAIClient returns a fixed answer (or error) and records prompts.
type fakeAIClient struct {
	answer string
	err    error

	calls      int
	lastSystem string
	lastUser   string
}

func (f *fakeAIClient) GenerateText(ctx context.Context, system, user string) (string, error) {
	f.calls++
	f.lastSystem = system
	f.lastUser = user
	if f.err != nil {
		return "", f.err
	}
	return f.answer, nil
}
