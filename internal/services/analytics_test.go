package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/jcastell/wellness-backend/internal/repos"
	"github.com/jcastell/wellness-backend/internal/types"
)

func newTestAnalytics(t *testing.T, trackers *fakeTrackerRepo, users *fakeUserRepo, cache *fakeCache) AnalyticsService {
	t.Helper()
	return NewAnalyticsService(nil, newTestLogger(t), trackers, users, cache)
}

func TestWellnessScoreNoData(t *testing.T) {
	svc := newTestAnalytics(t, &fakeTrackerRepo{}, &fakeUserRepo{}, newFakeCache())

	_, err := svc.WellnessScore(authedCtx(uuid.New()))
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestWellnessScoreRequiresAuth(t *testing.T) {
	svc := newTestAnalytics(t, &fakeTrackerRepo{}, &fakeUserRepo{}, newFakeCache())

	_, err := svc.WellnessScore(context.Background())
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestWellnessScoreDefaultsMissingFields(t *testing.T) {
	// All fields nil: defaults sleep=7, steps=5000, calories=2000,
	// stress=5 give 25 + 15 + 25 + 12.5.
	trackers := &fakeTrackerRepo{latest: &types.Tracker{ID: uuid.New(), Date: time.Now()}}
	svc := newTestAnalytics(t, trackers, &fakeUserRepo{}, newFakeCache())

	ws, err := svc.WellnessScore(authedCtx(uuid.New()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ws.Score != 77.5 {
		t.Fatalf("expected default score 77.5, got %v", ws.Score)
	}
	if len(ws.Recommendations) != 2 {
		t.Fatalf("expected 2 recommendations, got %v", ws.Recommendations)
	}
	if !strings.Contains(ws.Recommendations[0], "20-minute walk") {
		t.Fatalf("expected steps recommendation first, got %q", ws.Recommendations[0])
	}
}

func TestWellnessScoreUsesLoggedFields(t *testing.T) {
	trackers := &fakeTrackerRepo{latest: &types.Tracker{
		ID:          uuid.New(),
		Date:        time.Now(),
		SleepHours:  fp(8),
		Steps:       ip(10000),
		Calories:    ip(2000),
		StressLevel: ip(0),
	}}
	svc := newTestAnalytics(t, trackers, &fakeUserRepo{}, newFakeCache())

	ws, err := svc.WellnessScore(authedCtx(uuid.New()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ws.Score != 100 {
		t.Fatalf("expected score 100, got %v", ws.Score)
	}
}

func progressRow(daysAgo int, sleep float64, steps, calories, mood, stress int) *types.Tracker {
	return &types.Tracker{
		ID:          uuid.New(),
		Date:        time.Now().UTC().AddDate(0, 0, -daysAgo),
		SleepHours:  fp(sleep),
		Steps:       ip(steps),
		Calories:    ip(calories),
		MoodScore:   ip(mood),
		StressLevel: ip(stress),
	}
}

func TestProgressComputesAverages(t *testing.T) {
	trackers := &fakeTrackerRepo{since: []*types.Tracker{
		progressRow(3, 6, 1000, 1500, 4, 2),
		progressRow(2, 7, 2000, 2000, 5, 4),
		progressRow(1, 9, 3001, 2500, 7, 6),
	}}
	svc := newTestAnalytics(t, trackers, &fakeUserRepo{}, newFakeCache())

	res, err := svc.Progress(authedCtx(uuid.New()), 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Cached {
		t.Fatal("first computation must not report cached")
	}
	if len(res.Data.DailyData) != 3 {
		t.Fatalf("expected 3 daily entries, got %d", len(res.Data.DailyData))
	}
	wantDate := time.Now().UTC().AddDate(0, 0, -3).Format("2006-01-02")
	if res.Data.DailyData[0].Date != wantDate {
		t.Fatalf("expected first entry date %s, got %s", wantDate, res.Data.DailyData[0].Date)
	}

	avg := res.Data.Averages
	if avg.SleepHours != 7.33 {
		t.Fatalf("expected avg sleep 7.33, got %v", avg.SleepHours)
	}
	if avg.Steps != 2000 {
		t.Fatalf("expected avg steps 2000, got %v", avg.Steps)
	}
	if avg.Calories != 2000 {
		t.Fatalf("expected avg calories 2000, got %v", avg.Calories)
	}
	if avg.MoodScore != 5.33 {
		t.Fatalf("expected avg mood 5.33, got %v", avg.MoodScore)
	}
	if avg.StressLevel != 4 {
		t.Fatalf("expected avg stress 4, got %v", avg.StressLevel)
	}
}

func TestProgressSecondCallServedFromCache(t *testing.T) {
	trackers := &fakeTrackerRepo{since: []*types.Tracker{progressRow(1, 8, 9000, 2100, 7, 3)}}
	cache := newFakeCache()
	svc := newTestAnalytics(t, trackers, &fakeUserRepo{}, cache)
	ctx := authedCtx(uuid.New())

	first, err := svc.Progress(ctx, 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := svc.Progress(ctx, 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.Cached || !second.Cached {
		t.Fatalf("expected compute-then-cache, got cached=%v,%v", first.Cached, second.Cached)
	}
	if trackers.sinceCalls != 1 {
		t.Fatalf("cached call must skip the database, queries=%d", trackers.sinceCalls)
	}
	if second.Data.Averages != first.Data.Averages {
		t.Fatalf("cached averages diverge: %+v vs %+v", second.Data.Averages, first.Data.Averages)
	}
	if cache.lastStoreTTL != progressCacheTTL {
		t.Fatalf("expected %v TTL, got %v", progressCacheTTL, cache.lastStoreTTL)
	}
}

func TestProgressDefaultWindow(t *testing.T) {
	trackers := &fakeTrackerRepo{}
	cache := newFakeCache()
	svc := newTestAnalytics(t, trackers, &fakeUserRepo{}, cache)
	userID := uuid.New()

	if _, err := svc.Progress(authedCtx(userID), 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantKey := fmt.Sprintf("analytics:progress:%s:30", userID)
	if cache.lastStoreKey != wantKey {
		t.Fatalf("expected cache key %q, got %q", wantKey, cache.lastStoreKey)
	}
}

func TestProgressEmptyHistory(t *testing.T) {
	svc := newTestAnalytics(t, &fakeTrackerRepo{}, &fakeUserRepo{}, newFakeCache())

	res, err := svc.Progress(authedCtx(uuid.New()), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Data.DailyData) != 0 {
		t.Fatalf("expected no daily entries, got %d", len(res.Data.DailyData))
	}
	if res.Data.Averages != (ProgressAverages{}) {
		t.Fatalf("expected zero averages, got %+v", res.Data.Averages)
	}
}

func TestAdminOverview(t *testing.T) {
	active := &types.User{ID: uuid.New(), Name: "Ada", Email: "ada@example.com"}
	idle := &types.User{ID: uuid.New(), Name: "Bo", Email: "bo@example.com"}
	lastDate := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)

	trackers := &fakeTrackerRepo{aggregates: map[uuid.UUID]*repos.TrackerAggregates{
		active.ID: {
			TotalEntries: 12,
			LastDate:     &lastDate,
			AvgSleep:     fp(7.256),
			AvgSteps:     fp(8432.4),
			AvgMood:      fp(6.5),
		},
	}}
	users := &fakeUserRepo{users: []*types.User{active, idle}}
	cache := newFakeCache()
	svc := newTestAnalytics(t, trackers, users, cache)
	ctx := context.Background()

	res, err := svc.AdminOverview(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Cached || len(res.Data) != 2 {
		t.Fatalf("unexpected overview: cached=%v rows=%d", res.Cached, len(res.Data))
	}

	row := res.Data[0]
	if row.UserID != active.ID.String() || row.TotalEntries != 12 {
		t.Fatalf("unexpected active row: %+v", row)
	}
	if row.LastLogged == nil || *row.LastLogged != "2026-08-20" {
		t.Fatalf("unexpected last_logged: %v", row.LastLogged)
	}
	if row.AvgSleep != 7.26 || row.AvgSteps != 8432 || row.AvgMood != 6.5 {
		t.Fatalf("unexpected rounding: %+v", row)
	}

	empty := res.Data[1]
	if empty.TotalEntries != 0 || empty.LastLogged != nil || empty.AvgSleep != 0 {
		t.Fatalf("expected zero row for idle user, got %+v", empty)
	}

	again, err := svc.AdminOverview(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !again.Cached {
		t.Fatal("second overview should come from cache")
	}
	if users.listAllCalls != 1 || trackers.aggCalls != 2 {
		t.Fatalf("cached overview must skip the database, listAll=%d agg=%d", users.listAllCalls, trackers.aggCalls)
	}
}
