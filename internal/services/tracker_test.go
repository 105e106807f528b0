package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/jcastell/wellness-backend/internal/types"
)

func TestValidateTrackerInput(t *testing.T) {
	date := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name    string
		input   TrackerInput
		wantErr bool
	}{
		{name: "valid_full", input: TrackerInput{Date: date, Steps: ip(8000), Calories: ip(2100), SleepHours: fp(7.5), MoodScore: ip(8), StressLevel: ip(3)}},
		{name: "valid_sparse", input: TrackerInput{Date: date}},
		{name: "missing_date", input: TrackerInput{Steps: ip(8000)}, wantErr: true},
		{name: "mood_too_low", input: TrackerInput{Date: date, MoodScore: ip(0)}, wantErr: true},
		{name: "mood_too_high", input: TrackerInput{Date: date, MoodScore: ip(11)}, wantErr: true},
		{name: "stress_too_high", input: TrackerInput{Date: date, StressLevel: ip(11)}, wantErr: true},
		{name: "negative_steps", input: TrackerInput{Date: date, Steps: ip(-1)}, wantErr: true},
		{name: "negative_calories", input: TrackerInput{Date: date, Calories: ip(-50)}, wantErr: true},
		{name: "negative_sleep", input: TrackerInput{Date: date, SleepHours: fp(-0.5)}, wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := validateTrackerInput(tc.input)
			if tc.wantErr && !errors.Is(err, ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestTrackerServiceGet(t *testing.T) {
	row := &types.Tracker{ID: uuid.New(), Date: time.Now()}
	trackers := &fakeTrackerRepo{byID: row}
	svc := NewTrackerService(nil, newTestLogger(t), trackers)
	ctx := authedCtx(uuid.New())

	got, err := svc.Get(ctx, row.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != row.ID {
		t.Fatalf("unexpected tracker: %+v", got)
	}

	_, err = svc.Get(ctx, uuid.New())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestTrackerServiceListDefaults(t *testing.T) {
	trackers := &fakeTrackerRepo{}
	svc := NewTrackerService(nil, newTestLogger(t), trackers)

	if _, err := svc.List(authedCtx(uuid.New()), -5, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if trackers.listSkip != 0 || trackers.listLimit != 30 {
		t.Fatalf("expected skip=0 limit=30, got skip=%d limit=%d", trackers.listSkip, trackers.listLimit)
	}
}

func TestTrackerServiceDeleteNotFound(t *testing.T) {
	svc := NewTrackerService(nil, newTestLogger(t), &fakeTrackerRepo{})

	err := svc.Delete(authedCtx(uuid.New()), uuid.New())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestTrackerServiceRequiresAuth(t *testing.T) {
	svc := NewTrackerService(nil, newTestLogger(t), &fakeTrackerRepo{})

	_, err := svc.List(context.Background(), 0, 10)
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}
