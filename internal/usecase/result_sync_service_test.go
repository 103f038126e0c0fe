package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/mzhadan/matchwatch/internal/domain/match"
	"github.com/mzhadan/matchwatch/internal/platform/logging"
)

func TestResultSyncUpdatesOnlyChangedMatches(t *testing.T) {
	t.Parallel()

	kickoff := time.Date(2026, 3, 1, 15, 0, 0, 0, time.UTC)
	stored := []match.Match{
		{ID: 1, HomeName: "Ajax", AwayName: "PSV", Status: match.StatusInProgress, StartAt: kickoff},
		{ID: 2, HomeName: "Feyenoord", AwayName: "AZ", Status: match.StatusInProgress, StartAt: kickoff},
	}

	two := 2
	zero := 0
	provider := &fakeProvider{
		matchDetails: func(_ context.Context, matchID int64) (match.Match, bool, error) {
			if matchID == 1 {
				return match.Match{
					ID: 1, HomeName: "Ajax", AwayName: "PSV",
					Status: match.StatusFinished, StartAt: kickoff,
					HomeScore: &two, AwayScore: &zero,
				}, true, nil
			}
			// Unchanged.
			return stored[1], true, nil
		},
	}
	matchRepo := &fakeMatchRepo{
		listRefreshable: func(context.Context, time.Time) ([]match.Match, error) { return stored, nil },
	}

	svc := NewResultSyncService(provider, matchRepo, ResultSyncConfig{}, logging.NewNop())
	summary, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.Fetched != 2 || summary.Updated != 1 || summary.Skipped != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if len(matchRepo.updated) != 1 || matchRepo.updated[0][0].ID != 1 {
		t.Fatalf("expected match 1 updated, got %+v", matchRepo.updated)
	}
	got := matchRepo.updated[0][0]
	if got.Status != match.StatusFinished || got.HomeScore == nil || *got.HomeScore != 2 {
		t.Fatalf("unexpected refreshed match: %+v", got)
	}
}

func TestResultSyncSkipsVanishedMatches(t *testing.T) {
	t.Parallel()

	provider := &fakeProvider{
		matchDetails: func(context.Context, int64) (match.Match, bool, error) {
			return match.Match{}, false, nil
		},
	}
	matchRepo := &fakeMatchRepo{
		listRefreshable: func(context.Context, time.Time) ([]match.Match, error) {
			return []match.Match{{ID: 1, Status: match.StatusInProgress}}, nil
		},
	}

	svc := NewResultSyncService(provider, matchRepo, ResultSyncConfig{}, logging.NewNop())
	summary, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Skipped != 1 || summary.Updated != 0 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
}
