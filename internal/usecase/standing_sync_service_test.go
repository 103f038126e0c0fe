package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/mzhadan/matchwatch/internal/domain/match"
	"github.com/mzhadan/matchwatch/internal/domain/standing"
	"github.com/mzhadan/matchwatch/internal/platform/logging"
)

type fakeStandingRepo struct {
	replaced map[match.SeasonRef][]standing.Standing
}

func (f *fakeStandingRepo) ReplaceForSeason(_ context.Context, tournamentID, seasonID int64, rows []standing.Standing) error {
	if f.replaced == nil {
		f.replaced = map[match.SeasonRef][]standing.Standing{}
	}
	f.replaced[match.SeasonRef{TournamentID: tournamentID, SeasonID: seasonID}] = rows
	return nil
}

func TestStandingSyncReplacesActiveSeasons(t *testing.T) {
	t.Parallel()

	provider := &fakeProvider{
		seasonStandings: func(_ context.Context, tournamentID, seasonID int64) ([]standing.Standing, error) {
			if tournamentID == 17 {
				return []standing.Standing{
					{TeamID: 1, Position: 1, Matches: 10, Points: 24},
					{TeamID: 2, Position: 2, Matches: 10, Points: 21},
				}, nil
			}
			// Cup without a table.
			return nil, nil
		},
	}
	matchRepo := &fakeMatchRepo{
		listSeasons: func(context.Context, time.Time) ([]match.SeasonRef, error) {
			return []match.SeasonRef{
				{TournamentID: 17, SeasonID: 9100},
				{TournamentID: 30, SeasonID: 9200},
			}, nil
		},
	}
	standingRepo := &fakeStandingRepo{}

	svc := NewStandingSyncService(provider, matchRepo, standingRepo, StandingSyncConfig{}, logging.NewNop())
	summary, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.Updated != 2 || summary.Skipped != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	rows, ok := standingRepo.replaced[match.SeasonRef{TournamentID: 17, SeasonID: 9100}]
	if !ok || len(rows) != 2 {
		t.Fatalf("expected season 9100 replaced with 2 rows, got %+v", standingRepo.replaced)
	}
	if _, ok := standingRepo.replaced[match.SeasonRef{TournamentID: 30, SeasonID: 9200}]; ok {
		t.Fatalf("empty standings must not replace the stored table")
	}
}
