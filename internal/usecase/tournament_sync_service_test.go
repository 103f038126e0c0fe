package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/mzhadan/matchwatch/internal/domain/country"
	"github.com/mzhadan/matchwatch/internal/domain/tournament"
	"github.com/mzhadan/matchwatch/internal/platform/logging"
)

type fakeTournamentRepo struct {
	items    []tournament.Tournament
	inserted [][]tournament.Tournament
	updated  [][]tournament.Tournament
	deleted  int64
}

func (f *fakeTournamentRepo) List(context.Context) ([]tournament.Tournament, error) {
	return f.items, nil
}

func (f *fakeTournamentRepo) InsertBatch(_ context.Context, batch []tournament.Tournament) error {
	f.inserted = append(f.inserted, batch)
	return nil
}

func (f *fakeTournamentRepo) UpdateBatch(_ context.Context, batch []tournament.Tournament) error {
	f.updated = append(f.updated, batch)
	return nil
}

func (f *fakeTournamentRepo) DeleteEnded(context.Context, time.Time) (int64, error) {
	return f.deleted, nil
}

func TestTournamentSyncClassifiesAndFiltersExcluded(t *testing.T) {
	t.Parallel()

	tier1 := 1
	provider := &fakeProvider{
		categoryTournamentIDs: func(_ context.Context, categoryID int64) ([]int64, error) {
			return []int64{100, 200}, nil
		},
		tournamentDetails: func(_ context.Context, tournamentID int64) (tournament.Upstream, bool, error) {
			switch tournamentID {
			case 100:
				return tournament.Upstream{
					ID:          100,
					Name:        "Premier League",
					Gender:      tournament.GenderMale,
					CountryID:   1,
					CountryName: "England",
					Tier:        &tier1,
					UserCount:   900000,
				}, true, nil
			case 200:
				return tournament.Upstream{
					ID:          200,
					Name:        "U17 Championship",
					Gender:      tournament.GenderMale,
					CountryID:   1,
					CountryName: "England",
					UserCount:   50,
				}, true, nil
			default:
				return tournament.Upstream{}, false, nil
			}
		},
	}
	countryRepo := &fakeCountryRepo{items: []country.Country{{ID: 1, Name: "England"}}}
	tournamentRepo := &fakeTournamentRepo{}

	svc := NewTournamentSyncService(provider, countryRepo, tournamentRepo, tournament.DefaultConfig(), logging.NewNop())
	summary, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.Fetched != 1 {
		t.Fatalf("youth tournament must be excluded, got %d fetched", summary.Fetched)
	}
	if len(tournamentRepo.inserted) != 1 || len(tournamentRepo.inserted[0]) != 1 {
		t.Fatalf("expected one insert, got %+v", tournamentRepo.inserted)
	}

	got := tournamentRepo.inserted[0][0]
	if got.ID != 100 || got.Tier != 1 {
		t.Fatalf("unexpected classified tournament: %+v", got)
	}
	if got.Reputation != 900000 || got.Label != tournament.LabelTop {
		t.Fatalf("unexpected reputation verdict: %+v", got)
	}
}

func TestRecomputeClassification(t *testing.T) {
	t.Parallel()

	tournamentRepo := &fakeTournamentRepo{items: []tournament.Tournament{
		// Stored label no longer matches the stored reputation.
		{ID: 1, Name: "Serie A", Gender: tournament.GenderMale, CountryID: 20, Tier: 1, Reputation: 300000, Label: tournament.LabelMedium, MatchType: tournament.MatchTypeMedium},
		// Already consistent, must be skipped.
		{ID: 2, Name: "Serie B", Gender: tournament.GenderMale, CountryID: 20, Tier: 2, Reputation: 60000, Label: tournament.LabelGood, MatchType: tournament.MatchTypeGood},
	}}

	svc := NewTournamentSyncService(nil, nil, tournamentRepo, tournament.DefaultConfig(), logging.NewNop())
	summary, err := svc.RecomputeClassification(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.Updated != 1 || summary.Skipped != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	got := tournamentRepo.updated[0][0]
	if got.ID != 1 || got.Label != tournament.LabelTop || got.MatchType != tournament.MatchTypeTop {
		t.Fatalf("unexpected recompute result: %+v", got)
	}
}
