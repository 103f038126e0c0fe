package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mzhadan/matchwatch/internal/domain/season"
	"github.com/mzhadan/matchwatch/internal/domain/tournament"
	"github.com/mzhadan/matchwatch/internal/platform/logging"
)

type fakeSeasonRepo struct {
	items    []season.Season
	inserted [][]season.Season
	updated  [][]season.Season
}

func (f *fakeSeasonRepo) List(context.Context) ([]season.Season, error) {
	return f.items, nil
}

func (f *fakeSeasonRepo) InsertBatch(_ context.Context, batch []season.Season) error {
	f.inserted = append(f.inserted, batch)
	return nil
}

func (f *fakeSeasonRepo) UpdateBatch(_ context.Context, batch []season.Season) error {
	f.updated = append(f.updated, batch)
	return nil
}

func TestSeasonSyncKeepsOnlyNewestSeason(t *testing.T) {
	t.Parallel()

	provider := &fakeProvider{
		tournamentSeasons: func(_ context.Context, tournamentID int64) ([]season.Season, error) {
			// Newest first, the tail must be ignored.
			return []season.Season{
				{ID: 9100, Name: "Premier League 25/26", Year: "25/26"},
				{ID: 9000, Name: "Premier League 24/25", Year: "24/25"},
			}, nil
		},
	}
	tournamentRepo := &fakeTournamentRepo{items: []tournament.Tournament{{ID: 17, Name: "Premier League"}}}
	seasonRepo := &fakeSeasonRepo{items: []season.Season{
		{ID: 9000, TournamentID: 17, Name: "Premier League 24/25", Year: "24/25"},
	}}

	svc := NewSeasonSyncService(provider, tournamentRepo, seasonRepo, logging.NewNop())
	summary, err := svc.Run(context.Background())
	require.NoError(t, err)

	require.Equal(t, 1, summary.Fetched)
	require.Equal(t, 1, summary.Inserted)
	require.Len(t, seasonRepo.inserted, 1)
	require.Equal(t, int64(9100), seasonRepo.inserted[0][0].ID)
	require.Equal(t, int64(17), seasonRepo.inserted[0][0].TournamentID)
	require.Empty(t, seasonRepo.updated)
}

func TestSeasonSyncUpdatesRenamedSeason(t *testing.T) {
	t.Parallel()

	provider := &fakeProvider{
		tournamentSeasons: func(_ context.Context, tournamentID int64) ([]season.Season, error) {
			return []season.Season{{ID: 9000, Name: "La Liga 2025/2026", Year: "25/26"}}, nil
		},
	}
	tournamentRepo := &fakeTournamentRepo{items: []tournament.Tournament{{ID: 8, Name: "La Liga"}}}
	seasonRepo := &fakeSeasonRepo{items: []season.Season{
		{ID: 9000, TournamentID: 8, Name: "La Liga 25/26", Year: "25/26"},
	}}

	svc := NewSeasonSyncService(provider, tournamentRepo, seasonRepo, logging.NewNop())
	summary, err := svc.Run(context.Background())
	require.NoError(t, err)

	require.Equal(t, 1, summary.Updated)
	require.Len(t, seasonRepo.updated, 1)
	require.Equal(t, "La Liga 2025/2026", seasonRepo.updated[0][0].Name)
}
