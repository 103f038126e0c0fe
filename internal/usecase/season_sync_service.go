package usecase

import (
	"context"
	"fmt"

	"github.com/mzhadan/matchwatch/internal/domain/season"
	"github.com/mzhadan/matchwatch/internal/domain/tournament"
	"github.com/mzhadan/matchwatch/internal/platform/logging"
	"github.com/mzhadan/matchwatch/internal/platform/reconcile"
)

// SeasonSyncService tracks the current season of every stored tournament.
// Upstream lists seasons newest first; only the head of that list matters.
type SeasonSyncService struct {
	provider       Provider
	tournamentRepo tournament.Repository
	seasonRepo     season.Repository
	logger         *logging.Logger
}

func NewSeasonSyncService(
	provider Provider,
	tournamentRepo tournament.Repository,
	seasonRepo season.Repository,
	logger *logging.Logger,
) *SeasonSyncService {
	if logger == nil {
		logger = logging.Default()
	}
	return &SeasonSyncService{
		provider:       provider,
		tournamentRepo: tournamentRepo,
		seasonRepo:     seasonRepo,
		logger:         logger,
	}
}

func (s *SeasonSyncService) Run(ctx context.Context) (RunSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonSyncService.Run")
	defer span.End()

	if s.provider == nil || s.tournamentRepo == nil || s.seasonRepo == nil {
		return RunSummary{}, fmt.Errorf("%w: season sync is not fully configured", ErrDependencyUnavailable)
	}

	tournaments, err := s.tournamentRepo.List(ctx)
	if err != nil {
		return RunSummary{}, fmt.Errorf("list tournaments: %w", err)
	}

	fetched := make([]season.Season, 0, len(tournaments))
	for _, item := range tournaments {
		seasons, err := s.provider.TournamentSeasons(ctx, item.ID)
		if err != nil {
			s.logger.WarnContext(ctx, "fetch tournament seasons failed", "tournament_id", item.ID, "error", err)
			continue
		}
		if len(seasons) == 0 {
			continue
		}
		current := seasons[0]
		current.TournamentID = item.ID
		fetched = append(fetched, current)
	}

	existing, err := s.seasonRepo.List(ctx)
	if err != nil {
		return RunSummary{}, fmt.Errorf("list seasons: %w", err)
	}

	plan := reconcile.Build(existing, fetched,
		func(item season.Season) int64 { return item.ID },
		func(item season.Season) string {
			return reconcile.Fingerprint(item.TournamentID, item.Name, item.Year)
		},
	)

	if err := reconcile.InBatches(plan.Inserts, reconcile.DefaultBatchSize, func(batch []season.Season) error {
		return s.seasonRepo.InsertBatch(ctx, batch)
	}); err != nil {
		return RunSummary{}, fmt.Errorf("insert seasons: %w", err)
	}
	if err := reconcile.InBatches(plan.Updates, reconcile.DefaultBatchSize, func(batch []season.Season) error {
		return s.seasonRepo.UpdateBatch(ctx, batch)
	}); err != nil {
		return RunSummary{}, fmt.Errorf("update seasons: %w", err)
	}

	summary := RunSummary{
		Fetched:  len(fetched),
		Inserted: len(plan.Inserts),
		Updated:  len(plan.Updates),
		Skipped:  plan.Skipped,
	}
	s.logger.InfoContext(ctx, "season sync finished",
		"fetched", summary.Fetched,
		"inserted", summary.Inserted,
		"updated", summary.Updated,
		"skipped", summary.Skipped,
	)
	return summary, nil
}
