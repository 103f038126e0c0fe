package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/mzhadan/matchwatch/internal/domain/match"
	"github.com/mzhadan/matchwatch/internal/domain/standing"
	"github.com/mzhadan/matchwatch/internal/platform/logging"
)

type StandingSyncConfig struct {
	// Lookback selects seasons with a match finished inside the last window,
	// so only tables that could have moved get replaced.
	Lookback time.Duration
}

// StandingSyncService replaces the league table of every season that saw a
// recently finished match. Replacement is transactional per season.
type StandingSyncService struct {
	provider     Provider
	matchRepo    match.Repository
	standingRepo standing.Repository
	cfg          StandingSyncConfig
	logger       *logging.Logger
	now          func() time.Time
}

func NewStandingSyncService(
	provider Provider,
	matchRepo match.Repository,
	standingRepo standing.Repository,
	cfg StandingSyncConfig,
	logger *logging.Logger,
) *StandingSyncService {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.Lookback <= 0 {
		cfg.Lookback = 5 * time.Hour
	}
	return &StandingSyncService{
		provider:     provider,
		matchRepo:    matchRepo,
		standingRepo: standingRepo,
		cfg:          cfg,
		logger:       logger,
		now:          time.Now,
	}
}

func (s *StandingSyncService) Run(ctx context.Context) (RunSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingSyncService.Run")
	defer span.End()

	if s.provider == nil || s.matchRepo == nil || s.standingRepo == nil {
		return RunSummary{}, fmt.Errorf("%w: standing sync is not fully configured", ErrDependencyUnavailable)
	}

	refs, err := s.matchRepo.ListSeasonsFinishedSince(ctx, s.now().UTC().Add(-s.cfg.Lookback))
	if err != nil {
		return RunSummary{}, fmt.Errorf("list seasons with finished matches: %w", err)
	}

	var summary RunSummary
	for _, ref := range refs {
		rows, err := s.provider.SeasonStandings(ctx, ref.TournamentID, ref.SeasonID)
		if err != nil {
			s.logger.WarnContext(ctx, "fetch season standings failed",
				"tournament_id", ref.TournamentID,
				"season_id", ref.SeasonID,
				"error", err,
			)
			continue
		}
		summary.Fetched += len(rows)
		if len(rows) == 0 {
			summary.Skipped++
			continue
		}
		if err := s.standingRepo.ReplaceForSeason(ctx, ref.TournamentID, ref.SeasonID, rows); err != nil {
			return summary, fmt.Errorf("replace standings tournament=%d season=%d: %w", ref.TournamentID, ref.SeasonID, err)
		}
		summary.Updated += len(rows)
	}

	s.logger.InfoContext(ctx, "standing sync finished",
		"seasons", len(refs),
		"fetched", summary.Fetched,
		"replaced", summary.Updated,
		"skipped", summary.Skipped,
	)
	return summary, nil
}
