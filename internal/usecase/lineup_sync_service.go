package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/mzhadan/matchwatch/internal/domain/match"
	"github.com/mzhadan/matchwatch/internal/domain/tournament"
	"github.com/mzhadan/matchwatch/internal/platform/logging"
)

type LineupSyncConfig struct {
	// Lead is how far before kickoff lineups are polled.
	Lead time.Duration
	// Labels restricts polling to tournaments carrying these labels.
	Labels []string
}

// LineupSyncService enriches matches close to kickoff with confirmed lineup
// market values and recent-form ratings. Lineups publish roughly an hour
// before kickoff, so candidates without one yet are simply retried next run.
type LineupSyncService struct {
	provider  Provider
	matchRepo match.Repository
	cfg       LineupSyncConfig
	logger    *logging.Logger
	now       func() time.Time
}

func NewLineupSyncService(provider Provider, matchRepo match.Repository, cfg LineupSyncConfig, logger *logging.Logger) *LineupSyncService {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.Lead <= 0 {
		cfg.Lead = 2 * time.Hour
	}
	if len(cfg.Labels) == 0 {
		cfg.Labels = []string{
			string(tournament.LabelMedium),
			string(tournament.LabelGood),
			string(tournament.LabelTop),
		}
	}
	return &LineupSyncService{
		provider:  provider,
		matchRepo: matchRepo,
		cfg:       cfg,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *LineupSyncService) Run(ctx context.Context) (RunSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LineupSyncService.Run")
	defer span.End()

	if s.provider == nil || s.matchRepo == nil {
		return RunSummary{}, fmt.Errorf("%w: lineup sync is not fully configured", ErrDependencyUnavailable)
	}

	candidates, err := s.matchRepo.ListLineupCandidates(ctx, s.now().UTC().Add(s.cfg.Lead), s.cfg.Labels)
	if err != nil {
		return RunSummary{}, fmt.Errorf("list lineup candidates: %w", err)
	}

	var summary RunSummary
	summary.Fetched = len(candidates)
	for _, item := range candidates {
		info, published, err := s.provider.MatchLineupInfo(ctx, item.ID)
		if err != nil {
			s.logger.WarnContext(ctx, "fetch lineup info failed", "match_id", item.ID, "error", err)
			continue
		}
		if !published {
			summary.Skipped++
			continue
		}
		if err := s.matchRepo.UpdateLineupInfo(ctx, item.ID, info); err != nil {
			return summary, fmt.Errorf("update lineup info match=%d: %w", item.ID, err)
		}
		summary.Updated++
	}

	s.logger.InfoContext(ctx, "lineup sync finished",
		"candidates", summary.Fetched,
		"updated", summary.Updated,
		"pending", summary.Skipped,
	)
	return summary, nil
}
