package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/mzhadan/matchwatch/internal/domain/match"
	"github.com/mzhadan/matchwatch/internal/platform/logging"
	"github.com/mzhadan/matchwatch/internal/platform/reconcile"
)

type ResultSyncConfig struct {
	// Grace widens the refresh cutoff past now so matches kicking off in
	// the next minutes are already polled for status moves.
	Grace time.Duration
}

// ResultSyncService refreshes score and status of matches that may still
// move: everything live plus everything whose kickoff passed the cutoff.
type ResultSyncService struct {
	provider  Provider
	matchRepo match.Repository
	cfg       ResultSyncConfig
	logger    *logging.Logger
	now       func() time.Time
}

func NewResultSyncService(provider Provider, matchRepo match.Repository, cfg ResultSyncConfig, logger *logging.Logger) *ResultSyncService {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.Grace <= 0 {
		cfg.Grace = 5 * time.Minute
	}
	return &ResultSyncService{
		provider:  provider,
		matchRepo: matchRepo,
		cfg:       cfg,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *ResultSyncService) Run(ctx context.Context) (RunSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ResultSyncService.Run")
	defer span.End()

	if s.provider == nil || s.matchRepo == nil {
		return RunSummary{}, fmt.Errorf("%w: result sync is not fully configured", ErrDependencyUnavailable)
	}

	pending, err := s.matchRepo.ListRefreshable(ctx, s.now().UTC().Add(s.cfg.Grace))
	if err != nil {
		return RunSummary{}, fmt.Errorf("list refreshable matches: %w", err)
	}

	updates := make([]match.Match, 0, len(pending))
	skipped := 0
	for _, stored := range pending {
		fresh, exists, err := s.provider.MatchDetails(ctx, stored.ID)
		if err != nil {
			s.logger.WarnContext(ctx, "fetch match details failed", "match_id", stored.ID, "error", err)
			continue
		}
		if !exists {
			skipped++
			continue
		}
		if matchFingerprint(fresh) == matchFingerprint(stored) {
			skipped++
			continue
		}
		updates = append(updates, fresh)
	}

	if err := reconcile.InBatches(updates, reconcile.DefaultBatchSize, func(batch []match.Match) error {
		return s.matchRepo.UpdateBatch(ctx, batch)
	}); err != nil {
		return RunSummary{}, fmt.Errorf("update match results: %w", err)
	}

	summary := RunSummary{
		Fetched: len(pending),
		Updated: len(updates),
		Skipped: skipped,
	}
	s.logger.InfoContext(ctx, "result sync finished",
		"fetched", summary.Fetched,
		"updated", summary.Updated,
		"skipped", summary.Skipped,
	)
	return summary, nil
}
