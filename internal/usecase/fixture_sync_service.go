package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/mzhadan/matchwatch/internal/domain/match"
	"github.com/mzhadan/matchwatch/internal/domain/tournament"
	"github.com/mzhadan/matchwatch/internal/platform/logging"
	"github.com/mzhadan/matchwatch/internal/platform/reconcile"
)

type FixtureSyncConfig struct {
	// HorizonDays is how many days ahead of today get scanned per run.
	HorizonDays int
	// StaleCutoff is how long an unfinished match may sit past kickoff
	// before the stale sweep drops it.
	StaleCutoff time.Duration
}

// FixtureSyncService pulls the upcoming schedule day by day, keeps only
// matches of tracked tournaments and reconciles them into the matches table.
// Each run ends with a sweep of canceled, postponed and stale rows.
type FixtureSyncService struct {
	provider       Provider
	tournamentRepo tournament.Repository
	matchRepo      match.Repository
	cfg            FixtureSyncConfig
	logger         *logging.Logger
	now            func() time.Time
}

func NewFixtureSyncService(
	provider Provider,
	tournamentRepo tournament.Repository,
	matchRepo match.Repository,
	cfg FixtureSyncConfig,
	logger *logging.Logger,
) *FixtureSyncService {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HorizonDays <= 0 {
		cfg.HorizonDays = 20
	}
	if cfg.StaleCutoff <= 0 {
		cfg.StaleCutoff = 72 * time.Hour
	}
	return &FixtureSyncService{
		provider:       provider,
		tournamentRepo: tournamentRepo,
		matchRepo:      matchRepo,
		cfg:            cfg,
		logger:         logger,
		now:            time.Now,
	}
}

func (s *FixtureSyncService) Run(ctx context.Context) (RunSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureSyncService.Run")
	defer span.End()

	if s.provider == nil || s.tournamentRepo == nil || s.matchRepo == nil {
		return RunSummary{}, fmt.Errorf("%w: fixture sync is not fully configured", ErrDependencyUnavailable)
	}

	tournaments, err := s.tournamentRepo.List(ctx)
	if err != nil {
		return RunSummary{}, fmt.Errorf("list tournaments: %w", err)
	}
	tracked := make(map[int64]struct{}, len(tournaments))
	for _, item := range tournaments {
		tracked[item.ID] = struct{}{}
	}

	now := s.now().UTC()
	dayStart := now.Truncate(24 * time.Hour)
	horizonEnd := dayStart.AddDate(0, 0, s.cfg.HorizonDays)

	fetched := make([]match.Match, 0, 256)
	for offset := 0; offset < s.cfg.HorizonDays; offset++ {
		day := dayStart.AddDate(0, 0, offset)
		scheduled, err := s.provider.ScheduledMatches(ctx, day)
		if err != nil {
			s.logger.WarnContext(ctx, "fetch scheduled matches failed", "day", day.Format("2006-01-02"), "error", err)
			continue
		}
		for _, item := range scheduled {
			if _, ok := tracked[item.TournamentID]; !ok {
				continue
			}
			fetched = append(fetched, item)
		}
	}

	existing, err := s.matchRepo.ListBetween(ctx, dayStart, horizonEnd)
	if err != nil {
		return RunSummary{}, fmt.Errorf("list matches: %w", err)
	}

	plan := reconcile.Build(existing, fetched,
		func(item match.Match) int64 { return item.ID },
		matchFingerprint,
	)

	if err := reconcile.InBatches(plan.Inserts, reconcile.DefaultBatchSize, func(batch []match.Match) error {
		return s.matchRepo.InsertBatch(ctx, batch)
	}); err != nil {
		return RunSummary{}, fmt.Errorf("insert matches: %w", err)
	}
	if err := reconcile.InBatches(plan.Updates, reconcile.DefaultBatchSize, func(batch []match.Match) error {
		return s.matchRepo.UpdateBatch(ctx, batch)
	}); err != nil {
		return RunSummary{}, fmt.Errorf("update matches: %w", err)
	}

	deleted, err := s.matchRepo.DeleteStale(ctx, now.Add(-s.cfg.StaleCutoff))
	if err != nil {
		return RunSummary{}, fmt.Errorf("delete stale matches: %w", err)
	}

	summary := RunSummary{
		Fetched:  len(fetched),
		Inserted: len(plan.Inserts),
		Updated:  len(plan.Updates),
		Deleted:  int(deleted),
		Skipped:  plan.Skipped,
	}
	s.logger.InfoContext(ctx, "fixture sync finished",
		"fetched", summary.Fetched,
		"inserted", summary.Inserted,
		"updated", summary.Updated,
		"deleted", summary.Deleted,
		"skipped", summary.Skipped,
	)
	return summary, nil
}

func matchFingerprint(m match.Match) string {
	return reconcile.Fingerprint(
		m.TournamentID,
		m.SeasonID,
		m.HomeTeamID,
		m.AwayTeamID,
		m.HomeName,
		m.AwayName,
		m.Round,
		m.Status,
		m.StartAt,
		m.HomeScore,
		m.AwayScore,
	)
}
