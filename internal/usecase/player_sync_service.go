package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/mzhadan/matchwatch/internal/domain/match"
	"github.com/mzhadan/matchwatch/internal/domain/player"
	"github.com/mzhadan/matchwatch/internal/platform/logging"
	"github.com/mzhadan/matchwatch/internal/platform/reconcile"
)

type PlayerSyncConfig struct {
	// Window selects the squads of teams playing between now and now+Window.
	Window time.Duration
}

// PlayerSyncService reconciles the squads of teams playing soon. Rows key on
// (player, team), so a transfer shows up as an insert under the new club
// while the old row keeps its history.
type PlayerSyncService struct {
	provider   Provider
	matchRepo  match.Repository
	playerRepo player.Repository
	cfg        PlayerSyncConfig
	logger     *logging.Logger
	now        func() time.Time
}

func NewPlayerSyncService(
	provider Provider,
	matchRepo match.Repository,
	playerRepo player.Repository,
	cfg PlayerSyncConfig,
	logger *logging.Logger,
) *PlayerSyncService {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.Window <= 0 {
		cfg.Window = 245 * time.Minute
	}
	return &PlayerSyncService{
		provider:   provider,
		matchRepo:  matchRepo,
		playerRepo: playerRepo,
		cfg:        cfg,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *PlayerSyncService) Run(ctx context.Context) (RunSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerSyncService.Run")
	defer span.End()

	if s.provider == nil || s.matchRepo == nil || s.playerRepo == nil {
		return RunSummary{}, fmt.Errorf("%w: player sync is not fully configured", ErrDependencyUnavailable)
	}

	now := s.now().UTC()
	teamIDs, err := s.matchRepo.ListTeamIDsBetween(ctx, now, now.Add(s.cfg.Window))
	if err != nil {
		return RunSummary{}, fmt.Errorf("list team ids in window: %w", err)
	}
	if len(teamIDs) == 0 {
		return RunSummary{}, nil
	}

	fetched := make([]player.Player, 0, len(teamIDs)*24)
	for _, teamID := range teamIDs {
		squad, err := s.provider.TeamPlayers(ctx, teamID)
		if err != nil {
			s.logger.WarnContext(ctx, "fetch team players failed", "team_id", teamID, "error", err)
			continue
		}
		for _, item := range squad {
			item.TeamID = teamID
			fetched = append(fetched, item)
		}
	}

	existing, err := s.playerRepo.ListByTeamIDs(ctx, teamIDs)
	if err != nil {
		return RunSummary{}, fmt.Errorf("list players: %w", err)
	}

	plan := reconcile.Build(existing, fetched,
		player.Player.Key,
		func(item player.Player) string {
			return reconcile.Fingerprint(
				item.Name,
				item.Position,
				item.ShirtNumber,
				item.MarketValue,
				item.DateOfBirth,
			)
		},
	)

	if err := reconcile.InBatches(plan.Inserts, reconcile.DefaultBatchSize, func(batch []player.Player) error {
		return s.playerRepo.InsertBatch(ctx, batch)
	}); err != nil {
		return RunSummary{}, fmt.Errorf("insert players: %w", err)
	}
	if err := reconcile.InBatches(plan.Updates, reconcile.DefaultBatchSize, func(batch []player.Player) error {
		return s.playerRepo.UpdateBatch(ctx, batch)
	}); err != nil {
		return RunSummary{}, fmt.Errorf("update players: %w", err)
	}

	summary := RunSummary{
		Fetched:  len(fetched),
		Inserted: len(plan.Inserts),
		Updated:  len(plan.Updates),
		Skipped:  plan.Skipped,
	}
	s.logger.InfoContext(ctx, "player sync finished",
		"teams", len(teamIDs),
		"fetched", summary.Fetched,
		"inserted", summary.Inserted,
		"updated", summary.Updated,
		"skipped", summary.Skipped,
	)
	return summary, nil
}
