package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/mzhadan/matchwatch/internal/domain/match"
	"github.com/mzhadan/matchwatch/internal/domain/team"
	"github.com/mzhadan/matchwatch/internal/platform/logging"
	"github.com/mzhadan/matchwatch/internal/platform/reconcile"
)

type TeamSyncConfig struct {
	// Window selects teams whose match kicks off between now and now+Window.
	Window time.Duration
	// MaxWorkers bounds concurrent upstream fetches per run.
	MaxWorkers int
}

// TeamSyncService enriches the teams playing soon: club details, stadium
// capacity and the squad value derived from the current player market
// values. Finishes with a stored reputation recompute over all teams.
type TeamSyncService struct {
	provider  Provider
	matchRepo match.Repository
	teamRepo  team.Repository
	cfg       TeamSyncConfig
	logger    *logging.Logger
	now       func() time.Time
}

func NewTeamSyncService(
	provider Provider,
	matchRepo match.Repository,
	teamRepo team.Repository,
	cfg TeamSyncConfig,
	logger *logging.Logger,
) *TeamSyncService {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.Window <= 0 {
		cfg.Window = 245 * time.Minute
	}
	cfg.MaxWorkers = normalizeFetchWorkerCount(cfg.MaxWorkers)
	return &TeamSyncService{
		provider:  provider,
		matchRepo: matchRepo,
		teamRepo:  teamRepo,
		cfg:       cfg,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *TeamSyncService) Run(ctx context.Context) (RunSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamSyncService.Run")
	defer span.End()

	if s.provider == nil || s.matchRepo == nil || s.teamRepo == nil {
		return RunSummary{}, fmt.Errorf("%w: team sync is not fully configured", ErrDependencyUnavailable)
	}

	now := s.now().UTC()
	teamIDs, err := s.matchRepo.ListTeamIDsBetween(ctx, now, now.Add(s.cfg.Window))
	if err != nil {
		return RunSummary{}, fmt.Errorf("list team ids in window: %w", err)
	}
	if len(teamIDs) == 0 {
		return RunSummary{}, nil
	}

	fetched, err := s.fetchTeams(ctx, teamIDs)
	if err != nil {
		return RunSummary{}, err
	}

	existing, err := s.teamRepo.ListByIDs(ctx, teamIDs)
	if err != nil {
		return RunSummary{}, fmt.Errorf("list teams: %w", err)
	}

	plan := reconcile.Build(existing, fetched,
		func(item team.Team) int64 { return item.ID },
		func(item team.Team) string {
			return reconcile.Fingerprint(
				item.Name,
				item.ShortName,
				item.CountryName,
				item.TournamentID,
				item.UserCount,
				item.StadiumCapacity,
				item.SquadValue,
			)
		},
	)

	if err := reconcile.InBatches(plan.Inserts, reconcile.DefaultBatchSize, func(batch []team.Team) error {
		return s.teamRepo.InsertBatch(ctx, batch)
	}); err != nil {
		return RunSummary{}, fmt.Errorf("insert teams: %w", err)
	}
	if err := reconcile.InBatches(plan.Updates, reconcile.DefaultBatchSize, func(batch []team.Team) error {
		return s.teamRepo.UpdateBatch(ctx, batch)
	}); err != nil {
		return RunSummary{}, fmt.Errorf("update teams: %w", err)
	}

	recomputed, err := s.teamRepo.RecomputeReputations(ctx)
	if err != nil {
		return RunSummary{}, fmt.Errorf("recompute team reputations: %w", err)
	}

	summary := RunSummary{
		Fetched:  len(fetched),
		Inserted: len(plan.Inserts),
		Updated:  len(plan.Updates),
		Skipped:  plan.Skipped,
	}
	s.logger.InfoContext(ctx, "team sync finished",
		"fetched", summary.Fetched,
		"inserted", summary.Inserted,
		"updated", summary.Updated,
		"skipped", summary.Skipped,
		"reputations_recomputed", recomputed,
	)
	return summary, nil
}

func (s *TeamSyncService) fetchTeams(ctx context.Context, teamIDs []int64) ([]team.Team, error) {
	pool, err := ants.NewPool(s.cfg.MaxWorkers)
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var mu sync.Mutex
	fetched := make([]team.Team, 0, len(teamIDs))

	var workers sync.WaitGroup
	for _, teamID := range teamIDs {
		teamID := teamID
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			details, exists, err := s.provider.TeamDetails(ctx, teamID)
			if err != nil {
				s.logger.WarnContext(ctx, "fetch team details failed", "team_id", teamID, "error", err)
				return
			}
			if !exists {
				return
			}

			players, err := s.provider.TeamPlayers(ctx, teamID)
			if err != nil {
				s.logger.WarnContext(ctx, "fetch team players failed", "team_id", teamID, "error", err)
				return
			}
			values := make([]float64, 0, len(players))
			for _, p := range players {
				values = append(values, p.MarketValue)
			}
			details.SquadValue = team.SquadValue(values)

			mu.Lock()
			fetched = append(fetched, details)
			mu.Unlock()
		}); err != nil {
			workers.Done()
			return nil, fmt.Errorf("submit team fetch to worker pool: %w", err)
		}
	}
	workers.Wait()

	sort.SliceStable(fetched, func(i, j int) bool { return fetched[i].ID < fetched[j].ID })
	return fetched, nil
}

func normalizeFetchWorkerCount(value int) int {
	if value <= 0 {
		return 1
	}
	if value > 2 {
		return 2
	}
	return value
}
