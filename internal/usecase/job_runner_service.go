package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/mzhadan/matchwatch/internal/platform/logging"
)

// Job names accepted by the runner. "all" executes the full ingestion chain
// in dependency order.
const (
	JobCountries   = "countries"
	JobTournaments = "tournaments"
	JobReclassify  = "reclassify"
	JobSeasons     = "seasons"
	JobFixtures    = "fixtures"
	JobResults     = "results"
	JobTeams       = "teams"
	JobPlayers     = "players"
	JobStandings   = "standings"
	JobLineups     = "lineups"
	JobPrematch    = "prematch"
	JobLive        = "live"
	JobAll         = "all"
)

// allJobOrder is the dependency order of the full chain: reference data
// first, then fixtures, then everything hanging off stored matches. Alert
// jobs run last so they see the freshest state.
var allJobOrder = []string{
	JobCountries,
	JobTournaments,
	JobSeasons,
	JobFixtures,
	JobResults,
	JobTeams,
	JobPlayers,
	JobStandings,
	JobLineups,
	JobPrematch,
	JobLive,
}

type jobFunc func(ctx context.Context) (RunSummary, error)

type JobRunResult struct {
	Job        string     `json:"job"`
	Summary    RunSummary `json:"summary"`
	DurationMs int64      `json:"duration_ms"`
}

// JobRunnerService maps job names onto the sync and alert services. One
// invocation runs one job; the external scheduler owns periodicity.
type JobRunnerService struct {
	jobs   map[string]jobFunc
	logger *logging.Logger
	now    func() time.Time
}

func NewJobRunnerService(
	countrySync *CountrySyncService,
	tournamentSync *TournamentSyncService,
	seasonSync *SeasonSyncService,
	fixtureSync *FixtureSyncService,
	resultSync *ResultSyncService,
	teamSync *TeamSyncService,
	playerSync *PlayerSyncService,
	standingSync *StandingSyncService,
	lineupSync *LineupSyncService,
	prematchAlert *PrematchAlertService,
	liveAlert *LiveAlertService,
	logger *logging.Logger,
) *JobRunnerService {
	if logger == nil {
		logger = logging.Default()
	}

	jobs := map[string]jobFunc{}
	if countrySync != nil {
		jobs[JobCountries] = countrySync.Run
	}
	if tournamentSync != nil {
		jobs[JobTournaments] = tournamentSync.Run
		jobs[JobReclassify] = tournamentSync.RecomputeClassification
	}
	if seasonSync != nil {
		jobs[JobSeasons] = seasonSync.Run
	}
	if fixtureSync != nil {
		jobs[JobFixtures] = fixtureSync.Run
	}
	if resultSync != nil {
		jobs[JobResults] = resultSync.Run
	}
	if teamSync != nil {
		jobs[JobTeams] = teamSync.Run
	}
	if playerSync != nil {
		jobs[JobPlayers] = playerSync.Run
	}
	if standingSync != nil {
		jobs[JobStandings] = standingSync.Run
	}
	if lineupSync != nil {
		jobs[JobLineups] = lineupSync.Run
	}
	if prematchAlert != nil {
		jobs[JobPrematch] = prematchAlert.Run
	}
	if liveAlert != nil {
		jobs[JobLive] = liveAlert.Run
	}

	return &JobRunnerService{
		jobs:   jobs,
		logger: logger,
		now:    time.Now,
	}
}

// KnownJobs returns every runnable job name, sorted, for usage output.
func (s *JobRunnerService) KnownJobs() []string {
	names := make([]string, 0, len(s.jobs)+1)
	for name := range s.jobs {
		names = append(names, name)
	}
	names = append(names, JobAll)
	sort.Strings(names)
	return names
}

func (s *JobRunnerService) Run(ctx context.Context, job string) ([]JobRunResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.JobRunnerService.Run")
	defer span.End()

	job = strings.ToLower(strings.TrimSpace(job))
	if job == "" {
		return nil, fmt.Errorf("%w: job name is required", ErrInvalidInput)
	}

	if job == JobAll {
		return s.runAll(ctx)
	}

	fn, ok := s.jobs[job]
	if !ok {
		return nil, fmt.Errorf("%w: unknown job %q", ErrInvalidInput, job)
	}
	result, err := s.runOne(ctx, job, fn)
	if err != nil {
		return nil, err
	}
	return []JobRunResult{result}, nil
}

func (s *JobRunnerService) runAll(ctx context.Context) ([]JobRunResult, error) {
	results := make([]JobRunResult, 0, len(allJobOrder))
	var total RunSummary
	for _, name := range allJobOrder {
		fn, ok := s.jobs[name]
		if !ok {
			continue
		}
		result, err := s.runOne(ctx, name, fn)
		if err != nil {
			return results, fmt.Errorf("job %s: %w", name, err)
		}
		results = append(results, result)
		total = total.add(result.Summary)
	}

	s.logger.InfoContext(ctx, "full chain finished",
		"jobs", len(results),
		"fetched", total.Fetched,
		"inserted", total.Inserted,
		"updated", total.Updated,
		"deleted", total.Deleted,
		"skipped", total.Skipped,
	)
	return results, nil
}

func (s *JobRunnerService) runOne(ctx context.Context, name string, fn jobFunc) (JobRunResult, error) {
	start := s.now()
	s.logger.InfoContext(ctx, "job started", "job", name)

	summary, err := fn(ctx)
	elapsed := time.Since(start)
	if err != nil {
		s.logger.ErrorContext(ctx, "job failed", "job", name, "duration_ms", elapsed.Milliseconds(), "error", err)
		return JobRunResult{}, err
	}

	s.logger.InfoContext(ctx, "job finished",
		"job", name,
		"duration_ms", elapsed.Milliseconds(),
		"fetched", summary.Fetched,
		"inserted", summary.Inserted,
		"updated", summary.Updated,
		"deleted", summary.Deleted,
		"skipped", summary.Skipped,
	)
	return JobRunResult{
		Job:        name,
		Summary:    summary,
		DurationMs: elapsed.Milliseconds(),
	}, nil
}
