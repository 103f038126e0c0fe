package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/mzhadan/matchwatch/internal/domain/country"
	"github.com/mzhadan/matchwatch/internal/domain/tournament"
	"github.com/mzhadan/matchwatch/internal/platform/logging"
	"github.com/mzhadan/matchwatch/internal/platform/reconcile"
)

// TournamentSyncService walks every stored country, classifies the
// tournaments upstream lists under it and reconciles the result into the
// tournaments table. Excluded tournaments are never persisted.
type TournamentSyncService struct {
	provider       Provider
	countryRepo    country.Repository
	tournamentRepo tournament.Repository
	classifier     tournament.Config
	logger         *logging.Logger
	now            func() time.Time
}

func NewTournamentSyncService(
	provider Provider,
	countryRepo country.Repository,
	tournamentRepo tournament.Repository,
	classifier tournament.Config,
	logger *logging.Logger,
) *TournamentSyncService {
	if logger == nil {
		logger = logging.Default()
	}
	return &TournamentSyncService{
		provider:       provider,
		countryRepo:    countryRepo,
		tournamentRepo: tournamentRepo,
		classifier:     classifier,
		logger:         logger,
		now:            time.Now,
	}
}

func (s *TournamentSyncService) Run(ctx context.Context) (RunSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentSyncService.Run")
	defer span.End()

	if s.provider == nil || s.countryRepo == nil || s.tournamentRepo == nil {
		return RunSummary{}, fmt.Errorf("%w: tournament sync is not fully configured", ErrDependencyUnavailable)
	}

	countries, err := s.countryRepo.List(ctx)
	if err != nil {
		return RunSummary{}, fmt.Errorf("list countries: %w", err)
	}

	fetched := make([]tournament.Tournament, 0, len(countries)*4)
	excluded := 0
	for _, item := range countries {
		ids, err := s.provider.CategoryTournamentIDs(ctx, item.ID)
		if err != nil {
			s.logger.WarnContext(ctx, "list category tournaments failed", "country_id", item.ID, "error", err)
			continue
		}
		for _, tournamentID := range ids {
			up, exists, err := s.provider.TournamentDetails(ctx, tournamentID)
			if err != nil {
				s.logger.WarnContext(ctx, "fetch tournament details failed", "tournament_id", tournamentID, "error", err)
				continue
			}
			if !exists {
				continue
			}

			verdict, keep := s.classifier.Classify(up)
			if !keep {
				excluded++
				continue
			}
			fetched = append(fetched, tournament.Tournament{
				ID:          up.ID,
				Name:        up.Name,
				Gender:      up.Gender,
				CountryID:   up.CountryID,
				CountryName: up.CountryName,
				Tier:        verdict.Tier,
				UserCount:   up.UserCount,
				Reputation:  verdict.Reputation,
				Label:       verdict.Label,
				MatchType:   verdict.MatchType,
				StartDate:   up.StartDate,
				EndDate:     up.EndDate,
			})
		}
	}

	existing, err := s.tournamentRepo.List(ctx)
	if err != nil {
		return RunSummary{}, fmt.Errorf("list tournaments: %w", err)
	}

	plan := reconcile.Build(existing, fetched,
		func(t tournament.Tournament) int64 { return t.ID },
		tournamentFingerprint,
	)

	if err := reconcile.InBatches(plan.Inserts, reconcile.DefaultBatchSize, func(batch []tournament.Tournament) error {
		return s.tournamentRepo.InsertBatch(ctx, batch)
	}); err != nil {
		return RunSummary{}, fmt.Errorf("insert tournaments: %w", err)
	}
	if err := reconcile.InBatches(plan.Updates, reconcile.DefaultBatchSize, func(batch []tournament.Tournament) error {
		return s.tournamentRepo.UpdateBatch(ctx, batch)
	}); err != nil {
		return RunSummary{}, fmt.Errorf("update tournaments: %w", err)
	}

	deleted, err := s.tournamentRepo.DeleteEnded(ctx, s.now().UTC())
	if err != nil {
		return RunSummary{}, fmt.Errorf("delete ended tournaments: %w", err)
	}

	summary := RunSummary{
		Fetched:  len(fetched),
		Inserted: len(plan.Inserts),
		Updated:  len(plan.Updates),
		Deleted:  int(deleted),
		Skipped:  plan.Skipped,
	}
	s.logger.InfoContext(ctx, "tournament sync finished",
		"fetched", summary.Fetched,
		"inserted", summary.Inserted,
		"updated", summary.Updated,
		"deleted", summary.Deleted,
		"skipped", summary.Skipped,
		"excluded", excluded,
	)
	return summary, nil
}

// RecomputeClassification re-derives label and match type of every stored
// tournament from its persisted reputation and tier, without calling
// upstream. Used after manual reputation fixes.
func (s *TournamentSyncService) RecomputeClassification(ctx context.Context) (RunSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentSyncService.RecomputeClassification")
	defer span.End()

	if s.tournamentRepo == nil {
		return RunSummary{}, fmt.Errorf("%w: tournament sync is not fully configured", ErrDependencyUnavailable)
	}

	existing, err := s.tournamentRepo.List(ctx)
	if err != nil {
		return RunSummary{}, fmt.Errorf("list tournaments: %w", err)
	}

	updates := make([]tournament.Tournament, 0)
	for _, item := range existing {
		label := tournament.LabelForScore(item.Reputation)
		matchType := s.classifier.MatchTypeFor(item.Tier, label, item.CountryID, item.Name)
		if label == item.Label && matchType == item.MatchType {
			continue
		}
		item.Label = label
		item.MatchType = matchType
		updates = append(updates, item)
	}

	if err := reconcile.InBatches(updates, reconcile.DefaultBatchSize, func(batch []tournament.Tournament) error {
		return s.tournamentRepo.UpdateBatch(ctx, batch)
	}); err != nil {
		return RunSummary{}, fmt.Errorf("update tournament classifications: %w", err)
	}

	summary := RunSummary{
		Fetched: len(existing),
		Updated: len(updates),
		Skipped: len(existing) - len(updates),
	}
	s.logger.InfoContext(ctx, "tournament classification recompute finished",
		"fetched", summary.Fetched,
		"updated", summary.Updated,
	)
	return summary, nil
}

func tournamentFingerprint(t tournament.Tournament) string {
	return reconcile.Fingerprint(
		t.Name,
		t.Gender,
		t.CountryID,
		t.CountryName,
		t.Tier,
		t.UserCount,
		t.Reputation,
		string(t.Label),
		string(t.MatchType),
		t.StartDate,
		t.EndDate,
	)
}
