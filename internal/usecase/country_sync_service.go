package usecase

import (
	"context"
	"fmt"

	"github.com/mzhadan/matchwatch/internal/domain/country"
	"github.com/mzhadan/matchwatch/internal/platform/logging"
	"github.com/mzhadan/matchwatch/internal/platform/reconcile"
)

// CountrySyncService mirrors the upstream category list into the countries
// table.
type CountrySyncService struct {
	provider    Provider
	countryRepo country.Repository
	logger      *logging.Logger
}

func NewCountrySyncService(provider Provider, countryRepo country.Repository, logger *logging.Logger) *CountrySyncService {
	if logger == nil {
		logger = logging.Default()
	}
	return &CountrySyncService{
		provider:    provider,
		countryRepo: countryRepo,
		logger:      logger,
	}
}

func (s *CountrySyncService) Run(ctx context.Context) (RunSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CountrySyncService.Run")
	defer span.End()

	if s.provider == nil || s.countryRepo == nil {
		return RunSummary{}, fmt.Errorf("%w: country sync is not fully configured", ErrDependencyUnavailable)
	}

	fetched, err := s.provider.Categories(ctx)
	if err != nil {
		return RunSummary{}, fmt.Errorf("fetch categories: %w", err)
	}
	existing, err := s.countryRepo.List(ctx)
	if err != nil {
		return RunSummary{}, fmt.Errorf("list countries: %w", err)
	}

	plan := reconcile.Build(existing, fetched,
		func(c country.Country) int64 { return c.ID },
		func(c country.Country) string { return reconcile.Fingerprint(c.Name) },
	)

	if err := reconcile.InBatches(plan.Inserts, reconcile.DefaultBatchSize, func(batch []country.Country) error {
		return s.countryRepo.InsertBatch(ctx, batch)
	}); err != nil {
		return RunSummary{}, fmt.Errorf("insert countries: %w", err)
	}
	if err := reconcile.InBatches(plan.Updates, reconcile.DefaultBatchSize, func(batch []country.Country) error {
		return s.countryRepo.UpdateBatch(ctx, batch)
	}); err != nil {
		return RunSummary{}, fmt.Errorf("update countries: %w", err)
	}

	summary := RunSummary{
		Fetched:  len(fetched),
		Inserted: len(plan.Inserts),
		Updated:  len(plan.Updates),
		Skipped:  plan.Skipped,
	}
	s.logger.InfoContext(ctx, "country sync finished",
		"fetched", summary.Fetched,
		"inserted", summary.Inserted,
		"updated", summary.Updated,
		"skipped", summary.Skipped,
	)
	return summary, nil
}
