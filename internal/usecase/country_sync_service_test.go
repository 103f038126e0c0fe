package usecase

import (
	"context"
	"testing"

	"github.com/mzhadan/matchwatch/internal/domain/country"
	"github.com/mzhadan/matchwatch/internal/platform/logging"
)

func TestCountrySyncRun(t *testing.T) {
	t.Parallel()

	provider := &fakeProvider{
		categories: func(context.Context) ([]country.Country, error) {
			return []country.Country{
				{ID: 1, Name: "England"},
				{ID: 2, Name: "Deutschland"},
				{ID: 3, Name: "Spain"},
			}, nil
		},
	}
	repo := &fakeCountryRepo{items: []country.Country{
		{ID: 1, Name: "England"},
		{ID: 2, Name: "Germany"},
	}}

	svc := NewCountrySyncService(provider, repo, logging.NewNop())
	summary, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.Fetched != 3 || summary.Inserted != 1 || summary.Updated != 1 || summary.Skipped != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if len(repo.inserted) != 1 || repo.inserted[0][0].ID != 3 {
		t.Fatalf("expected Spain inserted, got %+v", repo.inserted)
	}
	if len(repo.updated) != 1 || repo.updated[0][0].Name != "Deutschland" {
		t.Fatalf("expected renamed country updated, got %+v", repo.updated)
	}
}

func TestCountrySyncIdempotent(t *testing.T) {
	t.Parallel()

	items := []country.Country{{ID: 1, Name: "England"}}
	provider := &fakeProvider{
		categories: func(context.Context) ([]country.Country, error) { return items, nil },
	}
	repo := &fakeCountryRepo{items: items}

	svc := NewCountrySyncService(provider, repo, logging.NewNop())
	summary, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Inserted != 0 || summary.Updated != 0 || summary.Skipped != 1 {
		t.Fatalf("rerun against identical data must be a no-op, got %+v", summary)
	}
}
