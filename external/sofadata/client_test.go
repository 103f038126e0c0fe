package sofadata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mzhadan/matchwatch/internal/domain/tournament"
	"github.com/mzhadan/matchwatch/internal/platform/logging"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient(ClientConfig{
		BaseURL: server.URL,
		Timeout: 2 * time.Second,
		Logger:  logging.NewNop(),
	})
	return client, server
}

func TestTournamentDetails(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/unique-tournament/42" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{
			"uniqueTournament": {
				"id": 42,
				"name": "2. Bundesliga",
				"category": {"id": 30, "name": "Germany"},
				"tier": 2,
				"userCount": 120000,
				"lowerDivisions": [{"tier": 3}]
			}
		}`))
	}))

	up, ok, err := client.TournamentDetails(context.Background(), 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatalf("expected tournament to be found")
	}
	if up.ID != 42 || up.CountryID != 30 || up.CountryName != "Germany" {
		t.Fatalf("unexpected mapping: %+v", up)
	}
	if up.Tier == nil || *up.Tier != 2 {
		t.Fatalf("expected tier 2, got %v", up.Tier)
	}
	if up.Gender != tournament.GenderMale {
		t.Fatalf("expected default gender M, got %s", up.Gender)
	}
	if len(up.LowerDivisionTiers) != 1 || up.LowerDivisionTiers[0] == nil || *up.LowerDivisionTiers[0] != 3 {
		t.Fatalf("unexpected lower division tiers: %+v", up.LowerDivisionTiers)
	}
}

func TestTournamentDetailsNotFound(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	_, ok, err := client.TournamentDetails(context.Background(), 42)
	if err != nil {
		t.Fatalf("missing upstream keys must not error, got %v", err)
	}
	if ok {
		t.Fatalf("expected not found")
	}
}

func TestScheduledMatchesMapping(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/sport/football/scheduled-events/2026-08-31" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{
			"events": [{
				"id": 7,
				"tournament": {"uniqueTournament": {"id": 42}},
				"season": {"id": 9},
				"homeTeam": {"id": 1, "name": "Home"},
				"awayTeam": {"id": 2, "name": "Away"},
				"roundInfo": {"round": 5},
				"status": {"type": "NotStarted"},
				"startTimestamp": 1788181200,
				"homeScore": {},
				"awayScore": {}
			}]
		}`))
	}))

	day := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	matches, err := client.ScheduledMatches(context.Background(), day)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("expected one match, got %d", len(matches))
	}

	m := matches[0]
	if m.ID != 7 || m.TournamentID != 42 || m.SeasonID != 9 {
		t.Fatalf("unexpected ids: %+v", m)
	}
	if m.Status != "notstarted" {
		t.Fatalf("expected normalized status, got %s", m.Status)
	}
	if m.Round == nil || *m.Round != 5 {
		t.Fatalf("expected round 5, got %v", m.Round)
	}
	if m.HomeScore != nil {
		t.Fatalf("expected nil home score before kickoff")
	}
}

func TestRetryOnServerError(t *testing.T) {
	t.Parallel()

	var calls atomic.Int64
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(`{"categories": [{"id": 1, "name": "England"}]}`))
	})

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client := NewClient(ClientConfig{
		BaseURL:    server.URL,
		Timeout:    2 * time.Second,
		MaxRetries: 1,
		Logger:     logging.NewNop(),
	})

	countries, err := client.Categories(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(countries) != 1 || countries[0].Name != "England" {
		t.Fatalf("unexpected countries: %+v", countries)
	}
	if calls.Load() != 2 {
		t.Fatalf("expected one retry, got %d calls", calls.Load())
	}
}
