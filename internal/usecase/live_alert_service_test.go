package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/mzhadan/matchwatch/internal/domain/chat"
	"github.com/mzhadan/matchwatch/internal/domain/incident"
	"github.com/mzhadan/matchwatch/internal/domain/match"
	"github.com/mzhadan/matchwatch/internal/platform/logging"
)

func liveAlertFixture() (*fakeProvider, *fakeLedger, *fakeChatRepo, *fakeNotifier) {
	score := 1
	provider := &fakeProvider{
		liveMatches: func(context.Context) ([]match.Match, error) {
			return []match.Match{{
				ID:        77,
				HomeName:  "Lyon",
				AwayName:  "Lille",
				Status:    match.StatusInProgress,
				HomeScore: &score,
				AwayScore: &score,
			}}, nil
		},
		matchIncidents: func(_ context.Context, matchID int64) ([]incident.Incident, error) {
			return []incident.Incident{
				{ID: 500, MatchID: matchID, Type: incident.TypeCard, ClassName: incident.ClassRed, Minute: 30, IsHome: true},
				{ID: 501, MatchID: matchID, Type: incident.TypeCard, ClassName: "yellow", Minute: 15},
				{ID: 502, MatchID: matchID, Type: incident.TypeCard, ClassName: incident.ClassYellowRed, Minute: 85},
			}, nil
		},
	}
	return provider, newFakeLedger(), &fakeChatRepo{items: []chat.Chat{{ID: 5, Enabled: true}}}, &fakeNotifier{}
}

func TestLiveAlertSendsEarlyRedCardOnce(t *testing.T) {
	t.Parallel()

	provider, ledger, chats, notifier := liveAlertFixture()
	svc := NewLiveAlertService(provider, ledger, chats, notifier, LiveAlertConfig{}, logging.NewNop())

	summary, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Inserted != 1 {
		t.Fatalf("expected exactly one alert, got %d", summary.Inserted)
	}
	if len(notifier.broadcasts) != 1 {
		t.Fatalf("expected one broadcast, got %d", len(notifier.broadcasts))
	}
	message := notifier.broadcasts[0].messages[0]
	for _, want := range []string{"Red Card", "Lyon vs Lille", "Incident Time: 30", "Home team"} {
		if !strings.Contains(message, want) {
			t.Fatalf("message missing %q:\n%s", want, message)
		}
	}

	// Second poll sees the same incidents and must stay silent.
	summary, err = svc.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Inserted != 0 || summary.Skipped != 1 {
		t.Fatalf("expected dedup on second run, got %+v", summary)
	}
	if len(notifier.broadcasts) != 1 {
		t.Fatalf("expected no new broadcast, got %d", len(notifier.broadcasts))
	}
}

func TestLiveAlertReleasesClaimOnDeliveryFailure(t *testing.T) {
	t.Parallel()

	provider, ledger, chats, notifier := liveAlertFixture()
	notifier.err = errors.New("telegram down")
	svc := NewLiveAlertService(provider, ledger, chats, notifier, LiveAlertConfig{}, logging.NewNop())

	summary, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("delivery failures must not fail the run: %v", err)
	}
	if summary.Inserted != 0 {
		t.Fatalf("expected no alerts counted, got %d", summary.Inserted)
	}
	if len(ledger.released) != 1 || ledger.released[0] != 500 {
		t.Fatalf("expected incident 500 released, got %v", ledger.released)
	}

	// Recovery: next run claims and delivers.
	notifier.err = nil
	summary, err = svc.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Inserted != 1 {
		t.Fatalf("expected retry to deliver, got %+v", summary)
	}
}

func TestLiveAlertMinuteCutoff(t *testing.T) {
	t.Parallel()

	provider, ledger, chats, notifier := liveAlertFixture()
	svc := NewLiveAlertService(provider, ledger, chats, notifier, LiveAlertConfig{RedCardMaxMinute: 20}, logging.NewNop())

	summary, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Inserted != 0 {
		t.Fatalf("card at minute 30 must not pass a cutoff of 20, got %d alerts", summary.Inserted)
	}
}
