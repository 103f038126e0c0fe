package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/mzhadan/matchwatch/internal/domain/chat"
	"github.com/mzhadan/matchwatch/internal/domain/incident"
	"github.com/mzhadan/matchwatch/internal/domain/match"
	"github.com/mzhadan/matchwatch/internal/platform/logging"
)

type LiveAlertConfig struct {
	// RedCardMaxMinute is the exclusive cutoff. Cards shown at or past it
	// no longer change the betting picture enough to alert on.
	RedCardMaxMinute int
}

// LiveAlertService polls live matches for early red cards and alerts every
// enabled chat exactly once per incident. The ledger claim is atomic, so
// overlapping runs cannot double-send; a failed delivery releases the claim
// for the next poll.
type LiveAlertService struct {
	provider Provider
	ledger   incident.Ledger
	chatRepo chat.Repository
	notifier Notifier
	cfg      LiveAlertConfig
	logger   *logging.Logger
}

func NewLiveAlertService(
	provider Provider,
	ledger incident.Ledger,
	chatRepo chat.Repository,
	notifier Notifier,
	cfg LiveAlertConfig,
	logger *logging.Logger,
) *LiveAlertService {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.RedCardMaxMinute <= 0 {
		cfg.RedCardMaxMinute = 80
	}
	return &LiveAlertService{
		provider: provider,
		ledger:   ledger,
		chatRepo: chatRepo,
		notifier: notifier,
		cfg:      cfg,
		logger:   logger,
	}
}

func (s *LiveAlertService) Run(ctx context.Context) (RunSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LiveAlertService.Run")
	defer span.End()

	if s.provider == nil || s.ledger == nil || s.chatRepo == nil || s.notifier == nil {
		return RunSummary{}, fmt.Errorf("%w: live alerts are not fully configured", ErrDependencyUnavailable)
	}

	live, err := s.provider.LiveMatches(ctx)
	if err != nil {
		return RunSummary{}, fmt.Errorf("fetch live matches: %w", err)
	}
	if len(live) == 0 {
		return RunSummary{}, nil
	}

	chats, err := s.chatRepo.ListEnabled(ctx)
	if err != nil {
		return RunSummary{}, fmt.Errorf("list enabled chats: %w", err)
	}
	chatIDs := make([]int64, 0, len(chats))
	for _, item := range chats {
		chatIDs = append(chatIDs, item.ID)
	}

	var summary RunSummary
	summary.Fetched = len(live)
	for _, m := range live {
		incidents, err := s.provider.MatchIncidents(ctx, m.ID)
		if err != nil {
			s.logger.WarnContext(ctx, "fetch match incidents failed", "match_id", m.ID, "error", err)
			continue
		}

		for _, in := range incidents {
			if !incident.IsEarlyRedCard(in, s.cfg.RedCardMaxMinute) {
				continue
			}

			won, err := s.ledger.Claim(ctx, in.ID)
			if err != nil {
				return summary, fmt.Errorf("claim incident %d: %w", in.ID, err)
			}
			if !won {
				summary.Skipped++
				continue
			}

			message := formatRedCardAlert(m, in)
			if err := s.notifier.Broadcast(ctx, chatIDs, []string{message}); err != nil {
				s.logger.ErrorContext(ctx, "red card alert delivery failed",
					"match_id", m.ID,
					"incident_id", in.ID,
					"error", err,
				)
				if releaseErr := s.ledger.Release(ctx, in.ID); releaseErr != nil {
					s.logger.ErrorContext(ctx, "release claimed incident failed",
						"incident_id", in.ID,
						"error", releaseErr,
					)
				}
				continue
			}

			summary.Inserted++
			s.logger.InfoContext(ctx, "red card alert sent",
				"match_id", m.ID,
				"incident_id", in.ID,
				"minute", in.Minute,
			)
		}
	}

	return summary, nil
}

func formatRedCardAlert(m match.Match, in incident.Incident) string {
	side := "Away team"
	if in.IsHome {
		side = "Home team"
	}

	var b strings.Builder
	b.WriteString("Alert: Red Card\n")
	b.WriteString(m.HomeName)
	b.WriteString(" vs ")
	b.WriteString(m.AwayName)
	b.WriteString("\n")
	b.WriteString("Current Score: ")
	b.WriteString(scoreOrDash(m.HomeScore))
	b.WriteString(" - ")
	b.WriteString(scoreOrDash(m.AwayScore))
	b.WriteString("\n")
	b.WriteString("Incident Time: ")
	b.WriteString(strconv.Itoa(in.Minute))
	b.WriteString(" minutes\n")
	b.WriteString(side)
	b.WriteString(" received a red card")
	if in.Player != "" {
		b.WriteString(" (")
		b.WriteString(in.Player)
		b.WriteString(")")
	}
	b.WriteString(".\n")
	return b.String()
}

func scoreOrDash(v *int) string {
	if v == nil {
		return "-"
	}
	return strconv.Itoa(*v)
}
