package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mzhadan/matchwatch/internal/domain/chat"
	"github.com/mzhadan/matchwatch/internal/domain/match"
	"github.com/mzhadan/matchwatch/internal/domain/tournament"
	"github.com/mzhadan/matchwatch/internal/platform/logging"
)

const prematchHeader = "Upcoming Matches:\n\n"

type PrematchAlertConfig struct {
	// WindowStart and WindowEnd bound kickoff relative to now. Matches
	// already previewed in earlier runs fall out of the window naturally.
	WindowStart time.Duration
	WindowEnd   time.Duration
	// Labels restricts previews to tournaments carrying these labels.
	Labels []string
	// MessageLimit caps one outgoing message. Blocks never split across it.
	MessageLimit int
}

// PrematchAlertService sends a kickoff preview digest to every enabled chat.
type PrematchAlertService struct {
	matchRepo match.Repository
	chatRepo  chat.Repository
	notifier  Notifier
	cfg       PrematchAlertConfig
	logger    *logging.Logger
	now       func() time.Time
}

func NewPrematchAlertService(
	matchRepo match.Repository,
	chatRepo chat.Repository,
	notifier Notifier,
	cfg PrematchAlertConfig,
	logger *logging.Logger,
) *PrematchAlertService {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.WindowStart <= 0 {
		cfg.WindowStart = 25 * time.Minute
	}
	if cfg.WindowEnd <= cfg.WindowStart {
		cfg.WindowEnd = 100 * time.Minute
	}
	if len(cfg.Labels) == 0 {
		cfg.Labels = []string{
			string(tournament.LabelTop),
			string(tournament.LabelGood),
			string(tournament.LabelMedium),
			string(tournament.LabelLow),
		}
	}
	if cfg.MessageLimit <= 0 {
		cfg.MessageLimit = 4000
	}
	return &PrematchAlertService{
		matchRepo: matchRepo,
		chatRepo:  chatRepo,
		notifier:  notifier,
		cfg:       cfg,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *PrematchAlertService) Run(ctx context.Context) (RunSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PrematchAlertService.Run")
	defer span.End()

	if s.matchRepo == nil || s.chatRepo == nil || s.notifier == nil {
		return RunSummary{}, fmt.Errorf("%w: prematch alerts are not fully configured", ErrDependencyUnavailable)
	}

	now := s.now().UTC()
	previews, err := s.matchRepo.ListAlertPreviews(ctx, now.Add(s.cfg.WindowStart), now.Add(s.cfg.WindowEnd), s.cfg.Labels)
	if err != nil {
		return RunSummary{}, fmt.Errorf("list alert previews: %w", err)
	}
	if len(previews) == 0 {
		s.logger.InfoContext(ctx, "no matches inside prematch window")
		return RunSummary{}, nil
	}

	chats, err := s.chatRepo.ListEnabled(ctx)
	if err != nil {
		return RunSummary{}, fmt.Errorf("list enabled chats: %w", err)
	}
	if len(chats) == 0 {
		s.logger.WarnContext(ctx, "prematch previews ready but no chats enabled", "previews", len(previews))
		return RunSummary{Fetched: len(previews), Skipped: len(previews)}, nil
	}

	blocks := make([]string, 0, len(previews))
	for _, preview := range previews {
		blocks = append(blocks, formatPreview(preview))
	}
	messages := packMessages(prematchHeader, blocks, s.cfg.MessageLimit)

	chatIDs := make([]int64, 0, len(chats))
	for _, item := range chats {
		chatIDs = append(chatIDs, item.ID)
	}
	if err := s.notifier.Broadcast(ctx, chatIDs, messages); err != nil {
		return RunSummary{Fetched: len(previews)}, fmt.Errorf("broadcast prematch previews: %w", err)
	}

	s.logger.InfoContext(ctx, "prematch alerts sent",
		"previews", len(previews),
		"messages", len(messages),
		"chats", len(chatIDs),
	)
	return RunSummary{Fetched: len(previews), Inserted: len(messages)}, nil
}

// formatPreview renders one match block. Missing standings or scoring
// averages render as dashes rather than dropping the line.
func formatPreview(p match.AlertPreview) string {
	var b strings.Builder
	b.WriteString(p.MatchType)
	b.WriteString(" in ")
	b.WriteString(p.CountryName)
	b.WriteString(" ")
	b.WriteString(p.TournamentName)
	b.WriteString(" - ")
	b.WriteString(p.StartAt.UTC().Format("15:04"))
	b.WriteString("\n")

	b.WriteString("Round ")
	b.WriteString(intPtrOrDash(p.Round))
	b.WriteString(": ")
	b.WriteString(p.HomeName)
	b.WriteString("(")
	b.WriteString(intPtrOrDash(p.HomePosition))
	b.WriteString(") vs ")
	b.WriteString(p.AwayName)
	b.WriteString("(")
	b.WriteString(intPtrOrDash(p.AwayPosition))
	b.WriteString(")\n")

	b.WriteString("Goal Avg: ")
	b.WriteString(floatPtrOrDash(p.HomeScoredAvg))
	b.WriteString(" vs ")
	b.WriteString(floatPtrOrDash(p.AwayScoredAvg))
	b.WriteString("\n")

	b.WriteString("Values: ")
	b.WriteString(strconv.FormatFloat(p.HomeSquadValue, 'f', -1, 64))
	b.WriteString("M vs ")
	b.WriteString(strconv.FormatFloat(p.AwaySquadValue, 'f', -1, 64))
	b.WriteString("M\n\n")

	return b.String()
}

// packMessages concatenates blocks into messages of at most limit runes,
// starting each message with header. A block larger than the limit still
// becomes its own message rather than being split.
func packMessages(header string, blocks []string, limit int) []string {
	if len(blocks) == 0 {
		return nil
	}

	var messages []string
	current := header
	for _, block := range blocks {
		if len(current) > len(header) && len(current)+len(block) > limit {
			messages = append(messages, current)
			current = header
		}
		current += block
	}
	if len(current) > len(header) {
		messages = append(messages, current)
	}
	return messages
}

func intPtrOrDash(v *int) string {
	if v == nil {
		return "-"
	}
	return strconv.Itoa(*v)
}

func floatPtrOrDash(v *float64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatFloat(*v, 'f', 1, 64)
}
