package usecase

import (
	"context"
	"time"

	"github.com/mzhadan/matchwatch/internal/domain/country"
	"github.com/mzhadan/matchwatch/internal/domain/incident"
	"github.com/mzhadan/matchwatch/internal/domain/match"
	"github.com/mzhadan/matchwatch/internal/domain/player"
	"github.com/mzhadan/matchwatch/internal/domain/season"
	"github.com/mzhadan/matchwatch/internal/domain/standing"
	"github.com/mzhadan/matchwatch/internal/domain/team"
	"github.com/mzhadan/matchwatch/internal/domain/tournament"
)

// Provider is the upstream football data feed. Boolean results report whether
// the entity exists upstream; a missing entity is not an error.
type Provider interface {
	Categories(ctx context.Context) ([]country.Country, error)
	CategoryTournamentIDs(ctx context.Context, categoryID int64) ([]int64, error)
	TournamentDetails(ctx context.Context, tournamentID int64) (tournament.Upstream, bool, error)
	TournamentSeasons(ctx context.Context, tournamentID int64) ([]season.Season, error)
	SeasonStandings(ctx context.Context, tournamentID, seasonID int64) ([]standing.Standing, error)
	ScheduledMatches(ctx context.Context, day time.Time) ([]match.Match, error)
	LiveMatches(ctx context.Context) ([]match.Match, error)
	MatchDetails(ctx context.Context, matchID int64) (match.Match, bool, error)
	MatchIncidents(ctx context.Context, matchID int64) ([]incident.Incident, error)
	MatchLineupInfo(ctx context.Context, matchID int64) (match.LineupInfo, bool, error)
	TeamDetails(ctx context.Context, teamID int64) (team.Team, bool, error)
	TeamPlayers(ctx context.Context, teamID int64) ([]player.Player, error)
}

// Notifier delivers alert messages to chats.
type Notifier interface {
	Broadcast(ctx context.Context, chatIDs []int64, messages []string) error
}

// RunSummary is the outcome of one sync or alert run.
type RunSummary struct {
	Fetched  int `json:"fetched"`
	Inserted int `json:"inserted"`
	Updated  int `json:"updated"`
	Deleted  int `json:"deleted"`
	Skipped  int `json:"skipped"`
}

func (s RunSummary) add(other RunSummary) RunSummary {
	s.Fetched += other.Fetched
	s.Inserted += other.Inserted
	s.Updated += other.Updated
	s.Deleted += other.Deleted
	s.Skipped += other.Skipped
	return s
}
