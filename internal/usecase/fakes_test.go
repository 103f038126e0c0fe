package usecase

import (
	"context"
	"time"

	"github.com/mzhadan/matchwatch/internal/domain/chat"
	"github.com/mzhadan/matchwatch/internal/domain/country"
	"github.com/mzhadan/matchwatch/internal/domain/incident"
	"github.com/mzhadan/matchwatch/internal/domain/match"
	"github.com/mzhadan/matchwatch/internal/domain/player"
	"github.com/mzhadan/matchwatch/internal/domain/season"
	"github.com/mzhadan/matchwatch/internal/domain/standing"
	"github.com/mzhadan/matchwatch/internal/domain/team"
	"github.com/mzhadan/matchwatch/internal/domain/tournament"
)

type fakeProvider struct {
	categories            func(ctx context.Context) ([]country.Country, error)
	categoryTournamentIDs func(ctx context.Context, categoryID int64) ([]int64, error)
	tournamentDetails     func(ctx context.Context, tournamentID int64) (tournament.Upstream, bool, error)
	tournamentSeasons     func(ctx context.Context, tournamentID int64) ([]season.Season, error)
	seasonStandings       func(ctx context.Context, tournamentID, seasonID int64) ([]standing.Standing, error)
	scheduledMatches      func(ctx context.Context, day time.Time) ([]match.Match, error)
	liveMatches           func(ctx context.Context) ([]match.Match, error)
	matchDetails          func(ctx context.Context, matchID int64) (match.Match, bool, error)
	matchIncidents        func(ctx context.Context, matchID int64) ([]incident.Incident, error)
	matchLineupInfo       func(ctx context.Context, matchID int64) (match.LineupInfo, bool, error)
	teamDetails           func(ctx context.Context, teamID int64) (team.Team, bool, error)
	teamPlayers           func(ctx context.Context, teamID int64) ([]player.Player, error)
}

func (f *fakeProvider) Categories(ctx context.Context) ([]country.Country, error) {
	if f.categories == nil {
		return nil, nil
	}
	return f.categories(ctx)
}

func (f *fakeProvider) CategoryTournamentIDs(ctx context.Context, categoryID int64) ([]int64, error) {
	if f.categoryTournamentIDs == nil {
		return nil, nil
	}
	return f.categoryTournamentIDs(ctx, categoryID)
}

func (f *fakeProvider) TournamentDetails(ctx context.Context, tournamentID int64) (tournament.Upstream, bool, error) {
	if f.tournamentDetails == nil {
		return tournament.Upstream{}, false, nil
	}
	return f.tournamentDetails(ctx, tournamentID)
}

func (f *fakeProvider) TournamentSeasons(ctx context.Context, tournamentID int64) ([]season.Season, error) {
	if f.tournamentSeasons == nil {
		return nil, nil
	}
	return f.tournamentSeasons(ctx, tournamentID)
}

func (f *fakeProvider) SeasonStandings(ctx context.Context, tournamentID, seasonID int64) ([]standing.Standing, error) {
	if f.seasonStandings == nil {
		return nil, nil
	}
	return f.seasonStandings(ctx, tournamentID, seasonID)
}

func (f *fakeProvider) ScheduledMatches(ctx context.Context, day time.Time) ([]match.Match, error) {
	if f.scheduledMatches == nil {
		return nil, nil
	}
	return f.scheduledMatches(ctx, day)
}

func (f *fakeProvider) LiveMatches(ctx context.Context) ([]match.Match, error) {
	if f.liveMatches == nil {
		return nil, nil
	}
	return f.liveMatches(ctx)
}

func (f *fakeProvider) MatchDetails(ctx context.Context, matchID int64) (match.Match, bool, error) {
	if f.matchDetails == nil {
		return match.Match{}, false, nil
	}
	return f.matchDetails(ctx, matchID)
}

func (f *fakeProvider) MatchIncidents(ctx context.Context, matchID int64) ([]incident.Incident, error) {
	if f.matchIncidents == nil {
		return nil, nil
	}
	return f.matchIncidents(ctx, matchID)
}

func (f *fakeProvider) MatchLineupInfo(ctx context.Context, matchID int64) (match.LineupInfo, bool, error) {
	if f.matchLineupInfo == nil {
		return match.LineupInfo{}, false, nil
	}
	return f.matchLineupInfo(ctx, matchID)
}

func (f *fakeProvider) TeamDetails(ctx context.Context, teamID int64) (team.Team, bool, error) {
	if f.teamDetails == nil {
		return team.Team{}, false, nil
	}
	return f.teamDetails(ctx, teamID)
}

func (f *fakeProvider) TeamPlayers(ctx context.Context, teamID int64) ([]player.Player, error) {
	if f.teamPlayers == nil {
		return nil, nil
	}
	return f.teamPlayers(ctx, teamID)
}

type fakeCountryRepo struct {
	items    []country.Country
	inserted [][]country.Country
	updated  [][]country.Country
}

func (f *fakeCountryRepo) List(context.Context) ([]country.Country, error) {
	return f.items, nil
}

func (f *fakeCountryRepo) InsertBatch(_ context.Context, batch []country.Country) error {
	f.inserted = append(f.inserted, batch)
	return nil
}

func (f *fakeCountryRepo) UpdateBatch(_ context.Context, batch []country.Country) error {
	f.updated = append(f.updated, batch)
	return nil
}

type fakeMatchRepo struct {
	listBetween        func(ctx context.Context, from, to time.Time) ([]match.Match, error)
	listRefreshable    func(ctx context.Context, startedBefore time.Time) ([]match.Match, error)
	listAlertPreviews  func(ctx context.Context, from, to time.Time, labels []string) ([]match.AlertPreview, error)
	listTeamIDs        func(ctx context.Context, from, to time.Time) ([]int64, error)
	listSeasons        func(ctx context.Context, since time.Time) ([]match.SeasonRef, error)
	listCandidates     func(ctx context.Context, startingBefore time.Time, labels []string) ([]match.Match, error)
	inserted           [][]match.Match
	updated            [][]match.Match
	deletedStaleBefore []time.Time
	lineupInfo         map[int64]match.LineupInfo
}

func (f *fakeMatchRepo) ListBetween(ctx context.Context, from, to time.Time) ([]match.Match, error) {
	if f.listBetween == nil {
		return nil, nil
	}
	return f.listBetween(ctx, from, to)
}

func (f *fakeMatchRepo) InsertBatch(_ context.Context, batch []match.Match) error {
	f.inserted = append(f.inserted, batch)
	return nil
}

func (f *fakeMatchRepo) UpdateBatch(_ context.Context, batch []match.Match) error {
	f.updated = append(f.updated, batch)
	return nil
}

func (f *fakeMatchRepo) DeleteStale(_ context.Context, unfinishedBefore time.Time) (int64, error) {
	f.deletedStaleBefore = append(f.deletedStaleBefore, unfinishedBefore)
	return 0, nil
}

func (f *fakeMatchRepo) ListRefreshable(ctx context.Context, startedBefore time.Time) ([]match.Match, error) {
	if f.listRefreshable == nil {
		return nil, nil
	}
	return f.listRefreshable(ctx, startedBefore)
}

func (f *fakeMatchRepo) ListTeamIDsBetween(ctx context.Context, from, to time.Time) ([]int64, error) {
	if f.listTeamIDs == nil {
		return nil, nil
	}
	return f.listTeamIDs(ctx, from, to)
}

func (f *fakeMatchRepo) ListSeasonsFinishedSince(ctx context.Context, since time.Time) ([]match.SeasonRef, error) {
	if f.listSeasons == nil {
		return nil, nil
	}
	return f.listSeasons(ctx, since)
}

func (f *fakeMatchRepo) ListLineupCandidates(ctx context.Context, startingBefore time.Time, labels []string) ([]match.Match, error) {
	if f.listCandidates == nil {
		return nil, nil
	}
	return f.listCandidates(ctx, startingBefore, labels)
}

func (f *fakeMatchRepo) UpdateLineupInfo(_ context.Context, matchID int64, info match.LineupInfo) error {
	if f.lineupInfo == nil {
		f.lineupInfo = map[int64]match.LineupInfo{}
	}
	f.lineupInfo[matchID] = info
	return nil
}

func (f *fakeMatchRepo) ListAlertPreviews(ctx context.Context, from, to time.Time, labels []string) ([]match.AlertPreview, error) {
	if f.listAlertPreviews == nil {
		return nil, nil
	}
	return f.listAlertPreviews(ctx, from, to, labels)
}

type fakeChatRepo struct {
	items []chat.Chat
}

func (f *fakeChatRepo) ListEnabled(context.Context) ([]chat.Chat, error) {
	return f.items, nil
}

type fakeLedger struct {
	claimed  map[int64]bool
	released []int64
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{claimed: map[int64]bool{}}
}

func (f *fakeLedger) Claim(_ context.Context, incidentID int64) (bool, error) {
	if f.claimed[incidentID] {
		return false, nil
	}
	f.claimed[incidentID] = true
	return true, nil
}

func (f *fakeLedger) Release(_ context.Context, incidentID int64) error {
	delete(f.claimed, incidentID)
	f.released = append(f.released, incidentID)
	return nil
}

type fakeNotifier struct {
	broadcasts []fakeBroadcast
	err        error
}

type fakeBroadcast struct {
	chatIDs  []int64
	messages []string
}

func (f *fakeNotifier) Broadcast(_ context.Context, chatIDs []int64, messages []string) error {
	if f.err != nil {
		return f.err
	}
	f.broadcasts = append(f.broadcasts, fakeBroadcast{chatIDs: chatIDs, messages: messages})
	return nil
}
