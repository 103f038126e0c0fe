package match

import (
	"strings"
	"time"
)

// Upstream status codes, kept verbatim so sweeps can match on them in SQL.
const (
	StatusNotStarted = "notstarted"
	StatusInProgress = "inprogress"
	StatusFinished   = "finished"
	StatusCanceled   = "canceled"
	StatusPostponed  = "postponed"
)

// Match is one fixture inside a tracked tournament season.
type Match struct {
	ID           int64
	TournamentID int64
	SeasonID     int64
	HomeTeamID   int64
	AwayTeamID   int64
	HomeName     string
	AwayName     string
	Round        *int
	Status       string
	StartAt      time.Time
	HomeScore    *int
	AwayScore    *int
}

// LineupInfo is pre-kickoff enrichment: total lineup market values and the
// average player rating over recent matches, per side.
type LineupInfo struct {
	HomeValue     float64
	AwayValue     float64
	HomeAvgRating float64
	AwayAvgRating float64
}

// AlertPreview is the denormalized row the prematch gate formats into one
// message block.
type AlertPreview struct {
	MatchID        int64
	StartAt        time.Time
	Round          *int
	MatchType      string
	CountryName    string
	TournamentName string
	Reputation     int64
	HomeName       string
	AwayName       string
	HomePosition   *int
	AwayPosition   *int
	HomeScoredAvg  *float64
	AwayScoredAvg  *float64
	HomeSquadValue float64
	AwaySquadValue float64
}

// SeasonRef identifies a (tournament, season) pair.
type SeasonRef struct {
	TournamentID int64
	SeasonID     int64
}

func NormalizeStatus(value string) string {
	status := strings.ToLower(strings.TrimSpace(value))
	if status == "" {
		return StatusNotStarted
	}
	return status
}

func IsLiveStatus(status string) bool {
	return NormalizeStatus(status) == StatusInProgress
}

func IsFinishedStatus(status string) bool {
	return NormalizeStatus(status) == StatusFinished
}

func IsCanceledLikeStatus(status string) bool {
	switch NormalizeStatus(status) {
	case StatusCanceled, StatusPostponed:
		return true
	default:
		return false
	}
}
