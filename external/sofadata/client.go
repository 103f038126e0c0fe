// Package sofadata wraps the upstream sports data API. Endpoints map raw
// payloads straight into domain records; a missing upstream key reads as an
// empty result, never an error.
package sofadata

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"

	"github.com/mzhadan/matchwatch/internal/domain/country"
	"github.com/mzhadan/matchwatch/internal/domain/incident"
	"github.com/mzhadan/matchwatch/internal/domain/match"
	"github.com/mzhadan/matchwatch/internal/domain/player"
	"github.com/mzhadan/matchwatch/internal/domain/season"
	"github.com/mzhadan/matchwatch/internal/domain/standing"
	"github.com/mzhadan/matchwatch/internal/domain/team"
	"github.com/mzhadan/matchwatch/internal/domain/tournament"
	"github.com/mzhadan/matchwatch/internal/platform/logging"
	"github.com/mzhadan/matchwatch/internal/platform/resilience"
)

const defaultBaseURL = "https://api.sofadata.io/v1"

var errSofaTransient = crerr.New("sofadata transient failure")
var errSofaNotFound = crerr.New("sofadata resource not found")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

type Client struct {
	httpClient     *http.Client
	baseURL        string
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 20 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	maxRetries := cfg.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		maxRetries:     maxRetries,
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

func (c *Client) Categories(ctx context.Context) ([]country.Country, error) {
	var envelope categoriesEnvelope
	if err := c.doJSON(ctx, "/sport/football/categories", nil, &envelope); err != nil {
		if stderrors.Is(err, errSofaNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetch categories: %w", err)
	}

	out := make([]country.Country, 0, len(envelope.Categories))
	for _, item := range envelope.Categories {
		if item.ID <= 0 {
			continue
		}
		out = append(out, country.Country{ID: item.ID, Name: item.Name})
	}
	return out, nil
}

func (c *Client) CategoryTournamentIDs(ctx context.Context, categoryID int64) ([]int64, error) {
	path := fmt.Sprintf("/category/%d/unique-tournaments", categoryID)
	var envelope tournamentGroupsEnvelope
	if err := c.doJSON(ctx, path, nil, &envelope); err != nil {
		if stderrors.Is(err, errSofaNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetch category tournaments category_id=%d: %w", categoryID, err)
	}

	var ids []int64
	for _, group := range envelope.Groups {
		for _, item := range group.UniqueTournaments {
			if item.ID > 0 {
				ids = append(ids, item.ID)
			}
		}
	}
	return ids, nil
}

func (c *Client) TournamentDetails(ctx context.Context, tournamentID int64) (tournament.Upstream, bool, error) {
	path := fmt.Sprintf("/unique-tournament/%d", tournamentID)
	var envelope tournamentDetailsEnvelope
	if err := c.doJSON(ctx, path, nil, &envelope); err != nil {
		if stderrors.Is(err, errSofaNotFound) {
			return tournament.Upstream{}, false, nil
		}
		return tournament.Upstream{}, false, fmt.Errorf("fetch tournament details id=%d: %w", tournamentID, err)
	}

	data := envelope.UniqueTournament
	if data.ID <= 0 {
		return tournament.Upstream{}, false, nil
	}

	lowerTiers := make([]*int, 0, len(data.LowerDivisions))
	for _, division := range data.LowerDivisions {
		lowerTiers = append(lowerTiers, division.Tier)
	}

	gender := strings.ToUpper(strings.TrimSpace(data.Gender))
	if gender == "" {
		gender = tournament.GenderMale
	}

	return tournament.Upstream{
		ID:                 data.ID,
		Name:               data.Name,
		Gender:             gender,
		CountryID:          data.Category.ID,
		CountryName:        data.Category.Name,
		Tier:               data.Tier,
		UserCount:          data.UserCount,
		LowerDivisionTiers: lowerTiers,
		StartDate:          unixToTimePtr(data.StartDateTimestamp),
		EndDate:            unixToTimePtr(data.EndDateTimestamp),
	}, true, nil
}

func (c *Client) TournamentSeasons(ctx context.Context, tournamentID int64) ([]season.Season, error) {
	path := fmt.Sprintf("/unique-tournament/%d/seasons", tournamentID)
	var envelope seasonsEnvelope
	if err := c.doJSON(ctx, path, nil, &envelope); err != nil {
		if stderrors.Is(err, errSofaNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetch tournament seasons id=%d: %w", tournamentID, err)
	}

	out := make([]season.Season, 0, len(envelope.Seasons))
	for _, item := range envelope.Seasons {
		if item.ID <= 0 {
			continue
		}
		out = append(out, season.Season{
			ID:           item.ID,
			TournamentID: tournamentID,
			Name:         item.Name,
			Year:         item.Year,
		})
	}
	return out, nil
}

func (c *Client) SeasonStandings(ctx context.Context, tournamentID, seasonID int64) ([]standing.Standing, error) {
	path := fmt.Sprintf("/unique-tournament/%d/season/%d/standings/total", tournamentID, seasonID)
	var envelope standingsEnvelope
	if err := c.doJSON(ctx, path, nil, &envelope); err != nil {
		if stderrors.Is(err, errSofaNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetch standings tournament=%d season=%d: %w", tournamentID, seasonID, err)
	}

	var out []standing.Standing
	for _, group := range envelope.Standings {
		groupName := strings.TrimSpace(group.Name)
		if groupName == "" {
			groupName = standing.DefaultGroupName
		}
		for _, row := range group.Rows {
			if row.Team.ID <= 0 {
				continue
			}
			out = append(out, standing.Standing{
				TournamentID:  tournamentID,
				SeasonID:      seasonID,
				TeamID:        row.Team.ID,
				GroupName:     groupName,
				Position:      row.Position,
				Matches:       row.Matches,
				Wins:          row.Wins,
				Losses:        row.Losses,
				Draws:         row.Draws,
				ScoresFor:     row.ScoresFor,
				ScoresAgainst: row.ScoresAgainst,
				Points:        row.Points,
			})
		}
	}
	return out, nil
}

func (c *Client) ScheduledMatches(ctx context.Context, day time.Time) ([]match.Match, error) {
	path := "/sport/football/scheduled-events/" + day.Format("2006-01-02")
	var envelope eventsEnvelope
	if err := c.doJSON(ctx, path, nil, &envelope); err != nil {
		if stderrors.Is(err, errSofaNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetch scheduled events day=%s: %w", day.Format("2006-01-02"), err)
	}
	return mapEvents(envelope.Events), nil
}

func (c *Client) LiveMatches(ctx context.Context) ([]match.Match, error) {
	var envelope eventsEnvelope
	if err := c.doJSON(ctx, "/sport/football/events/live", nil, &envelope); err != nil {
		if stderrors.Is(err, errSofaNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetch live events: %w", err)
	}
	return mapEvents(envelope.Events), nil
}

func (c *Client) MatchDetails(ctx context.Context, matchID int64) (match.Match, bool, error) {
	path := fmt.Sprintf("/event/%d", matchID)
	var envelope eventDetailsEnvelope
	if err := c.doJSON(ctx, path, nil, &envelope); err != nil {
		if stderrors.Is(err, errSofaNotFound) {
			return match.Match{}, false, nil
		}
		return match.Match{}, false, fmt.Errorf("fetch event details id=%d: %w", matchID, err)
	}
	if envelope.Event.ID <= 0 {
		return match.Match{}, false, nil
	}
	return mapEvent(envelope.Event), true, nil
}

func (c *Client) MatchIncidents(ctx context.Context, matchID int64) ([]incident.Incident, error) {
	path := fmt.Sprintf("/event/%d/incidents", matchID)
	var envelope incidentsEnvelope
	if err := c.doJSON(ctx, path, nil, &envelope); err != nil {
		if stderrors.Is(err, errSofaNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetch event incidents id=%d: %w", matchID, err)
	}

	out := make([]incident.Incident, 0, len(envelope.Incidents))
	for _, item := range envelope.Incidents {
		if item.ID <= 0 {
			continue
		}
		out = append(out, incident.Incident{
			ID:        item.ID,
			MatchID:   matchID,
			Type:      item.IncidentType,
			ClassName: item.IncidentClass,
			Minute:    item.Time,
			Player:    item.PlayerName,
			IsHome:    item.IsHome,
		})
	}
	return out, nil
}

func (c *Client) MatchLineupInfo(ctx context.Context, matchID int64) (match.LineupInfo, bool, error) {
	lineupPath := fmt.Sprintf("/event/%d/lineups", matchID)
	var lineups lineupsEnvelope
	if err := c.doJSON(ctx, lineupPath, nil, &lineups); err != nil {
		if stderrors.Is(err, errSofaNotFound) {
			return match.LineupInfo{}, false, nil
		}
		return match.LineupInfo{}, false, fmt.Errorf("fetch event lineups id=%d: %w", matchID, err)
	}

	info := match.LineupInfo{
		HomeValue: lineupSideValue(lineups.Home),
		AwayValue: lineupSideValue(lineups.Away),
	}

	formPath := fmt.Sprintf("/event/%d/pregame-form", matchID)
	var form pregameFormEnvelope
	if err := c.doJSON(ctx, formPath, nil, &form); err != nil {
		if !stderrors.Is(err, errSofaNotFound) {
			return match.LineupInfo{}, false, fmt.Errorf("fetch pregame form id=%d: %w", matchID, err)
		}
	} else {
		info.HomeAvgRating = parseRating(form.HomeTeam.AvgRating)
		info.AwayAvgRating = parseRating(form.AwayTeam.AvgRating)
	}

	return info, true, nil
}

func (c *Client) TeamDetails(ctx context.Context, teamID int64) (team.Team, bool, error) {
	path := fmt.Sprintf("/team/%d", teamID)
	var envelope teamDetailsEnvelope
	if err := c.doJSON(ctx, path, nil, &envelope); err != nil {
		if stderrors.Is(err, errSofaNotFound) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, fmt.Errorf("fetch team details id=%d: %w", teamID, err)
	}

	data := envelope.Team
	if data.ID <= 0 {
		return team.Team{}, false, nil
	}

	var tournamentID *int64
	if data.PrimaryUniqueTournament.ID > 0 {
		id := data.PrimaryUniqueTournament.ID
		tournamentID = &id
	}

	return team.Team{
		ID:              data.ID,
		Name:            data.Name,
		ShortName:       data.ShortName,
		CountryName:     data.Category.Name,
		TournamentID:    tournamentID,
		UserCount:       data.UserCount,
		StadiumCapacity: data.Venue.Stadium.Capacity,
	}, true, nil
}

func (c *Client) TeamPlayers(ctx context.Context, teamID int64) ([]player.Player, error) {
	path := fmt.Sprintf("/team/%d/players", teamID)
	var envelope teamPlayersEnvelope
	if err := c.doJSON(ctx, path, nil, &envelope); err != nil {
		if stderrors.Is(err, errSofaNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetch team players id=%d: %w", teamID, err)
	}

	out := make([]player.Player, 0, len(envelope.Players))
	for _, item := range envelope.Players {
		if item.Player.ID <= 0 {
			continue
		}
		out = append(out, player.Player{
			ID:          item.Player.ID,
			TeamID:      teamID,
			Name:        item.Player.Name,
			Position:    item.Player.Position,
			ShirtNumber: item.Player.ShirtNumber,
			MarketValue: item.Player.ProposedMarketValue,
			DateOfBirth: unixToTimePtr(item.Player.DateOfBirthTimestamp),
		})
	}
	return out, nil
}

func (c *Client) doJSON(ctx context.Context, path string, query map[string]string, target any) error {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "sofadata circuit breaker rejected request", "state", c.breaker.State())
			return fmt.Errorf("sports data provider is temporarily unavailable: %w", err)
		}
	}

	values := url.Values{}
	for key, value := range query {
		values.Set(key, value)
	}

	fullURL := c.baseURL + path
	if encoded := values.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	key := path + "?" + values.Encode()
	out, err, _ := c.flight.Do(key, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && stderrors.Is(reqErr, errSofaTransient) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return err
	}

	raw, ok := out.([]byte)
	if !ok {
		return fmt.Errorf("unexpected response payload type %T", out)
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode provider payload: %w", err)
	}
	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %v", errSofaTransient, err)
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, 6<<20))
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = fmt.Errorf("%w: read response body: %v", errSofaTransient, readErr)
			case resp.StatusCode == http.StatusNotFound:
				return nil, errSofaNotFound
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			case isRetryableStatus(resp.StatusCode):
				lastErr = fmt.Errorf("%w: provider status=%d body=%s", errSofaTransient, resp.StatusCode, abbreviateBody(raw))
			default:
				return nil, fmt.Errorf("provider status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("provider request failed")
	}
	c.logger.WarnContext(ctx, "sofadata request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func isRetryableStatus(statusCode int) bool {
	return statusCode == http.StatusRequestTimeout ||
		statusCode == http.StatusTooManyRequests ||
		statusCode >= http.StatusInternalServerError
}

func abbreviateBody(raw []byte) string {
	const limit = 512
	body := strings.TrimSpace(string(raw))
	if len(body) <= limit {
		return body
	}
	return body[:limit] + "...(truncated)"
}

func mapEvents(items []eventPayload) []match.Match {
	out := make([]match.Match, 0, len(items))
	for _, item := range items {
		if item.ID <= 0 {
			continue
		}
		out = append(out, mapEvent(item))
	}
	return out
}

func mapEvent(item eventPayload) match.Match {
	return match.Match{
		ID:           item.ID,
		TournamentID: item.Tournament.UniqueTournament.ID,
		SeasonID:     item.Season.ID,
		HomeTeamID:   item.HomeTeam.ID,
		AwayTeamID:   item.AwayTeam.ID,
		HomeName:     item.HomeTeam.Name,
		AwayName:     item.AwayTeam.Name,
		Round:        item.RoundInfo.Round,
		Status:       match.NormalizeStatus(item.Status.Type),
		StartAt:      time.Unix(item.StartTimestamp, 0).UTC(),
		HomeScore:    item.HomeScore.Current,
		AwayScore:    item.AwayScore.Current,
	}
}

func lineupSideValue(side lineupSide) float64 {
	var total float64
	for _, entry := range side.Players {
		total += entry.Player.MarketValue
	}
	return total
}

func parseRating(raw string) float64 {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0
	}
	return value
}

func unixToTimePtr(ts int64) *time.Time {
	if ts <= 0 {
		return nil
	}
	t := time.Unix(ts, 0).UTC()
	return &t
}
