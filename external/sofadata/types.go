package sofadata

type categoriesEnvelope struct {
	Categories []categoryPayload `json:"categories"`
}

type categoryPayload struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type tournamentGroupsEnvelope struct {
	Groups []struct {
		UniqueTournaments []struct {
			ID int64 `json:"id"`
		} `json:"uniqueTournaments"`
	} `json:"groups"`
}

type tournamentDetailsEnvelope struct {
	UniqueTournament tournamentPayload `json:"uniqueTournament"`
}

type tournamentPayload struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Gender   string `json:"gender"`
	Category struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	} `json:"category"`
	Tier               *int  `json:"tier"`
	UserCount          int64 `json:"userCount"`
	StartDateTimestamp int64 `json:"startDateTimestamp"`
	EndDateTimestamp   int64 `json:"endDateTimestamp"`
	LowerDivisions     []struct {
		Tier *int `json:"tier"`
	} `json:"lowerDivisions"`
}

type seasonsEnvelope struct {
	Seasons []seasonPayload `json:"seasons"`
}

type seasonPayload struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Year string `json:"year"`
}

type standingsEnvelope struct {
	Standings []struct {
		Name string `json:"name"`
		Rows []struct {
			Team struct {
				ID int64 `json:"id"`
			} `json:"team"`
			Position      int `json:"position"`
			Matches       int `json:"matches"`
			Wins          int `json:"wins"`
			Losses        int `json:"losses"`
			Draws         int `json:"draws"`
			ScoresFor     int `json:"scoresFor"`
			ScoresAgainst int `json:"scoresAgainst"`
			Points        int `json:"points"`
		} `json:"rows"`
	} `json:"standings"`
}

type eventsEnvelope struct {
	Events []eventPayload `json:"events"`
}

type eventDetailsEnvelope struct {
	Event eventPayload `json:"event"`
}

type eventPayload struct {
	ID         int64 `json:"id"`
	Tournament struct {
		UniqueTournament struct {
			ID int64 `json:"id"`
		} `json:"uniqueTournament"`
	} `json:"tournament"`
	Season struct {
		ID int64 `json:"id"`
	} `json:"season"`
	HomeTeam struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	} `json:"homeTeam"`
	AwayTeam struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	} `json:"awayTeam"`
	RoundInfo struct {
		Round *int `json:"round"`
	} `json:"roundInfo"`
	Status struct {
		Type string `json:"type"`
	} `json:"status"`
	StartTimestamp int64 `json:"startTimestamp"`
	HomeScore      struct {
		Current *int `json:"current"`
	} `json:"homeScore"`
	AwayScore struct {
		Current *int `json:"current"`
	} `json:"awayScore"`
}

type incidentsEnvelope struct {
	Incidents []struct {
		ID            int64  `json:"id"`
		IncidentType  string `json:"incidentType"`
		IncidentClass string `json:"incidentClass"`
		Time          int    `json:"time"`
		PlayerName    string `json:"playerName"`
		IsHome        bool   `json:"isHome"`
	} `json:"incidents"`
}

type lineupsEnvelope struct {
	Home lineupSide `json:"home"`
	Away lineupSide `json:"away"`
}

type lineupSide struct {
	Players []struct {
		Player struct {
			MarketValue float64 `json:"marketValue"`
		} `json:"player"`
	} `json:"players"`
}

type pregameFormEnvelope struct {
	HomeTeam struct {
		AvgRating string `json:"avgRating"`
	} `json:"homeTeam"`
	AwayTeam struct {
		AvgRating string `json:"avgRating"`
	} `json:"awayTeam"`
}

type teamDetailsEnvelope struct {
	Team teamPayload `json:"team"`
}

type teamPayload struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"shortName"`
	Category  struct {
		Name string `json:"name"`
	} `json:"category"`
	PrimaryUniqueTournament struct {
		ID int64 `json:"id"`
	} `json:"primaryUniqueTournament"`
	UserCount int64 `json:"userCount"`
	Venue     struct {
		Stadium struct {
			Capacity int64 `json:"capacity"`
		} `json:"stadium"`
	} `json:"venue"`
}

type teamPlayersEnvelope struct {
	Players []struct {
		Player struct {
			ID                   int64   `json:"id"`
			Name                 string  `json:"name"`
			Position             string  `json:"position"`
			ShirtNumber          *int    `json:"shirtNumber"`
			ProposedMarketValue  float64 `json:"proposedMarketValue"`
			DateOfBirthTimestamp int64   `json:"dateOfBirthTimestamp"`
		} `json:"player"`
	} `json:"players"`
}
