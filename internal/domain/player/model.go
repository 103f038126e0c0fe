package player

import "time"

// Player is a squad member. The logical key is (ID, TeamID): a transferred
// player gets a fresh row under the new team.
type Player struct {
	ID          int64
	TeamID      int64
	Name        string
	Position    string
	ShirtNumber *int
	MarketValue float64
	DateOfBirth *time.Time
}

// Key identifies a player row inside one squad.
type Key struct {
	PlayerID int64
	TeamID   int64
}

func (p Player) Key() Key {
	return Key{PlayerID: p.ID, TeamID: p.TeamID}
}
