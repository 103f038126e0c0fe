package incident

const (
	TypeCard       = "card"
	ClassRed       = "red"
	ClassYellowRed = "yellowRed"
)

// Incident is one in-match event reported by the live feed.
type Incident struct {
	ID        int64
	MatchID   int64
	Type      string
	ClassName string
	Minute    int
	Player    string
	IsHome    bool
}

// IsEarlyRedCard reports whether the incident is a straight or second yellow
// red card shown before the given minute.
func IsEarlyRedCard(in Incident, beforeMinute int) bool {
	if in.Type != TypeCard {
		return false
	}
	if in.ClassName != ClassRed && in.ClassName != ClassYellowRed {
		return false
	}
	return in.Minute < beforeMinute
}
