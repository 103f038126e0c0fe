package tournament

import "time"

// ReputationLabel buckets a tournament's reputation score.
type ReputationLabel string

const (
	LabelTop    ReputationLabel = "top"
	LabelGood   ReputationLabel = "good"
	LabelMedium ReputationLabel = "medium"
	LabelLow    ReputationLabel = "low"
	LabelBottom ReputationLabel = "bottom"
)

// MatchType drives alert routing. Top, good and medium reuse the label value.
type MatchType string

const (
	MatchTypeTop           MatchType = "top"
	MatchTypeGood          MatchType = "good"
	MatchTypeMedium        MatchType = "medium"
	MatchTypeFriendly      MatchType = "friendly"
	MatchTypeInternational MatchType = "international"
	MatchTypeCup           MatchType = "cup"
	MatchTypeOther         MatchType = "other"
)

const (
	GenderMale   = "M"
	GenderFemale = "F"
)

// Tournament is a classified competition persisted by the sync pipeline.
type Tournament struct {
	ID          int64
	Name        string
	Gender      string
	CountryID   int64
	CountryName string
	Tier        int
	UserCount   int64
	Reputation  int64
	Label       ReputationLabel
	MatchType   MatchType
	StartDate   *time.Time
	EndDate     *time.Time
}

// Upstream carries the raw facts the classifier needs, before any rule ran.
type Upstream struct {
	ID                 int64
	Name               string
	Gender             string
	CountryID          int64
	CountryName        string
	Tier               *int
	UserCount          int64
	LowerDivisionTiers []*int
	StartDate          *time.Time
	EndDate            *time.Time
}

// Classification is the classifier verdict for one tournament.
type Classification struct {
	Tier       int
	Reputation int64
	Label      ReputationLabel
	MatchType  MatchType
}
