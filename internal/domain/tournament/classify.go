package tournament

import (
	"math"
	"regexp"
	"strings"
)

// TierExcluded marks tournaments that must never be stored or alerted on.
const TierExcluded = -1

// TierUnranked is the catch-all bucket for anything no rule claimed.
const TierUnranked = 99

var (
	youthTier2Pattern    = regexp.MustCompile(`\b(U20|U21|U23)\b`)
	youthTier3Pattern    = regexp.MustCompile(`\bU19\b`)
	youthExcludedPattern = regexp.MustCompile(`\b(U16|U17)\b`)
)

// Config holds the tier override table and the country sets the match type
// rules consult. All sets are by upstream country (category) id.
type Config struct {
	TierOverrides      map[int64]int
	InternationalMinID int64
	InternationalMaxID int64
	MediumExcludedIDs  map[int64]struct{}
	MajorCupCountryIDs map[int64]struct{}
}

func DefaultConfig() Config {
	return Config{
		TierOverrides: map[int64]int{
			29:    19,
			135:   2,
			212:   2,
			247:   2,
			3085:  1,
			10609: 1,
			11417: 4,
			17138: TierExcluded,
			19293: TierExcluded,
			20360: TierExcluded,
			21261: TierExcluded,
			22327: TierExcluded,
		},
		InternationalMinID: 1465,
		InternationalMaxID: 1471,
		MediumExcludedIDs: map[int64]struct{}{
			34: {}, 41: {}, 45: {}, 62: {}, 65: {}, 84: {}, 98: {},
		},
		MajorCupCountryIDs: map[int64]struct{}{
			1: {}, 7: {}, 30: {}, 31: {}, 32: {},
		},
	}
}

// ResolveTier applies the tier rules in order and returns the resolved tier,
// or TierExcluded when the tournament must be dropped. Overrides win over
// every other rule, including the amateur exclusion.
func (c Config) ResolveTier(up Upstream) int {
	if tier, ok := c.TierOverrides[up.ID]; ok {
		return tier
	}

	if strings.Contains(up.CountryName, "Amateur") && up.Gender == GenderMale {
		return TierExcluded
	}

	if up.Tier == nil && len(up.LowerDivisionTiers) > 0 {
		if first := up.LowerDivisionTiers[0]; first != nil {
			return *first - 1
		}
	}

	if c.isInternational(up.CountryID) {
		if up.Gender == GenderFemale {
			return 10
		}
		return 20
	}

	if up.Tier != nil {
		switch {
		case *up.Tier >= 1 && *up.Tier <= 5:
			return *up.Tier
		case *up.Tier == 0:
			if up.Gender == GenderFemale {
				return 11
			}
			return 21
		}
		return TierUnranked
	}

	switch {
	case youthTier2Pattern.MatchString(up.Name):
		return 2
	case youthTier3Pattern.MatchString(up.Name):
		return 3
	case youthExcludedPattern.MatchString(up.Name):
		return TierExcluded
	}

	if up.Gender == GenderFemale {
		return 12
	}
	return 22
}

// ReputationScore derives the reputation score from the upstream follower
// count and the resolved tier. Results round to the nearest integer.
func ReputationScore(userCount int64, tier int) int64 {
	switch {
	case userCount > 2000 && tier > 20:
		return userCount
	case tier > 20:
		return int64(math.Round(float64(userCount) / 3))
	case tier >= 10 && tier <= 20:
		return int64(math.Round(float64(userCount) / 1.5))
	default:
		if tier < 1 {
			tier = 1
		}
		return int64(math.Round(float64(userCount) / float64(tier)))
	}
}

// LabelForScore maps a reputation score to its label. Thresholds are strict.
func LabelForScore(score int64) ReputationLabel {
	switch {
	case score > 200000:
		return LabelTop
	case score > 50000:
		return LabelGood
	case score > 10000:
		return LabelMedium
	case score > 1000:
		return LabelLow
	default:
		return LabelBottom
	}
}

// MatchTypeFor applies the match type rules in order.
func (c Config) MatchTypeFor(tier int, label ReputationLabel, countryID int64, name string) MatchType {
	international := c.isInternational(countryID)

	switch {
	case tier <= 2 && (label == LabelTop || label == LabelGood):
		return MatchType(label)
	case tier <= 3 && label == LabelMedium && !c.mediumExcluded(countryID):
		return MatchTypeMedium
	case strings.Contains(name, "Friendly") && label != LabelBottom && label != LabelLow:
		return MatchTypeFriendly
	case international && label != LabelBottom:
		return MatchTypeInternational
	case (tier == 21 || tier == 22) && c.majorCupCountry(countryID) && label != LabelBottom:
		return MatchType(label)
	case (tier == 21 || tier == 22) && !international && label != LabelBottom:
		return MatchTypeCup
	default:
		return MatchTypeOther
	}
}

// Classify runs the full pipeline. ok is false when the tournament is excluded.
func (c Config) Classify(up Upstream) (Classification, bool) {
	tier := c.ResolveTier(up)
	if tier == TierExcluded {
		return Classification{}, false
	}

	score := ReputationScore(up.UserCount, tier)
	label := LabelForScore(score)

	return Classification{
		Tier:       tier,
		Reputation: score,
		Label:      label,
		MatchType:  c.MatchTypeFor(tier, label, up.CountryID, up.Name),
	}, true
}

func (c Config) isInternational(countryID int64) bool {
	return countryID >= c.InternationalMinID && countryID <= c.InternationalMaxID
}

func (c Config) mediumExcluded(countryID int64) bool {
	_, ok := c.MediumExcludedIDs[countryID]
	return ok
}

func (c Config) majorCupCountry(countryID int64) bool {
	_, ok := c.MajorCupCountryIDs[countryID]
	return ok
}
