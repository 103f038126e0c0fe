package team

import "math"

// Team is a club enriched with derived squad value and reputation.
type Team struct {
	ID              int64
	Name            string
	ShortName       string
	CountryName     string
	TournamentID    *int64
	UserCount       int64
	StadiumCapacity int64
	SquadValue      float64
	Reputation      float64
}

// SquadValue sums player market values and expresses the total in millions,
// rounded to three decimals.
func SquadValue(marketValues []float64) float64 {
	var total float64
	for _, v := range marketValues {
		total += v
	}
	return math.Round(total/1e6*1000) / 1000
}
