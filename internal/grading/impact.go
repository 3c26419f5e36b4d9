package grading

import (
	"math"

	"github.com/omarshaarawi/gmsim/internal/league"
	"github.com/omarshaarawi/gmsim/internal/models"
)

// MaxRatingImpact bounds the Elo swing a set of trades can apply to a team.
const MaxRatingImpact = 200

// contribution is the share of an asset's value that shows up on the field
// in the current season.
var contribution = map[models.AssetKind]float64{
	models.AssetPlayer:    1.0,
	models.AssetProspect:  0.3,
	models.AssetDraftPick: 0.1,
}

// RatingImpact is the Elo delta the trades apply to the user's team this
// season, clamped to ±MaxRatingImpact.
func RatingImpact(cfg league.Config, trades ...models.Trade) float64 {
	var net float64
	for _, t := range trades {
		for _, a := range t.Received {
			net += a.Value * scarcity(cfg.Sport, a.Position) * contribution[a.Kind]
		}
		for _, a := range t.Given {
			net -= a.Value * scarcity(cfg.Sport, a.Position) * contribution[a.Kind]
		}
	}
	delta := cfg.EloPerValue * net
	return math.Max(-MaxRatingImpact, math.Min(MaxRatingImpact, delta))
}
