package season

import (
	"math"
	"math/rand/v2"

	"github.com/omarshaarawi/gmsim/internal/league"
)

// Outcome is the result of one simulated game.
type Outcome struct {
	HomeWon  bool
	Margin   int
	Overtime bool
}

// WinProbability is the Elo expectation for the home side including the
// league's home advantage.
func WinProbability(cfg league.Config, homeRating, awayRating float64) float64 {
	diff := homeRating + cfg.HomeAdvantage - awayRating
	return 1 / (1 + math.Pow(10, -diff/400))
}

// PlayGame draws one game. It always consumes exactly three values from
// rng, so two runs sharing a seed stay aligned game by game even when the
// ratings differ.
func PlayGame(cfg league.Config, rng *rand.Rand, homeRating, awayRating float64) Outcome {
	u := rng.Float64()
	m := rng.Float64()
	o := rng.Float64()

	out := Outcome{HomeWon: u < WinProbability(cfg, homeRating, awayRating)}
	out.Overtime = o < cfg.OvertimeRate
	if out.Overtime {
		out.Margin = 1
		return out
	}
	out.Margin = 1 + int(m*float64(cfg.MaxMargin))
	if out.Margin > cfg.MaxMargin {
		out.Margin = cfg.MaxMargin
	}
	return out
}
