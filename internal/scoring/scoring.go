// Package scoring composes the GM score from a trade grade and the
// baseline and modified season outcomes.
package scoring

import (
	"math"

	"github.com/omarshaarawi/gmsim/internal/models"
	"github.com/omarshaarawi/gmsim/internal/simerr"
)

const (
	MaxTradeQuality      = 60
	MaxWinImprovement    = 25
	MaxPlayoffBonus      = 15
	MaxChampionshipBonus = 15
	MaxGMScore           = MaxTradeQuality + MaxWinImprovement + MaxPlayoffBonus + MaxChampionshipBonus

	pointsPerRound = 5
	// winImprovementShare is the share of the season's games a team has to
	// gain to earn the full win improvement score.
	winImprovementShare = 0.15
)

// Input is everything the aggregator needs.
type Input struct {
	TradeQualityScore int
	GamesPerSeason    int
	Baseline          models.RecordLine
	Modified          models.RecordLine
	BaselinePlayoffs  models.UserTeamResult
	ModifiedPlayoffs  models.UserTeamResult
}

// Compose returns the clamped GM score and its breakdown. The components
// always sum to the score.
func Compose(in Input) (int, models.ScoreBreakdown, error) {
	if in.GamesPerSeason <= 0 {
		return 0, models.ScoreBreakdown{}, simerr.Invariantf("gamesPerSeason %d must be positive", in.GamesPerSeason)
	}
	b := models.ScoreBreakdown{
		TradeQualityScore:   clamp(in.TradeQualityScore, 0, MaxTradeQuality),
		WinImprovementScore: WinImprovement(in.Modified.Wins-in.Baseline.Wins, in.GamesPerSeason),
		PlayoffBonusScore:   PlayoffBonus(in.BaselinePlayoffs.RoundReached, in.ModifiedPlayoffs.RoundReached),
		ChampionshipBonus:   ChampionshipBonus(in.BaselinePlayoffs.Champion, in.ModifiedPlayoffs.Champion),
	}
	total := clamp(b.Total(), 0, MaxGMScore)
	if err := Check(total, b); err != nil {
		return 0, models.ScoreBreakdown{}, err
	}
	return total, b, nil
}

// WinImprovement rewards extra wins, saturating at 15% of the schedule.
// Fewer wins score zero.
func WinImprovement(delta, games int) int {
	if delta <= 0 || games <= 0 {
		return 0
	}
	frac := math.Min(1, float64(delta)/(winImprovementShare*float64(games)))
	return int(math.Round(MaxWinImprovement * frac))
}

// PlayoffBonus awards five points per additional round reached.
func PlayoffBonus(baselineRound, modifiedRound int) int {
	return clamp(pointsPerRound*(modifiedRound-baselineRound), 0, MaxPlayoffBonus)
}

// ChampionshipBonus is all or nothing: only a title the baseline did not
// already win counts.
func ChampionshipBonus(baselineChampion, modifiedChampion bool) int {
	if modifiedChampion && !baselineChampion {
		return MaxChampionshipBonus
	}
	return 0
}

// Check verifies component bounds and that the components sum to total.
func Check(total int, b models.ScoreBreakdown) error {
	switch {
	case b.TradeQualityScore < 0 || b.TradeQualityScore > MaxTradeQuality:
		return simerr.Invariantf("tradeQualityScore %d outside [0,%d]", b.TradeQualityScore, MaxTradeQuality)
	case b.WinImprovementScore < 0 || b.WinImprovementScore > MaxWinImprovement:
		return simerr.Invariantf("winImprovementScore %d outside [0,%d]", b.WinImprovementScore, MaxWinImprovement)
	case b.PlayoffBonusScore < 0 || b.PlayoffBonusScore > MaxPlayoffBonus:
		return simerr.Invariantf("playoffBonusScore %d outside [0,%d]", b.PlayoffBonusScore, MaxPlayoffBonus)
	case b.ChampionshipBonus != 0 && b.ChampionshipBonus != MaxChampionshipBonus:
		return simerr.Invariantf("championshipBonus %d is neither 0 nor %d", b.ChampionshipBonus, MaxChampionshipBonus)
	case total < 0 || total > MaxGMScore:
		return simerr.Invariantf("gmScore %d outside [0,%d]", total, MaxGMScore)
	case b.Total() != total:
		return simerr.Invariantf("score components sum to %d, gmScore is %d", b.Total(), total)
	}
	return nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
