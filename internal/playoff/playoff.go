// Package playoff seeds a postseason from ranked standings and plays it out.
package playoff

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sort"

	"github.com/omarshaarawi/gmsim/internal/league"
	"github.com/omarshaarawi/gmsim/internal/models"
	"github.com/omarshaarawi/gmsim/internal/season"
	"github.com/omarshaarawi/gmsim/internal/simerr"
)

type entrant struct {
	key    string
	seed   int
	record models.TeamSeasonRecord
}

// Simulate plays the postseason for standings already ranked by
// season.Result.Standings. ratings holds the Elo rating used for every team
// that can appear in the bracket.
//
// Each conference plays its top PlayoffTeamsPerLeague seeds; the top
// TopSeedByes seeds skip the first round. Every round is reseeded so the
// best remaining seed meets the worst. The two conference champions meet in
// the final, hosted by the better regular-season record.
func Simulate(ctx context.Context, cfg league.Config, standings models.Standings, ratings map[string]float64, rng *rand.Rand) (models.PlayoffBracket, error) {
	user, ok := standings.UserTeam()
	if !ok {
		return models.PlayoffBracket{}, simerr.Invariantf("standings carry no user team")
	}

	confs := [2][]models.TeamSeasonRecord{standings.Conference1, standings.Conference2}
	names := [2]string{standings.Conference1Name, standings.Conference2Name}

	var field [2][]entrant
	for c := range confs {
		for _, rec := range confs[c] {
			if rec.Seed == 0 {
				continue
			}
			if _, ok := ratings[rec.TeamID]; !ok {
				return models.PlayoffBracket{}, simerr.Invariantf("no rating for playoff team %q", rec.TeamID)
			}
			field[c] = append(field[c], entrant{key: rec.TeamID, seed: rec.Seed, record: rec})
		}
		if len(field[c]) != cfg.PlayoffTeamsPerLeague {
			return models.PlayoffBracket{}, simerr.Invariantf("%s has %d seeds, want %d", names[c], len(field[c]), cfg.PlayoffTeamsPerLeague)
		}
		sort.Slice(field[c], func(a, b int) bool { return field[c][a].seed < field[c][b].seed })
	}

	p := &bracket{cfg: cfg, ratings: ratings, rng: rng, user: user.TeamID}
	p.result.Sport = cfg.Sport

	var champs [2]entrant
	for c := range field {
		champ, err := p.conference(ctx, names[c], field[c])
		if err != nil {
			return models.PlayoffBracket{}, err
		}
		champs[c] = champ
	}

	if err := ctx.Err(); err != nil {
		return models.PlayoffBracket{}, simerr.FromContext(err)
	}
	final := cfg.ConferenceRounds() + 1
	high, low := champs[0], champs[1]
	if betterRecord(low.record, high.record) {
		high, low = low, high
	}
	series, winner, loser := p.series(high, low)
	p.result.Rounds = append(p.result.Rounds, models.RoundResult{
		Round:  final,
		Name:   cfg.RoundNames[final-1],
		Series: []models.SeriesResult{series},
	})
	p.result.Champion = winner.key
	p.track(final, winner, loser)

	p.result.UserTeamResult = p.userResult(user)
	return p.result, nil
}

type bracket struct {
	cfg     league.Config
	ratings map[string]float64
	rng     *rand.Rand
	user    string

	result models.PlayoffBracket

	userRound    int
	userChampion bool
	userElimBy   string
}

func (p *bracket) conference(ctx context.Context, name string, seeds []entrant) (entrant, error) {
	byes := append([]entrant(nil), seeds[:p.cfg.TopSeedByes]...)
	alive := append([]entrant(nil), seeds[p.cfg.TopSeedByes:]...)

	for _, e := range seeds {
		if e.key == p.user {
			p.userRound = 1
		}
	}

	for round := 1; round <= p.cfg.ConferenceRounds(); round++ {
		if err := ctx.Err(); err != nil {
			return entrant{}, simerr.FromContext(err)
		}
		rr := models.RoundResult{Round: round, Name: p.cfg.RoundNames[round-1], Conference: name}
		for _, e := range byes {
			rr.Byes = append(rr.Byes, e.key)
		}

		if len(alive)%2 != 0 {
			return entrant{}, simerr.Invariantf("%s round %d has an odd field of %d", name, round, len(alive))
		}
		var winners []entrant
		for i, j := 0, len(alive)-1; i < j; i, j = i+1, j-1 {
			series, winner, loser := p.series(alive[i], alive[j])
			rr.Series = append(rr.Series, series)
			winners = append(winners, winner)
			p.track(round, winner, loser)
		}
		p.result.Rounds = append(p.result.Rounds, rr)

		alive = append(byes, winners...)
		byes = nil
		sort.Slice(alive, func(a, b int) bool { return alive[a].seed < alive[b].seed })
	}
	if len(alive) != 1 {
		return entrant{}, simerr.Invariantf("%s bracket ended with %d teams", name, len(alive))
	}
	return alive[0], nil
}

// series plays a best-of-SeriesLength series with the 2-2-1-1-1 home
// pattern. All SeriesLength games are always drawn so the stream position
// after a series does not depend on how early it was decided.
func (p *bracket) series(high, low entrant) (models.SeriesResult, entrant, entrant) {
	need := p.cfg.WinsToTakeSeries()
	res := models.SeriesResult{HighSeed: high.key, LowSeed: low.key, HighSeedRank: high.seed, LowSeedRank: low.seed}
	rh, rl := p.ratings[high.key], p.ratings[low.key]

	for g := 0; g < p.cfg.SeriesLength; g++ {
		highHome := g < 2 || (g >= 4 && g%2 == 0)
		var highWon bool
		if highHome {
			highWon = season.PlayGame(p.cfg, p.rng, rh, rl).HomeWon
		} else {
			highWon = !season.PlayGame(p.cfg, p.rng, rl, rh).HomeWon
		}
		if res.HighSeedWins == need || res.LowSeedWins == need {
			continue
		}
		if highWon {
			res.HighSeedWins++
		} else {
			res.LowSeedWins++
		}
	}

	if res.HighSeedWins == need {
		res.Winner = high.key
		return res, high, low
	}
	res.Winner = low.key
	return res, low, high
}

func (p *bracket) track(round int, winner, loser entrant) {
	switch p.user {
	case winner.key:
		p.userRound = round + 1
	case loser.key:
		p.userRound = round
		p.userElimBy = winner.key
	}
	if round == p.cfg.ConferenceRounds()+1 && winner.key == p.user {
		p.userChampion = true
	}
}

// userResult reports how far the user's team went. RoundReached is 0 when
// the team missed the postseason, the round it was eliminated in otherwise,
// and one past the final for the champion.
func (p *bracket) userResult(user models.TeamSeasonRecord) models.UserTeamResult {
	res := models.UserTeamResult{
		TeamID:       user.TeamID,
		Qualified:    user.Seed > 0,
		Seed:         user.Seed,
		RoundReached: p.userRound,
		Champion:     p.userChampion,
		EliminatedBy: p.userElimBy,
	}

	final := p.cfg.ConferenceRounds() + 1
	switch {
	case !res.Qualified:
		res.Description = "Missed the playoffs"
	case res.Champion:
		res.Description = fmt.Sprintf("Won the %s as the %s seed", p.cfg.RoundNames[final-1], ordinal(user.Seed))
	case res.RoundReached == final:
		res.Description = fmt.Sprintf("Lost the %s to %s", p.cfg.RoundNames[final-1], res.EliminatedBy)
	default:
		res.Description = fmt.Sprintf("Eliminated in the %s by %s", p.cfg.RoundNames[res.RoundReached-1], res.EliminatedBy)
	}
	return res
}

func betterRecord(a, b models.TeamSeasonRecord) bool {
	wa, wb := a.WinPercentage(), b.WinPercentage()
	if wa != wb {
		return wa > wb
	}
	if a.PointDifferential != b.PointDifferential {
		return a.PointDifferential > b.PointDifferential
	}
	return a.TeamID < b.TeamID
}

func ordinal(n int) string {
	suffix := "th"
	switch {
	case n%100 >= 11 && n%100 <= 13:
	case n%10 == 1:
		suffix = "st"
	case n%10 == 2:
		suffix = "nd"
	case n%10 == 3:
		suffix = "rd"
	}
	return fmt.Sprintf("%d%s", n, suffix)
}
