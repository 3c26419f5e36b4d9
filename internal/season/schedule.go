package season

import (
	"math/rand/v2"

	"github.com/omarshaarawi/gmsim/internal/league"
	"github.com/omarshaarawi/gmsim/internal/simerr"
)

// Game is one scheduled matchup; Home and Away index into Schedule.Teams.
type Game struct {
	Home int
	Away int
}

// Schedule is a sequence of rounds in which every team plays exactly once.
type Schedule struct {
	Teams  []string
	Rounds [][]Game
}

// GamesFor counts the scheduled games of team index i.
func (s Schedule) GamesFor(i int) int {
	n := 0
	for _, round := range s.Rounds {
		for _, g := range round {
			if g.Home == i || g.Away == i {
				n++
			}
		}
	}
	return n
}

// GenerateSchedule builds a balanced schedule with the circle method: a
// single round robin yields len(teams)-1 perfect matchings, and the season
// cycles through them until GamesPerSeason rounds exist. Because every
// round is a perfect matching each team plays exactly GamesPerSeason games.
// Home sides alternate by pairing and by pass through the round robin.
// rng only shuffles the team order, so it decides who meets whom.
func GenerateSchedule(cfg league.Config, teams []string, rng *rand.Rand) (Schedule, error) {
	n := len(teams)
	if n < 2 || n%2 != 0 {
		return Schedule{}, simerr.Invariantf("schedule needs an even number of teams, got %d", n)
	}
	if cfg.GamesPerSeason <= 0 {
		return Schedule{}, simerr.Invariantf("schedule needs a positive season length, got %d", cfg.GamesPerSeason)
	}

	order := rng.Perm(n)
	base := make([][][2]int, n-1)
	ring := append([]int(nil), order...)
	for r := 0; r < n-1; r++ {
		pairs := make([][2]int, n/2)
		for i := 0; i < n/2; i++ {
			pairs[i] = [2]int{ring[i], ring[n-1-i]}
		}
		base[r] = pairs
		// rotate everything but the anchor one step clockwise
		last := ring[n-1]
		copy(ring[2:], ring[1:n-1])
		ring[1] = last
	}

	rounds := make([][]Game, cfg.GamesPerSeason)
	for k := range rounds {
		r := k % (n - 1)
		pass := k / (n - 1)
		games := make([]Game, len(base[r]))
		for i, p := range base[r] {
			if (i+r+pass)%2 == 0 {
				games[i] = Game{Home: p[0], Away: p[1]}
			} else {
				games[i] = Game{Home: p[1], Away: p[0]}
			}
		}
		rounds[k] = games
	}

	return Schedule{Teams: append([]string(nil), teams...), Rounds: rounds}, nil
}
