// Package season simulates a full regular season into ranked standings.
package season

import (
	"context"
	"math/rand/v2"

	"github.com/omarshaarawi/gmsim/internal/league"
	"github.com/omarshaarawi/gmsim/internal/models"
	"github.com/omarshaarawi/gmsim/internal/simerr"
)

// cancelCheckRounds is how many schedule rounds run between context checks.
const cancelCheckRounds = 8

// UserGame is one game from the user team's log.
type UserGame struct {
	Opponent string
	Home     bool
	Won      bool
	Margin   int
	Overtime bool
}

// Result is a simulated season before ranking.
type Result struct {
	Config  league.Config
	Teams   []models.TeamStrength
	Records []models.TeamSeasonRecord
	// HeadToHead[i][j] is the number of wins of team i over team j.
	HeadToHead [][]int
	UserIndex  int
	UserLog    []UserGame
}

// Simulate plays every scheduled game once. teams and ratings are indexed
// like sched.Teams; userIndex marks the user's team. The same rng seed with
// different ratings changes only the games whose probability moved.
func Simulate(ctx context.Context, cfg league.Config, sched Schedule, teams []models.TeamStrength, ratings []float64, userIndex int, rng *rand.Rand) (*Result, error) {
	n := len(sched.Teams)
	if len(teams) != n || len(ratings) != n {
		return nil, simerr.Invariantf("season input mismatch: %d scheduled teams, %d teams, %d ratings", n, len(teams), len(ratings))
	}
	if userIndex < 0 || userIndex >= n {
		return nil, simerr.Invariantf("user team index %d out of range", userIndex)
	}

	res := &Result{
		Config:     cfg,
		Teams:      teams,
		Records:    make([]models.TeamSeasonRecord, n),
		HeadToHead: make([][]int, n),
		UserIndex:  userIndex,
	}
	for i, t := range teams {
		res.Records[i] = models.TeamSeasonRecord{
			TeamID:       t.Key,
			Name:         t.Name,
			Abbreviation: t.Abbreviation,
			Conference:   t.Conference,
			IsUserTeam:   i == userIndex,
		}
		res.HeadToHead[i] = make([]int, n)
	}

	for r, round := range sched.Rounds {
		if r%cancelCheckRounds == 0 {
			if err := ctx.Err(); err != nil {
				return nil, simerr.FromContext(err)
			}
		}
		for _, g := range round {
			out := PlayGame(cfg, rng, ratings[g.Home], ratings[g.Away])
			winner, loser := g.Home, g.Away
			if !out.HomeWon {
				winner, loser = g.Away, g.Home
			}
			res.Records[winner].Wins++
			res.Records[winner].PointDifferential += out.Margin
			res.Records[loser].PointDifferential -= out.Margin
			if out.Overtime && cfg.TracksOvertimeLosses() {
				res.Records[loser].OTLosses++
			} else {
				res.Records[loser].Losses++
			}
			res.HeadToHead[winner][loser]++

			switch userIndex {
			case g.Home:
				res.UserLog = append(res.UserLog, UserGame{Opponent: teams[g.Away].Key, Home: true, Won: out.HomeWon, Margin: out.Margin, Overtime: out.Overtime})
			case g.Away:
				res.UserLog = append(res.UserLog, UserGame{Opponent: teams[g.Home].Key, Home: false, Won: !out.HomeWon, Margin: out.Margin, Overtime: out.Overtime})
			}
		}
	}

	return res, nil
}

// UserRecord returns the user's record line.
func (r *Result) UserRecord() models.RecordLine {
	rec := r.Records[r.UserIndex]
	return models.RecordLine{Wins: rec.Wins, Losses: rec.Losses, Ties: rec.Ties, OTLosses: rec.OTLosses}
}

// LongestWinStreak is the user's longest run of consecutive wins.
func (r *Result) LongestWinStreak() int {
	best, cur := 0, 0
	for _, g := range r.UserLog {
		if g.Won {
			cur++
			if cur > best {
				best = cur
			}
			continue
		}
		cur = 0
	}
	return best
}

// BiggestWin returns the user's most lopsided win, if any.
func (r *Result) BiggestWin() (UserGame, bool) {
	var best UserGame
	found := false
	for _, g := range r.UserLog {
		if g.Won && (!found || g.Margin > best.Margin) {
			best = g
			found = true
		}
	}
	return best, found
}
