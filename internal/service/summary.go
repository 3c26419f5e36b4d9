package service

import (
	"fmt"
	"strings"

	"github.com/omarshaarawi/gmsim/internal/models"
	"github.com/omarshaarawi/gmsim/internal/season"
)

type summaryInput struct {
	team         models.TeamStrength
	trades       int
	ratingDelta  float64
	baseline     models.RecordLine
	modified     models.RecordLine
	standings    models.Standings
	playoffs     models.UserTeamResult
	season       *season.Result
	gmScore      int
	playoffRound string
}

func formatRecord(r models.RecordLine) string {
	switch {
	case r.OTLosses > 0:
		return fmt.Sprintf("%d-%d-%d", r.Wins, r.Losses, r.OTLosses)
	case r.Ties > 0:
		return fmt.Sprintf("%d-%d-%d", r.Wins, r.Losses, r.Ties)
	default:
		return fmt.Sprintf("%d-%d", r.Wins, r.Losses)
	}
}

func buildSummary(in summaryInput) models.SeasonSummary {
	delta := in.modified.Wins - in.baseline.Wins

	var headline strings.Builder
	headline.WriteString(fmt.Sprintf("%s finish %s", in.team.Name, formatRecord(in.modified)))
	if delta != 0 {
		headline.WriteString(fmt.Sprintf(" (%+d wins)", delta))
	}
	switch {
	case in.playoffs.Champion:
		headline.WriteString(" and win the " + in.playoffRound)
	case !in.playoffs.Qualified:
		headline.WriteString(" and miss the playoffs")
	default:
		headline.WriteString(fmt.Sprintf(" as the %s seed", ordinalSeed(in.playoffs.Seed)))
	}

	var narrative strings.Builder
	if in.trades > 0 {
		narrative.WriteString(fmt.Sprintf("After %d trade(s) moving team strength by %+.1f Elo, ", in.trades, in.ratingDelta))
	} else {
		narrative.WriteString("With the roster unchanged, ")
	}
	narrative.WriteString(fmt.Sprintf("the %s went %s against a baseline projection of %s. ", in.team.Name, formatRecord(in.modified), formatRecord(in.baseline)))
	narrative.WriteString(in.playoffs.Description + ".")

	var moments []string
	if streak := in.season.LongestWinStreak(); streak > 1 {
		moments = append(moments, fmt.Sprintf("Longest win streak: %d games", streak))
	}
	if g, ok := in.season.BiggestWin(); ok {
		where := "on the road at"
		if g.Home {
			where = "at home against"
		}
		moments = append(moments, fmt.Sprintf("Biggest win: by %d %s %s", g.Margin, where, g.Opponent))
	}
	if conf, place := conferencePlace(in.standings, in.team.Key); place > 0 {
		if in.playoffs.Qualified {
			moments = append(moments, fmt.Sprintf("Clinched the %s seed in the %s", ordinalSeed(in.playoffs.Seed), conf))
		} else {
			moments = append(moments, fmt.Sprintf("Finished %s in the %s", ordinalSeed(place), conf))
		}
	}
	if in.playoffs.EliminatedBy != "" {
		moments = append(moments, fmt.Sprintf("Season ended by %s", in.playoffs.EliminatedBy))
	}
	if in.playoffs.Champion {
		moments = append(moments, "Won the "+in.playoffRound)
	}
	moments = append(moments, fmt.Sprintf("GM score: %d", in.gmScore))

	return models.SeasonSummary{
		Headline:   headline.String(),
		Narrative:  narrative.String(),
		KeyMoments: moments,
	}
}

func conferencePlace(s models.Standings, key string) (string, int) {
	for i, r := range s.Conference1 {
		if r.TeamID == key {
			return s.Conference1Name, i + 1
		}
	}
	for i, r := range s.Conference2 {
		if r.TeamID == key {
			return s.Conference2Name, i + 1
		}
	}
	return "", 0
}

func ordinalSeed(n int) string {
	switch {
	case n%100 >= 11 && n%100 <= 13:
		return fmt.Sprintf("%dth", n)
	case n%10 == 1:
		return fmt.Sprintf("%dst", n)
	case n%10 == 2:
		return fmt.Sprintf("%dnd", n)
	case n%10 == 3:
		return fmt.Sprintf("%drd", n)
	}
	return fmt.Sprintf("%dth", n)
}
