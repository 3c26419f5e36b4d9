package models

import "github.com/omarshaarawi/gmsim/internal/league"

type TeamStrength struct {
	Key          string  `json:"key"`
	Name         string  `json:"name"`
	Abbreviation string  `json:"abbreviation"`
	Conference   string  `json:"conference"`
	Rating       float64 `json:"rating"`
	Wins         int     `json:"wins"`
	Losses       int     `json:"losses"`
}

type TeamSeasonRecord struct {
	TeamID            string `json:"teamId"`
	Name              string `json:"name"`
	Abbreviation      string `json:"abbreviation"`
	Conference        string `json:"conference"`
	Wins              int    `json:"wins"`
	Losses            int    `json:"losses"`
	Ties              int    `json:"ties,omitempty"`
	OTLosses          int    `json:"otLosses,omitempty"`
	PointDifferential int    `json:"pointDifferential"`
	Seed              int    `json:"seed,omitempty"`
	IsUserTeam        bool   `json:"isUserTeam"`
}

func (r TeamSeasonRecord) GamesPlayed() int {
	return r.Wins + r.Losses + r.Ties + r.OTLosses
}

// WinPercentage counts ties as half a win; overtime losses are losses.
func (r TeamSeasonRecord) WinPercentage() float64 {
	gp := r.GamesPlayed()
	if gp == 0 {
		return 0
	}
	return (float64(r.Wins) + 0.5*float64(r.Ties)) / float64(gp)
}

type Standings struct {
	Conference1     []TeamSeasonRecord `json:"conference1"`
	Conference2     []TeamSeasonRecord `json:"conference2"`
	Conference1Name string             `json:"conference1Name"`
	Conference2Name string             `json:"conference2Name"`
}

// Team returns the record for key across both conferences.
func (s Standings) Team(key string) (TeamSeasonRecord, bool) {
	for _, r := range s.Conference1 {
		if r.TeamID == key {
			return r, true
		}
	}
	for _, r := range s.Conference2 {
		if r.TeamID == key {
			return r, true
		}
	}
	return TeamSeasonRecord{}, false
}

// UserTeam returns the single record flagged as the user's team.
func (s Standings) UserTeam() (TeamSeasonRecord, bool) {
	for _, r := range s.Conference1 {
		if r.IsUserTeam {
			return r, true
		}
	}
	for _, r := range s.Conference2 {
		if r.IsUserTeam {
			return r, true
		}
	}
	return TeamSeasonRecord{}, false
}

type SeriesResult struct {
	HighSeed     string `json:"highSeed"`
	LowSeed      string `json:"lowSeed"`
	HighSeedRank int    `json:"highSeedRank"`
	LowSeedRank  int    `json:"lowSeedRank"`
	HighSeedWins int    `json:"highSeedWins"`
	LowSeedWins  int    `json:"lowSeedWins"`
	Winner       string `json:"winner"`
}

type RoundResult struct {
	Round      int            `json:"round"`
	Name       string         `json:"name"`
	Conference string         `json:"conference,omitempty"`
	Byes       []string       `json:"byes,omitempty"`
	Series     []SeriesResult `json:"series"`
}

type UserTeamResult struct {
	TeamID       string `json:"teamId"`
	Qualified    bool   `json:"qualified"`
	Seed         int    `json:"seed,omitempty"`
	RoundReached int    `json:"roundReached"`
	Champion     bool   `json:"champion"`
	EliminatedBy string `json:"eliminatedBy,omitempty"`
	Description  string `json:"description"`
}

type PlayoffBracket struct {
	Sport          league.Sport   `json:"sport"`
	Rounds         []RoundResult  `json:"rounds"`
	Champion       string         `json:"champion"`
	UserTeamResult UserTeamResult `json:"userTeamResult"`
}
