package season

import (
	"github.com/omarshaarawi/gmsim/internal/league"
	"github.com/omarshaarawi/gmsim/internal/models"
	"github.com/omarshaarawi/gmsim/internal/simerr"
)

// CheckStandings verifies the published standings invariants. It never
// repairs anything; a violation is returned as simerr.CodeInvariant.
func CheckStandings(cfg league.Config, s models.Standings) error {
	if !cfg.HasConference(s.Conference1Name) || !cfg.HasConference(s.Conference2Name) || s.Conference1Name == s.Conference2Name {
		return simerr.Invariantf("standings conferences %q/%q do not match %v", s.Conference1Name, s.Conference2Name, cfg.ConferenceNames)
	}
	if total := len(s.Conference1) + len(s.Conference2); total != cfg.ExpectedTeamCount {
		return simerr.Invariantf("standings list %d teams, want %d", total, cfg.ExpectedTeamCount)
	}

	users := 0
	check := func(r models.TeamSeasonRecord) error {
		if r.IsUserTeam {
			users++
		}
		if r.Wins < 0 || r.Losses < 0 || r.Ties < 0 || r.OTLosses < 0 {
			return simerr.Invariantf("team %q has a negative record column", r.TeamID)
		}
		if r.OTLosses > 0 && !cfg.TracksOvertimeLosses() {
			return simerr.Invariantf("team %q has overtime losses in %s", r.TeamID, cfg.Sport)
		}
		if gp := r.GamesPlayed(); gp != cfg.GamesPerSeason {
			return simerr.Invariantf("team %q played %d games, want %d", r.TeamID, gp, cfg.GamesPerSeason)
		}
		return nil
	}
	for _, r := range s.Conference1 {
		if err := check(r); err != nil {
			return err
		}
	}
	for _, r := range s.Conference2 {
		if err := check(r); err != nil {
			return err
		}
	}
	if users != 1 {
		return simerr.Invariantf("standings flag %d user teams, want exactly 1", users)
	}
	return nil
}
