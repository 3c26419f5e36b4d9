// Package league holds the static per-sport season rules used by the
// simulators. A Registry is built once at startup and is read-only after.
package league

import (
	"fmt"
	"sort"
	"strings"

	"github.com/omarshaarawi/gmsim/internal/simerr"
)

type Sport string

const (
	NFL Sport = "nfl"
	NBA Sport = "nba"
	NHL Sport = "nhl"
	MLB Sport = "mlb"
)

// Config describes one league's season and postseason format.
type Config struct {
	Sport                 Sport     `json:"sport"`
	GamesPerSeason        int       `json:"gamesPerSeason"`
	PlayoffTeamsPerLeague int       `json:"playoffTeamsPerLeague"`
	SeriesLength          int       `json:"seriesLength"`
	ConferenceNames       [2]string `json:"conferenceNames"`
	ExpectedTeamCount     int       `json:"expectedTeamCount"`

	// TopSeedByes is the number of seeds per conference that skip the
	// first playoff round. It must fill the bracket to a power of two.
	TopSeedByes int `json:"topSeedByes"`
	// RoundNames names each postseason round, conference rounds first and
	// the league final last.
	RoundNames []string `json:"roundNames"`

	// Game model parameters, Elo scale.
	HomeAdvantage float64 `json:"homeAdvantage"`
	// MaxMargin bounds the simulated winning margin used for differential.
	MaxMargin int `json:"maxMargin"`
	// OvertimeRate is the share of games decided in overtime; non-zero only
	// for leagues that record overtime losses.
	OvertimeRate float64 `json:"overtimeRate,omitempty"`
	// EloPerValue converts one point of net traded asset value into Elo.
	EloPerValue float64 `json:"eloPerValue"`
}

// TracksOvertimeLosses reports whether records carry an otLosses column.
func (c Config) TracksOvertimeLosses() bool {
	return c.OvertimeRate > 0
}

// ConferenceRounds is the number of rounds played inside a conference
// before the league final.
func (c Config) ConferenceRounds() int {
	size := c.PlayoffTeamsPerLeague + c.TopSeedByes
	rounds := 0
	for size > 1 {
		size /= 2
		rounds++
	}
	return rounds
}

// WinsToTakeSeries is the number of wins needed to take a playoff series.
func (c Config) WinsToTakeSeries() int {
	return c.SeriesLength/2 + 1
}

// HasConference reports whether name is one of the league's conferences.
func (c Config) HasConference(name string) bool {
	return name == c.ConferenceNames[0] || name == c.ConferenceNames[1]
}

// Validate checks that the config is complete and internally consistent.
func (c Config) Validate() error {
	var problems []string
	if c.Sport == "" {
		problems = append(problems, "sport is empty")
	}
	if c.GamesPerSeason <= 0 {
		problems = append(problems, "gamesPerSeason must be positive")
	}
	if c.ExpectedTeamCount < 4 || c.ExpectedTeamCount%2 != 0 {
		problems = append(problems, "expectedTeamCount must be even and at least 4")
	}
	if c.PlayoffTeamsPerLeague < 2 || c.PlayoffTeamsPerLeague > c.ExpectedTeamCount/2 {
		problems = append(problems, "playoffTeamsPerLeague must be between 2 and half the league")
	}
	if c.SeriesLength < 1 || c.SeriesLength%2 == 0 {
		problems = append(problems, "seriesLength must be a positive odd number")
	}
	if c.ConferenceNames[0] == "" || c.ConferenceNames[1] == "" || c.ConferenceNames[0] == c.ConferenceNames[1] {
		problems = append(problems, "conferenceNames must be two distinct names")
	}
	size := c.PlayoffTeamsPerLeague + c.TopSeedByes
	if c.TopSeedByes < 0 || c.TopSeedByes >= c.PlayoffTeamsPerLeague || size&(size-1) != 0 {
		problems = append(problems, fmt.Sprintf("topSeedByes %d does not fill a %d-team bracket to a power of two", c.TopSeedByes, c.PlayoffTeamsPerLeague))
	} else if len(c.RoundNames) != c.ConferenceRounds()+1 {
		problems = append(problems, fmt.Sprintf("roundNames has %d entries, want %d", len(c.RoundNames), c.ConferenceRounds()+1))
	}
	if c.MaxMargin < 1 {
		problems = append(problems, "maxMargin must be at least 1")
	}
	if c.OvertimeRate < 0 || c.OvertimeRate >= 1 {
		problems = append(problems, "overtimeRate must be in [0,1)")
	}
	if c.EloPerValue <= 0 {
		problems = append(problems, "eloPerValue must be positive")
	}
	if len(problems) > 0 {
		return simerr.Invariantf("league config %q: %s", c.Sport, strings.Join(problems, "; "))
	}
	return nil
}

func (c Config) clone() Config {
	c.RoundNames = append([]string(nil), c.RoundNames...)
	return c
}

// Registry is an immutable set of league configs keyed by sport.
type Registry struct {
	configs map[Sport]Config
}

// NewRegistry validates every config and builds a registry. Duplicate
// sports are rejected.
func NewRegistry(configs ...Config) (*Registry, error) {
	if len(configs) == 0 {
		return nil, simerr.Invariantf("league registry is empty")
	}
	r := &Registry{configs: make(map[Sport]Config, len(configs))}
	for _, c := range configs {
		if err := c.Validate(); err != nil {
			return nil, err
		}
		if _, dup := r.configs[c.Sport]; dup {
			return nil, simerr.Invariantf("league config %q registered twice", c.Sport)
		}
		r.configs[c.Sport] = c.clone()
	}
	return r, nil
}

// DefaultRegistry returns the registry of the four supported leagues.
func DefaultRegistry() (*Registry, error) {
	return NewRegistry(DefaultConfigs()...)
}

// ConfigFor looks up the config for a sport key, case-insensitively.
func (r *Registry) ConfigFor(sport string) (Config, error) {
	key := Sport(strings.ToLower(strings.TrimSpace(sport)))
	if key == "" {
		return Config{}, simerr.Validationf("sport is required")
	}
	c, ok := r.configs[key]
	if !ok {
		return Config{}, simerr.Newf(simerr.CodeUnknownSport, "unsupported sport %q", sport)
	}
	return c.clone(), nil
}

// Sports lists the registered sports in key order.
func (r *Registry) Sports() []Sport {
	sports := make([]Sport, 0, len(r.configs))
	for s := range r.configs {
		sports = append(sports, s)
	}
	sort.Slice(sports, func(i, j int) bool { return sports[i] < sports[j] })
	return sports
}

// Validate re-checks every config; used by the audit job.
func (r *Registry) Validate() error {
	for _, s := range r.Sports() {
		if err := r.configs[s].Validate(); err != nil {
			return err
		}
	}
	return nil
}
