// Package strength supplies per-team ratings for a league season.
package strength

import (
	"context"
	"log/slog"
	"time"

	"github.com/omarshaarawi/gmsim/internal/league"
	"github.com/omarshaarawi/gmsim/internal/models"
	"github.com/omarshaarawi/gmsim/internal/repository/memory"
	"github.com/omarshaarawi/gmsim/internal/simerr"
)

// Provider returns every team in a league for a season. Implementations
// return simerr.CodeProviderUnavailable when their source cannot be reached.
type Provider interface {
	LeagueTeams(ctx context.Context, sport league.Sport, seasonYear int) ([]models.TeamStrength, error)
}

// Static serves the bundled ratings for every season.
type Static struct{}

func (Static) LeagueTeams(ctx context.Context, sport league.Sport, _ int) ([]models.TeamStrength, error) {
	if err := ctx.Err(); err != nil {
		return nil, simerr.FromContext(err)
	}
	teams, ok := bundledTeams[sport]
	if !ok {
		return nil, simerr.Newf(simerr.CodeUnknownSport, "no bundled teams for %q", sport)
	}
	return append([]models.TeamStrength(nil), teams...), nil
}

// Cached keeps provider responses in the memory repository for TTL.
type Cached struct {
	next Provider
	repo *memory.Repository
	ttl  time.Duration
}

func NewCached(next Provider, repo *memory.Repository, ttl time.Duration) *Cached {
	return &Cached{next: next, repo: repo, ttl: ttl}
}

func (c *Cached) LeagueTeams(ctx context.Context, sport league.Sport, seasonYear int) ([]models.TeamStrength, error) {
	snap := c.repo.GetTeams(sport, seasonYear)
	if snap != nil && time.Since(snap.LastUpdated) <= c.ttl {
		return snap.Teams, nil
	}

	teams, err := c.next.LeagueTeams(ctx, sport, seasonYear)
	if err != nil {
		return nil, err
	}
	c.repo.SaveTeams(sport, seasonYear, teams)
	slog.Info("Cached league teams", "sport", sport, "season", seasonYear, "teams", len(teams))
	return teams, nil
}

// Purge drops cached snapshots older than the TTL.
func (c *Cached) Purge() int {
	return c.repo.PurgeSnapshots(c.ttl)
}
