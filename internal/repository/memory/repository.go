package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/omarshaarawi/gmsim/internal/league"
	"github.com/omarshaarawi/gmsim/internal/models"
	"github.com/omarshaarawi/gmsim/internal/simerr"
)

type TeamSnapshot struct {
	Teams       []models.TeamStrength
	LastUpdated time.Time
}

type Repository struct {
	snapshots map[string]*TeamSnapshot
	trades    map[string]models.Trade
	mu        sync.RWMutex
}

func NewRepository() *Repository {
	return &Repository{
		snapshots: make(map[string]*TeamSnapshot),
		trades:    make(map[string]models.Trade),
	}
}

func snapshotKey(sport league.Sport, year int) string {
	return fmt.Sprintf("%s/%d", sport, year)
}

func (r *Repository) SaveTeams(sport league.Sport, year int, teams []models.TeamStrength) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snapshots[snapshotKey(sport, year)] = &TeamSnapshot{
		Teams:       append([]models.TeamStrength(nil), teams...),
		LastUpdated: time.Now(),
	}
}

// GetTeams returns a copy of the cached snapshot, or nil.
func (r *Repository) GetTeams(sport league.Sport, year int) *TeamSnapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.snapshots[snapshotKey(sport, year)]
	if !ok {
		return nil
	}
	return &TeamSnapshot{Teams: append([]models.TeamStrength(nil), s.Teams...), LastUpdated: s.LastUpdated}
}

// PurgeSnapshots drops snapshots older than maxAge and reports how many.
func (r *Repository) PurgeSnapshots(maxAge time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	purged := 0
	for k, s := range r.snapshots {
		if time.Since(s.LastUpdated) > maxAge {
			delete(r.snapshots, k)
			purged++
		}
	}
	return purged
}

func (r *Repository) SaveTrade(_ context.Context, t models.Trade) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.trades[t.ID] = t.Clone()
	return nil
}

func (r *Repository) GetTrade(_ context.Context, id string) (models.Trade, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.trades[id]
	if !ok {
		return models.Trade{}, simerr.Newf(simerr.CodeTradeNotFound, "trade %q not found", id)
	}
	return t.Clone(), nil
}

// ListSessionTrades returns the session's trades for teamKey, oldest first.
func (r *Repository) ListSessionTrades(_ context.Context, sessionID, teamKey string) ([]models.Trade, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []models.Trade
	for _, t := range r.trades {
		if t.SessionID == sessionID && t.TeamKey == teamKey {
			out = append(out, t.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}
