package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/omarshaarawi/gmsim/internal/league"
	"github.com/omarshaarawi/gmsim/internal/models"
	"github.com/omarshaarawi/gmsim/internal/repository"
	"github.com/omarshaarawi/gmsim/internal/simerr"
)

var _ repository.TradeStore = (*Repository)(nil)

func TestTeamsSnapshotIsCopied(t *testing.T) {
	r := NewRepository()
	teams := []models.TeamStrength{{Key: "chicago-bulls", Rating: 1470}}
	r.SaveTeams(league.NBA, 2026, teams)
	teams[0].Rating = 0

	snap := r.GetTeams(league.NBA, 2026)
	if snap == nil || snap.Teams[0].Rating != 1470 {
		t.Fatalf("snapshot = %+v", snap)
	}
	snap.Teams[0].Rating = 1
	if again := r.GetTeams(league.NBA, 2026); again.Teams[0].Rating != 1470 {
		t.Fatal("caller mutation leaked into repository")
	}
	if r.GetTeams(league.NBA, 2025) != nil {
		t.Fatal("unexpected snapshot for another year")
	}
}

func TestPurgeSnapshots(t *testing.T) {
	r := NewRepository()
	r.SaveTeams(league.NHL, 2026, nil)
	r.snapshots[snapshotKey(league.NHL, 2026)].LastUpdated = time.Now().Add(-48 * time.Hour)
	r.SaveTeams(league.MLB, 2026, nil)

	if n := r.PurgeSnapshots(24 * time.Hour); n != 1 {
		t.Fatalf("purged %d, want 1", n)
	}
	if r.GetTeams(league.NHL, 2026) != nil || r.GetTeams(league.MLB, 2026) == nil {
		t.Fatal("wrong snapshot purged")
	}
}

func TestTrades(t *testing.T) {
	r := NewRepository()
	ctx := context.Background()
	now := time.Now()
	_ = r.SaveTrade(ctx, models.Trade{ID: "b", SessionID: "s", TeamKey: "chicago-bears", CreatedAt: now})
	_ = r.SaveTrade(ctx, models.Trade{ID: "a", SessionID: "s", TeamKey: "chicago-bears", CreatedAt: now.Add(-time.Minute)})
	_ = r.SaveTrade(ctx, models.Trade{ID: "c", SessionID: "s", TeamKey: "chicago-bulls", CreatedAt: now})

	list, _ := r.ListSessionTrades(ctx, "s", "chicago-bears")
	if len(list) != 2 || list[0].ID != "a" || list[1].ID != "b" {
		t.Fatalf("list = %+v", list)
	}
	if _, err := r.GetTrade(ctx, "missing"); !errors.Is(err, simerr.ErrTradeNotFound) {
		t.Fatalf("expected trade not found, got %v", err)
	}
	got, err := r.GetTrade(ctx, "c")
	if err != nil || got.TeamKey != "chicago-bulls" {
		t.Fatalf("GetTrade = %+v, %v", got, err)
	}
}
