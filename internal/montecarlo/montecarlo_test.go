package montecarlo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/omarshaarawi/gmsim/internal/league"
	"github.com/omarshaarawi/gmsim/internal/models"
	"github.com/omarshaarawi/gmsim/internal/random"
	"github.com/omarshaarawi/gmsim/internal/simerr"
)

func evenTrade() models.Trade {
	return models.Trade{
		ID:       "even",
		Sport:    league.NBA,
		Given:    []models.Asset{{ID: "g", Kind: models.AssetPlayer, Position: "SF", Value: 65, Age: 26}},
		Received: []models.Asset{{ID: "r", Kind: models.AssetPlayer, Position: "SF", Value: 64, Age: 27}},
	}
}

func favoredTrade() models.Trade {
	return models.Trade{
		ID:    "favored",
		Sport: league.NFL,
		Given: []models.Asset{{ID: "pick", Kind: models.AssetDraftPick, Value: 25}},
		Received: []models.Asset{
			{ID: "qb", Kind: models.AssetPlayer, Position: "QB", Value: 85, Age: 27},
			{ID: "wr", Kind: models.AssetPlayer, Position: "WR", Value: 60, Age: 25},
		},
	}
}

func TestRunFullCount(t *testing.T) {
	p := NewProjector(DefaultConfig())
	res, err := p.Run(context.Background(), evenTrade(), 1000, random.SessionSource{SessionID: "s1"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.SimulationsRun != 1000 || res.SimulationsRequested != 1000 {
		t.Fatalf("run %d of %d, want 1000", res.SimulationsRun, res.SimulationsRequested)
	}
	pc := res.Percentiles
	if !(pc.P10 <= pc.P25 && pc.P25 <= pc.P50 && pc.P50 <= pc.P75 && pc.P75 <= pc.P90) {
		t.Fatalf("percentiles not ordered: %+v", pc)
	}
	if res.MedianOutcome != pc.P50 {
		t.Fatalf("median %v != p50 %v", res.MedianOutcome, pc.P50)
	}
	if res.StdDeviation <= 0 {
		t.Fatalf("std deviation = %v", res.StdDeviation)
	}
	if res.MeanOutcome < 30 || res.MeanOutcome > 70 {
		t.Fatalf("even trade mean %v far from the middle", res.MeanOutcome)
	}
}

func TestRunReproducibleAcrossWorkerCounts(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Workers = 1
	a, err := NewProjector(cfg).Run(context.Background(), evenTrade(), 750, random.SessionSource{SessionID: "same"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	cfg.Workers = 8
	b, err := NewProjector(cfg).Run(context.Background(), evenTrade(), 750, random.SessionSource{SessionID: "same"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if a != b {
		t.Fatalf("same session gave different results:\n%+v\n%+v", a, b)
	}

	c, _ := NewProjector(cfg).Run(context.Background(), evenTrade(), 750, random.SessionSource{SessionID: "other"})
	if c.Percentiles == a.Percentiles && c.MeanOutcome == a.MeanOutcome {
		t.Fatal("different sessions gave identical distributions")
	}
}

func TestFavoredTradeSucceedsMoreThanBusts(t *testing.T) {
	res, err := NewProjector(DefaultConfig()).Run(context.Background(), favoredTrade(), 1000, random.Fixed(7))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.RiskAnalysis.SuccessProbability <= res.RiskAnalysis.BustProbability {
		t.Fatalf("success %v <= bust %v", res.RiskAnalysis.SuccessProbability, res.RiskAnalysis.BustProbability)
	}
}

func TestRunCapsSimulations(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxSimulations = 300
	res, err := NewProjector(cfg).Run(context.Background(), evenTrade(), 5000, random.Fixed(1))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.SimulationsRun != 300 || res.SimulationsRequested != 5000 {
		t.Fatalf("run %d requested %d", res.SimulationsRun, res.SimulationsRequested)
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewProjector(DefaultConfig()).Run(ctx, evenTrade(), 1000, random.Fixed(1))
	if !errors.Is(err, simerr.ErrCancelled) {
		t.Fatalf("expected cancelled, got %v", err)
	}
}

func TestRunExpiredDeadlineTimesOut(t *testing.T) {
	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()
	_, err := NewProjector(DefaultConfig()).Run(ctx, evenTrade(), 1000, random.Fixed(1))
	if !errors.Is(err, simerr.ErrTimeout) {
		t.Fatalf("expected timeout, got %v", err)
	}
}

func TestRunValidation(t *testing.T) {
	p := NewProjector(DefaultConfig())
	if _, err := p.Run(context.Background(), evenTrade(), 0, random.Fixed(1)); !errors.Is(err, simerr.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, err := p.Run(context.Background(), models.Trade{Sport: league.NBA}, 10, random.Fixed(1)); !errors.Is(err, simerr.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSummarize(t *testing.T) {
	outcomes := []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100}
	res := Summarize(outcomes, 40, 70)
	if res.MeanOutcome != 55 {
		t.Fatalf("mean = %v", res.MeanOutcome)
	}
	if res.Percentiles.P10 != 10 || res.Percentiles.P25 != 30 || res.Percentiles.P50 != 50 || res.Percentiles.P90 != 90 {
		t.Fatalf("percentiles = %+v", res.Percentiles)
	}
	// sample variance of 10..100 step 10 is 916.67
	if res.StdDeviation != 30.28 {
		t.Fatalf("std = %v, want 30.28", res.StdDeviation)
	}
	if res.RiskAnalysis.BustProbability != 0.3 || res.RiskAnalysis.SuccessProbability != 0.4 {
		t.Fatalf("risk = %+v", res.RiskAnalysis)
	}

	shuffled := Summarize([]float64{70, 10, 100, 40, 90, 20, 60, 30, 80, 50}, 40, 70)
	if shuffled.Percentiles != res.Percentiles || shuffled.MedianOutcome != 50 || shuffled.Percentiles.P75 != 80 {
		t.Fatalf("unsorted input percentiles = %+v, median %v", shuffled.Percentiles, shuffled.MedianOutcome)
	}

	one := Summarize([]float64{42}, 40, 70)
	if one.StdDeviation != 0 || one.Percentiles.P10 != 42 || one.Percentiles.P90 != 42 {
		t.Fatalf("single outcome summary = %+v", one)
	}
}
