// Package montecarlo projects the distribution of a trade's grade by
// repeatedly perturbing the traded assets.
package montecarlo

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"math/rand/v2"
	"runtime"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"

	"github.com/omarshaarawi/gmsim/internal/grading"
	"github.com/omarshaarawi/gmsim/internal/models"
	"github.com/omarshaarawi/gmsim/internal/random"
	"github.com/omarshaarawi/gmsim/internal/simerr"
)

const (
	streamName = "montecarlo"
	batchSize  = 100
)

type Config struct {
	MaxSimulations   int
	MinSimulations   int
	Budget           time.Duration
	Workers          int
	BustThreshold    float64
	SuccessThreshold float64
}

func DefaultConfig() Config {
	return Config{
		MaxSimulations:   10000,
		MinSimulations:   100,
		Budget:           20 * time.Second,
		BustThreshold:    40,
		SuccessThreshold: 70,
	}
}

type Projector struct {
	cfg Config
}

func NewProjector(cfg Config) *Projector {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.GOMAXPROCS(0)
	}
	return &Projector{cfg: cfg}
}

// Run executes up to simulations trials of trade. Trial i always draws from
// src.Stream("montecarlo", i), so results do not depend on the worker
// count or scheduling.
//
// Trials run in batches. When the trial budget or the caller's deadline
// runs out, the completed leading batches are reported with a reduced
// SimulationsRun, provided at least MinSimulations finished; otherwise a
// timeout is returned. A cancelled caller always gets simerr.ErrCancelled.
func (p *Projector) Run(ctx context.Context, trade models.Trade, simulations int, src random.Source) (models.SimulationResult, error) {
	if simulations < 1 {
		return models.SimulationResult{}, simerr.Validationf("simulations must be positive, got %d", simulations)
	}
	if err := grading.Validate(trade); err != nil {
		return models.SimulationResult{}, err
	}
	requested := simulations
	if simulations > p.cfg.MaxSimulations {
		slog.Info("Capping Monte Carlo trials", "requested", simulations, "max", p.cfg.MaxSimulations)
		simulations = p.cfg.MaxSimulations
	}

	runCtx := ctx
	if p.cfg.Budget > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, p.cfg.Budget)
		defer cancel()
	}

	outcomes := make([]float64, simulations)
	batches := (simulations + batchSize - 1) / batchSize
	done := make([]bool, batches)

	g := new(errgroup.Group)
	g.SetLimit(p.cfg.Workers)
	for b := 0; b < batches; b++ {
		if runCtx.Err() != nil {
			break
		}
		g.Go(func() error {
			if runCtx.Err() != nil {
				return nil
			}
			lo, hi := b*batchSize, min((b+1)*batchSize, simulations)
			for i := lo; i < hi; i++ {
				outcomes[i] = Trial(trade, src.Stream(streamName, i))
			}
			done[b] = true
			return nil
		})
	}
	_ = g.Wait()

	if errors.Is(ctx.Err(), context.Canceled) {
		return models.SimulationResult{}, simerr.FromContext(ctx.Err())
	}

	run := 0
	for b := 0; b < batches && done[b]; b++ {
		run = min((b+1)*batchSize, simulations)
	}
	if run < simulations {
		if run < p.cfg.MinSimulations {
			return models.SimulationResult{}, simerr.Newf(simerr.CodeTimeout, "only %d of %d Monte Carlo trials finished in time", run, simulations)
		}
		slog.Warn("Monte Carlo run degraded", "requested", requested, "run", run)
	}

	res := Summarize(outcomes[:run], p.cfg.BustThreshold, p.cfg.SuccessThreshold)
	res.TradeID = trade.ID
	res.SimulationsRequested = requested
	return res, nil
}

// Perturbation spread per asset kind. Prospects and picks carry more
// uncertainty than established players.
var (
	performanceSigma = map[models.AssetKind]float64{
		models.AssetPlayer:    0.15,
		models.AssetProspect:  0.35,
		models.AssetDraftPick: 0.45,
	}
	injuryProbability = map[models.AssetKind]float64{
		models.AssetPlayer:    0.12,
		models.AssetProspect:  0.08,
		models.AssetDraftPick: 0,
	}
)

const (
	marketSigma    = 0.06
	veteranAge     = 31
	veteranInjury  = 0.08
	minAvailable   = 0.4
	availableRange = 0.5
)

// Trial draws one perturbed version of trade and returns its grade on the
// 0-100 scale. Every asset consumes exactly four draws.
func Trial(trade models.Trade, rng *rand.Rand) float64 {
	given := perturb(trade.Given, rng)
	received := perturb(trade.Received, rng)
	return grading.ToGrade(grading.Score(trade.Sport, given, received))
}

func perturb(assets []models.Asset, rng *rand.Rand) []models.Asset {
	out := make([]models.Asset, len(assets))
	for i, a := range assets {
		perf := rng.NormFloat64()
		market := rng.NormFloat64()
		hurt := rng.Float64()
		share := rng.Float64()

		sigma := performanceSigma[a.Kind]
		v := a.Value * math.Exp(sigma*perf-sigma*sigma/2)

		p := injuryProbability[a.Kind]
		if a.Kind == models.AssetPlayer && a.Age >= veteranAge {
			p += veteranInjury
		}
		if hurt < p {
			v *= minAvailable + availableRange*share
		}

		v *= 1 + marketSigma*market
		a.Value = math.Max(0, math.Min(100, v))
		out[i] = a
	}
	return out
}

// Summarize computes the distribution statistics for a set of outcomes.
// Percentiles are empirical (nearest-rank) quantiles and the standard
// deviation uses the n-1 denominator.
func Summarize(outcomes []float64, bust, success float64) models.SimulationResult {
	n := len(outcomes)
	res := models.SimulationResult{SimulationsRun: n}
	if n == 0 {
		return res
	}
	sorted := append([]float64(nil), outcomes...)
	sort.Float64s(sorted)

	var busts, hits int
	for _, v := range sorted {
		if v < bust {
			busts++
		}
		if v >= success {
			hits++
		}
	}

	std := 0.0
	if n > 1 {
		std = stat.StdDev(sorted, nil)
	}
	quantile := func(p float64) float64 {
		return round2(stat.Quantile(p, stat.Empirical, sorted, nil))
	}

	res.MeanOutcome = round2(stat.Mean(sorted, nil))
	res.MedianOutcome = quantile(0.5)
	res.StdDeviation = round2(std)
	res.Percentiles = models.Percentiles{
		P10: quantile(0.10),
		P25: quantile(0.25),
		P50: quantile(0.50),
		P75: quantile(0.75),
		P90: quantile(0.90),
	}
	res.RiskAnalysis = models.RiskAnalysis{
		BustProbability:    round4(float64(busts) / float64(n)),
		SuccessProbability: round4(float64(hits) / float64(n)),
	}
	return res
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round4(v float64) float64 { return math.Round(v*10000) / 10000 }
