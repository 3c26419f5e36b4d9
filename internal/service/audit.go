package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/omarshaarawi/gmsim/internal/league"
	"github.com/omarshaarawi/gmsim/internal/models"
	"github.com/omarshaarawi/gmsim/internal/scoring"
	"github.com/omarshaarawi/gmsim/internal/season"
)

const (
	auditSession     = "gm-audit"
	auditSimulations = 1000
)

type AuditCheck struct {
	Sport  league.Sport
	Name   string
	Passed bool
	Detail string
}

type AuditReport struct {
	RanAt  time.Time
	Checks []AuditCheck
}

func (r AuditReport) Failed() []AuditCheck {
	var out []AuditCheck
	for _, c := range r.Checks {
		if !c.Passed {
			out = append(out, c)
		}
	}
	return out
}

func (r AuditReport) String() string {
	var sb strings.Builder
	failed := r.Failed()
	if len(failed) == 0 {
		sb.WriteString(fmt.Sprintf("✅ *GM engine audit passed* (%d checks)\n", len(r.Checks)))
		return sb.String()
	}
	sb.WriteString(fmt.Sprintf("🚨 *GM engine audit failed* (%d of %d checks)\n\n", len(failed), len(r.Checks)))
	for _, c := range failed {
		sport := string(c.Sport)
		if sport == "" {
			sport = "registry"
		}
		sb.WriteString(fmt.Sprintf("• %s / %s: %s\n", strings.ToUpper(sport), c.Name, c.Detail))
	}
	return sb.String()
}

// Audit re-validates the league registry and runs one smoke season and
// Monte Carlo projection per sport through the full engine.
func (s *GMService) Audit(ctx context.Context) AuditReport {
	report := AuditReport{RanAt: time.Now()}
	add := func(sport league.Sport, name string, err error) {
		c := AuditCheck{Sport: sport, Name: name, Passed: err == nil}
		if err != nil {
			c.Detail = err.Error()
		}
		report.Checks = append(report.Checks, c)
	}

	add("", "registry", s.registry.Validate())

	for _, sport := range s.registry.Sports() {
		cfg, err := s.registry.ConfigFor(string(sport))
		if err != nil {
			add(sport, "config", err)
			continue
		}
		team := auditTeam(sport)
		if team == "" {
			add(sport, "team", fmt.Errorf("no Chicago franchise registered for %s", sport))
			continue
		}

		res, err := s.simulate(ctx, SeasonRequest{
			SessionID: auditSession,
			Sport:     string(sport),
			TeamKey:   team,
			Trades:    []TradeInput{auditTrade()},
		})
		add(sport, "season", err)
		if err == nil {
			add(sport, "standings", season.CheckStandings(cfg, res.Standings))
			add(sport, "score", scoring.Check(res.GMScore, res.ScoreBreakdown))
			add(sport, "playoffs", checkBracket(cfg, res.Playoffs))
		}

		trade := models.Trade{
			ID:       "audit-" + string(sport),
			Sport:    sport,
			TeamKey:  team,
			Given:    auditTrade().Given,
			Received: auditTrade().Received,
		}
		sim, err := s.projector.Run(ctx, trade, auditSimulations, s.random(auditSession))
		if err == nil {
			err = checkProjection(sim, auditSimulations)
		}
		add(sport, "monte_carlo", err)
	}

	failed := len(report.Failed())
	if failed > 0 {
		slog.Error("GM engine audit failed", "failed", failed, "checks", len(report.Checks))
	} else {
		slog.Info("GM engine audit passed", "checks", len(report.Checks))
	}
	return report
}

func auditTeam(sport league.Sport) string {
	var keys []string
	for key, sp := range league.ChicagoTeams {
		if sp == sport {
			keys = append(keys, key)
		}
	}
	if len(keys) == 0 {
		return ""
	}
	sort.Strings(keys)
	return keys[0]
}

// auditTrade clearly favors the user's side.
func auditTrade() TradeInput {
	return TradeInput{
		Given:    []models.Asset{{ID: "audit-given", Name: "Depth Piece", Kind: models.AssetPlayer, Value: 45, Age: 29}},
		Received: []models.Asset{{ID: "audit-received", Name: "Franchise Star", Kind: models.AssetPlayer, Value: 90, Age: 26}},
	}
}

func checkBracket(cfg league.Config, b models.PlayoffBracket) error {
	if b.Champion == "" {
		return fmt.Errorf("bracket has no champion")
	}
	if want := cfg.ConferenceRounds() + 1; len(b.Rounds) != want*2-1 {
		return fmt.Errorf("bracket has %d round results, want %d", len(b.Rounds), want*2-1)
	}
	return nil
}

func checkProjection(r models.SimulationResult, want int) error {
	p := r.Percentiles
	switch {
	case r.SimulationsRun != want:
		return fmt.Errorf("ran %d simulations, want %d", r.SimulationsRun, want)
	case !(p.P10 <= p.P25 && p.P25 <= p.P50 && p.P50 <= p.P75 && p.P75 <= p.P90):
		return fmt.Errorf("percentiles not ordered: %+v", p)
	case r.RiskAnalysis.SuccessProbability <= r.RiskAnalysis.BustProbability:
		return fmt.Errorf("favorable trade projected success %.4f <= bust %.4f", r.RiskAnalysis.SuccessProbability, r.RiskAnalysis.BustProbability)
	}
	return nil
}
