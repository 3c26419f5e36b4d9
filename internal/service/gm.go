// Package service runs GM-mode requests end to end: it loads league teams,
// applies the user's trades, simulates the season and postseason twice and
// scores the result.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/omarshaarawi/gmsim/internal/api/strength"
	"github.com/omarshaarawi/gmsim/internal/events"
	"github.com/omarshaarawi/gmsim/internal/grading"
	"github.com/omarshaarawi/gmsim/internal/league"
	"github.com/omarshaarawi/gmsim/internal/models"
	"github.com/omarshaarawi/gmsim/internal/montecarlo"
	"github.com/omarshaarawi/gmsim/internal/playoff"
	"github.com/omarshaarawi/gmsim/internal/random"
	"github.com/omarshaarawi/gmsim/internal/repository"
	"github.com/omarshaarawi/gmsim/internal/scenario"
	"github.com/omarshaarawi/gmsim/internal/scoring"
	"github.com/omarshaarawi/gmsim/internal/season"
	"github.com/omarshaarawi/gmsim/internal/simerr"
)

const (
	minSeasonYear = 1900
	maxSeasonYear = 2100
)

type GMService struct {
	registry           *league.Registry
	provider           strength.Provider
	trades             repository.TradeStore
	projector          *montecarlo.Projector
	random             random.Factory
	events             events.Publisher
	defaultSimulations int
}

func NewGMService(registry *league.Registry, provider strength.Provider, trades repository.TradeStore, projector *montecarlo.Projector, defaultSimulations int) *GMService {
	return &GMService{
		registry:           registry,
		provider:           provider,
		trades:             trades,
		projector:          projector,
		random:             random.SessionFactory,
		events:             events.Nop{},
		defaultSimulations: defaultSimulations,
	}
}

// WithRandom replaces the seed strategy.
func (s *GMService) WithRandom(f random.Factory) *GMService {
	s.random = f
	return s
}

func (s *GMService) WithPublisher(p events.Publisher) *GMService {
	s.events = p
	return s
}

// TradeInput is a trade proposed inline with a season request.
type TradeInput struct {
	PartnerKey string         `json:"partnerKey,omitempty"`
	Given      []models.Asset `json:"given"`
	Received   []models.Asset `json:"received"`
}

type SeasonRequest struct {
	SessionID  string       `json:"sessionId"`
	Sport      string       `json:"sport"`
	TeamKey    string       `json:"teamKey"`
	SeasonYear int          `json:"seasonYear"`
	Trades     []TradeInput `json:"trades,omitempty"`
}

type TradeRequest struct {
	SessionID  string         `json:"sessionId"`
	Sport      string         `json:"sport"`
	TeamKey    string         `json:"teamKey"`
	PartnerKey string         `json:"partnerKey,omitempty"`
	Given      []models.Asset `json:"given"`
	Received   []models.Asset `json:"received"`
}

type TradeReceipt struct {
	Trade models.Trade   `json:"trade"`
	Grade grading.Result `json:"grade"`
}

type ScenarioRequest struct {
	TradeID      string          `json:"trade_id"`
	ScenarioType string          `json:"scenario_type"`
	Parameters   scenario.Params `json:"parameters"`
}

type MonteCarloRequest struct {
	TradeID     string `json:"trade_id"`
	Simulations int    `json:"simulations"`
	// SessionID seeds the trials; the trade's own session is used when empty.
	SessionID string `json:"sessionId,omitempty"`
}

// SimulateSeason plays the requested season with and without the session's
// trades and scores the difference.
func (s *GMService) SimulateSeason(ctx context.Context, req SeasonRequest) (models.SeasonResult, error) {
	start := time.Now()
	res, err := s.simulate(ctx, req)
	if err != nil {
		slog.Error("Season simulation failed", "session", req.SessionID, "sport", req.Sport, "team", req.TeamKey, "error", err)
		return models.SeasonResult{}, err
	}
	slog.Info("Season simulated",
		"session", res.SessionID,
		"sport", res.Sport,
		"team", res.TeamKey,
		"trades", res.TradesApplied,
		"gmScore", res.GMScore,
		"duration", time.Since(start))

	s.events.Publish(events.Event{
		Type:      events.TypeSeasonSimulated,
		SessionID: res.SessionID,
		Payload: map[string]any{
			"sport":          res.Sport,
			"teamKey":        res.TeamKey,
			"seasonYear":     res.SeasonYear,
			"baseline":       res.Baseline,
			"modified":       res.Modified,
			"gmScore":        res.GMScore,
			"scoreBreakdown": res.ScoreBreakdown,
			"userTeamResult": res.Playoffs.UserTeamResult,
			"seasonSummary":  res.SeasonSummary,
		},
	})
	return res, nil
}

type run struct {
	season    *season.Result
	standings models.Standings
	bracket   models.PlayoffBracket
}

func (s *GMService) simulate(ctx context.Context, req SeasonRequest) (models.SeasonResult, error) {
	if strings.TrimSpace(req.SessionID) == "" {
		return models.SeasonResult{}, simerr.Validationf("sessionId is required")
	}
	if strings.TrimSpace(req.TeamKey) == "" {
		return models.SeasonResult{}, simerr.Validationf("teamKey is required")
	}
	cfg, err := s.registry.ConfigFor(req.Sport)
	if err != nil {
		return models.SeasonResult{}, err
	}
	year, err := seasonYear(req.SeasonYear)
	if err != nil {
		return models.SeasonResult{}, err
	}

	teams, err := s.leagueTeams(ctx, cfg, year)
	if err != nil {
		return models.SeasonResult{}, err
	}
	user, err := strength.ResolveTeam(teams, req.TeamKey)
	if err != nil {
		return models.SeasonResult{}, err
	}
	userKey := teams[user].Key

	trades, err := s.sessionTrades(ctx, cfg, req, userKey)
	if err != nil {
		return models.SeasonResult{}, err
	}
	impact := grading.RatingImpact(cfg, trades...)

	keys := make([]string, len(teams))
	baseRatings := make([]float64, len(teams))
	for i, t := range teams {
		keys[i] = t.Key
		baseRatings[i] = t.Rating
	}
	modRatings := append([]float64(nil), baseRatings...)
	modRatings[user] += impact

	src := s.random(req.SessionID)
	sched, err := season.GenerateSchedule(cfg, keys, src.Stream("schedule", year))
	if err != nil {
		return models.SeasonResult{}, err
	}

	// Both runs draw from identical streams so only the user's rating
	// change separates them.
	var baseline, modified run
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		baseline, err = playSeason(gctx, cfg, sched, teams, baseRatings, user, src, year)
		return err
	})
	g.Go(func() error {
		var err error
		modified, err = playSeason(gctx, cfg, sched, teams, modRatings, user, src, year)
		return err
	})
	if err := g.Wait(); err != nil {
		return models.SeasonResult{}, err
	}

	quality := grading.MidScore
	if len(trades) > 0 {
		graded, err := grading.Grade(aggregate(cfg.Sport, userKey, trades))
		if err != nil {
			return models.SeasonResult{}, err
		}
		quality = graded.TradeQualityScore
	}

	gm, breakdown, err := scoring.Compose(scoring.Input{
		TradeQualityScore: quality,
		GamesPerSeason:    cfg.GamesPerSeason,
		Baseline:          baseline.season.UserRecord(),
		Modified:          modified.season.UserRecord(),
		BaselinePlayoffs:  baseline.bracket.UserTeamResult,
		ModifiedPlayoffs:  modified.bracket.UserTeamResult,
	})
	if err != nil {
		return models.SeasonResult{}, err
	}

	res := models.SeasonResult{
		SessionID:        req.SessionID,
		Sport:            string(cfg.Sport),
		TeamKey:          userKey,
		SeasonYear:       year,
		TradesApplied:    len(trades),
		RatingDelta:      impact,
		Baseline:         baseline.season.UserRecord(),
		Modified:         modified.season.UserRecord(),
		GMScore:          gm,
		ScoreBreakdown:   breakdown,
		Standings:        modified.standings,
		Playoffs:         modified.bracket,
		BaselinePlayoffs: baseline.bracket.UserTeamResult,
	}
	res.SeasonSummary = buildSummary(summaryInput{
		team:         teams[user],
		trades:       len(trades),
		ratingDelta:  impact,
		baseline:     res.Baseline,
		modified:     res.Modified,
		standings:    res.Standings,
		playoffs:     res.Playoffs.UserTeamResult,
		season:       modified.season,
		gmScore:      gm,
		playoffRound: cfg.RoundNames[len(cfg.RoundNames)-1],
	})
	return res, nil
}

func playSeason(ctx context.Context, cfg league.Config, sched season.Schedule, teams []models.TeamStrength, ratings []float64, user int, src random.Source, year int) (run, error) {
	res, err := season.Simulate(ctx, cfg, sched, teams, ratings, user, src.Stream("season", year))
	if err != nil {
		return run{}, err
	}
	standings, err := res.Standings()
	if err != nil {
		return run{}, err
	}
	if err := season.CheckStandings(cfg, standings); err != nil {
		return run{}, err
	}
	if err := ctx.Err(); err != nil {
		return run{}, simerr.FromContext(err)
	}

	byKey := make(map[string]float64, len(teams))
	for i, t := range teams {
		byKey[t.Key] = ratings[i]
	}
	bracket, err := playoff.Simulate(ctx, cfg, standings, byKey, src.Stream("playoffs", year))
	if err != nil {
		return run{}, err
	}
	return run{season: res, standings: standings, bracket: bracket}, nil
}

// leagueTeams loads the league and rejects provider data that does not
// match the league's shape.
func (s *GMService) leagueTeams(ctx context.Context, cfg league.Config, year int) ([]models.TeamStrength, error) {
	teams, err := s.provider.LeagueTeams(ctx, cfg.Sport, year)
	if err != nil {
		return nil, err
	}
	if len(teams) != cfg.ExpectedTeamCount {
		return nil, simerr.Newf(simerr.CodeProviderUnavailable, "provider returned %d %s teams, expected %d", len(teams), cfg.Sport, cfg.ExpectedTeamCount)
	}
	seen := make(map[string]bool, len(teams))
	for _, t := range teams {
		if !cfg.HasConference(t.Conference) {
			return nil, simerr.Newf(simerr.CodeProviderUnavailable, "provider team %s has unknown conference %q", t.Key, t.Conference)
		}
		if seen[t.Key] {
			return nil, simerr.Newf(simerr.CodeProviderUnavailable, "provider returned team %s twice", t.Key)
		}
		seen[t.Key] = true
	}
	return teams, nil
}

func (s *GMService) sessionTrades(ctx context.Context, cfg league.Config, req SeasonRequest, userKey string) ([]models.Trade, error) {
	stored, err := s.trades.ListSessionTrades(ctx, req.SessionID, userKey)
	if err != nil {
		return nil, fmt.Errorf("listing session trades: %w", err)
	}
	var trades []models.Trade
	for _, t := range stored {
		if t.Sport == cfg.Sport {
			trades = append(trades, t)
		}
	}
	for i, in := range req.Trades {
		t := models.Trade{
			ID:         fmt.Sprintf("inline-%d", i+1),
			SessionID:  req.SessionID,
			Sport:      cfg.Sport,
			TeamKey:    userKey,
			PartnerKey: in.PartnerKey,
			Given:      in.Given,
			Received:   in.Received,
		}
		if err := grading.Validate(t); err != nil {
			return nil, err
		}
		trades = append(trades, t)
	}
	return trades, nil
}

// aggregate folds several trades into one exchange so they are graded as
// a package.
func aggregate(sport league.Sport, teamKey string, trades []models.Trade) models.Trade {
	out := models.Trade{ID: "aggregate", Sport: sport, TeamKey: teamKey}
	for _, t := range trades {
		out.Given = append(out.Given, t.Given...)
		out.Received = append(out.Received, t.Received...)
	}
	return out
}

func seasonYear(year int) (int, error) {
	if year == 0 {
		return time.Now().Year(), nil
	}
	if year < minSeasonYear || year > maxSeasonYear {
		return 0, simerr.Validationf("seasonYear %d out of range [%d,%d]", year, minSeasonYear, maxSeasonYear)
	}
	return year, nil
}

// SubmitTrade validates, grades and stores a trade for later season runs.
func (s *GMService) SubmitTrade(ctx context.Context, req TradeRequest) (TradeReceipt, error) {
	if strings.TrimSpace(req.SessionID) == "" {
		return TradeReceipt{}, simerr.Validationf("sessionId is required")
	}
	cfg, err := s.registry.ConfigFor(req.Sport)
	if err != nil {
		return TradeReceipt{}, err
	}
	teams, err := s.leagueTeams(ctx, cfg, time.Now().Year())
	if err != nil {
		return TradeReceipt{}, err
	}
	user, err := strength.ResolveTeam(teams, req.TeamKey)
	if err != nil {
		return TradeReceipt{}, err
	}
	partner := ""
	if req.PartnerKey != "" {
		p, err := strength.ResolveTeam(teams, req.PartnerKey)
		if err != nil {
			return TradeReceipt{}, err
		}
		if p == user {
			return TradeReceipt{}, simerr.Validationf("cannot trade with yourself")
		}
		partner = teams[p].Key
	}

	t := models.Trade{
		ID:         uuid.New().String(),
		SessionID:  req.SessionID,
		Sport:      cfg.Sport,
		TeamKey:    teams[user].Key,
		PartnerKey: partner,
		Given:      withIDs(req.Given),
		Received:   withIDs(req.Received),
		CreatedAt:  time.Now().UTC(),
	}
	graded, err := grading.Grade(t)
	if err != nil {
		return TradeReceipt{}, err
	}
	if err := s.trades.SaveTrade(ctx, t); err != nil {
		return TradeReceipt{}, fmt.Errorf("saving trade: %w", err)
	}
	slog.Info("Trade submitted", "id", t.ID, "session", t.SessionID, "team", t.TeamKey, "score", graded.TradeQualityScore)
	return TradeReceipt{Trade: t, Grade: graded}, nil
}

func withIDs(assets []models.Asset) []models.Asset {
	out := append([]models.Asset(nil), assets...)
	for i := range out {
		if out[i].ID == "" {
			out[i].ID = uuid.New().String()
		}
	}
	return out
}

func (s *GMService) GetTrade(ctx context.Context, id string) (models.Trade, error) {
	if strings.TrimSpace(id) == "" {
		return models.Trade{}, simerr.Validationf("trade_id is required")
	}
	return s.trades.GetTrade(ctx, id)
}

// RunScenario re-grades a stored trade under a what-if change.
func (s *GMService) RunScenario(ctx context.Context, req ScenarioRequest) (models.ScenarioResult, error) {
	t, err := s.GetTrade(ctx, req.TradeID)
	if err != nil {
		return models.ScenarioResult{}, err
	}
	cfg, err := s.registry.ConfigFor(string(t.Sport))
	if err != nil {
		return models.ScenarioResult{}, err
	}
	res, err := scenario.Run(cfg, t, scenario.Type(req.ScenarioType), req.Parameters)
	if err != nil {
		return models.ScenarioResult{}, err
	}
	slog.Info("Scenario evaluated", "trade", t.ID, "type", req.ScenarioType, "delta", res.GradeDelta)
	return res, nil
}

// RunMonteCarlo projects the outcome distribution of a stored trade.
func (s *GMService) RunMonteCarlo(ctx context.Context, req MonteCarloRequest) (models.SimulationResult, error) {
	t, err := s.GetTrade(ctx, req.TradeID)
	if err != nil {
		return models.SimulationResult{}, err
	}
	n := req.Simulations
	if n == 0 {
		n = s.defaultSimulations
	}
	session := req.SessionID
	if session == "" {
		session = t.SessionID
	}

	res, err := s.projector.Run(ctx, t, n, s.random(session))
	if err != nil {
		slog.Error("Monte Carlo projection failed", "trade", t.ID, "simulations", n, "error", err)
		return models.SimulationResult{}, err
	}
	slog.Info("Monte Carlo projection", "trade", t.ID, "run", res.SimulationsRun, "mean", res.MeanOutcome)

	s.events.Publish(events.Event{
		Type:      events.TypeTradeProjected,
		SessionID: t.SessionID,
		Payload:   res,
	})
	return res, nil
}

func (s *GMService) LeagueConfigs() []league.Config {
	sports := s.registry.Sports()
	out := make([]league.Config, 0, len(sports))
	for _, sp := range sports {
		cfg, err := s.registry.ConfigFor(string(sp))
		if err != nil {
			continue
		}
		out = append(out, cfg)
	}
	return out
}

func (s *GMService) LeagueConfig(sport string) (league.Config, error) {
	return s.registry.ConfigFor(sport)
}
