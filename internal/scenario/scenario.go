// Package scenario re-grades a trade after perturbing one player's value.
package scenario

import (
	"fmt"
	"math"

	"github.com/omarshaarawi/gmsim/internal/grading"
	"github.com/omarshaarawi/gmsim/internal/league"
	"github.com/omarshaarawi/gmsim/internal/models"
	"github.com/omarshaarawi/gmsim/internal/simerr"
)

type Type string

const (
	PlayerImprovement Type = "player_improvement"
	PlayerDecline     Type = "player_decline"
	InjuryImpact      Type = "injury_impact"
	AgeProgression    Type = "age_progression"
)

const (
	maxYears       = 10
	defaultYears   = 1
	maxAssetValue  = 100
	minChange      = -100
	maxImprovement = 500
)

type Params struct {
	ChangePercent float64 `json:"change_percent"`
	Years         int     `json:"years,omitempty"`
	PlayerID      string  `json:"player_id,omitempty"`
}

// Run applies the scenario to a copy of trade and re-grades it. Grades are
// on the 0-100 scale.
func Run(cfg league.Config, trade models.Trade, typ Type, p Params) (models.ScenarioResult, error) {
	if err := validate(typ, p); err != nil {
		return models.ScenarioResult{}, err
	}

	orig, err := grading.Grade(trade)
	if err != nil {
		return models.ScenarioResult{}, err
	}

	side, idx, err := target(trade, p.PlayerID)
	if err != nil {
		return models.ScenarioResult{}, err
	}
	modified := trade.Clone()
	assets := modified.Received
	if side == "given" {
		assets = modified.Given
	}
	asset := &assets[idx]
	before := asset.Value

	after, notes := apply(cfg, *asset, typ, p)
	asset.Value = clampValue(after)
	if asset.Value != after {
		notes = append(notes, fmt.Sprintf("Value capped to %.1f", asset.Value))
	}

	mod, err := grading.Grade(modified)
	if err != nil {
		return models.ScenarioResult{}, err
	}

	reasoning := append(notes,
		fmt.Sprintf("%s value %.1f -> %.1f (%s side)", name(*asset), before, asset.Value, side),
		fmt.Sprintf("Trade grade %.1f -> %.1f", orig.Grade, mod.Grade),
	)
	return models.ScenarioResult{
		TradeID:           trade.ID,
		ScenarioType:      string(typ),
		PlayerID:          asset.ID,
		OriginalValue:     round1(before),
		ModifiedValue:     round1(asset.Value),
		OriginalGrade:     orig.Grade,
		ModifiedGrade:     mod.Grade,
		GradeDelta:        round1(mod.Grade - orig.Grade),
		ModifiedReasoning: reasoning,
	}, nil
}

// EffectiveChange returns the change_percent actually applied for the
// value-multiplier scenarios.
func EffectiveChange(typ Type, p Params) float64 {
	switch typ {
	case PlayerDecline:
		return -math.Abs(p.ChangePercent)
	case PlayerImprovement:
		return math.Abs(p.ChangePercent)
	}
	return p.ChangePercent
}

func validate(typ Type, p Params) error {
	if math.IsNaN(p.ChangePercent) || math.IsInf(p.ChangePercent, 0) {
		return simerr.Validationf("change_percent must be a finite number")
	}
	switch typ {
	case PlayerImprovement:
		if p.ChangePercent < 0 {
			return simerr.Validationf("player_improvement needs a non-negative change_percent, got %.1f", p.ChangePercent)
		}
		if p.ChangePercent > maxImprovement {
			return simerr.Validationf("change_percent %.1f exceeds %d", p.ChangePercent, maxImprovement)
		}
	case PlayerDecline:
		if p.ChangePercent > 0 {
			return simerr.Validationf("player_decline needs a non-positive change_percent, got %.1f", p.ChangePercent)
		}
		if p.ChangePercent < minChange {
			return simerr.Validationf("change_percent %.1f is below %d", p.ChangePercent, minChange)
		}
	case InjuryImpact:
		if p.ChangePercent < 0 || p.ChangePercent > 100 {
			return simerr.Validationf("injury_impact change_percent is the share of the season missed and must be in [0,100], got %.1f", p.ChangePercent)
		}
	case AgeProgression:
		if p.Years < 0 || p.Years > maxYears {
			return simerr.Validationf("years must be in [0,%d] (0 means 1), got %d", maxYears, p.Years)
		}
	default:
		return simerr.Validationf("unknown scenario_type %q", typ)
	}
	return nil
}

// target picks the asset to perturb: the named player, or else the most
// valuable received asset (most valuable given asset when nothing is
// received).
func target(t models.Trade, playerID string) (string, int, error) {
	if playerID != "" {
		side, idx, ok := t.FindAsset(playerID)
		if !ok {
			return "", 0, simerr.Validationf("player %q is not part of trade %s", playerID, t.ID)
		}
		return side, idx, nil
	}
	if i := best(t.Received); i >= 0 {
		return "received", i, nil
	}
	if i := best(t.Given); i >= 0 {
		return "given", i, nil
	}
	return "", 0, simerr.Validationf("trade %s has no assets", t.ID)
}

func best(assets []models.Asset) int {
	idx := -1
	for i, a := range assets {
		if idx < 0 || a.Value > assets[idx].Value {
			idx = i
		}
	}
	return idx
}

func apply(cfg league.Config, a models.Asset, typ Type, p Params) (float64, []string) {
	switch typ {
	case PlayerImprovement, PlayerDecline:
		pct := EffectiveChange(typ, p)
		return a.Value * (1 + pct/100), []string{fmt.Sprintf("Applied %+.1f%% performance change", pct)}

	case InjuryImpact:
		missed := int(math.Round(float64(cfg.GamesPerSeason) * p.ChangePercent / 100))
		avail := 1 - float64(missed)/float64(cfg.GamesPerSeason)
		return a.Value * avail, []string{fmt.Sprintf("Expected to miss %d of %d games (%.0f%% available)", missed, cfg.GamesPerSeason, avail*100)}

	default:
		years := p.Years
		if years == 0 {
			years = defaultYears
		}
		if a.Kind == models.AssetDraftPick {
			return a.Value, []string{"Draft picks do not age"}
		}
		return Age(cfg.Sport, a, years)
	}
}

func clampValue(v float64) float64 {
	return math.Max(0, math.Min(maxAssetValue, v))
}

func name(a models.Asset) string {
	if a.Name != "" {
		return a.Name
	}
	return a.ID
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
