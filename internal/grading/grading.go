// Package grading scores the value exchanged in a trade on a 0-60 scale.
//
// Grading is deterministic: the same assets always give the same score.
package grading

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/omarshaarawi/gmsim/internal/league"
	"github.com/omarshaarawi/gmsim/internal/models"
	"github.com/omarshaarawi/gmsim/internal/simerr"
)

const (
	MaxScore = 60
	MidScore = MaxScore / 2

	// packageDecay discounts each additional asset on a side, strongest
	// first, so several small pieces never match one star.
	packageDecay = 0.6
	// curve controls how fast the score saturates with the relative
	// value differential.
	curve = 2.5

	maxAssetValue = 100
)

// Result is a graded trade.
type Result struct {
	TradeQualityScore int      `json:"tradeQualityScore"`
	Score             float64  `json:"score"`
	Grade             float64  `json:"grade"`
	ValueGiven        float64  `json:"valueGiven"`
	ValueReceived     float64  `json:"valueReceived"`
	Differential      float64  `json:"differential"`
	Reasoning         []string `json:"reasoning"`
}

// Grade scores t from the user's side. A balanced exchange lands at 30;
// winning every point of value saturates at 60.
func Grade(t models.Trade) (Result, error) {
	if err := Validate(t); err != nil {
		return Result{}, err
	}

	given, givenRaw := SideValue(t.Sport, t.Given)
	received, receivedRaw := SideValue(t.Sport, t.Received)

	res := Result{ValueGiven: round1(given), ValueReceived: round1(received)}
	res.Score = score(given, received)
	res.TradeQualityScore = int(math.Round(res.Score))
	res.Grade = ToGrade(res.Score)
	res.Differential = round1(received - given)
	res.Reasoning = reasoning(t, given, givenRaw, received, receivedRaw, res)
	return res, nil
}

// Score is the unrounded 0-60 quality score without validation or
// reasoning. Used in hot loops.
func Score(sport league.Sport, given, received []models.Asset) float64 {
	g, _ := SideValue(sport, given)
	r, _ := SideValue(sport, received)
	return score(g, r)
}

// Validate checks the trade shape and asset values.
func Validate(t models.Trade) error {
	if len(t.Given) == 0 && len(t.Received) == 0 {
		return simerr.Validationf("trade has no assets on either side")
	}
	for _, side := range [][]models.Asset{t.Given, t.Received} {
		for _, a := range side {
			if a.Value < 0 || a.Value > maxAssetValue || math.IsNaN(a.Value) {
				return simerr.Validationf("asset %q value %.1f outside [0,%d]", a.ID, a.Value, maxAssetValue)
			}
			switch a.Kind {
			case models.AssetPlayer, models.AssetProspect, models.AssetDraftPick:
			default:
				return simerr.Validationf("asset %q has unknown kind %q", a.ID, a.Kind)
			}
		}
	}
	return nil
}

// ToGrade maps a 0-60 quality score onto the 0-100 grade scale, one decimal.
func ToGrade(score float64) float64 {
	return round1(score * 100 / MaxScore)
}

// EffectiveValue weights an asset's rating by position scarcity and asset kind.
func EffectiveValue(sport league.Sport, a models.Asset) float64 {
	return a.Value * scarcity(sport, a.Position) * kindWeight[a.Kind]
}

// SideValue returns the package value of one side after diminishing returns,
// and the plain sum of effective values.
func SideValue(sport league.Sport, assets []models.Asset) (float64, float64) {
	vals := make([]float64, len(assets))
	var raw float64
	for i, a := range assets {
		vals[i] = EffectiveValue(sport, a)
		raw += vals[i]
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(vals)))

	var total float64
	w := 1.0
	for _, v := range vals {
		total += v * w
		w *= packageDecay
	}
	return total, raw
}

func score(given, received float64) float64 {
	top := math.Max(given, received)
	if top == 0 {
		return MidScore
	}
	d := (received - given) / top
	s := MidScore + MidScore*math.Tanh(curve*d)/math.Tanh(curve)
	return math.Max(0, math.Min(MaxScore, s))
}

var kindWeight = map[models.AssetKind]float64{
	models.AssetPlayer:    1.0,
	models.AssetProspect:  0.85,
	models.AssetDraftPick: 0.9,
}

var scarcityWeights = map[league.Sport]map[string]float64{
	league.NFL: {
		"QB": 1.25, "EDGE": 1.1, "DE": 1.1, "LT": 1.1, "OT": 1.05, "CB": 1.05,
		"WR": 1.0, "DT": 1.0, "TE": 0.95, "S": 0.95, "LB": 0.9, "G": 0.9, "C": 0.9,
		"RB": 0.85, "K": 0.6, "P": 0.6, "LS": 0.5,
	},
	league.NBA: {
		"PG": 1.05, "SG": 1.0, "SF": 1.05, "PF": 1.0, "C": 1.0, "G": 1.0, "F": 1.05,
	},
	league.NHL: {
		"G": 1.15, "D": 1.05, "C": 1.05, "LW": 1.0, "RW": 1.0, "W": 1.0,
	},
	league.MLB: {
		"SP": 1.15, "C": 1.05, "SS": 1.05, "CF": 1.0, "2B": 1.0, "3B": 1.0,
		"OF": 0.95, "LF": 0.95, "RF": 0.95, "1B": 0.9, "DH": 0.85, "RP": 0.8, "CP": 0.85,
	},
}

func scarcity(sport league.Sport, position string) float64 {
	if w, ok := scarcityWeights[sport][strings.ToUpper(strings.TrimSpace(position))]; ok {
		return w
	}
	return 1.0
}

func reasoning(t models.Trade, given, givenRaw, received, receivedRaw float64, res Result) []string {
	var out []string
	out = append(out, fmt.Sprintf("Received %d asset(s) worth %.1f; gave %d asset(s) worth %.1f", len(t.Received), received, len(t.Given), given))

	if len(t.Given) > 1 && givenRaw-given > 0.5 {
		out = append(out, fmt.Sprintf("Outgoing package of %d discounted from %.1f to %.1f for depth over quality", len(t.Given), givenRaw, given))
	}
	if len(t.Received) > 1 && receivedRaw-received > 0.5 {
		out = append(out, fmt.Sprintf("Incoming package of %d discounted from %.1f to %.1f for depth over quality", len(t.Received), receivedRaw, received))
	}

	for _, a := range t.Received {
		if w := scarcity(t.Sport, a.Position); w > 1 {
			out = append(out, fmt.Sprintf("%s plays a premium position (%s, x%.2f)", assetName(a), strings.ToUpper(a.Position), w))
		}
	}

	switch {
	case res.TradeQualityScore >= 45:
		out = append(out, "Clear value win")
	case res.TradeQualityScore >= 34:
		out = append(out, "Modest value win")
	case res.TradeQualityScore > 26:
		out = append(out, "Roughly even exchange")
	case res.TradeQualityScore > 15:
		out = append(out, "Overpaid")
	default:
		out = append(out, "Significant overpay")
	}
	return out
}

func assetName(a models.Asset) string {
	if a.Name != "" {
		return a.Name
	}
	return a.ID
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
