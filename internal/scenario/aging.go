package scenario

import (
	"fmt"
	"math"
	"strings"

	"github.com/omarshaarawi/gmsim/internal/league"
	"github.com/omarshaarawi/gmsim/internal/models"
)

const (
	defaultPlayerAge   = 27
	defaultProspectAge = 21
	maxYearlyDecline   = 0.25
	// declineAcceleration is added to the yearly decline for every season
	// past the first one beyond peak.
	declineAcceleration = 0.01
)

// Curve is a position's aging profile.
type Curve struct {
	Peak    int
	Growth  float64
	Decline float64
}

var defaultCurve = Curve{Peak: 27, Growth: 0.04, Decline: 0.05}

var curves = map[league.Sport]map[string]Curve{
	league.NFL: {
		"QB": {Peak: 30, Growth: 0.05, Decline: 0.04},
		"RB": {Peak: 25, Growth: 0.04, Decline: 0.09},
		"WR": {Peak: 27, Growth: 0.05, Decline: 0.06},
		"TE": {Peak: 28, Growth: 0.04, Decline: 0.05},
		"K":  {Peak: 32, Growth: 0.02, Decline: 0.02},
		"P":  {Peak: 32, Growth: 0.02, Decline: 0.02},
		"CB": {Peak: 26, Growth: 0.04, Decline: 0.07},
		"LB": {Peak: 26, Growth: 0.04, Decline: 0.06},
	},
	league.NBA: {
		"PG": {Peak: 28, Growth: 0.05, Decline: 0.05},
		"C":  {Peak: 27, Growth: 0.04, Decline: 0.06},
	},
	league.NHL: {
		"G": {Peak: 29, Growth: 0.03, Decline: 0.04},
		"D": {Peak: 28, Growth: 0.04, Decline: 0.05},
	},
	league.MLB: {
		"SP": {Peak: 28, Growth: 0.04, Decline: 0.05},
		"RP": {Peak: 28, Growth: 0.03, Decline: 0.07},
		"C":  {Peak: 27, Growth: 0.04, Decline: 0.07},
		"DH": {Peak: 29, Growth: 0.03, Decline: 0.05},
	},
}

// CurveFor returns the aging curve for a sport and position.
func CurveFor(sport league.Sport, position string) Curve {
	if c, ok := curves[sport][strings.ToUpper(strings.TrimSpace(position))]; ok {
		return c
	}
	return defaultCurve
}

// Age steps an asset forward years seasons along its position curve. Below
// peak each season grows the value; past peak each season's multiplier is
// at most the previous one.
func Age(sport league.Sport, a models.Asset, years int) (float64, []string) {
	c := CurveFor(sport, a.Position)
	age := a.Age
	if age <= 0 {
		age = defaultPlayerAge
		if a.Kind == models.AssetProspect {
			age = defaultProspectAge
		}
	}

	v := a.Value
	for y := 0; y < years; y++ {
		v *= StepMultiplier(c, age+1)
		age++
	}
	note := fmt.Sprintf("Aged %d season(s) to %d (peak %d for %s)", years, age, c.Peak, positionLabel(a.Position))
	return v, []string{note}
}

// StepMultiplier is the value multiplier for the season in which the
// player turns age.
func StepMultiplier(c Curve, age int) float64 {
	if age <= c.Peak {
		return 1 + c.Growth
	}
	past := age - c.Peak - 1
	return 1 - math.Min(maxYearlyDecline, c.Decline+declineAcceleration*float64(past))
}

func positionLabel(p string) string {
	if p == "" {
		return "unlisted position"
	}
	return strings.ToUpper(p)
}
