package models

type RecordLine struct {
	Wins     int `json:"wins"`
	Losses   int `json:"losses"`
	Ties     int `json:"ties,omitempty"`
	OTLosses int `json:"otLosses,omitempty"`
}

type ScoreBreakdown struct {
	TradeQualityScore   int `json:"tradeQualityScore"`
	WinImprovementScore int `json:"winImprovementScore"`
	PlayoffBonusScore   int `json:"playoffBonusScore"`
	ChampionshipBonus   int `json:"championshipBonus"`
}

func (b ScoreBreakdown) Total() int {
	return b.TradeQualityScore + b.WinImprovementScore + b.PlayoffBonusScore + b.ChampionshipBonus
}

type SeasonSummary struct {
	Headline   string   `json:"headline"`
	Narrative  string   `json:"narrative"`
	KeyMoments []string `json:"keyMoments"`
}

type SeasonResult struct {
	SessionID        string         `json:"sessionId"`
	Sport            string         `json:"sport"`
	TeamKey          string         `json:"teamKey"`
	SeasonYear       int            `json:"seasonYear"`
	TradesApplied    int            `json:"tradesApplied"`
	RatingDelta      float64        `json:"ratingDelta"`
	Baseline         RecordLine     `json:"baseline"`
	Modified         RecordLine     `json:"modified"`
	GMScore          int            `json:"gmScore"`
	ScoreBreakdown   ScoreBreakdown `json:"scoreBreakdown"`
	Standings        Standings      `json:"standings"`
	Playoffs         PlayoffBracket `json:"playoffs"`
	BaselinePlayoffs UserTeamResult `json:"baselinePlayoffs"`
	SeasonSummary    SeasonSummary  `json:"seasonSummary"`
}

type ScenarioResult struct {
	TradeID           string   `json:"trade_id"`
	ScenarioType      string   `json:"scenario_type"`
	PlayerID          string   `json:"player_id"`
	OriginalValue     float64  `json:"original_value"`
	ModifiedValue     float64  `json:"modified_value"`
	OriginalGrade     float64  `json:"original_grade"`
	ModifiedGrade     float64  `json:"modified_grade"`
	GradeDelta        float64  `json:"grade_delta"`
	ModifiedReasoning []string `json:"modified_reasoning"`
}

type Percentiles struct {
	P10 float64 `json:"p10"`
	P25 float64 `json:"p25"`
	P50 float64 `json:"p50"`
	P75 float64 `json:"p75"`
	P90 float64 `json:"p90"`
}

type RiskAnalysis struct {
	BustProbability    float64 `json:"bust_probability"`
	SuccessProbability float64 `json:"success_probability"`
}

type SimulationResult struct {
	TradeID              string       `json:"trade_id,omitempty"`
	SimulationsRequested int          `json:"simulations_requested"`
	SimulationsRun       int          `json:"simulations_run"`
	MeanOutcome          float64      `json:"mean_outcome"`
	MedianOutcome        float64      `json:"median_outcome"`
	StdDeviation         float64      `json:"std_deviation"`
	Percentiles          Percentiles  `json:"percentiles"`
	RiskAnalysis         RiskAnalysis `json:"risk_analysis"`
}
