package league

// DefaultConfigs returns the published season rules. Callers depend on the
// exact games, team counts and conference names; change with care.
func DefaultConfigs() []Config {
	return []Config{
		{
			Sport:                 NFL,
			GamesPerSeason:        17,
			PlayoffTeamsPerLeague: 7,
			SeriesLength:          1,
			ConferenceNames:       [2]string{"AFC", "NFC"},
			ExpectedTeamCount:     32,
			TopSeedByes:           1,
			RoundNames:            []string{"Wild Card Round", "Divisional Round", "Conference Championship", "Super Bowl"},
			HomeAdvantage:         48,
			MaxMargin:             24,
			EloPerValue:           1.2,
		},
		{
			Sport:                 NBA,
			GamesPerSeason:        82,
			PlayoffTeamsPerLeague: 8,
			SeriesLength:          7,
			ConferenceNames:       [2]string{"Eastern", "Western"},
			ExpectedTeamCount:     30,
			TopSeedByes:           0,
			RoundNames:            []string{"First Round", "Conference Semifinals", "Conference Finals", "NBA Finals"},
			HomeAdvantage:         70,
			MaxMargin:             25,
			EloPerValue:           1.5,
		},
		{
			Sport:                 NHL,
			GamesPerSeason:        82,
			PlayoffTeamsPerLeague: 8,
			SeriesLength:          7,
			ConferenceNames:       [2]string{"Eastern", "Western"},
			ExpectedTeamCount:     32,
			TopSeedByes:           0,
			RoundNames:            []string{"First Round", "Second Round", "Conference Final", "Stanley Cup Final"},
			HomeAdvantage:         30,
			MaxMargin:             4,
			OvertimeRate:          0.23,
			EloPerValue:           0.8,
		},
		{
			Sport:                 MLB,
			GamesPerSeason:        162,
			PlayoffTeamsPerLeague: 6,
			SeriesLength:          5,
			ConferenceNames:       [2]string{"American League", "National League"},
			ExpectedTeamCount:     30,
			TopSeedByes:           2,
			RoundNames:            []string{"Wild Card Series", "Division Series", "Championship Series", "World Series"},
			HomeAdvantage:         24,
			MaxMargin:             6,
			EloPerValue:           0.7,
		},
	}
}

// ChicagoTeams maps each Chicago franchise key to its league.
var ChicagoTeams = map[string]Sport{
	"chicago-bears":      NFL,
	"chicago-bulls":      NBA,
	"chicago-blackhawks": NHL,
	"chicago-cubs":       MLB,
	"chicago-white-sox":  MLB,
}
