package strength

import (
	"github.com/omarshaarawi/gmsim/internal/league"
	"github.com/omarshaarawi/gmsim/internal/models"
)

func team(key, name, abbr, conf string, rating float64, w, l int) models.TeamStrength {
	return models.TeamStrength{Key: key, Name: name, Abbreviation: abbr, Conference: conf, Rating: rating, Wins: w, Losses: l}
}

// bundledTeams are preseason Elo ratings and prior-season records.
var bundledTeams = map[league.Sport][]models.TeamStrength{
	league.NFL: {
		team("buffalo-bills", "Buffalo Bills", "BUF", "AFC", 1640, 13, 4),
		team("miami-dolphins", "Miami Dolphins", "MIA", "AFC", 1470, 8, 9),
		team("new-england-patriots", "New England Patriots", "NE", "AFC", 1390, 4, 13),
		team("new-york-jets", "New York Jets", "NYJ", "AFC", 1420, 5, 12),
		team("baltimore-ravens", "Baltimore Ravens", "BAL", "AFC", 1650, 12, 5),
		team("cincinnati-bengals", "Cincinnati Bengals", "CIN", "AFC", 1540, 9, 8),
		team("cleveland-browns", "Cleveland Browns", "CLE", "AFC", 1380, 3, 14),
		team("pittsburgh-steelers", "Pittsburgh Steelers", "PIT", "AFC", 1530, 10, 7),
		team("houston-texans", "Houston Texans", "HOU", "AFC", 1530, 10, 7),
		team("indianapolis-colts", "Indianapolis Colts", "IND", "AFC", 1460, 8, 9),
		team("jacksonville-jaguars", "Jacksonville Jaguars", "JAX", "AFC", 1400, 4, 13),
		team("tennessee-titans", "Tennessee Titans", "TEN", "AFC", 1370, 3, 14),
		team("denver-broncos", "Denver Broncos", "DEN", "AFC", 1550, 10, 7),
		team("kansas-city-chiefs", "Kansas City Chiefs", "KC", "AFC", 1640, 15, 2),
		team("las-vegas-raiders", "Las Vegas Raiders", "LV", "AFC", 1390, 4, 13),
		team("los-angeles-chargers", "Los Angeles Chargers", "LAC", "AFC", 1560, 11, 6),
		team("dallas-cowboys", "Dallas Cowboys", "DAL", "NFC", 1450, 7, 10),
		team("new-york-giants", "New York Giants", "NYG", "NFC", 1370, 3, 14),
		team("philadelphia-eagles", "Philadelphia Eagles", "PHI", "NFC", 1680, 14, 3),
		team("washington-commanders", "Washington Commanders", "WAS", "NFC", 1580, 12, 5),
		team("chicago-bears", "Chicago Bears", "CHI", "NFC", 1450, 5, 12),
		team("detroit-lions", "Detroit Lions", "DET", "NFC", 1660, 15, 2),
		team("green-bay-packers", "Green Bay Packers", "GB", "NFC", 1590, 11, 6),
		team("minnesota-vikings", "Minnesota Vikings", "MIN", "NFC", 1600, 14, 3),
		team("atlanta-falcons", "Atlanta Falcons", "ATL", "NFC", 1460, 8, 9),
		team("carolina-panthers", "Carolina Panthers", "CAR", "NFC", 1400, 5, 12),
		team("new-orleans-saints", "New Orleans Saints", "NO", "NFC", 1400, 5, 12),
		team("tampa-bay-buccaneers", "Tampa Bay Buccaneers", "TB", "NFC", 1560, 10, 7),
		team("arizona-cardinals", "Arizona Cardinals", "ARI", "NFC", 1480, 8, 9),
		team("los-angeles-rams", "Los Angeles Rams", "LAR", "NFC", 1550, 10, 7),
		team("san-francisco-49ers", "San Francisco 49ers", "SF", "NFC", 1500, 6, 11),
		team("seattle-seahawks", "Seattle Seahawks", "SEA", "NFC", 1500, 10, 7),
	},
	league.NBA: {
		team("atlanta-hawks", "Atlanta Hawks", "ATL", "Eastern", 1480, 40, 42),
		team("boston-celtics", "Boston Celtics", "BOS", "Eastern", 1660, 61, 21),
		team("brooklyn-nets", "Brooklyn Nets", "BKN", "Eastern", 1380, 26, 56),
		team("charlotte-hornets", "Charlotte Hornets", "CHA", "Eastern", 1360, 19, 63),
		team("chicago-bulls", "Chicago Bulls", "CHI", "Eastern", 1470, 39, 43),
		team("cleveland-cavaliers", "Cleveland Cavaliers", "CLE", "Eastern", 1680, 64, 18),
		team("detroit-pistons", "Detroit Pistons", "DET", "Eastern", 1520, 44, 38),
		team("indiana-pacers", "Indiana Pacers", "IND", "Eastern", 1560, 50, 32),
		team("miami-heat", "Miami Heat", "MIA", "Eastern", 1470, 37, 45),
		team("milwaukee-bucks", "Milwaukee Bucks", "MIL", "Eastern", 1530, 48, 34),
		team("new-york-knicks", "New York Knicks", "NYK", "Eastern", 1610, 51, 31),
		team("orlando-magic", "Orlando Magic", "ORL", "Eastern", 1500, 41, 41),
		team("philadelphia-76ers", "Philadelphia 76ers", "PHI", "Eastern", 1400, 24, 58),
		team("toronto-raptors", "Toronto Raptors", "TOR", "Eastern", 1410, 30, 52),
		team("washington-wizards", "Washington Wizards", "WAS", "Eastern", 1330, 18, 64),
		team("dallas-mavericks", "Dallas Mavericks", "DAL", "Western", 1490, 39, 43),
		team("denver-nuggets", "Denver Nuggets", "DEN", "Western", 1600, 50, 32),
		team("golden-state-warriors", "Golden State Warriors", "GSW", "Western", 1570, 48, 34),
		team("houston-rockets", "Houston Rockets", "HOU", "Western", 1600, 52, 30),
		team("los-angeles-clippers", "Los Angeles Clippers", "LAC", "Western", 1590, 50, 32),
		team("los-angeles-lakers", "Los Angeles Lakers", "LAL", "Western", 1580, 50, 32),
		team("memphis-grizzlies", "Memphis Grizzlies", "MEM", "Western", 1540, 48, 34),
		team("minnesota-timberwolves", "Minnesota Timberwolves", "MIN", "Western", 1600, 49, 33),
		team("new-orleans-pelicans", "New Orleans Pelicans", "NOP", "Western", 1380, 21, 61),
		team("oklahoma-city-thunder", "Oklahoma City Thunder", "OKC", "Western", 1720, 68, 14),
		team("phoenix-suns", "Phoenix Suns", "PHX", "Western", 1450, 36, 46),
		team("portland-trail-blazers", "Portland Trail Blazers", "POR", "Western", 1430, 36, 46),
		team("sacramento-kings", "Sacramento Kings", "SAC", "Western", 1460, 40, 42),
		team("san-antonio-spurs", "San Antonio Spurs", "SAS", "Western", 1450, 34, 48),
		team("utah-jazz", "Utah Jazz", "UTA", "Western", 1350, 17, 65),
	},
	league.NHL: {
		team("boston-bruins", "Boston Bruins", "BOS", "Eastern", 1450, 33, 39),
		team("buffalo-sabres", "Buffalo Sabres", "BUF", "Eastern", 1440, 36, 39),
		team("detroit-red-wings", "Detroit Red Wings", "DET", "Eastern", 1470, 39, 35),
		team("florida-panthers", "Florida Panthers", "FLA", "Eastern", 1590, 47, 31),
		team("montreal-canadiens", "Montreal Canadiens", "MTL", "Eastern", 1490, 40, 31),
		team("ottawa-senators", "Ottawa Senators", "OTT", "Eastern", 1510, 45, 30),
		team("tampa-bay-lightning", "Tampa Bay Lightning", "TBL", "Eastern", 1580, 47, 27),
		team("toronto-maple-leafs", "Toronto Maple Leafs", "TOR", "Eastern", 1570, 52, 26),
		team("carolina-hurricanes", "Carolina Hurricanes", "CAR", "Eastern", 1580, 47, 30),
		team("columbus-blue-jackets", "Columbus Blue Jackets", "CBJ", "Eastern", 1470, 40, 33),
		team("new-jersey-devils", "New Jersey Devils", "NJD", "Eastern", 1520, 42, 33),
		team("new-york-islanders", "New York Islanders", "NYI", "Eastern", 1450, 35, 35),
		team("new-york-rangers", "New York Rangers", "NYR", "Eastern", 1480, 39, 36),
		team("philadelphia-flyers", "Philadelphia Flyers", "PHI", "Eastern", 1420, 33, 39),
		team("pittsburgh-penguins", "Pittsburgh Penguins", "PIT", "Eastern", 1410, 34, 36),
		team("washington-capitals", "Washington Capitals", "WSH", "Eastern", 1590, 51, 22),
		team("chicago-blackhawks", "Chicago Blackhawks", "CHI", "Western", 1380, 25, 46),
		team("colorado-avalanche", "Colorado Avalanche", "COL", "Western", 1590, 49, 29),
		team("dallas-stars", "Dallas Stars", "DAL", "Western", 1600, 50, 26),
		team("minnesota-wild", "Minnesota Wild", "MIN", "Western", 1510, 45, 30),
		team("nashville-predators", "Nashville Predators", "NSH", "Western", 1420, 30, 44),
		team("st-louis-blues", "St. Louis Blues", "STL", "Western", 1500, 44, 30),
		team("utah-mammoth", "Utah Mammoth", "UTA", "Western", 1470, 38, 31),
		team("winnipeg-jets", "Winnipeg Jets", "WPG", "Western", 1620, 56, 22),
		team("anaheim-ducks", "Anaheim Ducks", "ANA", "Western", 1430, 35, 37),
		team("calgary-flames", "Calgary Flames", "CGY", "Western", 1470, 41, 27),
		team("edmonton-oilers", "Edmonton Oilers", "EDM", "Western", 1580, 48, 29),
		team("los-angeles-kings", "Los Angeles Kings", "LAK", "Western", 1570, 48, 25),
		team("san-jose-sharks", "San Jose Sharks", "SJS", "Western", 1360, 20, 50),
		team("seattle-kraken", "Seattle Kraken", "SEA", "Western", 1430, 35, 41),
		team("vancouver-canucks", "Vancouver Canucks", "VAN", "Western", 1490, 38, 30),
		team("vegas-golden-knights", "Vegas Golden Knights", "VGK", "Western", 1590, 50, 22),
	},
	league.MLB: {
		team("baltimore-orioles", "Baltimore Orioles", "BAL", "American League", 1470, 75, 87),
		team("boston-red-sox", "Boston Red Sox", "BOS", "American League", 1530, 89, 73),
		team("new-york-yankees", "New York Yankees", "NYY", "American League", 1560, 94, 68),
		team("tampa-bay-rays", "Tampa Bay Rays", "TB", "American League", 1490, 77, 85),
		team("toronto-blue-jays", "Toronto Blue Jays", "TOR", "American League", 1560, 94, 68),
		team("chicago-white-sox", "Chicago White Sox", "CWS", "American League", 1390, 60, 102),
		team("cleveland-guardians", "Cleveland Guardians", "CLE", "American League", 1510, 88, 74),
		team("detroit-tigers", "Detroit Tigers", "DET", "American League", 1530, 87, 75),
		team("kansas-city-royals", "Kansas City Royals", "KC", "American League", 1490, 82, 80),
		team("minnesota-twins", "Minnesota Twins", "MIN", "American League", 1450, 70, 92),
		team("athletics", "Athletics", "ATH", "American League", 1460, 76, 86),
		team("houston-astros", "Houston Astros", "HOU", "American League", 1510, 87, 75),
		team("los-angeles-angels", "Los Angeles Angels", "LAA", "American League", 1440, 72, 90),
		team("seattle-mariners", "Seattle Mariners", "SEA", "American League", 1550, 90, 72),
		team("texas-rangers", "Texas Rangers", "TEX", "American League", 1490, 81, 81),
		team("atlanta-braves", "Atlanta Braves", "ATL", "National League", 1480, 76, 86),
		team("miami-marlins", "Miami Marlins", "MIA", "National League", 1450, 79, 83),
		team("new-york-mets", "New York Mets", "NYM", "National League", 1510, 83, 79),
		team("philadelphia-phillies", "Philadelphia Phillies", "PHI", "National League", 1560, 96, 66),
		team("washington-nationals", "Washington Nationals", "WSH", "National League", 1420, 66, 96),
		team("chicago-cubs", "Chicago Cubs", "CHC", "National League", 1540, 92, 70),
		team("cincinnati-reds", "Cincinnati Reds", "CIN", "National League", 1500, 83, 79),
		team("milwaukee-brewers", "Milwaukee Brewers", "MIL", "National League", 1580, 97, 65),
		team("pittsburgh-pirates", "Pittsburgh Pirates", "PIT", "National League", 1440, 71, 91),
		team("st-louis-cardinals", "St. Louis Cardinals", "STL", "National League", 1470, 78, 84),
		team("arizona-diamondbacks", "Arizona Diamondbacks", "ARI", "National League", 1480, 80, 82),
		team("colorado-rockies", "Colorado Rockies", "COL", "National League", 1340, 43, 119),
		team("los-angeles-dodgers", "Los Angeles Dodgers", "LAD", "National League", 1580, 93, 69),
		team("san-diego-padres", "San Diego Padres", "SD", "National League", 1540, 90, 72),
		team("san-francisco-giants", "San Francisco Giants", "SF", "National League", 1480, 81, 81),
	},
}
