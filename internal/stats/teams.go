package stats

// ModernTeams lists the current thirty NBA franchises
var ModernTeams = []string{
	"Atlanta Hawks", "Boston Celtics", "Brooklyn Nets", "Charlotte Hornets",
	"Chicago Bulls", "Cleveland Cavaliers", "Dallas Mavericks", "Denver Nuggets",
	"Detroit Pistons", "Golden State Warriors", "Houston Rockets", "Indiana Pacers",
	"Los Angeles Clippers", "Los Angeles Lakers", "Memphis Grizzlies", "Miami Heat",
	"Milwaukee Bucks", "Minnesota Timberwolves", "New Orleans Pelicans", "New York Knicks",
	"Oklahoma City Thunder", "Orlando Magic", "Philadelphia 76ers", "Phoenix Suns",
	"Portland Trail Blazers", "Sacramento Kings", "San Antonio Spurs", "Toronto Raptors",
	"Utah Jazz", "Washington Wizards",
}

var modernTeamSet = func() map[string]bool {
	set := make(map[string]bool, len(ModernTeams))
	for _, t := range ModernTeams {
		set[t] = true
	}
	return set
}()

// Historic city -> current city
var relocatedCities = map[string]string{
	"St. Louis":   "Atlanta",
	"San Diego":   "Los Angeles",
	"Cincinnati":  "Sacramento",
	"Tri-Cities":  "Atlanta",
	"New Jersey":  "Brooklyn",
	"Minneapolis": "Los Angeles",
	"Baltimore":   "Washington",
	"Kansas City": "Sacramento",
	"Vancouver":   "Memphis",
	"Seattle":     "Oklahoma City",
}

// Historic nickname -> current nickname
var renamedTeams = map[string]string{
	"Royals":      "Kings",
	"Bullets":     "Wizards",
	"SuperSonics": "Thunder",
}

// CurrentFranchise maps a historic city and nickname to today's team name
func CurrentFranchise(city, nickname string) string {
	if c, ok := relocatedCities[city]; ok {
		city = c
	}
	if n, ok := renamedTeams[nickname]; ok {
		nickname = n
	}
	return city + " " + nickname
}

// IsModernTeam reports whether team is one of the current franchises
func IsModernTeam(team string) bool {
	return modernTeamSet[team]
}
