// Package teams normalizes NBA team names across data sources. The
// games feed, the odds feed, and the injury report all spell teams
// differently, so everything funnels through these helpers before
// being used as a map key.
package teams

import (
	"fmt"
	"math"
	"strings"
	"unicode"
)

var abbreviations = map[string]string{
	"Atlanta Hawks":          "ATL",
	"Boston Celtics":         "BOS",
	"Brooklyn Nets":          "BKN",
	"Charlotte Hornets":      "CHA",
	"Chicago Bulls":          "CHI",
	"Cleveland Cavaliers":    "CLE",
	"Dallas Mavericks":       "DAL",
	"Denver Nuggets":         "DEN",
	"Detroit Pistons":        "DET",
	"Golden State Warriors":  "GSW",
	"Houston Rockets":        "HOU",
	"Indiana Pacers":         "IND",
	"LA Clippers":            "LAC",
	"Los Angeles Clippers":   "LAC",
	"Los Angeles Lakers":     "LAL",
	"Memphis Grizzlies":      "MEM",
	"Miami Heat":             "MIA",
	"Milwaukee Bucks":        "MIL",
	"Minnesota Timberwolves": "MIN",
	"New Orleans Pelicans":   "NOP",
	"New York Knicks":        "NYK",
	"Oklahoma City Thunder":  "OKC",
	"Orlando Magic":          "ORL",
	"Philadelphia 76ers":     "PHI",
	"Phoenix Suns":           "PHX",
	"Portland Trail Blazers": "POR",
	"Sacramento Kings":       "SAC",
	"San Antonio Spurs":      "SAS",
	"Toronto Raptors":        "TOR",
	"Utah Jazz":              "UTA",
	"Washington Wizards":     "WAS",
}

// Normalize lowercases a team name, strips punctuation, collapses
// whitespace, and expands the "LA" and "NY" shorthand some feeds use.
func Normalize(name string) string {
	var b strings.Builder
	for _, ch := range name {
		if unicode.IsLetter(ch) || unicode.IsDigit(ch) || unicode.IsSpace(ch) {
			b.WriteRune(ch)
		}
	}
	cleaned := strings.Join(strings.Fields(strings.ToLower(b.String())), " ")
	if strings.HasPrefix(cleaned, "la ") {
		return "los angeles " + strings.TrimPrefix(cleaned, "la ")
	}
	if strings.HasPrefix(cleaned, "ny ") {
		return "new york " + strings.TrimPrefix(cleaned, "ny ")
	}
	return cleaned
}

// Abbr returns the three-letter code for a full team name, or the name
// unchanged when it is not a known team.
func Abbr(name string) string {
	trimmed := strings.TrimSpace(name)
	if code, ok := abbreviations[trimmed]; ok {
		return code
	}
	return trimmed
}

// FormatSigned renders a spread with an explicit sign, mapping values
// within rounding distance of zero to "+0.0".
func FormatSigned(value *float64, decimals int) string {
	if value == nil {
		return "N/A"
	}
	v := *value
	if math.Abs(v) < 0.0005 {
		v = 0.0
	}
	return fmt.Sprintf("%+.*f", decimals, v)
}

// FormatTeamSpread renders "BOS -4.5" style lines for logs and API
// responses.
func FormatTeamSpread(name string, spread *float64) string {
	return fmt.Sprintf("%s %s", Abbr(name), FormatSigned(spread, 1))
}

// AwayMarginToSpread converts a predicted away margin into the away
// team's spread, and SpreadToAwayMargin inverts it. Both are sign
// flips kept named so call sites read unambiguously.
func AwayMarginToSpread(awayMargin float64) float64 { return -awayMargin }

func SpreadToAwayMargin(spread float64) float64 { return -spread }
