package features

// Vector is one matchup's model input. The field set is a contract with
// the downstream predictor: names, presence and numeric type never vary
// by input, and FieldNames fixes the order.
type Vector struct {
	HomeWeightedMargin        float64 `json:"home_weighted_margin"`
	AwayWeightedMargin        float64 `json:"away_weighted_margin"`
	HomeWeightedWinPct        float64 `json:"home_weighted_win_pct"`
	AwayWeightedWinPct        float64 `json:"away_weighted_win_pct"`
	HomeRecent10WinPct        float64 `json:"home_recent_10_win_pct"`
	AwayRecent10WinPct        float64 `json:"away_recent_10_win_pct"`
	HomeWeightedPointsFor     float64 `json:"home_weighted_points_for"`
	AwayWeightedPointsFor     float64 `json:"away_weighted_points_for"`
	HomeWeightedPointsAgainst float64 `json:"home_weighted_points_against"`
	AwayWeightedPointsAgainst float64 `json:"away_weighted_points_against"`
	HomeWeightedPointDiff     float64 `json:"home_weighted_point_diff"`
	AwayWeightedPointDiff     float64 `json:"away_weighted_point_diff"`
	HomeRecentMargin3         float64 `json:"home_recent_margin_3"`
	HomeRecentMargin5         float64 `json:"home_recent_margin_5"`
	HomeRecentMargin10        float64 `json:"home_recent_margin_10"`
	AwayRecentMargin3         float64 `json:"away_recent_margin_3"`
	AwayRecentMargin5         float64 `json:"away_recent_margin_5"`
	AwayRecentMargin10        float64 `json:"away_recent_margin_10"`
	HomeRecentWinPct3         float64 `json:"home_recent_win_pct_3"`
	HomeRecentWinPct5         float64 `json:"home_recent_win_pct_5"`
	AwayRecentWinPct3         float64 `json:"away_recent_win_pct_3"`
	AwayRecentWinPct5         float64 `json:"away_recent_win_pct_5"`
	HomeRecentPointsFor5      float64 `json:"home_recent_points_for_5"`
	HomeRecentPointsAgainst5  float64 `json:"home_recent_points_against_5"`
	AwayRecentPointsFor5      float64 `json:"away_recent_points_for_5"`
	AwayRecentPointsAgainst5  float64 `json:"away_recent_points_against_5"`
	HomeBlownRate10           float64 `json:"home_blown_rate_10"`
	AwayBlownRate10           float64 `json:"away_blown_rate_10"`
	HomeClutchMargin10        float64 `json:"home_clutch_margin_10"`
	AwayClutchMargin10        float64 `json:"away_clutch_margin_10"`
	HomeMaxLead10             float64 `json:"home_max_lead_10"`
	AwayMaxLead10             float64 `json:"away_max_lead_10"`
	HomeH2HMarginAvg          float64 `json:"home_h2h_margin_avg"`
	HomeH2HWinPct             float64 `json:"home_h2h_win_pct"`
	H2HGamesPlayed            float64 `json:"h2h_games_played"`
	RestDiff                  float64 `json:"rest_diff"`
	HomeB2B                   float64 `json:"home_b2b"`
	AwayB2B                   float64 `json:"away_b2b"`
	HomeGamesPlayed           float64 `json:"home_games_played"`
	AwayGamesPlayed           float64 `json:"away_games_played"`
	MarketSpread              float64 `json:"market_spread"`
	LineMove                  float64 `json:"line_move"`
}

// FieldNames is the fixed column order of the schema
var FieldNames = []string{
	"home_weighted_margin",
	"away_weighted_margin",
	"home_weighted_win_pct",
	"away_weighted_win_pct",
	"home_recent_10_win_pct",
	"away_recent_10_win_pct",
	"home_weighted_points_for",
	"away_weighted_points_for",
	"home_weighted_points_against",
	"away_weighted_points_against",
	"home_weighted_point_diff",
	"away_weighted_point_diff",
	"home_recent_margin_3",
	"home_recent_margin_5",
	"home_recent_margin_10",
	"away_recent_margin_3",
	"away_recent_margin_5",
	"away_recent_margin_10",
	"home_recent_win_pct_3",
	"home_recent_win_pct_5",
	"away_recent_win_pct_3",
	"away_recent_win_pct_5",
	"home_recent_points_for_5",
	"home_recent_points_against_5",
	"away_recent_points_for_5",
	"away_recent_points_against_5",
	"home_blown_rate_10",
	"away_blown_rate_10",
	"home_clutch_margin_10",
	"away_clutch_margin_10",
	"home_max_lead_10",
	"away_max_lead_10",
	"home_h2h_margin_avg",
	"home_h2h_win_pct",
	"h2h_games_played",
	"rest_diff",
	"home_b2b",
	"away_b2b",
	"home_games_played",
	"away_games_played",
	"market_spread",
	"line_move",
}

// Values returns the vector in FieldNames order
func (v Vector) Values() []float64 {
	return []float64{
		v.HomeWeightedMargin,
		v.AwayWeightedMargin,
		v.HomeWeightedWinPct,
		v.AwayWeightedWinPct,
		v.HomeRecent10WinPct,
		v.AwayRecent10WinPct,
		v.HomeWeightedPointsFor,
		v.AwayWeightedPointsFor,
		v.HomeWeightedPointsAgainst,
		v.AwayWeightedPointsAgainst,
		v.HomeWeightedPointDiff,
		v.AwayWeightedPointDiff,
		v.HomeRecentMargin3,
		v.HomeRecentMargin5,
		v.HomeRecentMargin10,
		v.AwayRecentMargin3,
		v.AwayRecentMargin5,
		v.AwayRecentMargin10,
		v.HomeRecentWinPct3,
		v.HomeRecentWinPct5,
		v.AwayRecentWinPct3,
		v.AwayRecentWinPct5,
		v.HomeRecentPointsFor5,
		v.HomeRecentPointsAgainst5,
		v.AwayRecentPointsFor5,
		v.AwayRecentPointsAgainst5,
		v.HomeBlownRate10,
		v.AwayBlownRate10,
		v.HomeClutchMargin10,
		v.AwayClutchMargin10,
		v.HomeMaxLead10,
		v.AwayMaxLead10,
		v.HomeH2HMarginAvg,
		v.HomeH2HWinPct,
		v.H2HGamesPlayed,
		v.RestDiff,
		v.HomeB2B,
		v.AwayB2B,
		v.HomeGamesPlayed,
		v.AwayGamesPlayed,
		v.MarketSpread,
		v.LineMove,
	}
}
