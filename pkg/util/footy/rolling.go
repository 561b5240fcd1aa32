package footy

import (
	"math"
	"sort"

	"github.com/richard-senior/footy/internal/logger"
)

/////////////////////////////////////////////////////////////////////////
////// Rolling Feature Generation
/////////////////////////////////////////////////////////////////////////

// roleAppearance captures one prior appearance of a team in a given role.
// shotAccuracy is NaN when the team registered no shots that day.
type roleAppearance struct {
	result       float64 // win 1.0, draw 0.5, loss 0.0
	goalsFor     float64
	goalsAgainst float64
	shotAccuracy float64
	fouls        float64
	totalGoals   float64
	btts         float64
	over1p5      float64
	over2p5      float64
	date         int64 // unix time of the appearance
}

// AddRollingFeatures produces one FeatureRow per match carrying trailing-
// window form statistics. Matches are sorted by date ascending first and the
// output preserves that order. For every team the home-role and away-role
// appearance sequences are tracked independently, and the value attached to a
// match is computed over that team's appearances strictly before it. A team's
// first appearance in a role therefore has no form, which is filled with 0.
// Unfinished matches receive features but never enter the history.
func AddRollingFeatures(matches []*Match, window int) []*FeatureRow {
	if window < 1 {
		window = Config.RollingWindow
	}

	sorted := make([]*Match, len(matches))
	copy(sorted, matches)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	homeHistory := make(map[string][]roleAppearance)
	awayHistory := make(map[string][]roleAppearance)

	rows := make([]*FeatureRow, 0, len(sorted))
	for _, m := range sorted {
		fr := &FeatureRow{
			MatchID:  m.ID,
			Date:     m.Date,
			League:   m.League,
			Season:   m.Season,
			HomeTeam: m.HomeTeam,
			AwayTeam: m.AwayTeam,

			TotalGoals: -1,
			BTTS:       -1,
			Over1p5:    -1,
			Over2p5:    -1,
			Over3p5:    -1,
		}

		// trailing windows over prior appearances only
		hh := tailAppearances(homeHistory[m.HomeTeam], window)
		ah := tailAppearances(awayHistory[m.AwayTeam], window)

		fr.HomeFormRating = fillNaN(meanOf(hh, func(a roleAppearance) float64 { return a.result }))
		fr.HomeGoalsForAvg = fillNaN(meanOf(hh, func(a roleAppearance) float64 { return a.goalsFor }))
		fr.HomeGoalsAgainstAvg = fillNaN(meanOf(hh, func(a roleAppearance) float64 { return a.goalsAgainst }))
		fr.HomeShotAccuracyAvg = fillNaN(meanOf(hh, func(a roleAppearance) float64 { return a.shotAccuracy }))
		fr.HomeFoulsAvg = fillNaN(meanOf(hh, func(a roleAppearance) float64 { return a.fouls }))

		fr.AwayFormRating = fillNaN(meanOf(ah, func(a roleAppearance) float64 { return a.result }))
		fr.AwayGoalsForAvg = fillNaN(meanOf(ah, func(a roleAppearance) float64 { return a.goalsFor }))
		fr.AwayGoalsAgainstAvg = fillNaN(meanOf(ah, func(a roleAppearance) float64 { return a.goalsAgainst }))
		fr.AwayShotAccuracyAvg = fillNaN(meanOf(ah, func(a roleAppearance) float64 { return a.shotAccuracy }))
		fr.AwayFoulsAvg = fillNaN(meanOf(ah, func(a roleAppearance) float64 { return a.fouls }))

		rows = append(rows, fr)

		// only completed matches extend the histories
		if !m.IsFinished() {
			continue
		}

		homeHistory[m.HomeTeam] = append(homeHistory[m.HomeTeam], appearanceFor(m, true))
		awayHistory[m.AwayTeam] = append(awayHistory[m.AwayTeam], appearanceFor(m, false))
	}

	logger.Info("Generated rolling feature rows", len(rows), "window", window)
	return rows
}

// appearanceFor maps a finished match onto one side's appearance record
func appearanceFor(m *Match, home bool) roleAppearance {
	var goalsFor, goalsAgainst int
	var shots, shotsOnTarget, fouls int
	if home {
		goalsFor, goalsAgainst = m.FullTimeHomeGoals, m.FullTimeAwayGoals
		shots, shotsOnTarget, fouls = m.HomeShots, m.HomeShotsOnTarget, m.HomeFouls
	} else {
		goalsFor, goalsAgainst = m.FullTimeAwayGoals, m.FullTimeHomeGoals
		shots, shotsOnTarget, fouls = m.AwayShots, m.AwayShotsOnTarget, m.AwayFouls
	}

	result := 0.5
	if goalsFor > goalsAgainst {
		result = 1.0
	} else if goalsFor < goalsAgainst {
		result = 0.0
	}

	// no shots recorded means accuracy is undefined for that day
	shotAccuracy := math.NaN()
	if shots > 0 && shotsOnTarget >= 0 {
		shotAccuracy = float64(shotsOnTarget) / float64(shots)
	}

	foulCount := math.NaN()
	if fouls >= 0 {
		foulCount = float64(fouls)
	}

	total := m.TotalGoals()
	btts := 0.0
	if m.BothTeamsScored() {
		btts = 1.0
	}
	over1p5 := 0.0
	if float64(total) > Config.Over1p5GoalsThreshold {
		over1p5 = 1.0
	}
	over2p5 := 0.0
	if float64(total) > Config.Over2p5GoalsThreshold {
		over2p5 = 1.0
	}

	return roleAppearance{
		result:       result,
		goalsFor:     float64(goalsFor),
		goalsAgainst: float64(goalsAgainst),
		shotAccuracy: shotAccuracy,
		fouls:        foulCount,
		totalGoals:   float64(total),
		btts:         btts,
		over1p5:      over1p5,
		over2p5:      over2p5,
		date:         m.Date.Unix(),
	}
}

// tailAppearances returns at most the last n entries
func tailAppearances(history []roleAppearance, n int) []roleAppearance {
	if len(history) <= n {
		return history
	}
	return history[len(history)-n:]
}

// meanOf averages the extracted series, skipping NaN entries.
// Returns NaN when nothing valid remains.
func meanOf(window []roleAppearance, extract func(roleAppearance) float64) float64 {
	sum := 0.0
	count := 0
	for _, a := range window {
		v := extract(a)
		if math.IsNaN(v) {
			continue
		}
		sum += v
		count++
	}
	if count == 0 {
		return math.NaN()
	}
	return sum / float64(count)
}

// stdOf computes the sample standard deviation of the extracted series,
// skipping NaN entries. Fewer than two valid values yields NaN.
func stdOf(window []roleAppearance, extract func(roleAppearance) float64) float64 {
	mean := meanOf(window, extract)
	if math.IsNaN(mean) {
		return math.NaN()
	}
	sum := 0.0
	count := 0
	for _, a := range window {
		v := extract(a)
		if math.IsNaN(v) {
			continue
		}
		d := v - mean
		sum += d * d
		count++
	}
	if count < 2 {
		return math.NaN()
	}
	return math.Sqrt(sum / float64(count-1))
}

// fillNaN substitutes 0 for missing values
func fillNaN(v float64) float64 {
	if math.IsNaN(v) {
		return 0.0
	}
	return v
}
