package footy

import (
	"fmt"
	"math"
	"sort"

	"github.com/richard-senior/footy/internal/logger"
)

/////////////////////////////////////////////////////////////////////////
////// Feature Engineering Pipeline
/////////////////////////////////////////////////////////////////////////

// pairKey identifies an ordered head to head pairing. Orientation matters:
// Arsenal at home to Spurs is a different key to Spurs at home to Arsenal.
func pairKey(home string, away string) string {
	return home + "|" + away
}

// h2hMeeting is one prior meeting of an ordered pairing
type h2hMeeting struct {
	homeGoals int
	awayGoals int
}

// EngineerFeatures runs the full pipeline over raw matches and returns the
// engineered rows together with the scaler fitted over them. Stages run in a
// fixed order, each reading the previous stage's output:
//
//  1. base labels from the final score (strict > for the over thresholds)
//  2. windowed form families at 3, 5 and 10 prior role appearances
//  3. advanced metrics from the match's own statistics
//  4. attack and defense strength relative to the league mean
//  5. context: season progress, days rest, ordered-pair head to head
//  6. goal rate families and combined goal potential
//  7. head to head goal averages and flags
//  8. fill missing values with 0, fit and apply the standard scaler
//
// Every trailing statistic is computed over appearances strictly before the
// match it is attached to.
func EngineerFeatures(matches []*Match) ([]*FeatureRow, *StandardScaler, error) {
	if len(matches) == 0 {
		return nil, nil, fmt.Errorf("no matches to engineer features from")
	}

	sorted := make([]*Match, len(matches))
	copy(sorted, matches)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	// first rolling pass, aligned index-for-index with sorted
	rows := AddRollingFeatures(sorted, Config.RollingWindow)
	if len(rows) != len(sorted) {
		return nil, nil, fmt.Errorf("rolling pass returned %d rows for %d matches", len(rows), len(sorted))
	}

	// season date spans for the progress stage
	type seasonSpan struct {
		start int64
		end   int64
	}
	seasonSpans := make(map[string]seasonSpan)
	for _, m := range sorted {
		key := m.League + "|" + m.Season
		ts := m.Date.Unix()
		span, ok := seasonSpans[key]
		if !ok {
			seasonSpans[key] = seasonSpan{start: ts, end: ts}
			continue
		}
		if ts < span.start {
			span.start = ts
		}
		if ts > span.end {
			span.end = ts
		}
		seasonSpans[key] = span
	}

	homeHistory := make(map[string][]roleAppearance)
	awayHistory := make(map[string][]roleAppearance)
	lastPlayed := make(map[string]int64)
	pairHistory := make(map[string][]h2hMeeting)
	leagueGoalSum := make(map[string]float64)
	leagueGoalCount := make(map[string]int)

	for i, m := range sorted {
		fr := rows[i]

		// ===== Stage 1: base labels =====
		if m.IsFinished() {
			total := m.TotalGoals()
			fr.Result = m.Result()
			fr.TotalGoals = total
			fr.BTTS = 0
			if m.BothTeamsScored() {
				fr.BTTS = 1
			}
			fr.Over1p5 = overFlag(total, Config.Over1p5GoalsThreshold)
			fr.Over2p5 = overFlag(total, Config.Over2p5GoalsThreshold)
			fr.Over3p5 = overFlag(total, Config.Over3p5GoalsThreshold)
			fr.GoalDiff = m.FullTimeHomeGoals - m.FullTimeAwayGoals
		}

		// ===== Stage 2: windowed form families =====
		hh := homeHistory[m.HomeTeam]
		ah := awayHistory[m.AwayTeam]

		fr.HomeScoringForm3 = fillNaN(meanOf(tailAppearances(hh, 3), goalsForOf))
		fr.HomeScoringForm5 = fillNaN(meanOf(tailAppearances(hh, 5), goalsForOf))
		fr.HomeScoringForm10 = fillNaN(meanOf(tailAppearances(hh, 10), goalsForOf))
		fr.HomeConcedingForm3 = fillNaN(meanOf(tailAppearances(hh, 3), goalsAgainstOf))
		fr.HomeConcedingForm5 = fillNaN(meanOf(tailAppearances(hh, 5), goalsAgainstOf))
		fr.HomeConcedingForm10 = fillNaN(meanOf(tailAppearances(hh, 10), goalsAgainstOf))
		fr.HomeResultForm3 = fillNaN(meanOf(tailAppearances(hh, 3), resultOf))
		fr.HomeResultForm5 = fillNaN(meanOf(tailAppearances(hh, 5), resultOf))
		fr.HomeResultForm10 = fillNaN(meanOf(tailAppearances(hh, 10), resultOf))
		fr.HomeBTTSForm3 = fillNaN(meanOf(tailAppearances(hh, 3), bttsOf))
		fr.HomeBTTSForm5 = fillNaN(meanOf(tailAppearances(hh, 5), bttsOf))
		fr.HomeBTTSForm10 = fillNaN(meanOf(tailAppearances(hh, 10), bttsOf))
		fr.HomeOver1p5Form3 = fillNaN(meanOf(tailAppearances(hh, 3), over1p5Of))
		fr.HomeOver1p5Form5 = fillNaN(meanOf(tailAppearances(hh, 5), over1p5Of))
		fr.HomeOver1p5Form10 = fillNaN(meanOf(tailAppearances(hh, 10), over1p5Of))
		fr.HomeOver2p5Form3 = fillNaN(meanOf(tailAppearances(hh, 3), over2p5Of))
		fr.HomeOver2p5Form5 = fillNaN(meanOf(tailAppearances(hh, 5), over2p5Of))
		fr.HomeOver2p5Form10 = fillNaN(meanOf(tailAppearances(hh, 10), over2p5Of))

		fr.AwayScoringForm3 = fillNaN(meanOf(tailAppearances(ah, 3), goalsForOf))
		fr.AwayScoringForm5 = fillNaN(meanOf(tailAppearances(ah, 5), goalsForOf))
		fr.AwayScoringForm10 = fillNaN(meanOf(tailAppearances(ah, 10), goalsForOf))
		fr.AwayConcedingForm3 = fillNaN(meanOf(tailAppearances(ah, 3), goalsAgainstOf))
		fr.AwayConcedingForm5 = fillNaN(meanOf(tailAppearances(ah, 5), goalsAgainstOf))
		fr.AwayConcedingForm10 = fillNaN(meanOf(tailAppearances(ah, 10), goalsAgainstOf))
		fr.AwayResultForm3 = fillNaN(meanOf(tailAppearances(ah, 3), resultOf))
		fr.AwayResultForm5 = fillNaN(meanOf(tailAppearances(ah, 5), resultOf))
		fr.AwayResultForm10 = fillNaN(meanOf(tailAppearances(ah, 10), resultOf))
		fr.AwayBTTSForm3 = fillNaN(meanOf(tailAppearances(ah, 3), bttsOf))
		fr.AwayBTTSForm5 = fillNaN(meanOf(tailAppearances(ah, 5), bttsOf))
		fr.AwayBTTSForm10 = fillNaN(meanOf(tailAppearances(ah, 10), bttsOf))
		fr.AwayOver1p5Form3 = fillNaN(meanOf(tailAppearances(ah, 3), over1p5Of))
		fr.AwayOver1p5Form5 = fillNaN(meanOf(tailAppearances(ah, 5), over1p5Of))
		fr.AwayOver1p5Form10 = fillNaN(meanOf(tailAppearances(ah, 10), over1p5Of))
		fr.AwayOver2p5Form3 = fillNaN(meanOf(tailAppearances(ah, 3), over2p5Of))
		fr.AwayOver2p5Form5 = fillNaN(meanOf(tailAppearances(ah, 5), over2p5Of))
		fr.AwayOver2p5Form10 = fillNaN(meanOf(tailAppearances(ah, 10), over2p5Of))

		// ===== Stage 3: advanced metrics from this match's statistics =====
		fr.HomeShotAccuracy = safeRatio(m.HomeShotsOnTarget, m.HomeShots)
		fr.AwayShotAccuracy = safeRatio(m.AwayShotsOnTarget, m.AwayShots)
		fr.HomeGoalConversion = safeRatio(m.FullTimeHomeGoals, m.HomeShots)
		fr.AwayGoalConversion = safeRatio(m.FullTimeAwayGoals, m.AwayShots)
		fr.HomeXG = toyXG(m.HomeShots, m.HomeShotsOnTarget)
		fr.AwayXG = toyXG(m.AwayShots, m.AwayShotsOnTarget)

		// ===== Stage 5: context =====
		// elapsed fraction of the season's date span, 0 for a one-date season
		span := seasonSpans[m.League+"|"+m.Season]
		if span.end > span.start {
			fr.SeasonProgress = float64(m.Date.Unix()-span.start) / float64(span.end-span.start)
		}

		// Monday is 0
		fr.DayOfWeek = float64((int(m.Date.Weekday()) + 6) % 7)
		fr.Month = float64(m.Date.Month())

		fr.HomeDaysRest = daysRest(lastPlayed, m.HomeTeam, m.Date.Unix())
		fr.AwayDaysRest = daysRest(lastPlayed, m.AwayTeam, m.Date.Unix())

		meetings := pairHistory[pairKey(m.HomeTeam, m.AwayTeam)]
		applyH2H(fr, meetings)

		// ===== Stage 6: goal rate families =====
		fr.HomeScoringRate3 = fillNaN(meanOf(tailAppearances(hh, 3), goalsForOf))
		fr.HomeScoringRate5 = fillNaN(meanOf(tailAppearances(hh, 5), goalsForOf))
		fr.HomeScoringRate10 = fillNaN(meanOf(tailAppearances(hh, 10), goalsForOf))
		fr.HomeConcedingRate3 = fillNaN(meanOf(tailAppearances(hh, 3), goalsAgainstOf))
		fr.HomeConcedingRate5 = fillNaN(meanOf(tailAppearances(hh, 5), goalsAgainstOf))
		fr.HomeConcedingRate10 = fillNaN(meanOf(tailAppearances(hh, 10), goalsAgainstOf))
		fr.HomeTotalGoalsRate3 = fillNaN(meanOf(tailAppearances(hh, 3), totalGoalsOf))
		fr.HomeTotalGoalsRate5 = fillNaN(meanOf(tailAppearances(hh, 5), totalGoalsOf))
		fr.HomeTotalGoalsRate10 = fillNaN(meanOf(tailAppearances(hh, 10), totalGoalsOf))
		// spread of total match goals in recent appearances, not just
		// the team's own goals
		fr.HomeGoalsVariance3 = fillNaN(stdOf(tailAppearances(hh, 3), totalGoalsOf))
		fr.HomeGoalsVariance5 = fillNaN(stdOf(tailAppearances(hh, 5), totalGoalsOf))
		fr.HomeGoalsVariance10 = fillNaN(stdOf(tailAppearances(hh, 10), totalGoalsOf))

		fr.AwayScoringRate3 = fillNaN(meanOf(tailAppearances(ah, 3), goalsForOf))
		fr.AwayScoringRate5 = fillNaN(meanOf(tailAppearances(ah, 5), goalsForOf))
		fr.AwayScoringRate10 = fillNaN(meanOf(tailAppearances(ah, 10), goalsForOf))
		fr.AwayConcedingRate3 = fillNaN(meanOf(tailAppearances(ah, 3), goalsAgainstOf))
		fr.AwayConcedingRate5 = fillNaN(meanOf(tailAppearances(ah, 5), goalsAgainstOf))
		fr.AwayConcedingRate10 = fillNaN(meanOf(tailAppearances(ah, 10), goalsAgainstOf))
		fr.AwayTotalGoalsRate3 = fillNaN(meanOf(tailAppearances(ah, 3), totalGoalsOf))
		fr.AwayTotalGoalsRate5 = fillNaN(meanOf(tailAppearances(ah, 5), totalGoalsOf))
		fr.AwayTotalGoalsRate10 = fillNaN(meanOf(tailAppearances(ah, 10), totalGoalsOf))
		fr.AwayGoalsVariance3 = fillNaN(stdOf(tailAppearances(ah, 3), totalGoalsOf))
		fr.AwayGoalsVariance5 = fillNaN(stdOf(tailAppearances(ah, 5), totalGoalsOf))
		fr.AwayGoalsVariance10 = fillNaN(stdOf(tailAppearances(ah, 10), totalGoalsOf))

		if n := leagueGoalCount[m.League]; n > 0 {
			fr.LeagueAvgTotalGoals = leagueGoalSum[m.League] / float64(n)
		}
		fr.CombinedGoalPotential = (fr.HomeScoringRate5 + fr.AwayScoringRate5 +
			fr.HomeConcedingRate5 + fr.AwayConcedingRate5) / 4.0

		// ===== extend histories with this match =====
		if m.IsFinished() {
			homeHistory[m.HomeTeam] = append(homeHistory[m.HomeTeam], appearanceFor(m, true))
			awayHistory[m.AwayTeam] = append(awayHistory[m.AwayTeam], appearanceFor(m, false))
			lastPlayed[m.HomeTeam] = m.Date.Unix()
			lastPlayed[m.AwayTeam] = m.Date.Unix()
			key := pairKey(m.HomeTeam, m.AwayTeam)
			pairHistory[key] = append(pairHistory[key], h2hMeeting{
				homeGoals: m.FullTimeHomeGoals,
				awayGoals: m.FullTimeAwayGoals,
			})
			leagueGoalSum[m.League] += float64(m.TotalGoals())
			leagueGoalCount[m.League]++
		}
	}

	// ===== Stage 4: strength relative to the league mean =====
	applyStrength(rows)

	// ===== Stage 8: fit and apply the scaler =====
	scaler := NewStandardScaler(ScaledColumnNames())
	matrix := make([][]float64, len(rows))
	for i, fr := range rows {
		matrix[i] = fr.ScaledValues()
	}
	transformed, err := scaler.FitTransform(matrix)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fit scaler: %w", err)
	}
	for i, fr := range rows {
		if err := fr.SetScaledValues(transformed[i]); err != nil {
			return nil, nil, err
		}
	}

	logger.Info("Engineered feature rows", len(rows))
	return rows, scaler, nil
}

/////////////////////////////////////////////////////////////////////////
////// Stage Helpers
/////////////////////////////////////////////////////////////////////////

func goalsForOf(a roleAppearance) float64     { return a.goalsFor }
func goalsAgainstOf(a roleAppearance) float64 { return a.goalsAgainst }
func resultOf(a roleAppearance) float64       { return a.result }
func bttsOf(a roleAppearance) float64         { return a.btts }
func over1p5Of(a roleAppearance) float64      { return a.over1p5 }
func over2p5Of(a roleAppearance) float64      { return a.over2p5 }
func totalGoalsOf(a roleAppearance) float64   { return a.totalGoals }

// overFlag applies the strict greater-than convention, so exactly 2 goals
// sets the over 1.5 flag but not the over 2.5 flag
func overFlag(total int, threshold float64) int {
	if float64(total) > threshold {
		return 1
	}
	return 0
}

// safeRatio divides the two counts, yielding 0 when either is unusable
func safeRatio(numerator int, denominator int) float64 {
	if numerator < 0 || denominator <= 0 {
		return 0.0
	}
	return float64(numerator) / float64(denominator)
}

// toyXG is the crude shot-quality proxy used in place of real expected goals
func toyXG(shots int, shotsOnTarget int) float64 {
	if shots < 0 {
		shots = 0
	}
	if shotsOnTarget < 0 {
		shotsOnTarget = 0
	}
	return Config.XGShotsCoefficient*float64(shots) +
		Config.XGShotsOnTargetCoefficient*float64(shotsOnTarget)
}

// daysRest returns whole days since the team last played in either role,
// or 0 for a team with no recorded previous match
func daysRest(lastPlayed map[string]int64, team string, now int64) float64 {
	prev, ok := lastPlayed[team]
	if !ok {
		return 0.0
	}
	return math.Floor(float64(now-prev) / 86400.0)
}

// applyH2H writes the ordered-pair head to head aggregates onto the row.
// The orientation is never symmetrised, reverse fixtures are a separate key.
func applyH2H(fr *FeatureRow, meetings []h2hMeeting) {
	if len(meetings) == 0 {
		return
	}
	wins, btts := 0, 0
	homeGoals, awayGoals := 0, 0
	for _, meet := range meetings {
		if meet.homeGoals > meet.awayGoals {
			wins++
		}
		if meet.homeGoals > 0 && meet.awayGoals > 0 {
			btts++
		}
		homeGoals += meet.homeGoals
		awayGoals += meet.awayGoals
	}
	n := float64(len(meetings))
	fr.H2HHomeWinRate = float64(wins) / n
	fr.H2HBTTSRate = float64(btts) / n
	fr.H2HAvgHomeGoals = float64(homeGoals) / n
	fr.H2HAvgAwayGoals = float64(awayGoals) / n
	fr.H2HAvgTotalGoals = float64(homeGoals+awayGoals) / n
	if fr.H2HAvgTotalGoals > Config.Over1p5GoalsThreshold {
		fr.H2HOver1p5 = 1.0
	}
	if fr.H2HAvgTotalGoals > Config.Over2p5GoalsThreshold {
		fr.H2HOver2p5 = 1.0
	}
}

// applyStrength divides each side's window-5 scoring and conceding rates by
// the league mean of the same column. A zero league mean falls back to the
// configured sensible default denominator.
func applyStrength(rows []*FeatureRow) {
	type leagueMeans struct {
		homeScoring, homeConceding float64
		awayScoring, awayConceding float64
		count                      float64
	}
	byLeague := make(map[string]*leagueMeans)
	for _, fr := range rows {
		lm, ok := byLeague[fr.League]
		if !ok {
			lm = &leagueMeans{}
			byLeague[fr.League] = lm
		}
		lm.homeScoring += fr.HomeScoringForm5
		lm.homeConceding += fr.HomeConcedingForm5
		lm.awayScoring += fr.AwayScoringForm5
		lm.awayConceding += fr.AwayConcedingForm5
		lm.count++
	}

	div := func(v float64, sum float64, count float64) float64 {
		mean := 0.0
		if count > 0 {
			mean = sum / count
		}
		if mean == 0 {
			mean = Config.MakeSensibleDefault
		}
		return v / mean
	}

	for _, fr := range rows {
		lm := byLeague[fr.League]
		fr.HomeAttackStrength = div(fr.HomeScoringForm5, lm.homeScoring, lm.count)
		fr.HomeDefenseStrength = div(fr.HomeConcedingForm5, lm.homeConceding, lm.count)
		fr.AwayAttackStrength = div(fr.AwayScoringForm5, lm.awayScoring, lm.count)
		fr.AwayDefenseStrength = div(fr.AwayConcedingForm5, lm.awayConceding, lm.count)
	}
}
