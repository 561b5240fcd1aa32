package footy

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// a small but varied fixture set, two rounds of three fixtures plus a repeat
// of the opening pairing for head to head coverage
func engineeringFixtures() []*Match {
	return []*Match{
		makeTestMatch(0, "Arsenal", "Chelsea", 2, 0),
		makeTestMatch(0, "Leeds", "Everton", 1, 1),
		makeTestMatch(1, "Fulham", "Brentford", 0, 3),
		makeTestMatch(7, "Chelsea", "Arsenal", 1, 2),
		makeTestMatch(7, "Everton", "Fulham", 2, 2),
		makeTestMatch(8, "Brentford", "Leeds", 1, 0),
		makeTestMatch(14, "Arsenal", "Chelsea", 1, 1),
		makeTestMatch(14, "Leeds", "Fulham", 3, 1),
	}
}

func TestEngineerFeaturesLabels(t *testing.T) {
	rows, _, err := EngineerFeatures(engineeringFixtures())
	require.NoError(t, err)
	require.Len(t, rows, 8)

	// 1-1 on day 0: exactly 2 goals trips over 1.5 but not over 2.5
	var leedsEverton *FeatureRow
	for _, fr := range rows {
		if fr.HomeTeam == "Leeds" && fr.AwayTeam == "Everton" {
			leedsEverton = fr
		}
	}
	require.NotNil(t, leedsEverton)
	assert.Equal(t, 2, leedsEverton.TotalGoals)
	assert.Equal(t, 1, leedsEverton.BTTS)
	assert.Equal(t, 1, leedsEverton.Over1p5)
	assert.Equal(t, 0, leedsEverton.Over2p5)
	assert.Equal(t, 0, leedsEverton.Over3p5)
	assert.Equal(t, 0, leedsEverton.GoalDiff)
	assert.Equal(t, "D", leedsEverton.Result)

	// 0-3 on day 1: signed home margin
	var fulhamBrentford *FeatureRow
	for _, fr := range rows {
		if fr.HomeTeam == "Fulham" && fr.AwayTeam == "Brentford" {
			fulhamBrentford = fr
		}
	}
	require.NotNil(t, fulhamBrentford)
	assert.Equal(t, -3, fulhamBrentford.GoalDiff)
}

func TestEngineerFeaturesDeterministic(t *testing.T) {
	first, _, err := EngineerFeatures(engineeringFixtures())
	require.NoError(t, err)
	second, _, err := EngineerFeatures(engineeringFixtures())
	require.NoError(t, err)
	require.Len(t, second, len(first))

	for i := range first {
		assert.Equal(t, first[i].MatchID, second[i].MatchID)
		assert.Equal(t, first[i].ScaledValues(), second[i].ScaledValues(),
			"Run to run drift in row %s", first[i].MatchID)
	}
}

func TestEngineerFeaturesScaledColumns(t *testing.T) {
	rows, scaler, err := EngineerFeatures(engineeringFixtures())
	require.NoError(t, err)
	require.True(t, scaler.IsFitted())

	// every scaled column should have mean ~0, and unit variance unless the
	// raw column was constant
	width := len(ScaledColumnNames())
	n := float64(len(rows))
	for c := 0; c < width; c++ {
		sum := 0.0
		for _, fr := range rows {
			sum += fr.ScaledValues()[c]
		}
		mean := sum / n
		assert.InDelta(t, 0.0, mean, 1e-9, "Column %s not centred", ScaledColumnNames()[c])

		varSum := 0.0
		for _, fr := range rows {
			d := fr.ScaledValues()[c] - mean
			varSum += d * d
		}
		variance := varSum / n
		if scaler.Stds[c] != 1.0 || variance != 0.0 {
			assert.InDelta(t, 1.0, variance, 1e-9, "Column %s not unit variance", ScaledColumnNames()[c])
		}
	}
}

func TestSeasonProgressFollowsDates(t *testing.T) {
	rows, _, err := EngineerFeatures(engineeringFixtures())
	require.NoError(t, err)

	idx := -1
	for i, name := range ScaledColumnNames() {
		if name == "seasonProgress" {
			idx = i
		}
	}
	require.GreaterOrEqual(t, idx, 0, "seasonProgress must be a scaled column")

	progress := func(home string, away string) float64 {
		for _, fr := range rows {
			if fr.HomeTeam == home && fr.AwayTeam == away {
				return fr.ScaledValues()[idx]
			}
		}
		t.Fatalf("no row for %s v %s", home, away)
		return 0
	}

	// fixtures on the same date share the same progress value
	assert.Equal(t, progress("Arsenal", "Chelsea"), progress("Leeds", "Everton"),
		"Opening day fixtures must share one progress value")
	assert.Equal(t, progress("Chelsea", "Arsenal"), progress("Everton", "Fulham"),
		"Same-date fixtures must share one progress value")

	// progress is the elapsed fraction of the season's date span
	assert.Less(t, progress("Arsenal", "Chelsea"), progress("Chelsea", "Arsenal"))
	assert.Less(t, progress("Chelsea", "Arsenal"), progress("Leeds", "Fulham"))
}

func TestGoalsVarianceTracksTotalGoals(t *testing.T) {
	// Arsenal's first two home games finish 2-0 and 0-2: own goals vary
	// but total match goals hold constant at 2
	matches := []*Match{
		makeTestMatch(0, "Arsenal", "Chelsea", 2, 0),
		makeTestMatch(7, "Arsenal", "Leeds", 0, 2),
		makeTestMatch(14, "Arsenal", "Everton", 1, 1),
	}
	rows, scaler, err := EngineerFeatures(matches)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	idx := -1
	for i, name := range ScaledColumnNames() {
		if name == "homeGoalsVariance5" {
			idx = i
		}
	}
	require.GreaterOrEqual(t, idx, 0, "homeGoalsVariance5 must be a scaled column")

	raw, err := scaler.Unscale("homeGoalsVariance5", rows[2].ScaledValues()[idx])
	require.NoError(t, err)
	assert.InDelta(t, 0.0, raw, 1e-9,
		"Constant total goals must yield a zero variance even when goals for vary")
}

func TestCalendarContextFeatures(t *testing.T) {
	rows, scaler, err := EngineerFeatures(engineeringFixtures())
	require.NoError(t, err)

	dowIdx, monthIdx := -1, -1
	for i, name := range ScaledColumnNames() {
		switch name {
		case "dayOfWeek":
			dowIdx = i
		case "month":
			monthIdx = i
		}
	}
	require.GreaterOrEqual(t, dowIdx, 0, "dayOfWeek must be a scaled column")
	require.GreaterOrEqual(t, monthIdx, 0, "month must be a scaled column")

	// opening day is Friday 1st August 2025, Monday-based index 4
	dow, err := scaler.Unscale("dayOfWeek", rows[0].ScaledValues()[dowIdx])
	require.NoError(t, err)
	assert.InDelta(t, 4.0, dow, 1e-9)

	month, err := scaler.Unscale("month", rows[0].ScaledValues()[monthIdx])
	require.NoError(t, err)
	assert.InDelta(t, 8.0, month, 1e-9)
}

func TestOverFlagStrictness(t *testing.T) {
	assert.Equal(t, 1, overFlag(2, Config.Over1p5GoalsThreshold))
	assert.Equal(t, 0, overFlag(2, Config.Over2p5GoalsThreshold))
	assert.Equal(t, 1, overFlag(3, Config.Over2p5GoalsThreshold))
	assert.Equal(t, 0, overFlag(0, Config.Over1p5GoalsThreshold))
}

func TestSafeRatio(t *testing.T) {
	assert.InDelta(t, 0.5, safeRatio(2, 4), 0.0001)
	assert.Zero(t, safeRatio(2, 0), "Division by zero must yield 0")
	assert.Zero(t, safeRatio(-1, 4), "Unknown counts must yield 0")
}

func TestToyXG(t *testing.T) {
	// 0.1 per shot plus 0.3 per shot on target
	assert.InDelta(t, 10*0.1+5*0.3, toyXG(10, 5), 0.0001)
	assert.Zero(t, toyXG(-1, -1))
}

func TestApplyH2HOrderedPair(t *testing.T) {
	fr := &FeatureRow{}
	applyH2H(fr, []h2hMeeting{
		{homeGoals: 2, awayGoals: 0},
		{homeGoals: 1, awayGoals: 1},
	})

	assert.InDelta(t, 0.5, fr.H2HHomeWinRate, 0.0001)
	assert.InDelta(t, 0.5, fr.H2HBTTSRate, 0.0001)
	assert.InDelta(t, 1.5, fr.H2HAvgHomeGoals, 0.0001)
	assert.InDelta(t, 0.5, fr.H2HAvgAwayGoals, 0.0001)
	assert.InDelta(t, 2.0, fr.H2HAvgTotalGoals, 0.0001)
	assert.Equal(t, 1.0, fr.H2HOver1p5)
	assert.Equal(t, 0.0, fr.H2HOver2p5)

	// no prior meetings leaves everything at zero
	empty := &FeatureRow{}
	applyH2H(empty, nil)
	assert.Zero(t, empty.H2HHomeWinRate)
	assert.Zero(t, empty.H2HAvgTotalGoals)
}

func TestDaysRest(t *testing.T) {
	lastPlayed := map[string]int64{"Arsenal": 0}
	assert.Equal(t, 7.0, daysRest(lastPlayed, "Arsenal", 7*86400))
	assert.Equal(t, 0.0, daysRest(lastPlayed, "Leeds", 7*86400), "Unknown team has no rest measure")
}

func TestEngineerFeaturesRejectsEmptyInput(t *testing.T) {
	_, _, err := EngineerFeatures(nil)
	assert.Error(t, err)
}

func TestStdOf(t *testing.T) {
	apps := []roleAppearance{
		{goalsFor: 1},
		{goalsFor: 3},
	}
	// sample std of {1,3} is sqrt(2)
	assert.InDelta(t, math.Sqrt2, stdOf(apps, goalsForOf), 0.0001)

	// a single value has no spread to measure
	assert.True(t, math.IsNaN(stdOf(apps[:1], goalsForOf)))
}
