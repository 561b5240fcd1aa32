package footy

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// makeTestMatch builds a finished match on the given day offset
func makeTestMatch(day int, home string, away string, homeGoals int, awayGoals int) *Match {
	return &Match{
		ID:                fmt.Sprintf("m-%s-%s-%d", home, away, day),
		Date:              time.Date(2025, 8, 1, 15, 0, 0, 0, time.UTC).AddDate(0, 0, day),
		League:            "E0",
		Season:            "2025/2026",
		Status:            "finished",
		HomeTeam:          home,
		AwayTeam:          away,
		FullTimeHomeGoals: homeGoals,
		FullTimeAwayGoals: awayGoals,
		HomeShots:         10,
		AwayShots:         8,
		HomeShotsOnTarget: 5,
		AwayShotsOnTarget: 3,
		HomeFouls:         9,
		AwayFouls:         11,
	}
}

func TestRollingFirstAppearanceHasNoForm(t *testing.T) {
	matches := []*Match{makeTestMatch(0, "Arsenal", "Chelsea", 2, 0)}
	rows := AddRollingFeatures(matches, 5)
	require.Len(t, rows, 1)

	// nothing prior to draw on, missing values are filled with 0
	assert.Zero(t, rows[0].HomeFormRating)
	assert.Zero(t, rows[0].HomeGoalsForAvg)
	assert.Zero(t, rows[0].AwayFormRating)
}

func TestRollingSecondAppearanceUsesFirstResult(t *testing.T) {
	matches := []*Match{
		makeTestMatch(0, "Arsenal", "Chelsea", 2, 0),
		makeTestMatch(7, "Arsenal", "Leeds", 1, 1),
	}
	rows := AddRollingFeatures(matches, 5)
	require.Len(t, rows, 2)

	// Arsenal won its only prior home appearance, so form is exactly 1.0
	second := rows[1]
	assert.Equal(t, 1.0, second.HomeFormRating)
	assert.Equal(t, 2.0, second.HomeGoalsForAvg)
	assert.Equal(t, 0.0, second.HomeGoalsAgainstAvg)
}

func TestRollingRolesAreIndependent(t *testing.T) {
	matches := []*Match{
		makeTestMatch(0, "Arsenal", "Chelsea", 3, 0), // home win
		makeTestMatch(7, "Leeds", "Arsenal", 2, 0),   // away loss
		makeTestMatch(14, "Everton", "Arsenal", 0, 0),
	}
	rows := AddRollingFeatures(matches, 5)
	require.Len(t, rows, 3)

	// the away appearance on day 14 only sees the day 7 away loss,
	// never the home win
	third := rows[2]
	assert.Equal(t, 0.0, third.AwayFormRating)
	assert.Equal(t, 0.0, third.AwayGoalsForAvg)
	assert.Equal(t, 2.0, third.AwayGoalsAgainstAvg)
}

func TestRollingNoLookAhead(t *testing.T) {
	base := []*Match{
		makeTestMatch(0, "Arsenal", "Chelsea", 2, 0),
		makeTestMatch(7, "Arsenal", "Leeds", 1, 1),
		makeTestMatch(14, "Arsenal", "Everton", 0, 5),
	}
	before := AddRollingFeatures(base, 5)

	// rewriting the future must not move the past
	altered := []*Match{
		makeTestMatch(0, "Arsenal", "Chelsea", 2, 0),
		makeTestMatch(7, "Arsenal", "Leeds", 1, 1),
		makeTestMatch(14, "Arsenal", "Everton", 9, 0),
	}
	after := AddRollingFeatures(altered, 5)

	for i := 0; i < 2; i++ {
		assert.Equal(t, before[i].HomeFormRating, after[i].HomeFormRating, "Row %d changed", i)
		assert.Equal(t, before[i].HomeGoalsForAvg, after[i].HomeGoalsForAvg, "Row %d changed", i)
		assert.Equal(t, before[i].HomeGoalsAgainstAvg, after[i].HomeGoalsAgainstAvg, "Row %d changed", i)
	}
}

func TestRollingWindowLimitsHistory(t *testing.T) {
	// five prior home wins then two prior home losses, window 2 sees only losses
	var matches []*Match
	for i := 0; i < 5; i++ {
		matches = append(matches, makeTestMatch(i*7, "Arsenal", "Chelsea", 1, 0))
	}
	matches = append(matches, makeTestMatch(35, "Arsenal", "Leeds", 0, 2))
	matches = append(matches, makeTestMatch(42, "Arsenal", "Everton", 0, 1))
	matches = append(matches, makeTestMatch(49, "Arsenal", "Fulham", 0, 0))

	rows := AddRollingFeatures(matches, 2)
	last := rows[len(rows)-1]
	assert.Equal(t, 0.0, last.HomeFormRating, "Window should only see the two losses")
}

func TestRollingZeroShotGamesSkippedInAccuracy(t *testing.T) {
	noShots := makeTestMatch(0, "Arsenal", "Chelsea", 1, 0)
	noShots.HomeShots = 0
	noShots.HomeShotsOnTarget = 0

	withShots := makeTestMatch(7, "Arsenal", "Leeds", 1, 0)
	withShots.HomeShots = 4
	withShots.HomeShotsOnTarget = 2

	matches := []*Match{
		noShots,
		withShots,
		makeTestMatch(14, "Arsenal", "Everton", 1, 0),
	}
	rows := AddRollingFeatures(matches, 5)

	// after the zero-shot game alone there is nothing valid to average
	assert.Equal(t, 0.0, rows[1].HomeShotAccuracyAvg)
	// the zero-shot game is skipped, not treated as 0 accuracy
	assert.InDelta(t, 0.5, rows[2].HomeShotAccuracyAvg, 0.0001)
}

func TestRollingScheduledMatchesGetFeaturesButNoHistory(t *testing.T) {
	future := makeTestMatch(7, "Arsenal", "Leeds", -1, -1)
	future.Status = "scheduled"
	later := makeTestMatch(14, "Arsenal", "Everton", 1, 0)

	matches := []*Match{
		makeTestMatch(0, "Arsenal", "Chelsea", 2, 0),
		future,
		later,
	}
	rows := AddRollingFeatures(matches, 5)
	require.Len(t, rows, 3)

	// the scheduled match sees the day 0 win
	assert.Equal(t, 1.0, rows[1].HomeFormRating)
	// and contributes nothing itself, so day 14 still averages one win
	assert.Equal(t, 1.0, rows[2].HomeFormRating)
	assert.Equal(t, 2.0, rows[2].HomeGoalsForAvg)
}
