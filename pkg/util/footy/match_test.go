package footy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCSV = `Div,Date,HomeTeam,AwayTeam,FTHG,FTAG,FTR,HTHG,HTAG,HS,AS,HST,AST,HC,AC,HF,AF,HY,AY,HR,AR,B365H,B365D,B365A
E0,16/08/2025,Arsenal,Chelsea,2,1,H,1,0,14,9,6,3,7,4,10,12,1,2,0,0,1.85,3.6,4.2
E0,17/08/2025,West Ham,Man City,0,3,A,0,1,5,18,2,9,3,8,11,8,2,1,0,0,5.5,4.0,1.6
E0,bad-date,Leeds,Everton,1,1,D,0,0,10,10,4,4,5,5,9,9,0,0,0,0,3.0,3.2,2.4
`

func TestParseMatchesCSV(t *testing.T) {
	matches, err := ParseMatchesCSV([]byte(testCSV), "E0", "2025/2026")
	require.NoError(t, err)
	// the bad-date row is skipped, not fatal
	require.Len(t, matches, 2)

	m := matches[0]
	assert.NotEmpty(t, m.ID, "Rows should be assigned ids")
	assert.Equal(t, "E0", m.League)
	assert.Equal(t, "2025/2026", m.Season)
	assert.Equal(t, time.Date(2025, 8, 16, 0, 0, 0, 0, time.UTC), m.Date)
	assert.Equal(t, "Arsenal", m.HomeTeam)
	assert.Equal(t, "Chelsea", m.AwayTeam)
	assert.Equal(t, 2, m.FullTimeHomeGoals)
	assert.Equal(t, 1, m.FullTimeAwayGoals)
	assert.Equal(t, "H", m.FullTimeResult)
	assert.Equal(t, 14, m.HomeShots)
	assert.Equal(t, 6, m.HomeShotsOnTarget)
	assert.Equal(t, 12, m.AwayFouls)
	assert.InDelta(t, 1.85, m.HomeOdds, 0.0001)
	assert.Equal(t, "finished", m.Status)
}

func TestParseMatchesCSVMissingColumns(t *testing.T) {
	_, err := ParseMatchesCSV([]byte("Div,Date\nE0,16/08/2025\n"), "E0", "2025/2026")
	assert.Error(t, err, "CSV without team columns should fail")
}

func TestParseMatchesCSVShortDates(t *testing.T) {
	csv := "Date,HomeTeam,AwayTeam,FTHG,FTAG\n16/08/25,Arsenal,Chelsea,1,0\n"
	matches, err := ParseMatchesCSV([]byte(csv), "E0", "2025/2026")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, 2025, matches[0].Date.Year())
	// columns absent from the file default to -1
	assert.Equal(t, -1, matches[0].HomeShots)
}

func TestMatchDerivedData(t *testing.T) {
	m := &Match{FullTimeHomeGoals: 2, FullTimeAwayGoals: 2}
	assert.True(t, m.IsFinished())
	assert.Equal(t, "D", m.Result())
	assert.Equal(t, 4, m.TotalGoals())
	assert.True(t, m.BothTeamsScored())

	scheduled := &Match{FullTimeHomeGoals: -1, FullTimeAwayGoals: -1}
	assert.False(t, scheduled.IsFinished())
	assert.Equal(t, "", scheduled.Result())
	assert.Equal(t, -1, scheduled.TotalGoals())
}
