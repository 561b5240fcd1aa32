package footy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSeasonFormats(t *testing.T) {
	cases := map[string]string{
		"2024/2025": "2024/2025",
		"2024-2025": "2024/2025",
		"2024/25":   "2024/2025",
		"2024-25":   "2024/2025",
		"2425":      "2024/2025",
	}
	for input, expected := range cases {
		got, err := ParseSeason(input)
		require.NoError(t, err, "Failed to parse season %s", input)
		assert.Equal(t, expected, got, "Wrong parse for %s", input)
	}
}

func TestParseSeasonRejectsGarbage(t *testing.T) {
	_, err := ParseSeason("not a season")
	assert.Error(t, err)

	_, err = ParseSeason(nil)
	assert.Error(t, err)
}

func TestSeasonYears(t *testing.T) {
	first, err := GetFirstYear("2024/2025")
	require.NoError(t, err)
	assert.Equal(t, 2024, first)

	second, err := GetSecondYear("2024-25")
	require.NoError(t, err)
	assert.Equal(t, 2025, second)
}

func TestIsSameSeason(t *testing.T) {
	same, err := IsSameSeason("2024/2025", "2024-25")
	require.NoError(t, err)
	assert.True(t, same)

	same, err = IsSameSeason("2024/2025", "2023/2024")
	require.NoError(t, err)
	assert.False(t, same)
}

func TestSeasonPathCode(t *testing.T) {
	code, err := SeasonPathCode("2024/2025")
	require.NoError(t, err)
	assert.Equal(t, "2425", code)

	code, err = SeasonPathCode("2023-24")
	require.NoError(t, err)
	assert.Equal(t, "2324", code)
}
