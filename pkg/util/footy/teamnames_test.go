package footy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testRoster = []string{"Man City", "Man United", "Arsenal", "Paris SG", "Nott'm Forest", "West Ham"}

func TestMatchTeamNameOverrides(t *testing.T) {
	// overrides fire before any normalisation strategy
	name, ok := MatchTeamName("Manchester City FC", testRoster)
	require.True(t, ok)
	assert.Equal(t, "Man City", name)

	name, ok = MatchTeamName("Manchester United", testRoster)
	require.True(t, ok)
	assert.Equal(t, "Man United", name)

	name, ok = MatchTeamName("Paris Saint-Germain FC", testRoster)
	require.True(t, ok)
	assert.Equal(t, "Paris SG", name)
}

func TestMatchTeamNameExact(t *testing.T) {
	name, ok := MatchTeamName("Arsenal FC", testRoster)
	require.True(t, ok)
	assert.Equal(t, "Arsenal", name)

	// suffix tokens and case never matter
	name, ok = MatchTeamName("ARSENAL afc", testRoster)
	require.True(t, ok)
	assert.Equal(t, "Arsenal", name)
}

func TestMatchTeamNameExactBeatsLooserStrategies(t *testing.T) {
	// "Bristol Forest Green Harriers" sorts first and would win both the
	// substring scan and the word overlap scan, but the exact match on
	// "Forest Green" must short-circuit before either runs
	roster := []string{"Bristol Forest Green Harriers", "Forest Green"}
	name, ok := MatchTeamName("Forest Green FC", roster)
	require.True(t, ok)
	assert.Equal(t, "Forest Green", name)
}

func TestMatchTeamNameSubstring(t *testing.T) {
	name, ok := MatchTeamName("Arsenal London", testRoster)
	require.True(t, ok)
	assert.Equal(t, "Arsenal", name)
}

func TestMatchTeamNameWordOverlap(t *testing.T) {
	name, ok := MatchTeamName("The Forest", testRoster)
	require.True(t, ok)
	assert.Equal(t, "Nott'm Forest", name)
}

func TestMatchTeamNameNotFound(t *testing.T) {
	_, ok := MatchTeamName("Real Madrid", testRoster)
	assert.False(t, ok, "Unknown team should not resolve")

	_, ok = MatchTeamName("", testRoster)
	assert.False(t, ok)

	_, ok = MatchTeamName("Arsenal", nil)
	assert.False(t, ok)
}

func TestMatchTeamNameDeterministicUnderRosterOrder(t *testing.T) {
	shuffled := []string{"West Ham", "Nott'm Forest", "Paris SG", "Arsenal", "Man United", "Man City"}
	for _, raw := range []string{"Manchester City", "Arsenal London", "The Forest", "West Ham United"} {
		a, okA := MatchTeamName(raw, testRoster)
		b, okB := MatchTeamName(raw, shuffled)
		assert.Equal(t, okA, okB, "Roster order changed resolvability for %s", raw)
		assert.Equal(t, a, b, "Roster order changed resolution for %s", raw)
	}
}

func TestMatchTeamNameOverrideTargetMissing(t *testing.T) {
	// when the override's canonical name is not in the roster the remaining
	// strategies still get a chance
	_, ok := MatchTeamName("Manchester City", []string{"Arsenal"})
	assert.False(t, ok)
}

func TestNormalizeTeamName(t *testing.T) {
	assert.Equal(t, "arsenal", NormalizeTeamName("Arsenal FC"))
	assert.Equal(t, "nottm forest", NormalizeTeamName("Nott'm Forest"))
	assert.Equal(t, "west ham", NormalizeTeamName("West Ham United"))
	assert.Equal(t, "willem ii", NormalizeTeamName("Willem II Tilburg"))
}
