package footy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// predictorFixture builds a predictor over two teams with sensible rates
func predictorFixture() *Predictor {
	d1 := time.Date(2025, 8, 1, 15, 0, 0, 0, time.UTC)
	d2 := d1.AddDate(0, 0, 7)

	older := &FeatureRow{
		MatchID: "old", Date: d1, League: "E0", Season: "2025/2026",
		HomeTeam: "Man United", AwayTeam: "Chelsea",
		HomeScoringRate5: 9.0, HomeConcedingRate5: 9.0,
		AwayScoringRate5: 9.0, AwayConcedingRate5: 9.0,
	}
	latest := &FeatureRow{
		MatchID: "new", Date: d2, League: "E0", Season: "2025/2026",
		HomeTeam: "Man United", AwayTeam: "Chelsea",
		HomeScoringRate5: 2.2, HomeConcedingRate5: 0.6,
		AwayScoringRate5: 0.9, AwayConcedingRate5: 1.8,
	}

	scaler := identityScaler()
	return NewPredictor([]*FeatureRow{older, latest}, scaler, DefaultScorers(scaler))
}

func TestPredictMatch(t *testing.T) {
	p := predictorFixture()

	prediction, err := p.PredictMatch("Man United", "Chelsea")
	require.NoError(t, err)
	require.NotNil(t, prediction)

	assert.Equal(t, "Man United", prediction.HomeTeam)
	assert.Equal(t, "Chelsea", prediction.AwayTeam)

	sum := prediction.Outcome.HomeWinProbability +
		prediction.Outcome.DrawProbability +
		prediction.Outcome.AwayWinProbability
	assert.InDelta(t, 1.0, sum, 1e-9)
	assert.Contains(t, []string{"H", "D", "A"}, prediction.Outcome.Label)

	// the latest row carries strong home rates, the stale 9-goal row must
	// not be the one served
	assert.Greater(t, prediction.Outcome.HomeWinProbability, prediction.Outcome.AwayWinProbability)

	for _, binary := range []BinaryPrediction{prediction.Over1p5, prediction.Over2p5, prediction.BTTS} {
		assert.GreaterOrEqual(t, binary.Probability, 0.0)
		assert.LessOrEqual(t, binary.Probability, 1.0)
		assert.Equal(t, binary.Probability > Config.BinaryDecisionThreshold, binary.Yes)
	}
}

func TestPredictMatchAppliesAliases(t *testing.T) {
	p := predictorFixture()

	prediction, err := p.PredictMatch("Manchester United", "Chelsea")
	require.NoError(t, err)
	assert.Equal(t, "Man United", prediction.HomeTeam)
}

func TestPredictMatchMissingTeam(t *testing.T) {
	p := predictorFixture()

	prediction, err := p.PredictMatch("Narnia", "Chelsea")
	assert.Nil(t, prediction)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingTeam)

	// Chelsea only has away-role rows, so it cannot play at home
	prediction, err = p.PredictMatch("Chelsea", "Man United")
	assert.Nil(t, prediction)
	assert.ErrorIs(t, err, ErrMissingTeam)
}

func TestPredictMatchesBatchContinues(t *testing.T) {
	p := predictorFixture()

	predictions := p.PredictMatches([][2]string{
		{"Man United", "Chelsea"},
		{"Narnia", "Chelsea"},
		{"Man United", "Chelsea"},
	})
	assert.Len(t, predictions, 2, "Bad fixtures must be skipped, not abort the batch")
}

func TestResolveTeam(t *testing.T) {
	p := predictorFixture()

	name, err := p.ResolveTeam("Manchester United FC")
	require.NoError(t, err)
	assert.Equal(t, "Man United", name)

	_, err = p.ResolveTeam("Real Madrid")
	assert.ErrorIs(t, err, ErrNoMatch)
}

func TestStandardiseTeamName(t *testing.T) {
	assert.Equal(t, "Man City", StandardiseTeamName("Manchester City"))
	assert.Equal(t, "Wolves", StandardiseTeamName("Wolverhampton Wanderers"))
	assert.Equal(t, "Arsenal", StandardiseTeamName("Arsenal"), "Unknown names pass through")
}

func TestOutcomeLabelTieBreak(t *testing.T) {
	assert.Equal(t, "H", outcomeLabel([]float64{0.4, 0.4, 0.2}), "Exact ties favour the home side")
	assert.Equal(t, "D", outcomeLabel([]float64{0.2, 0.5, 0.3}))
	assert.Equal(t, "A", outcomeLabel([]float64{0.1, 0.2, 0.7}))
}
