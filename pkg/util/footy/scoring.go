package footy

import (
	"fmt"
	"math"
)

/////////////////////////////////////////////////////////////////////////
////// Scoring Functions
/////////////////////////////////////////////////////////////////////////

// ScoringFunc maps an assembled feature vector onto class probabilities.
// The predictor is agnostic to where the function came from: the built-in
// Poisson scorers below, or anything with the same shape. Multi-class
// scorers return one probability per class, binary scorers return
// [P(no), P(yes)]. Probabilities sum to 1.
type ScoringFunc func(features []float64) ([]float64, error)

// vectorIndex locates a FeatureRow column within the prediction vector
func vectorIndex(column string) int {
	for i, c := range FeatureVectorColumns() {
		if c == column {
			return i
		}
	}
	return -1
}

// expectedGoals recovers goal expectancies from a scaled feature vector.
// The vector carries standardised values, so the relevant rate entries are
// mapped back through the fitted scaler before being combined. Each side's
// expectancy blends its own scoring rate with the opposition's conceding
// rate over the last five role appearances.
func expectedGoals(features []float64, scaler *StandardScaler) (float64, float64, error) {
	unscale := func(column string) (float64, error) {
		i := vectorIndex(column)
		if i < 0 || i >= len(features) {
			return 0, fmt.Errorf("feature vector has no %s entry", column)
		}
		return scaler.Unscale(column, features[i])
	}

	homeScoring, err := unscale("homeScoringRate5")
	if err != nil {
		return 0, 0, err
	}
	awayConceding, err := unscale("awayConcedingRate5")
	if err != nil {
		return 0, 0, err
	}
	awayScoring, err := unscale("awayScoringRate5")
	if err != nil {
		return 0, 0, err
	}
	homeConceding, err := unscale("homeConcedingRate5")
	if err != nil {
		return 0, 0, err
	}

	lambdaHome := clampGoals((homeScoring + awayConceding) / 2.0)
	lambdaAway := clampGoals((awayScoring + homeConceding) / 2.0)
	return lambdaHome, lambdaAway, nil
}

// clampGoals keeps expected goals inside the configured floor and cap
func clampGoals(lambda float64) float64 {
	if lambda < Config.MinGoalsFloor {
		return Config.MinGoalsFloor
	}
	if lambda > Config.MaxGoalsCap {
		return Config.MaxGoalsCap
	}
	return lambda
}

// poissonPMF is the probability of exactly k goals at rate lambda
func poissonPMF(k int, lambda float64) float64 {
	if lambda == 0 {
		if k == 0 {
			return 1.0
		}
		return 0.0
	}
	logP := -lambda + float64(k)*math.Log(lambda)
	for i := 2; i <= k; i++ {
		logP -= math.Log(float64(i))
	}
	return math.Exp(logP)
}

// scorelineMatrix builds the joint scoreline probability matrix for the two
// expectancies, applies the Dixon-Coles low-score correction and renormalises
func scorelineMatrix(lambdaHome, lambdaAway float64) [][]float64 {
	size := Config.GoalRange
	matrix := make([][]float64, size)
	for h := 0; h < size; h++ {
		matrix[h] = make([]float64, size)
		ph := poissonPMF(h, lambdaHome)
		for a := 0; a < size; a++ {
			matrix[h][a] = ph * poissonPMF(a, lambdaAway)
		}
	}
	return dixonColesCorrection(matrix, lambdaHome, lambdaAway)
}

// dixonColesCorrection adjusts the four low-scoring cells where independent
// Poisson margins are known to misprice, then renormalises the matrix
func dixonColesCorrection(matrix [][]float64, homeExpected, awayExpected float64) [][]float64 {
	rho := GetDixonColesRho()

	if len(matrix) > 1 && len(matrix[0]) > 1 {
		matrix[0][0] *= calculateTau(0, 0, homeExpected, awayExpected, rho)
		matrix[1][0] *= calculateTau(1, 0, homeExpected, awayExpected, rho)
		matrix[0][1] *= calculateTau(0, 1, homeExpected, awayExpected, rho)
		matrix[1][1] *= calculateTau(1, 1, homeExpected, awayExpected, rho)
	}

	return renormalizeMatrix(matrix)
}

// calculateTau computes the Dixon-Coles correction factor for specific scorelines
func calculateTau(homeGoals, awayGoals int, lambda1, lambda2, rho float64) float64 {
	if homeGoals == 0 && awayGoals == 0 {
		return 1 - lambda1*lambda2*rho
	} else if homeGoals == 0 && awayGoals == 1 {
		return 1 + lambda1*rho
	} else if homeGoals == 1 && awayGoals == 0 {
		return 1 + lambda2*rho
	} else if homeGoals == 1 && awayGoals == 1 {
		return 1 - rho
	}
	return 1.0
}

// renormalizeMatrix ensures all probabilities sum to 1 after correction
func renormalizeMatrix(matrix [][]float64) [][]float64 {
	total := 0.0
	for i := range matrix {
		for j := range matrix[i] {
			total += matrix[i][j]
		}
	}
	if total > 0 {
		for i := range matrix {
			for j := range matrix[i] {
				matrix[i][j] /= total
			}
		}
	}
	return matrix
}

/////////////////////////////////////////////////////////////////////////
////// Built-in Scorers
/////////////////////////////////////////////////////////////////////////

// OutcomeScorer returns a scoring function producing [home, draw, away]
// probabilities from the lower triangle, diagonal and upper triangle of the
// corrected scoreline matrix
func OutcomeScorer(scaler *StandardScaler) ScoringFunc {
	return func(features []float64) ([]float64, error) {
		lambdaHome, lambdaAway, err := expectedGoals(features, scaler)
		if err != nil {
			return nil, err
		}
		matrix := scorelineMatrix(lambdaHome, lambdaAway)

		var homeWin, draw, awayWin float64
		for h := range matrix {
			for a := range matrix[h] {
				switch {
				case h > a:
					homeWin += matrix[h][a]
				case h == a:
					draw += matrix[h][a]
				default:
					awayWin += matrix[h][a]
				}
			}
		}
		return []float64{homeWin, draw, awayWin}, nil
	}
}

// OverGoalsScorer returns a scoring function producing [under, over]
// probabilities for the given total goals threshold
func OverGoalsScorer(scaler *StandardScaler, threshold float64) ScoringFunc {
	return func(features []float64) ([]float64, error) {
		lambdaHome, lambdaAway, err := expectedGoals(features, scaler)
		if err != nil {
			return nil, err
		}
		matrix := scorelineMatrix(lambdaHome, lambdaAway)

		over := 0.0
		for h := range matrix {
			for a := range matrix[h] {
				if float64(h+a) > threshold {
					over += matrix[h][a]
				}
			}
		}
		return []float64{1.0 - over, over}, nil
	}
}

// BTTSScorer returns a scoring function producing [no, yes] probabilities
// for both teams scoring
func BTTSScorer(scaler *StandardScaler) ScoringFunc {
	return func(features []float64) ([]float64, error) {
		lambdaHome, lambdaAway, err := expectedGoals(features, scaler)
		if err != nil {
			return nil, err
		}
		matrix := scorelineMatrix(lambdaHome, lambdaAway)

		both := 0.0
		for h := 1; h < len(matrix); h++ {
			for a := 1; a < len(matrix[h]); a++ {
				both += matrix[h][a]
			}
		}
		return []float64{1.0 - both, both}, nil
	}
}

// DefaultScorers wires the built-in Poisson scorers for every prediction
// task against the given fitted scaler
func DefaultScorers(scaler *StandardScaler) map[string]ScoringFunc {
	return map[string]ScoringFunc{
		TaskMatchOutcome: OutcomeScorer(scaler),
		TaskOver1p5:      OverGoalsScorer(scaler, Config.Over1p5GoalsThreshold),
		TaskOver2p5:      OverGoalsScorer(scaler, Config.Over2p5GoalsThreshold),
		TaskBTTS:         BTTSScorer(scaler),
	}
}
