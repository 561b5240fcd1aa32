package footy

import (
	"errors"
	"fmt"
	"sort"

	"github.com/richard-senior/footy/internal/logger"
)

/////////////////////////////////////////////////////////////////////////
////// Prediction Tasks and Errors
/////////////////////////////////////////////////////////////////////////

const (
	TaskMatchOutcome = "match_outcome"
	TaskOver1p5      = "over_1_5"
	TaskOver2p5      = "over_2_5"
	TaskBTTS         = "btts"
)

var (
	// ErrMissingTeam means a team has no feature rows in the role required
	ErrMissingTeam = errors.New("no feature rows for team in required role")
	// ErrNoMatch means a raw team name could not be reconciled to the roster
	ErrNoMatch = errors.New("team name could not be reconciled")
	// ErrUpstream means an external feed failed or returned garbage
	ErrUpstream = errors.New("upstream feed unavailable")
)

// teamAliases standardises the handful of display names the live feeds use
// that differ from the historical dataset's vocabulary. Unlike the matcher
// in teamnames.go this is an exact lookup, applied before any row queries.
var teamAliases = map[string]string{
	"Manchester City":         "Man City",
	"Manchester United":       "Man United",
	"Paris Saint-Germain":     "Paris SG",
	"Nottingham Forest":       "Nott'm Forest",
	"Wolverhampton Wanderers": "Wolves",
	"Tottenham Hotspur":       "Tottenham",
	"Brighton & Hove Albion":  "Brighton",
	"West Ham United":         "West Ham",
	"Newcastle United":        "Newcastle",
	"Sheffield United":        "Sheffield Utd",
	"Leeds United":            "Leeds",
	"Leicester City":          "Leicester",
}

// StandardiseTeamName applies the alias table, leaving unknown names alone
func StandardiseTeamName(name string) string {
	if canonical, ok := teamAliases[name]; ok {
		return canonical
	}
	return name
}

/////////////////////////////////////////////////////////////////////////
////// Prediction Results
/////////////////////////////////////////////////////////////////////////

// OutcomePrediction is the three-way result prediction
type OutcomePrediction struct {
	HomeWinProbability float64 `json:"homeWinProbability"`
	DrawProbability    float64 `json:"drawProbability"`
	AwayWinProbability float64 `json:"awayWinProbability"`
	Label              string  `json:"label"` // "H", "D" or "A"
}

// BinaryPrediction is a yes/no market prediction
type BinaryPrediction struct {
	Probability float64 `json:"probability"` // probability of the positive class
	Yes         bool    `json:"yes"`
}

// MatchPrediction aggregates every task's prediction for one fixture
type MatchPrediction struct {
	HomeTeam string            `json:"homeTeam"`
	AwayTeam string            `json:"awayTeam"`
	Outcome  OutcomePrediction `json:"outcome"`
	Over1p5  BinaryPrediction  `json:"over1p5"`
	Over2p5  BinaryPrediction  `json:"over2p5"`
	BTTS     BinaryPrediction  `json:"btts"`
}

/////////////////////////////////////////////////////////////////////////
////// Predictor
/////////////////////////////////////////////////////////////////////////

// Predictor serves predictions from an immutable snapshot of engineered
// feature rows, a fitted scaler and one scoring function per task.
// Construct once at startup and share read-only.
type Predictor struct {
	latestHome map[string]*FeatureRow
	latestAway map[string]*FeatureRow
	scaler     *StandardScaler
	scorers    map[string]ScoringFunc
	roster     []string
}

// NewPredictor indexes the feature rows by team and role, keeping each
// team's most recent row per role
func NewPredictor(rows []*FeatureRow, scaler *StandardScaler, scorers map[string]ScoringFunc) *Predictor {
	p := &Predictor{
		latestHome: make(map[string]*FeatureRow),
		latestAway: make(map[string]*FeatureRow),
		scaler:     scaler,
		scorers:    scorers,
	}

	names := make(map[string]bool)
	for _, fr := range rows {
		names[fr.HomeTeam] = true
		names[fr.AwayTeam] = true
		if prev, ok := p.latestHome[fr.HomeTeam]; !ok || fr.Date.After(prev.Date) {
			p.latestHome[fr.HomeTeam] = fr
		}
		if prev, ok := p.latestAway[fr.AwayTeam]; !ok || fr.Date.After(prev.Date) {
			p.latestAway[fr.AwayTeam] = fr
		}
	}

	for name := range names {
		p.roster = append(p.roster, name)
	}
	sort.Strings(p.roster)

	logger.Info("Predictor ready", "teams", len(p.roster), "rows", len(rows))
	return p
}

// Roster returns the canonical team names known to the predictor
func (p *Predictor) Roster() []string {
	return p.roster
}

// ResolveTeam reconciles a raw external team name against the roster
func (p *Predictor) ResolveTeam(raw string) (string, error) {
	name, ok := MatchTeamName(raw, p.roster)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrNoMatch, raw)
	}
	return name, nil
}

// PredictMatch produces every task's prediction for the given fixture.
// Team names pass through the alias table first; a side with no feature
// rows in its required role yields ErrMissingTeam.
func (p *Predictor) PredictMatch(home string, away string) (*MatchPrediction, error) {
	home = StandardiseTeamName(home)
	away = StandardiseTeamName(away)

	homeRow, ok := p.latestHome[home]
	if !ok {
		return nil, fmt.Errorf("%w: %s (home)", ErrMissingTeam, home)
	}
	awayRow, ok := p.latestAway[away]
	if !ok {
		return nil, fmt.Errorf("%w: %s (away)", ErrMissingTeam, away)
	}

	features := AssembleFeatureVector(homeRow.HomeRoleFeatures(), awayRow.AwayRoleFeatures())

	prediction := &MatchPrediction{
		HomeTeam: home,
		AwayTeam: away,
	}

	outcome, err := p.score(TaskMatchOutcome, features)
	if err != nil {
		return nil, err
	}
	if len(outcome) != 3 {
		return nil, fmt.Errorf("outcome scorer returned %d probabilities, want 3", len(outcome))
	}
	prediction.Outcome = OutcomePrediction{
		HomeWinProbability: outcome[0],
		DrawProbability:    outcome[1],
		AwayWinProbability: outcome[2],
		Label:              outcomeLabel(outcome),
	}

	for _, task := range []struct {
		name   string
		target *BinaryPrediction
	}{
		{TaskOver1p5, &prediction.Over1p5},
		{TaskOver2p5, &prediction.Over2p5},
		{TaskBTTS, &prediction.BTTS},
	} {
		probs, err := p.score(task.name, features)
		if err != nil {
			return nil, err
		}
		if len(probs) != 2 {
			return nil, fmt.Errorf("%s scorer returned %d probabilities, want 2", task.name, len(probs))
		}
		task.target.Probability = probs[1]
		task.target.Yes = probs[1] > Config.BinaryDecisionThreshold
	}

	return prediction, nil
}

// PredictMatches predicts a batch of [home, away] fixtures.
// Individual failures are logged and skipped, never aborting the batch.
func (p *Predictor) PredictMatches(pairs [][2]string) []*MatchPrediction {
	var out []*MatchPrediction
	for _, pair := range pairs {
		prediction, err := p.PredictMatch(pair[0], pair[1])
		if err != nil {
			logger.Warn("Skipping fixture", pair[0], pair[1], err)
			continue
		}
		out = append(out, prediction)
	}
	return out
}

// score runs the named task's scoring function
func (p *Predictor) score(task string, features []float64) ([]float64, error) {
	scorer, ok := p.scorers[task]
	if !ok {
		return nil, fmt.Errorf("no scoring function registered for task %s", task)
	}
	return scorer(features)
}

// outcomeLabel is the argmax over [home, draw, away]. Earlier classes keep
// ties, so an exact tie favours the home side.
func outcomeLabel(probs []float64) string {
	labels := []string{"H", "D", "A"}
	best := 0
	for i := 1; i < len(probs); i++ {
		if probs[i] > probs[best] {
			best = i
		}
	}
	return labels[best]
}
