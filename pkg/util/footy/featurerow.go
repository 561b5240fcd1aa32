package footy

import (
	"fmt"
	"reflect"
	"strings"
	"time"
)

// Compile-time check to ensure FeatureRow implements Persistable interface
var _ Persistable = (*FeatureRow)(nil)

// FeatureRow is one engineered record per match. Columns tagged scale:"true"
// are the numeric features standardised together in the final pipeline stage,
// everything else is identity or label data and is stored as-is.
//
// Home* and Away* feature pairs describe the same construction applied to the
// respective side, so the pair mirrors the RoleFeatures projection below.
type FeatureRow struct {
	// Identity
	MatchID  string    `json:"matchId" column:"matchId" dbtype:"TEXT" primary:"true" index:"true"`
	Date     time.Time `json:"date" column:"date" dbtype:"DATETIME" index:"true"`
	League   string    `json:"league" column:"league" dbtype:"TEXT" index:"true"`
	Season   string    `json:"season" column:"season" dbtype:"TEXT" index:"true"`
	HomeTeam string    `json:"homeTeam" column:"homeTeam" dbtype:"TEXT NOT NULL" index:"true"`
	AwayTeam string    `json:"awayTeam" column:"awayTeam" dbtype:"TEXT NOT NULL" index:"true"`

	// Labels (derived from the final score, never scaled)
	Result     string `json:"result" column:"result" dbtype:"TEXT"`
	TotalGoals int    `json:"totalGoals" column:"totalGoals" dbtype:"INTEGER DEFAULT -1"`
	BTTS       int    `json:"btts" column:"btts" dbtype:"INTEGER DEFAULT -1"`
	Over1p5    int    `json:"over1p5" column:"over1p5" dbtype:"INTEGER DEFAULT -1"`
	Over2p5    int    `json:"over2p5" column:"over2p5" dbtype:"INTEGER DEFAULT -1"`
	Over3p5    int    `json:"over3p5" column:"over3p5" dbtype:"INTEGER DEFAULT -1"`
	GoalDiff   int    `json:"goalDiff" column:"goalDiff" dbtype:"INTEGER DEFAULT 0"`

	// Trailing-window form over prior appearances in role
	HomeFormRating      float64 `json:"homeFormRating" column:"homeFormRating" dbtype:"REAL DEFAULT 0.0" scale:"true"`
	HomeGoalsForAvg     float64 `json:"homeGoalsForAvg" column:"homeGoalsForAvg" dbtype:"REAL DEFAULT 0.0" scale:"true"`
	HomeGoalsAgainstAvg float64 `json:"homeGoalsAgainstAvg" column:"homeGoalsAgainstAvg" dbtype:"REAL DEFAULT 0.0" scale:"true"`
	HomeShotAccuracyAvg float64 `json:"homeShotAccuracyAvg" column:"homeShotAccuracyAvg" dbtype:"REAL DEFAULT 0.0" scale:"true"`
	HomeFoulsAvg        float64 `json:"homeFoulsAvg" column:"homeFoulsAvg" dbtype:"REAL DEFAULT 0.0" scale:"true"`
	AwayFormRating      float64 `json:"awayFormRating" column:"awayFormRating" dbtype:"REAL DEFAULT 0.0" scale:"true"`
	AwayGoalsForAvg     float64 `json:"awayGoalsForAvg" column:"awayGoalsForAvg" dbtype:"REAL DEFAULT 0.0" scale:"true"`
	AwayGoalsAgainstAvg float64 `json:"awayGoalsAgainstAvg" column:"awayGoalsAgainstAvg" dbtype:"REAL DEFAULT 0.0" scale:"true"`
	AwayShotAccuracyAvg float64 `json:"awayShotAccuracyAvg" column:"awayShotAccuracyAvg" dbtype:"REAL DEFAULT 0.0" scale:"true"`
	AwayFoulsAvg        float64 `json:"awayFoulsAvg" column:"awayFoulsAvg" dbtype:"REAL DEFAULT 0.0" scale:"true"`

	// Windowed form families at 3, 5 and 10 prior role appearances
	HomeScoringForm3    float64 `json:"homeScoringForm3" column:"homeScoringForm3" dbtype:"REAL DEFAULT 0.0" scale:"true"`
	HomeScoringForm5    float64 `json:"homeScoringForm5" column:"homeScoringForm5" dbtype:"REAL DEFAULT 0.0" scale:"true"`
	HomeScoringForm10   float64 `json:"homeScoringForm10" column:"homeScoringForm10" dbtype:"REAL DEFAULT 0.0" scale:"true"`
	HomeConcedingForm3  float64 `json:"homeConcedingForm3" column:"homeConcedingForm3" dbtype:"REAL DEFAULT 0.0" scale:"true"`
	HomeConcedingForm5  float64 `json:"homeConcedingForm5" column:"homeConcedingForm5" dbtype:"REAL DEFAULT 0.0" scale:"true"`
	HomeConcedingForm10 float64 `json:"homeConcedingForm10" column:"homeConcedingForm10" dbtype:"REAL DEFAULT 0.0" scale:"true"`
	HomeResultForm3     float64 `json:"homeResultForm3" column:"homeResultForm3" dbtype:"REAL DEFAULT 0.0" scale:"true"`
	HomeResultForm5     float64 `json:"homeResultForm5" column:"homeResultForm5" dbtype:"REAL DEFAULT 0.0" scale:"true"`
	HomeResultForm10    float64 `json:"homeResultForm10" column:"homeResultForm10" dbtype:"REAL DEFAULT 0.0" scale:"true"`
	HomeBTTSForm3       float64 `json:"homeBttsForm3" column:"homeBttsForm3" dbtype:"REAL DEFAULT 0.0" scale:"true"`
	HomeBTTSForm5       float64 `json:"homeBttsForm5" column:"homeBttsForm5" dbtype:"REAL DEFAULT 0.0" scale:"true"`
	HomeBTTSForm10      float64 `json:"homeBttsForm10" column:"homeBttsForm10" dbtype:"REAL DEFAULT 0.0" scale:"true"`
	HomeOver1p5Form3    float64 `json:"homeOver1p5Form3" column:"homeOver1p5Form3" dbtype:"REAL DEFAULT 0.0" scale:"true"`
	HomeOver1p5Form5    float64 `json:"homeOver1p5Form5" column:"homeOver1p5Form5" dbtype:"REAL DEFAULT 0.0" scale:"true"`
	HomeOver1p5Form10   float64 `json:"homeOver1p5Form10" column:"homeOver1p5Form10" dbtype:"REAL DEFAULT 0.0" scale:"true"`
	HomeOver2p5Form3    float64 `json:"homeOver2p5Form3" column:"homeOver2p5Form3" dbtype:"REAL DEFAULT 0.0" scale:"true"`
	HomeOver2p5Form5    float64 `json:"homeOver2p5Form5" column:"homeOver2p5Form5" dbtype:"REAL DEFAULT 0.0" scale:"true"`
	HomeOver2p5Form10   float64 `json:"homeOver2p5Form10" column:"homeOver2p5Form10" dbtype:"REAL DEFAULT 0.0" scale:"true"`
	AwayScoringForm3    float64 `json:"awayScoringForm3" column:"awayScoringForm3" dbtype:"REAL DEFAULT 0.0" scale:"true"`
	AwayScoringForm5    float64 `json:"awayScoringForm5" column:"awayScoringForm5" dbtype:"REAL DEFAULT 0.0" scale:"true"`
	AwayScoringForm10   float64 `json:"awayScoringForm10" column:"awayScoringForm10" dbtype:"REAL DEFAULT 0.0" scale:"true"`
	AwayConcedingForm3  float64 `json:"awayConcedingForm3" column:"awayConcedingForm3" dbtype:"REAL DEFAULT 0.0" scale:"true"`
	AwayConcedingForm5  float64 `json:"awayConcedingForm5" column:"awayConcedingForm5" dbtype:"REAL DEFAULT 0.0" scale:"true"`
	AwayConcedingForm10 float64 `json:"awayConcedingForm10" column:"awayConcedingForm10" dbtype:"REAL DEFAULT 0.0" scale:"true"`
	AwayResultForm3     float64 `json:"awayResultForm3" column:"awayResultForm3" dbtype:"REAL DEFAULT 0.0" scale:"true"`
	AwayResultForm5     float64 `json:"awayResultForm5" column:"awayResultForm5" dbtype:"REAL DEFAULT 0.0" scale:"true"`
	AwayResultForm10    float64 `json:"awayResultForm10" column:"awayResultForm10" dbtype:"REAL DEFAULT 0.0" scale:"true"`
	AwayBTTSForm3       float64 `json:"awayBttsForm3" column:"awayBttsForm3" dbtype:"REAL DEFAULT 0.0" scale:"true"`
	AwayBTTSForm5       float64 `json:"awayBttsForm5" column:"awayBttsForm5" dbtype:"REAL DEFAULT 0.0" scale:"true"`
	AwayBTTSForm10      float64 `json:"awayBttsForm10" column:"awayBttsForm10" dbtype:"REAL DEFAULT 0.0" scale:"true"`
	AwayOver1p5Form3    float64 `json:"awayOver1p5Form3" column:"awayOver1p5Form3" dbtype:"REAL DEFAULT 0.0" scale:"true"`
	AwayOver1p5Form5    float64 `json:"awayOver1p5Form5" column:"awayOver1p5Form5" dbtype:"REAL DEFAULT 0.0" scale:"true"`
	AwayOver1p5Form10   float64 `json:"awayOver1p5Form10" column:"awayOver1p5Form10" dbtype:"REAL DEFAULT 0.0" scale:"true"`
	AwayOver2p5Form3    float64 `json:"awayOver2p5Form3" column:"awayOver2p5Form3" dbtype:"REAL DEFAULT 0.0" scale:"true"`
	AwayOver2p5Form5    float64 `json:"awayOver2p5Form5" column:"awayOver2p5Form5" dbtype:"REAL DEFAULT 0.0" scale:"true"`
	AwayOver2p5Form10   float64 `json:"awayOver2p5Form10" column:"awayOver2p5Form10" dbtype:"REAL DEFAULT 0.0" scale:"true"`

	// Advanced metrics from this match's own statistics
	HomeShotAccuracy   float64 `json:"homeShotAccuracy" column:"homeShotAccuracy" dbtype:"REAL DEFAULT 0.0" scale:"true"`
	HomeGoalConversion float64 `json:"homeGoalConversion" column:"homeGoalConversion" dbtype:"REAL DEFAULT 0.0" scale:"true"`
	HomeXG             float64 `json:"homeXg" column:"homeXg" dbtype:"REAL DEFAULT 0.0" scale:"true"`
	AwayShotAccuracy   float64 `json:"awayShotAccuracy" column:"awayShotAccuracy" dbtype:"REAL DEFAULT 0.0" scale:"true"`
	AwayGoalConversion float64 `json:"awayGoalConversion" column:"awayGoalConversion" dbtype:"REAL DEFAULT 0.0" scale:"true"`
	AwayXG             float64 `json:"awayXg" column:"awayXg" dbtype:"REAL DEFAULT 0.0" scale:"true"`

	// Relative strength against the league mean
	HomeAttackStrength  float64 `json:"homeAttackStrength" column:"homeAttackStrength" dbtype:"REAL DEFAULT 0.0" scale:"true"`
	HomeDefenseStrength float64 `json:"homeDefenseStrength" column:"homeDefenseStrength" dbtype:"REAL DEFAULT 0.0" scale:"true"`
	AwayAttackStrength  float64 `json:"awayAttackStrength" column:"awayAttackStrength" dbtype:"REAL DEFAULT 0.0" scale:"true"`
	AwayDefenseStrength float64 `json:"awayDefenseStrength" column:"awayDefenseStrength" dbtype:"REAL DEFAULT 0.0" scale:"true"`

	// Context
	HomeDaysRest   float64 `json:"homeDaysRest" column:"homeDaysRest" dbtype:"REAL DEFAULT 0.0" scale:"true"`
	AwayDaysRest   float64 `json:"awayDaysRest" column:"awayDaysRest" dbtype:"REAL DEFAULT 0.0" scale:"true"`
	SeasonProgress float64 `json:"seasonProgress" column:"seasonProgress" dbtype:"REAL DEFAULT 0.0" scale:"true"`
	DayOfWeek      float64 `json:"dayOfWeek" column:"dayOfWeek" dbtype:"REAL DEFAULT 0.0" scale:"true"`
	Month          float64 `json:"month" column:"month" dbtype:"REAL DEFAULT 0.0" scale:"true"`

	// Head to head for this ordered home/away pairing
	H2HHomeWinRate   float64 `json:"h2hHomeWinRate" column:"h2hHomeWinRate" dbtype:"REAL DEFAULT 0.0" scale:"true"`
	H2HAvgTotalGoals float64 `json:"h2hAvgTotalGoals" column:"h2hAvgTotalGoals" dbtype:"REAL DEFAULT 0.0" scale:"true"`
	H2HBTTSRate      float64 `json:"h2hBttsRate" column:"h2hBttsRate" dbtype:"REAL DEFAULT 0.0" scale:"true"`
	H2HAvgHomeGoals  float64 `json:"h2hAvgHomeGoals" column:"h2hAvgHomeGoals" dbtype:"REAL DEFAULT 0.0" scale:"true"`
	H2HAvgAwayGoals  float64 `json:"h2hAvgAwayGoals" column:"h2hAvgAwayGoals" dbtype:"REAL DEFAULT 0.0" scale:"true"`
	H2HOver1p5       float64 `json:"h2hOver1p5" column:"h2hOver1p5" dbtype:"REAL DEFAULT 0.0" scale:"true"`
	H2HOver2p5       float64 `json:"h2hOver2p5" column:"h2hOver2p5" dbtype:"REAL DEFAULT 0.0" scale:"true"`

	// Goal rate families at 3, 5 and 10 prior role appearances
	HomeScoringRate3     float64 `json:"homeScoringRate3" column:"homeScoringRate3" dbtype:"REAL DEFAULT 0.0" scale:"true"`
	HomeScoringRate5     float64 `json:"homeScoringRate5" column:"homeScoringRate5" dbtype:"REAL DEFAULT 0.0" scale:"true"`
	HomeScoringRate10    float64 `json:"homeScoringRate10" column:"homeScoringRate10" dbtype:"REAL DEFAULT 0.0" scale:"true"`
	HomeConcedingRate3   float64 `json:"homeConcedingRate3" column:"homeConcedingRate3" dbtype:"REAL DEFAULT 0.0" scale:"true"`
	HomeConcedingRate5   float64 `json:"homeConcedingRate5" column:"homeConcedingRate5" dbtype:"REAL DEFAULT 0.0" scale:"true"`
	HomeConcedingRate10  float64 `json:"homeConcedingRate10" column:"homeConcedingRate10" dbtype:"REAL DEFAULT 0.0" scale:"true"`
	HomeTotalGoalsRate3  float64 `json:"homeTotalGoalsRate3" column:"homeTotalGoalsRate3" dbtype:"REAL DEFAULT 0.0" scale:"true"`
	HomeTotalGoalsRate5  float64 `json:"homeTotalGoalsRate5" column:"homeTotalGoalsRate5" dbtype:"REAL DEFAULT 0.0" scale:"true"`
	HomeTotalGoalsRate10 float64 `json:"homeTotalGoalsRate10" column:"homeTotalGoalsRate10" dbtype:"REAL DEFAULT 0.0" scale:"true"`
	HomeGoalsVariance3   float64 `json:"homeGoalsVariance3" column:"homeGoalsVariance3" dbtype:"REAL DEFAULT 0.0" scale:"true"`
	HomeGoalsVariance5   float64 `json:"homeGoalsVariance5" column:"homeGoalsVariance5" dbtype:"REAL DEFAULT 0.0" scale:"true"`
	HomeGoalsVariance10  float64 `json:"homeGoalsVariance10" column:"homeGoalsVariance10" dbtype:"REAL DEFAULT 0.0" scale:"true"`
	AwayScoringRate3     float64 `json:"awayScoringRate3" column:"awayScoringRate3" dbtype:"REAL DEFAULT 0.0" scale:"true"`
	AwayScoringRate5     float64 `json:"awayScoringRate5" column:"awayScoringRate5" dbtype:"REAL DEFAULT 0.0" scale:"true"`
	AwayScoringRate10    float64 `json:"awayScoringRate10" column:"awayScoringRate10" dbtype:"REAL DEFAULT 0.0" scale:"true"`
	AwayConcedingRate3   float64 `json:"awayConcedingRate3" column:"awayConcedingRate3" dbtype:"REAL DEFAULT 0.0" scale:"true"`
	AwayConcedingRate5   float64 `json:"awayConcedingRate5" column:"awayConcedingRate5" dbtype:"REAL DEFAULT 0.0" scale:"true"`
	AwayConcedingRate10  float64 `json:"awayConcedingRate10" column:"awayConcedingRate10" dbtype:"REAL DEFAULT 0.0" scale:"true"`
	AwayTotalGoalsRate3  float64 `json:"awayTotalGoalsRate3" column:"awayTotalGoalsRate3" dbtype:"REAL DEFAULT 0.0" scale:"true"`
	AwayTotalGoalsRate5  float64 `json:"awayTotalGoalsRate5" column:"awayTotalGoalsRate5" dbtype:"REAL DEFAULT 0.0" scale:"true"`
	AwayTotalGoalsRate10 float64 `json:"awayTotalGoalsRate10" column:"awayTotalGoalsRate10" dbtype:"REAL DEFAULT 0.0" scale:"true"`
	AwayGoalsVariance3   float64 `json:"awayGoalsVariance3" column:"awayGoalsVariance3" dbtype:"REAL DEFAULT 0.0" scale:"true"`
	AwayGoalsVariance5   float64 `json:"awayGoalsVariance5" column:"awayGoalsVariance5" dbtype:"REAL DEFAULT 0.0" scale:"true"`
	AwayGoalsVariance10  float64 `json:"awayGoalsVariance10" column:"awayGoalsVariance10" dbtype:"REAL DEFAULT 0.0" scale:"true"`

	// League context and combined measures
	LeagueAvgTotalGoals   float64 `json:"leagueAvgTotalGoals" column:"leagueAvgTotalGoals" dbtype:"REAL DEFAULT 0.0" scale:"true"`
	CombinedGoalPotential float64 `json:"combinedGoalPotential" column:"combinedGoalPotential" dbtype:"REAL DEFAULT 0.0" scale:"true"`

	// Metadata
	CreatedAt time.Time `json:"createdAt" column:"created_at" dbtype:"DATETIME DEFAULT CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `json:"updatedAt" column:"updated_at" dbtype:"DATETIME DEFAULT CURRENT_TIMESTAMP"`
}

/////////////////////////////////////////////////////////////////////////
////// Persistable Interface Implementation
/////////////////////////////////////////////////////////////////////////

// GetPrimaryKey returns the primary key as a map
func (fr *FeatureRow) GetPrimaryKey() map[string]interface{} {
	return map[string]any{
		"matchId": fr.MatchID,
	}
}

// GetTableName returns the table name for feature rows
func (fr *FeatureRow) GetTableName() string {
	return "feature_row"
}

// BeforeSave is called before saving the feature row
func (fr *FeatureRow) BeforeSave() error {
	if fr.MatchID == "" {
		return fmt.Errorf("feature row has no match id")
	}
	now := time.Now()
	if fr.CreatedAt.IsZero() {
		fr.CreatedAt = now
	}
	fr.UpdatedAt = now
	return nil
}

/////////////////////////////////////////////////////////////////////////
////// Scaled Column Access
/////////////////////////////////////////////////////////////////////////

// ScaledColumnNames returns the column names of every feature field tagged
// scale:"true", in struct declaration order. This order defines the column
// identity the fitted scaler state is keyed by.
func ScaledColumnNames() []string {
	objType := reflect.TypeOf(FeatureRow{})
	var names []string
	for i := 0; i < objType.NumField(); i++ {
		field := objType.Field(i)
		if field.Tag.Get("scale") != "true" {
			continue
		}
		columnName := field.Tag.Get("column")
		if columnName == "" {
			columnName = strings.ToLower(field.Name)
		}
		names = append(names, columnName)
	}
	return names
}

// ScaledValues returns the feature values in ScaledColumnNames order
func (fr *FeatureRow) ScaledValues() []float64 {
	objValue := reflect.ValueOf(fr).Elem()
	objType := objValue.Type()
	var values []float64
	for i := 0; i < objType.NumField(); i++ {
		if objType.Field(i).Tag.Get("scale") != "true" {
			continue
		}
		values = append(values, objValue.Field(i).Float())
	}
	return values
}

// SetScaledValues writes feature values back in ScaledColumnNames order
func (fr *FeatureRow) SetScaledValues(values []float64) error {
	objValue := reflect.ValueOf(fr).Elem()
	objType := objValue.Type()
	n := 0
	for i := 0; i < objType.NumField(); i++ {
		if objType.Field(i).Tag.Get("scale") != "true" {
			continue
		}
		if n >= len(values) {
			return fmt.Errorf("expected %d scaled values, got %d", len(ScaledColumnNames()), len(values))
		}
		objValue.Field(i).SetFloat(values[n])
		n++
	}
	if n != len(values) {
		return fmt.Errorf("expected %d scaled values, got %d", n, len(values))
	}
	return nil
}

/////////////////////////////////////////////////////////////////////////
////// Role Projection
/////////////////////////////////////////////////////////////////////////

// RoleFeatures is the explicit projection of one side's features out of a
// FeatureRow. Vector ordering is fixed by the field order here; the predictor
// concatenates a home projection and an away projection into the vector
// handed to scoring functions.
type RoleFeatures struct {
	FormRating      float64
	GoalsForAvg     float64
	GoalsAgainstAvg float64
	ShotAccuracyAvg float64
	FoulsAvg        float64

	ScoringForm3    float64
	ScoringForm5    float64
	ScoringForm10   float64
	ConcedingForm3  float64
	ConcedingForm5  float64
	ConcedingForm10 float64
	ResultForm3     float64
	ResultForm5     float64
	ResultForm10    float64
	BTTSForm3       float64
	BTTSForm5       float64
	BTTSForm10      float64
	Over1p5Form3    float64
	Over1p5Form5    float64
	Over1p5Form10   float64
	Over2p5Form3    float64
	Over2p5Form5    float64
	Over2p5Form10   float64

	ShotAccuracy   float64
	GoalConversion float64
	XG             float64

	AttackStrength  float64
	DefenseStrength float64

	DaysRest float64

	ScoringRate3     float64
	ScoringRate5     float64
	ScoringRate10    float64
	ConcedingRate3   float64
	ConcedingRate5   float64
	ConcedingRate10  float64
	TotalGoalsRate3  float64
	TotalGoalsRate5  float64
	TotalGoalsRate10 float64
	GoalsVariance3   float64
	GoalsVariance5   float64
	GoalsVariance10  float64
}

// HomeRoleFeatures projects the home side's features
func (fr *FeatureRow) HomeRoleFeatures() RoleFeatures {
	return RoleFeatures{
		FormRating:      fr.HomeFormRating,
		GoalsForAvg:     fr.HomeGoalsForAvg,
		GoalsAgainstAvg: fr.HomeGoalsAgainstAvg,
		ShotAccuracyAvg: fr.HomeShotAccuracyAvg,
		FoulsAvg:        fr.HomeFoulsAvg,

		ScoringForm3:    fr.HomeScoringForm3,
		ScoringForm5:    fr.HomeScoringForm5,
		ScoringForm10:   fr.HomeScoringForm10,
		ConcedingForm3:  fr.HomeConcedingForm3,
		ConcedingForm5:  fr.HomeConcedingForm5,
		ConcedingForm10: fr.HomeConcedingForm10,
		ResultForm3:     fr.HomeResultForm3,
		ResultForm5:     fr.HomeResultForm5,
		ResultForm10:    fr.HomeResultForm10,
		BTTSForm3:       fr.HomeBTTSForm3,
		BTTSForm5:       fr.HomeBTTSForm5,
		BTTSForm10:      fr.HomeBTTSForm10,
		Over1p5Form3:    fr.HomeOver1p5Form3,
		Over1p5Form5:    fr.HomeOver1p5Form5,
		Over1p5Form10:   fr.HomeOver1p5Form10,
		Over2p5Form3:    fr.HomeOver2p5Form3,
		Over2p5Form5:    fr.HomeOver2p5Form5,
		Over2p5Form10:   fr.HomeOver2p5Form10,

		ShotAccuracy:   fr.HomeShotAccuracy,
		GoalConversion: fr.HomeGoalConversion,
		XG:             fr.HomeXG,

		AttackStrength:  fr.HomeAttackStrength,
		DefenseStrength: fr.HomeDefenseStrength,

		DaysRest: fr.HomeDaysRest,

		ScoringRate3:     fr.HomeScoringRate3,
		ScoringRate5:     fr.HomeScoringRate5,
		ScoringRate10:    fr.HomeScoringRate10,
		ConcedingRate3:   fr.HomeConcedingRate3,
		ConcedingRate5:   fr.HomeConcedingRate5,
		ConcedingRate10:  fr.HomeConcedingRate10,
		TotalGoalsRate3:  fr.HomeTotalGoalsRate3,
		TotalGoalsRate5:  fr.HomeTotalGoalsRate5,
		TotalGoalsRate10: fr.HomeTotalGoalsRate10,
		GoalsVariance3:   fr.HomeGoalsVariance3,
		GoalsVariance5:   fr.HomeGoalsVariance5,
		GoalsVariance10:  fr.HomeGoalsVariance10,
	}
}

// AwayRoleFeatures projects the away side's features
func (fr *FeatureRow) AwayRoleFeatures() RoleFeatures {
	return RoleFeatures{
		FormRating:      fr.AwayFormRating,
		GoalsForAvg:     fr.AwayGoalsForAvg,
		GoalsAgainstAvg: fr.AwayGoalsAgainstAvg,
		ShotAccuracyAvg: fr.AwayShotAccuracyAvg,
		FoulsAvg:        fr.AwayFoulsAvg,

		ScoringForm3:    fr.AwayScoringForm3,
		ScoringForm5:    fr.AwayScoringForm5,
		ScoringForm10:   fr.AwayScoringForm10,
		ConcedingForm3:  fr.AwayConcedingForm3,
		ConcedingForm5:  fr.AwayConcedingForm5,
		ConcedingForm10: fr.AwayConcedingForm10,
		ResultForm3:     fr.AwayResultForm3,
		ResultForm5:     fr.AwayResultForm5,
		ResultForm10:    fr.AwayResultForm10,
		BTTSForm3:       fr.AwayBTTSForm3,
		BTTSForm5:       fr.AwayBTTSForm5,
		BTTSForm10:      fr.AwayBTTSForm10,
		Over1p5Form3:    fr.AwayOver1p5Form3,
		Over1p5Form5:    fr.AwayOver1p5Form5,
		Over1p5Form10:   fr.AwayOver1p5Form10,
		Over2p5Form3:    fr.AwayOver2p5Form3,
		Over2p5Form5:    fr.AwayOver2p5Form5,
		Over2p5Form10:   fr.AwayOver2p5Form10,

		ShotAccuracy:   fr.AwayShotAccuracy,
		GoalConversion: fr.AwayGoalConversion,
		XG:             fr.AwayXG,

		AttackStrength:  fr.AwayAttackStrength,
		DefenseStrength: fr.AwayDefenseStrength,

		DaysRest: fr.AwayDaysRest,

		ScoringRate3:     fr.AwayScoringRate3,
		ScoringRate5:     fr.AwayScoringRate5,
		ScoringRate10:    fr.AwayScoringRate10,
		ConcedingRate3:   fr.AwayConcedingRate3,
		ConcedingRate5:   fr.AwayConcedingRate5,
		ConcedingRate10:  fr.AwayConcedingRate10,
		TotalGoalsRate3:  fr.AwayTotalGoalsRate3,
		TotalGoalsRate5:  fr.AwayTotalGoalsRate5,
		TotalGoalsRate10: fr.AwayTotalGoalsRate10,
		GoalsVariance3:   fr.AwayGoalsVariance3,
		GoalsVariance5:   fr.AwayGoalsVariance5,
		GoalsVariance10:  fr.AwayGoalsVariance10,
	}
}

// Vector returns the role features in fixed order
func (rf *RoleFeatures) Vector() []float64 {
	return []float64{
		rf.FormRating,
		rf.GoalsForAvg,
		rf.GoalsAgainstAvg,
		rf.ShotAccuracyAvg,
		rf.FoulsAvg,

		rf.ScoringForm3,
		rf.ScoringForm5,
		rf.ScoringForm10,
		rf.ConcedingForm3,
		rf.ConcedingForm5,
		rf.ConcedingForm10,
		rf.ResultForm3,
		rf.ResultForm5,
		rf.ResultForm10,
		rf.BTTSForm3,
		rf.BTTSForm5,
		rf.BTTSForm10,
		rf.Over1p5Form3,
		rf.Over1p5Form5,
		rf.Over1p5Form10,
		rf.Over2p5Form3,
		rf.Over2p5Form5,
		rf.Over2p5Form10,

		rf.ShotAccuracy,
		rf.GoalConversion,
		rf.XG,

		rf.AttackStrength,
		rf.DefenseStrength,

		rf.DaysRest,

		rf.ScoringRate3,
		rf.ScoringRate5,
		rf.ScoringRate10,
		rf.ConcedingRate3,
		rf.ConcedingRate5,
		rf.ConcedingRate10,
		rf.TotalGoalsRate3,
		rf.TotalGoalsRate5,
		rf.TotalGoalsRate10,
		rf.GoalsVariance3,
		rf.GoalsVariance5,
		rf.GoalsVariance10,
	}
}

// roleVectorColumns maps each Vector position to the FeatureRow column name
// carrying that value for the given role prefix ("home" or "away")
func roleVectorColumns(prefix string) []string {
	suffixes := []string{
		"FormRating", "GoalsForAvg", "GoalsAgainstAvg", "ShotAccuracyAvg", "FoulsAvg",
		"ScoringForm3", "ScoringForm5", "ScoringForm10",
		"ConcedingForm3", "ConcedingForm5", "ConcedingForm10",
		"ResultForm3", "ResultForm5", "ResultForm10",
		"BttsForm3", "BttsForm5", "BttsForm10",
		"Over1p5Form3", "Over1p5Form5", "Over1p5Form10",
		"Over2p5Form3", "Over2p5Form5", "Over2p5Form10",
		"ShotAccuracy", "GoalConversion", "Xg",
		"AttackStrength", "DefenseStrength",
		"DaysRest",
		"ScoringRate3", "ScoringRate5", "ScoringRate10",
		"ConcedingRate3", "ConcedingRate5", "ConcedingRate10",
		"TotalGoalsRate3", "TotalGoalsRate5", "TotalGoalsRate10",
		"GoalsVariance3", "GoalsVariance5", "GoalsVariance10",
	}
	cols := make([]string, len(suffixes))
	for i, s := range suffixes {
		cols[i] = prefix + s
	}
	return cols
}

// FeatureVectorColumns returns the FeatureRow column backing every position
// of the assembled prediction vector, home projection first
func FeatureVectorColumns() []string {
	return append(roleVectorColumns("home"), roleVectorColumns("away")...)
}

// AssembleFeatureVector concatenates the two role projections into the
// fixed-order vector handed to scoring functions
func AssembleFeatureVector(home RoleFeatures, away RoleFeatures) []float64 {
	return append(home.Vector(), away.Vector()...)
}
