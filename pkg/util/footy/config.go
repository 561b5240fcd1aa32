package footy

import (
	"fmt"
	"os"

	"github.com/richard-senior/footy/pkg/util"
)

// FootyConfig contains all configurable parameters that influence feature
// generation and prediction outcomes. Centralises the magic numbers so the
// pipeline and the scorers stay in agreement.
type FootyConfig struct {
	// Paths
	AssetsPath string // base directory for footy assets
	CachePath  string // downloaded CSV data is cached here
	DbPath     string // location of the footy sqlite database

	// === DATA SELECTION ===
	Leagues       []string // football-data.co.uk league codes (E0, E1 etc.)
	Seasons       []string // seasons of interest, "yyyy/yyyy" form
	CurrentSeason string   // season whose cache files are considered stale

	// === ROLLING FEATURES ===
	RollingWindow int   // default trailing window size (default: 5)
	FormWindows   []int // window sizes for form/goal features (default: 3,5,10)

	// === FEATURE ENGINEERING ===
	XGShotsCoefficient         float64 // xG weight per shot (default: 0.1)
	XGShotsOnTargetCoefficient float64 // xG weight per shot on target (default: 0.3)
	MakeSensibleDefault        float64 // substituted denominator on division by zero (default: 1.0)

	// === OVER/UNDER GOALS THRESHOLDS ===
	Over1p5GoalsThreshold float64
	Over2p5GoalsThreshold float64
	Over3p5GoalsThreshold float64

	// === SCORING ===
	GoalRange               int     // scoreline matrix considers 0..GoalRange-1 goals (default: 9)
	DixonColesRho           float64 // low-score correlation parameter (default: -0.03)
	MaxGoalsCap             float64 // expected goals ceiling (default: 10.0)
	MinGoalsFloor           float64 // expected goals floor (default: 0.0)
	BinaryDecisionThreshold float64 // positive-class probability needed for a "Yes" (default: 0.5)

	// === SCALER ===
	ScalerVersion string // version stamp persisted with fitted scaler state

	// === LIVE FEED ===
	LiveFeedBaseURL string // football-data.org v4 base url
	LiveFeedToken   string // X-Auth-Token value, usually from the environment
	FotmobBaseURL   string // fixture scrape fallback

	// === SERVER ===
	ServerPort string
}

// DefaultFootyConfig returns the default configuration with all standard values
func DefaultFootyConfig() *FootyConfig {
	assetsPath := os.Getenv("HOME") + "/.footy/"
	return &FootyConfig{
		AssetsPath: assetsPath,
		CachePath:  assetsPath + "cache/",
		DbPath:     assetsPath + "footy.db",

		Leagues:       []string{"E0", "E1"},
		Seasons:       []string{"2023/2024", "2024/2025", "2025/2026"},
		CurrentSeason: "2025/2026",

		RollingWindow: 5,
		FormWindows:   []int{3, 5, 10},

		XGShotsCoefficient:         0.1,
		XGShotsOnTargetCoefficient: 0.3,
		MakeSensibleDefault:        1.0,

		Over1p5GoalsThreshold: 1.5,
		Over2p5GoalsThreshold: 2.5,
		Over3p5GoalsThreshold: 3.5,

		GoalRange:               9,
		DixonColesRho:           -0.03,
		MaxGoalsCap:             10.0,
		MinGoalsFloor:           0.0,
		BinaryDecisionThreshold: 0.5,

		ScalerVersion: "v1",

		LiveFeedBaseURL: "https://api.football-data.org/v4",
		FotmobBaseURL:   "https://www.fotmob.com",

		ServerPort: "8085",
	}
}

// Global configuration instance
var Config *FootyConfig

func init() {
	Config = DefaultFootyConfig()
}

// UpdateConfig allows replacing the global configuration
func UpdateConfig(newConfig *FootyConfig) {
	Config = newConfig
}

// ApplyEnvOverrides overlays FOOTY_* environment variables onto the given
// configuration. Call after godotenv has loaded any .env file.
func ApplyEnvOverrides(config *FootyConfig) {
	if v := os.Getenv("FOOTY_ASSETS_PATH"); v != "" {
		config.AssetsPath = v
		config.CachePath = v + "cache/"
		config.DbPath = v + "footy.db"
	}
	if v := os.Getenv("FOOTY_DB_PATH"); v != "" {
		config.DbPath = v
	}
	if v := os.Getenv("FOOTY_LIVE_FEED_TOKEN"); v != "" {
		config.LiveFeedToken = v
	}
	if v := os.Getenv("FOOTY_SERVER_PORT"); v != "" {
		config.ServerPort = v
	}
	if v := os.Getenv("FOOTY_CURRENT_SEASON"); v != "" {
		if s, err := ParseSeason(v); err == nil {
			config.CurrentSeason = s
		}
	}
	if v := os.Getenv("FOOTY_ROLLING_WINDOW"); v != "" {
		if w, err := util.GetAsInteger(v); err == nil && w > 0 {
			config.RollingWindow = w
		}
	}
}

// ValidateConfig ensures configuration values are within reasonable ranges
func ValidateConfig(config *FootyConfig) error {
	if config.RollingWindow < 1 {
		return fmt.Errorf("RollingWindow must be at least 1, got: %d", config.RollingWindow)
	}
	if len(config.FormWindows) == 0 {
		return fmt.Errorf("FormWindows must not be empty")
	}
	for _, w := range config.FormWindows {
		if w < 1 {
			return fmt.Errorf("FormWindows entries must be at least 1, got: %d", w)
		}
	}
	if config.GoalRange < 3 {
		return fmt.Errorf("GoalRange should be at least 3 to capture realistic scores, got: %d", config.GoalRange)
	}
	if config.DixonColesRho > 0 || config.DixonColesRho < -0.1 {
		return fmt.Errorf("DixonColesRho should be between -0.1 and 0, got: %f", config.DixonColesRho)
	}
	if config.BinaryDecisionThreshold <= 0 || config.BinaryDecisionThreshold >= 1 {
		return fmt.Errorf("BinaryDecisionThreshold must be in (0, 1), got: %f", config.BinaryDecisionThreshold)
	}
	return nil
}

// === HELPER FUNCTIONS FOR EASY ACCESS ===

// GetCurrentSeason returns the current season
func GetCurrentSeason() string {
	return Config.CurrentSeason
}

// GetDixonColesRho returns the Dixon-Coles correlation parameter
func GetDixonColesRho() float64 {
	return Config.DixonColesRho
}

// GetMakeSensibleDefault returns the default value for division by zero protection
func GetMakeSensibleDefault() float64 {
	return Config.MakeSensibleDefault
}

// IsCurrentSeason returns true if the given season parses to the configured current season
func IsCurrentSeason(season string) bool {
	s, err := ParseSeason(season)
	if err != nil {
		return false
	}
	return s == Config.CurrentSeason
}
