package footy

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/richard-senior/footy/internal/logger"
	"github.com/richard-senior/footy/pkg/transport"
)

/////////////////////////////////////////////////////////////////////////
////// Historical Datasource (football-data.co.uk)
/////////////////////////////////////////////////////////////////////////

// csvURL builds the download location for one league and season,
// ie https://www.football-data.co.uk/mmz4281/2425/E0.csv
func csvURL(league string, season string) (string, error) {
	code, err := SeasonPathCode(season)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("https://www.football-data.co.uk/mmz4281/%s/%s.csv", code, league), nil
}

// cachePath is the on-disk location for one league and season's CSV
func cachePath(league string, season string) (string, error) {
	code, err := SeasonPathCode(season)
	if err != nil {
		return "", err
	}
	return filepath.Join(Config.CachePath, fmt.Sprintf("%s_%s.csv", league, code)), nil
}

// FetchSeasonCSV returns the raw CSV for one league and season, downloading
// and caching on first use. The current season's cache is always considered
// stale since new results land weekly.
func FetchSeasonCSV(league string, season string) ([]byte, error) {
	path, err := cachePath(league, season)
	if err != nil {
		return nil, err
	}

	if !IsCurrentSeason(season) {
		if data, err := os.ReadFile(path); err == nil && len(data) > 0 {
			logger.Debug("Using cached CSV", path)
			return data, nil
		}
	}

	url, err := csvURL(league, season)
	if err != nil {
		return nil, err
	}
	logger.Info("Downloading results CSV", url)
	data, err := transport.Get(url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUpstream, url, err)
	}

	if err := os.MkdirAll(Config.CachePath, 0755); err != nil {
		logger.Warn("Could not create cache directory", Config.CachePath, err)
	} else if err := os.WriteFile(path, data, 0644); err != nil {
		logger.Warn("Could not write CSV cache", path, err)
	}

	return data, nil
}

// LoadAllMatches fetches and parses every configured league and season.
// A failing league/season combination is logged and skipped so one missing
// upstream file never empties the whole dataset.
func LoadAllMatches() ([]*Match, error) {
	var all []*Match
	for _, league := range Config.Leagues {
		for _, season := range Config.Seasons {
			data, err := FetchSeasonCSV(league, season)
			if err != nil {
				logger.Warn("Skipping league season", league, season, err)
				continue
			}
			matches, err := ParseMatchesCSV(data, league, season)
			if err != nil {
				logger.Warn("Skipping unparseable league season", league, season, err)
				continue
			}
			all = append(all, matches...)
		}
	}
	if len(all) == 0 {
		return nil, fmt.Errorf("no matches loaded for any configured league/season")
	}
	logger.Info("Loaded matches", len(all))
	return all, nil
}

/////////////////////////////////////////////////////////////////////////
////// Snapshot Build and Load
/////////////////////////////////////////////////////////////////////////

// BuildSnapshot runs the whole batch pipeline: fetch the configured dataset,
// engineer features, persist matches, feature rows, roster and scaler state,
// and return a predictor serving the fresh snapshot. The database must have
// been initialized first.
func BuildSnapshot() (*Predictor, error) {
	matches, err := LoadAllMatches()
	if err != nil {
		return nil, err
	}

	rows, scaler, err := EngineerFeatures(matches)
	if err != nil {
		return nil, err
	}

	persistables := make([]Persistable, len(matches))
	for i, m := range matches {
		persistables[i] = m
	}
	if err := BulkSave(persistables); err != nil {
		return nil, fmt.Errorf("failed to persist matches: %w", err)
	}

	persistables = make([]Persistable, len(rows))
	for i, fr := range rows {
		persistables[i] = fr
	}
	if err := BulkSave(persistables); err != nil {
		return nil, fmt.Errorf("failed to persist feature rows: %w", err)
	}

	if err := SaveTeams(TeamsFromMatches(matches)); err != nil {
		return nil, err
	}

	if err := SaveScaler(scaler); err != nil {
		return nil, fmt.Errorf("failed to persist scaler state: %w", err)
	}

	logger.Info("Snapshot built", "matches", len(matches), "rows", len(rows))
	return NewPredictor(rows, scaler, DefaultScorers(scaler)), nil
}

// LoadSnapshot rehydrates the serving state persisted by a previous
// BuildSnapshot: the feature row table plus the scaler state matching the
// configured version
func LoadSnapshot() (*Predictor, error) {
	scaler, err := LoadScaler(Config.ScalerVersion)
	if err != nil {
		return nil, err
	}

	results, err := FindAll(&FeatureRow{})
	if err != nil {
		return nil, fmt.Errorf("failed to load feature rows: %w", err)
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("feature row table is empty, build a snapshot first")
	}

	rows := make([]*FeatureRow, 0, len(results))
	for _, r := range results {
		if fr, ok := r.(*FeatureRow); ok {
			rows = append(rows, fr)
		}
	}

	logger.Info("Snapshot loaded", "rows", len(rows), "scaler", scaler.Version)
	return NewPredictor(rows, scaler, DefaultScorers(scaler)), nil
}
