package footy

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/richard-senior/footy/internal/logger"
	"github.com/richard-senior/footy/pkg/util"
)

// Compile-time check to ensure Match implements Persistable interface
var _ Persistable = (*Match)(nil)

// Match represents a completed or scheduled football match with database
// persistence annotations. Field names follow the football-data.co.uk
// column vocabulary where one exists.
type Match struct {
	// Primary key
	ID string `json:"id" column:"id" dbtype:"TEXT" primary:"true" index:"true"`

	// Info
	Date     time.Time `json:"date" column:"date" dbtype:"DATETIME" index:"true"`
	League   string    `json:"league" column:"league" dbtype:"TEXT" index:"true"`
	Season   string    `json:"season" column:"season" dbtype:"TEXT" index:"true"`
	Status   string    `json:"status" column:"status" dbtype:"TEXT"` // "finished", "scheduled"
	HomeTeam string    `json:"homeTeam" column:"homeTeam" dbtype:"TEXT NOT NULL" index:"true"`
	AwayTeam string    `json:"awayTeam" column:"awayTeam" dbtype:"TEXT NOT NULL" index:"true"`

	// Full and half time scores
	FullTimeHomeGoals int    `json:"fullTimeHomeGoals" column:"fullTimeHomeGoals" dbtype:"INTEGER DEFAULT -1"`
	FullTimeAwayGoals int    `json:"fullTimeAwayGoals" column:"fullTimeAwayGoals" dbtype:"INTEGER DEFAULT -1"`
	HalfTimeHomeGoals int    `json:"halfTimeHomeGoals" column:"halfTimeHomeGoals" dbtype:"INTEGER DEFAULT -1"`
	HalfTimeAwayGoals int    `json:"halfTimeAwayGoals" column:"halfTimeAwayGoals" dbtype:"INTEGER DEFAULT -1"`
	FullTimeResult    string `json:"fullTimeResult" column:"fullTimeResult" dbtype:"TEXT"` // "H", "D" or "A"

	// Action
	HomeShots         int `json:"homeShots" column:"homeShots" dbtype:"INTEGER DEFAULT -1"`
	AwayShots         int `json:"awayShots" column:"awayShots" dbtype:"INTEGER DEFAULT -1"`
	HomeShotsOnTarget int `json:"homeShotsOnTarget" column:"homeShotsOnTarget" dbtype:"INTEGER DEFAULT -1"`
	AwayShotsOnTarget int `json:"awayShotsOnTarget" column:"awayShotsOnTarget" dbtype:"INTEGER DEFAULT -1"`
	HomeCorners       int `json:"homeCorners" column:"homeCorners" dbtype:"INTEGER DEFAULT -1"`
	AwayCorners       int `json:"awayCorners" column:"awayCorners" dbtype:"INTEGER DEFAULT -1"`
	HomeFouls         int `json:"homeFouls" column:"homeFouls" dbtype:"INTEGER DEFAULT -1"`
	AwayFouls         int `json:"awayFouls" column:"awayFouls" dbtype:"INTEGER DEFAULT -1"`

	// Discipline
	HomeYellowCards int `json:"homeYellowCards" column:"homeYellowCards" dbtype:"INTEGER DEFAULT -1"`
	AwayYellowCards int `json:"awayYellowCards" column:"awayYellowCards" dbtype:"INTEGER DEFAULT -1"`
	HomeRedCards    int `json:"homeRedCards" column:"homeRedCards" dbtype:"INTEGER DEFAULT -1"`
	AwayRedCards    int `json:"awayRedCards" column:"awayRedCards" dbtype:"INTEGER DEFAULT -1"`

	// Average Betting Odds (from football-data.co.uk)
	HomeOdds float64 `json:"homeOdds" column:"homeOdds" dbtype:"REAL DEFAULT -1.0"`
	DrawOdds float64 `json:"drawOdds" column:"drawOdds" dbtype:"REAL DEFAULT -1.0"`
	AwayOdds float64 `json:"awayOdds" column:"awayOdds" dbtype:"REAL DEFAULT -1.0"`

	// Metadata
	CreatedAt time.Time `json:"createdAt" column:"created_at" dbtype:"DATETIME DEFAULT CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `json:"updatedAt" column:"updated_at" dbtype:"DATETIME DEFAULT CURRENT_TIMESTAMP"`
}

/////////////////////////////////////////////////////////////////////////
////// Persistable Interface Implementation
/////////////////////////////////////////////////////////////////////////

// GetPrimaryKey returns the primary key as a map
func (m *Match) GetPrimaryKey() map[string]interface{} {
	return map[string]any{
		"id": m.ID,
	}
}

// GetTableName returns the table name for matches
func (m *Match) GetTableName() string {
	return "match"
}

// BeforeSave is called before saving the match
func (m *Match) BeforeSave() error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.FullTimeResult == "" && m.IsFinished() {
		m.FullTimeResult = m.Result()
	}
	now := time.Now()
	if m.CreatedAt.IsZero() {
		m.CreatedAt = now
	}
	m.UpdatedAt = now
	return nil
}

/////////////////////////////////////////////////////////////////////////
////// Derived Data Methods
/////////////////////////////////////////////////////////////////////////

// IsFinished returns true if the match has a recorded full time score
func (m *Match) IsFinished() bool {
	return m.FullTimeHomeGoals >= 0 && m.FullTimeAwayGoals >= 0
}

// Result returns "H", "D" or "A" based on the full time score,
// or the empty string if the match has not finished
func (m *Match) Result() string {
	if !m.IsFinished() {
		return ""
	}
	switch {
	case m.FullTimeHomeGoals > m.FullTimeAwayGoals:
		return "H"
	case m.FullTimeHomeGoals < m.FullTimeAwayGoals:
		return "A"
	default:
		return "D"
	}
}

// TotalGoals returns the combined full time goal count, or -1 if unfinished
func (m *Match) TotalGoals() int {
	if !m.IsFinished() {
		return -1
	}
	return m.FullTimeHomeGoals + m.FullTimeAwayGoals
}

// BothTeamsScored returns true if both sides found the net
func (m *Match) BothTeamsScored() bool {
	return m.FullTimeHomeGoals > 0 && m.FullTimeAwayGoals > 0
}

/////////////////////////////////////////////////////////////////////////
////// CSV Ingestion (football-data.co.uk format)
/////////////////////////////////////////////////////////////////////////

// ParseMatchesCSV parses football-data.co.uk result CSV data into matches.
// The files carry a header row whose column set varies between leagues and
// seasons, so columns are located by name rather than position. Rows that
// cannot be parsed are logged and skipped.
func ParseMatchesCSV(data []byte, league string, season string) ([]*Match, error) {
	season, err := ParseSeason(season)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1 // trailing commas are common in these files

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV for %s %s: %w", league, season, err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("no data rows in CSV for %s %s", league, season)
	}

	// map column names to indices from the header row
	idx := make(map[string]int)
	for i, name := range records[0] {
		idx[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{"Date", "HomeTeam", "AwayTeam"} {
		if _, ok := idx[required]; !ok {
			return nil, fmt.Errorf("CSV for %s %s is missing column %s", league, season, required)
		}
	}

	field := func(row []string, name string) string {
		i, ok := idx[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}
	intField := func(row []string, name string) int {
		v := field(row, name)
		if v == "" {
			return -1
		}
		n, err := util.GetAsInteger(v)
		if err != nil {
			return -1
		}
		return n
	}
	floatField := func(row []string, name string) float64 {
		v := field(row, name)
		if v == "" {
			return -1.0
		}
		var f float64
		if _, err := fmt.Sscanf(v, "%f", &f); err != nil {
			return -1.0
		}
		return f
	}

	var matches []*Match
	for n, row := range records[1:] {
		home := field(row, "HomeTeam")
		away := field(row, "AwayTeam")
		if home == "" || away == "" {
			continue
		}

		date, err := parseMatchDate(field(row, "Date"))
		if err != nil {
			logger.Warn("Skipping row with unparseable date", n+2, field(row, "Date"))
			continue
		}

		match := &Match{
			ID:       uuid.NewString(),
			Date:     date,
			League:   league,
			Season:   season,
			HomeTeam: home,
			AwayTeam: away,

			FullTimeHomeGoals: intField(row, "FTHG"),
			FullTimeAwayGoals: intField(row, "FTAG"),
			HalfTimeHomeGoals: intField(row, "HTHG"),
			HalfTimeAwayGoals: intField(row, "HTAG"),
			FullTimeResult:    field(row, "FTR"),

			HomeShots:         intField(row, "HS"),
			AwayShots:         intField(row, "AS"),
			HomeShotsOnTarget: intField(row, "HST"),
			AwayShotsOnTarget: intField(row, "AST"),
			HomeCorners:       intField(row, "HC"),
			AwayCorners:       intField(row, "AC"),
			HomeFouls:         intField(row, "HF"),
			AwayFouls:         intField(row, "AF"),

			HomeYellowCards: intField(row, "HY"),
			AwayYellowCards: intField(row, "AY"),
			HomeRedCards:    intField(row, "HR"),
			AwayRedCards:    intField(row, "AR"),

			HomeOdds: floatField(row, "B365H"),
			DrawOdds: floatField(row, "B365D"),
			AwayOdds: floatField(row, "B365A"),
		}

		if match.IsFinished() {
			match.Status = "finished"
		} else {
			match.Status = "scheduled"
		}

		matches = append(matches, match)
	}

	logger.Info("Parsed matches from CSV", league, season, len(matches))
	return matches, nil
}

// parseMatchDate handles the two date layouts football-data.co.uk has used
// over the years, dd/mm/yy and dd/mm/yyyy
func parseMatchDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	if t, err := time.Parse("02/01/2006", s); err == nil {
		return t, nil
	}
	if t, err := time.Parse("02/01/06", s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("unrecognised date format: %s", s)
}
