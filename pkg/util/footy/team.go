package footy

import (
	"fmt"
	"strings"
	"time"

	"github.com/richard-senior/footy/internal/logger"
)

// Compile-time check to ensure Team implements Persistable interface
var _ Persistable = (*Team)(nil)

// Team holds a canonical team name together with the aliases under which
// upstream feeds are known to refer to it. Aliases are stored as a comma
// separated list.
type Team struct {
	Name      string    `json:"name" column:"name" dbtype:"TEXT NOT NULL" primary:"true" index:"true"`
	League    string    `json:"league" column:"league" dbtype:"TEXT" index:"true"`
	Aliases   string    `json:"aliases" column:"aliases" dbtype:"TEXT"`
	CreatedAt time.Time `json:"createdAt" column:"created_at" dbtype:"DATETIME DEFAULT CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `json:"updatedAt" column:"updated_at" dbtype:"DATETIME DEFAULT CURRENT_TIMESTAMP"`
}

/////////////////////////////////////////////////////////////////////////
////// Persistable Interface Implementation
/////////////////////////////////////////////////////////////////////////

// GetPrimaryKey returns the primary key as a map
func (t *Team) GetPrimaryKey() map[string]interface{} {
	return map[string]interface{}{
		"name": t.Name,
	}
}

// GetTableName returns the table name for teams
func (t *Team) GetTableName() string {
	return "teams"
}

// BeforeSave is called before saving the team
func (t *Team) BeforeSave() error {
	now := time.Now()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	t.UpdatedAt = now
	return nil
}

// GetAliases returns the alias list as a slice
func (t *Team) GetAliases() []string {
	if t.Aliases == "" {
		return nil
	}
	parts := strings.Split(t.Aliases, ",")
	var out []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// AddAlias appends an alias if it is not already present
func (t *Team) AddAlias(alias string) {
	alias = strings.TrimSpace(alias)
	if alias == "" || alias == t.Name {
		return
	}
	for _, existing := range t.GetAliases() {
		if strings.EqualFold(existing, alias) {
			return
		}
	}
	if t.Aliases == "" {
		t.Aliases = alias
	} else {
		t.Aliases = t.Aliases + "," + alias
	}
}

/////////////////////////////////////////////////////////////////////////
////// Team Collection Operations
/////////////////////////////////////////////////////////////////////////

// SaveTeams saves teams to database using BulkSave
func SaveTeams(teams []*Team) error {
	logger.Info("Saving teams to database", len(teams))

	// Filter out teams that already exist
	var newTeams []Persistable
	for _, team := range teams {
		exists, err := Exists(team)
		if err != nil {
			logger.Warn("Failed to check if team exists", team.Name, err)
			continue
		}

		if !exists {
			newTeams = append(newTeams, team)
			logger.Debug("Will save new team", team.Name)
		} else {
			logger.Debug("Team already exists", team.Name)
		}
	}

	if len(newTeams) > 0 {
		if err := BulkSave(newTeams); err != nil {
			return fmt.Errorf("failed to bulk save teams: %w", err)
		}
		logger.Info("Bulk saved teams", len(newTeams))
	} else {
		logger.Info("No new teams to save")
	}

	return nil
}

// TeamsFromMatches derives the distinct team names appearing in the given
// matches, preserving the league each was first seen in
func TeamsFromMatches(matches []*Match) []*Team {
	seen := make(map[string]*Team)
	var out []*Team
	for _, m := range matches {
		for _, name := range []string{m.HomeTeam, m.AwayTeam} {
			if name == "" {
				continue
			}
			if _, ok := seen[name]; !ok {
				t := &Team{Name: name, League: m.League}
				seen[name] = t
				out = append(out, t)
			}
		}
	}
	return out
}
