package footy

import (
	"sort"
	"strings"

	"github.com/richard-senior/footy/internal/logger"
)

/////////////////////////////////////////////////////////////////////////
////// Team Name Reconciliation
/////////////////////////////////////////////////////////////////////////

// Live feeds and the historical dataset rarely agree on team naming
// ("Paris Saint-Germain FC" vs "Paris SG"). These overrides catch the cases
// normalisation alone cannot resolve. Keys are matched as substrings of the
// lower-cased raw name.
var teamNameOverrides = map[string]string{
	"paris saint-germain": "Paris SG",
	"manchester united":   "Man United",
	"manchester city":     "Man City",
}

// Tokens that carry no identity, removed during normalisation.
// "united" and "city" are ambiguous across many clubs and are handled by
// the override table where they matter.
var teamNameStopwords = map[string]bool{
	"fc":      true,
	"cf":      true,
	"afc":     true,
	"sc":      true,
	"united":  true,
	"city":    true,
	"tilburg": true,
}

// NormalizeTeamName lower-cases the name, strips punctuation that commonly
// varies between feeds and removes stopword tokens
func NormalizeTeamName(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, ".", " ")
	s = strings.ReplaceAll(s, "'", "")

	var kept []string
	for _, tok := range strings.Fields(s) {
		if teamNameStopwords[tok] {
			continue
		}
		kept = append(kept, tok)
	}
	return strings.Join(kept, " ")
}

// MatchTeamName reconciles a raw team name from an external feed against the
// known roster. Resolution is attempted in strict priority order: manual
// overrides, exact normalised match, substring match, then word overlap.
// Returns the canonical name and true, or ("", false) when nothing matches.
func MatchTeamName(raw string, known []string) (string, bool) {
	if raw == "" || len(known) == 0 {
		return "", false
	}

	// sorted copy so substring and overlap passes resolve the same way
	// regardless of roster order
	candidates := make([]string, len(known))
	copy(candidates, known)
	sort.Strings(candidates)

	// 1. manual overrides
	lower := strings.ToLower(raw)
	for fragment, canonical := range teamNameOverrides {
		if strings.Contains(lower, fragment) {
			for _, c := range candidates {
				if c == canonical {
					return canonical, true
				}
			}
			logger.Debug("Override target not in roster", raw, canonical)
		}
	}

	normRaw := NormalizeTeamName(raw)
	if normRaw == "" {
		return "", false
	}

	// 2. exact normalised match
	for _, c := range candidates {
		if NormalizeTeamName(c) == normRaw {
			return c, true
		}
	}

	// 3. substring in either direction
	for _, c := range candidates {
		normC := NormalizeTeamName(c)
		if normC == "" {
			continue
		}
		if strings.Contains(normC, normRaw) || strings.Contains(normRaw, normC) {
			return c, true
		}
	}

	// 4. word overlap, highest score wins, earlier candidate keeps ties
	rawWords := make(map[string]bool)
	for _, w := range strings.Fields(normRaw) {
		rawWords[w] = true
	}

	best := ""
	bestScore := 0
	for _, c := range candidates {
		score := 0
		for _, w := range strings.Fields(NormalizeTeamName(c)) {
			if rawWords[w] {
				score++
			}
		}
		if score > bestScore {
			best = c
			bestScore = score
		}
	}

	if bestScore == 0 {
		logger.Debug("No roster match for team name", raw)
		return "", false
	}
	return best, true
}

// KnownTeamNames returns every canonical team name in the teams table,
// including matches-derived entries, for use as a matcher roster
func KnownTeamNames() ([]string, error) {
	results, err := FindAll(&Team{})
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(results))
	for _, r := range results {
		if t, ok := r.(*Team); ok {
			names = append(names, t.Name)
		}
	}
	sort.Strings(names)
	return names, nil
}
