package footy

import (
	"fmt"

	"github.com/richard-senior/footy/pkg/util"
)

func ParseSeason(season any) (string, error) {
	if season == nil {
		return "", fmt.Errorf("must pass a season")
	}
	ss, err := util.GetAsString(season)
	if err != nil {
		return "", err
	}
	// determine the format of this season
	// the format we want to return is YYYY/YYYY This may already be the format
	// if it is, then we can just return it. It's also possible that the delimiter is a hyphen (-)
	// in which case we need to convert it to a slash (/)
	if len(ss) == 9 && ss[4] == '-' {
		return fmt.Sprintf("%s/%s", ss[:4], ss[5:]), nil
	} else if len(ss) == 9 && ss[4] == '/' {
		return ss, nil
	}
	// this could be a short form season of the type YYYY/YY as in 2023/24 (again delimiter may be hyphen)
	// we should return it by determining the missing prefix in the abbreviated year and adding it in
	if len(ss) == 7 && (ss[4] == '-' || ss[4] == '/') {
		return fmt.Sprintf("%s/20%s", ss[:4], ss[5:]), nil
	}
	// this could be a download path code of the form 2425 meaning 2024/2025
	// the two pairs of digits are consecutive years in the 21st century
	if len(ss) == 4 {
		return fmt.Sprintf("20%s/20%s", ss[:2], ss[2:]), nil
	}
	return "", fmt.Errorf("invalid season format: %s", ss)
}

// Given a season of the form yyyy/yyyy+1 return the first year
func GetFirstYear(season any) (int, error) {
	s, err := ParseSeason(season)
	if err != nil {
		return 0, err
	}
	return util.GetAsInteger(s[:4])
}

// Given a season of the form yyyy/yyyy+1 return the second year
func GetSecondYear(season any) (int, error) {
	s, err := ParseSeason(season)
	if err != nil {
		return 0, err
	}
	return util.GetAsInteger(s[5:])
}

/**
* Returns true if the given two parameters represent the same season (year/year+1)
 */
func IsSameSeason(s1 any, s2 any) (bool, error) {
	season1, err := ParseSeason(s1)
	if err != nil {
		return false, err
	}
	season2, err := ParseSeason(s2)
	if err != nil {
		return false, err
	}
	return season1 == season2, nil
}

// SeasonPathCode collapses a season into the four digit code used in
// football-data.co.uk download paths
// ie 2024/2025 becomes 2425
func SeasonPathCode(season any) (string, error) {
	s, err := ParseSeason(season)
	if err != nil {
		return "", err
	}
	return s[2:4] + s[7:], nil
}
