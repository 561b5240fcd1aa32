package footy

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/richard-senior/footy/internal/logger"
	"github.com/richard-senior/footy/pkg/transport"
)

/////////////////////////////////////////////////////////////////////////
////// Live Fixture Feeds
/////////////////////////////////////////////////////////////////////////

// Fixture is an upcoming or in-play match reported by a live feed.
// Team names are the feed's display names and need reconciling against the
// roster before prediction.
type Fixture struct {
	HomeTeam    string    `json:"homeTeam"`
	AwayTeam    string    `json:"awayTeam"`
	Competition string    `json:"competition"`
	KickOff     time.Time `json:"kickOff"`
	Status      string    `json:"status"`
}

// LiveFeedClient talks to the football-data.org v4 API
type LiveFeedClient struct {
	BaseURL string
	Token   string
}

// NewLiveFeedClient builds a client from the global configuration
func NewLiveFeedClient() *LiveFeedClient {
	return &LiveFeedClient{
		BaseURL: Config.LiveFeedBaseURL,
		Token:   Config.LiveFeedToken,
	}
}

// liveFeedResponse mirrors the subset of the /matches payload we read
type liveFeedResponse struct {
	Matches []struct {
		UTCDate     string `json:"utcDate"`
		Status      string `json:"status"`
		Competition struct {
			Name string `json:"name"`
		} `json:"competition"`
		HomeTeam struct {
			Name      string `json:"name"`
			ShortName string `json:"shortName"`
		} `json:"homeTeam"`
		AwayTeam struct {
			Name      string `json:"name"`
			ShortName string `json:"shortName"`
		} `json:"awayTeam"`
	} `json:"matches"`
}

// TodaysFixtures returns the fixtures the feed lists for today.
// Failures surface as ErrUpstream so callers can degrade to empty results.
func (c *LiveFeedClient) TodaysFixtures() ([]*Fixture, error) {
	url := c.BaseURL + "/matches"
	headers := map[string]string{}
	if c.Token != "" {
		headers["X-Auth-Token"] = c.Token
	}

	var response liveFeedResponse
	if err := transport.GetJSON(url, headers, &response); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUpstream, url, err)
	}

	fixtures := make([]*Fixture, 0, len(response.Matches))
	for _, m := range response.Matches {
		name := func(short string, full string) string {
			if short != "" {
				return short
			}
			return full
		}
		kickOff, err := time.Parse(time.RFC3339, m.UTCDate)
		if err != nil {
			logger.Warn("Ignoring fixture with bad kickoff time", m.UTCDate)
			continue
		}
		fixtures = append(fixtures, &Fixture{
			HomeTeam:    name(m.HomeTeam.ShortName, m.HomeTeam.Name),
			AwayTeam:    name(m.AwayTeam.ShortName, m.AwayTeam.Name),
			Competition: m.Competition.Name,
			KickOff:     kickOff,
			Status:      m.Status,
		})
	}

	logger.Info("Live feed returned fixtures", len(fixtures))
	return fixtures, nil
}

/////////////////////////////////////////////////////////////////////////
////// Fotmob Fixture Scrape
/////////////////////////////////////////////////////////////////////////

// FotmobFixtures scrapes upcoming fixtures for a league overview page.
// Fotmob renders the page from a JSON blob embedded in a __NEXT_DATA__
// script tag, so the fixtures are lifted straight out of that.
func FotmobFixtures(leagueID int) ([]*Fixture, error) {
	url := fmt.Sprintf("%s/en-GB/leagues/%d/overview", Config.FotmobBaseURL, leagueID)

	html, err := transport.GetHtml(url)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUpstream, url, err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("%w: error parsing fotmob HTML: %v", ErrUpstream, err)
	}

	var scriptData string
	doc.Find("script#__NEXT_DATA__").Each(func(i int, s *goquery.Selection) {
		scriptData = s.Text()
	})
	if scriptData == "" {
		return nil, fmt.Errorf("%w: could not find __NEXT_DATA__ script tag", ErrUpstream)
	}

	var data map[string]any
	if err := json.Unmarshal([]byte(scriptData), &data); err != nil {
		return nil, fmt.Errorf("%w: error parsing fotmob JSON: %v", ErrUpstream, err)
	}

	return extractFotmobFixtures(data)
}

// extractFotmobFixtures walks props.pageProps.matches.allMatches picking out
// fixtures that have not yet started
func extractFotmobFixtures(data map[string]any) ([]*Fixture, error) {
	props, ok := data["props"].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: could not find 'props' in fotmob data", ErrUpstream)
	}
	pageProps, ok := props["pageProps"].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: could not find 'pageProps' in fotmob data", ErrUpstream)
	}

	matchesData, ok := pageProps["matches"].(map[string]any)
	if !ok {
		return nil, nil
	}
	allMatches, ok := matchesData["allMatches"].([]any)
	if !ok {
		return nil, nil
	}

	var fixtures []*Fixture
	for _, raw := range allMatches {
		m, ok := raw.(map[string]any)
		if !ok {
			continue
		}

		status, _ := m["status"].(map[string]any)
		if status != nil {
			if started, ok := status["started"].(bool); ok && started {
				continue
			}
		}

		teamName := func(key string) string {
			side, ok := m[key].(map[string]any)
			if !ok {
				return ""
			}
			if name, ok := side["name"].(string); ok {
				return name
			}
			return ""
		}

		fixture := &Fixture{
			HomeTeam: teamName("home"),
			AwayTeam: teamName("away"),
			Status:   "scheduled",
		}
		if fixture.HomeTeam == "" || fixture.AwayTeam == "" {
			continue
		}

		if status != nil {
			if utcTime, ok := status["utcTime"].(string); ok {
				if t, err := time.Parse(time.RFC3339, utcTime); err == nil {
					fixture.KickOff = t
				}
			}
		}

		fixtures = append(fixtures, fixture)
	}

	logger.Info("Fotmob scrape returned fixtures", len(fixtures))
	return fixtures, nil
}
