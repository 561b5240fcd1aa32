package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/richard-senior/footy/pkg/util/footy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// serverFixture builds a server around a predictor trained on a small
// double round-robin so every team has both a home and an away row
func serverFixture(t *testing.T, feed *footy.LiveFeedClient) *Server {
	t.Helper()

	teams := []string{"Man United", "Chelsea", "Arsenal", "Leeds"}
	var matches []*footy.Match
	day := 0
	for _, home := range teams {
		for _, away := range teams {
			if home == away {
				continue
			}
			m := &footy.Match{
				Date:              time.Date(2025, 8, 1, 15, 0, 0, 0, time.UTC).AddDate(0, 0, day*3),
				League:            "E0",
				Season:            "2025/2026",
				Status:            "finished",
				HomeTeam:          home,
				AwayTeam:          away,
				FullTimeHomeGoals: (day % 3) + 1,
				FullTimeAwayGoals: day % 2,
				HomeShots:         12,
				AwayShots:         9,
				HomeShotsOnTarget: 5,
				AwayShotsOnTarget: 3,
				HomeFouls:         10,
				AwayFouls:         11,
			}
			m.ID = fmt.Sprintf("fixture-%d", day)
			matches = append(matches, m)
			day++
		}
	}

	rows, scaler, err := footy.EngineerFeatures(matches)
	require.NoError(t, err, "Feature engineering should succeed on the fixture set")

	predictor := footy.NewPredictor(rows, scaler, footy.DefaultScorers(scaler))
	return NewServer(predictor, feed)
}

func get(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoint(t *testing.T) {
	s := serverFixture(t, footy.NewLiveFeedClient())

	rec := get(t, s, "/api/health")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, float64(4), body["teams"], "All four fixture teams should be in the roster")
}

func TestPredictEndpoint(t *testing.T) {
	s := serverFixture(t, footy.NewLiveFeedClient())

	rec := get(t, s, "/api/predict?home=Arsenal&away=Chelsea")
	require.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())

	var prediction footy.MatchPrediction
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &prediction))
	assert.Equal(t, "Arsenal", prediction.HomeTeam)
	assert.Equal(t, "Chelsea", prediction.AwayTeam)

	total := prediction.Outcome.HomeWinProbability +
		prediction.Outcome.DrawProbability +
		prediction.Outcome.AwayWinProbability
	assert.InDelta(t, 1.0, total, 1e-9, "Outcome probabilities must sum to one")
	assert.Contains(t, []string{"H", "D", "A"}, prediction.Outcome.Label)
	assert.Greater(t, prediction.Over1p5.Probability, 0.0)
	assert.Less(t, prediction.BTTS.Probability, 1.0)
}

func TestPredictEndpointResolvesFeedStyleNames(t *testing.T) {
	s := serverFixture(t, footy.NewLiveFeedClient())

	rec := get(t, s, "/api/predict?home=Manchester+United+FC&away=Chelsea+FC")
	require.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())

	var prediction footy.MatchPrediction
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &prediction))
	assert.Equal(t, "Man United", prediction.HomeTeam)
	assert.Equal(t, "Chelsea", prediction.AwayTeam)
}

func TestPredictEndpointMissingParams(t *testing.T) {
	s := serverFixture(t, footy.NewLiveFeedClient())

	rec := get(t, s, "/api/predict?home=Arsenal")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = get(t, s, "/api/predict")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPredictEndpointUnknownTeam(t *testing.T) {
	s := serverFixture(t, footy.NewLiveFeedClient())

	rec := get(t, s, "/api/predict?home=Real+Madrid&away=Chelsea")
	require.Equal(t, http.StatusNotFound, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body["error"], "Real Madrid")
}

func TestLivePredictionsDegradeWhenFeedUnavailable(t *testing.T) {
	// Nothing listens on this port, so the feed call fails immediately
	feed := &footy.LiveFeedClient{BaseURL: "http://127.0.0.1:1", Token: ""}
	s := serverFixture(t, feed)

	rec := get(t, s, "/api/predictions/live")
	require.Equal(t, http.StatusOK, rec.Code, "Feed outages must not take the endpoint down")

	var predictions []any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &predictions))
	assert.Empty(t, predictions)
}
