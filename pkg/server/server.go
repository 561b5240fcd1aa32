package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/richard-senior/footy/internal/logger"
	"github.com/richard-senior/footy/pkg/util/footy"
)

// Server exposes the prediction snapshot over a small JSON API.
// The predictor is built once at startup and shared read-only across
// requests, so handlers never mutate state.
type Server struct {
	predictor *footy.Predictor
	feed      *footy.LiveFeedClient
	router    *mux.Router
}

// NewServer wires the routes around an already constructed predictor
func NewServer(predictor *footy.Predictor, feed *footy.LiveFeedClient) *Server {
	s := &Server{
		predictor: predictor,
		feed:      feed,
		router:    mux.NewRouter(),
	}

	api := s.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	api.HandleFunc("/predict", s.handlePredict).Methods(http.MethodGet)
	api.HandleFunc("/predictions/live", s.handleLivePredictions).Methods(http.MethodGet)

	return s
}

// Router returns the underlying router, useful for tests
func (s *Server) Router() http.Handler {
	return s.router
}

// Start blocks serving HTTP on the configured port
func (s *Server) Start() error {
	addr := ":" + footy.Config.ServerPort
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	logger.Info("Serving predictions", addr)
	return srv.ListenAndServe()
}

/////////////////////////////////////////////////////////////////////////
////// Handlers
/////////////////////////////////////////////////////////////////////////

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"teams":  len(s.predictor.Roster()),
	})
}

// handlePredict predicts a single fixture named by query parameters.
// Raw names are reconciled against the roster first, so feed-style names
// like "Manchester United FC" work.
func (s *Server) handlePredict(w http.ResponseWriter, r *http.Request) {
	rawHome := r.URL.Query().Get("home")
	rawAway := r.URL.Query().Get("away")
	if rawHome == "" || rawAway == "" {
		writeError(w, http.StatusBadRequest, "both home and away query parameters are required")
		return
	}

	home, err := s.predictor.ResolveTeam(rawHome)
	if err != nil {
		writeError(w, http.StatusNotFound, fmt.Sprintf("unknown home team: %s", rawHome))
		return
	}
	away, err := s.predictor.ResolveTeam(rawAway)
	if err != nil {
		writeError(w, http.StatusNotFound, fmt.Sprintf("unknown away team: %s", rawAway))
		return
	}

	prediction, err := s.predictor.PredictMatch(home, away)
	if err != nil {
		if errors.Is(err, footy.ErrMissingTeam) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		logger.Error("Prediction failed", home, away, err)
		writeError(w, http.StatusInternalServerError, "prediction failed")
		return
	}

	writeJSON(w, http.StatusOK, prediction)
}

// handleLivePredictions predicts every fixture the live feed lists today.
// Fixtures whose teams cannot be reconciled are skipped, and an unavailable
// feed degrades to an empty list rather than an error.
func (s *Server) handleLivePredictions(w http.ResponseWriter, r *http.Request) {
	fixtures, err := s.feed.TodaysFixtures()
	if err != nil {
		logger.Warn("Live feed unavailable", err)
		writeJSON(w, http.StatusOK, []any{})
		return
	}

	var pairs [][2]string
	for _, f := range fixtures {
		home, err := s.predictor.ResolveTeam(f.HomeTeam)
		if err != nil {
			logger.Debug("Skipping fixture with unknown home team", f.HomeTeam)
			continue
		}
		away, err := s.predictor.ResolveTeam(f.AwayTeam)
		if err != nil {
			logger.Debug("Skipping fixture with unknown away team", f.AwayTeam)
			continue
		}
		pairs = append(pairs, [2]string{home, away})
	}

	predictions := s.predictor.PredictMatches(pairs)
	if predictions == nil {
		predictions = []*footy.MatchPrediction{}
	}
	writeJSON(w, http.StatusOK, predictions)
}

/////////////////////////////////////////////////////////////////////////
////// Response Helpers
/////////////////////////////////////////////////////////////////////////

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("Failed to encode response", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
