// Package server exposes the JSON API: market data, predictions, portfolio,
// and price alerts.
package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"TrendBot/internal/market"
	"TrendBot/internal/model"
	"TrendBot/internal/predictor"
	"TrendBot/internal/store"
)

const (
	defaultChartDays = 7
	// predictionChartDays gives the engine enough history for the long
	// moving-average window regardless of the requested timeframe.
	predictionChartDays = 90
)

// Portfolio is the slice of the store the API needs.
type Portfolio interface {
	AddHolding(model.Holding) (model.Holding, error)
	Holdings() ([]model.Holding, error)
	DeleteHolding(id int64) error
	AddAlert(model.Alert) (model.Alert, error)
	Alerts() ([]model.Alert, error)
	DeleteAlert(id int64) error
}

// Server routes API requests to the market client, prediction engine, and
// store.
type Server struct {
	api       market.API
	portfolio Portfolio
	engine    *predictor.Engine
	log       zerolog.Logger
}

// New creates a server.
func New(api market.API, portfolio Portfolio, engine *predictor.Engine) *Server {
	return &Server{
		api:       api,
		portfolio: portfolio,
		engine:    engine,
		log:       log.With().Str("component", "server").Logger(),
	}
}

// Routes builds the HTTP handler.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", s.handleHealth)

	mux.HandleFunc("GET /api/trends", s.handleTrends)
	mux.HandleFunc("GET /api/global", s.handleGlobal)
	mux.HandleFunc("GET /api/trending", s.handleTrending)
	mux.HandleFunc("GET /api/fear-greed", s.handleFearGreed)
	mux.HandleFunc("GET /api/search", s.handleSearch)
	mux.HandleFunc("GET /api/gainers-losers", s.handleGainersLosers)
	mux.HandleFunc("GET /api/coin/{id}", s.handleCoin)
	mux.HandleFunc("GET /api/chart/{id}", s.handleChart)
	mux.HandleFunc("GET /api/prediction/{id}", s.handlePrediction)

	mux.HandleFunc("GET /api/portfolio", s.handleListHoldings)
	mux.HandleFunc("POST /api/portfolio", s.handleAddHolding)
	mux.HandleFunc("DELETE /api/portfolio/{id}", s.handleDeleteHolding)
	mux.HandleFunc("GET /api/portfolio/valuation", s.handleValuation)

	mux.HandleFunc("GET /api/alerts", s.handleListAlerts)
	mux.HandleFunc("POST /api/alerts", s.handleAddAlert)
	mux.HandleFunc("DELETE /api/alerts/{id}", s.handleDeleteAlert)

	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respond(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleTrends(w http.ResponseWriter, r *http.Request) {
	coins, err := s.api.Trends(r.Context())
	s.result(w, coins, err)
}

func (s *Server) handleGlobal(w http.ResponseWriter, r *http.Request) {
	snapshot, err := s.api.Global(r.Context())
	s.result(w, snapshot, err)
}

func (s *Server) handleTrending(w http.ResponseWriter, r *http.Request) {
	coins, err := s.api.Trending(r.Context())
	s.result(w, coins, err)
}

func (s *Server) handleFearGreed(w http.ResponseWriter, r *http.Request) {
	index, err := s.api.FearGreed(r.Context())
	s.result(w, index, err)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		s.fail(w, http.StatusBadRequest, "missing query parameter q")
		return
	}
	results, err := s.api.Search(r.Context(), query)
	s.result(w, results, err)
}

func (s *Server) handleGainersLosers(w http.ResponseWriter, r *http.Request) {
	movers, err := s.api.GainersLosers(r.Context())
	s.result(w, movers, err)
}

func (s *Server) handleCoin(w http.ResponseWriter, r *http.Request) {
	details, err := s.api.Coin(r.Context(), r.PathValue("id"))
	s.result(w, details, err)
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	days := defaultChartDays
	if v := r.URL.Query().Get("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			s.fail(w, http.StatusBadRequest, "days must be a positive integer")
			return
		}
		days = n
	}
	chart, err := s.api.Chart(r.Context(), r.PathValue("id"), days)
	s.result(w, chart, err)
}

func (s *Server) handlePrediction(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	timeframe := r.URL.Query().Get("timeframe")

	series, err := s.api.ChartSeries(r.Context(), id, predictionChartDays)
	if err != nil {
		s.error(w, err)
		return
	}
	s.respond(w, http.StatusOK, s.engine.Predict(series, timeframe))
}

func (s *Server) handleListHoldings(w http.ResponseWriter, r *http.Request) {
	holdings, err := s.portfolio.Holdings()
	s.result(w, holdings, err)
}

func (s *Server) handleAddHolding(w http.ResponseWriter, r *http.Request) {
	var h model.Holding
	if err := json.NewDecoder(r.Body).Decode(&h); err != nil {
		s.fail(w, http.StatusBadRequest, "malformed request body")
		return
	}
	added, err := s.portfolio.AddHolding(h)
	if err != nil {
		s.error(w, err)
		return
	}
	s.respond(w, http.StatusCreated, added)
}

func (s *Server) handleDeleteHolding(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		s.fail(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := s.portfolio.DeleteHolding(id); err != nil {
		s.error(w, err)
		return
	}
	s.respond(w, http.StatusOK, map[string]int64{"deleted": id})
}

// handleValuation prices the portfolio with one fetch per distinct held coin.
// Coins whose price fetch fails appear in the valuation's MissingPrices.
func (s *Server) handleValuation(w http.ResponseWriter, r *http.Request) {
	holdings, err := s.portfolio.Holdings()
	if err != nil {
		s.error(w, err)
		return
	}

	prices := make(map[string]float64)
	for _, h := range holdings {
		if _, ok := prices[h.CoinID]; ok {
			continue
		}
		details, err := s.api.Coin(r.Context(), h.CoinID)
		if err != nil {
			s.log.Warn().Str("coin", h.CoinID).Err(err).Msg("fetch price for valuation")
			continue
		}
		prices[h.CoinID] = details.CurrentPrice
	}
	s.respond(w, http.StatusOK, store.Valuate(holdings, prices))
}

func (s *Server) handleListAlerts(w http.ResponseWriter, r *http.Request) {
	alerts, err := s.portfolio.Alerts()
	s.result(w, alerts, err)
}

func (s *Server) handleAddAlert(w http.ResponseWriter, r *http.Request) {
	var a model.Alert
	if err := json.NewDecoder(r.Body).Decode(&a); err != nil {
		s.fail(w, http.StatusBadRequest, "malformed request body")
		return
	}
	added, err := s.portfolio.AddAlert(a)
	if err != nil {
		s.error(w, err)
		return
	}
	s.respond(w, http.StatusCreated, added)
}

func (s *Server) handleDeleteAlert(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		s.fail(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := s.portfolio.DeleteAlert(id); err != nil {
		s.error(w, err)
		return
	}
	s.respond(w, http.StatusOK, map[string]int64{"deleted": id})
}

// envelope mirrors the request layer's response shape.
type envelope struct {
	Success   bool   `json:"success"`
	Data      any    `json:"data,omitempty"`
	Error     string `json:"error,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

func (s *Server) result(w http.ResponseWriter, data any, err error) {
	if err != nil {
		s.error(w, err)
		return
	}
	s.respond(w, http.StatusOK, data)
}

func (s *Server) respond(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(envelope{Success: true, Data: data, Timestamp: time.Now().Unix()}); err != nil {
		s.log.Error().Err(err).Msg("encode response")
	}
}

// error maps an internal error to a status code. Detail is logged; clients
// get a generic message for upstream failures.
func (s *Server) error(w http.ResponseWriter, err error) {
	var (
		netErr     *market.NetworkError
		timeoutErr *market.TimeoutError
		parseErr   *market.ParseError
	)
	switch {
	case errors.Is(err, store.ErrValidation):
		s.fail(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, store.ErrNotFound):
		s.fail(w, http.StatusNotFound, "not found")
	case errors.As(err, &timeoutErr):
		s.log.Warn().Err(err).Msg("upstream timeout")
		s.fail(w, http.StatusGatewayTimeout, "upstream timed out, try again")
	case errors.As(err, &netErr), errors.As(err, &parseErr):
		s.log.Warn().Err(err).Msg("upstream failure")
		s.fail(w, http.StatusBadGateway, "upstream unavailable, try again")
	default:
		s.log.Error().Err(err).Msg("internal error")
		s.fail(w, http.StatusInternalServerError, "internal error")
	}
}

func (s *Server) fail(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(envelope{Error: msg, Timestamp: time.Now().Unix()}); err != nil {
		s.log.Error().Err(err).Msg("encode response")
	}
}
