package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TrendBot/internal/market"
	"TrendBot/internal/model"
	"TrendBot/internal/predictor"
	"TrendBot/internal/store"
)

func newTestServer(t *testing.T, api *market.MockAPI) (*Server, *store.Store) {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "trendbot.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return New(api, st, predictor.NewEngine(nil)), st
}

func do(t *testing.T, s *Server, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.Routes().ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return rec, env
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t, &market.MockAPI{})
	rec, env := do(t, s, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)
}

func TestTrends(t *testing.T) {
	api := &market.MockAPI{CoinsData: []model.Coin{{ID: "bitcoin", Symbol: "BTC", Price: 50000}}}
	s, _ := newTestServer(t, api)

	rec, env := do(t, s, http.MethodGet, "/api/trends", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)

	coins, ok := env.Data.([]any)
	require.True(t, ok)
	require.Len(t, coins, 1)
	assert.Equal(t, "bitcoin", coins[0].(map[string]any)["id"])
}

func TestSearchRequiresQuery(t *testing.T) {
	s, _ := newTestServer(t, &market.MockAPI{})
	rec, env := do(t, s, http.MethodGet, "/api/search", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, env.Success)
	assert.NotEmpty(t, env.Error)
}

func TestUpstreamErrorMapping(t *testing.T) {
	s, _ := newTestServer(t, &market.MockAPI{Err: &market.TimeoutError{URL: "x"}})
	rec, env := do(t, s, http.MethodGet, "/api/global", "")
	assert.Equal(t, http.StatusGatewayTimeout, rec.Code)
	assert.False(t, env.Success)

	s2, _ := newTestServer(t, &market.MockAPI{Err: &market.NetworkError{URL: "x", Status: 500}})
	rec, _ = do(t, s2, http.MethodGet, "/api/global", "")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestPortfolioLifecycle(t *testing.T) {
	s, _ := newTestServer(t, &market.MockAPI{})

	rec, env := do(t, s, http.MethodPost, "/api/portfolio",
		`{"coinId":"bitcoin","amount":0.5,"purchasePrice":40000}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	added := env.Data.(map[string]any)
	assert.Equal(t, "bitcoin", added["coinId"])
	id := strconv.FormatInt(int64(added["id"].(float64)), 10)

	rec, env = do(t, s, http.MethodGet, "/api/portfolio", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, env.Data.([]any), 1)

	rec, _ = do(t, s, http.MethodDelete, "/api/portfolio/"+id, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = do(t, s, http.MethodDelete, "/api/portfolio/"+id, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAddHoldingValidation(t *testing.T) {
	s, _ := newTestServer(t, &market.MockAPI{})

	rec, _ := do(t, s, http.MethodPost, "/api/portfolio", `{"coinId":"bitcoin","amount":0}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = do(t, s, http.MethodPost, "/api/portfolio", `not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAlertLifecycle(t *testing.T) {
	s, _ := newTestServer(t, &market.MockAPI{})

	rec, env := do(t, s, http.MethodPost, "/api/alerts",
		`{"coinId":"bitcoin","type":"above","targetPrice":70000}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "above", env.Data.(map[string]any)["type"])

	rec, _ = do(t, s, http.MethodPost, "/api/alerts",
		`{"coinId":"bitcoin","type":"sideways","targetPrice":70000}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, env = do(t, s, http.MethodGet, "/api/alerts", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, env.Data.([]any), 1)
}

func TestValuation(t *testing.T) {
	api := &market.MockAPI{CoinData: model.CoinDetails{ID: "bitcoin", CurrentPrice: 50000}}
	s, st := newTestServer(t, api)
	_, err := st.AddHolding(model.Holding{CoinID: "bitcoin", Amount: 2, PurchasePrice: 40000})
	require.NoError(t, err)

	rec, env := do(t, s, http.MethodGet, "/api/portfolio/valuation", "")
	require.Equal(t, http.StatusOK, rec.Code)

	v := env.Data.(map[string]any)
	assert.Equal(t, 100000.0, v["value"])
	assert.Equal(t, 80000.0, v["cost"])
	assert.Equal(t, 20000.0, v["profitLoss"])
}

func TestPrediction(t *testing.T) {
	chart := model.ChartData{Prices: make([]model.PricePoint, 120)}
	price := 100.0
	for i := range chart.Prices {
		price *= 1.01
		chart.Prices[i] = model.PricePoint{Timestamp: int64(i), Price: price}
	}
	api := &market.MockAPI{ChartData: chart}
	s, _ := newTestServer(t, api)

	rec, env := do(t, s, http.MethodGet, "/api/prediction/bitcoin?timeframe=7d", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, env.Success)

	p := env.Data.(map[string]any)
	assert.Contains(t, []any{"bullish", "bearish"}, p["direction"])
	assert.Equal(t, 7.0, p["timeframeDays"])
	assert.NotNil(t, p["targets"])
	assert.NotNil(t, p["analysis"])
}

func TestChartRejectsBadDays(t *testing.T) {
	s, _ := newTestServer(t, &market.MockAPI{})
	rec, _ := do(t, s, http.MethodGet, "/api/chart/bitcoin?days=-1", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
