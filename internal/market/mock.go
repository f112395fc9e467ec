package market

import (
	"context"
	"encoding/json"
	"sync"

	"TrendBot/internal/model"
)

// MockAPI returns controllable fixed data for development and testing.
// Unset fields yield zero values; Err, when set, is returned by every method.
type MockAPI struct {
	CoinsData     []model.Coin
	GlobalData    model.GlobalSnapshot
	TrendingData  []model.TrendingCoin
	FearGreedData json.RawMessage
	SearchData    []model.SearchResult
	CoinData      model.CoinDetails
	ChartData     model.ChartData
	MoversData    model.GainersLosers
	Err           error

	mu    sync.Mutex
	calls map[string]int
}

func (m *MockAPI) record(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.calls == nil {
		m.calls = make(map[string]int)
	}
	m.calls[name]++
}

// Calls reports how many times the named method ran.
func (m *MockAPI) Calls(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[name]
}

func (m *MockAPI) Trends(context.Context) ([]model.Coin, error) {
	m.record("trends")
	return m.CoinsData, m.Err
}

func (m *MockAPI) Global(context.Context) (model.GlobalSnapshot, error) {
	m.record("global")
	return m.GlobalData, m.Err
}

func (m *MockAPI) Trending(context.Context) ([]model.TrendingCoin, error) {
	m.record("trending")
	return m.TrendingData, m.Err
}

func (m *MockAPI) FearGreed(context.Context) (json.RawMessage, error) {
	m.record("fear-greed")
	return m.FearGreedData, m.Err
}

func (m *MockAPI) Search(_ context.Context, _ string) ([]model.SearchResult, error) {
	m.record("search")
	return m.SearchData, m.Err
}

func (m *MockAPI) Coin(_ context.Context, _ string) (model.CoinDetails, error) {
	m.record("coin")
	return m.CoinData, m.Err
}

func (m *MockAPI) Chart(_ context.Context, _ string, _ int) (model.ChartData, error) {
	m.record("chart")
	return m.ChartData, m.Err
}

func (m *MockAPI) ChartSeries(_ context.Context, id string, _ int) (model.PriceSeries, error) {
	m.record("chart-series")
	if m.Err != nil {
		return model.PriceSeries{}, m.Err
	}
	return model.SeriesFromChart(id, m.ChartData), nil
}

func (m *MockAPI) GainersLosers(context.Context) (model.GainersLosers, error) {
	m.record("gainers-losers")
	return m.MoversData, m.Err
}

func (m *MockAPI) Warmup(context.Context) {
	m.record("warmup")
}
