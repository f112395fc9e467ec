package market

import (
	"context"
	"encoding/json"
	"fmt"

	"TrendBot/internal/model"
)

// API is the surface consumers depend on. Client implements it; tests
// substitute MockAPI.
type API interface {
	Trends(ctx context.Context) ([]model.Coin, error)
	Global(ctx context.Context) (model.GlobalSnapshot, error)
	Trending(ctx context.Context) ([]model.TrendingCoin, error)
	FearGreed(ctx context.Context) (json.RawMessage, error)
	Search(ctx context.Context, query string) ([]model.SearchResult, error)
	Coin(ctx context.Context, id string) (model.CoinDetails, error)
	Chart(ctx context.Context, id string, days int) (model.ChartData, error)
	ChartSeries(ctx context.Context, id string, days int) (model.PriceSeries, error)
	GainersLosers(ctx context.Context) (model.GainersLosers, error)
	Warmup(ctx context.Context)
}

// dataAs recovers the typed payload from a response envelope. A mismatch means
// a foreign value was cached under the resource's key.
func dataAs[T any](resp *Response, target string) (T, error) {
	v, ok := resp.Data.(T)
	if !ok {
		var zero T
		return zero, &ParseError{URL: target, Err: fmt.Errorf("unexpected payload type %T", resp.Data)}
	}
	return v, nil
}

// Trends returns the top market listings ordered by market cap.
func (c *Client) Trends(ctx context.Context) ([]model.Coin, error) {
	req := c.trendsRequest()
	resp, err := c.Do(ctx, req)
	if err != nil {
		return nil, err
	}
	return dataAs[[]model.Coin](resp, req.Target)
}

// Global returns the market-wide snapshot.
func (c *Client) Global(ctx context.Context) (model.GlobalSnapshot, error) {
	req := c.globalRequest()
	resp, err := c.Do(ctx, req)
	if err != nil {
		return model.GlobalSnapshot{}, err
	}
	return dataAs[model.GlobalSnapshot](resp, req.Target)
}

// Trending returns the provider's trending list.
func (c *Client) Trending(ctx context.Context) ([]model.TrendingCoin, error) {
	req := c.trendingRequest()
	resp, err := c.Do(ctx, req)
	if err != nil {
		return nil, err
	}
	return dataAs[[]model.TrendingCoin](resp, req.Target)
}

// FearGreed returns the current sentiment index record as provided upstream.
func (c *Client) FearGreed(ctx context.Context) (json.RawMessage, error) {
	req := c.fearGreedRequest()
	resp, err := c.Do(ctx, req)
	if err != nil {
		return nil, err
	}
	return dataAs[json.RawMessage](resp, req.Target)
}

// Search returns up to ten coins matching the query.
func (c *Client) Search(ctx context.Context, query string) ([]model.SearchResult, error) {
	req := c.searchRequest(query)
	resp, err := c.Do(ctx, req)
	if err != nil {
		return nil, err
	}
	return dataAs[[]model.SearchResult](resp, req.Target)
}

// Coin returns the full record for one coin.
func (c *Client) Coin(ctx context.Context, id string) (model.CoinDetails, error) {
	req := c.coinRequest(id)
	resp, err := c.Do(ctx, req)
	if err != nil {
		return model.CoinDetails{}, err
	}
	return dataAs[model.CoinDetails](resp, req.Target)
}

// Chart returns the coin's historical price and volume series.
func (c *Client) Chart(ctx context.Context, id string, days int) (model.ChartData, error) {
	req := c.chartRequest(id, days)
	resp, err := c.Do(ctx, req)
	if err != nil {
		return model.ChartData{}, err
	}
	return dataAs[model.ChartData](resp, req.Target)
}

// ChartSeries fetches a chart and flattens it into a price series for the
// prediction engine.
func (c *Client) ChartSeries(ctx context.Context, id string, days int) (model.PriceSeries, error) {
	chart, err := c.Chart(ctx, id, days)
	if err != nil {
		return model.PriceSeries{}, err
	}
	return model.SeriesFromChart(id, chart), nil
}

// GainersLosers returns the top movers in both directions.
func (c *Client) GainersLosers(ctx context.Context) (model.GainersLosers, error) {
	req := c.gainersLosersRequest()
	resp, err := c.Do(ctx, req)
	if err != nil {
		return model.GainersLosers{}, err
	}
	return dataAs[model.GainersLosers](resp, req.Target)
}

// Warmup primes the cache with the hot resource set.
func (c *Client) Warmup(ctx context.Context) {
	c.Preload(ctx, c.WarmupRequests())
}
