package market

import (
	"fmt"
	"net/url"
	"time"
)

// Provider endpoints. The fear & greed index lives on a different provider
// than the rest of the catalog.
const (
	DefaultBaseURL      = "https://api.coingecko.com/api/v3"
	DefaultFearGreedURL = "https://api.alternative.me/fng/"
)

// Per-resource cache TTLs. Fast-moving listings expire quickly; slow-moving
// metadata lives longer.
const (
	ttlListing   = 2 * time.Minute
	ttlGlobal    = 5 * time.Minute
	ttlTrending  = 10 * time.Minute
	ttlFearGreed = 30 * time.Minute
	ttlSearch    = 10 * time.Minute
	ttlCoin      = 5 * time.Minute
	ttlChart     = 5 * time.Minute
)

func (c *Client) trendsRequest() Request {
	target := c.baseURL + "/coins/markets?vs_currency=usd&order=market_cap_desc&per_page=50&page=1&sparkline=false"
	return Request{Target: target, CacheKey: "trends", TTL: ttlListing, Parse: parseCoins}
}

func (c *Client) globalRequest() Request {
	return Request{Target: c.baseURL + "/global", CacheKey: "global", TTL: ttlGlobal, Parse: parseGlobal}
}

func (c *Client) trendingRequest() Request {
	return Request{Target: c.baseURL + "/search/trending", CacheKey: "trending", TTL: ttlTrending, Parse: parseTrending}
}

func (c *Client) fearGreedRequest() Request {
	return Request{Target: c.fearGreedURL, CacheKey: "fear-greed", TTL: ttlFearGreed, Parse: parseFearGreed}
}

func (c *Client) searchRequest(query string) Request {
	target := c.baseURL + "/search?query=" + url.QueryEscape(query)
	return Request{Target: target, CacheKey: "search:" + query, TTL: ttlSearch, Parse: parseSearch}
}

func (c *Client) coinRequest(id string) Request {
	target := c.baseURL + "/coins/" + url.PathEscape(id) +
		"?localization=false&tickers=false&community_data=false&developer_data=false"
	return Request{Target: target, CacheKey: "coin:" + id, TTL: ttlCoin, Parse: parseCoinDetails}
}

func (c *Client) chartRequest(id string, days int) Request {
	target := fmt.Sprintf("%s/coins/%s/market_chart?vs_currency=usd&days=%d", c.baseURL, url.PathEscape(id), days)
	// Above 90 days the provider only serves daily granularity; ask for it
	// explicitly so the cache key and payload stay stable.
	if days > 90 {
		target += "&interval=daily"
	}
	return Request{Target: target, CacheKey: fmt.Sprintf("chart:%s:%d", id, days), TTL: ttlChart, Parse: parseChart}
}

func (c *Client) gainersLosersRequest() Request {
	target := c.baseURL + "/coins/markets?vs_currency=usd&order=market_cap_desc&per_page=50&page=1&sparkline=false&price_change_percentage=24h"
	return Request{Target: target, CacheKey: "gainers-losers", TTL: ttlListing, Parse: parseGainersLosers}
}

// WarmupRequests is the set Preload uses to prime the cache at startup and on
// each scheduled refresh.
func (c *Client) WarmupRequests() []Request {
	return []Request{
		c.trendsRequest(),
		c.globalRequest(),
		c.trendingRequest(),
		c.fearGreedRequest(),
	}
}
