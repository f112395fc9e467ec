package model

// Trend direction of a market record over the last 24 hours.
const (
	TrendUp   = "up"
	TrendDown = "down"
)

// Coin is the canonical market listing record, normalized from the provider's
// markets endpoint.
type Coin struct {
	ID                  string  `json:"id" validate:"required"`
	Name                string  `json:"name" validate:"required"`
	Symbol              string  `json:"symbol" validate:"required"`
	Price               float64 `json:"price"`
	Change24h           float64 `json:"change_24h"`
	MarketCap           float64 `json:"market_cap"`
	Volume24h           float64 `json:"volume_24h"`
	Image               string  `json:"image"`
	MarketCapRank       int     `json:"market_cap_rank"`
	ATH                 float64 `json:"ath"`
	ATHChangePercentage float64 `json:"ath_change_percentage"`
	CirculatingSupply   float64 `json:"circulating_supply"`
	TotalSupply         float64 `json:"total_supply"`
	MaxSupply           float64 `json:"max_supply"`
	Trend               string  `json:"trend"`
}

// GlobalSnapshot summarizes the market as a whole.
type GlobalSnapshot struct {
	TotalMarketCap                  float64            `json:"total_market_cap"`
	TotalVolume                     float64            `json:"total_volume"`
	MarketCapPercentage             map[string]float64 `json:"market_cap_percentage"`
	ActiveCryptocurrencies          int                `json:"active_cryptocurrencies"`
	Markets                         int                `json:"markets"`
	MarketCapChangePercentage24hUSD float64            `json:"market_cap_change_percentage_24h_usd"`
}

// TrendingCoin is a record from the provider's trending list.
type TrendingCoin struct {
	ID            string `json:"id" validate:"required"`
	Name          string `json:"name"`
	Symbol        string `json:"symbol"`
	MarketCapRank int    `json:"market_cap_rank"`
	Thumb         string `json:"thumb"`
	Score         int    `json:"score"`
}

// SearchResult is a record from the provider's search endpoint.
type SearchResult struct {
	ID            string `json:"id" validate:"required"`
	Name          string `json:"name"`
	Symbol        string `json:"symbol"`
	MarketCapRank int    `json:"market_cap_rank"`
	Thumb         string `json:"thumb"`
	Large         string `json:"large"`
}

// CoinDetails is the full per-coin record.
type CoinDetails struct {
	ID                       string  `json:"id" validate:"required"`
	Name                     string  `json:"name"`
	Symbol                   string  `json:"symbol"`
	CurrentPrice             float64 `json:"current_price"`
	MarketCap                float64 `json:"market_cap"`
	PriceChangePercentage24h float64 `json:"price_change_percentage_24h"`
	Volume24h                float64 `json:"volume_24h"`
	MarketCapRank            int     `json:"market_cap_rank"`
	ATH                      float64 `json:"ath"`
	ATHChangePercentage      float64 `json:"ath_change_percentage"`
	CirculatingSupply        float64 `json:"circulating_supply"`
	TotalSupply              float64 `json:"total_supply"`
	MaxSupply                float64 `json:"max_supply"`
	Description              string  `json:"description"`
	Image                    string  `json:"image"`
}

// PricePoint is one point of a chart series.
type PricePoint struct {
	Timestamp int64   `json:"timestamp"`
	Price     float64 `json:"price"`
}

// VolumePoint is one point of a volume series.
type VolumePoint struct {
	Timestamp int64   `json:"timestamp"`
	Volume    float64 `json:"volume"`
}

// ChartData holds a coin's historical price and volume series.
type ChartData struct {
	Prices  []PricePoint  `json:"prices"`
	Volumes []VolumePoint `json:"volumes"`
}

// GainersLosers holds the top movers in both directions.
type GainersLosers struct {
	Gainers []Coin `json:"gainers"`
	Losers  []Coin `json:"losers"`
}
