package market

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"TrendBot/internal/model"
)

var validate = validator.New()

const (
	searchResultLimit = 10
	moversLimit       = 10
)

// geckoCoin is the provider's markets listing record.
type geckoCoin struct {
	ID                       string  `json:"id"`
	Symbol                   string  `json:"symbol"`
	Name                     string  `json:"name"`
	Image                    string  `json:"image"`
	CurrentPrice             float64 `json:"current_price"`
	MarketCap                float64 `json:"market_cap"`
	MarketCapRank            int     `json:"market_cap_rank"`
	TotalVolume              float64 `json:"total_volume"`
	PriceChangePercentage24h float64 `json:"price_change_percentage_24h"`
	CirculatingSupply        float64 `json:"circulating_supply"`
	TotalSupply              float64 `json:"total_supply"`
	MaxSupply                float64 `json:"max_supply"`
	ATH                      float64 `json:"ath"`
	ATHChangePercentage      float64 `json:"ath_change_percentage"`
}

func (g geckoCoin) normalize() model.Coin {
	trend := model.TrendUp
	if g.PriceChangePercentage24h < 0 {
		trend = model.TrendDown
	}
	return model.Coin{
		ID:                  g.ID,
		Name:                g.Name,
		Symbol:              strings.ToUpper(g.Symbol),
		Price:               g.CurrentPrice,
		Change24h:           g.PriceChangePercentage24h,
		MarketCap:           g.MarketCap,
		Volume24h:           g.TotalVolume,
		Image:               g.Image,
		MarketCapRank:       g.MarketCapRank,
		ATH:                 g.ATH,
		ATHChangePercentage: g.ATHChangePercentage,
		CirculatingSupply:   g.CirculatingSupply,
		TotalSupply:         g.TotalSupply,
		MaxSupply:           g.MaxSupply,
		Trend:               trend,
	}
}

func decodeCoins(body []byte) ([]model.Coin, error) {
	var raw []geckoCoin
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, err
	}
	coins := make([]model.Coin, len(raw))
	for i, g := range raw {
		coins[i] = g.normalize()
		if err := validate.Struct(coins[i]); err != nil {
			return nil, fmt.Errorf("listing record %d: %w", i, err)
		}
	}
	return coins, nil
}

func parseCoins(body []byte) (any, error) {
	coins, err := decodeCoins(body)
	if err != nil {
		return nil, err
	}
	return coins, nil
}

func parseGainersLosers(body []byte) (any, error) {
	coins, err := decodeCoins(body)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(coins, func(i, j int) bool { return coins[i].Change24h > coins[j].Change24h })

	n := len(coins)
	top := moversLimit
	if top > n {
		top = n
	}
	gl := model.GainersLosers{
		Gainers: append([]model.Coin(nil), coins[:top]...),
		Losers:  append([]model.Coin(nil), coins[n-top:]...),
	}
	// Losers are presented worst first.
	for i, j := 0, len(gl.Losers)-1; i < j; i, j = i+1, j-1 {
		gl.Losers[i], gl.Losers[j] = gl.Losers[j], gl.Losers[i]
	}
	return gl, nil
}

func parseGlobal(body []byte) (any, error) {
	var raw struct {
		Data struct {
			ActiveCryptocurrencies          int                `json:"active_cryptocurrencies"`
			Markets                         int                `json:"markets"`
			TotalMarketCap                  map[string]float64 `json:"total_market_cap"`
			TotalVolume                     map[string]float64 `json:"total_volume"`
			MarketCapPercentage             map[string]float64 `json:"market_cap_percentage"`
			MarketCapChangePercentage24hUSD float64            `json:"market_cap_change_percentage_24h_usd"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, err
	}
	return model.GlobalSnapshot{
		TotalMarketCap:                  raw.Data.TotalMarketCap["usd"],
		TotalVolume:                     raw.Data.TotalVolume["usd"],
		MarketCapPercentage:             raw.Data.MarketCapPercentage,
		ActiveCryptocurrencies:          raw.Data.ActiveCryptocurrencies,
		Markets:                         raw.Data.Markets,
		MarketCapChangePercentage24hUSD: raw.Data.MarketCapChangePercentage24hUSD,
	}, nil
}

func parseTrending(body []byte) (any, error) {
	var raw struct {
		Coins []struct {
			Item struct {
				ID            string `json:"id"`
				Name          string `json:"name"`
				Symbol        string `json:"symbol"`
				MarketCapRank int    `json:"market_cap_rank"`
				Thumb         string `json:"thumb"`
				Score         int    `json:"score"`
			} `json:"item"`
		} `json:"coins"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, err
	}
	coins := make([]model.TrendingCoin, len(raw.Coins))
	for i, c := range raw.Coins {
		coins[i] = model.TrendingCoin{
			ID:            c.Item.ID,
			Name:          c.Item.Name,
			Symbol:        strings.ToUpper(c.Item.Symbol),
			MarketCapRank: c.Item.MarketCapRank,
			Thumb:         c.Item.Thumb,
			Score:         c.Item.Score,
		}
	}
	return coins, nil
}

// parseFearGreed passes the provider's first index record through untouched.
func parseFearGreed(body []byte) (any, error) {
	var raw struct {
		Data []json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, err
	}
	if len(raw.Data) == 0 {
		return nil, fmt.Errorf("empty index data")
	}
	return raw.Data[0], nil
}

func parseSearch(body []byte) (any, error) {
	var raw struct {
		Coins []struct {
			ID            string `json:"id"`
			Name          string `json:"name"`
			Symbol        string `json:"symbol"`
			MarketCapRank int    `json:"market_cap_rank"`
			Thumb         string `json:"thumb"`
			Large         string `json:"large"`
		} `json:"coins"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, err
	}
	if len(raw.Coins) > searchResultLimit {
		raw.Coins = raw.Coins[:searchResultLimit]
	}
	results := make([]model.SearchResult, len(raw.Coins))
	for i, c := range raw.Coins {
		results[i] = model.SearchResult{
			ID:            c.ID,
			Name:          c.Name,
			Symbol:        strings.ToUpper(c.Symbol),
			MarketCapRank: c.MarketCapRank,
			Thumb:         c.Thumb,
			Large:         c.Large,
		}
	}
	return results, nil
}

func parseCoinDetails(body []byte) (any, error) {
	var raw struct {
		ID            string `json:"id"`
		Symbol        string `json:"symbol"`
		Name          string `json:"name"`
		MarketCapRank int    `json:"market_cap_rank"`
		Description   struct {
			EN string `json:"en"`
		} `json:"description"`
		Image struct {
			Large string `json:"large"`
		} `json:"image"`
		MarketData struct {
			CurrentPrice             map[string]float64 `json:"current_price"`
			MarketCap                map[string]float64 `json:"market_cap"`
			TotalVolume              map[string]float64 `json:"total_volume"`
			PriceChangePercentage24h float64            `json:"price_change_percentage_24h"`
			ATH                      map[string]float64 `json:"ath"`
			ATHChangePercentage      map[string]float64 `json:"ath_change_percentage"`
			CirculatingSupply        float64            `json:"circulating_supply"`
			TotalSupply              float64            `json:"total_supply"`
			MaxSupply                float64            `json:"max_supply"`
		} `json:"market_data"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, err
	}
	details := model.CoinDetails{
		ID:                       raw.ID,
		Name:                     raw.Name,
		Symbol:                   strings.ToUpper(raw.Symbol),
		CurrentPrice:             raw.MarketData.CurrentPrice["usd"],
		MarketCap:                raw.MarketData.MarketCap["usd"],
		PriceChangePercentage24h: raw.MarketData.PriceChangePercentage24h,
		Volume24h:                raw.MarketData.TotalVolume["usd"],
		MarketCapRank:            raw.MarketCapRank,
		ATH:                      raw.MarketData.ATH["usd"],
		ATHChangePercentage:      raw.MarketData.ATHChangePercentage["usd"],
		CirculatingSupply:        raw.MarketData.CirculatingSupply,
		TotalSupply:              raw.MarketData.TotalSupply,
		MaxSupply:                raw.MarketData.MaxSupply,
		Description:              raw.Description.EN,
		Image:                    raw.Image.Large,
	}
	if err := validate.Struct(details); err != nil {
		return nil, err
	}
	return details, nil
}

func parseChart(body []byte) (any, error) {
	var raw struct {
		Prices       [][2]float64 `json:"prices"`
		TotalVolumes [][2]float64 `json:"total_volumes"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, err
	}
	chart := model.ChartData{
		Prices:  make([]model.PricePoint, len(raw.Prices)),
		Volumes: make([]model.VolumePoint, len(raw.TotalVolumes)),
	}
	for i, p := range raw.Prices {
		chart.Prices[i] = model.PricePoint{Timestamp: int64(p[0]), Price: p[1]}
	}
	for i, v := range raw.TotalVolumes {
		chart.Volumes[i] = model.VolumePoint{Timestamp: int64(v[0]), Volume: v[1]}
	}
	return chart, nil
}
