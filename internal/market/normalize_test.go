package market

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TrendBot/internal/model"
)

func TestParseCoins(t *testing.T) {
	body := []byte(`[
		{"id":"bitcoin","symbol":"btc","name":"Bitcoin","current_price":50000,"price_change_percentage_24h":2.5,"market_cap_rank":1,"ath":69000,"max_supply":21000000},
		{"id":"ethereum","symbol":"eth","name":"Ethereum","current_price":3000,"price_change_percentage_24h":-1.2,"market_cap_rank":2}
	]`)

	v, err := parseCoins(body)
	require.NoError(t, err)
	coins := v.([]model.Coin)
	require.Len(t, coins, 2)

	assert.Equal(t, "BTC", coins[0].Symbol, "symbols are upper-cased")
	assert.Equal(t, model.TrendUp, coins[0].Trend)
	assert.Equal(t, 21000000.0, coins[0].MaxSupply)
	assert.Equal(t, model.TrendDown, coins[1].Trend)
}

func TestParseCoinsRejectsIncompleteRecords(t *testing.T) {
	_, err := parseCoins([]byte(`[{"symbol":"btc","current_price":50000}]`))
	assert.Error(t, err)
}

func TestParseGlobal(t *testing.T) {
	body := []byte(`{"data":{
		"active_cryptocurrencies":12000,
		"markets":800,
		"total_market_cap":{"usd":2.1e12,"eur":1.9e12},
		"total_volume":{"usd":9e10},
		"market_cap_percentage":{"btc":52.3,"eth":17.1},
		"market_cap_change_percentage_24h_usd":-0.8
	}}`)

	v, err := parseGlobal(body)
	require.NoError(t, err)
	g := v.(model.GlobalSnapshot)
	assert.Equal(t, 2.1e12, g.TotalMarketCap)
	assert.Equal(t, 9e10, g.TotalVolume)
	assert.Equal(t, 52.3, g.MarketCapPercentage["btc"])
	assert.Equal(t, 800, g.Markets)
	assert.Equal(t, -0.8, g.MarketCapChangePercentage24hUSD)
}

func TestParseTrending(t *testing.T) {
	body := []byte(`{"coins":[{"item":{"id":"solana","name":"Solana","symbol":"sol","market_cap_rank":5,"thumb":"t.png","score":0}}]}`)

	v, err := parseTrending(body)
	require.NoError(t, err)
	coins := v.([]model.TrendingCoin)
	require.Len(t, coins, 1)
	assert.Equal(t, "solana", coins[0].ID)
	assert.Equal(t, "SOL", coins[0].Symbol)
}

func TestParseFearGreedPassesFirstRecordThrough(t *testing.T) {
	record := `{"value":"25","value_classification":"Extreme Fear","timestamp":"1735689600"}`
	body := []byte(`{"name":"Fear and Greed Index","data":[` + record + `,{"value":"40"}]}`)

	v, err := parseFearGreed(body)
	require.NoError(t, err)
	assert.JSONEq(t, record, string(v.(json.RawMessage)))

	_, err = parseFearGreed([]byte(`{"data":[]}`))
	assert.Error(t, err)
}

func TestParseSearchLimitsResults(t *testing.T) {
	type coin struct {
		ID     string `json:"id"`
		Symbol string `json:"symbol"`
	}
	coins := make([]coin, 25)
	for i := range coins {
		coins[i] = coin{ID: fmt.Sprintf("coin-%d", i), Symbol: "c"}
	}
	body, err := json.Marshal(map[string]any{"coins": coins})
	require.NoError(t, err)

	v, err := parseSearch(body)
	require.NoError(t, err)
	results := v.([]model.SearchResult)
	assert.Len(t, results, searchResultLimit)
	assert.Equal(t, "coin-0", results[0].ID)
}

func TestParseGainersLosers(t *testing.T) {
	coins := make([]geckoCoin, 30)
	for i := range coins {
		coins[i] = geckoCoin{
			ID:                       fmt.Sprintf("coin-%d", i),
			Symbol:                   "c",
			Name:                     fmt.Sprintf("Coin %d", i),
			PriceChangePercentage24h: float64(i) - 15, // -15 .. +14
		}
	}
	body, err := json.Marshal(coins)
	require.NoError(t, err)

	v, err := parseGainersLosers(body)
	require.NoError(t, err)
	gl := v.(model.GainersLosers)

	require.Len(t, gl.Gainers, moversLimit)
	require.Len(t, gl.Losers, moversLimit)
	assert.Equal(t, 14.0, gl.Gainers[0].Change24h, "gainers sorted best first")
	assert.Equal(t, -15.0, gl.Losers[0].Change24h, "losers sorted worst first")
}

func TestParseCoinDetails(t *testing.T) {
	body := []byte(`{
		"id":"bitcoin","symbol":"btc","name":"Bitcoin","market_cap_rank":1,
		"description":{"en":"Digital gold."},
		"image":{"large":"btc.png"},
		"market_data":{
			"current_price":{"usd":50000},
			"market_cap":{"usd":1e12},
			"total_volume":{"usd":3e10},
			"price_change_percentage_24h":1.5,
			"ath":{"usd":69000},
			"ath_change_percentage":{"usd":-27.5},
			"circulating_supply":19700000,
			"max_supply":21000000
		}
	}`)

	v, err := parseCoinDetails(body)
	require.NoError(t, err)
	d := v.(model.CoinDetails)
	assert.Equal(t, "BTC", d.Symbol)
	assert.Equal(t, 50000.0, d.CurrentPrice)
	assert.Equal(t, -27.5, d.ATHChangePercentage)
	assert.Equal(t, "Digital gold.", d.Description)
	assert.Equal(t, "btc.png", d.Image)
}

func TestParseChart(t *testing.T) {
	body := []byte(`{
		"prices":[[1700000000000,50000],[1700003600000,50100]],
		"total_volumes":[[1700000000000,1e9]]
	}`)

	v, err := parseChart(body)
	require.NoError(t, err)
	chart := v.(model.ChartData)
	require.Len(t, chart.Prices, 2)
	assert.Equal(t, int64(1700000000000), chart.Prices[0].Timestamp)
	assert.Equal(t, 50100.0, chart.Prices[1].Price)
	require.Len(t, chart.Volumes, 1)
	assert.Equal(t, 1e9, chart.Volumes[0].Volume)

	series := model.SeriesFromChart("bitcoin", chart)
	assert.Equal(t, []float64{50000, 50100}, series.Prices)
	assert.Equal(t, 50100.0, series.Last())
}
