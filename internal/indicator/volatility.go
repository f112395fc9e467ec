package indicator

import (
	"math"
	"sort"
)

// Volatility level classifications by annualized value.
const (
	VolatilityLow    = "low"
	VolatilityMedium = "medium"
	VolatilityHigh   = "high"
)

// DefaultVolatilityPeriod is the trailing window for the current reading.
const DefaultVolatilityPeriod = 20

// tradingDaysPerYear annualizes a daily standard deviation.
const tradingDaysPerYear = 252

// VolatilityResult describes return volatility at the series' last point.
type VolatilityResult struct {
	Daily      float64 `json:"daily"`
	Annualized float64 `json:"annualized"`
	Level      string  `json:"level"`
	Percentile float64 `json:"percentile"`
}

// Volatility computes the standard deviation of simple returns over the
// trailing period, annualized by sqrt(252). The percentile ranks the current
// reading among all historical rolling-window volatilities. A series shorter
// than 2 points yields the zero/low result.
func Volatility(prices []float64, period int) VolatilityResult {
	if len(prices) < 2 {
		return VolatilityResult{Level: VolatilityLow, Percentile: 0.5}
	}

	returns := simpleReturns(prices)
	daily, annualized := volatilityOf(returns, period)

	level := VolatilityMedium
	switch {
	case annualized < 0.2:
		level = VolatilityLow
	case annualized > 0.5:
		level = VolatilityHigh
	}

	return VolatilityResult{
		Daily:      daily,
		Annualized: annualized,
		Level:      level,
		Percentile: volatilityPercentile(annualized, returns),
	}
}

func simpleReturns(prices []float64) []float64 {
	returns := make([]float64, 0, len(prices)-1)
	for i := 1; i < len(prices); i++ {
		returns = append(returns, (prices[i]-prices[i-1])/prices[i-1])
	}
	return returns
}

// volatilityOf computes daily and annualized volatility over the trailing
// period of the return series. Shared verbatim by the calc worker and the
// synchronous fallback so both paths agree bit for bit.
func volatilityOf(returns []float64, period int) (daily, annualized float64) {
	recent := returns
	if len(recent) > period {
		recent = recent[len(recent)-period:]
	}
	if len(recent) == 0 {
		return 0, 0
	}
	mean := 0.0
	for _, r := range recent {
		mean += r
	}
	mean /= float64(len(recent))
	variance := 0.0
	for _, r := range recent {
		variance += (r - mean) * (r - mean)
	}
	variance /= float64(len(recent))
	daily = math.Sqrt(variance)
	return daily, daily * math.Sqrt(tradingDaysPerYear)
}

// volatilityPercentile ranks current among rolling-window volatilities of the
// full return history. With no full window of history the reading counts as
// the maximum observed.
func volatilityPercentile(current float64, returns []float64) float64 {
	const window = 20
	var history []float64
	for i := window; i < len(returns); i++ {
		_, ann := volatilityOf(returns[i-window:i], window)
		history = append(history, ann)
	}
	if len(history) == 0 {
		return 1
	}
	sort.Float64s(history)
	rank := sort.SearchFloat64s(history, current)
	if rank == len(history) {
		return 1
	}
	return float64(rank) / float64(len(history))
}
