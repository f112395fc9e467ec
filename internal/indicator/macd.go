package indicator

import "math"

// Trend classifications shared by MACD and trend analysis.
const (
	TrendBullish = "bullish"
	TrendBearish = "bearish"
	TrendNeutral = "neutral"
)

// MACD periods are fixed at the conventional 12/26/9.
const (
	macdFastPeriod   = 12
	macdSlowPeriod   = 26
	macdSignalPeriod = 9
)

// MACDResult is the outcome of a MACD computation at the series' last point.
type MACDResult struct {
	MACD      float64 `json:"macd"`
	Signal    float64 `json:"signal"`
	Histogram float64 `json:"histogram"`
	Trend     string  `json:"trend"`
	Strength  float64 `json:"strength"`
}

// MACD computes the moving average convergence/divergence indicator.
// Fewer than 26 points yields the all-zero neutral result.
func MACD(prices []float64) MACDResult {
	return macdFrom(prices, EMA(prices, macdFastPeriod), EMA(prices, macdSlowPeriod))
}

func macdFrom(prices, emaFast, emaSlow []float64) MACDResult {
	neutral := MACDResult{Trend: TrendNeutral}
	if len(prices) < macdSlowPeriod {
		return neutral
	}

	// The MACD line starts once the slow EMA has a full window behind it.
	start := macdSlowPeriod - 1
	n := min(len(emaFast), len(emaSlow))
	if start >= n {
		return neutral
	}
	macdLine := make([]float64, 0, n-start)
	for i := start; i < n; i++ {
		macdLine = append(macdLine, emaFast[i]-emaSlow[i])
	}

	signalLine := EMA(macdLine, macdSignalPeriod)

	macd := macdLine[len(macdLine)-1]
	signal := signalLine[len(signalLine)-1]

	trend := TrendBearish
	if macd > signal {
		trend = TrendBullish
	}

	return MACDResult{
		MACD:      macd,
		Signal:    signal,
		Histogram: macd - signal,
		Trend:     trend,
		Strength:  math.Abs(macd-signal) / math.Max(math.Abs(macd), 0.001),
	}
}
