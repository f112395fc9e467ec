package indicator

import "sync"

type memoKey struct {
	name   string
	length int
	period int
}

// Analyzer memoizes moving-average arrays for one price series so that
// indicators sharing a window (MACD, Bollinger, trend) compute it once.
// The memo is purely an optimization: every method returns exactly what the
// corresponding package-level function returns. Safe for concurrent use.
type Analyzer struct {
	prices []float64

	mu   sync.Mutex
	memo map[memoKey][]float64
}

// NewAnalyzer wraps a price series for memoized analysis.
func NewAnalyzer(prices []float64) *Analyzer {
	return &Analyzer{prices: prices, memo: make(map[memoKey][]float64)}
}

// Prices returns the wrapped series.
func (a *Analyzer) Prices() []float64 { return a.prices }

// SMA is a memoized SMA over the wrapped series.
func (a *Analyzer) SMA(period int) []float64 {
	return a.cached("sma", period, func() []float64 { return SMA(a.prices, period) })
}

// EMA is a memoized EMA over the wrapped series.
func (a *Analyzer) EMA(period int) []float64 {
	return a.cached("ema", period, func() []float64 { return EMA(a.prices, period) })
}

// RSI computes the RSI of the wrapped series.
func (a *Analyzer) RSI(period int) RSIResult { return RSI(a.prices, period) }

// MACD computes MACD reusing memoized EMAs.
func (a *Analyzer) MACD() MACDResult {
	return macdFrom(a.prices, a.EMA(macdFastPeriod), a.EMA(macdSlowPeriod))
}

// Bollinger computes bands reusing the memoized SMA.
func (a *Analyzer) Bollinger(period int, stdDev float64) BollingerResult {
	return bollingerFrom(a.prices, a.SMA(period), period, stdDev)
}

// Fibonacci computes retracement levels of the wrapped series.
func (a *Analyzer) Fibonacci() FibonacciResult { return Fibonacci(a.prices) }

// SupportResistance detects levels in the wrapped series.
func (a *Analyzer) SupportResistance(window int) SupportResistanceResult {
	return SupportResistance(a.prices, window)
}

// Momentum computes momentum of the wrapped series.
func (a *Analyzer) Momentum(period int) MomentumResult { return Momentum(a.prices, period) }

// Volatility computes volatility of the wrapped series.
func (a *Analyzer) Volatility(period int) VolatilityResult { return Volatility(a.prices, period) }

// TrendWith assembles the trend result reusing memoized SMAs.
func (a *Analyzer) TrendWith(shortPeriod, longPeriod int, strength TrendStrength) TrendResult {
	if len(a.prices) < longPeriod {
		return neutralTrend()
	}
	return trendFrom(a.prices, a.SMA(shortPeriod), a.SMA(longPeriod), strength)
}

func (a *Analyzer) cached(name string, period int, compute func() []float64) []float64 {
	key := memoKey{name: name, length: len(a.prices), period: period}
	a.mu.Lock()
	if v, ok := a.memo[key]; ok {
		a.mu.Unlock()
		return v
	}
	a.mu.Unlock()

	v := compute()

	a.mu.Lock()
	a.memo[key] = v
	a.mu.Unlock()
	return v
}
