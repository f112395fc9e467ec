package indicator

import "math"

// Default trend analysis parameters.
const (
	DefaultTrendShortPeriod = 10
	DefaultTrendLongPeriod  = 50

	// trendStrengthWindow is the tail length fed to regression/correlation.
	trendStrengthWindow = 20
)

// Trend momentum classifications.
const (
	MomentumAccelerating = "accelerating"
	MomentumDecelerating = "decelerating"
)

// TrendResult compares a short and a long moving average at the series' last
// point.
type TrendResult struct {
	Direction  string        `json:"direction"`
	Strength   TrendStrength `json:"strength"`
	Momentum   string        `json:"momentum"`
	Crossover  Crossover     `json:"crossover"`
	Confidence float64       `json:"confidence"`
}

// Trend analyzes direction, strength, and crossovers. A series shorter than
// the long period yields the flat zero-confidence neutral result.
func Trend(prices []float64, shortPeriod, longPeriod int) TrendResult {
	if len(prices) < longPeriod {
		return neutralTrend()
	}
	return TrendWith(prices, shortPeriod, longPeriod, StrengthOf(tail(prices, trendStrengthWindow)))
}

// TrendWith assembles the trend result around an externally computed strength,
// letting callers source the regression from the calc worker while keeping
// the rest of the analysis identical to the synchronous path.
func TrendWith(prices []float64, shortPeriod, longPeriod int, strength TrendStrength) TrendResult {
	if len(prices) < longPeriod {
		return neutralTrend()
	}
	return trendFrom(prices, SMA(prices, shortPeriod), SMA(prices, longPeriod), strength)
}

func trendFrom(prices, shortSMA, longSMA []float64, strength TrendStrength) TrendResult {
	curShort := shortSMA[len(shortSMA)-1]
	curLong := longSMA[len(longSMA)-1]

	direction := TrendBearish
	if curShort > curLong {
		direction = TrendBullish
	}

	momentum := SignalNeutral
	if len(shortSMA) >= 2 && len(longSMA) >= 2 {
		prevShort := shortSMA[len(shortSMA)-2]
		prevLong := longSMA[len(longSMA)-2]
		if curShort-prevShort > curLong-prevLong {
			momentum = MomentumAccelerating
		} else {
			momentum = MomentumDecelerating
		}
	}

	return TrendResult{
		Direction:  direction,
		Strength:   strength,
		Momentum:   momentum,
		Crossover:  DetectCrossover(shortSMA, longSMA),
		Confidence: math.Abs(curShort-curLong) / curLong,
	}
}

// TrendStrengthInput returns the series tail used for strength computation.
func TrendStrengthInput(prices []float64) []float64 {
	return tail(prices, trendStrengthWindow)
}

func neutralTrend() TrendResult {
	return TrendResult{
		Direction: TrendNeutral,
		Strength:  TrendStrength{Direction: TrendNeutral},
		Momentum:  SignalNeutral,
		Crossover: CrossoverNone,
	}
}

func tail(prices []float64, n int) []float64 {
	if len(prices) > n {
		return prices[len(prices)-n:]
	}
	return prices
}
