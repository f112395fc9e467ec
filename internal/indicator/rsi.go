package indicator

import "math"

// Indicator signal classifications shared across results.
const (
	SignalNeutral    = "neutral"
	SignalOverbought = "overbought"
	SignalOversold   = "oversold"
)

// RSIResult is the outcome of a relative strength index computation.
type RSIResult struct {
	Value    float64 `json:"value"`
	Signal   string  `json:"signal"`
	Strength float64 `json:"strength"`
}

// DefaultRSIPeriod is the conventional RSI lookback.
const DefaultRSIPeriod = 14

// RSI computes Wilder's relative strength index. A series shorter than
// period+1 yields the neutral result {50, neutral, 0}.
func RSI(prices []float64, period int) RSIResult {
	if period <= 0 || len(prices) < period+1 {
		return RSIResult{Value: 50, Signal: SignalNeutral, Strength: 0}
	}

	var avgGain, avgLoss float64
	for i := 1; i <= period; i++ {
		change := prices[i] - prices[i-1]
		if change > 0 {
			avgGain += change
		} else {
			avgLoss -= change
		}
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)

	// Wilder smoothing for the remainder of the series.
	for i := period + 1; i < len(prices); i++ {
		change := prices[i] - prices[i-1]
		gain, loss := 0.0, 0.0
		if change > 0 {
			gain = change
		} else {
			loss = -change
		}
		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
	}

	rs := 100.0
	if avgLoss != 0 {
		rs = avgGain / avgLoss
	}
	value := 100 - 100/(1+rs)

	signal := SignalNeutral
	switch {
	case value > 70:
		signal = SignalOverbought
	case value < 30:
		signal = SignalOversold
	}

	return RSIResult{
		Value:    value,
		Signal:   signal,
		Strength: math.Abs(50-value) / 50,
	}
}
