// Package indicator implements technical indicators over chronologically
// ordered price series. Every function is total: when a series is shorter
// than the indicator's minimum window it returns a documented neutral result
// instead of failing.
package indicator

// SMA computes the simple moving average with a sliding-window running sum.
// One value is produced per index >= period-1; the result is empty when the
// series is shorter than the period.
func SMA(prices []float64, period int) []float64 {
	if period <= 0 || len(prices) < period {
		return nil
	}
	out := make([]float64, 0, len(prices)-period+1)
	sum := 0.0
	for i := 0; i < period; i++ {
		sum += prices[i]
	}
	out = append(out, sum/float64(period))
	for i := period; i < len(prices); i++ {
		sum += prices[i] - prices[i-period]
		out = append(out, sum/float64(period))
	}
	return out
}

// EMA computes the exponential moving average seeded with the first price.
// The result is empty for an empty input.
func EMA(prices []float64, period int) []float64 {
	if len(prices) == 0 || period <= 0 {
		return nil
	}
	mult := 2.0 / float64(period+1)
	out := make([]float64, len(prices))
	out[0] = prices[0]
	for i := 1; i < len(prices); i++ {
		out[i] = prices[i]*mult + out[i-1]*(1-mult)
	}
	return out
}

// Crossover identifies a moving-average crossing event.
type Crossover string

const (
	CrossoverNone   Crossover = ""
	CrossoverGolden Crossover = "golden_cross"
	CrossoverDeath  Crossover = "death_cross"
)

// DetectCrossover compares the sign of (short-long) between the last two
// points of both series. The new state must be a strict inequality: a move
// from at-or-below to strictly above emits a golden cross, and the mirror
// case emits a death cross.
func DetectCrossover(short, long []float64) Crossover {
	if len(short) < 2 || len(long) < 2 {
		return CrossoverNone
	}
	curShort, curLong := short[len(short)-1], long[len(long)-1]
	prevShort, prevLong := short[len(short)-2], long[len(long)-2]

	switch {
	case prevShort <= prevLong && curShort > curLong:
		return CrossoverGolden
	case prevShort >= prevLong && curShort < curLong:
		return CrossoverDeath
	default:
		return CrossoverNone
	}
}
