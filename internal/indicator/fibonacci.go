package indicator

import "math"

// fibRatios in display order; iteration over a map would make the nearest
// pick nondeterministic on ties.
var fibRatios = []struct {
	label string
	ratio float64
}{
	{"0%", 0},
	{"23.6%", 0.236},
	{"38.2%", 0.382},
	{"50%", 0.5},
	{"61.8%", 0.618},
	{"78.6%", 0.786},
	{"100%", 1},
}

// FibLevel is the retracement level nearest to the current price.
type FibLevel struct {
	Level    string  `json:"level"`
	Price    float64 `json:"price"`
	Distance float64 `json:"distance"`
}

// FibonacciResult holds all retracement levels between the series extremes.
type FibonacciResult struct {
	Levels  map[string]float64 `json:"levels"`
	Nearest FibLevel           `json:"nearest"`
	Trend   string             `json:"trend"`
}

// Fibonacci places retracement levels between the series maximum and minimum
// and finds the level closest to the current price. An empty series collapses
// every level onto the current (zero) price.
func Fibonacci(prices []float64) FibonacciResult {
	if len(prices) == 0 {
		levels := make(map[string]float64, len(fibRatios))
		for _, r := range fibRatios {
			levels[r.label] = 0
		}
		return FibonacciResult{
			Levels:  levels,
			Nearest: FibLevel{Level: fibRatios[0].label},
			Trend:   TrendNeutral,
		}
	}

	current := prices[len(prices)-1]
	high, low := prices[0], prices[0]
	for _, p := range prices[1:] {
		if p > high {
			high = p
		}
		if p < low {
			low = p
		}
	}
	span := high - low

	levels := make(map[string]float64, len(fibRatios))
	nearest := FibLevel{Level: fibRatios[0].label, Price: high}
	minDist := math.Inf(1)
	for _, r := range fibRatios {
		price := high - span*r.ratio
		levels[r.label] = price
		if d := math.Abs(current - price); d < minDist {
			minDist = d
			nearest = FibLevel{Level: r.label, Price: price}
			if current != 0 {
				nearest.Distance = d / current
			}
		}
	}

	trend := "downtrend"
	if current > levels["50%"] {
		trend = "uptrend"
	}
	return FibonacciResult{Levels: levels, Nearest: nearest, Trend: trend}
}
