package indicator

import (
	"math"
	"sort"
)

// DefaultLevelWindow is the neighborhood half-width for extrema detection.
const DefaultLevelWindow = 10

// levelTolerance is the relative band within which a price counts as a touch.
const levelTolerance = 0.02

// Level is one support or resistance level.
type Level struct {
	Price    float64 `json:"price"`
	Index    int     `json:"index"`
	Strength int     `json:"strength"`
}

// SupportResistanceResult holds the strongest levels on each side, at most
// three per side, ordered by descending strength.
type SupportResistanceResult struct {
	Supports     []Level `json:"supports"`
	Resistances  []Level `json:"resistances"`
	CurrentPrice float64 `json:"currentPrice"`
}

// SupportResistance detects local extrema: a point is support when it is
// less than or equal to every point within window on both sides, resistance
// when greater than or equal. A series shorter than 2*window+1 yields a
// single synthetic level at +/-5% of the last price.
func SupportResistance(prices []float64, window int) SupportResistanceResult {
	if len(prices) < 2*window+1 {
		last := 0.0
		if len(prices) > 0 {
			last = prices[len(prices)-1]
		}
		return SupportResistanceResult{
			Supports:     []Level{{Price: last * 0.95, Index: 0, Strength: 1}},
			Resistances:  []Level{{Price: last * 1.05, Index: 0, Strength: 1}},
			CurrentPrice: last,
		}
	}

	var supports, resistances []Level
	for i := window; i < len(prices)-window; i++ {
		current := prices[i]
		isSupport, isResistance := true, true
		for j := i - window; j <= i+window; j++ {
			if j == i {
				continue
			}
			if prices[j] < current {
				isSupport = false
			}
			if prices[j] > current {
				isResistance = false
			}
			if !isSupport && !isResistance {
				break
			}
		}
		if isSupport {
			supports = append(supports, Level{Price: current, Index: i, Strength: levelStrength(prices, current)})
		}
		if isResistance {
			resistances = append(resistances, Level{Price: current, Index: i, Strength: levelStrength(prices, current)})
		}
	}

	sort.SliceStable(supports, func(i, j int) bool { return supports[i].Strength > supports[j].Strength })
	sort.SliceStable(resistances, func(i, j int) bool { return resistances[i].Strength > resistances[j].Strength })

	return SupportResistanceResult{
		Supports:     topLevels(supports, 3),
		Resistances:  topLevels(resistances, 3),
		CurrentPrice: prices[len(prices)-1],
	}
}

// levelStrength counts historical touches within the tolerance band.
func levelStrength(prices []float64, level float64) int {
	band := level * levelTolerance
	touches := 0
	for _, p := range prices {
		if math.Abs(p-level) <= band {
			touches++
		}
	}
	return touches
}

func topLevels(levels []Level, n int) []Level {
	if len(levels) > n {
		return levels[:n]
	}
	return levels
}
