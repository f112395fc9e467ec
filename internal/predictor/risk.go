package predictor

import "TrendBot/internal/indicator"

// RiskLevel scores the analysis and maps it to a risk tier. The score grows
// with volatility, weak trend confidence, RSI extremes, and a tight Bollinger
// squeeze; it never decreases when volatility alone rises.
func RiskLevel(a *Analysis) string {
	score := 0

	switch a.Volatility.Level {
	case indicator.VolatilityHigh:
		score += 3
	case indicator.VolatilityMedium:
		score += 2
	default:
		score++
	}

	if a.Trend.Confidence < 0.3 {
		score += 2
	}
	if a.RSI.Signal != indicator.SignalNeutral {
		score++
	}
	if a.Bollinger.Squeeze == indicator.SqueezeTight {
		score += 2
	}

	switch {
	case score <= 3:
		return RiskLow
	case score <= 6:
		return RiskMedium
	default:
		return RiskHigh
	}
}

// estimateAccuracy is a heuristic confidence estimate in [0.3, 0.9]: shorter
// horizons, strong trends, low volatility, and agreeing signals raise it.
func estimateAccuracy(a *Analysis, days float64, signals []TradingSignal) float64 {
	score := 0.5

	switch {
	case days <= 1:
		score += 0.2
	case days <= 7:
		score += 0.1
	case days > 30:
		score -= 0.1
	}

	switch {
	case a.Trend.Confidence > 0.7:
		score += 0.15
	case a.Trend.Confidence < 0.3:
		score -= 0.1
	}

	switch a.Volatility.Level {
	case indicator.VolatilityHigh:
		score -= 0.15
	case indicator.VolatilityLow:
		score += 0.1
	}

	buys, sells := 0, 0
	for _, s := range signals {
		if s.Type == SignalBuy {
			buys++
		} else {
			sells++
		}
	}
	if abs(buys-sells) >= 2 {
		score += 0.1
	}

	return clamp(score, 0.3, 0.9)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
