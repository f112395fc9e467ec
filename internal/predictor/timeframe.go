package predictor

// DefaultTimeframeDays applies to unrecognized timeframe labels.
const DefaultTimeframeDays = 7

var timeframeDays = map[string]float64{
	"1h":  1.0 / 24,
	"4h":  1.0 / 6,
	"1d":  1,
	"3d":  3,
	"7d":  7,
	"14d": 14,
	"30d": 30,
}

// ParseTimeframe maps a symbolic horizon to a day count, fractional for
// sub-day horizons. Unknown labels default to 7 days.
func ParseTimeframe(timeframe string) float64 {
	if days, ok := timeframeDays[timeframe]; ok {
		return days
	}
	return DefaultTimeframeDays
}
