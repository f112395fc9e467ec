package indicator

import "math"

// Bollinger band position of the current price.
const (
	BandAboveUpper = "above_upper"
	BandBelowLower = "below_lower"
	BandMiddle     = "middle"
)

// Bollinger squeeze classification by band width.
const (
	SqueezeTight  = "tight"
	SqueezeNormal = "normal"
	SqueezeWide   = "wide"
)

// Default Bollinger parameters.
const (
	DefaultBollingerPeriod = 20
	DefaultBollingerStdDev = 2.0
)

// BollingerResult describes the band state at the series' last point.
type BollingerResult struct {
	Upper    float64 `json:"upper"`
	Middle   float64 `json:"middle"`
	Lower    float64 `json:"lower"`
	Width    float64 `json:"width"`
	Position string  `json:"position"`
	Squeeze  string  `json:"squeeze"`
}

// Bollinger computes bands as SMA +/- stdDev standard deviations over the
// trailing window. A series shorter than the period yields synthetic bands
// at the last price +/-10%.
func Bollinger(prices []float64, period int, stdDev float64) BollingerResult {
	return bollingerFrom(prices, SMA(prices, period), period, stdDev)
}

func bollingerFrom(prices, sma []float64, period int, stdDev float64) BollingerResult {
	if len(prices) < period {
		last := 0.0
		if len(prices) > 0 {
			last = prices[len(prices)-1]
		}
		return BollingerResult{
			Upper:    last * 1.1,
			Middle:   last,
			Lower:    last * 0.9,
			Width:    0.2,
			Position: BandMiddle,
			Squeeze:  SqueezeNormal,
		}
	}

	// Band at the last index only; the trailing window ends at the series end.
	mean := sma[len(sma)-1]
	variance := 0.0
	for _, p := range prices[len(prices)-period:] {
		variance += (p - mean) * (p - mean)
	}
	variance /= float64(period)
	sigma := math.Sqrt(variance)

	current := prices[len(prices)-1]
	upper := mean + sigma*stdDev
	lower := mean - sigma*stdDev
	width := sigma * stdDev * 2 / mean

	position := BandMiddle
	switch {
	case current > upper:
		position = BandAboveUpper
	case current < lower:
		position = BandBelowLower
	}

	squeeze := SqueezeNormal
	switch {
	case width < 0.1:
		squeeze = SqueezeTight
	case width > 0.3:
		squeeze = SqueezeWide
	}

	return BollingerResult{
		Upper:    upper,
		Middle:   mean,
		Lower:    lower,
		Width:    width,
		Position: position,
		Squeeze:  squeeze,
	}
}
