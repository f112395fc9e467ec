package indicator

import "math"

// LinearRegression fits y = slope*x + intercept by least squares.
// Fewer than two points yields a zero fit.
func LinearRegression(x, y []float64) (slope, intercept float64) {
	n := float64(len(x))
	if len(x) < 2 || len(x) != len(y) {
		return 0, 0
	}
	var sumX, sumY, sumXY, sumXX float64
	for i := range x {
		sumX += x[i]
		sumY += y[i]
		sumXY += x[i] * y[i]
		sumXX += x[i] * x[i]
	}
	den := n*sumXX - sumX*sumX
	if den == 0 {
		return 0, 0
	}
	slope = (n*sumXY - sumX*sumY) / den
	intercept = (sumY - slope*sumX) / n
	return slope, intercept
}

// Correlation computes the Pearson correlation coefficient, 0 when undefined.
func Correlation(x, y []float64) float64 {
	n := float64(len(x))
	if len(x) == 0 || len(x) != len(y) {
		return 0
	}
	var sumX, sumY, sumXY, sumXX, sumYY float64
	for i := range x {
		sumX += x[i]
		sumY += y[i]
		sumXY += x[i] * y[i]
		sumXX += x[i] * x[i]
		sumYY += y[i] * y[i]
	}
	den := math.Sqrt((n*sumXX - sumX*sumX) * (n*sumYY - sumY*sumY))
	if den == 0 {
		return 0
	}
	return (n*sumXY - sumX*sumY) / den
}

// TrendStrength quantifies a price series' directional persistence.
type TrendStrength struct {
	Slope       float64 `json:"slope"`
	Correlation float64 `json:"correlation"`
	Strength    float64 `json:"strength"`
	Direction   string  `json:"direction"`
}

// StrengthOf fits a regression over the series indices and uses the absolute
// correlation as strength. This is the single formula shared by the calc
// worker and the synchronous fallback.
func StrengthOf(prices []float64) TrendStrength {
	if len(prices) < 2 {
		return TrendStrength{Direction: TrendNeutral}
	}
	x := make([]float64, len(prices))
	for i := range x {
		x[i] = float64(i)
	}
	slope, _ := LinearRegression(x, prices)
	corr := Correlation(x, prices)

	direction := "down"
	if slope > 0 {
		direction = "up"
	}
	return TrendStrength{
		Slope:       slope,
		Correlation: corr,
		Strength:    math.Abs(corr),
		Direction:   direction,
	}
}
