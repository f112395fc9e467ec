package model

// PriceSeries holds a chronologically ordered price sequence for one coin.
// Timestamps, when present, pair 1:1 with Prices.
type PriceSeries struct {
	CoinID     string
	Prices     []float64
	Timestamps []int64
}

// SeriesFromChart extracts the price series from normalized chart data.
func SeriesFromChart(coinID string, chart ChartData) PriceSeries {
	s := PriceSeries{
		CoinID:     coinID,
		Prices:     make([]float64, len(chart.Prices)),
		Timestamps: make([]int64, len(chart.Prices)),
	}
	for i, p := range chart.Prices {
		s.Prices[i] = p.Price
		s.Timestamps[i] = p.Timestamp
	}
	return s
}

// Len returns the number of points in the series.
func (s PriceSeries) Len() int { return len(s.Prices) }

// Last returns the most recent price, or 0 for an empty series.
func (s PriceSeries) Last() float64 {
	if len(s.Prices) == 0 {
		return 0
	}
	return s.Prices[len(s.Prices)-1]
}
