package indicator

// Momentum signal and direction classifications.
const (
	MomentumStrong   = "strong"
	MomentumWeak     = "weak"
	MomentumPositive = "positive"
	MomentumNegative = "negative"
)

// DefaultMomentumPeriod is the conventional momentum lookback.
const DefaultMomentumPeriod = 14

// MomentumResult describes price momentum at the series' last point.
type MomentumResult struct {
	Current   float64 `json:"current"`
	Average   float64 `json:"average"`
	Signal    string  `json:"signal"`
	Direction string  `json:"direction"`
}

// Momentum computes price[i]-price[i-period] over the series. The signal is
// strong when the latest momentum exceeds the series mean. A series shorter
// than period+1 yields the all-neutral zero result.
func Momentum(prices []float64, period int) MomentumResult {
	if period <= 0 || len(prices) < period+1 {
		return MomentumResult{Signal: SignalNeutral, Direction: SignalNeutral}
	}

	sum := 0.0
	count := len(prices) - period
	for i := period; i < len(prices); i++ {
		sum += prices[i] - prices[i-period]
	}
	current := prices[len(prices)-1] - prices[len(prices)-1-period]
	average := sum / float64(count)

	signal := MomentumWeak
	if current > average {
		signal = MomentumStrong
	}
	direction := MomentumNegative
	if current > 0 {
		direction = MomentumPositive
	}

	return MomentumResult{Current: current, Average: average, Signal: signal, Direction: direction}
}
