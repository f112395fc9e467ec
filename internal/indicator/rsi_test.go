package indicator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRSIMonotonicRise(t *testing.T) {
	prices := make([]float64, 30)
	for i := range prices {
		prices[i] = 100 + float64(i)
	}
	got := RSI(prices, DefaultRSIPeriod)

	assert.Greater(t, got.Value, 99.0, "no losses means RS is capped at 100")
	assert.Equal(t, SignalOverbought, got.Signal)
	assert.Greater(t, got.Strength, 0.9)
}

func TestRSIMonotonicFall(t *testing.T) {
	prices := make([]float64, 30)
	for i := range prices {
		prices[i] = 100 - float64(i)
	}
	got := RSI(prices, DefaultRSIPeriod)

	assert.Less(t, got.Value, 1.0)
	assert.Equal(t, SignalOversold, got.Signal)
}

func TestRSIInsufficientData(t *testing.T) {
	want := RSIResult{Value: 50, Signal: SignalNeutral, Strength: 0}
	assert.Equal(t, want, RSI([]float64{1, 2, 3}, DefaultRSIPeriod))
	assert.Equal(t, want, RSI(nil, DefaultRSIPeriod))
}

func TestRSIFlatSeries(t *testing.T) {
	prices := make([]float64, 20)
	for i := range prices {
		prices[i] = 42
	}
	got := RSI(prices, DefaultRSIPeriod)
	// No gains and no losses: loss of zero caps RS at 100.
	assert.Greater(t, got.Value, 99.0)
}
