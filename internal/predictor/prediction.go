package predictor

import (
	"time"

	"TrendBot/internal/indicator"
)

// Prediction directions.
const (
	DirectionBullish = "bullish"
	DirectionBearish = "bearish"
)

// Risk levels, ordered low < medium < high.
const (
	RiskLow    = "low"
	RiskMedium = "medium"
	RiskHigh   = "high"
)

// Trading signal types and strengths.
const (
	SignalBuy  = "buy"
	SignalSell = "sell"

	StrengthWeak   = "weak"
	StrengthMedium = "medium"
	StrengthStrong = "strong"
)

// Analysis aggregates every indicator result for one price series snapshot.
// It is immutable after construction.
type Analysis struct {
	Trend             indicator.TrendResult             `json:"trend"`
	RSI               indicator.RSIResult               `json:"rsi"`
	MACD              indicator.MACDResult              `json:"macd"`
	Bollinger         indicator.BollingerResult         `json:"bollinger"`
	Fibonacci         indicator.FibonacciResult         `json:"fibonacci"`
	SupportResistance indicator.SupportResistanceResult `json:"supportResistance"`
	Momentum          indicator.MomentumResult          `json:"momentum"`
	Volatility        indicator.VolatilityResult        `json:"volatility"`
}

// Targets are the predicted price levels for the requested horizon.
type Targets struct {
	Conservative float64 `json:"conservative"`
	Moderate     float64 `json:"moderate"`
	Aggressive   float64 `json:"aggressive"`
	Support      float64 `json:"support"`
	Resistance   float64 `json:"resistance"`
	StopLoss     float64 `json:"stopLoss"`
}

// TradingSignal is one actionable observation. Signals are generated
// independently and may conflict; interpreting them alongside the overall
// direction is the consumer's job.
type TradingSignal struct {
	Type     string `json:"type"`
	Strength string `json:"strength"`
	Reason   string `json:"reason"`
}

// Prediction is the engine's directional call for one coin and timeframe.
// Immutable after creation.
type Prediction struct {
	Direction     string          `json:"direction"`
	Confidence    float64         `json:"confidence"`
	CurrentPrice  float64         `json:"currentPrice"`
	Targets       Targets         `json:"targets"`
	Signals       []TradingSignal `json:"signals"`
	RiskLevel     string          `json:"riskLevel"`
	Accuracy      float64         `json:"accuracy"`
	TimeframeDays float64         `json:"timeframeDays"`
	Analysis      *Analysis       `json:"analysis,omitempty"`
	GeneratedAt   time.Time       `json:"generatedAt"`
}
