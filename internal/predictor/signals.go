package predictor

import "TrendBot/internal/indicator"

// GenerateSignals derives trading signals from an analysis. Each rule fires
// independently, so conflicting buy and sell signals can co-occur.
func GenerateSignals(a *Analysis) []TradingSignal {
	var signals []TradingSignal

	switch a.Trend.Crossover {
	case indicator.CrossoverGolden:
		signals = append(signals, TradingSignal{Type: SignalBuy, Strength: StrengthStrong, Reason: "Golden Cross detected"})
	case indicator.CrossoverDeath:
		signals = append(signals, TradingSignal{Type: SignalSell, Strength: StrengthStrong, Reason: "Death Cross detected"})
	}

	switch a.RSI.Signal {
	case indicator.SignalOversold:
		signals = append(signals, TradingSignal{Type: SignalBuy, Strength: StrengthMedium, Reason: "RSI oversold condition"})
	case indicator.SignalOverbought:
		signals = append(signals, TradingSignal{Type: SignalSell, Strength: StrengthMedium, Reason: "RSI overbought condition"})
	}

	if a.MACD.Histogram > 0 && a.MACD.Trend == indicator.TrendBullish {
		signals = append(signals, TradingSignal{Type: SignalBuy, Strength: StrengthMedium, Reason: "MACD bullish momentum"})
	} else if a.MACD.Histogram < 0 && a.MACD.Trend == indicator.TrendBearish {
		signals = append(signals, TradingSignal{Type: SignalSell, Strength: StrengthMedium, Reason: "MACD bearish momentum"})
	}

	switch a.Bollinger.Position {
	case indicator.BandBelowLower:
		signals = append(signals, TradingSignal{Type: SignalBuy, Strength: StrengthMedium, Reason: "Price below lower Bollinger Band"})
	case indicator.BandAboveUpper:
		signals = append(signals, TradingSignal{Type: SignalSell, Strength: StrengthMedium, Reason: "Price above upper Bollinger Band"})
	}

	return signals
}
