// Package predictor aggregates technical indicators into a weighted
// directional prediction with confidence, price targets, and risk scoring.
// The model is a heuristic scoring system, not a trained one.
package predictor

import (
	"math"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"TrendBot/internal/indicator"
	"TrendBot/internal/model"
)

// Indicator weights for the bullish/bearish score. The volatility weight is
// reserved for target sizing and does not enter the directional score.
const (
	weightTrend      = 0.30
	weightRSI        = 0.15
	weightMACD       = 0.20
	weightBollinger  = 0.15
	weightMomentum   = 0.10
	weightVolatility = 0.10
)

// Engine computes a complete analysis and derives predictions from it.
// A nil calc worker forces every computation onto the synchronous path;
// results are identical either way.
type Engine struct {
	calc *CalcWorker
	log  zerolog.Logger

	mu     sync.Mutex
	latest map[string]*Prediction
}

// NewEngine creates an engine. calc may be nil to disable offloading.
func NewEngine(calc *CalcWorker) *Engine {
	return &Engine{
		calc:   calc,
		log:    log.With().Str("component", "predictor").Logger(),
		latest: make(map[string]*Prediction),
	}
}

// Analyze runs every indicator over the series, independent ones
// concurrently, and returns the aggregated snapshot. Total over any series
// length: short input produces each indicator's documented neutral result.
func (e *Engine) Analyze(prices []float64) *Analysis {
	a := indicator.NewAnalyzer(prices)
	out := &Analysis{}

	var wg sync.WaitGroup
	run := func(f func()) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			f()
		}()
	}

	run(func() { out.Trend = e.trend(a) })
	run(func() { out.RSI = a.RSI(indicator.DefaultRSIPeriod) })
	run(func() { out.MACD = a.MACD() })
	run(func() { out.Bollinger = a.Bollinger(indicator.DefaultBollingerPeriod, indicator.DefaultBollingerStdDev) })
	run(func() { out.Fibonacci = a.Fibonacci() })
	run(func() { out.SupportResistance = a.SupportResistance(indicator.DefaultLevelWindow) })
	run(func() { out.Momentum = a.Momentum(indicator.DefaultMomentumPeriod) })
	run(func() { out.Volatility = e.volatility(prices) })
	wg.Wait()

	return out
}

// Predict analyzes the series and derives the prediction for the timeframe.
// The result replaces any prior prediction kept for the coin.
func (e *Engine) Predict(series model.PriceSeries, timeframe string) *Prediction {
	started := time.Now()
	analysis := e.Analyze(series.Prices)
	p := e.prediction(series.Last(), analysis, timeframe)

	e.mu.Lock()
	e.latest[series.CoinID] = p
	e.mu.Unlock()

	e.log.Debug().
		Str("coin", series.CoinID).
		Str("direction", p.Direction).
		Float64("confidence", p.Confidence).
		Dur("elapsed", time.Since(started)).
		Msg("prediction generated")
	return p
}

// Latest returns the most recent prediction kept for the coin.
func (e *Engine) Latest(coinID string) (*Prediction, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	p, ok := e.latest[coinID]
	return p, ok
}

func (e *Engine) prediction(currentPrice float64, analysis *Analysis, timeframe string) *Prediction {
	days := ParseTimeframe(timeframe)
	bullish, bearish := score(analysis)

	netScore := bullish - bearish
	direction := DirectionBearish
	if netScore > 0 {
		direction = DirectionBullish
	}

	baseChange := netScore * analysis.Volatility.Daily * days * currentPrice
	signals := GenerateSignals(analysis)

	return &Prediction{
		Direction:     direction,
		Confidence:    math.Min(math.Abs(netScore), 1),
		CurrentPrice:  currentPrice,
		Targets:       priceTargets(currentPrice, analysis, baseChange, days),
		Signals:       signals,
		RiskLevel:     RiskLevel(analysis),
		Accuracy:      estimateAccuracy(analysis, days, signals),
		TimeframeDays: days,
		Analysis:      analysis,
		GeneratedAt:   time.Now(),
	}
}

// score routes each indicator's contribution to exactly one side, scaled by
// the indicator's own confidence measure.
func score(a *Analysis) (bullish, bearish float64) {
	if a.Trend.Direction == indicator.TrendBullish {
		bullish += weightTrend * a.Trend.Confidence
	} else {
		bearish += weightTrend * a.Trend.Confidence
	}

	switch a.RSI.Signal {
	case indicator.SignalOversold:
		bullish += weightRSI * a.RSI.Strength
	case indicator.SignalOverbought:
		bearish += weightRSI * a.RSI.Strength
	}

	if a.MACD.Trend == indicator.TrendBullish {
		bullish += weightMACD * a.MACD.Strength
	} else {
		bearish += weightMACD * a.MACD.Strength
	}

	switch a.Bollinger.Position {
	case indicator.BandBelowLower:
		bullish += weightBollinger * 0.8
	case indicator.BandAboveUpper:
		bearish += weightBollinger * 0.8
	}

	if a.Momentum.Direction == indicator.MomentumPositive && a.Momentum.Signal == indicator.MomentumStrong {
		bullish += weightMomentum
	} else if a.Momentum.Direction == indicator.MomentumNegative {
		bearish += weightMomentum
	}

	return bullish, bearish
}

// priceTargets spreads the base change into three tiers, clamping the
// conservative target to the nearest support and the aggressive one to the
// nearest resistance.
func priceTargets(currentPrice float64, a *Analysis, baseChange, days float64) Targets {
	support := currentPrice * 0.9
	if len(a.SupportResistance.Supports) > 0 {
		support = a.SupportResistance.Supports[0].Price
	}
	resistance := currentPrice * 1.1
	if len(a.SupportResistance.Resistances) > 0 {
		resistance = a.SupportResistance.Resistances[0].Price
	}

	return Targets{
		Conservative: math.Max(currentPrice+baseChange*0.5, support),
		Moderate:     currentPrice + baseChange,
		Aggressive:   math.Min(currentPrice+baseChange*1.5, resistance),
		Support:      support,
		Resistance:   resistance,
		StopLoss:     currentPrice - a.Volatility.Daily*currentPrice*math.Sqrt(days)*2,
	}
}

// trend sources the regression/correlation strength from the calc worker
// when one is attached; the assembled result matches the inline path bit for
// bit because both call the same formula.
func (e *Engine) trend(a *indicator.Analyzer) indicator.TrendResult {
	prices := a.Prices()
	if len(prices) < indicator.DefaultTrendLongPeriod {
		return a.TrendWith(indicator.DefaultTrendShortPeriod, indicator.DefaultTrendLongPeriod, indicator.TrendStrength{})
	}

	input := indicator.TrendStrengthInput(prices)
	strength := indicator.TrendStrength{}
	computed := false
	if e.calc != nil {
		if s, err := runCalc(e.calc, func() indicator.TrendStrength { return indicator.StrengthOf(input) }); err == nil {
			strength, computed = s, true
		} else {
			e.log.Debug().Msg("calc worker timed out, computing trend strength inline")
		}
	}
	if !computed {
		strength = indicator.StrengthOf(input)
	}
	return a.TrendWith(indicator.DefaultTrendShortPeriod, indicator.DefaultTrendLongPeriod, strength)
}

func (e *Engine) volatility(prices []float64) indicator.VolatilityResult {
	if e.calc != nil {
		if v, err := runCalc(e.calc, func() indicator.VolatilityResult {
			return indicator.Volatility(prices, indicator.DefaultVolatilityPeriod)
		}); err == nil {
			return v
		}
		e.log.Debug().Msg("calc worker timed out, computing volatility inline")
	}
	return indicator.Volatility(prices, indicator.DefaultVolatilityPeriod)
}
