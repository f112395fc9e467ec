package store

import (
	"github.com/shopspring/decimal"

	"TrendBot/internal/model"
)

// Valuation summarizes a portfolio against current prices. Figures are
// computed with decimal arithmetic so position sums do not accumulate
// float rounding error.
type Valuation struct {
	Value         float64            `json:"value"`
	Cost          float64            `json:"cost"`
	ProfitLoss    float64            `json:"profitLoss"`
	ProfitLossPct float64            `json:"profitLossPct"`
	ByCoin        map[string]float64 `json:"byCoin"`
	MissingPrices []string           `json:"missingPrices,omitempty"`
}

// Valuate prices every holding with the given current prices. Holdings whose
// coin is absent from prices contribute only to cost and are reported in
// MissingPrices.
func Valuate(holdings []model.Holding, prices map[string]float64) Valuation {
	value := decimal.Zero
	cost := decimal.Zero
	byCoin := make(map[string]decimal.Decimal)
	var missing []string
	seenMissing := make(map[string]bool)

	for _, h := range holdings {
		amount := decimal.NewFromFloat(h.Amount)
		cost = cost.Add(amount.Mul(decimal.NewFromFloat(h.PurchasePrice)))

		price, ok := prices[h.CoinID]
		if !ok {
			if !seenMissing[h.CoinID] {
				seenMissing[h.CoinID] = true
				missing = append(missing, h.CoinID)
			}
			continue
		}
		position := amount.Mul(decimal.NewFromFloat(price))
		value = value.Add(position)
		byCoin[h.CoinID] = byCoin[h.CoinID].Add(position)
	}

	pnl := value.Sub(cost)
	pct := decimal.Zero
	if !cost.IsZero() {
		pct = pnl.Div(cost).Mul(decimal.NewFromInt(100))
	}

	v := Valuation{
		Value:         value.InexactFloat64(),
		Cost:          cost.InexactFloat64(),
		ProfitLoss:    pnl.InexactFloat64(),
		ProfitLossPct: pct.InexactFloat64(),
		ByCoin:        make(map[string]float64, len(byCoin)),
		MissingPrices: missing,
	}
	for id, d := range byCoin {
		v.ByCoin[id] = d.InexactFloat64()
	}
	return v
}
