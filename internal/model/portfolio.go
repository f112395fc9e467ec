package model

import "time"

// Holding is one portfolio position.
type Holding struct {
	ID            int64     `json:"id"`
	CoinID        string    `json:"coinId" validate:"required"`
	Amount        float64   `json:"amount" validate:"gt=0"`
	PurchasePrice float64   `json:"purchasePrice" validate:"gte=0"`
	DateAdded     time.Time `json:"dateAdded"`
}

// Alert trigger directions.
const (
	AlertAbove = "above"
	AlertBelow = "below"
)

// Alert is a price alert. Once triggered it stays triggered.
type Alert struct {
	ID          int64   `json:"id"`
	CoinID      string  `json:"coinId" validate:"required"`
	Type        string  `json:"type" validate:"oneof=above below"`
	TargetPrice float64 `json:"targetPrice" validate:"gt=0"`
	Triggered   bool    `json:"triggered"`
}
