package models

import "time"

// WeekClosure is an immutable period-close snapshot. Creating one zeroes
// every seller's profit and the company business balance; the owner balance
// accumulates across periods.
type WeekClosure struct {
	ID             int       `json:"id"`
	TotalProfit    int64     `json:"total_profit"`
	BusinessProfit int64     `json:"business_profit"`
	CreatedAt      time.Time `json:"created_at"`
}
