package models

import "time"

// SellerProfile holds a seller's running commission balance and the share
// percentages the transaction engine applies to each sale's profit.
// Profit can go negative after returns.
type SellerProfile struct {
	ID            int       `json:"id"`
	Username      string    `json:"username"`
	Profit        int64     `json:"profit"`
	SellerShare   int       `json:"seller_share"`
	BusinessShare int       `json:"business_share"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type CreateSellerRequest struct {
	Username      string `json:"username"`
	SellerShare   int    `json:"seller_share"`
	BusinessShare int    `json:"business_share"`
}

// UpdateSellerShareRequest triggers the retroactive share recompute: every
// historical item sold by the seller is re-distributed under the new shares.
type UpdateSellerShareRequest struct {
	SellerShare   int `json:"seller_share"`
	BusinessShare int `json:"business_share"`
}
