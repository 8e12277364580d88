package models

import "time"

// StockBatch is one purchasing event from a vendor. The four counters
// partition the batch's member units:
//
//	available_stock + sold + on_credit + on_claim == number of member units
//
// Asset is derived: purchasing_price * (available_stock + on_credit),
// recomputed whenever counters change.
type StockBatch struct {
	ID              int       `json:"id"`
	ProductID       int       `json:"product_id"`
	ProductName     string    `json:"product_name,omitempty"`
	VendorID        int       `json:"vendor_id"`
	Vendor          *Vendor   `json:"vendor,omitempty"`
	PurchasingPrice int64     `json:"purchasing_price"`
	AvailableStock  int       `json:"available_stock"`
	Sold            int       `json:"sold"`
	OnCredit        int       `json:"on_credit"`
	OnClaim         int       `json:"on_claim"`
	Asset           int64     `json:"asset"`
	MemberSerials   []string  `json:"member_serials,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type IntakeRequest struct {
	ProductID       int      `json:"product_id"`
	VendorID        int      `json:"vendor_id"`
	PurchasingPrice int64    `json:"purchasing_price"`
	UnitSerials     []string `json:"unit_serials"`
}

type AdjustBatchRequest struct {
	PurchasingPrice int64 `json:"purchasing_price"`
	AvailableStock  int   `json:"available_stock"`
}
