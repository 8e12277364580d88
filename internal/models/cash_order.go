package models

import "time"

// CashOrder is a sale transaction header. Quantity, total_amount and
// total_profit are always recomputed from the line items, never patched
// incrementally.
type CashOrder struct {
	ID           int             `json:"id"`
	UniqueID     string          `json:"unique_id"`
	CustomerName string          `json:"customer_name"`
	SellerID     int             `json:"seller_id"`
	SellerName   string          `json:"seller_name,omitempty"`
	Warranty     string          `json:"warranty"`
	Quantity     int             `json:"quantity"`
	TotalAmount  int64           `json:"total_amount"`
	TotalProfit  int64           `json:"total_profit"`
	Items        []CashOrderItem `json:"items"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// CashOrderItem is one sold unit within a cash order.
type CashOrderItem struct {
	ID          int       `json:"id"`
	CashOrderID int       `json:"-"`
	UnitID      int       `json:"-"`
	UnitSerial  string    `json:"unit_serial"`
	BatchID     int       `json:"batch_id"`
	ProductName string    `json:"product_name,omitempty"`
	Price       int64     `json:"price"`
	CreatedAt   time.Time `json:"created_at"`
}

type OrderLineInput struct {
	Serial  string `json:"serial"`
	BatchID int    `json:"batch_id"`
	Price   int64  `json:"price"`
}

type CreateCashOrderRequest struct {
	CustomerName string           `json:"customer_name"`
	SellerID     int              `json:"seller_id"`
	Warranty     string           `json:"warranty"`
	Items        []OrderLineInput `json:"items"`
}

// Transaction is the profit-distribution record for one cash order.
// Exactly one exists per order while the order exists; deleting the order
// reverses the three profit figures before the record is removed.
type Transaction struct {
	ID             int       `json:"id"`
	CashOrderID    int       `json:"cash_order_id"`
	TotalProfit    int64     `json:"total_profit"`
	SellerProfit   int64     `json:"seller_profit"`
	OwnerProfit    int64     `json:"owner_profit"`
	BusinessProfit int64     `json:"business_profit"`
	CreatedAt      time.Time `json:"created_at"`
}
