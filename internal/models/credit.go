package models

import "time"

const (
	CreditStatusPending = "PENDING"
	CreditStatusCleared = "CLEARED"
)

// Credit is a deferred-payment sale. Items created while PENDING hold their
// units in the batch's on_credit bucket; clearing the credit moves them to
// sold.
type Credit struct {
	ID            int          `json:"id"`
	CustomerName  string       `json:"customer_name"`
	PaymentStatus string       `json:"payment_status"`
	Quantity      int          `json:"quantity"`
	Items         []CreditItem `json:"items"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

type CreditItem struct {
	ID          int       `json:"id"`
	CreditID    int       `json:"-"`
	UnitID      int       `json:"-"`
	UnitSerial  string    `json:"unit_serial"`
	BatchID     int       `json:"batch_id"`
	ProductName string    `json:"product_name,omitempty"`
	Price       int64     `json:"price"`
	CreatedAt   time.Time `json:"created_at"`
}

type CreateCreditRequest struct {
	CustomerName string            `json:"customer_name"`
	Items        []CreditLineInput `json:"items"`
}

type CreditLineInput struct {
	Serial  string `json:"serial"`
	BatchID int    `json:"batch_id"`
	Price   int64  `json:"price"`
}

type UpdateCreditStatusRequest struct {
	PaymentStatus string `json:"payment_status"`
}
