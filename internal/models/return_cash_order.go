package models

import "time"

// Return reasons. Each branch computes return_amount and corrects seller
// profit differently; none of them touch stock counters or company balances.
const (
	ReturnReasonNotInterested = "NOT_INTERESTED"
	ReturnReasonIssue         = "ISSUE"
	ReturnReasonCustom        = "CUSTOM"
)

type ReturnCashOrder struct {
	ID           int        `json:"id"`
	CashOrderID  int        `json:"cash_order_id"`
	Reason       string     `json:"reason"`
	ReturnAmount int64      `json:"return_amount"`
	CashOrder    *CashOrder `json:"cashorder_detail,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

type CreateReturnRequest struct {
	CashOrderID  int    `json:"cash_order_id"`
	Reason       string `json:"reason"`
	ReturnAmount int64  `json:"return_amount"` // used by CUSTOM only
}
