package models

import "time"

// Claim records a defective unit returned to its vendor. While open, the
// unit sits in the batch's on_claim bucket; clearing the claim restocks it.
type Claim struct {
	ID          int       `json:"id"`
	UnitID      int       `json:"-"`
	UnitSerial  string    `json:"unit_serial"`
	BatchID     int       `json:"batch_id"`
	ProductName string    `json:"product_name,omitempty"`
	VendorName  string    `json:"vendor_name,omitempty"`
	Reason      string    `json:"reason"`
	Cleared     bool      `json:"cleared"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CreateClaimRequest struct {
	Serial string `json:"serial"`
	Reason string `json:"reason"`
}
