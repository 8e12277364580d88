package models

import "time"

// Unit is one physical item identified by its IMEI/serial number.
// A unit belongs to at most one stock batch and is referenced by at most
// one active cash-order item, credit item, or open claim at a time.
type Unit struct {
	ID        int       `json:"id"`
	Serial    string    `json:"serial"`
	BatchID   *int      `json:"batch_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// UnitStatus is the IMEI-search result: the unit plus where it currently
// stands in the ledger.
type UnitStatus struct {
	Unit   *Unit  `json:"unit"`
	Status string `json:"status"` // available | already sold | already on credit | under an open claim | unassigned
}
