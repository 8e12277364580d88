package models

import "time"

// CompanyProfile is a singleton row (id=1), seeded by migration.
type CompanyProfile struct {
	OwnerBalance    int64     `json:"owner_balance"`
	BusinessBalance int64     `json:"business_balance"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Setting is the singleton revenue policy record (id=1).
// ExpenseShare is stored and served but consumed by no distribution formula.
type Setting struct {
	OwnerShare   int       `json:"owner_share"`
	ExpenseShare int       `json:"expense_share"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type UpdateSettingRequest struct {
	OwnerShare   int `json:"owner_share"`
	ExpenseShare int `json:"expense_share"`
}
