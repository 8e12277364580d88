package models

import "fmt"

// NotFoundError reports a missing entity by kind and identifier.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

// InvalidStateError reports a command applied to an entity whose current
// state forbids it, e.g. clearing an already-cleared credit.
type InvalidStateError struct {
	Entity string
	ID     string
	Reason string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Entity, e.ID, e.Reason)
}

// InsufficientStockError reports a batch that cannot cover the requested
// quantity.
type InsufficientStockError struct {
	BatchID   int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("batch %d has only %d units available", e.BatchID, e.Available)
}

// DuplicateUnitError reports a serial that is already committed elsewhere:
// sold, on credit, under an open claim, or listed twice in one request.
type DuplicateUnitError struct {
	Serial string
	Reason string
}

func (e *DuplicateUnitError) Error() string {
	return fmt.Sprintf("unit %s: %s", e.Serial, e.Reason)
}
