package order

import (
	"errors"
	"fmt"
)

// ErrNoOpenOrder is returned when closing a table that has no open order.
var ErrNoOpenOrder = errors.New("no open order for table")

// InsufficientStockError rejects a reservation that would oversell. No
// mutation happens for the offending product; earlier items of the same
// batch stay committed.
type InsufficientStockError struct {
	ProductID uint
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %d: requested %d, available %d",
		e.ProductID, e.Requested, e.Available)
}

// ValidationError rejects malformed input before any mutation.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}
