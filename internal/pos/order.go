package pos

import "errors"

// Payment methods. Informational only: the tag is recorded on nothing and
// changes no behavior, it exists so the terminal can capture how the customer
// paid.
const (
	PaymentCash = "CASH"
	PaymentCard = "CARD"
)

// Errors returned by order boundary checks.
var (
	ErrEmptyOrder       = errors.New("order has no items")
	ErrNegativeQuantity = errors.New("quantity must be >= 0")
	ErrInvalidPayment   = errors.New("invalid payment method")
)

// Order is a transient POS submission: requested quantity per menu item plus
// a payment tag. It exists only for the duration of validation and processing.
type Order struct {
	Lines   map[string]int
	Payment string
}

// Check rejects malformed orders before they reach the validator: negative
// quantities, unknown payment methods, and orders with no positive line.
func (o Order) Check() error {
	switch o.Payment {
	case PaymentCash, PaymentCard:
	default:
		return ErrInvalidPayment
	}

	positive := false
	for _, qty := range o.Lines {
		if qty < 0 {
			return ErrNegativeQuantity
		}
		if qty > 0 {
			positive = true
		}
	}
	if !positive {
		return ErrEmptyOrder
	}
	return nil
}
