package kernel

import (
	"fmt"

	"tableside/internal/pkg/errs"
)

// Money is a value object representing a monetary amount with cent precision.
// Amounts are stored as an integer number of cents to avoid floating-point
// rounding drift across receipt calculations.
//
// Money is immutable; arithmetic methods return new values. The zero value is
// a valid $0.00 amount.
//
// Example:
//
//	price, _ := kernel.NewMoneyFromCents(800)
//	line := price.MultiplyQty(2)
//	fmt.Println(line) // Output: $16.00
type Money struct {
	cents int64
}

// NewMoneyFromCents creates a Money amount from an integer number of cents.
// Negative amounts are rejected: prices, tips and totals in the system are
// never negative.
func NewMoneyFromCents(cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%d cents is negative", cents))
	}
	return Money{cents: cents}, nil
}

// Zero returns the $0.00 amount.
func Zero() Money {
	return Money{}
}

// Cents returns the amount as an integer number of cents.
func (m Money) Cents() int64 {
	return m.cents
}

// Add returns the sum of two amounts.
func (m Money) Add(other Money) Money {
	return Money{cents: m.cents + other.cents}
}

// MultiplyQty returns the amount multiplied by an item quantity.
// A non-positive quantity yields $0.00; quantity validation belongs to the
// caller, not the value object.
func (m Money) MultiplyQty(qty int) Money {
	if qty <= 0 {
		return Money{}
	}
	return Money{cents: m.cents * int64(qty)}
}

// Percent returns the given whole percentage of the amount, rounded half-up
// to the nearest cent. Used for tax computation on receipts.
func (m Money) Percent(p int64) Money {
	if p <= 0 {
		return Money{}
	}
	return Money{cents: (m.cents*p + 50) / 100}
}

// IsZero reports whether the amount is exactly $0.00.
func (m Money) IsZero() bool {
	return m.cents == 0
}

// IsEqual compares two amounts for equality.
func (m Money) IsEqual(other Money) bool {
	return m.cents == other.cents
}

// String formats the amount receipt-style, e.g. "$17.60".
func (m Money) String() string {
	return fmt.Sprintf("$%d.%02d", m.cents/100, m.cents%100)
}
