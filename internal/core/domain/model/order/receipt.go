package order

import "tableside/internal/core/domain/model/kernel"

// Receipt carries the settled totals of a closed order. All values are
// derived; Total is subtotal plus tax, AmountDue adds the tip on top.
type Receipt struct {
	Subtotal  kernel.Money
	Tax       kernel.Money
	Tip       kernel.Money
	Total     kernel.Money
	AmountDue kernel.Money
}

// NewReceipt computes receipt totals for a subtotal and tip, applying
// TaxRatePercent to the subtotal.
func NewReceipt(subtotal, tip kernel.Money) Receipt {
	tax := subtotal.Percent(TaxRatePercent)
	total := subtotal.Add(tax)
	return Receipt{
		Subtotal:  subtotal,
		Tax:       tax,
		Tip:       tip,
		Total:     total,
		AmountDue: total.Add(tip),
	}
}
