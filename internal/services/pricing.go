// internal/services/pricing.go
package services

import (
	"github.com/shopspring/decimal"
)

// ComputeSubtotal prices one order line: unitPrice × pound × quantity.
// Callers validate the operands.
func ComputeSubtotal(unitPrice, pound decimal.Decimal, quantity int) decimal.Decimal {
	return unitPrice.Mul(pound).Mul(decimal.NewFromInt(int64(quantity)))
}
