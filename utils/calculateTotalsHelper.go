package utils

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// LineAmounts carries the per-line inputs and derived amounts for a document
// line. Quantity, UnitPrice and TaxPercent come from the caller; TaxAmount
// and Total are filled in by CalculateDocumentTotals.
type LineAmounts struct {
	Quantity   decimal.Decimal
	UnitPrice  decimal.Decimal
	TaxPercent decimal.Decimal
	TaxAmount  decimal.Decimal
	Total      decimal.Decimal
}

// DocumentTotals is the footer of every document.
type DocumentTotals struct {
	Subtotal   decimal.Decimal
	TaxTotal   decimal.Decimal
	GrandTotal decimal.Decimal
}

var decimalOneHundred = decimal.NewFromInt(100)

// CalculateDocumentTotals derives per-line tax amounts/totals and the document
// footer from raw line inputs. All arithmetic is fixed-point decimal; the same
// input always yields the same output regardless of how many times a document
// is recomputed.
//
// Validation: at least one line; quantity > 0; unit price >= 0; tax percent
// within [0, 100]. Violations return a ValidationError naming the line field.
func CalculateDocumentTotals(lines []LineAmounts) (DocumentTotals, []LineAmounts, error) {
	var totals DocumentTotals

	if len(lines) == 0 {
		return totals, nil, NewValidationError("items", "at least one line item is required")
	}

	result := make([]LineAmounts, len(lines))
	for i, line := range lines {
		if !line.Quantity.IsPositive() {
			return totals, nil, NewValidationError(LineFieldName(i, "quantity"), "must be greater than zero")
		}
		if line.UnitPrice.IsNegative() {
			return totals, nil, NewValidationError(LineFieldName(i, "unit_price"), "cannot be negative")
		}
		if line.TaxPercent.IsNegative() || line.TaxPercent.GreaterThan(decimalOneHundred) {
			return totals, nil, NewValidationError(LineFieldName(i, "tax_percent"), "must be between 0 and 100")
		}

		lineAmount := line.Quantity.Mul(line.UnitPrice)
		taxAmount := lineAmount.Mul(line.TaxPercent).DivRound(decimalOneHundred, 2)

		line.TaxAmount = taxAmount
		line.Total = lineAmount.Add(taxAmount)
		result[i] = line

		totals.Subtotal = totals.Subtotal.Add(lineAmount)
		totals.TaxTotal = totals.TaxTotal.Add(taxAmount)
	}
	totals.GrandTotal = totals.Subtotal.Add(totals.TaxTotal)

	return totals, result, nil
}

// LineFieldName names a line-level field in validation errors, e.g.
// items[2].quantity.
func LineFieldName(index int, field string) string {
	return fmt.Sprintf("items[%d].%s", index, field)
}
