package utils_test

import (
	"errors"
	"testing"

	"github.com/shivaccounts/books_backend/utils"
	"github.com/shopspring/decimal"
)

func line(qty, price, tax string) utils.LineAmounts {
	return utils.LineAmounts{
		Quantity:   decimal.RequireFromString(qty),
		UnitPrice:  decimal.RequireFromString(price),
		TaxPercent: decimal.RequireFromString(tax),
	}
}

func TestCalculateDocumentTotalsExample(t *testing.T) {
	totals, lines, err := utils.CalculateDocumentTotals([]utils.LineAmounts{
		line("2", "100", "18"),
	})
	if err != nil {
		t.Fatalf("CalculateDocumentTotals: %v", err)
	}

	if !totals.Subtotal.Equal(decimal.RequireFromString("200")) {
		t.Errorf("subtotal = %s, want 200", totals.Subtotal)
	}
	if !totals.TaxTotal.Equal(decimal.RequireFromString("36")) {
		t.Errorf("tax total = %s, want 36", totals.TaxTotal)
	}
	if !totals.GrandTotal.Equal(decimal.RequireFromString("236")) {
		t.Errorf("grand total = %s, want 236", totals.GrandTotal)
	}
	if !lines[0].TaxAmount.Equal(decimal.RequireFromString("36")) {
		t.Errorf("line tax = %s, want 36", lines[0].TaxAmount)
	}
	if !lines[0].Total.Equal(decimal.RequireFromString("236")) {
		t.Errorf("line total = %s, want 236", lines[0].Total)
	}
}

func TestCalculateDocumentTotalsGrandEqualsSubPlusTax(t *testing.T) {
	inputs := []utils.LineAmounts{
		line("3", "19.99", "5"),
		line("1", "0.01", "18"),
		line("7.5", "123.45", "12.5"),
		line("2", "0", "28"),
	}
	totals, _, err := utils.CalculateDocumentTotals(inputs)
	if err != nil {
		t.Fatalf("CalculateDocumentTotals: %v", err)
	}
	if !totals.GrandTotal.Equal(totals.Subtotal.Add(totals.TaxTotal)) {
		t.Errorf("grand %s != subtotal %s + tax %s", totals.GrandTotal, totals.Subtotal, totals.TaxTotal)
	}
}

// Recomputing the same input must always land on identical totals; the
// arithmetic is fixed-point, never float.
func TestCalculateDocumentTotalsDeterministic(t *testing.T) {
	inputs := []utils.LineAmounts{
		line("3", "33.33", "17.5"),
		line("11", "7.07", "5"),
		line("0.5", "999.99", "28"),
	}

	first, _, err := utils.CalculateDocumentTotals(inputs)
	if err != nil {
		t.Fatalf("CalculateDocumentTotals: %v", err)
	}
	for i := 0; i < 1000; i++ {
		again, _, err := utils.CalculateDocumentTotals(inputs)
		if err != nil {
			t.Fatalf("recompute %d: %v", i, err)
		}
		if !again.Subtotal.Equal(first.Subtotal) ||
			!again.TaxTotal.Equal(first.TaxTotal) ||
			!again.GrandTotal.Equal(first.GrandTotal) {
			t.Fatalf("recompute %d diverged: %+v vs %+v", i, again, first)
		}
	}
}

func TestCalculateDocumentTotalsValidation(t *testing.T) {
	cases := []struct {
		name  string
		lines []utils.LineAmounts
		field string
	}{
		{"empty", nil, "items"},
		{"zero quantity", []utils.LineAmounts{line("0", "10", "5")}, "items[0].quantity"},
		{"negative quantity", []utils.LineAmounts{line("-1", "10", "5")}, "items[0].quantity"},
		{"negative price", []utils.LineAmounts{line("1", "-10", "5")}, "items[0].unit_price"},
		{"tax above 100", []utils.LineAmounts{line("1", "10", "101")}, "items[0].tax_percent"},
		{"negative tax", []utils.LineAmounts{line("1", "10", "-1")}, "items[0].tax_percent"},
		{"second line bad", []utils.LineAmounts{line("1", "10", "5"), line("1", "10", "200")}, "items[1].tax_percent"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, gotErr := utils.CalculateDocumentTotals(tc.lines)
			if gotErr == nil {
				t.Fatal("expected validation error")
			}
			var ve *utils.ValidationError
			if !errors.As(gotErr, &ve) {
				t.Fatalf("expected ValidationError, got %T", gotErr)
			}
			if ve.Field != tc.field {
				t.Errorf("field = %q, want %q", ve.Field, tc.field)
			}
		})
	}
}

func TestZeroTaxLine(t *testing.T) {
	totals, lines, err := utils.CalculateDocumentTotals([]utils.LineAmounts{
		line("4", "25", "0"),
	})
	if err != nil {
		t.Fatalf("CalculateDocumentTotals: %v", err)
	}
	if !lines[0].TaxAmount.IsZero() {
		t.Errorf("tax amount = %s, want 0", lines[0].TaxAmount)
	}
	if !totals.GrandTotal.Equal(decimal.RequireFromString("100")) {
		t.Errorf("grand total = %s, want 100", totals.GrandTotal)
	}
}
