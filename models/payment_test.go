package models

import (
	"errors"
	"sync"
	"testing"

	"github.com/shivaccounts/books_backend/utils"
	"github.com/shopspring/decimal"
)

func TestPaymentTypeTargetKind(t *testing.T) {
	if PaymentTypeCustomer.TargetKind() != DocumentKindCustomerInvoice {
		t.Error("customer payments must settle customer invoices")
	}
	if PaymentTypeVendor.TargetKind() != DocumentKindVendorBill {
		t.Error("vendor payments must settle vendor bills")
	}

	if pt, err := PaymentTypeForKind(DocumentKindCustomerInvoice); err != nil || pt != PaymentTypeCustomer {
		t.Errorf("PaymentTypeForKind(customer_invoice) = %s (%v)", pt, err)
	}
	if pt, err := PaymentTypeForKind(DocumentKindVendorBill); err != nil || pt != PaymentTypeVendor {
		t.Errorf("PaymentTypeForKind(vendor_bill) = %s (%v)", pt, err)
	}
	if _, err := PaymentTypeForKind(DocumentKindSalesOrder); err == nil {
		t.Error("orders must not accept payments")
	}
}

// Concurrent allocations against one document, serialized the way the row
// lock serializes them, must never settle more than the grand total. Losers
// fail with OverAllocation or InvalidState instead of corrupting the balance.
func TestSerializedConcurrentAllocations(t *testing.T) {
	doc := payableDocument("1000")

	var mu sync.Mutex
	var wg sync.WaitGroup
	var accepted, refused int
	amount := decimal.RequireFromString("300")

	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			// The mutex plays the part of SELECT ... FOR UPDATE.
			mu.Lock()
			defer mu.Unlock()
			err := doc.applyAllocation(amount)
			switch {
			case err == nil:
				accepted++
			case errors.Is(err, utils.ErrorOverAllocation), errors.Is(err, utils.ErrorInvalidState):
				refused++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if accepted != 3 {
		t.Errorf("accepted = %d, want 3 (3 x 300 fits in 1000)", accepted)
	}
	if refused != 7 {
		t.Errorf("refused = %d, want 7", refused)
	}
	if doc.PaidAmount.GreaterThan(doc.GrandTotal) {
		t.Errorf("paid %s exceeds grand total %s", doc.PaidAmount, doc.GrandTotal)
	}
	if !doc.BalanceDue.Equal(doc.GrandTotal.Sub(doc.PaidAmount)) {
		t.Errorf("invariant broken: balance %s != grand %s - paid %s",
			doc.BalanceDue, doc.GrandTotal, doc.PaidAmount)
	}
}
