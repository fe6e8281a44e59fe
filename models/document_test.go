package models

import (
	"errors"
	"testing"
	"time"

	"github.com/shivaccounts/books_backend/utils"
	"github.com/shopspring/decimal"
)

func TestInitialStatusPerKind(t *testing.T) {
	cases := []struct {
		kind DocumentKind
		want DocumentStatus
	}{
		{DocumentKindPurchaseOrder, DocumentStatusDraft},
		{DocumentKindSalesOrder, DocumentStatusDraft},
		{DocumentKindVendorBill, DocumentStatusPending},
		{DocumentKindCustomerInvoice, DocumentStatusPending},
	}
	for _, tc := range cases {
		if got := tc.kind.InitialStatus(); got != tc.want {
			t.Errorf("%s initial status = %s, want %s", tc.kind, got, tc.want)
		}
	}
}

func TestStatusTransitions(t *testing.T) {
	cases := []struct {
		kind    DocumentKind
		from    DocumentStatus
		to      DocumentStatus
		allowed bool
	}{
		{DocumentKindPurchaseOrder, DocumentStatusDraft, DocumentStatusSent, true},
		{DocumentKindPurchaseOrder, DocumentStatusSent, DocumentStatusReceived, true},
		{DocumentKindPurchaseOrder, DocumentStatusDraft, DocumentStatusReceived, false},
		{DocumentKindPurchaseOrder, DocumentStatusReceived, DocumentStatusDraft, false},
		{DocumentKindPurchaseOrder, DocumentStatusDraft, DocumentStatusCancelled, true},
		{DocumentKindPurchaseOrder, DocumentStatusCancelled, DocumentStatusDraft, false},
		{DocumentKindPurchaseOrder, DocumentStatusDraft, DocumentStatusConfirmed, false},

		{DocumentKindSalesOrder, DocumentStatusDraft, DocumentStatusConfirmed, true},
		{DocumentKindSalesOrder, DocumentStatusConfirmed, DocumentStatusDelivered, true},
		{DocumentKindSalesOrder, DocumentStatusDelivered, DocumentStatusConfirmed, false},
		{DocumentKindSalesOrder, DocumentStatusDraft, DocumentStatusSent, false},

		{DocumentKindVendorBill, DocumentStatusPending, DocumentStatusPaid, true},
		{DocumentKindVendorBill, DocumentStatusPending, DocumentStatusOverdue, true},
		{DocumentKindVendorBill, DocumentStatusOverdue, DocumentStatusPaid, true},
		{DocumentKindVendorBill, DocumentStatusPaid, DocumentStatusPending, false},
		{DocumentKindVendorBill, DocumentStatusCancelled, DocumentStatusPending, false},

		{DocumentKindCustomerInvoice, DocumentStatusPending, DocumentStatusCancelled, true},
		{DocumentKindCustomerInvoice, DocumentStatusOverdue, DocumentStatusCancelled, true},
		{DocumentKindCustomerInvoice, DocumentStatusPaid, DocumentStatusCancelled, false},
	}
	for _, tc := range cases {
		if got := CanTransitionStatus(tc.kind, tc.from, tc.to); got != tc.allowed {
			t.Errorf("CanTransitionStatus(%s, %s, %s) = %v, want %v",
				tc.kind, tc.from, tc.to, got, tc.allowed)
		}
	}
}

func payableDocument(grand string) *Document {
	g := decimal.RequireFromString(grand)
	return &Document{
		ID:         1,
		Kind:       DocumentKindCustomerInvoice,
		Status:     DocumentStatusPending,
		GrandTotal: g,
		PaidAmount: decimal.Zero,
		BalanceDue: g,
	}
}

func TestApplyAllocationPartialThenFull(t *testing.T) {
	doc := payableDocument("200")

	if err := doc.applyAllocation(decimal.RequireFromString("150")); err != nil {
		t.Fatalf("first allocation: %v", err)
	}
	if doc.Status != DocumentStatusPending {
		t.Errorf("status after partial = %s, want pending", doc.Status)
	}
	if !doc.BalanceDue.Equal(decimal.RequireFromString("50")) {
		t.Errorf("balance after partial = %s, want 50", doc.BalanceDue)
	}

	if err := doc.applyAllocation(decimal.RequireFromString("50")); err != nil {
		t.Fatalf("second allocation: %v", err)
	}
	if doc.Status != DocumentStatusPaid {
		t.Errorf("status after full settle = %s, want paid", doc.Status)
	}
	if !doc.BalanceDue.IsZero() {
		t.Errorf("balance after full settle = %s, want 0", doc.BalanceDue)
	}
}

func TestApplyAllocationOverAllocation(t *testing.T) {
	doc := payableDocument("200")
	if err := doc.applyAllocation(decimal.RequireFromString("150")); err != nil {
		t.Fatalf("first allocation: %v", err)
	}
	err := doc.applyAllocation(decimal.RequireFromString("100"))
	if !errors.Is(err, utils.ErrorOverAllocation) {
		t.Fatalf("expected ErrorOverAllocation, got %v", err)
	}
	// Failed allocation must not move the balance.
	if !doc.BalanceDue.Equal(decimal.RequireFromString("50")) {
		t.Errorf("balance after refused allocation = %s, want 50", doc.BalanceDue)
	}
}

func TestApplyAllocationExactBalanceTransitionsToPaid(t *testing.T) {
	doc := payableDocument("236")
	if err := doc.applyAllocation(decimal.RequireFromString("236")); err != nil {
		t.Fatalf("applyAllocation: %v", err)
	}
	if doc.Status != DocumentStatusPaid {
		t.Errorf("status = %s, want paid", doc.Status)
	}
}

func TestApplyAllocationRefusesBadTargets(t *testing.T) {
	cancelled := payableDocument("100")
	cancelled.Status = DocumentStatusCancelled
	if err := cancelled.applyAllocation(decimal.NewFromInt(10)); !errors.Is(err, utils.ErrorInvalidState) {
		t.Errorf("cancelled target: expected ErrorInvalidState, got %v", err)
	}

	order := &Document{Kind: DocumentKindSalesOrder, Status: DocumentStatusDraft}
	if err := order.applyAllocation(decimal.NewFromInt(10)); !errors.Is(err, utils.ErrorInvalidState) {
		t.Errorf("order target: expected ErrorInvalidState, got %v", err)
	}

	doc := payableDocument("100")
	if err := doc.applyAllocation(decimal.Zero); !utils.IsValidationError(err) {
		t.Errorf("zero amount: expected ValidationError, got %v", err)
	}
	if err := doc.applyAllocation(decimal.NewFromInt(-5)); !utils.IsValidationError(err) {
		t.Errorf("negative amount: expected ValidationError, got %v", err)
	}
}

// balance_due must equal grand_total - paid_amount after every accepted
// allocation, and serialized allocations can never settle more than the
// grand total.
func TestAllocationBalanceInvariant(t *testing.T) {
	doc := payableDocument("500")
	amounts := []string{"120", "80", "200", "100"}

	var settled decimal.Decimal
	for _, a := range amounts {
		amount := decimal.RequireFromString(a)
		if err := doc.applyAllocation(amount); err != nil {
			t.Fatalf("allocation of %s: %v", a, err)
		}
		settled = settled.Add(amount)
		if !doc.BalanceDue.Equal(doc.GrandTotal.Sub(doc.PaidAmount)) {
			t.Fatalf("invariant broken: balance %s != grand %s - paid %s",
				doc.BalanceDue, doc.GrandTotal, doc.PaidAmount)
		}
	}
	if !doc.PaidAmount.Equal(settled) {
		t.Errorf("paid = %s, want %s", doc.PaidAmount, settled)
	}
	if err := doc.applyAllocation(decimal.NewFromInt(1)); !errors.Is(err, utils.ErrorInvalidState) {
		t.Errorf("fully paid target: expected ErrorInvalidState, got %v", err)
	}
}

func TestReverseAllocationReopensDocument(t *testing.T) {
	doc := payableDocument("100")
	if err := doc.applyAllocation(decimal.RequireFromString("100")); err != nil {
		t.Fatalf("applyAllocation: %v", err)
	}
	if doc.Status != DocumentStatusPaid {
		t.Fatalf("status = %s, want paid", doc.Status)
	}

	doc.reverseAllocation(decimal.RequireFromString("100"))
	if doc.Status != DocumentStatusPending {
		t.Errorf("status after reversal = %s, want pending", doc.Status)
	}
	if !doc.BalanceDue.Equal(doc.GrandTotal) {
		t.Errorf("balance after reversal = %s, want %s", doc.BalanceDue, doc.GrandTotal)
	}
	if !doc.PaidAmount.IsZero() {
		t.Errorf("paid after reversal = %s, want 0", doc.PaidAmount)
	}
}

func TestBuildConversionCopiesItemsVerbatim(t *testing.T) {
	now := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	source := &Document{
		ID:         7,
		Kind:       DocumentKindSalesOrder,
		ContactId:  3,
		Status:     DocumentStatusConfirmed,
		Subtotal:   decimal.RequireFromString("200"),
		TaxTotal:   decimal.RequireFromString("36"),
		GrandTotal: decimal.RequireFromString("236"),
		Notes:      "rush order",
		Items: []DocumentItem{
			{ID: 11, DocumentId: 7, ProductId: 2, ProductName: "Office Chair",
				Quantity:   decimal.RequireFromString("2"),
				UnitPrice:  decimal.RequireFromString("100"),
				TaxPercent: decimal.RequireFromString("18"),
				TaxAmount:  decimal.RequireFromString("36"),
				Total:      decimal.RequireFromString("236")},
		},
	}

	createdBy := 5
	converted := buildConversion(source, DocumentKindCustomerInvoice, "INV-00001", now, &createdBy)

	if converted.Kind != DocumentKindCustomerInvoice {
		t.Errorf("kind = %s, want customer_invoice", converted.Kind)
	}
	if converted.Status != DocumentStatusPending {
		t.Errorf("status = %s, want pending", converted.Status)
	}
	if converted.DocumentNumber != "INV-00001" {
		t.Errorf("number = %s, want INV-00001", converted.DocumentNumber)
	}
	if converted.SourceDocumentId == nil || *converted.SourceDocumentId != source.ID {
		t.Errorf("source document id = %v, want %d", converted.SourceDocumentId, source.ID)
	}

	// Totals carried over, never recomputed.
	if !converted.GrandTotal.Equal(source.GrandTotal) ||
		!converted.Subtotal.Equal(source.Subtotal) ||
		!converted.TaxTotal.Equal(source.TaxTotal) {
		t.Errorf("totals changed on conversion: %+v", converted)
	}
	if !converted.BalanceDue.Equal(source.GrandTotal) {
		t.Errorf("balance due = %s, want %s", converted.BalanceDue, source.GrandTotal)
	}
	if !converted.PaidAmount.IsZero() {
		t.Errorf("paid amount = %s, want 0", converted.PaidAmount)
	}

	if len(converted.Items) != 1 {
		t.Fatalf("items = %d, want 1", len(converted.Items))
	}
	got, want := converted.Items[0], source.Items[0]
	if got.ID != 0 || got.DocumentId != 0 {
		t.Errorf("copied item kept source row identity: %+v", got)
	}
	if got.ProductId != want.ProductId || got.ProductName != want.ProductName ||
		!got.Quantity.Equal(want.Quantity) || !got.UnitPrice.Equal(want.UnitPrice) ||
		!got.TaxPercent.Equal(want.TaxPercent) || !got.TaxAmount.Equal(want.TaxAmount) ||
		!got.Total.Equal(want.Total) {
		t.Errorf("item not copied verbatim: got %+v, want %+v", got, want)
	}

	wantDue := now.AddDate(0, 0, 30)
	if converted.DueDate == nil || !converted.DueDate.Equal(wantDue) {
		t.Errorf("due date = %v, want %v", converted.DueDate, wantDue)
	}
}

func TestConversionTargets(t *testing.T) {
	if target, err := DocumentKindPurchaseOrder.ConversionTarget(); err != nil || target != DocumentKindVendorBill {
		t.Errorf("purchase order converts to %s (%v), want vendor_bill", target, err)
	}
	if target, err := DocumentKindSalesOrder.ConversionTarget(); err != nil || target != DocumentKindCustomerInvoice {
		t.Errorf("sales order converts to %s (%v), want customer_invoice", target, err)
	}
	if _, err := DocumentKindVendorBill.ConversionTarget(); err == nil {
		t.Error("vendor bill must not be convertible")
	}
	if _, err := DocumentKindCustomerInvoice.ConversionTarget(); err == nil {
		t.Error("customer invoice must not be convertible")
	}
}
