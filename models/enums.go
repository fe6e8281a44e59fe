package models

import "errors"

// DocumentKind tags the single generic document table. Orders, bills and
// invoices share one shape; the kind drives numbering, the state machine and
// which side of the ledger the counterparty sits on.
type DocumentKind string

const (
	DocumentKindPurchaseOrder   DocumentKind = "purchase_order"
	DocumentKindSalesOrder      DocumentKind = "sales_order"
	DocumentKindVendorBill      DocumentKind = "vendor_bill"
	DocumentKindCustomerInvoice DocumentKind = "customer_invoice"
)

func (k DocumentKind) Valid() bool {
	switch k {
	case DocumentKindPurchaseOrder, DocumentKindSalesOrder, DocumentKindVendorBill, DocumentKindCustomerInvoice:
		return true
	}
	return false
}

// IsOrder reports whether the kind can be converted into a bill/invoice.
func (k DocumentKind) IsOrder() bool {
	return k == DocumentKindPurchaseOrder || k == DocumentKindSalesOrder
}

// IsPayable reports whether the kind carries paid_amount/balance_due and can
// receive payment allocations.
func (k DocumentKind) IsPayable() bool {
	return k == DocumentKindVendorBill || k == DocumentKindCustomerInvoice
}

// NumberPrefix returns the sequence prefix used by the numbering authority.
func (k DocumentKind) NumberPrefix() string {
	switch k {
	case DocumentKindPurchaseOrder:
		return "PO"
	case DocumentKindSalesOrder:
		return "SO"
	case DocumentKindVendorBill:
		return "BILL"
	case DocumentKindCustomerInvoice:
		return "INV"
	}
	return ""
}

// ConversionTarget returns the payable kind an order converts into.
func (k DocumentKind) ConversionTarget() (DocumentKind, error) {
	switch k {
	case DocumentKindPurchaseOrder:
		return DocumentKindVendorBill, nil
	case DocumentKindSalesOrder:
		return DocumentKindCustomerInvoice, nil
	}
	return "", errors.New("only orders can be converted")
}

type DocumentStatus string

const (
	DocumentStatusDraft     DocumentStatus = "draft"
	DocumentStatusSent      DocumentStatus = "sent"
	DocumentStatusReceived  DocumentStatus = "received"
	DocumentStatusConfirmed DocumentStatus = "confirmed"
	DocumentStatusDelivered DocumentStatus = "delivered"
	DocumentStatusPending   DocumentStatus = "pending"
	DocumentStatusPaid      DocumentStatus = "paid"
	DocumentStatusOverdue   DocumentStatus = "overdue"
	DocumentStatusCancelled DocumentStatus = "cancelled"
)

// InitialStatus is the status a freshly created document starts in.
func (k DocumentKind) InitialStatus() DocumentStatus {
	if k.IsPayable() {
		return DocumentStatusPending
	}
	return DocumentStatusDraft
}

// statusTransitions is the per-kind state machine:
//
//	purchase_order:   draft -> sent -> received; cancelled from draft/sent
//	sales_order:      draft -> confirmed -> delivered; cancelled from draft/confirmed
//	bill/invoice:     pending -> paid | overdue | cancelled; overdue -> paid | cancelled
//
// paid and cancelled are terminal.
var statusTransitions = map[DocumentKind]map[DocumentStatus][]DocumentStatus{
	DocumentKindPurchaseOrder: {
		DocumentStatusDraft: {DocumentStatusSent, DocumentStatusCancelled},
		DocumentStatusSent:  {DocumentStatusReceived, DocumentStatusCancelled},
	},
	DocumentKindSalesOrder: {
		DocumentStatusDraft:     {DocumentStatusConfirmed, DocumentStatusCancelled},
		DocumentStatusConfirmed: {DocumentStatusDelivered, DocumentStatusCancelled},
	},
	DocumentKindVendorBill: {
		DocumentStatusPending: {DocumentStatusPaid, DocumentStatusOverdue, DocumentStatusCancelled},
		DocumentStatusOverdue: {DocumentStatusPaid, DocumentStatusCancelled},
	},
	DocumentKindCustomerInvoice: {
		DocumentStatusPending: {DocumentStatusPaid, DocumentStatusOverdue, DocumentStatusCancelled},
		DocumentStatusOverdue: {DocumentStatusPaid, DocumentStatusCancelled},
	},
}

// CanTransitionStatus reports whether the state machine permits kind to move
// from one status to another.
func CanTransitionStatus(kind DocumentKind, from DocumentStatus, to DocumentStatus) bool {
	allowed, ok := statusTransitions[kind][from]
	if !ok {
		return false
	}
	for _, s := range allowed {
		if s == to {
			return true
		}
	}
	return false
}

type PaymentType string

const (
	PaymentTypeCustomer PaymentType = "customer_payment"
	PaymentTypeVendor   PaymentType = "vendor_payment"
)

func (t PaymentType) Valid() bool {
	return t == PaymentTypeCustomer || t == PaymentTypeVendor
}

// TargetKind is the only document kind this payment type may settle.
func (t PaymentType) TargetKind() DocumentKind {
	if t == PaymentTypeCustomer {
		return DocumentKindCustomerInvoice
	}
	return DocumentKindVendorBill
}

// PaymentTypeForKind derives the payment type that settles a payable kind.
func PaymentTypeForKind(kind DocumentKind) (PaymentType, error) {
	switch kind {
	case DocumentKindCustomerInvoice:
		return PaymentTypeCustomer, nil
	case DocumentKindVendorBill:
		return PaymentTypeVendor, nil
	}
	return "", errors.New("kind does not accept payments")
}

type PaymentMethod string

const (
	PaymentMethodCash   PaymentMethod = "cash"
	PaymentMethodBank   PaymentMethod = "bank"
	PaymentMethodCheque PaymentMethod = "cheque"
	PaymentMethodOnline PaymentMethod = "online"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodBank, PaymentMethodCheque, PaymentMethodOnline:
		return true
	}
	return false
}

type ContactType string

const (
	ContactTypeCustomer ContactType = "customer"
	ContactTypeVendor   ContactType = "vendor"
	ContactTypeBoth     ContactType = "both"
)

func (t ContactType) Valid() bool {
	return t == ContactTypeCustomer || t == ContactTypeVendor || t == ContactTypeBoth
}

// CanActAsVendor / CanActAsCustomer gate which documents a contact may appear on.
func (t ContactType) CanActAsVendor() bool {
	return t == ContactTypeVendor || t == ContactTypeBoth
}

func (t ContactType) CanActAsCustomer() bool {
	return t == ContactTypeCustomer || t == ContactTypeBoth
}

type ProductType string

const (
	ProductTypeGoods   ProductType = "goods"
	ProductTypeService ProductType = "service"
)

func (t ProductType) Valid() bool {
	return t == ProductTypeGoods || t == ProductTypeService
}

type TaxComputation string

const (
	TaxComputationPercentage TaxComputation = "percentage"
	TaxComputationFixed      TaxComputation = "fixed"
)

func (c TaxComputation) Valid() bool {
	return c == TaxComputationPercentage || c == TaxComputationFixed
}

type AccountType string

const (
	AccountTypeAsset     AccountType = "asset"
	AccountTypeLiability AccountType = "liability"
	AccountTypeEquity    AccountType = "equity"
	AccountTypeIncome    AccountType = "income"
	AccountTypeExpense   AccountType = "expense"
)

func (t AccountType) Valid() bool {
	switch t {
	case AccountTypeAsset, AccountTypeLiability, AccountTypeEquity, AccountTypeIncome, AccountTypeExpense:
		return true
	}
	return false
}

type UserRole string

const (
	UserRoleAdmin     UserRole = "admin"
	UserRoleInvoicing UserRole = "invoicing"
	UserRoleContact   UserRole = "contact"
)

func (r UserRole) Valid() bool {
	return r == UserRoleAdmin || r == UserRoleInvoicing || r == UserRoleContact
}
