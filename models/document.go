package models

import (
	"context"
	"time"

	"github.com/shivaccounts/books_backend/config"
	"github.com/shivaccounts/books_backend/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Document is the single table behind purchase orders, sales orders, vendor
// bills and customer invoices. The four kinds share one shape and one set of
// operations; Kind selects the number prefix, the state machine and whether
// the payment columns are live.
//
// Invariant for payable kinds: BalanceDue = GrandTotal - PaidAmount, with
// 0 <= PaidAmount <= GrandTotal. Order kinds keep both columns at zero.
type Document struct {
	ID               int             `gorm:"primary_key" json:"id"`
	Kind             DocumentKind    `gorm:"size:20;not null;index" json:"kind"`
	DocumentNumber   string          `gorm:"size:30;not null;uniqueIndex" json:"document_number"`
	ContactId        int             `gorm:"not null;index" json:"contact_id"`
	Contact          *Contact        `gorm:"foreignKey:ContactId" json:"contact,omitempty"`
	Date             time.Time       `gorm:"type:date;not null" json:"date"`
	DueDate          *time.Time      `gorm:"type:date;default:null" json:"due_date"`
	Status           DocumentStatus  `gorm:"size:20;not null;index" json:"status"`
	Subtotal         decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"subtotal"`
	TaxTotal         decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"tax_total"`
	GrandTotal       decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"grand_total"`
	PaidAmount       decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"paid_amount"`
	BalanceDue       decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"balance_due"`
	SourceDocumentId *int            `gorm:"default:null;index" json:"source_document_id"`
	Notes            string          `gorm:"type:text;default:null" json:"notes"`
	CreatedBy        *int            `gorm:"default:null" json:"created_by"`
	Items            []DocumentItem  `gorm:"foreignKey:DocumentId" json:"items"`
	CreatedAt        time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type DocumentItem struct {
	ID          int             `gorm:"primary_key" json:"id"`
	DocumentId  int             `gorm:"not null;index" json:"document_id"`
	ProductId   int             `gorm:"not null" json:"product_id"`
	ProductName string          `gorm:"size:255;not null" json:"product_name"`
	Quantity    decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"quantity"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"unit_price"`
	TaxPercent  decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0" json:"tax_percent"`
	TaxAmount   decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"tax_amount"`
	Total       decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"total"`
}

type NewDocument struct {
	Kind      DocumentKind      `json:"kind" binding:"required"`
	ContactId int               `json:"contact_id" binding:"required"`
	Date      time.Time         `json:"date"`
	DueDate   *time.Time        `json:"due_date"`
	Notes     string            `json:"notes"`
	Items     []NewDocumentItem `json:"items" binding:"required"`
}

type NewDocumentItem struct {
	ProductId  int             `json:"product_id" binding:"required"`
	Quantity   decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	TaxPercent decimal.Decimal `json:"tax_percent"`
}

// buildDocumentItems resolves products, snapshots their names and runs the
// totals calculator over the raw line inputs. The returned items carry the
// derived tax amounts and line totals.
func buildDocumentItems(ctx context.Context, kind DocumentKind, inputs []NewDocumentItem) ([]DocumentItem, utils.DocumentTotals, error) {
	var totals utils.DocumentTotals

	lines := make([]utils.LineAmounts, len(inputs))
	products := make([]*Product, len(inputs))
	for i, item := range inputs {
		product, err := utils.FetchModel[Product](ctx, item.ProductId)
		if err != nil {
			return nil, totals, utils.NewValidationError(
				utils.LineFieldName(i, "product_id"), "product not found")
		}
		products[i] = product

		unitPrice := item.UnitPrice
		taxPercent := item.TaxPercent
		// Unspecified price and tax default from the product master, per
		// document side.
		if unitPrice.IsZero() {
			if kind == DocumentKindPurchaseOrder || kind == DocumentKindVendorBill {
				unitPrice = product.PurchasePrice
			} else {
				unitPrice = product.SalesPrice
			}
		}
		if taxPercent.IsZero() {
			if kind == DocumentKindPurchaseOrder || kind == DocumentKindVendorBill {
				taxPercent = product.PurchaseTaxPercent
			} else {
				taxPercent = product.SaleTaxPercent
			}
		}

		lines[i] = utils.LineAmounts{
			Quantity:   item.Quantity,
			UnitPrice:  unitPrice,
			TaxPercent: taxPercent,
		}
	}

	totals, computed, err := utils.CalculateDocumentTotals(lines)
	if err != nil {
		return nil, totals, err
	}

	items := make([]DocumentItem, len(inputs))
	for i, line := range computed {
		items[i] = DocumentItem{
			ProductId:   inputs[i].ProductId,
			ProductName: products[i].Name,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			TaxPercent:  line.TaxPercent,
			TaxAmount:   line.TaxAmount,
			Total:       line.Total,
		}
	}
	return items, totals, nil
}

// CreateDocument creates a document of any kind together with its line items.
// The document number is minted inside the same transaction that persists the
// document, so a rollback never leaves a consumed number attached to nothing.
func CreateDocument(ctx context.Context, input *NewDocument, createdBy *int) (*Document, error) {
	if !input.Kind.Valid() {
		return nil, utils.NewValidationError("kind", "must be purchase_order, sales_order, vendor_bill or customer_invoice")
	}
	if _, err := validateContactForKind(ctx, input.ContactId, input.Kind); err != nil {
		return nil, err
	}

	items, totals, err := buildDocumentItems(ctx, input.Kind, input.Items)
	if err != nil {
		return nil, err
	}

	date := input.Date
	if date.IsZero() {
		date = time.Now()
	}
	dueDate := input.DueDate
	if dueDate == nil && input.Kind.IsPayable() {
		d := date.AddDate(0, 0, 30)
		dueDate = &d
	}

	document := Document{
		Kind:       input.Kind,
		ContactId:  input.ContactId,
		Date:       date,
		DueDate:    dueDate,
		Status:     input.Kind.InitialStatus(),
		Subtotal:   totals.Subtotal,
		TaxTotal:   totals.TaxTotal,
		GrandTotal: totals.GrandTotal,
		PaidAmount: decimal.Zero,
		Notes:      input.Notes,
		CreatedBy:  createdBy,
		Items:      items,
	}
	if input.Kind.IsPayable() {
		document.BalanceDue = totals.GrandTotal
	}

	db := config.GetDB()
	tx := db.WithContext(ctx).Begin()
	defer tx.Rollback()

	number, _, err := NextSequenceNumber(ctx, tx, input.Kind.NumberPrefix())
	if err != nil {
		return nil, err
	}
	document.DocumentNumber = number

	if err := tx.Create(&document).Error; err != nil {
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return &document, nil
}

// ReplaceDocumentItems swaps the full line set and recomputes totals.
// Documents in a terminal state, or payables that already received money,
// refuse the edit; correcting a partially paid document means cancelling the
// payment first.
func ReplaceDocumentItems(ctx context.Context, id int, inputs []NewDocumentItem) (*Document, error) {
	db := config.GetDB()
	tx := db.WithContext(ctx).Begin()
	defer tx.Rollback()

	var document Document
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&document, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, utils.ErrorRecordNotFound
		}
		return nil, err
	}

	if document.Status == DocumentStatusPaid || document.Status == DocumentStatusCancelled ||
		document.Status == DocumentStatusReceived || document.Status == DocumentStatusDelivered {
		return nil, utils.ErrorInvalidState
	}
	if document.PaidAmount.IsPositive() {
		return nil, utils.ErrorInvalidState
	}

	items, totals, err := buildDocumentItems(ctx, document.Kind, inputs)
	if err != nil {
		return nil, err
	}

	if err := tx.Where("document_id = ?", document.ID).
		Delete(&DocumentItem{}).Error; err != nil {
		return nil, err
	}
	for i := range items {
		items[i].DocumentId = document.ID
	}
	if err := tx.Create(&items).Error; err != nil {
		return nil, err
	}

	document.Subtotal = totals.Subtotal
	document.TaxTotal = totals.TaxTotal
	document.GrandTotal = totals.GrandTotal
	if document.Kind.IsPayable() {
		document.BalanceDue = totals.GrandTotal.Sub(document.PaidAmount)
	}
	document.Items = items
	if err := tx.Save(&document).Error; err != nil {
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return &document, nil
}

// UpdateDocumentStatus applies a manual transition. The paid status is owned
// by the allocation engine and can never be set by hand.
func UpdateDocumentStatus(ctx context.Context, id int, to DocumentStatus) (*Document, error) {
	if to == DocumentStatusPaid {
		return nil, utils.ErrorInvalidState
	}

	db := config.GetDB()
	tx := db.WithContext(ctx).Begin()
	defer tx.Rollback()

	var document Document
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&document, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, utils.ErrorRecordNotFound
		}
		return nil, err
	}

	if !CanTransitionStatus(document.Kind, document.Status, to) {
		return nil, utils.ErrorInvalidState
	}

	document.Status = to
	if err := tx.Save(&document).Error; err != nil {
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return &document, nil
}

// MarkOverdueDocuments flips every pending payable whose due date has passed
// to overdue and returns how many rows changed. Meant to run from a daily
// sweep or on demand before reporting.
func MarkOverdueDocuments(ctx context.Context, asOf time.Time) (int64, error) {
	db := config.GetDB()
	result := db.WithContext(ctx).Model(&Document{}).
		Where("kind IN ?", []DocumentKind{DocumentKindVendorBill, DocumentKindCustomerInvoice}).
		Where("status = ?", DocumentStatusPending).
		Where("due_date IS NOT NULL AND due_date < ?", asOf).
		Update("status", DocumentStatusOverdue)
	return result.RowsAffected, result.Error
}

// buildConversion assembles the payable counterpart of an order: items copied
// verbatim, totals carried over unrecomputed, a 30-day due date, pending
// status and a zero paid amount. The source document is left untouched.
func buildConversion(source *Document, target DocumentKind, number string, now time.Time, createdBy *int) *Document {
	items := make([]DocumentItem, len(source.Items))
	for i, item := range source.Items {
		items[i] = DocumentItem{
			ProductId:   item.ProductId,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			TaxPercent:  item.TaxPercent,
			TaxAmount:   item.TaxAmount,
			Total:       item.Total,
		}
	}
	dueDate := now.AddDate(0, 0, 30)
	sourceId := source.ID
	return &Document{
		Kind:             target,
		DocumentNumber:   number,
		ContactId:        source.ContactId,
		Date:             now,
		DueDate:          &dueDate,
		Status:           DocumentStatusPending,
		Subtotal:         source.Subtotal,
		TaxTotal:         source.TaxTotal,
		GrandTotal:       source.GrandTotal,
		PaidAmount:       decimal.Zero,
		BalanceDue:       source.GrandTotal,
		SourceDocumentId: &sourceId,
		Notes:            source.Notes,
		CreatedBy:        createdBy,
		Items:            items,
	}
}

// ConvertDocument turns a purchase order into a vendor bill or a sales order
// into a customer invoice. Cancelled orders cannot be converted. Conversion is
// not idempotent: converting the same order twice mints two payables, both
// pointing back at the order through SourceDocumentId.
func ConvertDocument(ctx context.Context, id int, createdBy *int) (*Document, error) {
	db := config.GetDB()

	var source Document
	if err := db.WithContext(ctx).Preload("Items").First(&source, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, utils.ErrorRecordNotFound
		}
		return nil, err
	}

	target, err := source.Kind.ConversionTarget()
	if err != nil {
		return nil, utils.ErrorInvalidState
	}
	if source.Status == DocumentStatusCancelled {
		return nil, utils.ErrorInvalidState
	}

	tx := db.WithContext(ctx).Begin()
	defer tx.Rollback()

	number, _, err := NextSequenceNumber(ctx, tx, target.NumberPrefix())
	if err != nil {
		return nil, err
	}

	converted := buildConversion(&source, target, number, time.Now(), createdBy)
	if err := tx.Create(converted).Error; err != nil {
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return converted, nil
}

// applyAllocation settles amount against the document in memory. The caller
// holds the row lock and persists the result. Cancelled documents and
// documents that are already fully paid refuse money; anything above the
// outstanding balance is an over-allocation, never silently clamped.
func (result *Document) applyAllocation(amount decimal.Decimal) error {
	if !result.Kind.IsPayable() {
		return utils.ErrorInvalidState
	}
	if result.Status == DocumentStatusCancelled || result.Status == DocumentStatusPaid {
		return utils.ErrorInvalidState
	}
	if !amount.IsPositive() {
		return utils.NewValidationError("amount", "must be greater than zero")
	}
	if amount.GreaterThan(result.BalanceDue) {
		return utils.ErrorOverAllocation
	}

	result.PaidAmount = result.PaidAmount.Add(amount)
	result.BalanceDue = result.GrandTotal.Sub(result.PaidAmount)
	if result.BalanceDue.IsZero() {
		result.Status = DocumentStatusPaid
	}
	return nil
}

// reverseAllocation undoes a settled amount, reopening the document. Used
// when a payment is deleted.
func (result *Document) reverseAllocation(amount decimal.Decimal) {
	result.PaidAmount = result.PaidAmount.Sub(amount)
	if result.PaidAmount.IsNegative() {
		result.PaidAmount = decimal.Zero
	}
	result.BalanceDue = result.GrandTotal.Sub(result.PaidAmount)
	if result.Status == DocumentStatusPaid && result.BalanceDue.IsPositive() {
		result.Status = DocumentStatusPending
	}
}

func GetDocument(ctx context.Context, id int) (*Document, error) {
	return utils.FetchModel[Document](ctx, id, "Items", "Contact")
}

type DocumentFilter struct {
	Kind      *DocumentKind
	Status    *DocumentStatus
	ContactId *int
}

func GetDocuments(ctx context.Context, filter DocumentFilter) ([]*Document, error) {
	db := config.GetDB()
	var results []*Document

	dbCtx := db.WithContext(ctx).Preload("Items").Preload("Contact")
	if filter.Kind != nil && *filter.Kind != "" {
		dbCtx = dbCtx.Where("kind = ?", *filter.Kind)
	}
	if filter.Status != nil && *filter.Status != "" {
		dbCtx = dbCtx.Where("status = ?", *filter.Status)
	}
	if filter.ContactId != nil {
		dbCtx = dbCtx.Where("contact_id = ?", *filter.ContactId)
	}
	if err := dbCtx.Order("date DESC, id DESC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// GetPendingDocuments lists payables of the kind that still carry a balance,
// oldest first. This is the worklist the allocation screen settles against.
func GetPendingDocuments(ctx context.Context, kind DocumentKind, contactId *int) ([]*Document, error) {
	if !kind.IsPayable() {
		return nil, utils.NewValidationError("kind", "must be vendor_bill or customer_invoice")
	}

	db := config.GetDB()
	var results []*Document

	dbCtx := db.WithContext(ctx).Preload("Contact").
		Where("kind = ?", kind).
		Where("status IN ?", []DocumentStatus{DocumentStatusPending, DocumentStatusOverdue}).
		Where("balance_due > 0")
	if contactId != nil {
		dbCtx = dbCtx.Where("contact_id = ?", *contactId)
	}
	if err := dbCtx.Order("due_date, id").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// DocumentSummary is the per-kind dashboard rollup.
type DocumentSummary struct {
	Kind        DocumentKind    `json:"kind"`
	Count       int64           `json:"count"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	TotalPaid   decimal.Decimal `json:"total_paid"`
	TotalDue    decimal.Decimal `json:"total_due"`
}

const summaryCacheKey = "report:transaction-summary"

// GetTransactionSummary serves the dashboard rollup, cached in redis for a
// short window when redis is configured. The database stays the source of
// truth; a stale or missing cache only costs a query.
func GetTransactionSummary(ctx context.Context) ([]*DocumentSummary, error) {
	var cached []*DocumentSummary
	if hit, err := config.GetRedisObject(summaryCacheKey, &cached); err == nil && hit {
		return cached, nil
	}

	db := config.GetDB()
	var results []*DocumentSummary

	err := db.WithContext(ctx).Model(&Document{}).
		Select("kind, COUNT(*) AS count, COALESCE(SUM(grand_total), 0) AS total_amount, " +
			"COALESCE(SUM(paid_amount), 0) AS total_paid, COALESCE(SUM(balance_due), 0) AS total_due").
		Where("status <> ?", DocumentStatusCancelled).
		Group("kind").
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	if err := config.SetRedisObject(summaryCacheKey, results, 30*time.Second); err != nil {
		config.GetLogger().Warn("failed to cache transaction summary: " + err.Error())
	}
	return results, nil
}
