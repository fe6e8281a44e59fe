package models

import (
	"context"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	"github.com/shivaccounts/books_backend/config"
	"github.com/shivaccounts/books_backend/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Payment is money received from a customer or sent to a vendor. The amount
// is settled against bills or invoices through allocations; whatever is not
// yet settled stays in UnallocatedAmount as credit on the contact.
type Payment struct {
	ID                int                 `gorm:"primary_key" json:"id"`
	PaymentNumber     string              `gorm:"size:30;not null;uniqueIndex" json:"payment_number"`
	Type              PaymentType         `gorm:"size:20;not null;index" json:"type"`
	ContactId         int                 `gorm:"not null;index" json:"contact_id"`
	Contact           *Contact            `gorm:"foreignKey:ContactId" json:"contact,omitempty"`
	Date              time.Time           `gorm:"type:date;not null" json:"date"`
	Amount            decimal.Decimal     `gorm:"type:decimal(12,2);not null" json:"amount"`
	UnallocatedAmount decimal.Decimal     `gorm:"type:decimal(12,2);not null;default:0" json:"unallocated_amount"`
	Method            PaymentMethod       `gorm:"size:20;not null" json:"method"`
	Reference         string              `gorm:"size:100;default:null" json:"reference"`
	Notes             string              `gorm:"type:text;default:null" json:"notes"`
	CreatedBy         *int                `gorm:"default:null" json:"created_by"`
	Allocations       []PaymentAllocation `gorm:"foreignKey:PaymentId" json:"allocations"`
	CreatedAt         time.Time           `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time           `gorm:"autoUpdateTime" json:"updated_at"`
}

// PaymentAllocation records one settlement of a payment against a payable
// document. The sum of a document's allocations equals its paid_amount.
type PaymentAllocation struct {
	ID         int             `gorm:"primary_key" json:"id"`
	PaymentId  int             `gorm:"not null;index" json:"payment_id"`
	DocumentId int             `gorm:"not null;index" json:"document_id"`
	Document   *Document       `gorm:"foreignKey:DocumentId" json:"document,omitempty"`
	Amount     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	CreatedAt  time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

type NewPayment struct {
	Type        PaymentType            `json:"type" binding:"required,paymenttype"`
	ContactId   int                    `json:"contact_id" binding:"required"`
	Date        time.Time              `json:"date"`
	Amount      decimal.Decimal        `json:"amount" binding:"required"`
	Method      PaymentMethod          `json:"method" binding:"required,paymentmethod"`
	Reference   string                 `json:"reference"`
	Notes       string                 `json:"notes"`
	Allocations []NewPaymentAllocation `json:"allocations"`
}

type NewPaymentAllocation struct {
	DocumentId int             `json:"document_id" binding:"required"`
	Amount     decimal.Decimal `json:"amount" binding:"required"`
}

func (input *NewPayment) validate(ctx context.Context) error {
	if !input.Type.Valid() {
		return utils.NewValidationError("type", "must be customer_payment or vendor_payment")
	}
	if !input.Method.Valid() {
		return utils.NewValidationError("method", "must be cash, bank, cheque or online")
	}
	if !input.Amount.IsPositive() {
		return utils.NewValidationError("amount", "must be greater than zero")
	}

	contact, err := utils.FetchModel[Contact](ctx, input.ContactId)
	if err != nil {
		return err
	}
	if input.Type == PaymentTypeCustomer && !contact.Type.CanActAsCustomer() {
		return utils.NewValidationError("contact_id", "contact is not a customer")
	}
	if input.Type == PaymentTypeVendor && !contact.Type.CanActAsVendor() {
		return utils.NewValidationError("contact_id", "contact is not a vendor")
	}

	var allocated decimal.Decimal
	for i, a := range input.Allocations {
		if !a.Amount.IsPositive() {
			return utils.NewValidationError(
				fmt.Sprintf("allocations[%d].amount", i), "must be greater than zero")
		}
		allocated = allocated.Add(a.Amount)
	}
	if allocated.GreaterThan(input.Amount) {
		return utils.NewValidationError("allocations", "cannot exceed the payment amount")
	}
	return nil
}

// acquirePaymentLock takes a best-effort cross-instance lock around a
// document's allocation path. The row lock inside the transaction is what
// actually guarantees correctness; this only narrows the window in which two
// instances pile up on the same row.
func acquirePaymentLock(ctx context.Context, documentId int) *redislock.Lock {
	locker := config.GetRedisLock()
	if locker == nil {
		return nil
	}
	lock, err := locker.Obtain(ctx, fmt.Sprintf("allocation:document:%d", documentId), 10*time.Second, nil)
	if err != nil {
		return nil
	}
	return lock
}

func releasePaymentLock(ctx context.Context, lock *redislock.Lock) {
	if lock != nil {
		_ = lock.Release(ctx)
	}
}

// allocateWithinTx settles amount against one document under its row lock.
// The document must match the payment's side (customer payments settle
// invoices, vendor payments settle bills) and belong to the same contact.
func allocateWithinTx(ctx context.Context, tx *gorm.DB, payment *Payment, documentId int, amount decimal.Decimal) (*PaymentAllocation, error) {
	var document Document
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&document, documentId).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, utils.ErrorRecordNotFound
		}
		return nil, err
	}

	if document.Kind != payment.Type.TargetKind() {
		return nil, utils.NewValidationError("document_id", "document kind does not match the payment type")
	}
	if document.ContactId != payment.ContactId {
		return nil, utils.NewValidationError("document_id", "document belongs to a different contact")
	}
	if amount.GreaterThan(payment.UnallocatedAmount) {
		return nil, utils.NewValidationError("amount", "exceeds the payment's unallocated amount")
	}

	if err := document.applyAllocation(amount); err != nil {
		return nil, err
	}
	if err := tx.Save(&document).Error; err != nil {
		return nil, err
	}

	allocation := PaymentAllocation{
		PaymentId:  payment.ID,
		DocumentId: document.ID,
		Amount:     amount,
	}
	if err := tx.Create(&allocation).Error; err != nil {
		return nil, err
	}

	payment.UnallocatedAmount = payment.UnallocatedAmount.Sub(amount)
	allocation.Document = &document
	return &allocation, nil
}

// RecordPayment registers a payment and settles any allocations given with
// it, all inside one transaction. The payment number, the payment row, the
// allocation rows and the document balance updates commit or roll back
// together.
func RecordPayment(ctx context.Context, input *NewPayment, createdBy *int) (*Payment, error) {
	if err := input.validate(ctx); err != nil {
		return nil, err
	}

	date := input.Date
	if date.IsZero() {
		date = time.Now()
	}

	payment := Payment{
		Type:              input.Type,
		ContactId:         input.ContactId,
		Date:              date,
		Amount:            input.Amount,
		UnallocatedAmount: input.Amount,
		Method:            input.Method,
		Reference:         input.Reference,
		Notes:             input.Notes,
		CreatedBy:         createdBy,
	}

	db := config.GetDB()
	tx := db.WithContext(ctx).Begin()
	defer tx.Rollback()

	number, _, err := NextSequenceNumber(ctx, tx, "PAY")
	if err != nil {
		return nil, err
	}
	payment.PaymentNumber = number

	if err := tx.Create(&payment).Error; err != nil {
		return nil, err
	}

	for _, a := range input.Allocations {
		allocation, err := allocateWithinTx(ctx, tx, &payment, a.DocumentId, a.Amount)
		if err != nil {
			return nil, err
		}
		payment.Allocations = append(payment.Allocations, *allocation)
	}

	if err := tx.Model(&Payment{}).Where("id = ?", payment.ID).
		Update("unallocated_amount", payment.UnallocatedAmount).Error; err != nil {
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

// AllocatePayment settles an existing payment's unallocated remainder against
// more documents.
func AllocatePayment(ctx context.Context, paymentId int, inputs []NewPaymentAllocation) (*Payment, error) {
	if len(inputs) == 0 {
		return nil, utils.NewValidationError("allocations", "at least one allocation is required")
	}
	for i, a := range inputs {
		if !a.Amount.IsPositive() {
			return nil, utils.NewValidationError(
				fmt.Sprintf("allocations[%d].amount", i), "must be greater than zero")
		}
	}

	for _, a := range inputs {
		lock := acquirePaymentLock(ctx, a.DocumentId)
		defer releasePaymentLock(ctx, lock)
	}

	db := config.GetDB()
	tx := db.WithContext(ctx).Begin()
	defer tx.Rollback()

	var payment Payment
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&payment, paymentId).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, utils.ErrorRecordNotFound
		}
		return nil, err
	}

	for _, a := range inputs {
		if _, err := allocateWithinTx(ctx, tx, &payment, a.DocumentId, a.Amount); err != nil {
			return nil, err
		}
	}

	if err := tx.Model(&payment).
		Update("unallocated_amount", payment.UnallocatedAmount).Error; err != nil {
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return GetPayment(ctx, payment.ID)
}

type QuickAllocationInput struct {
	TargetType DocumentKind    `json:"target_type"`
	DocumentId int             `json:"target_id" binding:"required"`
	Amount     decimal.Decimal `json:"amount" binding:"required"`
	Method     PaymentMethod   `json:"payment_method" binding:"required,paymentmethod"`
	Reference  string          `json:"reference"`
}

// QuickAllocatePayment is the one-shot settle: it records a payment for
// exactly the given amount and allocates all of it against one document. The
// payment type and contact are derived from the target document, so the
// caller only names what to pay and how.
func QuickAllocatePayment(ctx context.Context, input *QuickAllocationInput, createdBy *int) (*Payment, error) {
	if !input.Method.Valid() {
		return nil, utils.NewValidationError("payment_method", "must be cash, bank, cheque or online")
	}
	if !input.Amount.IsPositive() {
		return nil, utils.NewValidationError("amount", "must be greater than zero")
	}

	db := config.GetDB()
	var target Document
	if err := db.WithContext(ctx).First(&target, input.DocumentId).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, utils.ErrorRecordNotFound
		}
		return nil, err
	}
	if input.TargetType != "" && input.TargetType != target.Kind {
		return nil, utils.NewValidationError("target_type", "does not match the target document")
	}
	paymentType, err := PaymentTypeForKind(target.Kind)
	if err != nil {
		return nil, utils.ErrorInvalidState
	}

	lock := acquirePaymentLock(ctx, input.DocumentId)
	defer releasePaymentLock(ctx, lock)

	payment := Payment{
		Type:              paymentType,
		ContactId:         target.ContactId,
		Date:              time.Now(),
		Amount:            input.Amount,
		UnallocatedAmount: input.Amount,
		Method:            input.Method,
		Reference:         input.Reference,
		CreatedBy:         createdBy,
	}

	tx := db.WithContext(ctx).Begin()
	defer tx.Rollback()

	number, _, err := NextSequenceNumber(ctx, tx, "PAY")
	if err != nil {
		return nil, err
	}
	payment.PaymentNumber = number

	if err := tx.Create(&payment).Error; err != nil {
		return nil, err
	}

	allocation, err := allocateWithinTx(ctx, tx, &payment, input.DocumentId, input.Amount)
	if err != nil {
		return nil, err
	}
	payment.Allocations = append(payment.Allocations, *allocation)

	if err := tx.Model(&Payment{}).Where("id = ?", payment.ID).
		Update("unallocated_amount", payment.UnallocatedAmount).Error; err != nil {
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

// DeletePayment removes a payment and reverses every allocation it made:
// each settled document gets its paid amount reduced and, if it was fully
// paid, reopens as pending.
func DeletePayment(ctx context.Context, id int) error {
	db := config.GetDB()
	tx := db.WithContext(ctx).Begin()
	defer tx.Rollback()

	var payment Payment
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("Allocations").
		First(&payment, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return utils.ErrorRecordNotFound
		}
		return err
	}

	for _, allocation := range payment.Allocations {
		var document Document
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&document, allocation.DocumentId).Error
		if err != nil {
			return err
		}
		document.reverseAllocation(allocation.Amount)
		if err := tx.Save(&document).Error; err != nil {
			return err
		}
	}

	if err := tx.Where("payment_id = ?", payment.ID).
		Delete(&PaymentAllocation{}).Error; err != nil {
		return err
	}
	if err := tx.Delete(&payment).Error; err != nil {
		return err
	}
	return tx.Commit().Error
}

func GetPayment(ctx context.Context, id int) (*Payment, error) {
	return utils.FetchModel[Payment](ctx, id, "Allocations", "Allocations.Document", "Contact")
}

type PaymentFilter struct {
	Type      *PaymentType
	ContactId *int
	Method    *PaymentMethod
}

func GetPayments(ctx context.Context, filter PaymentFilter) ([]*Payment, error) {
	db := config.GetDB()
	var results []*Payment

	dbCtx := db.WithContext(ctx).Preload("Allocations").Preload("Contact")
	if filter.Type != nil && *filter.Type != "" {
		dbCtx = dbCtx.Where("type = ?", *filter.Type)
	}
	if filter.ContactId != nil {
		dbCtx = dbCtx.Where("contact_id = ?", *filter.ContactId)
	}
	if filter.Method != nil && *filter.Method != "" {
		dbCtx = dbCtx.Where("method = ?", *filter.Method)
	}
	if err := dbCtx.Order("date DESC, id DESC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
