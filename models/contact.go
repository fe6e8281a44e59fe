package models

import (
	"context"
	"errors"
	"time"

	"github.com/shivaccounts/books_backend/config"
	"github.com/shivaccounts/books_backend/utils"
)

// Contact is the counterparty master: customers, vendors, or both. Financial
// documents reference contacts and never cascade into them; contacts are
// soft-deactivated, never hard-deleted.
type Contact struct {
	ID        int         `gorm:"primary_key" json:"id"`
	Name      string      `gorm:"size:255;not null" json:"name" binding:"required"`
	Type      ContactType `gorm:"size:20;not null" json:"type" binding:"required"`
	Email     string      `gorm:"size:100;default:null" json:"email"`
	Mobile    string      `gorm:"size:15;default:null" json:"mobile"`
	Address   string      `gorm:"type:text;default:null" json:"address"`
	City      string      `gorm:"size:100;default:null" json:"city"`
	State     string      `gorm:"size:100;default:null" json:"state"`
	Pincode   string      `gorm:"size:10;default:null" json:"pincode"`
	UserId    *int        `gorm:"default:null" json:"user_id"`
	IsActive  *bool       `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time   `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewContact struct {
	Name    string      `json:"name" binding:"required"`
	Type    ContactType `json:"type" binding:"required"`
	Email   string      `json:"email"`
	Mobile  string      `json:"mobile"`
	Address string      `json:"address"`
	City    string      `json:"city"`
	State   string      `json:"state"`
	Pincode string      `json:"pincode"`
	UserId  *int        `json:"user_id"`
}

func (input *NewContact) validate(ctx context.Context, id int) error {
	if !input.Type.Valid() {
		return utils.NewValidationError("type", "must be customer, vendor or both")
	}
	if input.Name == "" {
		return utils.NewValidationError("name", "is required")
	}
	if err := utils.ValidateUnique[Contact](ctx, "name", input.Name, id); err != nil {
		return utils.NewValidationError("name", "already exists")
	}
	return nil
}

func CreateContact(ctx context.Context, input *NewContact) (*Contact, error) {
	if err := input.validate(ctx, 0); err != nil {
		return nil, err
	}

	active := true
	contact := Contact{
		Name:     input.Name,
		Type:     input.Type,
		Email:    input.Email,
		Mobile:   input.Mobile,
		Address:  input.Address,
		City:     input.City,
		State:    input.State,
		Pincode:  input.Pincode,
		UserId:   input.UserId,
		IsActive: &active,
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&contact).Error; err != nil {
		return nil, err
	}
	return &contact, nil
}

func UpdateContact(ctx context.Context, id int, input *NewContact) (*Contact, error) {
	if err := input.validate(ctx, id); err != nil {
		return nil, err
	}

	contact, err := utils.FetchModel[Contact](ctx, id)
	if err != nil {
		return nil, err
	}

	contact.Name = input.Name
	contact.Type = input.Type
	contact.Email = input.Email
	contact.Mobile = input.Mobile
	contact.Address = input.Address
	contact.City = input.City
	contact.State = input.State
	contact.Pincode = input.Pincode
	contact.UserId = input.UserId

	db := config.GetDB()
	if err := db.WithContext(ctx).Save(contact).Error; err != nil {
		return nil, err
	}
	return contact, nil
}

// DeactivateContact soft-deletes. Documents keep their reference.
func DeactivateContact(ctx context.Context, id int) (*Contact, error) {
	contact, err := utils.FetchModel[Contact](ctx, id)
	if err != nil {
		return nil, err
	}

	inactive := false
	contact.IsActive = &inactive
	db := config.GetDB()
	if err := db.WithContext(ctx).Save(contact).Error; err != nil {
		return nil, err
	}
	return contact, nil
}

func GetContact(ctx context.Context, id int) (*Contact, error) {
	return utils.FetchModel[Contact](ctx, id)
}

func GetContacts(ctx context.Context, contactType *ContactType, name *string) ([]*Contact, error) {
	db := config.GetDB()
	var results []*Contact

	dbCtx := db.WithContext(ctx).Where("is_active = ?", true)
	if contactType != nil && *contactType != "" {
		if !contactType.Valid() {
			return nil, errors.New("invalid contact type")
		}
		if *contactType == ContactTypeBoth {
			dbCtx = dbCtx.Where("type = ?", ContactTypeBoth)
		} else {
			dbCtx = dbCtx.Where("type IN ?", []ContactType{*contactType, ContactTypeBoth})
		}
	}
	if name != nil && len(*name) > 0 {
		dbCtx = dbCtx.Where("name LIKE ?", "%"+*name+"%")
	}
	if err := dbCtx.Order("name").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// validateContactForKind checks the counterparty exists, is active and sits on
// the right side of the ledger for the document kind.
func validateContactForKind(ctx context.Context, contactId int, kind DocumentKind) (*Contact, error) {
	contact, err := utils.FetchModel[Contact](ctx, contactId)
	if err != nil {
		return nil, err
	}
	if contact.IsActive == nil || !*contact.IsActive {
		return nil, utils.ErrorRecordNotFound
	}

	switch kind {
	case DocumentKindPurchaseOrder, DocumentKindVendorBill:
		if !contact.Type.CanActAsVendor() {
			return nil, utils.NewValidationError("contact_id", "contact is not a vendor")
		}
	case DocumentKindSalesOrder, DocumentKindCustomerInvoice:
		if !contact.Type.CanActAsCustomer() {
			return nil, utils.NewValidationError("contact_id", "contact is not a customer")
		}
	}
	return contact, nil
}
