package models

import (
	"context"
	"time"

	"github.com/shivaccounts/books_backend/config"
	"github.com/shivaccounts/books_backend/utils"
	"github.com/shopspring/decimal"
)

// Tax master. Products carry their own tax percent per side; this table is
// the catalogue invoicing staff pick those percents from.
type Tax struct {
	ID          int             `gorm:"primary_key" json:"id"`
	Name        string          `gorm:"size:100;not null" json:"name" binding:"required"`
	Computation TaxComputation  `gorm:"size:20;not null;default:percentage" json:"computation"`
	Rate        decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"rate"`
	AppliesOn   string          `gorm:"size:20;default:both" json:"applies_on"`
	IsActive    *bool           `gorm:"not null;default:true" json:"is_active"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewTax struct {
	Name        string          `json:"name" binding:"required"`
	Computation TaxComputation  `json:"computation"`
	Rate        decimal.Decimal `json:"rate"`
	AppliesOn   string          `json:"applies_on"`
}

func (input *NewTax) validate(ctx context.Context, id int) error {
	if input.Computation == "" {
		input.Computation = TaxComputationPercentage
	}
	if !input.Computation.Valid() {
		return utils.NewValidationError("computation", "must be percentage or fixed")
	}
	if input.Rate.IsNegative() {
		return utils.NewValidationError("rate", "cannot be negative")
	}
	if input.Computation == TaxComputationPercentage && input.Rate.GreaterThan(decimal.NewFromInt(100)) {
		return utils.NewValidationError("rate", "must be between 0 and 100")
	}
	if err := utils.ValidateUnique[Tax](ctx, "name", input.Name, id); err != nil {
		return utils.NewValidationError("name", "already exists")
	}
	return nil
}

func CreateTax(ctx context.Context, input *NewTax) (*Tax, error) {
	if err := input.validate(ctx, 0); err != nil {
		return nil, err
	}

	active := true
	tax := Tax{
		Name:        input.Name,
		Computation: input.Computation,
		Rate:        input.Rate,
		AppliesOn:   input.AppliesOn,
		IsActive:    &active,
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&tax).Error; err != nil {
		return nil, err
	}
	return &tax, nil
}

func UpdateTax(ctx context.Context, id int, input *NewTax) (*Tax, error) {
	if err := input.validate(ctx, id); err != nil {
		return nil, err
	}

	tax, err := utils.FetchModel[Tax](ctx, id)
	if err != nil {
		return nil, err
	}

	tax.Name = input.Name
	tax.Computation = input.Computation
	tax.Rate = input.Rate
	tax.AppliesOn = input.AppliesOn

	db := config.GetDB()
	if err := db.WithContext(ctx).Save(tax).Error; err != nil {
		return nil, err
	}
	return tax, nil
}

func DeactivateTax(ctx context.Context, id int) (*Tax, error) {
	tax, err := utils.FetchModel[Tax](ctx, id)
	if err != nil {
		return nil, err
	}

	inactive := false
	tax.IsActive = &inactive
	db := config.GetDB()
	if err := db.WithContext(ctx).Save(tax).Error; err != nil {
		return nil, err
	}
	return tax, nil
}

func GetTax(ctx context.Context, id int) (*Tax, error) {
	return utils.FetchModel[Tax](ctx, id)
}

func GetTaxes(ctx context.Context, name *string) ([]*Tax, error) {
	db := config.GetDB()
	var results []*Tax

	dbCtx := db.WithContext(ctx).Where("is_active = ?", true)
	if name != nil && len(*name) > 0 {
		dbCtx = dbCtx.Where("name LIKE ?", "%"+*name+"%")
	}
	if err := dbCtx.Order("name").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
