package models

import (
	"context"
	"time"

	"github.com/shivaccounts/books_backend/config"
	"github.com/shivaccounts/books_backend/utils"
	"github.com/shopspring/decimal"
)

type Product struct {
	ID                 int             `gorm:"primary_key" json:"id"`
	Name               string          `gorm:"size:255;not null" json:"name" binding:"required"`
	Type               ProductType     `gorm:"size:20;not null" json:"type" binding:"required"`
	SalesPrice         decimal.Decimal `gorm:"type:decimal(10,2);default:0" json:"sales_price"`
	PurchasePrice      decimal.Decimal `gorm:"type:decimal(10,2);default:0" json:"purchase_price"`
	SaleTaxPercent     decimal.Decimal `gorm:"type:decimal(5,2);default:0" json:"sale_tax_percent"`
	PurchaseTaxPercent decimal.Decimal `gorm:"type:decimal(5,2);default:0" json:"purchase_tax_percent"`
	HsnCode            string          `gorm:"size:20;default:null" json:"hsn_code"`
	Category           string          `gorm:"size:100;default:null" json:"category"`
	Description        string          `gorm:"type:text;default:null" json:"description"`
	IsActive           *bool           `gorm:"not null;default:true" json:"is_active"`
	CreatedAt          time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewProduct struct {
	Name               string          `json:"name" binding:"required"`
	Type               ProductType     `json:"type" binding:"required"`
	SalesPrice         decimal.Decimal `json:"sales_price"`
	PurchasePrice      decimal.Decimal `json:"purchase_price"`
	SaleTaxPercent     decimal.Decimal `json:"sale_tax_percent"`
	PurchaseTaxPercent decimal.Decimal `json:"purchase_tax_percent"`
	HsnCode            string          `json:"hsn_code"`
	Category           string          `json:"category"`
	Description        string          `json:"description"`
}

func (input *NewProduct) validate(ctx context.Context, id int) error {
	if !input.Type.Valid() {
		return utils.NewValidationError("type", "must be goods or service")
	}
	if input.SalesPrice.IsNegative() || input.PurchasePrice.IsNegative() {
		return utils.NewValidationError("price", "cannot be negative")
	}
	for field, percent := range map[string]decimal.Decimal{
		"sale_tax_percent":     input.SaleTaxPercent,
		"purchase_tax_percent": input.PurchaseTaxPercent,
	} {
		if percent.IsNegative() || percent.GreaterThan(decimal.NewFromInt(100)) {
			return utils.NewValidationError(field, "must be between 0 and 100")
		}
	}
	if err := utils.ValidateUnique[Product](ctx, "name", input.Name, id); err != nil {
		return utils.NewValidationError("name", "already exists")
	}
	return nil
}

func CreateProduct(ctx context.Context, input *NewProduct) (*Product, error) {
	if err := input.validate(ctx, 0); err != nil {
		return nil, err
	}

	active := true
	product := Product{
		Name:               input.Name,
		Type:               input.Type,
		SalesPrice:         input.SalesPrice,
		PurchasePrice:      input.PurchasePrice,
		SaleTaxPercent:     input.SaleTaxPercent,
		PurchaseTaxPercent: input.PurchaseTaxPercent,
		HsnCode:            input.HsnCode,
		Category:           input.Category,
		Description:        input.Description,
		IsActive:           &active,
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func UpdateProduct(ctx context.Context, id int, input *NewProduct) (*Product, error) {
	if err := input.validate(ctx, id); err != nil {
		return nil, err
	}

	product, err := utils.FetchModel[Product](ctx, id)
	if err != nil {
		return nil, err
	}

	product.Name = input.Name
	product.Type = input.Type
	product.SalesPrice = input.SalesPrice
	product.PurchasePrice = input.PurchasePrice
	product.SaleTaxPercent = input.SaleTaxPercent
	product.PurchaseTaxPercent = input.PurchaseTaxPercent
	product.HsnCode = input.HsnCode
	product.Category = input.Category
	product.Description = input.Description

	db := config.GetDB()
	if err := db.WithContext(ctx).Save(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

func DeactivateProduct(ctx context.Context, id int) (*Product, error) {
	product, err := utils.FetchModel[Product](ctx, id)
	if err != nil {
		return nil, err
	}

	inactive := false
	product.IsActive = &inactive
	db := config.GetDB()
	if err := db.WithContext(ctx).Save(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

func GetProduct(ctx context.Context, id int) (*Product, error) {
	return utils.FetchModel[Product](ctx, id)
}

func GetProducts(ctx context.Context, name *string, category *string) ([]*Product, error) {
	db := config.GetDB()
	var results []*Product

	dbCtx := db.WithContext(ctx).Where("is_active = ?", true)
	if name != nil && len(*name) > 0 {
		dbCtx = dbCtx.Where("name LIKE ?", "%"+*name+"%")
	}
	if category != nil && len(*category) > 0 {
		dbCtx = dbCtx.Where("category = ?", *category)
	}
	if err := dbCtx.Order("name").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
