package models

import (
	"context"
	"time"

	"github.com/shivaccounts/books_backend/config"
	"github.com/shivaccounts/books_backend/utils"
)

// ChartOfAccount groups report lines. Archived accounts stay referenced by
// history and are hidden from pickers, never deleted.
type ChartOfAccount struct {
	ID        int         `gorm:"primary_key" json:"id"`
	Name      string      `gorm:"size:255;not null" json:"name" binding:"required"`
	Type      AccountType `gorm:"size:20;not null" json:"type" binding:"required"`
	Code      string      `gorm:"size:20;default:null" json:"code"`
	IsActive  *bool       `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time   `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewChartOfAccount struct {
	Name string      `json:"name" binding:"required"`
	Type AccountType `json:"type" binding:"required"`
	Code string      `json:"code"`
}

func (input *NewChartOfAccount) validate(ctx context.Context, id int) error {
	if !input.Type.Valid() {
		return utils.NewValidationError("type", "must be asset, liability, equity, income or expense")
	}
	if err := utils.ValidateUnique[ChartOfAccount](ctx, "name", input.Name, id); err != nil {
		return utils.NewValidationError("name", "already exists")
	}
	return nil
}

func CreateChartOfAccount(ctx context.Context, input *NewChartOfAccount) (*ChartOfAccount, error) {
	if err := input.validate(ctx, 0); err != nil {
		return nil, err
	}

	active := true
	account := ChartOfAccount{
		Name:     input.Name,
		Type:     input.Type,
		Code:     input.Code,
		IsActive: &active,
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&account).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

func UpdateChartOfAccount(ctx context.Context, id int, input *NewChartOfAccount) (*ChartOfAccount, error) {
	if err := input.validate(ctx, id); err != nil {
		return nil, err
	}

	account, err := utils.FetchModel[ChartOfAccount](ctx, id)
	if err != nil {
		return nil, err
	}

	account.Name = input.Name
	account.Type = input.Type
	account.Code = input.Code

	db := config.GetDB()
	if err := db.WithContext(ctx).Save(account).Error; err != nil {
		return nil, err
	}
	return account, nil
}

func ArchiveChartOfAccount(ctx context.Context, id int) (*ChartOfAccount, error) {
	account, err := utils.FetchModel[ChartOfAccount](ctx, id)
	if err != nil {
		return nil, err
	}

	inactive := false
	account.IsActive = &inactive
	db := config.GetDB()
	if err := db.WithContext(ctx).Save(account).Error; err != nil {
		return nil, err
	}
	return account, nil
}

func GetChartOfAccount(ctx context.Context, id int) (*ChartOfAccount, error) {
	return utils.FetchModel[ChartOfAccount](ctx, id)
}

func GetChartOfAccounts(ctx context.Context, accountType *AccountType) ([]*ChartOfAccount, error) {
	db := config.GetDB()
	var results []*ChartOfAccount

	dbCtx := db.WithContext(ctx).Where("is_active = ?", true)
	if accountType != nil && *accountType != "" {
		dbCtx = dbCtx.Where("type = ?", *accountType)
	}
	if err := dbCtx.Order("type, name").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
