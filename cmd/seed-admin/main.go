// seed-admin creates or resets the admin user and, with SEED_DEMO_DATA=true,
// loads a small demo master data set.
//
// Usage:
//
//	DB_USER=... DB_PASSWORD=... DB_HOST=... DB_PORT=... DB_NAME=... go run ./cmd/seed-admin
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/shivaccounts/books_backend/config"
	"github.com/shivaccounts/books_backend/models"
	"github.com/shivaccounts/books_backend/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	adminUsername = "admin"
	adminName     = "System Admin"
)

func main() {
	ctx := context.Background()
	config.ConnectDatabaseWithRetry()
	db := config.GetDB()
	if db == nil {
		fmt.Fprintln(os.Stderr, "database not initialized (config.GetDB returned nil). Set DB_* env vars.")
		os.Exit(1)
	}

	if err := models.MigrateDatabase(); err != nil {
		fmt.Fprintf(os.Stderr, "migration failed: %v\n", err)
		os.Exit(1)
	}

	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		fmt.Fprintln(os.Stderr, "ADMIN_PASSWORD is required")
		os.Exit(1)
	}

	hashed, err := utils.HashPassword(adminPassword)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to hash password: %v\n", err)
		os.Exit(1)
	}

	var existing models.User
	err = db.WithContext(ctx).Where("username = ?", adminUsername).First(&existing).Error
	switch {
	case err == gorm.ErrRecordNotFound:
		active := true
		user := models.User{
			Username: adminUsername,
			Name:     adminName,
			Password: string(hashed),
			Role:     models.UserRoleAdmin,
			IsActive: &active,
		}
		if err := db.WithContext(ctx).Create(&user).Error; err != nil {
			fmt.Fprintf(os.Stderr, "failed to create admin user: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("created admin user:", adminUsername)
	case err != nil:
		fmt.Fprintf(os.Stderr, "failed to lookup user: %v\n", err)
		os.Exit(1)
	default:
		existing.Password = string(hashed)
		existing.Role = models.UserRoleAdmin
		if err := db.WithContext(ctx).Save(&existing).Error; err != nil {
			fmt.Fprintf(os.Stderr, "failed to update admin user: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("reset admin user:", adminUsername)
	}

	if strings.EqualFold(os.Getenv("SEED_DEMO_DATA"), "true") {
		if err := seedDemoData(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "failed to seed demo data: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("seeded demo master data")
	}
}

func seedDemoData(ctx context.Context) error {
	contacts := []models.NewContact{
		{Name: "Acme Traders", Type: models.ContactTypeVendor, City: "Mumbai"},
		{Name: "Bright Retail", Type: models.ContactTypeCustomer, City: "Pune"},
		{Name: "Crescent Supplies", Type: models.ContactTypeBoth, City: "Delhi"},
	}
	for _, c := range contacts {
		if _, err := models.CreateContact(ctx, &c); err != nil && !utils.IsValidationError(err) {
			return err
		}
	}

	products := []models.NewProduct{
		{
			Name:               "Office Chair",
			Type:               models.ProductTypeGoods,
			SalesPrice:         decimal.NewFromInt(4500),
			PurchasePrice:      decimal.NewFromInt(3200),
			SaleTaxPercent:     decimal.NewFromInt(18),
			PurchaseTaxPercent: decimal.NewFromInt(18),
			Category:           "Furniture",
		},
		{
			Name:           "Annual Maintenance",
			Type:           models.ProductTypeService,
			SalesPrice:     decimal.NewFromInt(12000),
			SaleTaxPercent: decimal.NewFromInt(18),
			Category:       "Services",
		},
	}
	for _, p := range products {
		if _, err := models.CreateProduct(ctx, &p); err != nil && !utils.IsValidationError(err) {
			return err
		}
	}

	taxes := []models.NewTax{
		{Name: "GST 5%", Rate: decimal.NewFromInt(5)},
		{Name: "GST 18%", Rate: decimal.NewFromInt(18)},
	}
	for _, t := range taxes {
		if _, err := models.CreateTax(ctx, &t); err != nil && !utils.IsValidationError(err) {
			return err
		}
	}

	accounts := []models.NewChartOfAccount{
		{Name: "Cash", Type: models.AccountTypeAsset, Code: "1001"},
		{Name: "Accounts Receivable", Type: models.AccountTypeAsset, Code: "1200"},
		{Name: "Accounts Payable", Type: models.AccountTypeLiability, Code: "2100"},
		{Name: "Sales Income", Type: models.AccountTypeIncome, Code: "4000"},
		{Name: "Purchases", Type: models.AccountTypeExpense, Code: "5000"},
	}
	for _, a := range accounts {
		if _, err := models.CreateChartOfAccount(ctx, &a); err != nil && !utils.IsValidationError(err) {
			return err
		}
	}
	return nil
}
