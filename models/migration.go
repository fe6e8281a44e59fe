package models

import "github.com/shivaccounts/books_backend/config"

func MigrateDatabase() error {
	db := config.GetDB()
	return db.AutoMigrate(
		&User{},
		&Contact{},
		&Product{},
		&Tax{},
		&ChartOfAccount{},
		&NumberSequence{},
		&Document{},
		&DocumentItem{},
		&Payment{},
		&PaymentAllocation{},
	)
}
