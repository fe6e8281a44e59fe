package handlers

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shivaccounts/books_backend/models"
)

// Enum validations for binding tags, so malformed enum values fail at bind
// time with a field-level message instead of deeper in the models.
func init() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterValidation("paymentmethod", func(fl validator.FieldLevel) bool {
		return models.PaymentMethod(fl.Field().String()).Valid()
	})
	v.RegisterValidation("paymenttype", func(fl validator.FieldLevel) bool {
		return models.PaymentType(fl.Field().String()).Valid()
	})
	v.RegisterValidation("documentstatus", func(fl validator.FieldLevel) bool {
		switch models.DocumentStatus(fl.Field().String()) {
		case models.DocumentStatusDraft, models.DocumentStatusSent, models.DocumentStatusReceived,
			models.DocumentStatusConfirmed, models.DocumentStatusDelivered, models.DocumentStatusPending,
			models.DocumentStatusPaid, models.DocumentStatusOverdue, models.DocumentStatusCancelled:
			return true
		}
		return false
	})
}
