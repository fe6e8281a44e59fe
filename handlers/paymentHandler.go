package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shivaccounts/books_backend/models"
)

func RecordPaymentHandler(c *gin.Context) {
	var input models.NewPayment
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	payment, err := models.RecordPayment(c.Request.Context(), &input, currentUserId(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, payment)
}

func AllocatePaymentHandler(c *gin.Context) {
	id, ok := parseIdParam(c)
	if !ok {
		return
	}
	var req struct {
		Allocations []models.NewPaymentAllocation `json:"allocations" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	payment, err := models.AllocatePayment(c.Request.Context(), id, req.Allocations)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, payment)
}

func QuickAllocateHandler(c *gin.Context) {
	var input models.QuickAllocationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	payment, err := models.QuickAllocatePayment(c.Request.Context(), &input, currentUserId(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, payment)
}

func DeletePaymentHandler(c *gin.Context) {
	id, ok := parseIdParam(c)
	if !ok {
		return
	}
	if err := models.DeletePayment(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

func GetPaymentHandler(c *gin.Context) {
	id, ok := parseIdParam(c)
	if !ok {
		return
	}
	payment, err := models.GetPayment(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, payment)
}

func GetPaymentsHandler(c *gin.Context) {
	var filter models.PaymentFilter
	if t := c.Query("type"); t != "" {
		paymentType := models.PaymentType(t)
		filter.Type = &paymentType
	}
	if contactId, ok := queryInt(c, "contact_id"); ok {
		filter.ContactId = &contactId
	}
	if m := c.Query("method"); m != "" {
		method := models.PaymentMethod(m)
		filter.Method = &method
	}
	payments, err := models.GetPayments(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, payments)
}
