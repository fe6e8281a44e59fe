package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shivaccounts/books_backend/models"
	"github.com/shivaccounts/books_backend/utils"
)

// documentCreateRequest is NewDocument without the kind; the route decides
// the kind so a caller cannot create a bill through the purchase-order URL.
type documentCreateRequest struct {
	ContactId int                      `json:"contact_id" binding:"required"`
	Date      time.Time                `json:"date"`
	DueDate   *time.Time               `json:"due_date"`
	Notes     string                   `json:"notes"`
	Items     []models.NewDocumentItem `json:"items" binding:"required"`
}

type statusUpdateRequest struct {
	Status models.DocumentStatus `json:"status" binding:"required,documentstatus"`
}

func CreateDocumentHandler(kind models.DocumentKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req documentCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		input := models.NewDocument{
			Kind:      kind,
			ContactId: req.ContactId,
			Date:      req.Date,
			DueDate:   req.DueDate,
			Notes:     req.Notes,
			Items:     req.Items,
		}
		document, err := models.CreateDocument(c.Request.Context(), &input, currentUserId(c))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, document)
	}
}

func UpdateDocumentItemsHandler(kind models.DocumentKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIdParam(c)
		if !ok {
			return
		}
		var req struct {
			Items []models.NewDocumentItem `json:"items" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		document, err := fetchDocumentOfKind(c, id, kind)
		if err != nil {
			respondError(c, err)
			return
		}
		updated, err := models.ReplaceDocumentItems(c.Request.Context(), document.ID, req.Items)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}

func UpdateDocumentStatusHandler(kind models.DocumentKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIdParam(c)
		if !ok {
			return
		}
		var req statusUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		document, err := fetchDocumentOfKind(c, id, kind)
		if err != nil {
			respondError(c, err)
			return
		}
		updated, err := models.UpdateDocumentStatus(c.Request.Context(), document.ID, req.Status)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}

func GetDocumentHandler(kind models.DocumentKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIdParam(c)
		if !ok {
			return
		}
		document, err := fetchDocumentOfKind(c, id, kind)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, document)
	}
}

func GetDocumentsHandler(kind models.DocumentKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := models.DocumentFilter{Kind: &kind}
		if s := c.Query("status"); s != "" {
			status := models.DocumentStatus(s)
			filter.Status = &status
		}
		if contactId, ok := queryInt(c, "contact_id"); ok {
			filter.ContactId = &contactId
		}
		documents, err := models.GetDocuments(c.Request.Context(), filter)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, documents)
	}
}

// ConvertDocumentHandler turns an order into its payable counterpart. Bound
// to the order routes only.
func ConvertDocumentHandler(kind models.DocumentKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIdParam(c)
		if !ok {
			return
		}
		document, err := fetchDocumentOfKind(c, id, kind)
		if err != nil {
			respondError(c, err)
			return
		}
		converted, err := models.ConvertDocument(c.Request.Context(), document.ID, currentUserId(c))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, converted)
	}
}

func GetPendingDocumentsHandler(c *gin.Context) {
	kind := models.DocumentKind(c.Query("kind"))
	if kind == "" {
		kind = models.DocumentKindCustomerInvoice
	}
	var contactId *int
	if id, ok := queryInt(c, "contact_id"); ok {
		contactId = &id
	}
	documents, err := models.GetPendingDocuments(c.Request.Context(), kind, contactId)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, documents)
}

func GetTransactionSummaryHandler(c *gin.Context) {
	summary, err := models.GetTransactionSummary(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func MarkOverdueHandler(c *gin.Context) {
	count, err := models.MarkOverdueDocuments(c.Request.Context(), time.Now())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"marked_overdue": count})
}

// ContactUserDocumentsHandler serves a contact-linked login its own bills or
// invoices. The contact id comes from the token, never from the request.
func ContactUserDocumentsHandler(kind models.DocumentKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		contactId, ok := utils.GetContactIdFromContext(c.Request.Context())
		if !ok {
			c.JSON(http.StatusForbidden, gin.H{"error": "no contact linked to this user"})
			return
		}
		documents, err := models.GetDocuments(c.Request.Context(), models.DocumentFilter{
			Kind:      &kind,
			ContactId: &contactId,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, documents)
	}
}

func fetchDocumentOfKind(c *gin.Context, id int, kind models.DocumentKind) (*models.Document, error) {
	document, err := models.GetDocument(c.Request.Context(), id)
	if err != nil {
		return nil, err
	}
	if document.Kind != kind {
		return nil, utils.ErrorRecordNotFound
	}
	return document, nil
}
