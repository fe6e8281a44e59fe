package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/shivaccounts/books_backend/middlewares"
	"github.com/shivaccounts/books_backend/models"
)

// RegisterRoutes wires the REST surface. Every group declares the capability
// it needs; the handlers themselves stay role-free.
func RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/login", LoginHandler)
	auth.POST("/register", middlewares.RequireCapability(middlewares.CapabilityUserAdmin), RegisterHandler)

	masterData := api.Group("/master-data", middlewares.RequireCapability(middlewares.CapabilityMasterDataWrite))
	{
		masterData.POST("/contacts", CreateContactHandler)
		masterData.GET("/contacts", GetContactsHandler)
		masterData.GET("/contacts/:id", GetContactHandler)
		masterData.PUT("/contacts/:id", UpdateContactHandler)
		masterData.DELETE("/contacts/:id", DeactivateContactHandler)

		masterData.POST("/products", CreateProductHandler)
		masterData.GET("/products", GetProductsHandler)
		masterData.GET("/products/:id", GetProductHandler)
		masterData.PUT("/products/:id", UpdateProductHandler)
		masterData.DELETE("/products/:id", DeactivateProductHandler)

		masterData.POST("/taxes", CreateTaxHandler)
		masterData.GET("/taxes", GetTaxesHandler)
		masterData.PUT("/taxes/:id", UpdateTaxHandler)
		masterData.DELETE("/taxes/:id", DeactivateTaxHandler)

		masterData.POST("/accounts", CreateAccountHandler)
		masterData.GET("/accounts", GetAccountsHandler)
		masterData.PUT("/accounts/:id", UpdateAccountHandler)
		masterData.DELETE("/accounts/:id", ArchiveAccountHandler)
	}

	transactions := api.Group("/transactions")

	staff := transactions.Group("", middlewares.RequireCapability(middlewares.CapabilityTransactionWrite))
	{
		registerDocumentRoutes(staff, "purchase-orders", models.DocumentKindPurchaseOrder)
		registerDocumentRoutes(staff, "sales-orders", models.DocumentKindSalesOrder)
		registerDocumentRoutes(staff, "vendor-bills", models.DocumentKindVendorBill)
		registerDocumentRoutes(staff, "customer-invoices", models.DocumentKindCustomerInvoice)
		staff.POST("/purchase-orders/:id/convert-to-bill", ConvertDocumentHandler(models.DocumentKindPurchaseOrder))
		staff.POST("/sales-orders/:id/convert-to-invoice", ConvertDocumentHandler(models.DocumentKindSalesOrder))
		staff.GET("/summary", GetTransactionSummaryHandler)
		staff.GET("/pending", GetPendingDocumentsHandler)
		staff.POST("/mark-overdue", MarkOverdueHandler)
	}

	payments := transactions.Group("/payments", middlewares.RequireCapability(middlewares.CapabilityPaymentWrite))
	{
		payments.POST("", RecordPaymentHandler)
		payments.GET("", GetPaymentsHandler)
		payments.POST("/quick-allocate", QuickAllocateHandler)
		payments.GET("/:id", GetPaymentHandler)
		payments.POST("/:id/allocations", AllocatePaymentHandler)
		payments.DELETE("/:id", DeletePaymentHandler)
	}

	contactUser := transactions.Group("/contact-user", middlewares.RequireCapability(middlewares.CapabilityOwnDocumentRead))
	{
		contactUser.GET("/invoices", ContactUserDocumentsHandler(models.DocumentKindCustomerInvoice))
		contactUser.GET("/bills", ContactUserDocumentsHandler(models.DocumentKindVendorBill))
	}

	reports := api.Group("/reports", middlewares.RequireCapability(middlewares.CapabilityReportRead))
	{
		reports.GET("/balance-sheet", BalanceSheetHandler)
		reports.GET("/profit-loss", ProfitAndLossHandler)
		reports.GET("/partner-ledger", PartnerLedgerHandler)
		reports.GET("/partner-ledger/export", PartnerLedgerExportHandler)
		reports.GET("/stock", StockReportHandler)
	}
}

func registerDocumentRoutes(group *gin.RouterGroup, prefix string, kind models.DocumentKind) {
	group.POST("/"+prefix+"/create-with-items", CreateDocumentHandler(kind))
	group.GET("/"+prefix, GetDocumentsHandler(kind))
	group.GET("/"+prefix+"/:id", GetDocumentHandler(kind))
	group.PUT("/"+prefix+"/:id/update-with-items", UpdateDocumentItemsHandler(kind))
	group.PUT("/"+prefix+"/:id/status", UpdateDocumentStatusHandler(kind))
}
