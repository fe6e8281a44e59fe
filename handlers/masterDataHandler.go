package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shivaccounts/books_backend/models"
)

func CreateContactHandler(c *gin.Context) {
	var input models.NewContact
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	contact, err := models.CreateContact(c.Request.Context(), &input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, contact)
}

func UpdateContactHandler(c *gin.Context) {
	id, ok := parseIdParam(c)
	if !ok {
		return
	}
	var input models.NewContact
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	contact, err := models.UpdateContact(c.Request.Context(), id, &input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, contact)
}

func DeactivateContactHandler(c *gin.Context) {
	id, ok := parseIdParam(c)
	if !ok {
		return
	}
	contact, err := models.DeactivateContact(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, contact)
}

func GetContactHandler(c *gin.Context) {
	id, ok := parseIdParam(c)
	if !ok {
		return
	}
	contact, err := models.GetContact(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, contact)
}

func GetContactsHandler(c *gin.Context) {
	var contactType *models.ContactType
	if t := c.Query("type"); t != "" {
		ct := models.ContactType(t)
		contactType = &ct
	}
	var name *string
	if n := c.Query("name"); n != "" {
		name = &n
	}
	contacts, err := models.GetContacts(c.Request.Context(), contactType, name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, contacts)
}

func CreateProductHandler(c *gin.Context) {
	var input models.NewProduct
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	product, err := models.CreateProduct(c.Request.Context(), &input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

func UpdateProductHandler(c *gin.Context) {
	id, ok := parseIdParam(c)
	if !ok {
		return
	}
	var input models.NewProduct
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	product, err := models.UpdateProduct(c.Request.Context(), id, &input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func DeactivateProductHandler(c *gin.Context) {
	id, ok := parseIdParam(c)
	if !ok {
		return
	}
	product, err := models.DeactivateProduct(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func GetProductHandler(c *gin.Context) {
	id, ok := parseIdParam(c)
	if !ok {
		return
	}
	product, err := models.GetProduct(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func GetProductsHandler(c *gin.Context) {
	var name, category *string
	if n := c.Query("name"); n != "" {
		name = &n
	}
	if cat := c.Query("category"); cat != "" {
		category = &cat
	}
	products, err := models.GetProducts(c.Request.Context(), name, category)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func CreateTaxHandler(c *gin.Context) {
	var input models.NewTax
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	tax, err := models.CreateTax(c.Request.Context(), &input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, tax)
}

func UpdateTaxHandler(c *gin.Context) {
	id, ok := parseIdParam(c)
	if !ok {
		return
	}
	var input models.NewTax
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	tax, err := models.UpdateTax(c.Request.Context(), id, &input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tax)
}

func DeactivateTaxHandler(c *gin.Context) {
	id, ok := parseIdParam(c)
	if !ok {
		return
	}
	tax, err := models.DeactivateTax(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tax)
}

func GetTaxesHandler(c *gin.Context) {
	var name *string
	if n := c.Query("name"); n != "" {
		name = &n
	}
	taxes, err := models.GetTaxes(c.Request.Context(), name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, taxes)
}

func CreateAccountHandler(c *gin.Context) {
	var input models.NewChartOfAccount
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	account, err := models.CreateChartOfAccount(c.Request.Context(), &input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, account)
}

func UpdateAccountHandler(c *gin.Context) {
	id, ok := parseIdParam(c)
	if !ok {
		return
	}
	var input models.NewChartOfAccount
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	account, err := models.UpdateChartOfAccount(c.Request.Context(), id, &input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, account)
}

func ArchiveAccountHandler(c *gin.Context) {
	id, ok := parseIdParam(c)
	if !ok {
		return
	}
	account, err := models.ArchiveChartOfAccount(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, account)
}

func GetAccountsHandler(c *gin.Context) {
	var accountType *models.AccountType
	if t := c.Query("type"); t != "" {
		at := models.AccountType(t)
		accountType = &at
	}
	accounts, err := models.GetChartOfAccounts(c.Request.Context(), accountType)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, accounts)
}
