package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shivaccounts/books_backend/models/reports"
)

const dateLayout = "2006-01-02"

func queryDate(c *gin.Context, name string, fallback time.Time) (time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, nil
	}
	return time.Parse(dateLayout, raw)
}

func BalanceSheetHandler(c *gin.Context) {
	asOf, err := queryDate(c, "as_of", time.Now())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "as_of must be YYYY-MM-DD"})
		return
	}
	report, err := reports.GetBalanceSheetReport(c.Request.Context(), asOf)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func ProfitAndLossHandler(c *gin.Context) {
	now := time.Now()
	fromDate, err := queryDate(c, "from_date", time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from_date must be YYYY-MM-DD"})
		return
	}
	toDate, err := queryDate(c, "to_date", now)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "to_date must be YYYY-MM-DD"})
		return
	}
	report, err := reports.GetProfitAndLossReport(c.Request.Context(), fromDate, toDate)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func partnerLedger(c *gin.Context) (*reports.PartnerLedgerResponse, bool) {
	contactId, ok := queryInt(c, "contact_id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "contact_id is required"})
		return nil, false
	}
	now := time.Now()
	fromDate, err := queryDate(c, "from_date", now.AddDate(-1, 0, 0))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from_date must be YYYY-MM-DD"})
		return nil, false
	}
	toDate, err := queryDate(c, "to_date", now)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "to_date must be YYYY-MM-DD"})
		return nil, false
	}
	report, err := reports.GetPartnerLedgerReport(c.Request.Context(), contactId, fromDate, toDate)
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	return report, true
}

func PartnerLedgerHandler(c *gin.Context) {
	report, ok := partnerLedger(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, report)
}

func PartnerLedgerExportHandler(c *gin.Context) {
	report, ok := partnerLedger(c)
	if !ok {
		return
	}
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=partner-ledger-%d.xlsx", report.ContactId))
	if err := reports.WritePartnerLedgerExcel(report, c.Writer); err != nil {
		respondError(c, err)
	}
}

func StockReportHandler(c *gin.Context) {
	report, err := reports.GetStockReport(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}
