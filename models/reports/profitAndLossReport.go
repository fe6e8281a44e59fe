package reports

import (
	"context"
	"time"

	"github.com/shivaccounts/books_backend/config"
	"github.com/shivaccounts/books_backend/models"
	"github.com/shopspring/decimal"
)

type ProfitAndLossResponse struct {
	FromDate     time.Time       `json:"from_date"`
	ToDate       time.Time       `json:"to_date"`
	Income       decimal.Decimal `json:"income"`
	Expenses     decimal.Decimal `json:"expenses"`
	NetProfit    decimal.Decimal `json:"net_profit"`
	IncomeLines  []*PlLine       `json:"income_lines"`
	ExpenseLines []*PlLine       `json:"expense_lines"`
}

// PlLine is one counterparty's contribution to the period.
type PlLine struct {
	ContactId   int             `json:"contact_id"`
	ContactName string          `json:"contact_name"`
	Amount      decimal.Decimal `json:"amount"`
}

// GetProfitAndLossReport sums invoiced income and billed expenses over the
// period on an accrual basis: document dates decide the period, not payment
// dates. Cancelled documents are excluded.
func GetProfitAndLossReport(ctx context.Context, fromDate time.Time, toDate time.Time) (*ProfitAndLossResponse, error) {
	db := config.GetDB()

	rows, err := db.WithContext(ctx).Raw(`
SELECT
    d.kind,
    d.contact_id,
    c.name AS contact_name,
    SUM(d.subtotal) AS amount
FROM documents d
JOIN contacts c ON c.id = d.contact_id
WHERE d.kind IN (@invoiceKind, @billKind)
  AND d.status <> 'cancelled'
  AND d.date >= @fromDate
  AND d.date <= @toDate
GROUP BY d.kind, d.contact_id, c.name
ORDER BY amount DESC
`, map[string]interface{}{
		"invoiceKind": models.DocumentKindCustomerInvoice,
		"billKind":    models.DocumentKindVendorBill,
		"fromDate":    fromDate,
		"toDate":      toDate,
	}).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := ProfitAndLossResponse{FromDate: fromDate, ToDate: toDate}
	for rows.Next() {
		var kind string
		var line PlLine
		var amountStr string
		if err := rows.Scan(&kind, &line.ContactId, &line.ContactName, &amountStr); err != nil {
			return nil, err
		}
		amount, err := decimal.NewFromString(amountStr)
		if err != nil {
			return nil, err
		}
		line.Amount = amount

		if kind == string(models.DocumentKindCustomerInvoice) {
			result.Income = result.Income.Add(amount)
			result.IncomeLines = append(result.IncomeLines, &line)
		} else {
			result.Expenses = result.Expenses.Add(amount)
			result.ExpenseLines = append(result.ExpenseLines, &line)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	result.NetProfit = result.Income.Sub(result.Expenses)
	return &result, nil
}
