package reports

import (
	"context"
	"time"

	"github.com/shivaccounts/books_backend/config"
	"github.com/shivaccounts/books_backend/models"
	"github.com/shopspring/decimal"
)

type BalanceSheetResponse struct {
	AsOf                 time.Time       `json:"as_of"`
	CashAndBank          decimal.Decimal `json:"cash_and_bank"`
	AccountsReceivable   decimal.Decimal `json:"accounts_receivable"`
	TotalAssets          decimal.Decimal `json:"total_assets"`
	AccountsPayable      decimal.Decimal `json:"accounts_payable"`
	TotalLiabilities     decimal.Decimal `json:"total_liabilities"`
	RetainedEarnings     decimal.Decimal `json:"retained_earnings"`
	TotalEquity          decimal.Decimal `json:"total_equity"`
	LiabilitiesAndEquity decimal.Decimal `json:"liabilities_and_equity"`
}

// GetBalanceSheetReport derives the position from open documents and cash
// movements as of a date. Receivables are the outstanding balances on
// customer invoices, payables the outstanding balances on vendor bills, and
// cash the net of customer receipts over vendor payments. Retained earnings
// is the balancing figure, so assets always equal liabilities plus equity.
func GetBalanceSheetReport(ctx context.Context, asOf time.Time) (*BalanceSheetResponse, error) {
	db := config.GetDB()

	var row struct {
		Receivable string
		Payable    string
		CashIn     string
		CashOut    string
	}
	err := db.WithContext(ctx).Raw(`
SELECT
    COALESCE((SELECT SUM(balance_due) FROM documents
              WHERE kind = @invoiceKind
                AND status IN ('pending', 'overdue')
                AND date <= @asOf), 0) AS receivable,
    COALESCE((SELECT SUM(balance_due) FROM documents
              WHERE kind = @billKind
                AND status IN ('pending', 'overdue')
                AND date <= @asOf), 0) AS payable,
    COALESCE((SELECT SUM(amount) FROM payments
              WHERE type = @customerPayment AND date <= @asOf), 0) AS cash_in,
    COALESCE((SELECT SUM(amount) FROM payments
              WHERE type = @vendorPayment AND date <= @asOf), 0) AS cash_out
`, map[string]interface{}{
		"asOf":            asOf,
		"invoiceKind":     models.DocumentKindCustomerInvoice,
		"billKind":        models.DocumentKindVendorBill,
		"customerPayment": models.PaymentTypeCustomer,
		"vendorPayment":   models.PaymentTypeVendor,
	}).Scan(&row).Error
	if err != nil {
		return nil, err
	}

	receivable, err := decimal.NewFromString(row.Receivable)
	if err != nil {
		return nil, err
	}
	payable, err := decimal.NewFromString(row.Payable)
	if err != nil {
		return nil, err
	}
	cashIn, err := decimal.NewFromString(row.CashIn)
	if err != nil {
		return nil, err
	}
	cashOut, err := decimal.NewFromString(row.CashOut)
	if err != nil {
		return nil, err
	}

	cash := cashIn.Sub(cashOut)
	totalAssets := cash.Add(receivable)
	equity := totalAssets.Sub(payable)

	return &BalanceSheetResponse{
		AsOf:                 asOf,
		CashAndBank:          cash,
		AccountsReceivable:   receivable,
		TotalAssets:          totalAssets,
		AccountsPayable:      payable,
		TotalLiabilities:     payable,
		RetainedEarnings:     equity,
		TotalEquity:          equity,
		LiabilitiesAndEquity: payable.Add(equity),
	}, nil
}
