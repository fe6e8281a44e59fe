package reports

import (
	"context"
	"time"

	"github.com/shivaccounts/books_backend/config"
	"github.com/shivaccounts/books_backend/models"
	"github.com/shivaccounts/books_backend/utils"
	"github.com/shopspring/decimal"
)

type PartnerLedgerResponse struct {
	ContactId      int                  `json:"contact_id"`
	ContactName    string               `json:"contact_name"`
	FromDate       time.Time            `json:"from_date"`
	ToDate         time.Time            `json:"to_date"`
	Entries        []*PartnerLedgerLine `json:"entries"`
	ClosingBalance decimal.Decimal      `json:"closing_balance"`
}

// PartnerLedgerLine is one row of the chronological ledger. Debit grows what
// the partner owes us (invoices) or what we owe them (bills); Credit is money
// moved. Balance is the running net after the row.
type PartnerLedgerLine struct {
	Date        time.Time       `json:"date"`
	EntryType   string          `json:"entry_type"`
	EntryNumber string          `json:"entry_number"`
	Status      string          `json:"status"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Balance     decimal.Decimal `json:"balance"`
}

// GetPartnerLedgerReport interleaves a contact's documents and payments in
// date order and carries a running balance. Invoices and bills post to the
// debit side, payments to the credit side, so the closing balance is what is
// still outstanding between the parties for the period.
func GetPartnerLedgerReport(ctx context.Context, contactId int, fromDate time.Time, toDate time.Time) (*PartnerLedgerResponse, error) {
	contact, err := utils.FetchModel[models.Contact](ctx, contactId)
	if err != nil {
		return nil, err
	}

	db := config.GetDB()
	rows, err := db.WithContext(ctx).Raw(`
SELECT entry_date, entry_type, entry_number, status, debit, credit FROM (
    SELECT
        d.date AS entry_date,
        d.kind AS entry_type,
        d.document_number AS entry_number,
        d.status AS status,
        d.grand_total AS debit,
        0 AS credit,
        d.id AS tiebreak
    FROM documents d
    WHERE d.contact_id = @contactId
      AND d.kind IN (@invoiceKind, @billKind)
      AND d.status <> 'cancelled'
      AND d.date >= @fromDate AND d.date <= @toDate
    UNION ALL
    SELECT
        p.date AS entry_date,
        p.type AS entry_type,
        p.payment_number AS entry_number,
        p.method AS status,
        0 AS debit,
        p.amount AS credit,
        p.id AS tiebreak
    FROM payments p
    WHERE p.contact_id = @contactId
      AND p.date >= @fromDate AND p.date <= @toDate
) ledger
ORDER BY entry_date, tiebreak
`, map[string]interface{}{
		"contactId":   contactId,
		"invoiceKind": models.DocumentKindCustomerInvoice,
		"billKind":    models.DocumentKindVendorBill,
		"fromDate":    fromDate,
		"toDate":      toDate,
	}).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := PartnerLedgerResponse{
		ContactId:   contactId,
		ContactName: contact.Name,
		FromDate:    fromDate,
		ToDate:      toDate,
	}

	var balance decimal.Decimal
	for rows.Next() {
		var line PartnerLedgerLine
		var debitStr, creditStr string
		if err := rows.Scan(&line.Date, &line.EntryType, &line.EntryNumber, &line.Status, &debitStr, &creditStr); err != nil {
			return nil, err
		}
		debit, err := decimal.NewFromString(debitStr)
		if err != nil {
			return nil, err
		}
		credit, err := decimal.NewFromString(creditStr)
		if err != nil {
			return nil, err
		}

		balance = balance.Add(debit).Sub(credit)
		line.Debit = debit
		line.Credit = credit
		line.Balance = balance
		result.Entries = append(result.Entries, &line)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	result.ClosingBalance = balance
	return &result, nil
}
