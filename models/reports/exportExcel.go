package reports

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// WritePartnerLedgerExcel renders a partner ledger as an xlsx workbook onto
// w. The caller sets the content-type and disposition headers.
func WritePartnerLedgerExcel(report *PartnerLedgerResponse, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Sheet1"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	f.SetCellValue(sheet, "A1", "Partner")
	f.SetCellValue(sheet, "B1", report.ContactName)
	f.SetCellValue(sheet, "A2", "From")
	f.SetCellValue(sheet, "B2", report.FromDate.Format("2006-01-02"))
	f.SetCellValue(sheet, "C2", "To")
	f.SetCellValue(sheet, "D2", report.ToDate.Format("2006-01-02"))

	headers := []string{"Date", "Type", "Number", "Status", "Debit", "Credit", "Balance"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 4)
		if err != nil {
			return err
		}
		f.SetCellValue(sheet, cell, h)
	}

	for i, entry := range report.Entries {
		row := fmt.Sprint(i + 5)
		f.SetCellValue(sheet, "A"+row, entry.Date.Format("2006-01-02"))
		f.SetCellValue(sheet, "B"+row, entry.EntryType)
		f.SetCellValue(sheet, "C"+row, entry.EntryNumber)
		f.SetCellValue(sheet, "D"+row, entry.Status)
		f.SetCellValue(sheet, "E"+row, entry.Debit.InexactFloat64())
		f.SetCellValue(sheet, "F"+row, entry.Credit.InexactFloat64())
		f.SetCellValue(sheet, "G"+row, entry.Balance.InexactFloat64())
	}

	closingRow := fmt.Sprint(len(report.Entries) + 6)
	f.SetCellValue(sheet, "A"+closingRow, "Closing Balance")
	f.SetCellValue(sheet, "G"+closingRow, report.ClosingBalance.InexactFloat64())

	return f.Write(w)
}
