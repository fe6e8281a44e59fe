package reports

import (
	"context"

	"github.com/shivaccounts/books_backend/config"
	"github.com/shivaccounts/books_backend/models"
	"github.com/shopspring/decimal"
)

type StockReportLine struct {
	ProductId    int             `json:"product_id"`
	ProductName  string          `json:"product_name"`
	QtyPurchased decimal.Decimal `json:"qty_purchased"`
	QtySold      decimal.Decimal `json:"qty_sold"`
	OnHand       decimal.Decimal `json:"on_hand"`
}

// GetStockReport infers stock levels from the document trail: vendor bills
// bring goods in, customer invoices take them out. Service products are
// excluded; cancelled documents do not move stock.
func GetStockReport(ctx context.Context) ([]*StockReportLine, error) {
	db := config.GetDB()

	rows, err := db.WithContext(ctx).Raw(`
WITH Movement AS (
    SELECT
        di.product_id,
        SUM(CASE WHEN d.kind = @billKind THEN di.quantity ELSE 0 END) AS qty_in,
        SUM(CASE WHEN d.kind = @invoiceKind THEN di.quantity ELSE 0 END) AS qty_out
    FROM document_items di
    JOIN documents d ON d.id = di.document_id
    WHERE d.kind IN (@billKind, @invoiceKind)
      AND d.status <> 'cancelled'
    GROUP BY di.product_id
)
SELECT
    p.id,
    p.name,
    COALESCE(m.qty_in, 0) AS qty_purchased,
    COALESCE(m.qty_out, 0) AS qty_sold,
    COALESCE(m.qty_in, 0) - COALESCE(m.qty_out, 0) AS on_hand
FROM products p
LEFT JOIN Movement m ON m.product_id = p.id
WHERE p.type = @goodsType
  AND p.is_active = 1
ORDER BY p.name
`, map[string]interface{}{
		"billKind":    models.DocumentKindVendorBill,
		"invoiceKind": models.DocumentKindCustomerInvoice,
		"goodsType":   models.ProductTypeGoods,
	}).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []*StockReportLine
	for rows.Next() {
		var line StockReportLine
		var inStr, outStr, onHandStr string
		if err := rows.Scan(&line.ProductId, &line.ProductName, &inStr, &outStr, &onHandStr); err != nil {
			return nil, err
		}
		qtyIn, err := decimal.NewFromString(inStr)
		if err != nil {
			return nil, err
		}
		qtyOut, err := decimal.NewFromString(outStr)
		if err != nil {
			return nil, err
		}
		onHand, err := decimal.NewFromString(onHandStr)
		if err != nil {
			return nil, err
		}
		line.QtyPurchased = qtyIn
		line.QtySold = qtyOut
		line.OnHand = onHand
		results = append(results, &line)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
