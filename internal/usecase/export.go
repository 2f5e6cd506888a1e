package usecase

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"tumblecup_admin/internal/domain/entities"
)

// CSV export of the currently filtered order set and the product breakdown.
// Pure, stateless transforms; filenames embed the export date the way the
// original console named its downloads.

// OrdersCSV serializes orders into a comma-separated table.
func OrdersCSV(orders []entities.Order) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{
		"ID", "Order Number", "Name", "Email", "Phone", "Address", "City",
		"Item Name", "Item Quantity", "Item Style", "Base Price", "Price", "Total",
		"Order Date", "Status", "Payment Status", "Tracking ID", "Tracking Partner",
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, o := range orders {
		date := ""
		if o.DateKnown() {
			date = o.OrderDate.Format("02-January-2006")
		}
		record := []string{
			o.ID, o.OrderNumber, o.Name, o.Email, o.Phone, o.Address, o.City,
			o.ItemName, strconv.Itoa(o.Quantity), o.ItemStyle,
			formatAmount(o.BasePrice), formatAmount(o.Price), formatAmount(o.Total),
			date, string(o.Status), string(o.PaymentStatus), o.TrackingID, o.TrackingPartner,
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ProductBreakdownCSV serializes the product rollup table.
func ProductBreakdownCSV(rows []entities.ProductBreakdownRow) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"Item Name", "Total Quantity", "Base Price", "Total Cost", "Profit"}); err != nil {
		return nil, err
	}
	for _, r := range rows {
		record := []string{
			r.ItemName, strconv.Itoa(r.Quantity),
			formatAmount(r.BasePrice), formatAmount(r.Cost), formatAmount(r.Profit),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportFilename builds the dated download name, e.g.
// tumble_cup_orders_2026-09-01.csv.
func ExportFilename(kind string, now time.Time) string {
	return fmt.Sprintf("tumble_cup_%s_%s.csv", kind, now.Format("2006-01-02"))
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
