// Package export renders the joined sales dataset (per-item quantities,
// total units, and computed profit per record) as delimited text or as a
// spreadsheet for download.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/fnb-control/api/internal/pos"
	"github.com/fnb-control/api/internal/report"
)

const (
	dateLayout = "2006-01-02"
	sheetName  = "Sales"
)

// Header returns the joined dataset's column names: date, one column per
// menu item, then the computed totals.
func Header(catalog *pos.Catalog) []string {
	header := append([]string{"date"}, catalog.Items()...)
	return append(header, "total_sales", "profit")
}

// Rows builds the joined dataset, one row per sales record in history order.
func Rows(records []pos.SalesRecord, catalog *pos.Catalog, ledger *pos.Ledger) [][]string {
	sales := report.Sales(records, catalog)
	profit := report.Profit(records, catalog, ledger)

	out := make([][]string, len(records))
	for i := range records {
		row := make([]string, 0, len(catalog.Items())+3)
		row = append(row, sales[i].Date.Format(dateLayout))
		for _, item := range catalog.Items() {
			row = append(row, strconv.Itoa(sales[i].Quantities[item]))
		}
		row = append(row, strconv.Itoa(sales[i].TotalUnits))
		row = append(row, profit[i].Profit.StringFixed(2))
		out[i] = row
	}
	return out
}

// WriteCSV writes the joined dataset as comma-delimited text.
func WriteCSV(w io.Writer, records []pos.SalesRecord, catalog *pos.Catalog, ledger *pos.Ledger) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header(catalog)); err != nil {
		return fmt.Errorf("write CSV header: %w", err)
	}
	if err := cw.WriteAll(Rows(records, catalog, ledger)); err != nil {
		return fmt.Errorf("write CSV rows: %w", err)
	}
	return nil
}

// WriteXLSX writes the joined dataset as a single-sheet spreadsheet.
func WriteXLSX(w io.Writer, records []pos.SalesRecord, catalog *pos.Catalog, ledger *pos.Ledger) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	writeRow := func(n int, values []string) error {
		cell, err := excelize.CoordinatesToCellName(1, n)
		if err != nil {
			return err
		}
		row := make([]interface{}, len(values))
		for i, v := range values {
			row[i] = v
		}
		return f.SetSheetRow(sheetName, cell, &row)
	}

	if err := writeRow(1, Header(catalog)); err != nil {
		return fmt.Errorf("write sheet header: %w", err)
	}
	for i, values := range Rows(records, catalog, ledger) {
		if err := writeRow(i+2, values); err != nil {
			return fmt.Errorf("write sheet row %d: %w", i+2, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write spreadsheet: %w", err)
	}
	return nil
}
