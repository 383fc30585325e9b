// Package store persists the ingredient ledger and sales history as flat CSV
// files: one row per ingredient, one row per sales record with a quantity
// column per menu item. A missing file is not an error; it triggers
// generation of the default seed dataset.
package store

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fnb-control/api/internal/pos"
)

const (
	ledgerFile = "ledger.csv"
	salesFile  = "sales.csv"

	dateLayout = "2006-01-02"
)

var ledgerHeader = []string{"ingredient", "stock", "unit_cost"}

// Store reads and writes the session state under one data directory.
type Store struct {
	dir string
}

// New creates a Store rooted at dir. The directory is created on first write.
func New(dir string) *Store {
	return &Store{dir: dir}
}

// LedgerPath returns the ledger file location.
func (s *Store) LedgerPath() string { return filepath.Join(s.dir, ledgerFile) }

// SalesPath returns the sales history file location.
func (s *Store) SalesPath() string { return filepath.Join(s.dir, salesFile) }

// LoadLedger reads the persisted ledger, falling back to the seed dataset
// when no file exists.
func (s *Store) LoadLedger() (*pos.Ledger, error) {
	ledger := pos.NewLedger()

	f, err := os.Open(s.LedgerPath())
	if os.IsNotExist(err) {
		if err := ledger.Replace(SeedLedger()); err != nil {
			return nil, fmt.Errorf("seed ledger: %w", err)
		}
		return ledger, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open ledger file: %w", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read ledger CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("ledger CSV is empty")
	}
	if !headerMatches(records[0], ledgerHeader) {
		return nil, fmt.Errorf("ledger CSV header mismatch: expected %v, got %v", ledgerHeader, records[0])
	}

	rows := make([]pos.Ingredient, 0, len(records)-1)
	for i, rec := range records[1:] {
		if len(rec) != len(ledgerHeader) {
			return nil, fmt.Errorf("ledger CSV row %d: expected %d columns, got %d", i+2, len(ledgerHeader), len(rec))
		}
		stock, err := decimal.NewFromString(rec[1])
		if err != nil {
			return nil, fmt.Errorf("ledger CSV row %d: stock: %w", i+2, err)
		}
		unitCost, err := decimal.NewFromString(rec[2])
		if err != nil {
			return nil, fmt.Errorf("ledger CSV row %d: unit_cost: %w", i+2, err)
		}
		rows = append(rows, pos.Ingredient{Name: rec[0], Stock: stock, UnitCost: unitCost})
	}
	if err := ledger.Replace(rows); err != nil {
		return nil, fmt.Errorf("ledger CSV: %w", err)
	}
	return ledger, nil
}

// LoadHistory reads the persisted sales history, falling back to a generated
// seed dataset when no file exists. The expected item columns come from the
// catalog, which defines the sales table schema.
func (s *Store) LoadHistory(catalog *pos.Catalog) (*pos.History, error) {
	history := pos.NewHistory()

	f, err := os.Open(s.SalesPath())
	if os.IsNotExist(err) {
		for _, rec := range SeedHistory(catalog) {
			history.Append(rec)
		}
		return history, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open sales file: %w", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read sales CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("sales CSV is empty")
	}
	if !headerMatches(records[0], salesHeader(catalog)) {
		return nil, fmt.Errorf("sales CSV header mismatch: expected %v, got %v", salesHeader(catalog), records[0])
	}

	items := catalog.Items()
	for i, rec := range records[1:] {
		if len(rec) != len(items)+1 {
			return nil, fmt.Errorf("sales CSV row %d: expected %d columns, got %d", i+2, len(items)+1, len(rec))
		}
		date, err := time.Parse(dateLayout, rec[0])
		if err != nil {
			return nil, fmt.Errorf("sales CSV row %d: date: %w", i+2, err)
		}
		quantities := make(map[string]int, len(items))
		for j, item := range items {
			qty, err := strconv.Atoi(rec[j+1])
			if err != nil {
				return nil, fmt.Errorf("sales CSV row %d: %s: %w", i+2, item, err)
			}
			quantities[item] = qty
		}
		history.Append(pos.SalesRecord{Date: date, Quantities: quantities})
	}
	return history, nil
}

// SaveLedger writes the full ledger back to disk.
func (s *Store) SaveLedger(ledger *pos.Ledger) error {
	rows := [][]string{ledgerHeader}
	for _, ing := range ledger.Rows() {
		rows = append(rows, []string{ing.Name, ing.Stock.String(), ing.UnitCost.String()})
	}
	return s.writeFile(s.LedgerPath(), rows)
}

// SaveHistory writes the full sales history back to disk.
func (s *Store) SaveHistory(history *pos.History, catalog *pos.Catalog) error {
	rows := [][]string{salesHeader(catalog)}
	for _, rec := range history.Records() {
		row := make([]string, 0, len(catalog.Items())+1)
		row = append(row, rec.Date.Format(dateLayout))
		for _, item := range catalog.Items() {
			row = append(row, strconv.Itoa(rec.Quantities[item]))
		}
		rows = append(rows, row)
	}
	return s.writeFile(s.SalesPath(), rows)
}

func (s *Store) writeFile(path string, rows [][]string) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return f.Close()
}

func salesHeader(catalog *pos.Catalog) []string {
	return append([]string{"date"}, catalog.Items()...)
}

func headerMatches(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range want {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}
