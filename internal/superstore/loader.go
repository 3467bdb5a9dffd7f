package superstore

import (
	"fmt"
	"log"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

const (
	ordersSheet  = "Orders"
	returnsSheet = "Returns"
)

// Columns the Orders sheet must carry. Missing any of these is a load error.
var orderColumns = []string{
	"Order ID", "Order Date", "Ship Date", "Sales", "Profit", "Quantity",
	"Region", "State", "Category", "Sub-Category", "Segment", "Product Name",
}

// dateLayouts covers the formats excelize renders date cells in, plus plain
// ISO strings for workbooks that store dates as text.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"1/2/2006",
	"01-02-06",
	"1/2/06 15:04",
	"2-Jan-06",
}

// Loader reads the Superstore workbook.
type Loader struct {
	path string
}

// NewLoader creates a loader for the workbook at path.
func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

// Load reads the Orders and Returns sheets and derives the per-row fields.
// Rows whose order date does not parse are dropped; a bad ship date only
// leaves ShipmentDays unset.
func (l *Loader) Load() (*Dataset, error) {
	f, err := excelize.OpenFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", l.path, err)
	}
	defer f.Close()

	returned, err := readReturns(f)
	if err != nil {
		return nil, err
	}

	rows, err := f.GetRows(ordersSheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", ordersSheet, err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("sheet %s has no data rows", ordersSheet)
	}

	cols, err := columnIndex(ordersSheet, rows[0], orderColumns)
	if err != nil {
		return nil, err
	}

	dropped := 0
	orders := make([]OrderRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		cell := func(name string) string {
			idx := cols[name]
			if idx >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[idx])
		}

		orderDate, ok := parseDate(cell("Order Date"))
		if !ok {
			dropped++
			continue
		}

		rec := OrderRecord{
			OrderID:     cell("Order ID"),
			OrderDate:   orderDate,
			Region:      cell("Region"),
			State:       cell("State"),
			Category:    cell("Category"),
			SubCategory: cell("Sub-Category"),
			Segment:     cell("Segment"),
			ProductName: cell("Product Name"),
			Sales:       parseAmount(cell("Sales")),
			Profit:      parseAmount(cell("Profit")),
			Quantity:    parseCount(cell("Quantity")),
		}

		rec.Returned = returned[rec.OrderID]
		rec.MarginRate = marginRate(rec.Profit, rec.Sales)
		if shipDate, ok := parseDate(cell("Ship Date")); ok {
			rec.ShipDate = shipDate
			days := int(shipDate.Sub(orderDate).Hours() / 24)
			rec.ShipmentDays = &days
		}

		orders = append(orders, rec)
	}

	if dropped > 0 {
		log.Printf("[loader] Dropped %d order rows with unparseable order dates", dropped)
	}
	if len(orders) == 0 {
		return nil, fmt.Errorf("sheet %s: no rows with a valid order date", ordersSheet)
	}

	return NewDataset(orders), nil
}

// readReturns collects the set of returned order IDs.
func readReturns(f *excelize.File) (map[string]bool, error) {
	rows, err := f.GetRows(returnsSheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", returnsSheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %s is empty", returnsSheet)
	}

	cols, err := columnIndex(returnsSheet, rows[0], []string{"Order ID"})
	if err != nil {
		return nil, err
	}

	idx := cols["Order ID"]
	returned := make(map[string]bool, len(rows)-1)
	for _, row := range rows[1:] {
		if idx >= len(row) {
			continue
		}
		if id := strings.TrimSpace(row[idx]); id != "" {
			returned[id] = true
		}
	}
	return returned, nil
}

// columnIndex maps required column names to their positions in a header row.
func columnIndex(sheet string, header []string, required []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}

	result := make(map[string]int, len(required))
	for _, name := range required {
		idx, ok := index[name]
		if !ok {
			return nil, fmt.Errorf("sheet %s: missing required column %q", sheet, name)
		}
		result[name] = idx
	}
	return result, nil
}

// parseDate tries the known layouts and normalizes to midnight UTC.
func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

// parseAmount reads a currency cell, tolerating $ prefixes and thousands
// separators. Unparseable cells read as 0.
func parseAmount(s string) float64 {
	s = strings.TrimPrefix(strings.TrimSpace(s), "$")
	s = strings.ReplaceAll(s, ",", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// parseCount reads an integer cell, accepting float renderings like "3.0".
func parseCount(s string) int {
	if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
		return n
	}
	if v, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
		return int(v)
	}
	return 0
}

// marginRate is profit as a percentage of sales, 0 whenever the ratio is
// undefined or non-finite.
func marginRate(profit, sales float64) float64 {
	if sales == 0 {
		return 0
	}
	rate := profit / sales * 100
	if math.IsNaN(rate) || math.IsInf(rate, 0) {
		return 0
	}
	return rate
}
