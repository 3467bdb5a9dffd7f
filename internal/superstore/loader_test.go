package superstore

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
)

var orderHeader = []interface{}{
	"Order ID", "Order Date", "Ship Date", "Sales", "Profit", "Quantity",
	"Region", "State", "Category", "Sub-Category", "Segment", "Product Name",
}

// writeWorkbook authors a minimal Superstore workbook in a temp dir.
func writeWorkbook(t *testing.T, orderRows [][]interface{}, returnIDs []string) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	if _, err := f.NewSheet("Orders"); err != nil {
		t.Fatalf("new Orders sheet: %v", err)
	}
	if err := f.SetSheetRow("Orders", "A1", &orderHeader); err != nil {
		t.Fatalf("write Orders header: %v", err)
	}
	for i, row := range orderRows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow("Orders", cell, &row); err != nil {
			t.Fatalf("write Orders row %d: %v", i, err)
		}
	}

	if _, err := f.NewSheet("Returns"); err != nil {
		t.Fatalf("new Returns sheet: %v", err)
	}
	returnsHeader := []interface{}{"Order ID"}
	if err := f.SetSheetRow("Returns", "A1", &returnsHeader); err != nil {
		t.Fatalf("write Returns header: %v", err)
	}
	for i, id := range returnIDs {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []interface{}{id}
		if err := f.SetSheetRow("Returns", cell, &row); err != nil {
			t.Fatalf("write Returns row %d: %v", i, err)
		}
	}

	path := filepath.Join(t.TempDir(), "superstore.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
	return path
}

func sampleRows() [][]interface{} {
	return [][]interface{}{
		{"US-1", "2023-01-05", "2023-01-08", "200.00", "40.00", "2", "West", "California", "Furniture", "Chairs", "Consumer", "Desk Chair"},
		{"US-2", "2023-01-20", "2023-01-25", "500.00", "-50.00", "1", "East", "New York", "Furniture", "Tables", "Corporate", "Oak Table"},
		{"US-3", "2023-02-10", "", "0", "50.00", "1", "West", "Washington", "Technology", "Phones", "Consumer", "Smartphone"},
	}
}

func TestLoadDerivedFields(t *testing.T) {
	path := writeWorkbook(t, sampleRows(), []string{"US-2"})

	ds, err := NewLoader(path).Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(ds.Orders) != 3 {
		t.Fatalf("orders: got %d, want 3", len(ds.Orders))
	}

	byID := make(map[string]OrderRecord)
	for _, r := range ds.Orders {
		byID[r.OrderID] = r
	}

	if byID["US-1"].Returned || !byID["US-2"].Returned {
		t.Error("Returned flags do not match the Returns sheet")
	}
	if got := byID["US-1"].MarginRate; got != 20 {
		t.Errorf("US-1 margin rate: got %.2f, want 20", got)
	}
	// Zero sales with nonzero profit must still be finite
	if got := byID["US-3"].MarginRate; got != 0 {
		t.Errorf("US-3 margin rate: got %.2f, want 0", got)
	}
	if d := byID["US-1"].ShipmentDays; d == nil || *d != 3 {
		t.Errorf("US-1 shipment days: got %v, want 3", d)
	}
	if byID["US-3"].ShipmentDays != nil {
		t.Error("US-3 shipment days should be nil for a blank ship date")
	}
}

func TestLoadDateBounds(t *testing.T) {
	path := writeWorkbook(t, sampleRows(), nil)

	ds, err := NewLoader(path).Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !ds.MinDate.Equal(time.Date(2023, 1, 5, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("MinDate: got %v", ds.MinDate)
	}
	if !ds.MaxDate.Equal(time.Date(2023, 2, 10, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("MaxDate: got %v", ds.MaxDate)
	}
}

func TestLoadDropsRowsWithBadOrderDates(t *testing.T) {
	rows := sampleRows()
	rows = append(rows, []interface{}{"US-4", "not a date", "", "10", "1", "1", "South", "Texas", "Furniture", "Chairs", "Consumer", "Stool"})
	path := writeWorkbook(t, rows, nil)

	ds, err := NewLoader(path).Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(ds.Orders) != 3 {
		t.Errorf("orders: got %d, want 3 (bad-date row dropped)", len(ds.Orders))
	}
}

func TestLoadMissingColumn(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	if _, err := f.NewSheet("Orders"); err != nil {
		t.Fatalf("new sheet: %v", err)
	}
	header := []interface{}{"Order ID", "Order Date"} // most columns missing
	if err := f.SetSheetRow("Orders", "A1", &header); err != nil {
		t.Fatalf("write header: %v", err)
	}
	row := []interface{}{"US-1", "2023-01-05"}
	if err := f.SetSheetRow("Orders", "A2", &row); err != nil {
		t.Fatalf("write row: %v", err)
	}
	if _, err := f.NewSheet("Returns"); err != nil {
		t.Fatalf("new sheet: %v", err)
	}
	returnsHeader := []interface{}{"Order ID"}
	if err := f.SetSheetRow("Returns", "A1", &returnsHeader); err != nil {
		t.Fatalf("write header: %v", err)
	}
	path := filepath.Join(t.TempDir(), "bad.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save: %v", err)
	}

	_, err := NewLoader(path).Load()
	if err == nil {
		t.Fatal("expected error for missing required columns")
	}
	if !strings.Contains(err.Error(), "missing required column") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := NewLoader(filepath.Join(t.TempDir(), "absent.xlsx")).Load()
	if err == nil {
		t.Fatal("expected error for a missing workbook")
	}
}

func TestLoadMissingReturnsSheet(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	if _, err := f.NewSheet("Orders"); err != nil {
		t.Fatalf("new sheet: %v", err)
	}
	if err := f.SetSheetRow("Orders", "A1", &orderHeader); err != nil {
		t.Fatalf("write header: %v", err)
	}
	path := filepath.Join(t.TempDir(), "noreturns.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save: %v", err)
	}

	if _, err := NewLoader(path).Load(); err == nil {
		t.Fatal("expected error for a missing Returns sheet")
	}
}
