package superstore

import (
	"testing"
	"time"
)

func TestParseMetric(t *testing.T) {
	cases := []struct {
		in   string
		want Metric
	}{
		{"Sales", MetricSales},
		{"profit", MetricProfit},
		{"QUANTITY", MetricQuantity},
		{"Margin Rate", MetricMarginRate},
		{"marginrate", MetricMarginRate},
	}
	for _, tc := range cases {
		got, err := ParseMetric(tc.in)
		if err != nil {
			t.Errorf("ParseMetric(%q): unexpected error %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseMetric(%q): got %q, want %q", tc.in, got, tc.want)
		}
	}

	if _, err := ParseMetric("revenue"); err == nil {
		t.Error("expected error for an unknown metric")
	}
}

func TestMetricValue(t *testing.T) {
	r := OrderRecord{Sales: 100, Profit: 25, Quantity: 3, MarginRate: 25}

	if got := MetricSales.Value(r); got != 100 {
		t.Errorf("sales: got %.0f", got)
	}
	if got := MetricProfit.Value(r); got != 25 {
		t.Errorf("profit: got %.0f", got)
	}
	if got := MetricQuantity.Value(r); got != 3 {
		t.Errorf("quantity: got %.0f", got)
	}
	if got := MetricMarginRate.Value(r); got != 25 {
		t.Errorf("margin rate: got %.0f", got)
	}
}

func TestNewDatasetBounds(t *testing.T) {
	jan := time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC)
	mar := time.Date(2023, 3, 2, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC)

	ds := NewDataset([]OrderRecord{
		{OrderID: "A", OrderDate: feb},
		{OrderID: "B", OrderDate: mar},
		{OrderID: "C", OrderDate: jan},
	})

	if !ds.MinDate.Equal(jan) {
		t.Errorf("MinDate: got %v, want %v", ds.MinDate, jan)
	}
	if !ds.MaxDate.Equal(mar) {
		t.Errorf("MaxDate: got %v, want %v", ds.MaxDate, mar)
	}
}

func TestMarginRateNonFinite(t *testing.T) {
	if got := marginRate(50, 0); got != 0 {
		t.Errorf("zero sales: got %.2f, want 0", got)
	}
	if got := marginRate(0, 0); got != 0 {
		t.Errorf("zero profit and sales: got %.2f, want 0", got)
	}
	if got := marginRate(25, 100); got != 25 {
		t.Errorf("normal case: got %.2f, want 25", got)
	}
}
