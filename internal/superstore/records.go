package superstore

import (
	"fmt"
	"strings"
	"time"
)

// OrderRecord is one line item of the Orders sheet. An order can span several
// line items, so OrderID is not unique across records.
type OrderRecord struct {
	OrderID     string
	OrderDate   time.Time
	ShipDate    time.Time // zero when the sheet value did not parse
	Region      string
	State       string
	Category    string
	SubCategory string
	Segment     string
	ProductName string
	Sales       float64
	Profit      float64
	Quantity    int

	// Derived at load time
	Returned     bool
	MarginRate   float64
	ShipmentDays *int // nil when ShipDate is invalid
}

// Dataset is the loaded workbook. It is read-only after load; filtering
// always produces new slices.
type Dataset struct {
	Orders  []OrderRecord
	MinDate time.Time
	MaxDate time.Time
}

// NewDataset wraps order rows and records their order-date bounds.
func NewDataset(orders []OrderRecord) *Dataset {
	ds := &Dataset{Orders: orders}
	for i, r := range orders {
		if i == 0 || r.OrderDate.Before(ds.MinDate) {
			ds.MinDate = r.OrderDate
		}
		if i == 0 || r.OrderDate.After(ds.MaxDate) {
			ds.MaxDate = r.OrderDate
		}
	}
	return ds
}

// Metric selects which measure the chart views aggregate.
type Metric string

const (
	MetricSales      Metric = "Sales"
	MetricProfit     Metric = "Profit"
	MetricQuantity   Metric = "Quantity"
	MetricMarginRate Metric = "Margin Rate"
)

// Metrics lists the selectable metrics in display order.
func Metrics() []Metric {
	return []Metric{MetricSales, MetricProfit, MetricQuantity, MetricMarginRate}
}

// ParseMetric resolves a user-supplied metric name, case-insensitively.
func ParseMetric(s string) (Metric, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sales":
		return MetricSales, nil
	case "profit":
		return MetricProfit, nil
	case "quantity":
		return MetricQuantity, nil
	case "margin rate", "marginrate", "margin_rate":
		return MetricMarginRate, nil
	}
	return "", fmt.Errorf("unknown metric %q", s)
}

// Value reads the metric's measure from a record.
func (m Metric) Value(r OrderRecord) float64 {
	switch m {
	case MetricProfit:
		return r.Profit
	case MetricQuantity:
		return float64(r.Quantity)
	case MetricMarginRate:
		return r.MarginRate
	default:
		return r.Sales
	}
}
