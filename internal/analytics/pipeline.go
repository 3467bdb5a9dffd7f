package analytics

import (
	"fmt"

	"github.com/storelens/storelens/internal/superstore"
)

// ViewOptions tunes the chart views of one render pass.
type ViewOptions struct {
	Metric          superstore.Metric
	TopN            int
	MovingAverage   bool
	MovingAvgWindow int
	StateCodes      map[string]string
}

// KPICard pairs a formatted KPI with its change against the past period.
type KPICard struct {
	Title     string  `json:"title"`
	Value     string  `json:"value"`
	Raw       float64 `json:"raw"`
	Change    float64 `json:"change"`
	Direction string  `json:"direction"`
}

// ViewModel is everything one dashboard render needs.
type ViewModel struct {
	Criteria    Criteria          `json:"criteria"`
	Metric      superstore.Metric `json:"metric"`
	Warnings    []string          `json:"warnings,omitempty"`
	KPIs        []KPICard         `json:"kpis"`
	PastPeriod  PastPeriod        `json:"pastPeriod"`
	TimeSeries  []MonthBucket     `json:"timeSeries"`
	TopProducts []ProductTotal    `json:"topProducts"`
	Geography   []StateTotal      `json:"geography"`
}

// ComputeView runs the whole pipeline for one interaction:
// filter → past period → KPIs and changes → chart views. It never fails;
// recoverable conditions become warnings on the view model.
func ComputeView(ds *superstore.Dataset, c Criteria, opts ViewOptions) *ViewModel {
	subset, outcome := Filter(ds, c)

	vm := &ViewModel{Criteria: c, Metric: opts.Metric}
	vm.Criteria.DateFrom = outcome.DateFrom
	vm.Criteria.DateTo = outcome.DateTo
	if outcome.FellBack {
		vm.Warnings = append(vm.Warnings, "No data for the selected filters. Showing the full dataset.")
	}
	if outcome.DateRangeReset {
		vm.Warnings = append(vm.Warnings, "Invalid date range selected. Reset to the full available range.")
	}

	vm.PastPeriod = ResolvePastPeriod(ds, outcome.DateFrom, outcome.DateTo)
	var pastKPIs KPISet
	if vm.PastPeriod.Valid {
		pastKPIs = ComputeKPIs(PastSubset(ds, c, vm.PastPeriod))
	} else {
		vm.Warnings = append(vm.Warnings, "No past period data available. Changes default to 0%.")
	}

	current := ComputeKPIs(subset)
	vm.KPIs = buildCards(current, pastKPIs)

	series := TimeSeries(subset, opts.Metric)
	if opts.MovingAverage {
		series = WithMovingAverage(series, opts.MovingAvgWindow)
	}
	vm.TimeSeries = series
	vm.TopProducts = TopProducts(subset, opts.Metric, opts.TopN)
	vm.Geography = ByGeography(subset, opts.Metric, opts.StateCodes)

	return vm
}

// buildCards formats the six KPI cards with their period-over-period change.
func buildCards(current, past KPISet) []KPICard {
	cards := []KPICard{
		{
			Title:  "Total Sales Revenue",
			Value:  "$" + FormatCompact(current.TotalSales),
			Raw:    current.TotalSales,
			Change: PercentChange(current.TotalSales, past.TotalSales),
		},
		{
			Title:  "Average Order Value",
			Value:  "$" + FormatCompact(current.AvgOrderValue),
			Raw:    current.AvgOrderValue,
			Change: PercentChange(current.AvgOrderValue, past.AvgOrderValue),
		},
		{
			Title:  "Total Orders Placed",
			Value:  FormatCompact(float64(current.TotalOrders)),
			Raw:    float64(current.TotalOrders),
			Change: PercentChange(float64(current.TotalOrders), float64(past.TotalOrders)),
		},
		{
			Title:  "Total Profit",
			Value:  "$" + FormatCompact(current.TotalProfit),
			Raw:    current.TotalProfit,
			Change: PercentChange(current.TotalProfit, past.TotalProfit),
		},
		{
			Title:  "Profit Margin (%)",
			Value:  fmt.Sprintf("%.1f%%", current.ProfitMargin),
			Raw:    current.ProfitMargin,
			Change: PercentChange(current.ProfitMargin, past.ProfitMargin),
		},
		{
			Title:  "Average Shipment Time",
			Value:  fmt.Sprintf("%.1f Days", current.AvgShipmentTime),
			Raw:    current.AvgShipmentTime,
			Change: PercentChange(current.AvgShipmentTime, past.AvgShipmentTime),
		},
	}
	for i := range cards {
		cards[i].Direction = ChangeDirection(cards[i].Change)
	}
	return cards
}
