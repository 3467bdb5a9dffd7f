package analytics

import (
	"sort"
	"time"

	"github.com/storelens/storelens/internal/superstore"
)

// All is the categorical filter value that imposes no restriction. An empty
// string behaves the same so callers can omit filters entirely.
const All = "All"

// Criteria is one dashboard filter selection.
type Criteria struct {
	Region      string    `json:"region"`
	State       string    `json:"state"`
	Category    string    `json:"category"`
	SubCategory string    `json:"subCategory"`
	Segment     string    `json:"segment"`
	DateFrom    time.Time `json:"dateFrom"`
	DateTo      time.Time `json:"dateTo"`
}

// FilterOutcome reports the recoverable corrections made while filtering, so
// the caller can surface warnings instead of silently losing them. DateFrom
// and DateTo are the effective range after any correction.
type FilterOutcome struct {
	FellBack       bool      `json:"fellBack"`
	DateRangeReset bool      `json:"dateRangeReset"`
	DateFrom       time.Time `json:"dateFrom"`
	DateTo         time.Time `json:"dateTo"`
}

// Filter applies the categorical filters and then the inclusive order-date
// range. A combination that matches nothing returns the full dataset with
// FellBack set; an inverted date range resets to the dataset's full range
// with DateRangeReset set.
func Filter(ds *superstore.Dataset, c Criteria) ([]superstore.OrderRecord, FilterOutcome) {
	out := FilterOutcome{DateFrom: c.DateFrom, DateTo: c.DateTo}

	subset := make([]superstore.OrderRecord, 0, len(ds.Orders))
	for _, r := range ds.Orders {
		if matchesCategorical(r, c) {
			subset = append(subset, r)
		}
	}
	if len(subset) == 0 {
		subset = ds.Orders
		out.FellBack = true
	}

	from, to := c.DateFrom, c.DateTo
	if from.IsZero() && to.IsZero() {
		from, to = ds.MinDate, ds.MaxDate
	}
	if from.After(to) {
		from, to = ds.MinDate, ds.MaxDate
		out.DateRangeReset = true
	}
	out.DateFrom, out.DateTo = from, to

	dated := make([]superstore.OrderRecord, 0, len(subset))
	for _, r := range subset {
		if inRange(r.OrderDate, from, to) {
			dated = append(dated, r)
		}
	}
	if len(dated) == 0 {
		out.FellBack = true
		return ds.Orders, out
	}
	return dated, out
}

// matchesCategorical is the AND of the five equality filters.
func matchesCategorical(r superstore.OrderRecord, c Criteria) bool {
	if active(c.Region) && r.Region != c.Region {
		return false
	}
	if active(c.State) && r.State != c.State {
		return false
	}
	if active(c.Category) && r.Category != c.Category {
		return false
	}
	if active(c.SubCategory) && r.SubCategory != c.SubCategory {
		return false
	}
	if active(c.Segment) && r.Segment != c.Segment {
		return false
	}
	return true
}

func active(value string) bool {
	return value != "" && value != All
}

// inRange is an inclusive date range test.
func inRange(d, from, to time.Time) bool {
	return !d.Before(from) && !d.After(to)
}

// Options are the selectable values for each categorical filter. Each list is
// cascaded: it reflects the subset produced by the filters above it, matching
// how the dashboard narrows its select boxes top to bottom.
type Options struct {
	Regions       []string `json:"regions"`
	States        []string `json:"states"`
	Categories    []string `json:"categories"`
	SubCategories []string `json:"subCategories"`
	Segments      []string `json:"segments"`
}

// FilterOptions builds the cascaded option lists for a selection.
func FilterOptions(ds *superstore.Dataset, c Criteria) Options {
	region := func(r superstore.OrderRecord) string { return r.Region }
	state := func(r superstore.OrderRecord) string { return r.State }
	category := func(r superstore.OrderRecord) string { return r.Category }
	subCategory := func(r superstore.OrderRecord) string { return r.SubCategory }
	segment := func(r superstore.OrderRecord) string { return r.Segment }

	subset := ds.Orders
	var opts Options

	opts.Regions = distinct(subset, region)
	subset = narrow(subset, c.Region, region)

	opts.States = distinct(subset, state)
	subset = narrow(subset, c.State, state)

	opts.Categories = distinct(subset, category)
	subset = narrow(subset, c.Category, category)

	opts.SubCategories = distinct(subset, subCategory)
	subset = narrow(subset, c.SubCategory, subCategory)

	opts.Segments = distinct(subset, segment)
	return opts
}

// distinct returns the sorted unique values of a field, skipping blanks.
func distinct(orders []superstore.OrderRecord, field func(superstore.OrderRecord) string) []string {
	seen := make(map[string]bool)
	var values []string
	for _, r := range orders {
		v := field(r)
		if v != "" && !seen[v] {
			seen[v] = true
			values = append(values, v)
		}
	}
	sort.Strings(values)
	return values
}

// narrow keeps the rows matching a selected value, or all rows for "All".
func narrow(orders []superstore.OrderRecord, value string, field func(superstore.OrderRecord) string) []superstore.OrderRecord {
	if !active(value) {
		return orders
	}
	var kept []superstore.OrderRecord
	for _, r := range orders {
		if field(r) == value {
			kept = append(kept, r)
		}
	}
	return kept
}
