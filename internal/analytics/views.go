package analytics

import (
	"sort"

	"github.com/storelens/storelens/internal/superstore"
)

// MonthBucket is one point of the monthly time series.
type MonthBucket struct {
	Month     string   `json:"month"` // "2006-01"
	Value     float64  `json:"value"`
	MovingAvg *float64 `json:"movingAvg,omitempty"`
}

// TimeSeries sums the metric per calendar month of order date, in ascending
// chronological order. Only months with at least one order appear.
func TimeSeries(subset []superstore.OrderRecord, m superstore.Metric) []MonthBucket {
	totals := make(map[string]float64)
	for _, r := range subset {
		totals[r.OrderDate.Format("2006-01")] += m.Value(r)
	}

	months := make([]string, 0, len(totals))
	for month := range totals {
		months = append(months, month)
	}
	sort.Strings(months)

	buckets := make([]MonthBucket, 0, len(months))
	for _, month := range months {
		buckets = append(buckets, MonthBucket{Month: month, Value: totals[month]})
	}
	return buckets
}

// WithMovingAverage attaches a trailing simple moving average to a series.
// Buckets before the first full window keep a nil average.
func WithMovingAverage(buckets []MonthBucket, window int) []MonthBucket {
	if window <= 0 {
		return buckets
	}
	for i := range buckets {
		if i+1 < window {
			continue
		}
		sum := 0.0
		for j := i + 1 - window; j <= i; j++ {
			sum += buckets[j].Value
		}
		avg := sum / float64(window)
		buckets[i].MovingAvg = &avg
	}
	return buckets
}

// ProductTotal is one row of the top-products ranking.
type ProductTotal struct {
	Product string  `json:"product"`
	Value   float64 `json:"value"`
}

// TopProducts ranks products by the summed metric, descending, truncated to
// the first n. Ties keep first-seen order.
func TopProducts(subset []superstore.OrderRecord, m superstore.Metric, n int) []ProductTotal {
	totals := make(map[string]float64)
	var order []string
	for _, r := range subset {
		if _, seen := totals[r.ProductName]; !seen {
			order = append(order, r.ProductName)
		}
		totals[r.ProductName] += m.Value(r)
	}

	products := make([]ProductTotal, 0, len(order))
	for _, name := range order {
		products = append(products, ProductTotal{Product: name, Value: totals[name]})
	}
	sort.SliceStable(products, func(i, j int) bool {
		return products[i].Value > products[j].Value
	})
	if n > 0 && len(products) > n {
		products = products[:n]
	}
	return products
}

// StateTotal is one row of the geographic aggregate. Code is the two-letter
// state code from the reference table, empty when the state has no mapping —
// the total is still kept, the row just cannot be placed on a map.
type StateTotal struct {
	State string  `json:"state"`
	Code  string  `json:"code,omitempty"`
	Value float64 `json:"value"`
}

// ByGeography sums the metric per state and joins the state-code reference
// table. A nil or empty codes map degrades to rows without codes.
func ByGeography(subset []superstore.OrderRecord, m superstore.Metric, codes map[string]string) []StateTotal {
	totals := make(map[string]float64)
	for _, r := range subset {
		if r.State == "" {
			continue
		}
		totals[r.State] += m.Value(r)
	}

	states := make([]string, 0, len(totals))
	for state := range totals {
		states = append(states, state)
	}
	sort.Strings(states)

	result := make([]StateTotal, 0, len(states))
	for _, state := range states {
		result = append(result, StateTotal{
			State: state,
			Code:  codes[state],
			Value: totals[state],
		})
	}
	return result
}
