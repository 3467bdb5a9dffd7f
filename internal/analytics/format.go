package analytics

import "fmt"

// FormatCompact abbreviates large magnitudes the way the KPI cards show
// them: millions as "1.2M", thousands as "3.4K", everything else with one
// decimal.
func FormatCompact(v float64) string {
	switch {
	case v >= 1_000_000:
		return fmt.Sprintf("%.1fM", v/1_000_000)
	case v >= 1_000:
		return fmt.Sprintf("%.1fK", v/1_000)
	default:
		return fmt.Sprintf("%.1f", v)
	}
}

// Change directions for KPI card display.
const (
	ChangeUp   = "up"
	ChangeDown = "down"
	ChangeFlat = "flat"
)

// ChangeDirection buckets a percent change as up, down, or flat.
func ChangeDirection(change float64) string {
	switch {
	case change > 0:
		return ChangeUp
	case change < 0:
		return ChangeDown
	default:
		return ChangeFlat
	}
}
