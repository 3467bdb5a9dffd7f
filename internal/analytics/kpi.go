package analytics

import (
	"github.com/storelens/storelens/internal/superstore"
)

// KPISet is the six summary metrics for one period.
type KPISet struct {
	TotalSales      float64 `json:"totalSales"`
	AvgOrderValue   float64 `json:"avgOrderValue"`
	TotalOrders     int     `json:"totalOrders"`
	TotalProfit     float64 `json:"totalProfit"`
	ProfitMargin    float64 `json:"profitMargin"`
	AvgShipmentTime float64 `json:"avgShipmentTime"`
}

// ComputeKPIs aggregates a subset in one pass. Every value is zero for an
// empty subset. TotalOrders counts distinct order IDs, not line items.
func ComputeKPIs(subset []superstore.OrderRecord) KPISet {
	var k KPISet
	if len(subset) == 0 {
		return k
	}

	orderIDs := make(map[string]struct{}, len(subset))
	shipDays := 0.0
	shipped := 0
	for _, r := range subset {
		k.TotalSales += r.Sales
		k.TotalProfit += r.Profit
		orderIDs[r.OrderID] = struct{}{}
		if r.ShipmentDays != nil {
			shipDays += float64(*r.ShipmentDays)
			shipped++
		}
	}

	k.TotalOrders = len(orderIDs)
	if k.TotalOrders > 0 {
		k.AvgOrderValue = k.TotalSales / float64(k.TotalOrders)
	}
	if k.TotalSales != 0 {
		k.ProfitMargin = k.TotalProfit / k.TotalSales * 100
	}
	if shipped > 0 {
		k.AvgShipmentTime = shipDays / float64(shipped)
	}
	return k
}

// PercentChange is the relative change between a current and past value. A
// zero past returns 0 — "no change" and "no past data" are indistinguishable
// on purpose.
func PercentChange(current, past float64) float64 {
	if past == 0 {
		return 0
	}
	return (current - past) / past * 100
}
