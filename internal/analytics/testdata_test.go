package analytics

import (
	"time"

	"github.com/storelens/storelens/internal/superstore"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func intPtr(n int) *int { return &n }

// sampleDataset spans January and February 2023 across two regions.
func sampleDataset() *superstore.Dataset {
	return superstore.NewDataset([]superstore.OrderRecord{
		{
			OrderID: "US-1", OrderDate: day(2023, 1, 5), Region: "West", State: "California",
			Category: "Furniture", SubCategory: "Chairs", Segment: "Consumer",
			ProductName: "Desk Chair", Sales: 200, Profit: 40, Quantity: 2,
			MarginRate: 20, ShipmentDays: intPtr(3),
		},
		{
			OrderID: "US-1", OrderDate: day(2023, 1, 5), Region: "West", State: "California",
			Category: "Technology", SubCategory: "Phones", Segment: "Consumer",
			ProductName: "Phone Case", Sales: 50, Profit: 10, Quantity: 1,
			MarginRate: 20, ShipmentDays: intPtr(3),
		},
		{
			OrderID: "US-2", OrderDate: day(2023, 1, 20), Region: "East", State: "New York",
			Category: "Furniture", SubCategory: "Tables", Segment: "Corporate",
			ProductName: "Oak Table", Sales: 500, Profit: -50, Quantity: 1,
			MarginRate: -10, ShipmentDays: intPtr(5),
		},
		{
			OrderID: "US-3", OrderDate: day(2023, 2, 10), Region: "West", State: "Washington",
			Category: "Technology", SubCategory: "Phones", Segment: "Consumer",
			ProductName: "Smartphone", Sales: 800, Profit: 160, Quantity: 1,
			MarginRate: 20, ShipmentDays: intPtr(2),
		},
		{
			OrderID: "US-4", OrderDate: day(2023, 2, 25), Region: "East", State: "New York",
			Category: "Office Supplies", SubCategory: "Paper", Segment: "Home Office",
			ProductName: "Copy Paper", Sales: 30, Profit: 12, Quantity: 6,
			MarginRate: 40, ShipmentDays: nil,
		},
	})
}
