package models

// Statistics are the shop's cumulative sales counters. They are owned
// by a single shop instance and mutated only inside the settlement
// engine's ship step.
type Statistics struct {
	TotalRevenue   float64 `json:"total_revenue"`
	TotalUnitsSold int     `json:"total_units_sold"`
}

// ShopSnapshot is the wholesale state the flat-file codec writes and
// reads: inventory records, statistics and the archived order history,
// in that section order.
type ShopSnapshot struct {
	Inventory []InventoryRecord
	Stats     Statistics
	Orders    []*Order
}
