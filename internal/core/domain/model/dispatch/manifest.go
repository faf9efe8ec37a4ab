package dispatch

import "github.com/shopspring/decimal"

// NormalizedDestination is a reconciled destination line. Required, Available
// and Ordered are informational and nil when unknown.
type NormalizedDestination struct {
	ProductID string
	ItemID    string
	Quantity  decimal.Decimal
	Required  *decimal.Decimal
	Available *decimal.Decimal
	Ordered   *decimal.Decimal
}

// Manifest is the dispatch submitted to the order store.
type Manifest struct {
	TruckNumber   string
	DriverName    string
	DriverMobile  string
	IsPartial     bool
	Destinations  []NormalizedDestination
	Complementary []ComplementaryItem
	// TotalTons is the dispatched weight in order-aggregation mode.
	TotalTons decimal.Decimal
}
