package dispatch

import "github.com/shopspring/decimal"

// ProductStatus is the order store's per-product view of a partial dispatch.
// A nil quantity was not reported.
type ProductStatus struct {
	ProductID string
	ItemID    string
	Available *decimal.Decimal
	Needed    *decimal.Decimal
	Ordered   *decimal.Decimal
	Remaining *decimal.Decimal
}

// StatusSnapshot is the read-only partial dispatch status of one order.
type StatusSnapshot struct {
	Products      []ProductStatus
	Complementary []ComplementaryItem
}

// Product returns the status reported for productID.
func (s StatusSnapshot) Product(productID string) (ProductStatus, bool) {
	for _, p := range s.Products {
		if p.ProductID == productID {
			return p, true
		}
	}
	return ProductStatus{}, false
}

// Quantity returns a pointer to a copy of v, for building ProductStatus values.
func Quantity(v decimal.Decimal) *decimal.Decimal {
	return &v
}
