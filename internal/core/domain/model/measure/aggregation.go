package measure

import "github.com/shopspring/decimal"

// LineKilograms returns the contribution of one order line to the order total.
//
//	packed, kg    quantity * packageWeight   (quantity counts bags)
//	packed, tons  quantity * packageWeight / 1000
//	loose,  kg    quantity
//	loose,  tons  quantity / 1000
//
// The tons rows divide where a plain tons to kilograms conversion would
// multiply. They are kept as the order store computes them.
func LineKilograms(l Line) decimal.Decimal {
	if l.ProductType == Packed {
		kg := l.Quantity.Mul(l.PackageWeight)
		if l.Unit == Tons {
			return kg.Div(thousand)
		}
		return kg
	}

	if l.Unit == Tons {
		return l.Quantity.Div(thousand)
	}
	return l.Quantity
}

// AggregateKilograms sums LineKilograms over lines.
func AggregateKilograms(lines []Line) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(LineKilograms(l))
	}
	return total
}

// AggregateTons returns the order total in tons.
//
// Example:
//
//	two packed lines of 10 bags x 50 kg  ->  (500 + 500) / 1000 = 1 ton
func AggregateTons(lines []Line) decimal.Decimal {
	return AggregateKilograms(lines).Div(thousand)
}
