package measure

import "github.com/shopspring/decimal"

// TonsPerPacket returns the weight of one packet in tons, or
// FallbackTonsPerPacket when the package weight is missing or not positive.
func TonsPerPacket(packageWeightKg decimal.Decimal) decimal.Decimal {
	if !packageWeightKg.IsPositive() {
		return FallbackTonsPerPacket
	}
	return packageWeightKg.Div(thousand)
}

// TonsToPackets rounds totalTons to a whole number of packets, half away from zero.
func TonsToPackets(totalTons, packageWeightKg decimal.Decimal) decimal.Decimal {
	return totalTons.Div(TonsPerPacket(packageWeightKg)).Round(0)
}

// PacketsToTons is the inverse of TonsToPackets up to one packet of rounding.
func PacketsToTons(packets, packageWeightKg decimal.Decimal) decimal.Decimal {
	return packets.Mul(TonsPerPacket(packageWeightKg))
}

// TonsToDisplayKilograms rounds totalTons to whole kilograms for loose products.
func TonsToDisplayKilograms(totalTons decimal.Decimal) decimal.Decimal {
	return totalTons.Mul(thousand).Round(0)
}

// DisplayUnit names the unit a stock figure is shown in.
type DisplayUnit string

const (
	DisplayPackets   DisplayUnit = "packets"
	DisplayKilograms DisplayUnit = "kg"
)

// StockDisplay is a stock figure converted for display.
type StockDisplay struct {
	Unit  DisplayUnit
	Value decimal.Decimal
}

// DisplayStock converts a stock level in tons into packets for packed
// products and whole kilograms for loose ones.
func DisplayStock(productType ProductType, totalTons, packageWeightKg decimal.Decimal) StockDisplay {
	if productType == Packed {
		return StockDisplay{Unit: DisplayPackets, Value: TonsToPackets(totalTons, packageWeightKg)}
	}
	return StockDisplay{Unit: DisplayKilograms, Value: TonsToDisplayKilograms(totalTons)}
}
