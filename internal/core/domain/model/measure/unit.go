package measure

import (
	"fmt"
	"strings"

	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Unit is a unit of weight.
type Unit string

const (
	Kilograms Unit = "kg"
	Tons      Unit = "tons"
	Grams     Unit = "g"
)

// ParseUnit accepts the spellings the order store is known to send.
func ParseUnit(s string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "kg", "kgs", "kilogram", "kilograms":
		return Kilograms, nil
	case "ton", "tons", "tonne", "tonnes", "t":
		return Tons, nil
	case "g", "gm", "gram", "grams":
		return Grams, nil
	}
	return "", errs.NewValueIsInvalidErrorWithCause("unit", fmt.Errorf("%q is not a known unit", s))
}

// IsLineUnit reports whether u may be used as the unit of an order line.
func (u Unit) IsLineUnit() bool {
	return u == Kilograms || u == Tons
}

func (u Unit) String() string {
	return string(u)
}

// ProductType tells how a product is sold.
type ProductType string

const (
	// Packed products are sold in bags or packets of a fixed weight.
	Packed ProductType = "packed"
	// Loose products are sold by continuous weight.
	Loose ProductType = "loose"
)

func ParseProductType(s string) (ProductType, error) {
	switch ProductType(strings.ToLower(strings.TrimSpace(s))) {
	case Packed:
		return Packed, nil
	case Loose:
		return Loose, nil
	}
	return "", errs.NewValueIsInvalidErrorWithCause("productType", fmt.Errorf("%q is not a known product type", s))
}

func (p ProductType) String() string {
	return string(p)
}

var (
	thousand = decimal.NewFromInt(1000)

	// FallbackTonsPerPacket is used when a packed product has no usable package weight.
	FallbackTonsPerPacket = decimal.RequireFromString("0.001")
)

// ToKilograms converts a weight expressed in u into kilograms.
func ToKilograms(value decimal.Decimal, u Unit) decimal.Decimal {
	switch u {
	case Tons:
		return value.Mul(thousand)
	case Grams:
		return value.Div(thousand)
	default:
		return value
	}
}

// Line is the measurable part of an order line.
type Line struct {
	ProductType   ProductType
	Unit          Unit
	Quantity      decimal.Decimal
	PackageWeight decimal.Decimal
	// PackageWeightUnit is only consulted by stock-display mode.
	PackageWeightUnit Unit
}

// PackageWeightKilograms returns the package weight normalized to kilograms.
func (l Line) PackageWeightKilograms() decimal.Decimal {
	return ToKilograms(l.PackageWeight, l.PackageWeightUnit)
}
