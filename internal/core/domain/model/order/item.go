package order

import (
	"errors"
	"fmt"
	"strings"

	"fulfillment/internal/core/domain/model/measure"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// ErrItemIsNotConstructed is returned by Item.Validate for zero values.
var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

// ItemParams carries the raw fields of an order line.
// Available and Needed are optional stock hints attached to the line by the
// order store; nil means the store sent none.
type ItemParams struct {
	ID                string
	ProductID         string
	ProductName       string
	Quantity          decimal.Decimal
	Unit              measure.Unit
	ProductType       measure.ProductType
	PackageWeight     decimal.Decimal
	PackageWeightUnit measure.Unit
	Available         *decimal.Decimal
	Needed            *decimal.Decimal
}

// Item is one line of a sales order.
type Item struct {
	id                string
	productID         string
	productName       string
	quantity          decimal.Decimal
	unit              measure.Unit
	productType       measure.ProductType
	packageWeight     decimal.Decimal
	packageWeightUnit measure.Unit
	available         *decimal.Decimal
	needed            *decimal.Decimal
	guard             guard.ConstructorGuard
}

// NewItem validates p and returns the order line. All field errors are
// reported together.
//
// Rules:
//   - productId is required
//   - quantity must not be negative
//   - unit must be kg or tons
//   - packed products need a positive package weight
func NewItem(p ItemParams) (Item, error) {
	it := Item{
		id:                strings.TrimSpace(p.ID),
		productName:       p.ProductName,
		packageWeightUnit: p.PackageWeightUnit,
		guard:             guard.NewConstructorGuard(),
	}
	if it.packageWeightUnit == "" {
		it.packageWeightUnit = measure.Kilograms
	}

	if err := errors.Join(
		it.setProductID(p.ProductID),
		it.setQuantity(p.Quantity),
		it.setUnit(p.Unit),
		it.setProduct(p.ProductType, p.PackageWeight),
	); err != nil {
		return Item{}, err
	}

	if p.Available != nil {
		v := *p.Available
		it.available = &v
	}
	if p.Needed != nil {
		v := *p.Needed
		it.needed = &v
	}

	return it, nil
}

func (i Item) Validate() error {
	return i.guard.Validate(ErrItemIsNotConstructed)
}

func (i Item) ID() string {
	return i.id
}

func (i Item) ProductID() string {
	return i.productID
}

func (i Item) ProductName() string {
	return i.productName
}

// Quantity is the ordered amount, in bags for packed kg lines.
func (i Item) Quantity() decimal.Decimal {
	return i.quantity
}

func (i Item) Unit() measure.Unit {
	return i.unit
}

func (i Item) ProductType() measure.ProductType {
	return i.productType
}

func (i Item) PackageWeight() decimal.Decimal {
	return i.packageWeight
}

func (i Item) PackageWeightUnit() measure.Unit {
	return i.packageWeightUnit
}

// AvailableHint returns the stock hint the order store attached to the line.
func (i Item) AvailableHint() (decimal.Decimal, bool) {
	if i.available == nil {
		return decimal.Zero, false
	}
	return *i.available, true
}

// NeededHint returns the needed-quantity hint the order store attached to the line.
func (i Item) NeededHint() (decimal.Decimal, bool) {
	if i.needed == nil {
		return decimal.Zero, false
	}
	return *i.needed, true
}

// Line returns the measurable view of the item.
func (i Item) Line() measure.Line {
	return measure.Line{
		ProductType:       i.productType,
		Unit:              i.unit,
		Quantity:          i.quantity,
		PackageWeight:     i.packageWeight,
		PackageWeightUnit: i.packageWeightUnit,
	}
}

func (i *Item) setProductID(productID string) error {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return errs.NewValueIsRequiredError("productId")
	}
	i.productID = productID
	return nil
}

func (i *Item) setQuantity(q decimal.Decimal) error {
	if q.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%s is negative", q))
	}
	i.quantity = q
	return nil
}

func (i *Item) setUnit(u measure.Unit) error {
	if !u.IsLineUnit() {
		return errs.NewValueIsInvalidErrorWithCause("unit", fmt.Errorf("%q is not kg or tons", u))
	}
	i.unit = u
	return nil
}

func (i *Item) setProduct(pt measure.ProductType, weight decimal.Decimal) error {
	switch pt {
	case measure.Packed:
		if !weight.IsPositive() {
			return errs.NewValueIsInvalidErrorWithCause("packageWeight",
				fmt.Errorf("%s is not greater than 0 for a packed product", weight))
		}
	case measure.Loose:
	default:
		return errs.NewValueIsInvalidErrorWithCause("productType", fmt.Errorf("%q is not packed or loose", pt))
	}
	i.productType = pt
	i.packageWeight = weight
	return nil
}
