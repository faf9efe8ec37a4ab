package backend

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// The order store is inconsistent about field names. Every alias list below
// is tried in order and the first present, non-null value wins. This file is
// the only place that knows about the spellings.
var (
	orderIDAliases       = []string{"id", "_id", "salesOrderId", "orderId"}
	orderNumberAliases   = []string{"orderNumber", "salesOrderNumber", "soNumber", "number"}
	statusAliases        = []string{"orderStatus", "status"}
	itemsAliases         = []string{"items", "orderItems", "products"}
	complementaryAliases = []string{"complimentaryItems", "complementaryItems"}
	messageAliases       = []string{"message", "error", "detail", "msg"}
	eligibleAliases      = []string{"eligible", "isEligible", "canDispatch"}
	reasonAliases        = []string{"reason", "message"}

	itemIDAliases      = []string{"itemId", "salesOrderItemId", "orderItemId", "_id", "id"}
	productIDAliases   = []string{"productId", "productID", "product_id"}
	productNameAliases = []string{"productName", "name"}
	quantityAliases    = []string{"quantity", "qty", "orderedQuantity"}
	unitAliases        = []string{"unit", "uom", "quantityUnit"}

	productTypeAliases       = []string{"productType", "type"}
	packageWeightAliases     = []string{"packageWeight", "packWeight", "bagWeight"}
	packageWeightUnitAliases = []string{"packageWeightUnit", "packWeightUnit"}

	availableAliases = []string{
		"availableQuantity", "availableQty", "availableStock", "available",
		"currentQuantity", "currentStock", "balanceQuantity", "remainingQuantity", "stock",
	}
	neededAliases    = []string{"neededQuantity", "requiredQuantity", "needQuantity", "needed"}
	orderedAliases   = []string{"orderedQuantity", "orderQuantity", "ordered"}
	remainingAliases = []string{"remainingQuantity", "remainingQty", "remaining"}
)

// object is a JSON object whose fields are decoded lazily.
type object map[string]json.RawMessage

func decodeObject(data []byte) (object, error) {
	var obj object
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, err
	}
	return obj, nil
}

// unwrap returns the "data" member when the store wrapped its payload in an
// envelope, and obj otherwise.
func (o object) unwrap() object {
	raw, ok := o.raw("data")
	if !ok {
		return o
	}
	inner, err := decodeObject(raw)
	if err != nil {
		return o
	}
	return inner
}

func (o object) raw(names ...string) (json.RawMessage, bool) {
	for _, name := range names {
		v, ok := o[name]
		if !ok {
			continue
		}
		if trimmed := bytes.TrimSpace(v); len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
			continue
		}
		return v, true
	}
	return nil, false
}

// str returns the first alias holding a string or a number, as text.
func (o object) str(names ...string) string {
	for _, name := range names {
		raw, ok := o.raw(name)
		if !ok {
			continue
		}
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			if s = strings.TrimSpace(s); s != "" {
				return s
			}
			continue
		}
		var n json.Number
		if err := json.Unmarshal(raw, &n); err == nil {
			return n.String()
		}
	}
	return ""
}

// amount returns the first alias holding a number or a numeric string.
func (o object) amount(names ...string) *decimal.Decimal {
	for _, name := range names {
		raw, ok := o.raw(name)
		if !ok {
			continue
		}
		var d decimal.Decimal
		if err := d.UnmarshalJSON(raw); err == nil {
			return &d
		}
	}
	return nil
}

func (o object) boolean(names ...string) (bool, bool) {
	for _, name := range names {
		raw, ok := o.raw(name)
		if !ok {
			continue
		}
		var b bool
		if err := json.Unmarshal(raw, &b); err == nil {
			return b, true
		}
	}
	return false, false
}

// nested returns the first alias holding an object.
func (o object) nested(names ...string) (object, bool) {
	for _, name := range names {
		raw, ok := o.raw(name)
		if !ok {
			continue
		}
		if inner, err := decodeObject(raw); err == nil {
			return inner, true
		}
	}
	return nil, false
}

// list returns the first alias holding an array of objects.
func (o object) list(names ...string) []object {
	for _, name := range names {
		raw, ok := o.raw(name)
		if !ok {
			continue
		}
		var items []object
		if err := json.Unmarshal(raw, &items); err == nil {
			return items
		}
	}
	return nil
}

// productID reads the product reference of a line, which is either a plain
// id or an embedded product document.
func (o object) productID() string {
	if id := o.str(productIDAliases...); id != "" {
		return id
	}
	if product, ok := o.nested("product"); ok {
		return product.str("_id", "id")
	}
	return o.str("product")
}

// productField reads a product attribute from the line or its embedded product.
func (o object) productField(names ...string) string {
	if v := o.str(names...); v != "" {
		return v
	}
	if product, ok := o.nested("product"); ok {
		return product.str(names...)
	}
	return ""
}

func (o object) productAmount(names ...string) *decimal.Decimal {
	if v := o.amount(names...); v != nil {
		return v
	}
	if product, ok := o.nested("product"); ok {
		return product.amount(names...)
	}
	return nil
}

// destinationAliases spreads each destination value over every field name the
// dispatch endpoint has been seen to read.
func destinationAliases(d destinationDTO) map[string]any {
	out := map[string]any{
		"productId":          d.ProductID,
		"quantity":           number(d.Quantity),
		"dispatchQuantity":   number(d.Quantity),
		"dispatchedQuantity": number(d.Quantity),
	}
	if d.ItemID != "" {
		out["itemId"] = d.ItemID
	}
	if d.Required != nil {
		out["requiredQuantity"] = number(*d.Required)
		out["needQuantity"] = number(*d.Required)
	}
	if d.Available != nil {
		out["availableQuantity"] = number(*d.Available)
		out["availableStock"] = number(*d.Available)
	}
	if d.Ordered != nil {
		out["orderedQuantity"] = number(*d.Ordered)
		out["orderQuantity"] = number(*d.Ordered)
	}
	return out
}

// number renders v as a bare JSON number rather than decimal's quoted string.
func number(v decimal.Decimal) json.Number {
	return json.Number(v.String())
}
