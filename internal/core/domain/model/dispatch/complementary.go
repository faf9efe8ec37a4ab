package dispatch

import (
	"fmt"
	"strings"

	"fulfillment/internal/pkg/errs"
)

// ComplementaryItem is a bonus quantity of a product added to a dispatch at no charge.
type ComplementaryItem struct {
	ProductID string
	Bags      int
}

// ComplementaryList keeps complementary items unique by product.
// The zero value is an empty list ready to use.
type ComplementaryList struct {
	items []ComplementaryItem
}

// NewComplementaryList adds items in order and fails on the first invalid or duplicate one.
func NewComplementaryList(items ...ComplementaryItem) (*ComplementaryList, error) {
	l := &ComplementaryList{}
	for _, it := range items {
		if err := l.Add(it); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// Add appends item. A product already in the list is rejected.
func (l *ComplementaryList) Add(item ComplementaryItem) error {
	item.ProductID = strings.TrimSpace(item.ProductID)
	if item.ProductID == "" {
		return errs.NewValueIsRequiredError("productId")
	}
	if item.Bags <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("bags", fmt.Errorf("%d is not greater than 0", item.Bags))
	}
	if l.Contains(item.ProductID) {
		return errs.NewValueIsInvalidErrorWithCause("productId",
			fmt.Errorf("%s is already in the complementary list", item.ProductID))
	}
	l.items = append(l.items, item)
	return nil
}

// Remove drops productID from the list. Removing an absent product is a no-op.
func (l *ComplementaryList) Remove(productID string) {
	productID = strings.TrimSpace(productID)
	for i, it := range l.items {
		if it.ProductID == productID {
			l.items = append(l.items[:i], l.items[i+1:]...)
			return
		}
	}
}

func (l *ComplementaryList) Contains(productID string) bool {
	for _, it := range l.items {
		if it.ProductID == productID {
			return true
		}
	}
	return false
}

// Items returns a copy of the list.
func (l *ComplementaryList) Items() []ComplementaryItem {
	if l == nil {
		return nil
	}
	items := make([]ComplementaryItem, len(l.items))
	copy(items, l.items)
	return items
}

func (l *ComplementaryList) Len() int {
	if l == nil {
		return 0
	}
	return len(l.items)
}

// Available filters products down to the ones that may still be selected.
func (l *ComplementaryList) Available(products []string) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		if l == nil || !l.Contains(p) {
			out = append(out, p)
		}
	}
	return out
}
