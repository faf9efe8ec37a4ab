// Package dispatch holds the value types exchanged when an order is put on a
// truck: the dispatch request as entered by the operator, the per-product
// status snapshot read from the order store and the manifest that is
// finally submitted.
package dispatch
