// Package kernel provides identifier value objects shared across the
// fulfillment domain model.
//
// The package includes:
//   - UUID: identifier of records this service owns (ledger entries, events)
//   - OrderID: opaque identifier of a sales order in the external order store
package kernel
