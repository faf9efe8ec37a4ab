// Package order provides the SalesOrder aggregate and the transition table
// that governs its lifecycle.
//
// The package includes:
//   - SalesOrder: the aggregate root, rebuilt from the order store for one workflow action
//   - Status and Action: the state machine and its transition table
//   - Item: an order line with its product measurement data
//   - CancellationRecord: a plain cancellation or a dispatched return
//   - DeliveryConfirmation: OTP or signed invoice proof of delivery
//   - DomainEvent: the record of a completed transition
//
// Key business rules:
//   - Status follows Pending -> AwaitingPaymentConfirmation -> Confirmed -> Dispatched -> Delivered
//   - Cancel is accepted before dispatch and ReturnCancel after it; both end in Cancelled
//   - Delivered and Cancelled accept no action
//   - A rejected transition leaves the order unchanged
package order
