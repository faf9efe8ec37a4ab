// Package services provides domain services that apply fulfillment rules
// spanning the order and the data read from the order store.
//
// The package includes:
//   - DispatchReconciler: validates partial dispatch destinations against available stock and builds the manifest
//   - CancellationWorkflow: turns a cancellation form into a cancellation or return record, by order status
//   - DeliveryVerifier: guards OTP and signed invoice delivery confirmation, including the OTP lockout policy
//
// All services are pure and perform no I/O.
package services
