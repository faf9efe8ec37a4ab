// Package ports declares the boundaries of the fulfillment core: the order
// store it drives, the event stream and invoice archive it feeds and the
// transactional storage of its own idempotency ledger and OTP attempt log.
package ports
