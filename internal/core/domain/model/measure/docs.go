// Package measure converts order-line quantities between packets, kilograms
// and tons.
//
// Two conversion modes live here and are kept apart on purpose:
//
//   - Order-aggregation mode (aggregation.go) produces order totals. Its
//     tons-unit formulas are kept exactly as the order store computes them
//     so that totals shown here match totals shown elsewhere.
//   - Stock-display mode (stock.go) converts warehouse stock in tons to
//     packets or kilograms. Its formulas round trip and are the template for
//     any new conversion.
//
// Every function is pure and safe for concurrent use.
package measure
