// Package errs provides standardized error types for the fulfillment engine.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes two groups of error types:
//   - Validation errors raised before any network call: ValueIsRequiredError
//     (a missing field), ValueIsInvalidError (a malformed value) and
//     ValueIsOutOfRangeError (a value outside its bounds)
//   - Workflow errors: InvalidTransitionError (state guard violation),
//     ExceedsAvailableError (dispatch reconciliation bound), NetworkError
//     (classified transport failure) and BackendRejectionError (server message
//     passed through verbatim)
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions
//   - Error() method for formatting the error message
//   - Unwrap() method so that errors.Is matches the sentinel
package errs
