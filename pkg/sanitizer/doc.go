// Package sanitizer provides input normalization for checkout data.
//
// All normalization functions are idempotent. Invalid input is handled
// gracefully, typically by returning empty strings or empty slices rather
// than errors.
//
// Normalization includes:
//   - Phone numbers: convert to E.164 format (+[country][number])
//   - Passenger names: collapse whitespace, trim leading/trailing spaces
//   - Promo and gift card codes: uppercase, strip separators
//   - Seat labels: uppercase, remove duplicates and empties
//   - Emails: lowercase, trim
package sanitizer
