// Package collection manages per-owner stock entries.
//
// Each entry records how many copies one owner holds of one card variant.
// The package owns the zero-canonicalization rule shared with the trades
// feature: a quantity of zero is stored as row absence, never as a
// zero-quantity row.
//
// # HTTP Endpoints
//
//   - GET /collection?ownerId= : One owner's stock entries.
//   - POST /collection/qty : Set the quantity for a card variant
//     (clamps negatives to zero, deletes on zero).
package collection
