// Package exchange finds mutually useful transfers between the two tracked
// owners.
//
// A card qualifies in one direction when the donor holds more than one copy
// (everything beyond the kept copy is surplus) and the other owner holds
// none. The comparison is a pure function recomputed on every request from
// the live catalog and stock tables; nothing is cached.
//
// Results are ordered by chapter (numeric set code, promos last), then by
// French-collated card name, then by card id.
//
// # HTTP Endpoints
//
//   - GET /exchange : Both surplus lists plus a summary, with optional
//     q/chapter/ink filters.
package exchange
