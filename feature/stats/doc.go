// Package stats aggregates completion statistics over the catalog and both
// owners' collections.
//
// Every figure is recomputed from live store state on each request: totals,
// owned/missing counts and percentages globally, per numbered chapter, and
// per ink bucket. Variants are aggregated, so holding any copy of a card
// counts it as owned.
//
// # HTTP Endpoints
//
//   - GET /stats : The full statistics report.
package stats
