// Package sync implements the catalog import job.
//
// It pulls every numbered chapter set from the Lorcast API, upserts the cards
// into the catalog table, and can mirror card scans into the storage bucket
// so the gallery serves local copies. The job is idempotent: re-running it
// refreshes existing rows and skips already-mirrored scans.
//
// It is exposed as the 'sync' CLI command rather than an HTTP endpoint, since
// the catalog refresh is an operator action.
package sync
