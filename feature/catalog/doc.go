// Package catalog serves the shared card catalog.
//
// The catalog is read-only from the application's point of view: rows are
// created and refreshed by the sync job (see the sync subpackage and the
// 'sync' CLI command), which imports every numbered chapter from the Lorcast
// API and can mirror card scans into object storage.
//
// # HTTP Endpoints
//
//   - GET /catalog : Filtered card list plus the available filter values.
//   - GET /catalog/:id/image : Streams the mirrored scan, or redirects to the
//     upstream image when no mirror exists.
package catalog
