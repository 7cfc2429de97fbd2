// Package server holds the HTTP server configuration.
//
// It defines the listen port, the PIN access code, and the identifiers of the
// two tracked collectors. The exchange and stats features always compare the
// two configured owners, so owner identity is validated here at startup.
package server
