// Package trades moves card copies between the two owners and keeps the
// append-only history of those moves.
//
// A give runs inside a single database transaction: the donor row is read
// under a row lock, checked for sufficient copies, decremented (or deleted
// when it reaches zero), the recipient row is incremented, and the trade row
// is appended. Any failure rolls the whole move back, so stock never goes
// negative and history never records a move that did not happen.
//
// # HTTP Endpoints
//
//   - POST /trades/give : Execute a transfer between the owners.
//   - POST /trades : Record an already-settled trade without touching stock.
//   - GET /trades : List the most recent trades, newest first.
package trades
