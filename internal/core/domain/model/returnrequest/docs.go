// Package returnrequest implements the return/exchange sub-workflow that can
// be opened against delivered orders.
//
// A ReturnRequest references a non-empty subset of the owning order's line
// items and is created only while the order is in delivered status and within
// the return window of the delivery tracking entry. Requests start in
// submitted status; resolution (approved, rejected, refunded, exchanged) is
// decided by the fulfillment gateway collaborator and only recorded here.
//
// Opening a request never mutates the order. A line item may not appear in
// two unresolved requests for the same order at once; the storage layer
// enforces this by checking overlap before insert.
package returnrequest
