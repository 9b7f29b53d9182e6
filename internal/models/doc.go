// Package models defines the core domain models for Billed.
//
// # Models
//
//   - Bill: an expense record submitted by an employee, as persisted by the store
//   - DisplayBill: the presentation projection of a Bill, rebuilt on every fetch
//   - User: an account that submits (Employee) or reviews (Admin) bills
//
// # Design Principles
//
// 1. **Raw in, display out**: Bill carries store values verbatim, including dates
// that may not parse. Only DisplayBill holds rendered strings.
// 2. **Identity is opaque**: IDs are strings and never interpreted.
// 3. **No cached projections**: DisplayBill values are derived per request and
// never stored.
package models
