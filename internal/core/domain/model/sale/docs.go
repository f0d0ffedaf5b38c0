// Package sale provides the sale order aggregate of the sale edit service.
//
// The package includes:
//   - Order: The aggregate root holding lines, invoices and the cached totals
//   - Line: An order line (product line, title or comment)
//   - Invoice: The invoices attached to an order; only their existence matters here
//   - State, InvoiceMethod, LineType: enumerations with validation and parsing
//   - OrderValues, LineValues: change sets describing a write, field by field
//
// Key business rules:
//   - Orders follow draft -> quotation -> confirmed -> processing -> done, and can be
//     cancelled before confirmation
//   - Draft orders accept any change; quotation, confirmed and processing orders only
//     accept the relaxed fields handed to Apply; done and cancelled orders are read-only
//   - Cached totals are nullable and are cleared whenever lines change in a way that
//     affects amounts
//
// The rules that decide whether an edit of a processing order is allowed live in the
// domain services package; this package only enforces the base invariants.
package sale
