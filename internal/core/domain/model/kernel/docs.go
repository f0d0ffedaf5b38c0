// Package kernel provides the shared domain primitives of the sale edit service.
//
// The package includes:
//   - UUID: A value object for record identifiers with validation and comparison
//   - Quantity helpers: decimal normalization shared by lines, moves and totals
//
// Everything here is immutable and safe to share between aggregates.
package kernel
