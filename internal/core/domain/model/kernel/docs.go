// Package kernel provides core domain primitives shared by the package and
// shipment aggregates.
//
// The package includes:
//   - ID: a numeric (snowflake) identifier with validation
//   - Address and Route: validated origin/destination value objects
//
// These primitives are immutable and safe for concurrent use.
package kernel
