// Package services provides domain services that span the package and shipment
// aggregates.
//
// The package includes:
//   - ShipmentCascade: derives and applies the member package side effects of a
//     shipment status change
package services
