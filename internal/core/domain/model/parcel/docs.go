// Package parcel models the package aggregate: its status state machine,
// descriptive details and tracking identifiers.
//
// The package is named parcel because package is a reserved word.
//
// Key business rules:
//   - Packages start pending and move pending -> in_transit -> delivered|returned,
//     with returned -> pending as the only way back
//   - Every status change records one history entry with the actual prior status
//   - Packages in transit or delivered cannot have their details edited
package parcel
