// Package history holds the package status ledger entry.
//
// Entries are append-only. They are produced by the package aggregate whenever
// its status changes and written in the same transaction as the package row.
package history
