// Package kernel provides the shared value objects of the checkout domain.
//
// The package includes:
//   - UUID: identifier of checkout sessions, wrapping github.com/google/uuid
//   - Money: a non-negative BDT amount backed by github.com/shopspring/decimal
//
// Both are immutable and safe for concurrent use. Their zero values are
// distinguishable from constructed values so that aggregates can reject
// uninitialised input.
package kernel
