// journal/journal.go
package journal

import (
	"github.com/rustyeddy/tradebook/record"
)

// Status filters position queries by whether the round trip has completed.
type Status string

const (
	StatusAny    Status = ""
	StatusOpen   Status = "open"
	StatusClosed Status = "closed"
)

// ListOptions narrows a position query. Zero value means no filtering
// beyond the user.
type ListOptions struct {
	Asset  record.AssetType
	Status Status
	Range  record.DateRange // applied to exit_date
}

// Repository hands raw rows to the aggregation engine. The engine never
// talks to storage itself; callers fetch through this interface first and
// pass the collections in.
type Repository interface {
	ListPositions(userID string, opts ListOptions) ([]record.RawPosition, error)
	ListCashTransactions(userID string, rng record.DateRange) ([]record.RawCashTransaction, error)
	Close() error
}
