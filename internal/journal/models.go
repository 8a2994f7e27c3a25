package journal

import (
	"fmt"

	"github.com/shopspring/decimal"
)

func parseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q in journal: %w", s, err)
	}
	return d, nil
}

type Account struct {
	ID       int64
	Name     string
	Currency string
	Security string
}

// Record is one journaled lifecycle edge of a transaction. Date fields
// are unix nanoseconds so sub-second ordering survives the round trip.
type Record struct {
	ID          int64
	Opcode      string
	RecordedAt  int64
	TxnID       string
	Num         string
	Description string
	DocRef      string
	DatePosted  int64
	DateEntered int64
}

// SplitRecord is the snapshot of one split inside a Record.
type SplitRecord struct {
	ID         int64
	RecordID   int64
	SplitID    string
	Account    string
	Memo       string
	Action     string
	DocRef     string
	Quantity   decimal.Decimal
	SharePrice decimal.Decimal
	Reconciled int
}
