package engine

import (
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Account is the collaborator that owns the inverse split association:
// a date-ordered list of every split posted to it, plus the balance
// caches recomputed from that list. The engine core only reads account
// state and flags it dirty; the account is the sole writer of the
// balance caches.
type Account struct {
	ID uuid.UUID

	name     string
	currency string
	security string

	book *Book

	deferRebalance bool
	changed        bool

	splits []*Split

	balance           decimal.Decimal
	clearedBalance    decimal.Decimal
	reconciledBalance decimal.Decimal

	shareBalance           decimal.Decimal
	shareClearedBalance    decimal.Decimal
	shareReconciledBalance decimal.Decimal
}

func (a *Account) Name() string {
	if a == nil {
		return ""
	}
	return a.name
}

func (a *Account) Currency() string {
	if a == nil {
		return ""
	}
	return a.currency
}

func (a *Account) Security() string {
	if a == nil {
		return ""
	}
	return a.security
}

// SetDeferRebalance suppresses automatic rebalancing of transactions
// touching this account, for batched edits.
func (a *Account) SetDeferRebalance(on bool) {
	if a == nil {
		return
	}
	a.deferRebalance = on
}

// Changed reports whether any mutation has flagged this account dirty
// since the last ClearChanged.
func (a *Account) Changed() bool {
	return a != nil && a.changed
}

func (a *Account) ClearChanged() {
	if a != nil {
		a.changed = false
	}
}

// Splits returns the account's splits in canonical date order. Callers
// must not modify the slice.
func (a *Account) Splits() []*Split {
	if a == nil {
		return nil
	}
	return a.splits
}

func (a *Account) CountSplits() int {
	if a == nil {
		return 0
	}
	return len(a.splits)
}

// InsertSplit links the split to this account and files it at its
// canonical position in the date-ordered list.
func (a *Account) InsertSplit(s *Split) {
	if a == nil || s == nil {
		return
	}
	s.acc = a
	a.changed = true

	i := sort.Search(len(a.splits), func(i int) bool {
		return SplitOrder(a.splits[i], s) > 0
	})
	a.splits = append(a.splits, nil)
	copy(a.splits[i+1:], a.splits[i:])
	a.splits[i] = s
}

// RemoveSplit unlinks the split from the account. Removing a split the
// account does not hold is a no-op.
func (a *Account) RemoveSplit(s *Split) {
	if a == nil || s == nil {
		return
	}
	for i, held := range a.splits {
		if held == s {
			a.splits = append(a.splits[:i], a.splits[i+1:]...)
			s.acc = nil
			a.changed = true
			return
		}
	}
}

// RecomputeBalance walks the splits in canonical order, accumulating
// the running value and share balances and writing the per-split
// caches along the way.
func (a *Account) RecomputeBalance() {
	if a == nil {
		return
	}

	var balance, cleared, reconciled decimal.Decimal
	var shares, sharesCleared, sharesReconciled decimal.Decimal

	for _, s := range a.splits {
		value := s.quantity.Mul(s.price)

		balance = balance.Add(value)
		shares = shares.Add(s.quantity)

		if s.reconciled != NotReconciled {
			cleared = cleared.Add(value)
			sharesCleared = sharesCleared.Add(s.quantity)
		}
		if s.reconciled == Reconciled {
			reconciled = reconciled.Add(value)
			sharesReconciled = sharesReconciled.Add(s.quantity)
		}

		s.balance = balance
		s.clearedBalance = cleared
		s.reconciledBalance = reconciled
		s.shareBalance = shares
		s.shareClearedBalance = sharesCleared
		s.shareReconciledBalance = sharesReconciled
	}

	a.balance = balance
	a.clearedBalance = cleared
	a.reconciledBalance = reconciled
	a.shareBalance = shares
	a.shareClearedBalance = sharesCleared
	a.shareReconciledBalance = sharesReconciled
}

// CheckDateOrder verifies the split sits at its canonical position and
// repositions it when the sort key has drifted.
func (a *Account) CheckDateOrder(s *Split) {
	if a == nil || s == nil {
		return
	}

	idx := -1
	for i, held := range a.splits {
		if held == s {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}

	misplaced := (idx > 0 && SplitOrder(a.splits[idx-1], s) > 0) ||
		(idx+1 < len(a.splits) && SplitOrder(s, a.splits[idx+1]) > 0)
	if !misplaced {
		return
	}

	a.splits = append(a.splits[:idx], a.splits[idx+1:]...)
	i := sort.Search(len(a.splits), func(i int) bool {
		return SplitOrder(a.splits[i], s) > 0
	})
	a.splits = append(a.splits, nil)
	copy(a.splits[i+1:], a.splits[i:])
	a.splits[i] = s
	a.changed = true
}

// PeerByName resolves another account in the same book by name.
func (a *Account) PeerByName(name string) *Account {
	if a == nil || a.book == nil {
		return nil
	}
	return a.book.Account(name)
}

func (a *Account) Balance() decimal.Decimal {
	if a == nil {
		return decimal.Zero
	}
	return a.balance
}

func (a *Account) ClearedBalance() decimal.Decimal {
	if a == nil {
		return decimal.Zero
	}
	return a.clearedBalance
}

func (a *Account) ReconciledBalance() decimal.Decimal {
	if a == nil {
		return decimal.Zero
	}
	return a.reconciledBalance
}

func (a *Account) ShareBalance() decimal.Decimal {
	if a == nil {
		return decimal.Zero
	}
	return a.shareBalance
}
