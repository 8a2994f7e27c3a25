package engine

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReconcileState describes how far a split has progressed through
// reconciliation against an external statement.
type ReconcileState int

const (
	NotReconciled ReconcileState = iota
	Cleared
	Reconciled
)

func (r ReconcileState) String() string {
	switch r {
	case Cleared:
		return "cleared"
	case Reconciled:
		return "reconciled"
	default:
		return "not-reconciled"
	}
}

// Split is one leg of a transaction. It is owned by exactly one
// Transaction and holds a non-owning reference to an Account.
//
// The six balance fields are running caches written only by
// Account.RecomputeBalance; the engine never derives state from them.
type Split struct {
	ID uuid.UUID

	parent *Transaction
	acc    *Account

	action string
	memo   string
	docRef string

	reconciled     ReconcileState
	dateReconciled time.Time

	quantity decimal.Decimal // signed share quantity ("damount")
	price    decimal.Decimal // price per share, defaults to 1

	balance           decimal.Decimal
	clearedBalance    decimal.Decimal
	reconciledBalance decimal.Decimal

	shareBalance           decimal.Decimal
	shareClearedBalance    decimal.Decimal
	shareReconciledBalance decimal.Decimal
}

// NewSplit returns a split with sane defaults: empty strings, zero
// quantity, unit price, not reconciled, no parent and no account.
func NewSplit() *Split {
	return &Split{
		ID:    uuid.New(),
		price: decimal.NewFromInt(1),
	}
}

// markAccountChanged flags the owning account as dirty so downstream
// caches know to refresh.
func (s *Split) markAccountChanged() {
	if s != nil && s.acc != nil {
		s.acc.changed = true
	}
}

// editable reports whether the split may be mutated right now. An
// unparented split may always be mutated; a parented one needs an
// active edit session on its transaction.
func (s *Split) editable() error {
	t := s.parent
	if t == nil {
		return nil
	}
	if t.poisoned {
		return ErrPoisoned
	}
	if t.state == StateClosed {
		return ErrNotOpen
	}
	return nil
}

// doubleEntry reports whether this split is governed by a book with
// double-entry enforcement switched on.
func (s *Split) doubleEntry() bool {
	if s == nil {
		return false
	}
	if s.parent != nil && s.parent.book != nil {
		return s.parent.book.doubleEntry
	}
	if s.acc != nil && s.acc.book != nil {
		return s.acc.book.doubleEntry
	}
	return false
}

// SetQuantity sets the signed share quantity and rebalances the owning
// transaction.
func (s *Split) SetQuantity(q decimal.Decimal) error {
	if s == nil {
		return nil
	}
	if err := s.editable(); err != nil {
		return err
	}
	s.markAccountChanged()
	s.quantity = q
	return s.rebalance()
}

// SetSharePrice sets the per-share price and rebalances.
func (s *Split) SetSharePrice(p decimal.Decimal) error {
	if s == nil {
		return nil
	}
	if err := s.editable(); err != nil {
		return err
	}
	s.markAccountChanged()
	s.price = p
	return s.rebalance()
}

// SetSharePriceAndQuantity sets both fields in one pass so the
// rebalancer runs only once.
func (s *Split) SetSharePriceAndQuantity(p, q decimal.Decimal) error {
	if s == nil {
		return nil
	}
	if err := s.editable(); err != nil {
		return err
	}
	s.markAccountChanged()
	s.price = p
	s.quantity = q
	return s.rebalance()
}

// SetValue sets the split's value; the quantity is derived from the
// current share price.
func (s *Split) SetValue(v decimal.Decimal) error {
	if s == nil {
		return nil
	}
	if err := s.editable(); err != nil {
		return err
	}
	s.markAccountChanged()
	s.quantity = v.Div(s.unitPrice())
	return s.rebalance()
}

// unitPrice returns the share price, falling back to 1 when the price
// has not been set to anything usable.
func (s *Split) unitPrice() decimal.Decimal {
	if s.price.IsZero() {
		return decimal.NewFromInt(1)
	}
	return s.price
}

// SetMemo may be called at any time; memo text never affects balance.
func (s *Split) SetMemo(memo string) {
	if s == nil {
		return
	}
	s.memo = memo
	s.markAccountChanged()
}

// SetAction may be called at any time.
func (s *Split) SetAction(action string) {
	if s == nil {
		return
	}
	s.action = action
	s.markAccountChanged()
}

// SetDocRef may be called at any time.
func (s *Split) SetDocRef(docRef string) {
	if s == nil {
		return
	}
	s.docRef = docRef
	s.markAccountChanged()
}

// SetReconcile updates the reconciliation state and refreshes the
// account's cleared/reconciled balances.
func (s *Split) SetReconcile(state ReconcileState) {
	if s == nil {
		return
	}
	s.reconciled = state
	s.markAccountChanged()
	s.acc.RecomputeBalance()
}

// SetDateReconciled stamps the moment the split was reconciled.
func (s *Split) SetDateReconciled(at time.Time) {
	if s == nil {
		return
	}
	s.dateReconciled = at
	s.markAccountChanged()
}

// Parent returns the owning transaction, or nil.
func (s *Split) Parent() *Transaction {
	if s == nil {
		return nil
	}
	return s.parent
}

// Account returns the associated account, or nil.
func (s *Split) Account() *Account {
	if s == nil {
		return nil
	}
	return s.acc
}

func (s *Split) Memo() string {
	if s == nil {
		return ""
	}
	return s.memo
}

func (s *Split) Action() string {
	if s == nil {
		return ""
	}
	return s.action
}

func (s *Split) DocRef() string {
	if s == nil {
		return ""
	}
	return s.docRef
}

func (s *Split) Reconcile() ReconcileState {
	if s == nil {
		return NotReconciled
	}
	return s.reconciled
}

func (s *Split) DateReconciled() time.Time {
	if s == nil {
		return time.Time{}
	}
	return s.dateReconciled
}

// Quantity returns the signed share quantity.
func (s *Split) Quantity() decimal.Decimal {
	if s == nil {
		return decimal.Zero
	}
	return s.quantity
}

// SharePrice returns the per-share price, 1 for an absent split.
func (s *Split) SharePrice() decimal.Decimal {
	if s == nil {
		return decimal.NewFromInt(1)
	}
	return s.price
}

// Value is quantity times share price, expressed in the account's
// currency.
func (s *Split) Value() decimal.Decimal {
	if s == nil {
		return decimal.Zero
	}
	return s.quantity.Mul(s.price)
}

// Balance returns the running balance cache maintained by the account.
func (s *Split) Balance() decimal.Decimal {
	if s == nil {
		return decimal.Zero
	}
	return s.balance
}

func (s *Split) ClearedBalance() decimal.Decimal {
	if s == nil {
		return decimal.Zero
	}
	return s.clearedBalance
}

func (s *Split) ReconciledBalance() decimal.Decimal {
	if s == nil {
		return decimal.Zero
	}
	return s.reconciledBalance
}

func (s *Split) ShareBalance() decimal.Decimal {
	if s == nil {
		return decimal.Zero
	}
	return s.shareBalance
}

func (s *Split) ShareClearedBalance() decimal.Decimal {
	if s == nil {
		return decimal.Zero
	}
	return s.shareClearedBalance
}

func (s *Split) ShareReconciledBalance() decimal.Decimal {
	if s == nil {
		return decimal.Zero
	}
	return s.shareReconciledBalance
}
