package engine

import (
	"time"

	"github.com/google/uuid"
)

// EditState is the lifecycle state of a transaction's edit session.
type EditState int

const (
	StateClosed EditState = iota
	StateOpen
	StateOpenDeferred
)

func (e EditState) String() string {
	switch e {
	case StateOpen:
		return "open"
	case StateOpenDeferred:
		return "open-deferred"
	default:
		return "closed"
	}
}

// Transaction is an ordered set of splits that nets to zero value when
// double-entry enforcement is active. The split at index 0 is the
// source split; all others are destination splits. A live transaction
// always owns at least one split.
type Transaction struct {
	ID uuid.UUID

	num         string
	description string
	docRef      string

	dateEntered time.Time
	datePosted  time.Time

	splits []*Split

	state    EditState
	poisoned bool

	book *Book
}

// NewTransaction creates a closed transaction holding a single empty
// split. Further splits appear as soon as the balance becomes
// non-zero.
func (b *Book) NewTransaction() *Transaction {
	t := &Transaction{
		ID:   uuid.New(),
		book: b,
	}
	s := NewSplit()
	s.parent = t
	t.splits = []*Split{s}
	return t
}

// journal returns the book's journal sink, never nil.
func (t *Transaction) journal() Journal {
	if t == nil || t.book == nil || t.book.journal == nil {
		return NopJournal{}
	}
	return t.book.journal
}

func (t *Transaction) doubleEntry() bool {
	return t != nil && t.book != nil && t.book.doubleEntry
}

// checkOpen is the gate in front of every mutation.
func (t *Transaction) checkOpen() error {
	if t.poisoned {
		return ErrPoisoned
	}
	if t.state == StateClosed {
		return ErrNotOpen
	}
	return nil
}

func (t *Transaction) poison() {
	if t != nil {
		t.poisoned = true
	}
}

// markChanged flags every account touched by this transaction.
func (t *Transaction) markChanged() {
	for _, s := range t.splits {
		s.markAccountChanged()
	}
}

// CountSplits returns the number of splits owned by the transaction.
func (t *Transaction) CountSplits() int {
	if t == nil {
		return 0
	}
	return len(t.splits)
}

// GetSplit returns the i'th split, or nil when the index is out of
// range.
func (t *Transaction) GetSplit(i int) *Split {
	if t == nil || i < 0 || i >= len(t.splits) {
		return nil
	}
	return t.splits[i]
}

// SourceSplit returns the distinguished split at index 0.
func (t *Transaction) SourceSplit() *Split {
	return t.GetSplit(0)
}

// Splits returns the split sequence. Callers must not modify it.
func (t *Transaction) Splits() []*Split {
	if t == nil {
		return nil
	}
	return t.splits
}

// AppendSplit places the split at the end of the sequence and makes
// this transaction its parent. A split already held by another
// transaction is removed from it first, and that transaction is
// rebalanced.
func (t *Transaction) AppendSplit(s *Split) error {
	if t == nil || s == nil {
		return nil
	}
	if err := t.checkOpen(); err != nil {
		return err
	}

	// Detach from the prior parent unconditionally, so re-appending a
	// split this transaction already holds moves it instead of filing
	// it twice.
	if old := s.parent; old != nil {
		old.removeSplit(s)
		if old != t {
			if err := old.Rebalance(); err != nil {
				return err
			}
		}
	}

	s.parent = t
	t.splits = append(t.splits, s)

	return s.rebalance()
}

// removeSplit drops the split from the sequence and clears its parent
// reference. It deliberately never rebalances; callers decide when.
func (t *Transaction) removeSplit(s *Split) {
	if t == nil || s == nil {
		return
	}
	s.parent = nil
	for i, held := range t.splits {
		if held == s {
			t.splits = append(t.splits[:i], t.splits[i+1:]...)
			return
		}
	}
}

// SetNum sets the free-form transaction number.
func (t *Transaction) SetNum(num string) error {
	if t == nil {
		return nil
	}
	if err := t.checkOpen(); err != nil {
		return err
	}
	t.num = num
	t.markChanged()
	return nil
}

// SetDescription sets the transaction description.
func (t *Transaction) SetDescription(desc string) error {
	if t == nil {
		return nil
	}
	if err := t.checkOpen(); err != nil {
		return err
	}
	t.description = desc
	t.markChanged()
	return nil
}

// SetDocRef sets the transaction's document reference.
func (t *Transaction) SetDocRef(docRef string) error {
	if t == nil {
		return nil
	}
	if err := t.checkOpen(); err != nil {
		return err
	}
	t.docRef = docRef
	t.markChanged()
	return nil
}

// SetDate sets the posted and entered timestamps, which are kept in
// sync for now. Every split is removed from and reinserted into its
// account, since the account's sort key just changed.
func (t *Transaction) SetDate(at time.Time) error {
	if t == nil {
		return nil
	}
	if err := t.checkOpen(); err != nil {
		return err
	}

	t.dateEntered = at
	t.datePosted = at

	for _, s := range t.splits {
		acc := s.acc
		if acc == nil {
			continue
		}
		acc.RemoveSplit(s)
		acc.InsertSplit(s)
	}
	return nil
}

// SetDateDMY sets the date from calendar components, anchored at
// mid-morning local time so timezone shifts don't move the day.
func (t *Transaction) SetDateDMY(day, month, year int) error {
	return t.SetDate(time.Date(year, time.Month(month), day, 11, 0, 0, 0, time.Local))
}

// SetDateToday stamps the transaction with the current time.
func (t *Transaction) SetDateToday() error {
	return t.SetDate(time.Now())
}

// setSourceField writes to the source split and, while the transaction
// has exactly two splits, mirrors the same text onto the second one.
// The mirroring stops once a third split is added.
func (t *Transaction) setSourceField(set func(*Split)) error {
	if t == nil {
		return nil
	}
	if err := t.checkOpen(); err != nil {
		return err
	}

	src := t.splits[0]
	set(src)
	src.markAccountChanged()

	if len(t.splits) == 2 {
		mirror := t.splits[1]
		set(mirror)
		mirror.markAccountChanged()
	}
	return nil
}

// SetMemo sets the memo at the transaction level.
func (t *Transaction) SetMemo(memo string) error {
	return t.setSourceField(func(s *Split) { s.memo = memo })
}

// SetAction sets the action at the transaction level.
func (t *Transaction) SetAction(action string) error {
	return t.setSourceField(func(s *Split) { s.action = action })
}

func (t *Transaction) Num() string {
	if t == nil {
		return ""
	}
	return t.num
}

func (t *Transaction) Description() string {
	if t == nil {
		return ""
	}
	return t.description
}

func (t *Transaction) DocRef() string {
	if t == nil {
		return ""
	}
	return t.docRef
}

func (t *Transaction) DatePosted() time.Time {
	if t == nil {
		return time.Time{}
	}
	return t.datePosted
}

func (t *Transaction) DateEntered() time.Time {
	if t == nil {
		return time.Time{}
	}
	return t.dateEntered
}

func (t *Transaction) State() EditState {
	if t == nil {
		return StateClosed
	}
	return t.state
}

// AccountByName walks the splits looking for any one with an
// associated account, then resolves the name through that account's
// book registry.
func (t *Transaction) AccountByName(name string) *Account {
	if t == nil || name == "" {
		return nil
	}
	for _, s := range t.splits {
		if s.acc != nil {
			return s.acc.PeerByName(name)
		}
	}
	return nil
}

// OtherSplit returns the counterpart of the given split in a two-split
// transaction, or nil when the transaction has more than two splits.
func (t *Transaction) OtherSplit(s *Split) *Split {
	if t == nil || s == nil || len(t.splits) != 2 {
		return nil
	}
	if s == t.splits[0] {
		return t.splits[1]
	}
	if s == t.splits[1] {
		return t.splits[0]
	}
	return nil
}

// IsPeerSplit reports whether two splits share a parent transaction.
func IsPeerSplit(a, b *Split) bool {
	if a == nil || b == nil {
		return false
	}
	return a.parent != nil && a.parent == b.parent
}
