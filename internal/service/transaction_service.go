package service

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tallybook/tally/internal/config"
	"github.com/tallybook/tally/internal/engine"
	"github.com/tallybook/tally/internal/journal"
)

type TransactionService struct {
	store  *journal.Store
	book   *engine.Book
	config *config.Config
}

func NewTransactionService(store *journal.Store, book *engine.Book, cfg *config.Config) *TransactionService {
	return &TransactionService{store: store, book: book, config: cfg}
}

// SplitInput is one leg of a transaction as entered by the user.
type SplitInput struct {
	Account  string
	Memo     string
	Action   string
	Quantity decimal.Decimal
}

// TransactionInput is the user-facing shape of a new transaction. The
// first split is the source leg; the rest are destinations.
type TransactionInput struct {
	Date        time.Time
	Num         string
	Description string
	DocRef      string
	Splits      []SplitInput
}

// Record runs a full edit session for the given input: begin, apply
// every field and split, commit. The engine balances the transaction
// at commit, so an imbalance in the input lands on the first
// destination split rather than failing.
func (ts *TransactionService) Record(in TransactionInput) (*engine.Transaction, error) {
	if len(in.Splits) == 0 {
		return nil, fmt.Errorf("a transaction needs at least one split")
	}

	txn := ts.book.NewTransaction()
	if err := txn.BeginEdit(true); err != nil {
		return nil, err
	}

	if err := ts.fill(txn, in); err != nil {
		// Abandon the session; the destroy record keeps the journal
		// consistent with the book.
		_ = txn.Destroy()
		return nil, err
	}

	if err := txn.CommitEdit(); err != nil {
		return nil, err
	}

	return txn, nil
}

func (ts *TransactionService) fill(txn *engine.Transaction, in TransactionInput) error {
	if in.Date.IsZero() {
		if err := txn.SetDateToday(); err != nil {
			return err
		}
	} else if err := txn.SetDate(in.Date); err != nil {
		return err
	}

	if err := txn.SetNum(in.Num); err != nil {
		return err
	}
	if err := txn.SetDescription(in.Description); err != nil {
		return err
	}
	if err := txn.SetDocRef(in.DocRef); err != nil {
		return err
	}

	for i, leg := range in.Splits {
		var sp *engine.Split
		if i == 0 {
			sp = txn.SourceSplit()
		} else {
			sp = engine.NewSplit()
		}

		if leg.Account != "" {
			acc := ts.book.Account(leg.Account)
			if acc == nil {
				return fmt.Errorf("account %q: %w", leg.Account, journal.ErrRecordNotFound)
			}
			acc.InsertSplit(sp)
		} else if ts.book.DoubleEntry() {
			return fmt.Errorf("split %d names no account: %w", i, engine.ErrNoAccount)
		}

		if i > 0 {
			if err := txn.AppendSplit(sp); err != nil {
				return err
			}
		}

		sp.SetMemo(leg.Memo)
		sp.SetAction(leg.Action)
		if err := sp.SetQuantity(leg.Quantity); err != nil {
			return err
		}
	}

	return nil
}

// RecordSimple is the two-leg fast path: amount leaves from and
// arrives at to.
func (ts *TransactionService) RecordSimple(from, to string, amount decimal.Decimal, desc, memo string, date time.Time) (*engine.Transaction, error) {
	return ts.Record(TransactionInput{
		Date:        date,
		Description: desc,
		Splits: []SplitInput{
			{Account: from, Memo: memo, Quantity: amount.Neg()},
			{Account: to, Memo: memo, Quantity: amount},
		},
	})
}

// FindByID locates a live transaction by its id, searching the splits
// of every account in the book.
func (ts *TransactionService) FindByID(id string) (*engine.Transaction, error) {
	for _, acc := range ts.book.Accounts() {
		for _, sp := range acc.Splits() {
			txn := sp.Parent()
			if txn != nil && txn.ID.String() == id {
				return txn, nil
			}
		}
	}
	return nil, fmt.Errorf("transaction %q: %w", id, journal.ErrRecordNotFound)
}

// Delete destroys a live transaction inside its own edit session.
func (ts *TransactionService) Delete(id string) error {
	txn, err := ts.FindByID(id)
	if err != nil {
		return err
	}

	if err := txn.BeginEdit(false); err != nil {
		return err
	}
	return txn.Destroy()
}

// RecentRecords returns journal records, newest first.
func (ts *TransactionService) RecentRecords(limit int) ([]*journal.Record, error) {
	return ts.store.Records(limit)
}

// RecordDetail returns one journal record with its split snapshots.
func (ts *TransactionService) RecordDetail(id int64) (*journal.Record, []*journal.SplitRecord, error) {
	return ts.store.RecordByID(id)
}
