package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tallybook/tally/internal/engine"
	"github.com/tallybook/tally/internal/journal"
)

// Replay rebuilds a book from the journal: registered accounts first,
// then every commit and destroy record in write order. Begin records
// carry no committed state and are skipped. The book's journal must be
// silent while replaying, or the records being read would be written
// back out.
func Replay(book *engine.Book, store *journal.Store) error {
	accounts, err := store.Accounts()
	if err != nil {
		return err
	}
	for _, a := range accounts {
		if _, err := book.NewAccount(a.Name, a.Currency, a.Security); err != nil {
			return err
		}
	}

	records, err := store.RecordsInOrder()
	if err != nil {
		return err
	}

	live := make(map[string]*engine.Transaction)
	for _, rec := range records {
		switch engine.Opcode(rec.Opcode) {
		case engine.OpCommit:
			// A later commit supersedes the earlier snapshot of the
			// same transaction: tear the stale one down and rebuild.
			if prev := live[rec.TxnID]; prev != nil {
				if err := teardown(prev); err != nil {
					return fmt.Errorf("replay record %d: %w", rec.ID, err)
				}
			}
			txn, err := rebuild(book, store, rec)
			if err != nil {
				return fmt.Errorf("replay record %d: %w", rec.ID, err)
			}
			live[rec.TxnID] = txn

		case engine.OpDestroy:
			if txn := live[rec.TxnID]; txn != nil {
				if err := teardown(txn); err != nil {
					return fmt.Errorf("replay record %d: %w", rec.ID, err)
				}
				delete(live, rec.TxnID)
			}
		}
	}

	return nil
}

func teardown(txn *engine.Transaction) error {
	if err := txn.BeginEdit(false); err != nil {
		return err
	}
	return txn.Destroy()
}

func rebuild(book *engine.Book, store *journal.Store, rec *journal.Record) (*engine.Transaction, error) {
	snapshots, err := store.SplitsByRecord(rec.ID)
	if err != nil {
		return nil, err
	}

	txn := book.NewTransaction()
	if id, err := uuid.Parse(rec.TxnID); err == nil {
		txn.ID = id
	}

	if err := txn.BeginEdit(true); err != nil {
		return nil, err
	}
	if err := txn.SetDate(time.Unix(0, rec.DatePosted)); err != nil {
		return nil, err
	}
	if err := txn.SetNum(rec.Num); err != nil {
		return nil, err
	}
	if err := txn.SetDescription(rec.Description); err != nil {
		return nil, err
	}
	if err := txn.SetDocRef(rec.DocRef); err != nil {
		return nil, err
	}

	for i, snap := range snapshots {
		var sp *engine.Split
		if i == 0 {
			sp = txn.SourceSplit()
		} else {
			sp = engine.NewSplit()
		}
		if id, err := uuid.Parse(snap.SplitID); err == nil {
			sp.ID = id
		}

		if snap.Account != "" {
			acc := book.Account(snap.Account)
			if acc == nil {
				return nil, fmt.Errorf("journal names unknown account %q", snap.Account)
			}
			acc.InsertSplit(sp)
		}
		if i > 0 {
			if err := txn.AppendSplit(sp); err != nil {
				return nil, err
			}
		}

		sp.SetMemo(snap.Memo)
		sp.SetAction(snap.Action)
		sp.SetDocRef(snap.DocRef)
		sp.SetReconcile(engine.ReconcileState(snap.Reconciled))
		if err := sp.SetSharePriceAndQuantity(snap.SharePrice, snap.Quantity); err != nil {
			return nil, err
		}
	}

	if err := txn.CommitEdit(); err != nil {
		return nil, err
	}
	return txn, nil
}
