package journal

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tallybook/tally/internal/engine"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(filepath.Join(t.TempDir(), "journal.db"), os.DirFS("../.."))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestAccountRegistration(t *testing.T) {
	store := newTestStore(t)

	id, err := store.CreateAccount("Assets:Checking", "USD", "")
	require.NoError(t, err)
	assert.Positive(t, id)

	_, err = store.CreateAccount("Assets:Checking", "USD", "")
	assert.ErrorIs(t, err, ErrAccountExists)

	_, err = store.CreateAccount("Assets:Brokerage", "USD", "ACME")
	require.NoError(t, err)

	acc, err := store.AccountByName("Assets:Brokerage")
	require.NoError(t, err)
	assert.Equal(t, "ACME", acc.Security)

	_, err = store.AccountByName("missing")
	assert.ErrorIs(t, err, ErrRecordNotFound)

	accounts, err := store.Accounts()
	require.NoError(t, err)
	require.Len(t, accounts, 2)
	assert.Equal(t, "Assets:Brokerage", accounts[0].Name, "accounts come back name-ordered")
}

func TestJournalRoundTrip(t *testing.T) {
	store := newTestStore(t)

	b := engine.NewBook(true, store)
	checking, err := b.NewAccount("Assets:Checking", "USD", "")
	require.NoError(t, err)
	food, err := b.NewAccount("Expenses:Food", "USD", "")
	require.NoError(t, err)

	posted := time.Date(2024, 6, 2, 11, 0, 0, 0, time.UTC)

	txn := b.NewTransaction()
	require.NoError(t, txn.BeginEdit(false))
	require.NoError(t, txn.SetDate(posted))
	require.NoError(t, txn.SetNum("101"))
	require.NoError(t, txn.SetDescription("lunch"))

	checking.InsertSplit(txn.SourceSplit())
	leg := engine.NewSplit()
	food.InsertSplit(leg)
	require.NoError(t, txn.AppendSplit(leg))
	require.NoError(t, leg.SetQuantity(decimal.RequireFromString("12.50")))
	require.NoError(t, txn.CommitEdit())

	records, err := store.RecordsInOrder()
	require.NoError(t, err)
	require.Len(t, records, 2, "one Begin and one Commit record")
	assert.Equal(t, string(engine.OpBegin), records[0].Opcode)
	assert.Equal(t, string(engine.OpCommit), records[1].Opcode)
	assert.Equal(t, txn.ID.String(), records[1].TxnID)
	assert.Equal(t, "lunch", records[1].Description)
	assert.Equal(t, posted.UnixNano(), records[1].DatePosted)

	rec, splits, err := store.RecordByID(records[1].ID)
	require.NoError(t, err)
	assert.Equal(t, "101", rec.Num)
	require.Len(t, splits, 2)
	assert.Equal(t, "Assets:Checking", splits[0].Account)
	assert.True(t, splits[0].Quantity.Equal(decimal.RequireFromString("-12.5")))
	assert.Equal(t, "Expenses:Food", splits[1].Account)
	assert.True(t, splits[1].Quantity.Equal(decimal.RequireFromString("12.5")))

	newest, err := store.Records(1)
	require.NoError(t, err)
	require.Len(t, newest, 1)
	assert.Equal(t, records[1].ID, newest[0].ID, "Records returns newest first")
}

func TestDestroyRecorded(t *testing.T) {
	store := newTestStore(t)

	b := engine.NewBook(false, store)
	txn := b.NewTransaction()
	require.NoError(t, txn.BeginEdit(false))
	require.NoError(t, txn.SourceSplit().SetQuantity(decimal.RequireFromString("5")))
	require.NoError(t, txn.CommitEdit())

	require.NoError(t, txn.BeginEdit(false))
	require.NoError(t, txn.Destroy())

	records, err := store.RecordsInOrder()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, string(engine.OpDestroy), records[3].Opcode)

	_, _, err = store.RecordByID(9999)
	assert.ErrorIs(t, err, ErrRecordNotFound)
}
