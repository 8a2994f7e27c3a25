package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tallybook/tally/internal/engine"
)

// recordingJournal captures opcodes for assertions.
type recordingJournal struct {
	opened bool
	ops    []engine.Opcode
}

func (r *recordingJournal) OpenLog() error { r.opened = true; return nil }

func (r *recordingJournal) WriteRecord(_ *engine.Transaction, op engine.Opcode) {
	r.ops = append(r.ops, op)
}

func TestJournalRecordsCommitCycle(t *testing.T) {
	j := &recordingJournal{}
	b := engine.NewBook(true, j)
	checking := mustAccount(t, b, "Assets:Checking", "USD", "")

	txn := b.NewTransaction()
	require.NoError(t, txn.BeginEdit(false))
	checking.InsertSplit(txn.SourceSplit())
	require.NoError(t, txn.SourceSplit().SetQuantity(dec("10")))
	require.NoError(t, txn.CommitEdit())

	assert.True(t, j.opened)
	assert.Equal(t, []engine.Opcode{engine.OpBegin, engine.OpCommit}, j.ops)
}

func TestJournalRecordsDestroy(t *testing.T) {
	j := &recordingJournal{}
	b := engine.NewBook(true, j)
	checking := mustAccount(t, b, "Assets:Checking", "USD", "")

	txn := b.NewTransaction()
	require.NoError(t, txn.BeginEdit(false))
	checking.InsertSplit(txn.SourceSplit())
	require.NoError(t, txn.SourceSplit().SetQuantity(dec("10")))
	require.NoError(t, txn.CommitEdit())

	require.NoError(t, txn.BeginEdit(false))
	require.NoError(t, txn.Destroy())

	assert.Equal(t,
		[]engine.Opcode{engine.OpBegin, engine.OpCommit, engine.OpBegin, engine.OpDestroy},
		j.ops)
}

func TestOpcodeStrings(t *testing.T) {
	assert.Equal(t, "begin", engine.OpBegin.String())
	assert.Equal(t, "commit", engine.OpCommit.String())
	assert.Equal(t, "destroy", engine.OpDestroy.String())
}
