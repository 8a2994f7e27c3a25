package engine_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tallybook/tally/internal/engine"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func mustAccount(t *testing.T, b *engine.Book, name, currency, security string) *engine.Account {
	t.Helper()
	a, err := b.NewAccount(name, currency, security)
	require.NoError(t, err)
	return a
}

// sumBase totals every split of the transaction in the given base
// unit. Helper for the zero-sum assertions.
func sumBase(t *testing.T, txn *engine.Transaction, base string) decimal.Decimal {
	t.Helper()
	total := decimal.Zero
	for _, s := range txn.Splits() {
		v, err := s.BaseValue(base)
		require.NoError(t, err)
		total = total.Add(v)
	}
	return total
}

func TestAppendForcesSourceToBalance(t *testing.T) {
	b := engine.NewBook(true, nil)
	checking := mustAccount(t, b, "Assets:Checking", "USD", "")
	food := mustAccount(t, b, "Expenses:Food", "USD", "")

	txn := b.NewTransaction()
	require.NoError(t, txn.BeginEdit(false))

	src := txn.SourceSplit()
	checking.InsertSplit(src)
	assert.True(t, src.Quantity().IsZero(), "fresh transaction starts with a zero split")

	dest := engine.NewSplit()
	food.InsertSplit(dest)
	require.NoError(t, txn.AppendSplit(dest))
	require.NoError(t, dest.SetQuantity(dec("100")))

	assert.True(t, src.Quantity().Equal(dec("-100")),
		"source split absorbs the imbalance, got %s", src.Quantity())
	assert.True(t, sumBase(t, txn, "USD").IsZero())

	require.NoError(t, txn.CommitEdit())
	assert.True(t, sumBase(t, txn, "USD").IsZero())
}

func TestEnforcementOffMixedCurrencyTransfer(t *testing.T) {
	b := engine.NewBook(false, nil)
	checking := mustAccount(t, b, "Assets:Checking", "USD", "")
	euro := mustAccount(t, b, "Assets:Euro", "EUR", "")

	txn := b.NewTransaction()
	require.NoError(t, txn.BeginEdit(false))

	src := txn.SourceSplit()
	checking.InsertSplit(src)

	dest := engine.NewSplit()
	euro.InsertSplit(dest)
	require.NoError(t, txn.AppendSplit(dest),
		"without enforcement, legs in unrelated currencies are legal")

	require.NoError(t, dest.SetQuantity(dec("100")))
	assert.True(t, src.Quantity().Equal(dec("-100")),
		"imbalance converts through quantity times price, got %s", src.Quantity())
	assert.True(t, sumBase(t, txn, "").IsZero())

	// The transaction stays usable; nothing was poisoned.
	require.NoError(t, txn.SetDescription("fx transfer"))
	require.NoError(t, txn.CommitEdit())
}

func TestAutoCreatedBalancingSplit(t *testing.T) {
	b := engine.NewBook(true, nil)
	checking := mustAccount(t, b, "Assets:Checking", "USD", "")

	txn := b.NewTransaction()
	require.NoError(t, txn.BeginEdit(false))

	src := txn.SourceSplit()
	checking.InsertSplit(src)
	src.SetMemo("lunch")
	src.SetAction("debit")

	require.NoError(t, src.SetQuantity(dec("50")))

	require.Equal(t, 2, txn.CountSplits(), "a balancing split is created under enforcement")
	bal := txn.GetSplit(1)
	assert.True(t, bal.Quantity().Equal(dec("-50")))
	assert.Equal(t, "lunch", bal.Memo())
	assert.Equal(t, "debit", bal.Action())
	assert.Same(t, checking, bal.Account(), "balancing split lands in the source's account")
	assert.True(t, sumBase(t, txn, "USD").IsZero())
	require.NoError(t, txn.CommitEdit())
}

func TestLoneZeroSplitIsLegal(t *testing.T) {
	b := engine.NewBook(true, nil)
	checking := mustAccount(t, b, "Assets:Checking", "USD", "")

	txn := b.NewTransaction()
	require.NoError(t, txn.BeginEdit(false))
	checking.InsertSplit(txn.SourceSplit())

	// a zero-quantity split just records a price
	require.NoError(t, txn.SourceSplit().SetSharePrice(dec("42.17")))
	require.NoError(t, txn.CommitEdit())

	assert.Equal(t, 1, txn.CountSplits())
}

func TestRemoveFromThreeSplitTransaction(t *testing.T) {
	b := engine.NewBook(true, nil)
	checking := mustAccount(t, b, "Assets:Checking", "USD", "")
	food := mustAccount(t, b, "Expenses:Food", "USD", "")
	tips := mustAccount(t, b, "Expenses:Tips", "USD", "")

	txn := b.NewTransaction()
	require.NoError(t, txn.BeginEdit(false))
	checking.InsertSplit(txn.SourceSplit())

	meal := engine.NewSplit()
	food.InsertSplit(meal)
	require.NoError(t, txn.AppendSplit(meal))
	require.NoError(t, meal.SetQuantity(dec("40")))

	tip := engine.NewSplit()
	tips.InsertSplit(tip)
	require.NoError(t, txn.AppendSplit(tip))
	require.NoError(t, tip.SetQuantity(dec("8")))

	require.Equal(t, 3, txn.CountSplits())
	assert.True(t, txn.SourceSplit().Quantity().Equal(dec("-48")))

	require.NoError(t, tip.Destroy())

	require.Equal(t, 2, txn.CountSplits(), "3-split transaction shrinks in place")
	assert.True(t, sumBase(t, txn, "USD").IsZero())
	assert.Equal(t, 0, tips.CountSplits(), "removed split left its account")
	require.NoError(t, txn.CommitEdit())
}

func TestAppendThenRemoveRestoresState(t *testing.T) {
	b := engine.NewBook(true, nil)
	checking := mustAccount(t, b, "Assets:Checking", "USD", "")
	food := mustAccount(t, b, "Expenses:Food", "USD", "")
	extra := mustAccount(t, b, "Expenses:Extra", "USD", "")

	txn := b.NewTransaction()
	require.NoError(t, txn.BeginEdit(false))
	checking.InsertSplit(txn.SourceSplit())

	meal := engine.NewSplit()
	food.InsertSplit(meal)
	require.NoError(t, txn.AppendSplit(meal))
	require.NoError(t, meal.SetQuantity(dec("25")))

	before := txn.CountSplits()

	s := engine.NewSplit()
	extra.InsertSplit(s)
	require.NoError(t, txn.AppendSplit(s))
	require.NoError(t, s.SetQuantity(dec("5")))
	require.Equal(t, before+1, txn.CountSplits())

	require.NoError(t, s.Destroy())

	assert.Equal(t, before, txn.CountSplits())
	assert.True(t, sumBase(t, txn, "USD").IsZero())
	require.NoError(t, txn.CommitEdit())
}

func TestDeferredRebalance(t *testing.T) {
	b := engine.NewBook(true, nil)
	checking := mustAccount(t, b, "Assets:Checking", "USD", "")
	food := mustAccount(t, b, "Expenses:Food", "USD", "")

	txn := b.NewTransaction()
	require.NoError(t, txn.BeginEdit(true))
	checking.InsertSplit(txn.SourceSplit())

	dest := engine.NewSplit()
	food.InsertSplit(dest)
	require.NoError(t, txn.AppendSplit(dest))
	require.NoError(t, txn.SourceSplit().SetQuantity(dec("75")))

	assert.True(t, dest.Quantity().IsZero(),
		"no rebalance happens while the session defers it")

	require.NoError(t, txn.CommitEdit())
	assert.True(t, dest.Quantity().Equal(dec("-75")),
		"commit clears the deferred flag and pushes the imbalance onto the destination")
	assert.True(t, sumBase(t, txn, "USD").IsZero())
}

func TestAccountDeferSuppressesRebalance(t *testing.T) {
	b := engine.NewBook(true, nil)
	checking := mustAccount(t, b, "Assets:Checking", "USD", "")
	food := mustAccount(t, b, "Expenses:Food", "USD", "")

	txn := b.NewTransaction()
	require.NoError(t, txn.BeginEdit(false))
	checking.InsertSplit(txn.SourceSplit())

	dest := engine.NewSplit()
	food.InsertSplit(dest)
	require.NoError(t, txn.AppendSplit(dest))

	food.SetDeferRebalance(true)
	require.NoError(t, dest.SetQuantity(dec("10")))
	assert.True(t, txn.SourceSplit().Quantity().IsZero())

	food.SetDeferRebalance(false)
	require.NoError(t, dest.SetQuantity(dec("10")))
	assert.True(t, txn.SourceSplit().Quantity().Equal(dec("-10")))
	require.NoError(t, txn.CommitEdit())
}

func TestSecurityDenominatedLeg(t *testing.T) {
	b := engine.NewBook(true, nil)
	cash := mustAccount(t, b, "Assets:Cash", "USD", "")
	stock := mustAccount(t, b, "Assets:Brokerage", "EUR", "USD")

	txn := b.NewTransaction()
	require.NoError(t, txn.BeginEdit(false))
	cash.InsertSplit(txn.SourceSplit())

	leg := engine.NewSplit()
	stock.InsertSplit(leg)
	require.NoError(t, txn.AppendSplit(leg))

	// the common unit is USD, which is the stock account's security:
	// the leg contributes its quantity alone, not quantity*price.
	require.NoError(t, leg.SetSharePriceAndQuantity(dec("2"), dec("100")))

	assert.True(t, txn.SourceSplit().Quantity().Equal(dec("-100")),
		"source balances the security-denominated quantity, got %s", txn.SourceSplit().Quantity())
	assert.True(t, sumBase(t, txn, "USD").IsZero())
	require.NoError(t, txn.CommitEdit())
}

func TestCurrencyInconsistencyPoisons(t *testing.T) {
	b := engine.NewBook(true, nil)
	usd := mustAccount(t, b, "Assets:Checking", "USD", "")
	eur := mustAccount(t, b, "Assets:Euro", "EUR", "")

	txn := b.NewTransaction()
	require.NoError(t, txn.BeginEdit(false))
	usd.InsertSplit(txn.SourceSplit())

	other := engine.NewSplit()
	eur.InsertSplit(other)
	err := txn.AppendSplit(other)
	require.ErrorIs(t, err, engine.ErrNoCommonCurrency)

	// the transaction is now unusable, not silently inconsistent
	assert.ErrorIs(t, txn.SetDescription("still broken"), engine.ErrPoisoned)
	assert.ErrorIs(t, txn.CommitEdit(), engine.ErrPoisoned)
}

func TestEnforcementOffAllowsAccountlessSplits(t *testing.T) {
	b := engine.NewBook(false, nil)

	txn := b.NewTransaction()
	require.NoError(t, txn.BeginEdit(false))

	dest := engine.NewSplit()
	require.NoError(t, txn.AppendSplit(dest))
	require.NoError(t, dest.SetQuantity(dec("30")))

	assert.True(t, txn.SourceSplit().Quantity().Equal(dec("-30")))
	require.NoError(t, txn.CommitEdit())
}

func TestEnforcementOffSingleSplitStaysAlone(t *testing.T) {
	b := engine.NewBook(false, nil)

	txn := b.NewTransaction()
	require.NoError(t, txn.BeginEdit(false))
	require.NoError(t, txn.SourceSplit().SetQuantity(dec("99")))

	assert.Equal(t, 1, txn.CountSplits(),
		"no balancing split is created while enforcement is off")
	require.NoError(t, txn.CommitEdit())
}

func TestValueIsQuantityTimesPrice(t *testing.T) {
	b := engine.NewBook(false, nil)
	txn := b.NewTransaction()
	require.NoError(t, txn.BeginEdit(false))

	s := txn.SourceSplit()
	require.NoError(t, s.SetSharePriceAndQuantity(dec("4"), dec("25")))
	assert.True(t, s.Value().Equal(dec("100")))

	require.NoError(t, s.SetValue(dec("200")))
	assert.True(t, s.Quantity().Equal(dec("50")), "quantity derives from value through the price")
	assert.True(t, s.Value().Equal(dec("200")))
	require.NoError(t, txn.CommitEdit())
}
