package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tallybook/tally/internal/engine"
)

func TestBaseValueConversions(t *testing.T) {
	b := engine.NewBook(true, nil)
	brokerage := mustAccount(t, b, "Assets:Brokerage", "USD", "ACME")

	s := engine.NewSplit()
	brokerage.InsertSplit(s)
	require.NoError(t, s.SetSharePriceAndQuantity(dec("4"), dec("25")))

	// in the account currency the value goes through the price
	v, err := s.BaseValue("USD")
	require.NoError(t, err)
	assert.True(t, v.Equal(dec("100")))

	// in the security unit the value is the bare quantity
	v, err = s.BaseValue("ACME")
	require.NoError(t, err)
	assert.True(t, v.Equal(dec("25")))

	_, err = s.BaseValue("JPY")
	assert.ErrorIs(t, err, engine.ErrBaseCurrencyMismatch)
}

func TestSetBaseValue(t *testing.T) {
	b := engine.NewBook(true, nil)
	brokerage := mustAccount(t, b, "Assets:Brokerage", "USD", "ACME")

	s := engine.NewSplit()
	brokerage.InsertSplit(s)
	require.NoError(t, s.SetSharePrice(dec("4")))

	require.NoError(t, s.SetBaseValue(dec("100"), "USD"))
	assert.True(t, s.Quantity().Equal(dec("25")), "currency value divides through the price")

	require.NoError(t, s.SetBaseValue(dec("30"), "ACME"))
	assert.True(t, s.Quantity().Equal(dec("30")), "security value is the quantity itself")

	err := s.SetBaseValue(dec("1"), "JPY")
	assert.ErrorIs(t, err, engine.ErrBaseCurrencyMismatch)
}

func TestBaseValueWithoutAccount(t *testing.T) {
	// enforcement off: an account-less split converts through its
	// price unconditionally
	s := engine.NewSplit()
	require.NoError(t, s.SetSharePrice(dec("2")))
	require.NoError(t, s.SetBaseValue(dec("10"), ""))
	assert.True(t, s.Quantity().Equal(dec("5")))

	v, err := s.BaseValue("")
	require.NoError(t, err)
	assert.True(t, v.Equal(dec("10")))
}

func TestBaseValueNoAccountUnderEnforcement(t *testing.T) {
	b := engine.NewBook(true, nil)
	txn := b.NewTransaction()
	require.NoError(t, txn.BeginEdit(false))

	s := txn.SourceSplit() // parented, enforcement on, but no account
	err := s.SetBaseValue(dec("10"), "USD")
	assert.ErrorIs(t, err, engine.ErrNoAccount)

	_, err = s.BaseValue("USD")
	assert.ErrorIs(t, err, engine.ErrNoAccount)
	require.NoError(t, txn.CommitEdit())
}

func TestSecurityPreferenceNarrowing(t *testing.T) {
	// two securities accounts trading the same security in different
	// currencies resolve to the shared security unit
	b := engine.NewBook(true, nil)
	usd := mustAccount(t, b, "Assets:US", "USD", "ACME")
	eur := mustAccount(t, b, "Assets:EU", "EUR", "ACME")

	txn := b.NewTransaction()
	require.NoError(t, txn.BeginEdit(false))
	usd.InsertSplit(txn.SourceSplit())

	leg := engine.NewSplit()
	eur.InsertSplit(leg)
	require.NoError(t, txn.AppendSplit(leg))
	require.NoError(t, leg.SetQuantity(dec("40")))

	// the only common unit is ACME, so both legs contribute bare
	// quantities
	assert.True(t, txn.SourceSplit().Quantity().Equal(dec("-40")))

	total := dec("0")
	for _, s := range txn.Splits() {
		v, err := s.BaseValue("ACME")
		require.NoError(t, err)
		total = total.Add(v)
	}
	assert.True(t, total.IsZero())
	require.NoError(t, txn.CommitEdit())
}
