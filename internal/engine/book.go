// Package engine is the transactional core of a double-entry ledger:
// it owns the Split and Transaction data model, enforces the zero-sum
// invariant across currencies and securities, and brackets all
// mutation inside journal-backed edit sessions.
package engine

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
)

// Book is one ledger: an account registry plus the policy and journal
// shared by every transaction created through it. The double-entry
// switch is per-book configuration, not process-wide state.
type Book struct {
	doubleEntry bool
	journal     Journal
	accounts    map[string]*Account
}

// NewBook creates a ledger. A nil journal means records are discarded.
func NewBook(doubleEntry bool, j Journal) *Book {
	if j == nil {
		j = NopJournal{}
	}
	return &Book{
		doubleEntry: doubleEntry,
		journal:     j,
		accounts:    make(map[string]*Account),
	}
}

// SetJournal swaps the journal sink. Used to keep replay from
// re-emitting the records it is reading.
func (b *Book) SetJournal(j Journal) {
	if b == nil {
		return
	}
	if j == nil {
		j = NopJournal{}
	}
	b.journal = j
}

func (b *Book) DoubleEntry() bool {
	return b != nil && b.doubleEntry
}

// NewAccount registers an account under a unique name. The security
// unit may be empty for plain currency accounts.
func (b *Book) NewAccount(name, currency, security string) (*Account, error) {
	if _, ok := b.accounts[name]; ok {
		return nil, fmt.Errorf("account %q: %w", name, ErrAccountExists)
	}
	a := &Account{
		ID:       uuid.New(),
		name:     name,
		currency: currency,
		security: security,
		book:     b,
	}
	b.accounts[name] = a
	return a, nil
}

// Account looks an account up by name, nil when absent.
func (b *Book) Account(name string) *Account {
	if b == nil {
		return nil
	}
	return b.accounts[name]
}

// Accounts returns every account, sorted by name.
func (b *Book) Accounts() []*Account {
	if b == nil {
		return nil
	}
	out := make([]*Account, 0, len(b.accounts))
	for _, a := range b.accounts {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].name < out[j].name })
	return out
}
