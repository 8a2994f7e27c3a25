package service

import (
	"fmt"
	"strings"

	"github.com/tallybook/tally/internal/config"
	"github.com/tallybook/tally/internal/engine"
	"github.com/tallybook/tally/internal/journal"
	"github.com/tallybook/tally/internal/validation"
)

type AccountService struct {
	store  *journal.Store
	book   *engine.Book
	config *config.Config
}

func NewAccountService(store *journal.Store, book *engine.Book, cfg *config.Config) *AccountService {
	return &AccountService{store: store, book: book, config: cfg}
}

// CreateAccount registers an account in both the persistent registry
// and the live book. An empty currency falls back to the configured
// default; security is empty for plain currency accounts.
func (as *AccountService) CreateAccount(name, currency, security string) (*engine.Account, error) {
	if err := validation.ValidateAccountName(name); err != nil {
		return nil, err
	}

	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" {
		currency = as.config.Defaults.Currency
	}
	if err := validation.ValidateCurrency(currency); err != nil {
		return nil, err
	}

	security = strings.ToUpper(strings.TrimSpace(security))

	if _, err := as.store.CreateAccount(name, currency, security); err != nil {
		return nil, err
	}

	acc, err := as.book.NewAccount(name, currency, security)
	if err != nil {
		return nil, err
	}

	return acc, nil
}

func (as *AccountService) GetAllAccounts() []*engine.Account {
	return as.book.Accounts()
}

func (as *AccountService) GetAccountByName(name string) (*engine.Account, error) {
	acc := as.book.Account(name)
	if acc == nil {
		return nil, fmt.Errorf("account %q: %w", name, journal.ErrRecordNotFound)
	}
	return acc, nil
}

func (as *AccountService) CheckAccountExists(name string) bool {
	return as.book.Account(name) != nil
}
