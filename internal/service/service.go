package service

import (
	"github.com/tallybook/tally/internal/config"
	"github.com/tallybook/tally/internal/engine"
	"github.com/tallybook/tally/internal/journal"
)

type Service struct {
	Account     *AccountService
	Transaction *TransactionService
}

func NewService(store *journal.Store, book *engine.Book, cfg *config.Config) *Service {
	return &Service{
		Account:     NewAccountService(store, book, cfg),
		Transaction: NewTransactionService(store, book, cfg),
	}
}
