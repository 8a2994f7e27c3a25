package app

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/tallybook/tally/internal/config"
	"github.com/tallybook/tally/internal/engine"
	"github.com/tallybook/tally/internal/journal"
	"github.com/tallybook/tally/internal/service"
)

type App struct {
	Service     *service.Service
	Book        *engine.Book
	Store       *journal.Store
	JournalPath string
}

// NewApp opens the journal store, rebuilds the in-memory book from the
// journal, and wires the service layer on top.
func NewApp(cfg *config.Config, migrationFS fs.FS) (*App, func(), error) {
	dbPathRaw := cfg.Journal.Path

	if dbPathRaw == "" {
		appDir, _ := getAppDataDir()
		dbPathRaw = filepath.Join(appDir, "tally.db")
	}

	store, err := journal.NewStore(dbPathRaw, migrationFS)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize journal store: %w", err)
	}

	// Replay runs against a silent journal so the records being read
	// are not re-emitted; the store is attached once the book is live.
	book := engine.NewBook(cfg.Ledger.DoubleEntry, engine.NopJournal{})
	if err := service.Replay(book, store); err != nil {
		store.Close()
		return nil, nil, fmt.Errorf("failed to replay journal: %w", err)
	}
	book.SetJournal(store)

	svc := service.NewService(store, book, cfg)

	cleanup := func() {
		if err := store.Close(); err != nil {
			fmt.Printf("Error closing journal store: %v\n", err)
		}
	}

	return &App{
		Service:     svc,
		Book:        book,
		Store:       store,
		JournalPath: dbPathRaw,
	}, cleanup, nil
}

func getAppDataDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("unable to determine user home directory: %w", err)
		}
		return filepath.Join(home, ".tally"), nil
	}

	return filepath.Join(configDir, "tally"), nil
}
