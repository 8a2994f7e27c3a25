package engine

import "errors"

var (
	// ErrNotOpen is returned when a mutation is attempted on a
	// transaction that has no active edit session.
	ErrNotOpen = errors.New("transaction is not open for editing")

	// ErrAlreadyOpen is returned by BeginEdit on a transaction that
	// already has an active edit session.
	ErrAlreadyOpen = errors.New("transaction is already open for editing")

	// ErrNotMember is returned when a split is mutated through a
	// transaction that does not actually hold it.
	ErrNotMember = errors.New("split is not a member of its parent transaction")

	// ErrNoAccount is returned when double-entry enforcement is active
	// and a split has no associated account.
	ErrNoAccount = errors.New("double-entry enforcement requires a split to have an account")

	// ErrNoCommonCurrency is returned when no single currency or
	// security is shared by every split of a transaction.
	ErrNoCommonCurrency = errors.New("no common currency among transaction splits")

	// ErrBaseCurrencyMismatch is returned when an explicit base unit
	// matches neither the split account's currency nor its security.
	ErrBaseCurrencyMismatch = errors.New("base currency matches neither account currency nor security")

	// ErrPoisoned marks a transaction that hit an invariant violation
	// and refuses further mutation.
	ErrPoisoned = errors.New("transaction is unusable after an invariant violation")

	// ErrAccountExists is returned by the book registry on duplicate
	// account names.
	ErrAccountExists = errors.New("account already exists")
)
