package engine

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// commonCurrency resolves the single currency or security shared by
// every split of the transaction, anchored on the given split's
// account.
//
// The anchor's (currency, security) pair starts as two candidate
// units. Every other account-bearing split knocks out the candidate
// that matches neither of its own units; when both candidates die the
// set collapses and resolution fails. The currency slot is preferred:
// whenever the currency candidate is dropped the security candidate is
// promoted into its place.
func (t *Transaction) commonCurrency(anchor *Split) (string, error) {
	if anchor == nil || anchor.acc == nil {
		return "", nil
	}

	ca := anchor.acc.currency
	cb := anchor.acc.security

	for _, s := range t.splits {
		if s.acc == nil {
			if t.doubleEntry() {
				return "", fmt.Errorf("split %s: %w", s.ID, ErrNoAccount)
			}
			continue
		}

		sa := s.acc.currency
		sb := s.acc.security

		if ca != "" && cb != "" {
			aa := ca == sa
			ab := sb != "" && ca == sb
			ba := cb == sa
			bb := sb != "" && cb == sb

			switch {
			case aa && !bb:
				cb = ""
			case ab && !ba:
				cb = ""
			case ba && !ab:
				ca = ""
			case bb && !aa:
				ca = ""
			case !aa && !ab && !ba && !bb:
				ca, cb = "", ""
			}
			if ca == "" {
				ca, cb = cb, ""
			}
		} else if ca != "" {
			if ca != sa && (sb == "" || ca != sb) {
				ca = ""
			}
		}

		if ca == "" && cb == "" {
			// Without enforcement, mixed-unit transactions are legal:
			// fall back to the empty base, which sums and assigns
			// values as quantity times price.
			if !t.doubleEntry() {
				return "", nil
			}
			return "", fmt.Errorf("account %q (currency=%q security=%q) vs account %q (currency=%q security=%q): %w",
				anchor.acc.name, anchor.acc.currency, anchor.acc.security,
				s.acc.name, s.acc.currency, s.acc.security,
				ErrNoCommonCurrency)
		}
	}

	return ca, nil
}

// SetBaseValue writes a value expressed in the given base unit into
// the split's internal (quantity, price) representation. A value in
// the account's currency divides through the share price; a value in
// the account's security is the share quantity itself.
func (s *Split) SetBaseValue(value decimal.Decimal, base string) error {
	if s == nil {
		return nil
	}

	// A split without an account is tolerated as long as double-entry
	// enforcement is off; the value then converts through the price
	// unconditionally.
	if s.acc == nil {
		if s.doubleEntry() {
			return fmt.Errorf("split %s: %w", s.ID, ErrNoAccount)
		}
		s.quantity = value.Div(s.unitPrice())
		return nil
	}

	switch {
	case base == s.acc.currency:
		s.quantity = value.Div(s.unitPrice())
	case s.acc.security != "" && base == s.acc.security:
		s.quantity = value
	case base == "" && !s.doubleEntry():
		s.quantity = value.Div(s.unitPrice())
	default:
		return fmt.Errorf("base %q against account %q (currency=%q security=%q): %w",
			base, s.acc.name, s.acc.currency, s.acc.security, ErrBaseCurrencyMismatch)
	}
	return nil
}

// BaseValue returns the split's value expressed in the given base
// unit.
func (s *Split) BaseValue(base string) (decimal.Decimal, error) {
	if s == nil {
		return decimal.Zero, nil
	}

	if s.acc == nil {
		if s.doubleEntry() {
			return decimal.Zero, fmt.Errorf("split %s: %w", s.ID, ErrNoAccount)
		}
		return s.quantity.Mul(s.price), nil
	}

	switch {
	case base == s.acc.currency:
		return s.quantity.Mul(s.price), nil
	case s.acc.security != "" && base == s.acc.security:
		return s.quantity, nil
	case base == "" && !s.doubleEntry():
		return s.quantity.Mul(s.price), nil
	}
	return decimal.Zero, fmt.Errorf("base %q against account %q (currency=%q security=%q): %w",
		base, s.acc.name, s.acc.currency, s.acc.security, ErrBaseCurrencyMismatch)
}
