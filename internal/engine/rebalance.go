package engine

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// sumValue totals the value of every split except skip, each expressed
// in the base unit.
func (t *Transaction) sumValue(skip *Split, base string) (decimal.Decimal, error) {
	total := decimal.Zero

	for _, s := range t.splits {
		if s == skip {
			continue
		}

		if s.acc == nil {
			if t.doubleEntry() {
				return decimal.Zero, fmt.Errorf("split %s: %w", s.ID, ErrNoAccount)
			}
			total = total.Add(s.quantity.Mul(s.price))
			continue
		}

		if base == "" && !t.doubleEntry() {
			total = total.Add(s.quantity.Mul(s.price))
			continue
		}

		switch {
		case base == s.acc.currency:
			total = total.Add(s.quantity.Mul(s.price))
		case s.acc.security != "" && base == s.acc.security:
			total = total.Add(s.quantity)
		default:
			return decimal.Zero, fmt.Errorf("base %q against account %q: %w",
				base, s.acc.name, ErrNoCommonCurrency)
		}
	}

	return total, nil
}

// Rebalance forces the zero-sum invariant starting from the source
// split.
func (t *Transaction) Rebalance() error {
	if t == nil || len(t.splits) == 0 {
		return nil
	}
	return t.splits[0].rebalance()
}

// rebalance recomputes the transaction so that its splits net to zero,
// pushing the imbalance onto the designated counterpart of the
// triggering split. It is a no-op while the transaction or the
// triggering split's account defers rebalancing.
func (s *Split) rebalance() error {
	t := s.parent

	// Someone may be manipulating a split that has not been inserted
	// into a transaction yet; nothing to balance.
	if t == nil {
		return nil
	}
	if t.poisoned {
		return ErrPoisoned
	}
	if t.state == StateOpenDeferred {
		return nil
	}
	if s.acc != nil && s.acc.deferRebalance {
		return nil
	}

	// The triggering split's account anchors the currency resolution;
	// an account-less split falls back to the source split's anchor.
	anchor := s
	if anchor.acc == nil {
		anchor = t.splits[0]
	}
	base, err := t.commonCurrency(anchor)
	if err != nil {
		t.poison()
		return err
	}

	if s == t.splits[0] {
		if len(t.splits) > 1 {
			// Force the first destination split to absorb the whole
			// remaining imbalance.
			dest := t.splits[1]
			total, err := t.sumValue(dest, base)
			if err != nil {
				t.poison()
				return err
			}
			if err := dest.SetBaseValue(total.Neg(), base); err != nil {
				t.poison()
				return err
			}
			dest.markAccountChanged()
			dest.acc.RecomputeBalance()
			return nil
		}

		// No destination split. A lone split with zero value is legal:
		// it records a price without affecting balance. Otherwise,
		// under enforcement, create the balancing split ourselves,
		// mirroring memo and action, in the same account as the
		// source.
		if t.doubleEntry() && !s.quantity.IsZero() {
			value := s.quantity.Mul(s.price)

			bal := NewSplit()
			bal.quantity = value.Neg()
			bal.memo = s.memo
			bal.action = s.action

			s.acc.InsertSplit(bal)
			bal.markAccountChanged()
			if err := t.AppendSplit(bal); err != nil {
				return err
			}
		}
		return nil
	}

	// The triggering split is a destination: total up everything but
	// the source split and force the source to balance it.
	src := t.splits[0]
	total, err := t.sumValue(src, base)
	if err != nil {
		t.poison()
		return err
	}
	if err := src.SetBaseValue(total.Neg(), base); err != nil {
		t.poison()
		return err
	}
	src.markAccountChanged()
	src.acc.RecomputeBalance()
	return nil
}
