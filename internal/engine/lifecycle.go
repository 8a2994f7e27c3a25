package engine

import "fmt"

// BeginEdit opens an edit session on the transaction. With deferRebal
// set, field changes accumulate without triggering the rebalancer
// until commit. A Begin record is written to the journal.
func (t *Transaction) BeginEdit(deferRebal bool) error {
	if t == nil {
		return nil
	}
	if t.poisoned {
		return ErrPoisoned
	}
	if t.state != StateClosed {
		return ErrAlreadyOpen
	}

	if deferRebal {
		t.state = StateOpenDeferred
	} else {
		t.state = StateOpen
	}

	j := t.journal()
	if err := j.OpenLog(); err == nil {
		j.WriteRecord(t, OpBegin)
	}
	return nil
}

// CommitEdit closes the edit session: the deferred flag is cleared,
// the transaction is rebalanced from its source split, every split is
// verified (and if necessary repositioned) into date order within its
// account, the touched accounts recompute their balances, and a Commit
// record is journaled.
func (t *Transaction) CommitEdit() error {
	if t == nil {
		return nil
	}
	if t.poisoned {
		return ErrPoisoned
	}
	if t.state == StateClosed {
		return ErrNotOpen
	}

	t.state = StateOpen
	if err := t.Rebalance(); err != nil {
		return fmt.Errorf("commit rebalance: %w", err)
	}

	// Splits should already be in order, but the date may have changed
	// mid-session; reposition rather than trust.
	for _, s := range t.splits {
		s.acc.CheckDateOrder(s)
	}
	for _, s := range t.splits {
		s.acc.RecomputeBalance()
	}

	t.state = StateClosed
	t.journal().WriteRecord(t, OpCommit)
	return nil
}

// Destroy tears the transaction down: a Destroy record is journaled,
// every split is detached from its account (with a balance recompute),
// and the transaction and all its splits become unusable. Destroy is a
// teardown, not an abort: it never restores prior field values.
func (t *Transaction) Destroy() error {
	if t == nil {
		return nil
	}
	if t.state == StateClosed {
		return ErrNotOpen
	}

	t.journal().WriteRecord(t, OpDestroy)

	for _, s := range t.splits {
		s.markAccountChanged()
		acc := s.acc
		acc.RemoveSplit(s)
		acc.RecomputeBalance()
	}
	t.free()
	return nil
}

// free releases the transaction's splits and poisons the carcass so
// stale references fail loudly instead of corrupting state.
func (t *Transaction) free() {
	for _, s := range t.splits {
		s.parent = nil
	}
	t.splits = nil
	t.state = StateClosed
	t.poisoned = true
}

// Destroy removes the split from its transaction. With more than two
// splits remaining the transaction shrinks in place and rebalances;
// with two or fewer the whole transaction is torn down, since a lone
// forced-balance split makes no sense.
func (s *Split) Destroy() error {
	if s == nil {
		return nil
	}
	t := s.parent
	if t == nil {
		return ErrNotMember
	}
	if t.poisoned {
		return ErrPoisoned
	}
	if t.state == StateClosed {
		return ErrNotOpen
	}

	member := false
	for _, held := range t.splits {
		held.markAccountChanged()
		if held == s {
			member = true
		}
	}
	if !member {
		// The split names a parent that does not hold it; the
		// structure is corrupt and must not be mutated further.
		t.poison()
		return fmt.Errorf("split %s names transaction %s: %w", s.ID, t.ID, ErrNotMember)
	}

	if len(t.splits) > 2 {
		s.markAccountChanged()
		t.removeSplit(s)
		acc := s.acc
		acc.RemoveSplit(s)
		acc.RecomputeBalance()
		return t.Rebalance()
	}

	t.journal().WriteRecord(t, OpDestroy)

	for _, held := range t.splits {
		held.markAccountChanged()
		acc := held.acc
		acc.RemoveSplit(held)
		acc.RecomputeBalance()
	}
	t.free()
	return nil
}
