package engine

import "strings"

// TransOrder is the canonical total order over transactions: presence
// first (a present transaction sorts before an absent one), then
// posted-time seconds, then sub-second precision, then the num and
// description fields lexicographically. Establishing an absolute order
// matters for deterministic ledger display and incremental
// running-balance computation.
func TransOrder(a, b *Transaction) int {
	if a != nil && b == nil {
		return -1
	}
	if a == nil && b != nil {
		return +1
	}
	if a == nil && b == nil {
		return 0
	}

	as, bs := a.datePosted.Unix(), b.datePosted.Unix()
	if as < bs {
		return -1
	}
	if as > bs {
		return +1
	}

	an, bn := a.datePosted.Nanosecond(), b.datePosted.Nanosecond()
	if an < bn {
		return -1
	}
	if an > bn {
		return +1
	}

	if c := strings.Compare(a.num, b.num); c != 0 {
		return c
	}
	return strings.Compare(a.description, b.description)
}

// SplitOrder orders splits by their parent transactions first, then
// breaks ties on memo and action.
func SplitOrder(a, b *Split) int {
	if a != nil && b == nil {
		return -1
	}
	if a == nil && b != nil {
		return +1
	}
	if a == nil && b == nil {
		return 0
	}

	if c := TransOrder(a.parent, b.parent); c != 0 {
		return c
	}
	if c := strings.Compare(a.memo, b.memo); c != 0 {
		return c
	}
	return strings.Compare(a.action, b.action)
}
