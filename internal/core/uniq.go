package core

import "fmt"

// UniqueCounter is the monotonic integer source used by the Case
// Normalizer to generate fresh local names (of the form "match<k>").
// Single-threaded per spec.md §5: no internal synchronization.
type UniqueCounter struct {
	next uint64
}

// NewUniqueCounter returns a counter starting at zero.
func NewUniqueCounter() *UniqueCounter {
	return &UniqueCounter{}
}

// Next returns the next integer in the sequence.
func (u *UniqueCounter) Next() uint64 {
	n := u.next
	u.next++
	return n
}

// FreshMatchName returns a fresh local name of the form "match<k>" at the
// given type.
func (u *UniqueCounter) FreshMatchName(typ Type) TName {
	return NewLocal(fmt.Sprintf("match%d", u.Next()), typ)
}
