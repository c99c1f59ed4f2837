// Package capture implements the reference-counted, copy-on-write
// capture-group slot array shared between backtracking VM threads.
//
// Grounded on backtrack.c's Sub/newsub/incref/copy/update/decref and
// regexp.h's MAXSUB.
package capture

// MaxSub is the maximum number of capture-group slot entries a single
// Sub can hold (10 groups, each a start/end pair).
const MaxSub = 20

// Unset is the sentinel offset meaning "this slot has not been written."
const Unset = -1

// Sub is an immutable-from-the-outside, reference-counted snapshot of
// capture-group boundaries. Multiple VM threads created by a Split may
// share one Sub; Update clones it on write only when it is shared.
type Sub struct {
	ref   int
	Nsub  int
	Slots [MaxSub]int
}

// New returns a fresh Sub with all nsub slots unset and a single
// reference.
func New(nsub int) *Sub {
	s := &Sub{ref: 1, Nsub: nsub}
	for i := 0; i < nsub; i++ {
		s.Slots[i] = Unset
	}
	return s
}

// Incref increments the reference count and returns s, for use at
// call sites that hand the same Sub to a second thread (e.g. Split's
// alternate branch).
func Incref(s *Sub) *Sub {
	s.ref++
	return s
}

// Decref decrements the reference count. The Go runtime reclaims the
// Sub once nothing references it; Decref exists to keep the refcount
// accurate for debugging and to mirror the original's explicit
// lifecycle, not because Go needs it to free memory.
func Decref(s *Sub) {
	if s.ref > 0 {
		s.ref--
	}
}

// Ref reports the current reference count (for tests and diagnostics).
func (s *Sub) Ref() int { return s.ref }

// Update sets slot i to v, returning a Sub with the update applied.
// If s is uniquely referenced the slot is mutated in place; otherwise
// a private clone is made first (copy-on-write), and s's own refcount
// is decremented since the caller's reference is superseded by the
// clone's.
func Update(s *Sub, i, v int) *Sub {
	if s.ref > 1 {
		clone := &Sub{ref: 1, Nsub: s.Nsub, Slots: s.Slots}
		s.ref--
		clone.Slots[i] = v
		return clone
	}
	s.Slots[i] = v
	return s
}
