// Package memo implements the three interchangeable memo-table
// encodings described in spec.md §4.7, all satisfying the same
// Table interface so the VM can be written once against it.
package memo

// Table tracks which (memoized-state, offset) pairs have already been
// visited during a backtracking search.
type Table interface {
	// IsMarked reports whether (q, i) has already been visited.
	IsMarked(q, i int) bool
	// Mark records (q, i) as visited. Marking an already-marked cell
	// twice is a non-fatal consistency warning (spec.md §7), not an
	// error; implementations may simply treat it as a no-op.
	Mark(q, i int)
}
