package memo

import "github.com/jdavis-research/memoregex/rlevec"

// RLE is the ENCODING_RLE / ENCODING_RLE_TUNED memo table: one
// run-length-encoded bit vector per memoized state, each of logical
// length inputLen+1. Under RLE_TUNED, each state's vector uses that
// state's own group width (inst.Instruction.MemoInfo.VisitInterval)
// rather than a uniform k=1.
type RLE struct {
	vecs []*rlevec.Vector
}

// NewRLE allocates an RLE table for nStates memoized states over an
// input of length inputLen. ks[q] is the group width for state q
// (pass a slice of all 1s for plain ENCODING_RLE).
func NewRLE(nStates, inputLen int, ks []int) *RLE {
	width := inputLen + 1
	t := &RLE{vecs: make([]*rlevec.Vector, nStates)}
	for q := 0; q < nStates; q++ {
		k := 1
		if q < len(ks) && ks[q] > 0 {
			k = ks[q]
		}
		t.vecs[q] = rlevec.New(width, k)
	}
	return t
}

func (t *RLE) IsMarked(q, i int) bool {
	return t.vecs[q].Get(i) != 0
}

func (t *RLE) Mark(q, i int) {
	t.vecs[q].Set(i)
}

// Vector exposes the underlying per-state run-length vector, for the
// current/maximum run-count statistics spec.md §4.8 requires.
func (t *RLE) Vector(q int) *rlevec.Vector { return t.vecs[q] }
