// Package vm runs a compiled inst.Program against an input string
// using the bounded backtracking algorithm described in spec.md §4.6:
// an explicit LIFO thread stack, per-step memoization, and statistics
// collection.
//
// Grounded on backtrack.c's backtrack(); the thread-stack loop, memo
// check, and dispatch switch all mirror it directly. The original
// only dispatches Char/Any/Match/Jmp/Split/Save; per spec.md §4.6's
// note that "an implementation must either extend dispatch
// symmetrically or fail fast", this VM extends it to the remaining
// opcodes the compiler emits (CharClass, StringCompare, SplitMany,
// InlineZeroWidthAssertion, Recursive*) rather than failing on them.
package vm

import (
	"fmt"

	"github.com/jdavis-research/memoregex/capture"
	"github.com/jdavis-research/memoregex/inst"
	"github.com/jdavis-research/memoregex/memo"
	"github.com/jdavis-research/memoregex/rlevec"
	"github.com/jdavis-research/memoregex/stats"
)

// Config bounds the VM's resource usage. The original hardcodes the
// thread-stack capacity at 1000; here it's a configurable field with
// that same default, per spec.md §9's resolution of that design note.
type Config struct {
	MaxThreads int

	// MaxLookaheadDepth bounds nested RecursiveZeroWidthAssertion
	// evaluation. Each lookahead evaluated inside another lookahead's
	// sub-search adds one level; sibling lookaheads are evaluated one
	// after another at the same level. It guards against runaway
	// recursion rather than expressing a real semantic limit.
	MaxLookaheadDepth int
}

// DefaultConfig returns the original's thread-stack capacity of 1000.
func DefaultConfig() Config {
	return Config{MaxThreads: 1000, MaxLookaheadDepth: 10000}
}

// Result is the outcome of one Run.
type Result struct {
	Matched bool

	// Groups[0] is the whole-match span; Groups[i] for i >= 1 is
	// capture group i. An unbound group (never reached, or inside an
	// alternative branch that wasn't taken) is (-1, -1).
	Groups [][2]int

	Stats *stats.Report
}

type thread struct {
	pc, sp int
	sub    *capture.Sub
}

type machine struct {
	prog       *inst.Program
	input      string
	visits     [][]int
	memoTable  memo.Table
	maxThreads int
	maxDepth   int
}

// Run simulates prog against input and returns the match result plus
// the statistics report described in spec.md §4.8.
func Run(prog *inst.Program, input string, cfg Config) (*Result, error) {
	if cfg.MaxThreads <= 0 {
		cfg.MaxThreads = DefaultConfig().MaxThreads
	}
	if cfg.MaxLookaheadDepth <= 0 {
		cfg.MaxLookaheadDepth = DefaultConfig().MaxLookaheadDepth
	}

	inputLen := len(input)
	visits := make([][]int, prog.Len())
	for i := range visits {
		visits[i] = make([]int, inputLen+1)
	}

	var table memo.Table
	var sparse *memo.Sparse
	var rleTable *memo.RLE

	switch prog.MemoEncoding {
	case inst.EncodingNone:
		// ENCODING_NONE (spec.md §4.7): the dense 2-D byte array. Only
		// allocate it when a memo mode is actually selecting vertices;
		// MemoNone+EncodingNone means no memoization at all.
		if prog.MemoMode != inst.MemoNone {
			table = memo.NewDense(prog.NMemoizedStates, inputLen)
		}
	case inst.EncodingNegative:
		sparse = memo.NewSparse()
		table = sparse
	case inst.EncodingRLE:
		ks := make([]int, prog.NMemoizedStates)
		for i := range ks {
			ks[i] = 1
		}
		rleTable = memo.NewRLE(prog.NMemoizedStates, inputLen, ks)
		table = rleTable
	case inst.EncodingRLETuned:
		ks := make([]int, prog.NMemoizedStates)
		for _, in := range prog.Instructions {
			if in.MemoInfo.MemoStateNum >= 0 {
				ks[in.MemoInfo.MemoStateNum] = in.MemoInfo.VisitInterval
			}
		}
		rleTable = memo.NewRLE(prog.NMemoizedStates, inputLen, ks)
		table = rleTable
	}

	m := &machine{
		prog:       prog,
		input:      input,
		visits:     visits,
		memoTable:  table,
		maxThreads: cfg.MaxThreads,
		maxDepth:   cfg.MaxLookaheadDepth,
	}

	numGroups := maxCaptureIndex(prog)
	nsub := 2 * (numGroups + 1)
	if nsub > capture.MaxSub {
		return nil, fmt.Errorf("vm: pattern has %d capture groups, exceeds capture.MaxSub/2-1", numGroups)
	}
	sub0 := capture.New(nsub)

	ok, finalSub, endSP, err := m.run(0, 0, sub0, -1, 0)
	if err != nil {
		return nil, err
	}

	groups := make([][2]int, numGroups+1)
	for i := range groups {
		groups[i] = [2]int{-1, -1}
	}
	if ok {
		groups[0] = [2]int{0, endSP}
		for i := 1; i <= numGroups; i++ {
			lo, hi := finalSub.Slots[2*i], finalSub.Slots[2*i+1]
			if lo != capture.Unset && hi != capture.Unset {
				groups[i] = [2]int{lo, hi}
			}
		}
	}

	var extra stats.MemoExtra
	if sparse != nil {
		extra.NegativeHashCount = sparse.Count()
	}
	if rleTable != nil {
		vecs := make([]*rlevec.Vector, prog.NMemoizedStates)
		for i := range vecs {
			vecs[i] = rleTable.Vector(i)
		}
		extra.RLEVectors = vecs
	}
	report := stats.Build(prog, inputLen, visits, extra)

	return &Result{Matched: ok, Groups: groups, Stats: report}, nil
}

// maxCaptureIndex returns the highest capture-group index any Save
// instruction writes to (0 if the program has none), derived from
// Save's slot numbers (group i writes slots 2i and 2i+1).
func maxCaptureIndex(prog *inst.Program) int {
	max := 0
	for _, in := range prog.Instructions {
		if in.Opcode == inst.OpSave && in.N/2 > max {
			max = in.N / 2
		}
	}
	return max
}

// findMatchingRecursiveMatch scans forward from a
// RecursiveZeroWidthAssertion at index start for its closing
// RecursiveMatch. Nested lookaheads aren't supported (mirrors
// analyze.AssertNoInfiniteLoops's matching assumption), so the first
// RecursiveMatch found is always the right one.
func findMatchingRecursiveMatch(prog *inst.Program, start int) int {
	i := start
	for prog.Instructions[i].Opcode != inst.OpRecursiveMatch {
		i++
	}
	return i
}

// run executes the thread-stack simulation starting from (startPC,
// startSP, sub). If stopPC >= 0, reaching that instruction counts as
// success (used for a lookahead's nested sub-search); otherwise
// success is reaching OpMatch. depth tracks lookahead nesting.
func (m *machine) run(startPC, startSP int, sub *capture.Sub, stopPC int, depth int) (bool, *capture.Sub, int, error) {
	stack := make([]thread, 0, 16)
	stack = append(stack, thread{startPC, startSP, sub})

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		pc, sp, cur := top.pc, top.sp, top.sub

	step:
		for {
			if stopPC >= 0 && pc == stopPC {
				capture.Decref(cur)
				return true, cur, sp, nil
			}

			in := &m.prog.Instructions[pc]

			if m.memoTable != nil && in.MemoInfo.MemoStateNum >= 0 {
				q := in.MemoInfo.MemoStateNum
				if m.memoTable.IsMarked(q, sp) {
					goto dead
				}
				m.memoTable.Mark(q, sp)
			}

			m.visits[pc][sp]++

			switch in.Opcode {
			case inst.OpChar:
				if sp >= len(m.input) || m.input[sp] != in.C {
					goto dead
				}
				pc++
				sp++
				continue step

			case inst.OpAny:
				if sp >= len(m.input) {
					goto dead
				}
				pc++
				sp++
				continue step

			case inst.OpCharClass:
				if sp >= len(m.input) {
					goto dead
				}
				c := m.input[sp]
				hit := false
				for _, r := range in.CharRanges {
					if r.Contains(c) {
						hit = true
						break
					}
				}
				if in.Invert {
					hit = !hit
				}
				if !hit {
					goto dead
				}
				pc++
				sp++
				continue step

			case inst.OpStringCompare:
				lo, hi := cur.Slots[2*in.CgNum], cur.Slots[2*in.CgNum+1]
				if lo == capture.Unset || hi == capture.Unset {
					pc++
					continue step
				}
				n := hi - lo
				if n < 0 || sp+n > len(m.input) || m.input[sp:sp+n] != m.input[lo:hi] {
					goto dead
				}
				pc++
				sp += n
				continue step

			case inst.OpMatch:
				if stopPC >= 0 {
					goto dead
				}
				return true, cur, sp, nil

			case inst.OpJmp:
				pc = in.X
				continue step

			case inst.OpSplit:
				if len(stack) >= m.maxThreads {
					return false, nil, 0, ErrThreadStackOverflow
				}
				stack = append(stack, thread{in.Y, sp, capture.Incref(cur)})
				pc = in.X
				continue step

			case inst.OpSplitMany:
				if len(in.Edges) == 0 {
					goto dead
				}
				for k := len(in.Edges) - 1; k >= 1; k-- {
					if len(stack) >= m.maxThreads {
						return false, nil, 0, ErrThreadStackOverflow
					}
					stack = append(stack, thread{in.Edges[k], sp, capture.Incref(cur)})
				}
				pc = in.Edges[0]
				continue step

			case inst.OpSave:
				cur = capture.Update(cur, in.N, sp)
				pc++
				continue step

			case inst.OpInlineZeroWidthAssertion:
				ok := false
				switch in.C {
				case '^':
					ok = sp == 0
				case '$':
					ok = sp == len(m.input)
				}
				if !ok {
					goto dead
				}
				pc++
				continue step

			case inst.OpRecursiveZeroWidthAssertion:
				if depth+1 > m.maxDepth {
					return false, nil, 0, ErrRecursionTooDeep
				}
				stopIdx := findMatchingRecursiveMatch(m.prog, pc)
				ok, _, _, err := m.run(pc+1, sp, capture.Incref(cur), stopIdx, depth+1)
				if err != nil {
					return false, nil, 0, err
				}
				if !ok {
					goto dead
				}
				pc = stopIdx + 1
				continue step

			case inst.OpRecursiveMatch:
				goto dead

			default:
				return false, nil, 0, &inst.OpcodeError{StateNum: pc, Opcode: in.Opcode}
			}
		}

	dead:
		capture.Decref(cur)
	}

	return false, nil, 0, nil
}
