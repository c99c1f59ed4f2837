// Package inst defines the compiled instruction set the compile package
// emits and the vm package executes.
package inst

// Opcode identifies a single VM instruction.
type Opcode int

const (
	OpChar Opcode = iota
	OpMatch
	OpJmp
	OpSplit
	OpAny
	OpSave
	OpCharClass
	OpStringCompare
	OpSplitMany
	OpInlineZeroWidthAssertion
	OpRecursiveZeroWidthAssertion
	OpRecursiveMatch
)

func (o Opcode) String() string {
	switch o {
	case OpChar:
		return "char"
	case OpMatch:
		return "match"
	case OpJmp:
		return "jmp"
	case OpSplit:
		return "split"
	case OpAny:
		return "any"
	case OpSave:
		return "save"
	case OpCharClass:
		return "charclass"
	case OpStringCompare:
		return "stringcompare"
	case OpSplitMany:
		return "splitmany"
	case OpInlineZeroWidthAssertion:
		return "inlineZWA"
	case OpRecursiveZeroWidthAssertion:
		return "recursiveZWA"
	case OpRecursiveMatch:
		return "recursivematch"
	default:
		return "unknown"
	}
}

// CharRange is an inclusive byte range used by CharClass instructions.
type CharRange struct {
	Lo, Hi byte
}

func (r CharRange) Contains(c byte) bool { return c >= r.Lo && c <= r.Hi }

// MemoInfo carries the memoization metadata the analyze package
// assigns to a single instruction, per spec.md §3.
type MemoInfo struct {
	ShouldMemo bool
	// MemoStateNum is -1 if this vertex is not memoized, else a dense
	// index into the memo table (0..NMemoizedStates-1).
	MemoStateNum int
	// VisitInterval is the RLE group width (k) for this vertex; only
	// meaningful under the RLE_TUNED encoding. Always >= 1.
	VisitInterval int
}

// Instruction is one vertex of the compiled program.
type Instruction struct {
	Opcode Opcode

	C byte // OpChar: literal byte to match
	N int  // OpSave: slot index

	// X, Y are outgoing edge targets, expressed as indices into the
	// owning Program's Instructions slice. Opcodes that do not use them
	// leave them at 0.
	X, Y int

	// Edges holds the branch targets for OpSplitMany.
	Edges []int

	// CharRanges and Invert describe an OpCharClass instruction.
	CharRanges []CharRange
	Invert     bool

	// CgNum is the capture-group number for OpStringCompare.
	CgNum int

	// StateNum is this instruction's own index; always equal to its
	// position in Program.Instructions after compilation.
	StateNum int

	MemoInfo MemoInfo
	InDegree int

	// StartMark/VisitMark are scratch flags used only by the
	// epsilon-closure loop check (analyze.AssertNoInfiniteLoops).
	StartMark bool
	VisitMark bool
}

// MemoMode selects which vertices of a Program are memoized.
type MemoMode int

const (
	MemoNone MemoMode = iota
	MemoFull
	MemoInDegreeGT1
	MemoLoopDest
)

func (m MemoMode) String() string {
	switch m {
	case MemoNone:
		return "NONE"
	case MemoFull:
		return "ALL"
	case MemoInDegreeGT1:
		return "INDEG>1"
	case MemoLoopDest:
		return "LOOP"
	default:
		return "UNKNOWN"
	}
}

// MemoEncoding selects how the VM stores the memo set.
type MemoEncoding int

const (
	EncodingNone MemoEncoding = iota
	EncodingNegative
	EncodingRLE
	EncodingRLETuned
)

func (e MemoEncoding) String() string {
	switch e {
	case EncodingNone:
		return "NONE"
	case EncodingNegative:
		return "NEGATIVE"
	case EncodingRLE:
		return "RLE"
	case EncodingRLETuned:
		return "RLE_TUNED"
	default:
		return "UNKNOWN"
	}
}

// Program is the compiled instruction sequence produced by compile.Compile.
//
// Invariant: state numbers are 0..len(Instructions)-1 in program order;
// every edge target is a valid state number; the last instruction is
// OpMatch.
type Program struct {
	Instructions []Instruction

	MemoMode        MemoMode
	MemoEncoding    MemoEncoding
	NMemoizedStates int

	EOLAnchor bool
}

func (p *Program) Len() int { return len(p.Instructions) }
