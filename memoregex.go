// Package memoregex implements a memoized backtracking regular
// expression engine built to study the space/time tradeoffs of
// memoizing a backtracking NFA simulation, rather than to compete
// with a production regex engine on throughput.
//
// It matches patterns anchored at the start of the input (like
// running the pattern against a candidate string, not searching for
// it within a larger text): compile a pattern, then run it against a
// string.
//
// Basic usage:
//
//	re, err := memoregex.Compile(`a(b|c)d`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	res, err := re.Run("abd")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if res.Matched {
//	    fmt.Println(res.Groups[0]) // [0 3]
//	}
//
// Memoization configuration:
//
//	opts := memoregex.DefaultOptions()
//	opts.MemoMode = memoregex.MemoFull
//	opts.MemoEncoding = memoregex.EncodingRLE
//	re, err := memoregex.CompileWithOptions(`(a+)+$`, opts)
package memoregex

import (
	"github.com/jdavis-research/memoregex/analyze"
	"github.com/jdavis-research/memoregex/ast"
	"github.com/jdavis-research/memoregex/compile"
	"github.com/jdavis-research/memoregex/inst"
	"github.com/jdavis-research/memoregex/vm"
)

// Re-exported so callers don't need to import the inst package just
// to configure memoization.
const (
	MemoNone        = inst.MemoNone
	MemoFull        = inst.MemoFull
	MemoInDegreeGT1 = inst.MemoInDegreeGT1
	MemoLoopDest    = inst.MemoLoopDest

	EncodingNone     = inst.EncodingNone
	EncodingNegative = inst.EncodingNegative
	EncodingRLE      = inst.EncodingRLE
	EncodingRLETuned = inst.EncodingRLETuned
)

// Options controls compilation and simulation: which vertices get
// memoized, how the memo set is stored, and resource bounds on the
// backtracking VM.
type Options struct {
	MemoMode     inst.MemoMode
	MemoEncoding inst.MemoEncoding

	SingleRLEK    int
	PerVertexRLEK []int

	VM vm.Config
}

// DefaultOptions returns no memoization and the VM's default resource
// bounds.
func DefaultOptions() Options {
	return Options{
		MemoMode:     inst.MemoNone,
		MemoEncoding: inst.EncodingNone,
		SingleRLEK:   1,
		VM:           vm.DefaultConfig(),
	}
}

// Regex is a parsed, normalized, and compiled pattern, ready to run
// against candidate strings.
type Regex struct {
	pattern string
	prog    *inst.Program
	vmCfg   vm.Config
}

// Compile parses, normalizes, and compiles pattern with no
// memoization, matching Compile(pattern, DefaultOptions()).
func Compile(pattern string) (*Regex, error) {
	return CompileWithOptions(pattern, DefaultOptions())
}

// MustCompile is like Compile but panics on error, for patterns known
// to be valid at compile time.
func MustCompile(pattern string) *Regex {
	re, err := Compile(pattern)
	if err != nil {
		panic("memoregex: Compile(" + pattern + "): " + err.Error())
	}
	return re
}

// CompileWithOptions parses, normalizes, and compiles pattern using
// opts's memoization configuration, then runs the static
// infinite-loop check and marks the selected memo vertices.
func CompileWithOptions(pattern string, opts Options) (*Regex, error) {
	tree, err := ast.Parse(pattern)
	if err != nil {
		return nil, err
	}
	tree, err = ast.Normalize(tree)
	if err != nil {
		return nil, err
	}

	copts := compile.Options{
		MemoMode:      opts.MemoMode,
		MemoEncoding:  opts.MemoEncoding,
		SingleRLEK:    opts.SingleRLEK,
		PerVertexRLEK: opts.PerVertexRLEK,
	}
	prog, err := compile.Compile(tree, copts)
	if err != nil {
		return nil, err
	}

	if err := analyze.AssertNoInfiniteLoops(prog); err != nil {
		return nil, err
	}
	analyze.MarkMemoVertices(prog)

	vmCfg := opts.VM
	if vmCfg.MaxThreads <= 0 {
		vmCfg = vm.DefaultConfig()
	}

	return &Regex{pattern: pattern, prog: prog, vmCfg: vmCfg}, nil
}

// String returns the source pattern re was compiled from.
func (re *Regex) String() string { return re.pattern }

// Program exposes the compiled instruction program, mainly for tools
// that print or inspect it (see inst.Program.String).
func (re *Regex) Program() *inst.Program { return re.prog }

// Run simulates re against input, starting at input's first byte, and
// returns the match result plus statistics.
func (re *Regex) Run(input string) (*vm.Result, error) {
	return vm.Run(re.prog, input, re.vmCfg)
}
