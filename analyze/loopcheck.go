// Package analyze performs the static passes that run on a compiled
// inst.Program before it is handed to the VM: the epsilon-closure
// infinite-loop check and memo-vertex selection.
package analyze

import "github.com/jdavis-research/memoregex/inst"

// AssertNoInfiniteLoops reports an error if any instruction that can
// start a zero-width cycle (Jmp, Split, SplitMany) can reach itself
// again without consuming input, e.g. the program compiled from
// "(a*)*".
//
// Grounded on compile.c's Prog_assertNoInfiniteLoops/Prog_epsilonClosure/
// Inst_couldStartLoop: a recursive DFS from every loop-capable vertex,
// using the Instruction.StartMark/VisitMark scratch fields the way the
// original uses Inst.startMark/visitMark.
func AssertNoInfiniteLoops(p *inst.Program) error {
	for i := range p.Instructions {
		if !couldStartLoop(&p.Instructions[i]) {
			continue
		}
		unmarkAll(p)
		if epsilonClosure(p, i, true) {
			return &LoopError{StateNum: i}
		}
	}
	return nil
}

func couldStartLoop(in *inst.Instruction) bool {
	switch in.Opcode {
	case inst.OpJmp, inst.OpSplit, inst.OpSplitMany:
		return true
	default:
		return false
	}
}

func unmarkAll(p *inst.Program) {
	for i := range p.Instructions {
		p.Instructions[i].StartMark = false
		p.Instructions[i].VisitMark = false
	}
}

// epsilonClosure returns true if, starting from stateNum, a zero-width
// path leads back to the vertex that began this walk (start=true marks
// that vertex).
func epsilonClosure(p *inst.Program, stateNum int, start bool) bool {
	curr := &p.Instructions[stateNum]

	if curr.StartMark {
		return true
	}
	if curr.VisitMark {
		return false
	}

	if start {
		curr.StartMark = true
	} else {
		curr.VisitMark = true
	}

	switch curr.Opcode {
	case inst.OpJmp:
		return epsilonClosure(p, curr.X, false)
	case inst.OpSplit:
		if epsilonClosure(p, curr.X, false) {
			return true
		}
		return epsilonClosure(p, curr.Y, false)
	case inst.OpSplitMany:
		for _, e := range curr.Edges {
			if epsilonClosure(p, e, false) {
				return true
			}
		}
		return false
	case inst.OpChar, inst.OpMatch, inst.OpAny, inst.OpCharClass:
		return false
	case inst.OpSave, inst.OpInlineZeroWidthAssertion:
		return epsilonClosure(p, stateNum+1, false)
	case inst.OpStringCompare:
		// A matched-but-empty backreference can make this path
		// zero-width too, but that needs tracking which capture
		// groups are known-empty; out of scope here, as in the
		// original.
		return false
	case inst.OpRecursiveZeroWidthAssertion:
		i := stateNum
		for p.Instructions[i].Opcode != inst.OpRecursiveMatch {
			i++
		}
		return epsilonClosure(p, i+1, false)
	case inst.OpRecursiveMatch:
		return false
	default:
		return false
	}
}
