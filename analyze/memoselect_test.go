package analyze

import (
	"testing"

	"github.com/jdavis-research/memoregex/compile"
	"github.com/jdavis-research/memoregex/inst"
)

func compileWithMode(t *testing.T, pattern string, mode inst.MemoMode) *inst.Program {
	t.Helper()
	n, err := compileProg(t, pattern)
	if err != nil {
		t.Fatalf("normalize %q: %v", pattern, err)
	}
	prog, err := compile.Compile(n, compile.Options{MemoMode: mode})
	if err != nil {
		t.Fatalf("compile %q: %v", pattern, err)
	}
	return prog
}

func TestMarkMemoVerticesNoneSelectsNothing(t *testing.T) {
	prog := compileWithMode(t, "(a|b)*c", inst.MemoNone)
	MarkMemoVertices(prog)
	if prog.NMemoizedStates != 0 {
		t.Fatalf("NMemoizedStates = %d, want 0", prog.NMemoizedStates)
	}
	for i, in := range prog.Instructions {
		if in.MemoInfo.MemoStateNum != -1 {
			t.Fatalf("instruction %d MemoStateNum = %d, want -1 under MemoNone", i, in.MemoInfo.MemoStateNum)
		}
	}
}

func TestMarkMemoVerticesFullSelectsEveryVertex(t *testing.T) {
	prog := compileWithMode(t, "(a|b)*c", inst.MemoFull)
	MarkMemoVertices(prog)
	if prog.NMemoizedStates != prog.Len() {
		t.Fatalf("NMemoizedStates = %d, want %d (every vertex)", prog.NMemoizedStates, prog.Len())
	}
	seen := make(map[int]bool)
	for _, in := range prog.Instructions {
		if in.MemoInfo.MemoStateNum < 0 {
			t.Fatal("MemoFull left a vertex unmemoized")
		}
		if seen[in.MemoInfo.MemoStateNum] {
			t.Fatalf("MemoStateNum %d assigned twice", in.MemoInfo.MemoStateNum)
		}
		seen[in.MemoInfo.MemoStateNum] = true
	}
}

func TestMarkMemoVerticesInDegreeGT1OnlySelectsJoinPoints(t *testing.T) {
	prog := compileWithMode(t, "(a|b)*c", inst.MemoInDegreeGT1)
	MarkMemoVertices(prog)
	for i, in := range prog.Instructions {
		if in.MemoInfo.MemoStateNum >= 0 && in.InDegree <= 1 {
			t.Fatalf("instruction %d memoized with in-degree %d, want > 1", i, in.InDegree)
		}
	}
	if prog.NMemoizedStates == 0 {
		t.Fatal("(a|b)*c has an alternation join point, want at least one memoized vertex")
	}
}

func TestMarkMemoVerticesLoopDestSelectsOnlyBackEdgeTargets(t *testing.T) {
	prog := compileWithMode(t, "a*", inst.MemoLoopDest)
	MarkMemoVertices(prog)
	if prog.NMemoizedStates != 1 {
		t.Fatalf("NMemoizedStates = %d, want 1 (the single loop head in a*)", prog.NMemoizedStates)
	}
}

func TestMarkMemoVerticesIsIdempotentAcrossRepeatedCalls(t *testing.T) {
	prog := compileWithMode(t, "(a|b)*c", inst.MemoInDegreeGT1)
	MarkMemoVertices(prog)
	first := prog.NMemoizedStates
	MarkMemoVertices(prog)
	if prog.NMemoizedStates != first {
		t.Fatalf("second MarkMemoVertices call changed NMemoizedStates from %d to %d", first, prog.NMemoizedStates)
	}
}
