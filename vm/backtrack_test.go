package vm

import (
	"testing"

	"github.com/jdavis-research/memoregex/analyze"
	"github.com/jdavis-research/memoregex/ast"
	"github.com/jdavis-research/memoregex/compile"
	"github.com/jdavis-research/memoregex/inst"
)

func mustRun(t *testing.T, pattern, input string, opts compile.Options) *Result {
	t.Helper()
	n, err := ast.Parse(pattern)
	if err != nil {
		t.Fatalf("Parse(%q): %v", pattern, err)
	}
	n, err = ast.Normalize(n)
	if err != nil {
		t.Fatalf("Normalize(%q): %v", pattern, err)
	}
	prog, err := compile.Compile(n, opts)
	if err != nil {
		t.Fatalf("Compile(%q): %v", pattern, err)
	}
	analyze.MarkMemoVertices(prog)
	res, err := Run(prog, input, DefaultConfig())
	if err != nil {
		t.Fatalf("Run(%q, %q): %v", pattern, input, err)
	}
	return res
}

func TestBasicLiteralMatch(t *testing.T) {
	res := mustRun(t, "abc", "abc", compile.DefaultOptions())
	if !res.Matched {
		t.Fatal("want match")
	}
	if res.Groups[0] != [2]int{0, 3} {
		t.Fatalf("Groups[0] = %v, want (0,3)", res.Groups[0])
	}
}

func TestAlternationWithCaptureGroup(t *testing.T) {
	res := mustRun(t, "a(b|c)d", "abd", compile.DefaultOptions())
	if !res.Matched {
		t.Fatal("want match")
	}
	if res.Groups[0] != [2]int{0, 3} {
		t.Fatalf("Groups[0] = %v, want (0,3)", res.Groups[0])
	}
	if res.Groups[1] != [2]int{1, 2} {
		t.Fatalf("Groups[1] = %v, want (1,2)", res.Groups[1])
	}
}

func TestCurlyRepetitionExpansion(t *testing.T) {
	res := mustRun(t, "a{2,4}", "aaaa", compile.DefaultOptions())
	if !res.Matched || res.Groups[0] != [2]int{0, 4} {
		t.Fatalf("Groups[0] = %v, matched=%v, want (0,4) true", res.Groups[0], res.Matched)
	}
}

func TestNoMatch(t *testing.T) {
	res := mustRun(t, "xyz", "abc", compile.DefaultOptions())
	if res.Matched {
		t.Fatal("want no match")
	}
}

func TestFullMemoizationBoundsVisitsToAtMostOnePerSearchState(t *testing.T) {
	res := mustRun(t, "(a|b)*c", "ababababc", compile.Options{MemoMode: inst.MemoFull, MemoEncoding: inst.EncodingNegative})
	if !res.Matched {
		t.Fatal("want match")
	}
	if res.Stats.MaxVisitsPerSearchState > 1 {
		t.Fatalf("MaxVisitsPerSearchState = %d, want <= 1 under FULL memoization", res.Stats.MaxVisitsPerSearchState)
	}
}

func TestNegativeEncodingSelfConsistency(t *testing.T) {
	res := mustRun(t, "(a|b)*c", "ababababc", compile.Options{MemoMode: inst.MemoInDegreeGT1, MemoEncoding: inst.EncodingNegative})
	if !res.Matched {
		t.Fatal("want match")
	}
	sum := 0
	for _, cost := range res.Stats.MaxObservedCostPerMemoizedVertex {
		sum += cost
	}
	if sum != res.Stats.NegativeHashCount {
		t.Fatalf("sum of per-vertex visit counts = %d, want == NegativeHashCount %d", sum, res.Stats.NegativeHashCount)
	}
}

func TestCatastrophicBacktrackingFailsWithoutHanging(t *testing.T) {
	res := mustRun(t, "(a+)+$", "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaX", compile.Options{MemoMode: inst.MemoFull, MemoEncoding: inst.EncodingNegative})
	if res.Matched {
		t.Fatal("want no match")
	}
}

// TestFullModeWithDenseEncodingStaysPolynomial is the exact scenario
// from spec.md §8 #3: MemoFull with EncodingNone (the dense
// ENCODING_NONE byte array) must short-circuit revisits just as
// reliably as the other encodings, not silently run unmemoized.
func TestFullModeWithDenseEncodingStaysPolynomial(t *testing.T) {
	input := "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaX"
	res := mustRun(t, "(a+)+$", input, compile.Options{MemoMode: inst.MemoFull, MemoEncoding: inst.EncodingNone})
	if res.Matched {
		t.Fatal("want no match")
	}
	bound := res.Stats.NStates * res.Stats.LenW
	if res.Stats.TotalVisits > bound {
		t.Fatalf("TotalVisits = %d, want <= nStates*lenW = %d", res.Stats.TotalVisits, bound)
	}
	if res.Stats.MaxVisitsPerSearchState > 1 {
		t.Fatalf("MaxVisitsPerSearchState = %d, want <= 1 under FULL memoization", res.Stats.MaxVisitsPerSearchState)
	}
}

func TestLookaheadGatesWithoutConsumingInput(t *testing.T) {
	res := mustRun(t, "(?=ab)a", "ab", compile.DefaultOptions())
	if !res.Matched || res.Groups[0] != [2]int{0, 1} {
		t.Fatalf("Groups[0] = %v matched=%v, want (0,1) true", res.Groups[0], res.Matched)
	}
}

func TestLookaheadFailureBlocksMatch(t *testing.T) {
	res := mustRun(t, "(?=ab)c", "ab", compile.DefaultOptions())
	if res.Matched {
		t.Fatal("want no match: lookahead body doesn't match")
	}
}

func TestBackreferenceMatchesCapturedText(t *testing.T) {
	res := mustRun(t, `(a|bb)\1`, "bbbb", compile.DefaultOptions())
	if !res.Matched {
		t.Fatal("want match")
	}
	if res.Groups[0] != [2]int{0, 4} {
		t.Fatalf("Groups[0] = %v, want (0,4)", res.Groups[0])
	}
}

func TestCharClassAndEscapes(t *testing.T) {
	res := mustRun(t, `[a-c\d]+`, "a1b2c3", compile.DefaultOptions())
	if !res.Matched {
		t.Fatal("want match")
	}
}

func TestAnchors(t *testing.T) {
	res := mustRun(t, "^abc$", "abc", compile.DefaultOptions())
	if !res.Matched {
		t.Fatal("want match")
	}
	res = mustRun(t, "^abc$", "xabc", compile.DefaultOptions())
	if res.Matched {
		t.Fatal("want no match: input has a prefix before the anchor")
	}
}
