package ast

import "testing"

// assertNoKind walks the tree and fails if it finds a node of kind k
// anywhere, used to check the invariants spec.md §8 requires of
// Normalize's output.
func assertNoKind(t *testing.T, n *Node, k Kind, label string) {
	t.Helper()
	if n == nil {
		return
	}
	if n.Kind == k {
		t.Fatalf("%s: found a %v node after normalization", label, k)
	}
	assertNoKind(t, n.Left, k, label)
	assertNoKind(t, n.Right, k, label)
	for _, c := range n.Children {
		assertNoKind(t, c, k, label)
	}
}

func mustParseAndNormalize(t *testing.T, pattern string) *Node {
	t.Helper()
	n, err := Parse(pattern)
	if err != nil {
		t.Fatalf("Parse(%q): %v", pattern, err)
	}
	n, err = Normalize(n)
	if err != nil {
		t.Fatalf("Normalize(%q): %v", pattern, err)
	}
	return n
}

func TestNormalizeEliminatesCurlyNodes(t *testing.T) {
	n := mustParseAndNormalize(t, "a{2,4}b{3,}c{0,2}")
	assertNoKind(t, n, KindCurly, "a{2,4}b{3,}c{0,2}")
}

func TestNormalizeCollapsesAltChainsIntoAltList(t *testing.T) {
	n := mustParseAndNormalize(t, "a|b|c|d")
	assertNoKind(t, n, KindAlt, "a|b|c|d")
	if n.Kind != KindAltList || len(n.Children) != 4 {
		t.Fatalf("root = %+v, want a 4-way AltList", n)
	}
}

func TestNormalizeRewritesEscapedDigitsToBackrefs(t *testing.T) {
	n := mustParseAndNormalize(t, `(a)\1`)
	// n is Cat(Paren, Backref); the escaped digit must no longer be a
	// CharEscape anywhere in the tree.
	assertNoKind(t, n, KindCharEscape, `(a)\1`)
	if n.Right.Kind != KindBackref || n.Right.CgNum != 1 {
		t.Fatalf("right child = %+v, want Backref{CgNum: 1}", n.Right)
	}
}

func TestNormalizeMergesCustomCharClassRanges(t *testing.T) {
	n := mustParseAndNormalize(t, `[a-c\dX]`)
	if n.Kind != KindCustomCharClass {
		t.Fatalf("root kind = %v, want CustomCharClass", n.Kind)
	}
	if !n.MergedRanges {
		t.Fatal("want MergedRanges = true after normalization")
	}
	if n.Left != nil || n.Right != nil {
		t.Fatal("want Left/Right cleared once ranges are merged into Children")
	}
	if len(n.Children) != 3 {
		t.Fatalf("len(Children) = %d, want 3 (a-c, \\d, X)", len(n.Children))
	}
}

func TestNormalizeCurlyExactCountMatchesLiteralRepetition(t *testing.T) {
	// a{3} should normalize to exactly three concatenated copies of a,
	// with no Quest/Star wrapper (min == max, no unbounded suffix).
	n := mustParseAndNormalize(t, "a{3}")
	assertNoKind(t, n, KindCurly, "a{3}")
	assertNoKind(t, n, KindStar, "a{3}")
	assertNoKind(t, n, KindQuest, "a{3}")
}

func TestNormalizeUnboundedCurlyProducesStarSuffix(t *testing.T) {
	n := mustParseAndNormalize(t, "a{2,}")
	// Expect Cat(aa, a*): a Star node must survive since max is unbounded.
	found := false
	var walk func(*Node)
	walk = func(n *Node) {
		if n == nil {
			return
		}
		if n.Kind == KindStar {
			found = true
		}
		walk(n.Left)
		walk(n.Right)
	}
	walk(n)
	if !found {
		t.Fatal("a{2,} must normalize to include a Star node for the unbounded tail")
	}
}
