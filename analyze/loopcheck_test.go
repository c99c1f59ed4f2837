package analyze

import (
	"testing"

	"github.com/jdavis-research/memoregex/ast"
	"github.com/jdavis-research/memoregex/compile"
)

func compileProg(t *testing.T, pattern string) (*ast.Node, error) {
	t.Helper()
	n, err := ast.Parse(pattern)
	if err != nil {
		return nil, err
	}
	return ast.Normalize(n)
}

func TestAssertNoInfiniteLoopsAcceptsOrdinaryPatterns(t *testing.T) {
	patterns := []string{"abc", "a*", "a+", "a?", "(a|b)*c", "a{2,4}", "(a)\\1"}
	for _, pattern := range patterns {
		n, err := compileProg(t, pattern)
		if err != nil {
			t.Fatalf("%q: normalize: %v", pattern, err)
		}
		prog, err := compile.Compile(n, compile.DefaultOptions())
		if err != nil {
			t.Fatalf("%q: compile: %v", pattern, err)
		}
		if err := AssertNoInfiniteLoops(prog); err != nil {
			t.Fatalf("%q: want no infinite loop, got %v", pattern, err)
		}
	}
}

func TestAssertNoInfiniteLoopsRejectsNestedStar(t *testing.T) {
	n, err := compileProg(t, "(a*)*")
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	prog, err := compile.Compile(n, compile.DefaultOptions())
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if err := AssertNoInfiniteLoops(prog); err == nil {
		t.Fatal("want an infinite-loop error for (a*)*")
	}
}

func TestAssertNoInfiniteLoopsAcceptsNestedPlusStar(t *testing.T) {
	n, err := compileProg(t, "(a+)*")
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	prog, err := compile.Compile(n, compile.DefaultOptions())
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if err := AssertNoInfiniteLoops(prog); err != nil {
		t.Fatalf("(a+)* always consumes at least one byte per outer iteration, want no loop error, got %v", err)
	}
}
