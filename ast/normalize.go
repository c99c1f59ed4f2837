package ast

// Normalize runs the four rewrite passes described in spec.md §4.2, in
// order, and returns the rewritten tree. Each pass either mutates nodes
// in place or replaces a subtree with a newly built one; callers should
// always use the returned root, not the one they passed in.
//
// Grounded on compile.c's transform() and its four _transform*/_merge*
// helpers.
func Normalize(r *Node) (*Node, error) {
	r, err := transformCurlies(r)
	if err != nil {
		return nil, err
	}
	r, err = transformAltGroups(r)
	if err != nil {
		return nil, err
	}
	r, err = escapedNumsToBackrefs(r)
	if err != nil {
		return nil, err
	}
	r, err = mergeCustomCharClassRanges(r)
	if err != nil {
		return nil, err
	}
	return r, nil
}

// repeatWithConcat builds A A A ... (n copies, n >= 1) as a right-leaning
// Cat chain, each A an independent deep copy.
func repeatWithConcat(a *Node, n int) *Node {
	if n == 1 {
		return a.Copy()
	}
	ret := NewBinary(KindCat, a.Copy(), nil)
	curr := ret
	for i := 2; i < n; i++ {
		curr.Right = NewBinary(KindCat, a.Copy(), nil)
		curr = curr.Right
	}
	curr.Right = a.Copy()
	return ret
}

// repeatWithNestedQuest builds A(A(A...)?)? with max copies of A, built
// innermost-out to avoid recursion depth proportional to max.
func repeatWithNestedQuest(a *Node, max int) *Node {
	innermost := NewUnary(KindQuest, a.Copy())
	prev := innermost
	for i := 1; i < max; i++ {
		prev = NewUnary(KindQuest, NewBinary(KindCat, a.Copy(), prev))
	}
	return prev
}

// transformCurlies rewrites every Curly{min,max} into Cat/Quest/Star
// over its (recursively transformed) child, per spec.md §4.2.
func transformCurlies(r *Node) (*Node, error) {
	if r == nil {
		return nil, nil
	}
	switch r.Kind {
	case KindCurly:
		if r.CurlyMin == -1 && r.CurlyMax == -1 {
			return nil, ErrBareCurly
		}
		a, err := transformCurlies(r.Left)
		if err != nil {
			return nil, err
		}

		var prefix, suffix *Node
		prefixLen := 0
		if r.CurlyMin > 0 {
			prefixLen = r.CurlyMin
			prefix = repeatWithConcat(a, r.CurlyMin)
		}

		if r.CurlyMax == -1 {
			suffix = NewUnary(KindStar, a.Copy())
		} else if remainder := r.CurlyMax - prefixLen; remainder > 0 {
			suffix = repeatWithNestedQuest(a, remainder)
		}

		switch {
		case prefix == nil && suffix == nil:
			return nil, ErrBareCurly
		case prefix == nil:
			return suffix, nil
		case suffix == nil:
			return prefix, nil
		default:
			return NewBinary(KindCat, prefix, suffix), nil
		}

	case KindAlt, KindCat:
		left, err := transformCurlies(r.Left)
		if err != nil {
			return nil, err
		}
		right, err := transformCurlies(r.Right)
		if err != nil {
			return nil, err
		}
		r.Left, r.Right = left, right
		return r, nil

	case KindQuest, KindStar, KindPlus, KindParen, KindCustomCharClass, KindLookahead:
		if r.Left != nil {
			left, err := transformCurlies(r.Left)
			if err != nil {
				return nil, err
			}
			r.Left = left
		}
		return r, nil

	case KindLit, KindDot, KindCharEscape, KindCharRange, KindInlineZWA, KindEmpty:
		return r, nil

	default:
		return nil, &KindError{Pass: "transformCurlies", Kind: r.Kind}
	}
}

// countAltListSize counts the branches of a left-chained Alt: Alt(Alt(A,B),C)
// has size 3.
func countAltListSize(r *Node) int {
	if r.Kind != KindAlt {
		return 1
	}
	return 1 + countAltListSize(r.Left)
}

// fillAltChildren populates children in left-to-right order, returning
// the next unused index.
func fillAltChildren(r *Node, children []*Node, i int) int {
	if r.Kind == KindAlt {
		next := fillAltChildren(r.Left, children, i)
		children[next] = r.Right
		return next + 1
	}
	children[i] = r
	return i + 1
}

// transformAltGroups collapses left-nested Alt chains into a single
// AltList node with children in left-to-right order.
func transformAltGroups(r *Node) (*Node, error) {
	if r == nil {
		return nil, nil
	}
	switch r.Kind {
	case KindAlt:
		groupSize := countAltListSize(r)
		children := make([]*Node, groupSize)
		fillAltChildren(r, children, 0)

		for i, child := range children {
			c, err := transformAltGroups(child)
			if err != nil {
				return nil, err
			}
			children[i] = c
		}
		return &Node{Kind: KindAltList, Children: children}, nil

	case KindCat:
		left, err := transformAltGroups(r.Left)
		if err != nil {
			return nil, err
		}
		right, err := transformAltGroups(r.Right)
		if err != nil {
			return nil, err
		}
		r.Left, r.Right = left, right
		return r, nil

	case KindQuest, KindStar, KindPlus, KindParen, KindCustomCharClass, KindLookahead, KindCurly:
		if r.Left != nil {
			left, err := transformAltGroups(r.Left)
			if err != nil {
				return nil, err
			}
			r.Left = left
		}
		return r, nil

	case KindLit, KindDot, KindCharEscape, KindCharRange, KindInlineZWA, KindEmpty:
		return r, nil

	default:
		return nil, &KindError{Pass: "transformAltGroups", Kind: r.Kind}
	}
}

// escapedNumsToBackrefs mutates every CharEscape whose character is a
// digit '1'..'9' into a Backref in place.
func escapedNumsToBackrefs(r *Node) (*Node, error) {
	if r == nil {
		return nil, nil
	}
	switch r.Kind {
	case KindCharEscape:
		if r.Ch >= '1' && r.Ch <= '9' {
			r.Kind = KindBackref
			r.CgNum = int(r.Ch - '0')
		}
		return r, nil

	case KindAltList:
		for i, child := range r.Children {
			c, err := escapedNumsToBackrefs(child)
			if err != nil {
				return nil, err
			}
			r.Children[i] = c
		}
		return r, nil

	case KindAlt, KindCat:
		left, err := escapedNumsToBackrefs(r.Left)
		if err != nil {
			return nil, err
		}
		right, err := escapedNumsToBackrefs(r.Right)
		if err != nil {
			return nil, err
		}
		r.Left, r.Right = left, right
		return r, nil

	case KindQuest, KindStar, KindPlus, KindParen, KindLookahead, KindCurly:
		left, err := escapedNumsToBackrefs(r.Left)
		if err != nil {
			return nil, err
		}
		r.Left = left
		return r, nil

	case KindLit, KindDot, KindCustomCharClass, KindInlineZWA, KindEmpty:
		return r, nil

	default:
		return nil, &KindError{Pass: "escapedNumsToBackrefs", Kind: r.Kind}
	}
}

// countCCCRanges counts a left-chained CharRange subtree.
func countCCCRanges(r *Node) int {
	if r == nil {
		return 0
	}
	return 1 + countCCCRanges(r.Left)
}

// fillCCCChildren populates a flat children array in left-to-right order.
func fillCCCChildren(r *Node, children []*Node, i int) int {
	if r == nil {
		return i
	}
	next := i
	if r.Left != nil {
		next = fillCCCChildren(r.Left, children, i)
		r.Left = nil
	}
	children[next] = r
	return next + 1
}

// mergeCustomCharClassRanges replaces a CustomCharClass's left-chained
// CharRange subtree with a flat Children array and sets MergedRanges.
func mergeCustomCharClassRanges(r *Node) (*Node, error) {
	if r == nil {
		return nil, nil
	}
	switch r.Kind {
	case KindCustomCharClass:
		groupSize := countCCCRanges(r.Left)
		children := make([]*Node, groupSize)
		fillCCCChildren(r.Left, children, 0)
		r.Children = children
		r.MergedRanges = true
		r.Left, r.Right = nil, nil
		return r, nil

	case KindAltList:
		for i, child := range r.Children {
			c, err := mergeCustomCharClassRanges(child)
			if err != nil {
				return nil, err
			}
			r.Children[i] = c
		}
		return r, nil

	case KindAlt, KindCat:
		left, err := mergeCustomCharClassRanges(r.Left)
		if err != nil {
			return nil, err
		}
		right, err := mergeCustomCharClassRanges(r.Right)
		if err != nil {
			return nil, err
		}
		r.Left, r.Right = left, right
		return r, nil

	case KindQuest, KindStar, KindPlus, KindParen, KindLookahead, KindCurly:
		left, err := mergeCustomCharClassRanges(r.Left)
		if err != nil {
			return nil, err
		}
		r.Left = left
		return r, nil

	case KindLit, KindDot, KindCharEscape, KindBackref, KindInlineZWA, KindEmpty:
		return r, nil

	default:
		return nil, &KindError{Pass: "mergeCustomCharClassRanges", Kind: r.Kind}
	}
}
