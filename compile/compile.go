// Package compile lowers a normalized AST into a linear inst.Program,
// per spec.md §4.3.
//
// Grounded on compile.c's count()/emit()/compile(); edges are stored
// as instruction indices rather than pointers, per spec.md §9's design
// note, and the bump pointer is a local struct field (emitter.pc)
// rather than package-level mutable state.
package compile

import (
	"github.com/jdavis-research/memoregex/ast"
	"github.com/jdavis-research/memoregex/inst"
)

// Options bundles the compiler's memoization configuration, replacing
// the original compile()'s five positional parameters with a single
// struct, in the style of meta.Config in this codebase's ancestry.
type Options struct {
	MemoMode     inst.MemoMode
	MemoEncoding inst.MemoEncoding

	// SingleRLEK sets every vertex's MemoInfo.VisitInterval to this
	// value when MemoEncoding is RLE_TUNED. Defaults to 1 if <= 0.
	SingleRLEK int

	// PerVertexRLEK, if non-nil, overrides SingleRLEK per vertex index
	// under RLE_TUNED (vertices beyond its length fall back to
	// SingleRLEK, then to 1). Exposed for the CLI's "multiplerlek"
	// mode.
	PerVertexRLEK []int
}

// DefaultOptions returns an Options with no memoization.
func DefaultOptions() Options {
	return Options{MemoMode: inst.MemoNone, MemoEncoding: inst.EncodingNone, SingleRLEK: 1}
}

// Compile lowers a normalized AST into a Program. r must already have
// gone through ast.Normalize.
func Compile(r *ast.Node, opts Options) (*inst.Program, error) {
	n, err := count(r)
	if err != nil {
		return nil, err
	}
	n++ // trailing Match

	prog := &inst.Program{Instructions: make([]inst.Instruction, n)}
	e := &emitter{prog: prog, opts: opts}

	k := opts.SingleRLEK
	if k <= 0 {
		k = 1
	}
	for i := range prog.Instructions {
		vi := 1
		if opts.MemoEncoding == inst.EncodingRLETuned {
			if opts.PerVertexRLEK != nil && i < len(opts.PerVertexRLEK) && opts.PerVertexRLEK[i] > 0 {
				vi = opts.PerVertexRLEK[i]
			} else {
				vi = k
			}
		}
		prog.Instructions[i].MemoInfo.VisitInterval = vi
		prog.Instructions[i].MemoInfo.MemoStateNum = -1
	}

	if err := e.emit(r); err != nil {
		return nil, err
	}
	matchIdx := e.next()
	prog.Instructions[matchIdx].Opcode = inst.OpMatch

	for i := range prog.Instructions {
		prog.Instructions[i].StateNum = i
	}
	prog.MemoMode = opts.MemoMode
	prog.MemoEncoding = opts.MemoEncoding
	return prog, nil
}

// count returns the number of instructions r compiles to (excluding
// the trailing Match), per the rules in spec.md §4.3.
func count(r *ast.Node) (int, error) {
	if r == nil {
		return 0, nil
	}
	switch r.Kind {
	case ast.KindAlt:
		l, err := count(r.Left)
		if err != nil {
			return 0, err
		}
		rt, err := count(r.Right)
		if err != nil {
			return 0, err
		}
		return 2 + l + rt, nil
	case ast.KindAltList:
		total := 0
		for _, c := range r.Children {
			cc, err := count(c)
			if err != nil {
				return 0, err
			}
			total += cc + 1
		}
		return 1 + total, nil
	case ast.KindCat:
		l, err := count(r.Left)
		if err != nil {
			return 0, err
		}
		rt, err := count(r.Right)
		if err != nil {
			return 0, err
		}
		return l + rt, nil
	case ast.KindLit, ast.KindDot, ast.KindCharEscape, ast.KindCustomCharClass, ast.KindBackref, ast.KindInlineZWA:
		return 1, nil
	case ast.KindEmpty:
		return 0, nil
	case ast.KindParen:
		if r.NonCapturing {
			return count(r.Left)
		}
		l, err := count(r.Left)
		if err != nil {
			return 0, err
		}
		return 2 + l, nil
	case ast.KindQuest:
		l, err := count(r.Left)
		if err != nil {
			return 0, err
		}
		return 1 + l, nil
	case ast.KindStar:
		l, err := count(r.Left)
		if err != nil {
			return 0, err
		}
		return 2 + l, nil
	case ast.KindPlus:
		l, err := count(r.Left)
		if err != nil {
			return 0, err
		}
		return 1 + l, nil
	case ast.KindLookahead:
		l, err := count(r.Left)
		if err != nil {
			return 0, err
		}
		return 2 + l, nil
	default:
		return 0, &KindError{Op: "count", Kind: r.Kind}
	}
}

// emitter threads the bump pointer explicitly through emit, rather
// than using a package-level global as compile.c's static Inst *pc
// does (see spec.md §9).
type emitter struct {
	prog *inst.Program
	pc   int
	opts Options
}

func (e *emitter) next() int {
	idx := e.pc
	e.pc++
	return idx
}

func (e *emitter) inst(i int) *inst.Instruction { return &e.prog.Instructions[i] }

func (e *emitter) emit(r *ast.Node) error {
	if r == nil {
		return nil
	}
	switch r.Kind {
	case ast.KindEmpty:
		return nil

	case ast.KindAlt:
		p1 := e.next()
		e.inst(p1).Opcode = inst.OpSplit
		e.inst(p1).X = e.pc
		if err := e.emit(r.Left); err != nil {
			return err
		}
		p2 := e.next()
		e.inst(p2).Opcode = inst.OpJmp
		e.inst(p1).Y = e.pc
		if err := e.emit(r.Right); err != nil {
			return err
		}
		e.inst(p2).X = e.pc
		return nil

	case ast.KindAltList:
		p1 := e.next()
		e.inst(p1).Opcode = inst.OpSplitMany
		e.inst(p1).Edges = make([]int, len(r.Children))
		jmps := make([]int, len(r.Children))
		for i, c := range r.Children {
			e.inst(p1).Edges[i] = e.pc
			if err := e.emit(c); err != nil {
				return err
			}
			j := e.next()
			e.inst(j).Opcode = inst.OpJmp
			jmps[i] = j
		}
		for _, j := range jmps {
			e.inst(j).X = e.pc
		}
		return nil

	case ast.KindCat:
		if err := e.emit(r.Left); err != nil {
			return err
		}
		return e.emit(r.Right)

	case ast.KindLit:
		idx := e.next()
		e.inst(idx).Opcode = inst.OpChar
		e.inst(idx).C = r.Ch
		return nil

	case ast.KindDot:
		idx := e.next()
		e.inst(idx).Opcode = inst.OpAny
		return nil

	case ast.KindCustomCharClass:
		idx := e.next()
		in := e.inst(idx)
		in.Opcode = inst.OpCharClass
		for _, c := range r.Children {
			switch c.Kind {
			case ast.KindCharRange:
				in.CharRanges = append(in.CharRanges, inst.CharRange{Lo: c.CCLow, Hi: c.CCHigh})
			case ast.KindCharEscape:
				ranges, _ := escapeRanges(c.Ch)
				in.CharRanges = append(in.CharRanges, ranges...)
			default:
				return &KindError{Op: "emit(CustomCharClass child)", Kind: c.Kind}
			}
		}
		if r.PlusDash {
			in.CharRanges = append(in.CharRanges, inst.CharRange{Lo: '-', Hi: '-'})
		}
		in.Invert = r.CCInvert
		return nil

	case ast.KindCharEscape:
		idx := e.next()
		in := e.inst(idx)
		in.Opcode = inst.OpCharClass
		ranges, invert := escapeRanges(r.Ch)
		in.CharRanges = ranges
		in.Invert = invert
		return nil

	case ast.KindParen:
		if r.NonCapturing {
			return e.emit(r.Left)
		}
		s1 := e.next()
		e.inst(s1).Opcode = inst.OpSave
		e.inst(s1).N = 2 * r.CaptureIndex
		if err := e.emit(r.Left); err != nil {
			return err
		}
		s2 := e.next()
		e.inst(s2).Opcode = inst.OpSave
		e.inst(s2).N = 2*r.CaptureIndex + 1
		return nil

	case ast.KindQuest:
		p1 := e.next()
		e.inst(p1).Opcode = inst.OpSplit
		e.inst(p1).X = e.pc
		if err := e.emit(r.Left); err != nil {
			return err
		}
		e.inst(p1).Y = e.pc
		if r.NonGreedy {
			e.inst(p1).X, e.inst(p1).Y = e.inst(p1).Y, e.inst(p1).X
		}
		return nil

	case ast.KindStar:
		p1 := e.next()
		e.inst(p1).Opcode = inst.OpSplit
		e.inst(p1).X = e.pc
		if err := e.emit(r.Left); err != nil {
			return err
		}
		j := e.next()
		e.inst(j).Opcode = inst.OpJmp
		e.inst(j).X = p1
		e.inst(p1).Y = e.pc
		if r.NonGreedy {
			e.inst(p1).X, e.inst(p1).Y = e.inst(p1).Y, e.inst(p1).X
		}
		return nil

	case ast.KindPlus:
		start := e.pc
		if err := e.emit(r.Left); err != nil {
			return err
		}
		p2 := e.next()
		e.inst(p2).Opcode = inst.OpSplit
		e.inst(p2).X = start
		e.inst(p2).Y = e.pc
		if r.NonGreedy {
			e.inst(p2).X, e.inst(p2).Y = e.inst(p2).Y, e.inst(p2).X
		}
		return nil

	case ast.KindBackref:
		idx := e.next()
		e.inst(idx).Opcode = inst.OpStringCompare
		e.inst(idx).CgNum = r.CgNum
		return nil

	case ast.KindLookahead:
		idx := e.next()
		e.inst(idx).Opcode = inst.OpRecursiveZeroWidthAssertion
		if err := e.emit(r.Left); err != nil {
			return err
		}
		idx2 := e.next()
		e.inst(idx2).Opcode = inst.OpRecursiveMatch
		return nil

	case ast.KindInlineZWA:
		idx := e.next()
		e.inst(idx).Opcode = inst.OpInlineZeroWidthAssertion
		e.inst(idx).C = r.Ch
		return nil

	default:
		return &KindError{Op: "emit", Kind: r.Kind}
	}
}
