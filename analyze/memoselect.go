package analyze

import "github.com/jdavis-research/memoregex/inst"

// MarkMemoVertices assigns MemoInfo.MemoStateNum (and NMemoizedStates)
// according to p.MemoMode, per spec.md §4.5. It resets every
// instruction's MemoStateNum to -1 before applying the policy.
//
// Grounded on compile.c's emit()-time memo marking (see its "Easiest
// to handle MEMO_LOOP_DEST during emit()" note); done here as a
// separate post-compile pass instead, since the Go compiler emits
// edges as plain indices and in-degree/back-edge detection is simpler
// to run once over the finished Program.
func MarkMemoVertices(p *inst.Program) {
	for i := range p.Instructions {
		p.Instructions[i].MemoInfo.ShouldMemo = false
		p.Instructions[i].MemoInfo.MemoStateNum = -1
	}

	var selected []int
	switch p.MemoMode {
	case inst.MemoNone:
		// nothing selected
	case inst.MemoFull:
		for i := range p.Instructions {
			selected = append(selected, i)
		}
	case inst.MemoInDegreeGT1:
		computeInDegree(p)
		for i := range p.Instructions {
			if p.Instructions[i].InDegree > 1 {
				selected = append(selected, i)
			}
		}
	case inst.MemoLoopDest:
		for _, t := range loopDestTargets(p) {
			selected = append(selected, t)
		}
	}

	next := 0
	for _, i := range selected {
		if p.Instructions[i].MemoInfo.MemoStateNum != -1 {
			continue // loopDestTargets can repeat a target
		}
		p.Instructions[i].MemoInfo.ShouldMemo = true
		p.Instructions[i].MemoInfo.MemoStateNum = next
		next++
	}
	p.NMemoizedStates = next
}

// computeInDegree sets InDegree on every instruction by counting
// incoming edges: fall-through from the previous instruction (for
// opcodes that fall through) plus every X/Y/Edges target across the
// program.
func computeInDegree(p *inst.Program) {
	for i := range p.Instructions {
		p.Instructions[i].InDegree = 0
	}
	for i := range p.Instructions {
		in := &p.Instructions[i]
		switch in.Opcode {
		case inst.OpJmp:
			p.Instructions[in.X].InDegree++
		case inst.OpSplit:
			p.Instructions[in.X].InDegree++
			p.Instructions[in.Y].InDegree++
		case inst.OpSplitMany:
			for _, e := range in.Edges {
				p.Instructions[e].InDegree++
			}
		case inst.OpMatch:
			// no outgoing edge
		default:
			if i+1 < p.Len() {
				p.Instructions[i+1].InDegree++
			}
		}
	}
}

// loopDestTargets returns the x target of every Jmp instruction that
// points at or before itself: the head of a Star/Plus loop body.
func loopDestTargets(p *inst.Program) []int {
	var targets []int
	for i := range p.Instructions {
		in := &p.Instructions[i]
		if in.Opcode == inst.OpJmp && in.X <= i {
			targets = append(targets, in.X)
		}
	}
	return targets
}
