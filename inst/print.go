package inst

import (
	"fmt"
	"strings"
)

// String renders the program in the same per-instruction format the
// original engine's printprog used, for debug logging.
func (p *Program) String() string {
	var b strings.Builder
	b.WriteString("BEGIN\n")
	for i, in := range p.Instructions {
		fmt.Fprintf(&b, "%2d. %s", i, in.Opcode)
		switch in.Opcode {
		case OpChar:
			fmt.Fprintf(&b, " %q", in.C)
		case OpSave:
			fmt.Fprintf(&b, " %d", in.N)
		case OpJmp:
			fmt.Fprintf(&b, " %d", in.X)
		case OpSplit:
			fmt.Fprintf(&b, " %d, %d", in.X, in.Y)
		case OpSplitMany:
			fmt.Fprintf(&b, " %v", in.Edges)
		case OpStringCompare:
			fmt.Fprintf(&b, " %d", in.CgNum)
		}
		fmt.Fprintf(&b, "  (memo? %v -- state %d, visitInterval %d)\n",
			in.MemoInfo.ShouldMemo, in.MemoInfo.MemoStateNum, in.MemoInfo.VisitInterval)
	}
	b.WriteString("END\n")
	return b.String()
}
