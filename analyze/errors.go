package analyze

import (
	"errors"
	"fmt"
)

// ErrInfiniteLoop is the sentinel wrapped by LoopError.
var ErrInfiniteLoop = errors.New("analyze: pattern can match the empty string in an infinite loop")

// LoopError reports that StateNum begins a zero-width cycle, e.g. the
// program compiled from "(a*)*".
type LoopError struct {
	StateNum int
}

func (e *LoopError) Error() string {
	return fmt.Sprintf("analyze: infinite loop possible, starting from instruction %d (nested repetition like (a*)*)", e.StateNum)
}

func (e *LoopError) Unwrap() error { return ErrInfiniteLoop }
