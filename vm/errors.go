package vm

import "errors"

// ErrThreadStackOverflow is returned when a Split would need to push a
// thread past Config.MaxThreads, mirroring backtrack.c's fatal
// "backtrack overflow".
var ErrThreadStackOverflow = errors.New("vm: thread stack overflow")

// ErrRecursionTooDeep bounds the nested lookahead sub-search
// RecursiveZeroWidthAssertion runs, guarding against a lookahead whose
// body itself contains an unbounded lookahead chain.
var ErrRecursionTooDeep = errors.New("vm: lookahead recursion too deep")
