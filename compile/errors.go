package compile

import (
	"errors"
	"fmt"

	"github.com/jdavis-research/memoregex/ast"
)

// ErrUnsupportedKind is the sentinel wrapped by KindError.
var ErrUnsupportedKind = errors.New("compile: unsupported node kind")

// KindError reports that count or emit encountered a node kind it does
// not know how to lower. This should only happen for a kind Normalize
// was supposed to eliminate (KindCurly) or one newly added to the AST
// without a matching compiler case.
type KindError struct {
	Op   string
	Kind ast.Kind
}

func (e *KindError) Error() string {
	return fmt.Sprintf("compile: %s: unsupported node kind %v", e.Op, e.Kind)
}

func (e *KindError) Unwrap() error { return ErrUnsupportedKind }
