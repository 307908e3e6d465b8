package lr0

import (
	"errors"
	"fmt"

	"github.com/npillmayer/lrzero"
	"golang.org/x/exp/constraints"
)

// Errors returned by a parse.
var (
	ErrNotInitialized  = errors.New("LR(0)-parser not initialized")
	ErrUnexpectedToken = errors.New("unexpected token")
	ErrNoAction        = errors.New("no action defined")
	ErrNoGoto          = errors.New("no GOTO entry")
	ErrMissingAction   = errors.New("rule has no semantic action")
	ErrNoProgress      = errors.New("reductions do not consume input")
)

// SyntaxError is returned for input which does not conform to the grammar.
// Reason is ErrUnexpectedToken for a token which is part of the grammar
// but not expected in State, and ErrNoAction for a token which is not part
// of the grammar at all. With ErrNoProgress, the parser would reduce forever
// without consuming Token, which may happen for grammars with conflicts.
type SyntaxError[T constraints.Ordered] struct {
	State  int
	Token  lrzero.Token[T]
	Reason error
}

func (e *SyntaxError[T]) Error() string {
	return fmt.Sprintf("syntax error in state %d at %v: %v", e.State, e.Token, e.Reason)
}

func (e *SyntaxError[T]) Unwrap() error {
	return e.Reason
}
