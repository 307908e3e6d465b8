package lr

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

// Symbol is a grammar symbol, either a terminal of type T or a non-terminal of
// type NT. Symbols are values: they may be copied freely, compared with == and
// used as map keys.
//
// Symbol is a closed two-variant type. Client code branches on IsTerminal():
//
//	if A.IsTerminal() {
//	    t := A.Terminal()
//	    …
//	} else {
//	    N := A.NonTerminal()
//	    …
//	}
type Symbol[T, NT constraints.Ordered] struct {
	t      T
	nt     NT
	isTerm bool
}

// Term creates a terminal symbol.
func Term[T, NT constraints.Ordered](t T) Symbol[T, NT] {
	return Symbol[T, NT]{t: t, isTerm: true}
}

// NonTerm creates a non-terminal symbol.
func NonTerm[T, NT constraints.Ordered](nt NT) Symbol[T, NT] {
	return Symbol[T, NT]{nt: nt}
}

// IsTerminal returns true if A is a terminal symbol.
func (A Symbol[T, NT]) IsTerminal() bool {
	return A.isTerm
}

// Terminal returns the terminal value of A. It panics if A is a non-terminal.
func (A Symbol[T, NT]) Terminal() T {
	if !A.isTerm {
		panic(fmt.Sprintf("symbol %v is not a terminal", A))
	}
	return A.t
}

// NonTerminal returns the non-terminal value of A. It panics if A is a terminal.
func (A Symbol[T, NT]) NonTerminal() NT {
	if A.isTerm {
		panic(fmt.Sprintf("symbol %v is not a non-terminal", A))
	}
	return A.nt
}

// IsNonTerminal returns true if A is the non-terminal N.
func (A Symbol[T, NT]) IsNonTerminal(N NT) bool {
	return !A.isTerm && A.nt == N
}

// Compare orders symbols: terminals before non-terminals, then by value.
func (A Symbol[T, NT]) Compare(B Symbol[T, NT]) int {
	switch {
	case A.isTerm && !B.isTerm:
		return -1
	case !A.isTerm && B.isTerm:
		return 1
	case A.isTerm:
		return compare(A.t, B.t)
	}
	return compare(A.nt, B.nt)
}

func (A Symbol[T, NT]) String() string {
	if A.isTerm {
		return fmt.Sprintf("%v", A.t)
	}
	return fmt.Sprintf("[%v]", A.nt)
}

func compare[X constraints.Ordered](a, b X) int {
	if a < b {
		return -1
	} else if a > b {
		return 1
	}
	return 0
}

func compareSymbols[T, NT constraints.Ordered](a, b []Symbol[T, NT]) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if c := a[i].Compare(b[i]); c != 0 {
			return c
		}
	}
	return compare(len(a), len(b))
}
