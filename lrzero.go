package lrzero

import "fmt"

// --- A general purpose interface for tokens --------------------------------

// Token represents an input token. Tokens are produced outside of this module,
// usually by a scanner, and reflect terminals of a grammar. The type parameter
// T is the terminal alphabet of the grammar the token is parsed against.
//
// An example would be a token for an integer literal:
//
//	Kind   = Number      // terminal this token stands for (application specific)
//	Lexeme = "42"        // lexeme as it appeared in the input stream
//	Value  = 42          // an int value
//	Span   = 67…69       // occured from position 67 in the input stream
type Token[T comparable] interface {
	Kind() T
	Lexeme() string
	Value() interface{}
	Span() Span
}

// DefaultToken is a very unsophisticated token type. Scanner adapters and tests
// use it whenever no application specific token type is at hand.
type DefaultToken[T comparable] struct {
	kind   T
	lexeme string
	Val    interface{}
	span   Span
}

var _ Token[int] = DefaultToken[int]{}

// MakeToken creates a token of kind typ. The token's value defaults to its lexeme.
func MakeToken[T comparable](typ T, lexeme string, span Span) DefaultToken[T] {
	return DefaultToken[T]{
		kind:   typ,
		lexeme: lexeme,
		Val:    lexeme,
		span:   span,
	}
}

// EOFToken creates a token for the end-of-input terminal eof. It carries
// neither a lexeme nor a value.
func EOFToken[T comparable](eof T, pos uint64) DefaultToken[T] {
	return DefaultToken[T]{kind: eof, span: Span{pos, pos}}
}

// WithValue returns a copy of t with its value set to v.
func (t DefaultToken[T]) WithValue(v interface{}) DefaultToken[T] {
	t.Val = v
	return t
}

func (t DefaultToken[T]) Kind() T {
	return t.kind
}

func (t DefaultToken[T]) Value() interface{} {
	return t.Val
}

func (t DefaultToken[T]) Lexeme() string {
	return t.lexeme
}

func (t DefaultToken[T]) Span() Span {
	return t.span
}

func (t DefaultToken[T]) String() string {
	if t.lexeme == "" {
		return fmt.Sprintf("<%v>", t.kind)
	}
	return fmt.Sprintf("%q<%v>", t.lexeme, t.kind)
}

// --- Spans ------------------------------------------------------------

// Span is a small type for capturing a length of input token run. For every
// terminal and non-terminal, the parser tracks which input positions
// this symbol covers. A span denotes a start position and the position just
// behind the end.
type Span [2]uint64 // (x…y)

// From returns the start value of a span.
func (s Span) From() uint64 {
	return s[0]
}

// To returns the end value of a span.
func (s Span) To() uint64 {
	return s[1]
}

// Len returns the length of (x…y)
func (s Span) Len() uint64 {
	return s[1] - s[0]
}

func (s Span) IsNull() bool {
	return s == Span{}
}

// Extend returns the smallest span covering s and other. Null spans are
// neutral elements.
func (s Span) Extend(other Span) Span {
	if s.IsNull() {
		return other
	}
	if other.IsNull() {
		return s
	}
	if other[0] < s[0] {
		s[0] = other[0]
	}
	if other[1] > s[1] {
		s[1] = other[1]
	}
	return s
}

func (s Span) String() string {
	return fmt.Sprintf("(%d…%d)", s[0], s[1])
}
