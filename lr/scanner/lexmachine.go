package scanner

import (
	"errors"
	"fmt"
	"strings"

	"github.com/npillmayer/lrzero"
	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// lexmachine adapter

// ErrTrailingInput is reported for input following an end-of-input token.
var ErrTrailingInput = errors.New("input continues after end of input")

// LMAdapter is a lexmachine adapter to use lexmachine as a scanner.
// Token kinds are integers, as lexmachine identifies token types by int.
type LMAdapter[T ~int] struct {
	Lexer *lexmachine.Lexer
	eof   T
}

// NewLMAdapter creates a new lexmachine adapter. It receives a list of
// literals ('[', ';', …), a list of keywords ("if", "for", …) and a
// map for translating token strings to their values. eof is the token kind
// the scanner returns at the end of input.
//
// NewLMAdapter will return an error if compiling the DFA failed.
func NewLMAdapter[T ~int](init func(*lexmachine.Lexer), literals []string, keywords []string,
	tokenIds map[string]T, eof T) (*LMAdapter[T], error) {
	//
	adapter := &LMAdapter[T]{eof: eof}
	adapter.Lexer = lexmachine.NewLexer()
	if init != nil {
		init(adapter.Lexer)
	}
	for _, lit := range literals {
		r := "\\" + strings.Join(strings.Split(lit, ""), "\\")
		adapter.Lexer.Add([]byte(r), MakeToken(lit, tokenIds[lit]))
	}
	for _, name := range keywords {
		adapter.Lexer.Add([]byte(strings.ToLower(name)), MakeToken(name, tokenIds[name]))
	}
	if err := adapter.Lexer.Compile(); err != nil {
		tracer().Errorf("Error compiling DFA: %v", err)
		return nil, err
	}
	return adapter, nil
}

// Scanner creates a scanner for a given input. The scanner will implement the
// Tokenizer interface.
func (lm *LMAdapter[T]) Scanner(input string) (*LMScanner[T], error) {
	s, err := lm.Lexer.Scanner([]byte(input))
	if err != nil {
		return nil, err
	}
	return &LMScanner[T]{scanner: s, eof: lm.eof, Error: logError, end: uint64(len(input))}, nil
}

// Tokenize scans an input string completely and returns its tokens,
// without the end-of-input token. Input which cannot be matched is an error,
// as is input following an explicit end-of-input token. All scanner errors
// are returned, joined into one.
func (lm *LMAdapter[T]) Tokenize(input string) ([]lrzero.Token[T], error) {
	sc, err := lm.Scanner(input)
	if err != nil {
		return nil, err
	}
	var errs []error
	sc.SetErrorHandler(func(e error) {
		logError(e)
		errs = append(errs, e)
	})
	tokens := Tokens[T](sc, lm.eof)
	if sc.explicit(sc.last) { // scanned an end-of-input token before the end
		if rest := sc.NextToken(); rest.Kind() != lm.eof || sc.explicit(rest) {
			errs = append(errs, fmt.Errorf("%w: %q at %v", ErrTrailingInput, rest.Lexeme(), rest.Span()))
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return tokens, nil
}

// LMScanner is a scanner type for lexmachine scanners, implementing the
// Tokenizer interface.
type LMScanner[T ~int] struct {
	scanner *lexmachine.Scanner
	eof     T
	end     uint64 // input length
	last    lrzero.Token[T]
	Error   func(error)
}

// explicit is true for a token which has been scanned from the input, as
// opposed to the end-of-input token returned at the end of input.
func (lms *LMScanner[T]) explicit(token lrzero.Token[T]) bool {
	return token != nil && (token.Kind() != lms.eof || token.Span().From() < lms.end)
}

var _ Tokenizer[int] = (*LMScanner[int])(nil)

// SetErrorHandler sets an error handler for the scanner.
func (lms *LMScanner[T]) SetErrorHandler(h func(error)) {
	if h == nil {
		lms.Error = logError
		return
	}
	lms.Error = h
}

// NextToken is part of the Tokenizer interface. Input which cannot be matched
// is reported to the error handler and skipped.
func (lms *LMScanner[T]) NextToken() lrzero.Token[T] {
	tok, err, eof := lms.scanner.Next()
	for err != nil {
		lms.Error(err)
		if ui, is := err.(*machines.UnconsumedInput); is {
			lms.scanner.TC = ui.FailTC
		}
		tok, err, eof = lms.scanner.Next()
	}
	if eof {
		lms.last = lrzero.EOFToken(lms.eof, lms.end)
		return lms.last
	}
	token := tok.(*lexmachine.Token)
	from := uint64(token.TC)
	lms.last = lrzero.MakeToken(
		T(token.Type),
		string(token.Lexeme),
		lrzero.Span{from, from + uint64(len(token.Lexeme))},
	)
	return lms.last
}

// ---------------------------------------------------------------------------

// Skip is a pre-defined action which ignores the scanned match.
func Skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

// MakeToken is a pre-defined action which wraps a scanned match into a token.
func MakeToken[T ~int](name string, id T) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(int(id), string(m.Bytes), m), nil
	}
}
