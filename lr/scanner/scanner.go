/*
Package scanner defines an interface for scanners to be used with parsers of package lr.

Parsers of package lr do not scan their input. They consume a sequence of
tokens of type lrzero.Token. This package provides an adapter for lexmachine,
a lexer generator, and helpers to turn a scanner's token stream into token
sequences for the parser.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package scanner

import (
	"fmt"

	"github.com/npillmayer/lrzero"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lrzero.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("lrzero.scanner")
}

// Tokenizer is a scanner interface. At the end of input, a tokenizer returns
// an end-of-input token, and will continue to do so on subsequent calls.
type Tokenizer[T comparable] interface {
	NextToken() lrzero.Token[T]
	SetErrorHandler(func(error))
}

// Tokens reads tokens from a tokenizer until the end-of-input terminal eof is
// encountered. The end-of-input token is not included in the result.
func Tokens[T comparable](tz Tokenizer[T], eof T) []lrzero.Token[T] {
	var tokens []lrzero.Token[T]
	for token := tz.NextToken(); token.Kind() != eof; token = tz.NextToken() {
		tracer().Debugf("token %v at %v", token, token.Span())
		tokens = append(tokens, token)
	}
	return tokens
}

// Default error reporting function for scanners
func logError(e error) {
	tracer().Errorf("scanner error: %v", e)
}

// Lexeme is a helper function to receive a string from a token value.
func Lexeme(token interface{}) string {
	switch t := token.(type) {
	case string:
		return t
	case []byte:
		return string(t)
	default:
		return fmt.Sprintf("%v", t)
	}
}
