package grammars

import (
	"github.com/npillmayer/lrzero/lr/scanner"
	"github.com/timtadh/lexmachine"
)

// Lexer creates a scanner for all terminals of the example grammars.
// '$' is scanned as EOF; whitespace is skipped.
func Lexer() (*scanner.LMAdapter[Tok], error) {
	literals := []string{"(", ")", "+", "$"}
	keywords := []string{"1", "if", "else", "a", "x"}
	ids := make(map[string]Tok, len(tokNames))
	for t, name := range tokNames {
		ids[name] = t
	}
	init := func(lexer *lexmachine.Lexer) {
		lexer.Add([]byte(`( |\t|\n|\r)+`), scanner.Skip)
	}
	return scanner.NewLMAdapter(init, literals, keywords, ids, EOF)
}
