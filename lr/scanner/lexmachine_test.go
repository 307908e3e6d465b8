package scanner

import (
	"errors"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

type tokKind int

const (
	tokEOF tokKind = iota
	tokID
	tokNum
	tokString
	tokNil
	tokT
	tokLParen
	tokRParen
	tokPlus
	tokEquals
)

var inputStrings = []string{
	"1",
	"1+12",
	"Hello World",
	`x="mystring" // commented `,
	"1,22,333",
	"(nil t)",
}

var tokenCounts = []int{1, 3, 2, 3, 3, 4}

var literals = []string{"(", ")", "+", "="}
var keywords = []string{"nil", "t"}
var tokenIds = map[string]tokKind{
	"(":   tokLParen,
	")":   tokRParen,
	"+":   tokPlus,
	"=":   tokEquals,
	"nil": tokNil,
	"t":   tokT,
}

func makeAdapter(t *testing.T) *LMAdapter[tokKind] {
	init := func(lexer *lexmachine.Lexer) {
		lexer.Add([]byte(`//[^\n]*\n?`), Skip)
		lexer.Add([]byte(`\"[^"]*\"`), MakeToken("STRING", tokString))
		lexer.Add([]byte(`([a-z]|[A-Z])([a-z]|[A-Z]|[0-9]|_)*`), MakeToken("ID", tokID))
		lexer.Add([]byte(`[1-9][0-9]*`), MakeToken("NUM", tokNum))
		lexer.Add([]byte(`( |\,|\t|\n|\r)+`), Skip)
	}
	LM, err := NewLMAdapter(init, literals, keywords, tokenIds, tokEOF)
	if err != nil {
		t.Fatal(err)
	}
	return LM
}

func TestLM(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrzero.scanner")
	defer teardown()
	//
	LM := makeAdapter(t)
	for i, input := range inputStrings {
		t.Logf("------+-----------------+--------")
		sc, err := LM.Scanner(input)
		if err != nil {
			t.Fatal(err)
		}
		token := sc.NextToken()
		count := 0
		for token.Kind() != tokEOF {
			t.Logf(" %4d | %15s | @%5d", token.Kind(), token.Lexeme(), token.Span().From())
			token = sc.NextToken()
			count++
		}
		if count != tokenCounts[i] {
			t.Errorf("Expected token count for #%d to be %d, is %d", i, tokenCounts[i], count)
		}
	}
	t.Logf("------+-----------------+--------")
}

func TestTokenize(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrzero.scanner")
	defer teardown()
	//
	LM := makeAdapter(t)
	tokens, err := LM.Tokenize("x = 12")
	if err != nil {
		t.Fatal(err)
	}
	if len(tokens) != 3 {
		t.Fatalf("expected 3 tokens, got %d", len(tokens))
	}
	if tokens[1].Kind() != tokEquals || tokens[2].Kind() != tokNum {
		t.Errorf("unexpected token kinds %v", tokens)
	}
	if span := tokens[2].Span(); span.From() != 4 || span.To() != 6 {
		t.Errorf("expected span of 12 to be (4…6), is %v", span)
	}
	if tokens[2].Value() != "12" {
		t.Errorf("expected value of token to be its lexeme, is %v", tokens[2].Value())
	}
}

func TestScannerSkipsIllegalInput(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrzero.scanner")
	defer teardown()
	//
	LM := makeAdapter(t)
	sc, err := LM.Scanner("1 ? 2")
	if err != nil {
		t.Fatal(err)
	}
	var errs int
	sc.SetErrorHandler(func(error) { errs++ })
	tokens := Tokens[tokKind](sc, tokEOF)
	if len(tokens) != 2 {
		t.Errorf("expected 2 tokens, got %d", len(tokens))
	}
	if errs != 1 {
		t.Errorf("expected 1 scanner error, got %d", errs)
	}
}

func TestTokenizeReportsIllegalInput(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrzero.scanner")
	defer teardown()
	//
	LM := makeAdapter(t)
	tokens, err := LM.Tokenize("1 ? 2 ? 3")
	if err == nil {
		t.Fatalf("expected illegal input to be reported, got tokens %v", tokens)
	}
	var ui *machines.UnconsumedInput
	if !errors.As(err, &ui) {
		t.Errorf("expected error to be lexmachine's UnconsumedInput, is %T", err)
	}
	if n := strings.Count(err.Error(), "could not match"); n != 2 {
		t.Errorf("expected 2 scanner errors to be joined, have %d: %v", n, err)
	}
}
