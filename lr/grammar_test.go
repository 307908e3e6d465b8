package lr

import (
	"errors"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

// S' ➞ S $
// S  ➞ ( E )
// E  ➞ E + P | P
// P  ➞ ( E ) | 1
func parenGrammar(t *testing.T) *Grammar[string, string] {
	b := NewGrammarBuilder[string, string]("Parens")
	b.LHS("S'").N("S").EOF("$")
	b.LHS("S").T("(").N("E").T(")").End()
	b.LHS("E").N("E").T("+").N("P").End()
	b.LHS("E").N("P").End()
	b.LHS("P").T("(").N("E").T(")").End()
	b.LHS("P").T("1").End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	return g
}

// S' ➞ X $
// X  ➞ if X | if X else X | a
func danglingElseGrammar(t *testing.T) *Grammar[string, string] {
	b := NewGrammarBuilder[string, string]("Dangling Else")
	b.LHS("S'").N("X").EOF("$")
	b.LHS("X").T("if").N("X").End()
	b.LHS("X").T("if").N("X").T("else").N("X").End()
	b.LHS("X").T("a").End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestGrammarBuilder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrzero.lr")
	defer teardown()
	//
	g := parenGrammar(t)
	g.Dump()
	if g.Size() != 6 {
		t.Errorf("expected grammar to have 6 rules, has %d", g.Size())
	}
	if r := g.Rule(2); r.Serial != 2 || r.LHS != "E" || r.Len() != 3 {
		t.Errorf("rule 2 expected to be E ➞ E + P, is %v", r)
	}
	if g.Rule(6) != nil || g.Rule(-1) != nil {
		t.Errorf("expected rules out of range to be nil")
	}
	terms := g.Terminals()
	if len(terms) != 5 || terms[0] != "$" || terms[4] != "1" {
		t.Errorf("unexpected terminals %v", terms)
	}
	nonterms := g.NonTerminals()
	if len(nonterms) != 4 || nonterms[0] != "E" || nonterms[3] != "S'" {
		t.Errorf("unexpected non-terminals %v", nonterms)
	}
	syms := g.Symbols()
	if len(syms) != 9 || !syms[0].IsTerminal() || syms[5].IsTerminal() {
		t.Errorf("unexpected alphabet %v", syms)
	}
	if R := g.FindNonTermRules("P"); len(R) != 2 {
		t.Errorf("expected 2 rules for P, got %d", len(R))
	}
	if !g.IsAugmented() {
		t.Errorf("expected grammar to be augmented")
	}
	aug, start, eof, err := g.Augmentation()
	if err != nil || aug != "S'" || start != "S" || eof != "$" {
		t.Errorf("unexpected augmentation %v ➞ %v %v, err=%v", aug, start, eof, err)
	}
}

func TestGrammarEpsilon(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrzero.lr")
	defer teardown()
	//
	b := NewGrammarBuilder[string, string]("Eps")
	b.LHS("S'").N("S").EOF("$")
	b.LHS("S").T("(").N("S").T(")").N("S").End()
	eps := b.LHS("S").Epsilon()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	if !eps.IsEps() || g.Rule(2) != eps {
		t.Errorf("expected rule 2 to be an epsilon rule, is %v", g.Rule(2))
	}
}

func TestGrammarDefinitionErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrzero.lr")
	defer teardown()
	//
	b := NewGrammarBuilder[string, string]("Empty")
	if _, err := b.Grammar(); !errors.Is(err, ErrEmptyGrammar) {
		t.Errorf("expected empty grammar error, got %v", err)
	}
	b = NewGrammarBuilder[string, string]("Duplicate")
	b.LHS("S'").N("S").EOF("$")
	b.LHS("S").T("a").End()
	b.LHS("S").T("a").End()
	if _, err := b.Grammar(); !errors.Is(err, ErrDuplicateRule) {
		t.Errorf("expected duplicate rule error, got %v", err)
	}
	b = NewGrammarBuilder[string, string]("Eps with symbols")
	b.LHS("S").T("a").Epsilon()
	if _, err := b.Grammar(); err == nil {
		t.Errorf("expected epsilon rule with symbols to be rejected")
	}
}

func TestRuleString(t *testing.T) {
	g := parenGrammar(t)
	if s := g.Rule(1).String(); s != "[S] ::= [( [E] )]" {
		t.Errorf("unexpected rule string %q", s)
	}
}
