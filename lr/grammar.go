package lr

import (
	"errors"
	"fmt"
	"strings"

	"github.com/npillmayer/lrzero"
	"golang.org/x/exp/constraints"
	"golang.org/x/exp/slices"
)

// Errors for grammar definition problems. These are detected either when a grammar
// is built or when the CFSM for a grammar is constructed.
var (
	ErrEmptyGrammar       = errors.New("grammar has no rules")
	ErrDuplicateRule      = errors.New("duplicate rule")
	ErrNoStartRule        = errors.New("no rule for start symbol")
	ErrAmbiguousStartRule = errors.New("more than one rule for start symbol")
	ErrMalformedStartRule = errors.New("start rule is not of form S' ➞ S EOF")
	ErrEOFMisuse          = errors.New("end-of-input terminal used outside of start rule")
)

// --- Semantic values -------------------------------------------------------

// Value is an entry of a parser's value stack. It either holds an input token
// (for a shifted terminal) or the value a reduction has synthesized for a
// non-terminal.
type Value[T constraints.Ordered] struct {
	token  lrzero.Token[T]
	synth  interface{}
	span   lrzero.Span
	isTerm bool
}

// TerminalValue wraps a token for the value stack.
func TerminalValue[T constraints.Ordered](tok lrzero.Token[T]) Value[T] {
	return Value[T]{token: tok, span: tok.Span(), isTerm: true}
}

// NonTerminalValue wraps a synthesized value for the value stack.
func NonTerminalValue[T constraints.Ordered](v interface{}, span lrzero.Span) Value[T] {
	return Value[T]{synth: v, span: span}
}

// IsTerminal is true if v holds a token.
func (v Value[T]) IsTerminal() bool {
	return v.isTerm
}

// Token returns the token of a terminal value, or nil.
func (v Value[T]) Token() lrzero.Token[T] {
	return v.token
}

// Value returns the token's value for terminals and the synthesized value
// for non-terminals.
func (v Value[T]) Value() interface{} {
	if v.isTerm {
		return v.token.Value()
	}
	return v.synth
}

// Span returns the input span covered by v.
func (v Value[T]) Span() lrzero.Span {
	return v.span
}

func (v Value[T]) String() string {
	if v.isTerm {
		return fmt.Sprintf("%v", v.token)
	}
	return fmt.Sprintf("⟨%v⟩", v.synth)
}

// ReduceFunc is a semantic action for a rule. It receives the values of the
// rule's right hand side, in left-to-right order, and returns the value for the
// rule's left hand side. A ReduceFunc should not keep a reference to args.
type ReduceFunc[T constraints.Ordered] func(args []Value[T]) interface{}

// --- Rules -----------------------------------------------------------------

// Rule is a grammar production LHS ➞ RHS. Rules are created by a GrammarBuilder
// and are immutable afterwards.
type Rule[T, NT constraints.Ordered] struct {
	Serial int // ordinal number of this rule within its grammar
	LHS    NT
	rhs    []Symbol[T, NT]
	action ReduceFunc[T]
}

// RHS returns a copy of the right hand side of a rule.
func (r *Rule[T, NT]) RHS() []Symbol[T, NT] {
	return slices.Clone(r.rhs)
}

// Len returns the number of symbols of the right hand side.
func (r *Rule[T, NT]) Len() int {
	return len(r.rhs)
}

// IsEps is true for epsilon productions.
func (r *Rule[T, NT]) IsEps() bool {
	return len(r.rhs) == 0
}

// Action returns the semantic action of a rule, or nil.
func (r *Rule[T, NT]) Action() ReduceFunc[T] {
	return r.action
}

func (r *Rule[T, NT]) String() string {
	return fmt.Sprintf("%v ::= %v", NonTerm[T](r.LHS), symbolsString(r.rhs))
}

func (r *Rule[T, NT]) sameAs(other *Rule[T, NT]) bool {
	return r.LHS == other.LHS && compareSymbols(r.rhs, other.rhs) == 0
}

func symbolsString[T, NT constraints.Ordered](syms []Symbol[T, NT]) string {
	var b strings.Builder
	b.WriteString("[")
	for i, A := range syms {
		if i > 0 {
			b.WriteString(" ")
		}
		b.WriteString(A.String())
	}
	b.WriteString("]")
	return b.String()
}

// --- Grammar ---------------------------------------------------------------

// Grammar is an ordered list of rules. By convention rule 0 is the augmented
// start rule S' ➞ S EOF, as created by GrammarBuilder.EOF().
type Grammar[T, NT constraints.Ordered] struct {
	Name         string
	rules        []*Rule[T, NT]
	terminals    []T
	nonterminals []NT
}

// Rule returns rule no. i, or nil.
func (g *Grammar[T, NT]) Rule(i int) *Rule[T, NT] {
	if i < 0 || i >= len(g.rules) {
		return nil
	}
	return g.rules[i]
}

// Rules returns all rules, in order of definition.
func (g *Grammar[T, NT]) Rules() []*Rule[T, NT] {
	return slices.Clone(g.rules)
}

// Size returns the number of rules.
func (g *Grammar[T, NT]) Size() int {
	return len(g.rules)
}

// StartRule returns rule 0.
func (g *Grammar[T, NT]) StartRule() *Rule[T, NT] {
	return g.rules[0]
}

// Terminals returns the terminals occuring in the grammar, sorted.
func (g *Grammar[T, NT]) Terminals() []T {
	return slices.Clone(g.terminals)
}

// NonTerminals returns the non-terminals occuring in the grammar, sorted.
func (g *Grammar[T, NT]) NonTerminals() []NT {
	return slices.Clone(g.nonterminals)
}

// Symbols returns the complete alphabet of the grammar, terminals first.
func (g *Grammar[T, NT]) Symbols() []Symbol[T, NT] {
	syms := make([]Symbol[T, NT], 0, len(g.terminals)+len(g.nonterminals))
	for _, t := range g.terminals {
		syms = append(syms, Term[T, NT](t))
	}
	for _, N := range g.nonterminals {
		syms = append(syms, NonTerm[T](N))
	}
	return syms
}

// FindNonTermRules returns all rules with left hand side N.
func (g *Grammar[T, NT]) FindNonTermRules(N NT) []*Rule[T, NT] {
	var R []*Rule[T, NT]
	for _, r := range g.rules {
		if r.LHS == N {
			R = append(R, r)
		}
	}
	return R
}

// IsAugmented checks if rule 0 is a valid augmented start rule S' ➞ S EOF.
func (g *Grammar[T, NT]) IsAugmented() bool {
	_, err := g.startRule(g.rules[0].LHS)
	return err == nil
}

// Augmentation returns S', S and EOF from the augmented start rule S' ➞ S EOF.
// It returns an error if rule 0 is not an augmented start rule.
func (g *Grammar[T, NT]) Augmentation() (augStart NT, start NT, eof T, err error) {
	var r *Rule[T, NT]
	if r, err = g.startRule(g.rules[0].LHS); err != nil {
		return
	}
	return r.LHS, r.rhs[0].NonTerminal(), r.rhs[1].Terminal(), nil
}

// startRule checks the grammar for a unique rule S' ➞ S EOF, where S' does not
// appear on any right hand side and EOF is used nowhere else.
func (g *Grammar[T, NT]) startRule(S NT) (*Rule[T, NT], error) {
	R := g.FindNonTermRules(S)
	if len(R) == 0 {
		return nil, fmt.Errorf("%w %v", ErrNoStartRule, NonTerm[T](S))
	} else if len(R) > 1 {
		return nil, fmt.Errorf("%w %v", ErrAmbiguousStartRule, NonTerm[T](S))
	}
	start := R[0]
	if start.Len() != 2 || start.rhs[0].IsTerminal() || !start.rhs[1].IsTerminal() {
		return nil, fmt.Errorf("%w: %v", ErrMalformedStartRule, start)
	}
	eof := start.rhs[1].Terminal()
	for _, r := range g.rules {
		for i, A := range r.rhs {
			if A.IsNonTerminal(S) {
				return nil, fmt.Errorf("%w: %v occurs in rule %v", ErrMalformedStartRule, A, r)
			}
			if r == start && i == 1 {
				continue
			}
			if A.IsTerminal() && A.Terminal() == eof {
				return nil, fmt.Errorf("%w: %v", ErrEOFMisuse, r)
			}
		}
	}
	return start, nil
}

// Dump is a debugging helper, tracing all rules at debug level.
func (g *Grammar[T, NT]) Dump() {
	tracer().Debugf("--- %s --------------------------------------------", g.Name)
	for _, r := range g.rules {
		tracer().Debugf("%3d: %s", r.Serial, r)
	}
	tracer().Debugf("-------------------------------------------------------")
}

// --- Grammar Builder -------------------------------------------------------

// GrammarBuilder is a builder type for grammars. Use it like this:
//
//	b := lr.NewGrammarBuilder[Tok, NT]("G")
//	b.LHS(Sx).N(S).EOF(Eof)                      // S' ➞ S #eof
//	b.LHS(S).T(LParen).N(E).T(RParen).End()      // S  ➞ ( E )
//	b.LHS(E).N(E).T(Plus).N(P).Action(add).End() // E  ➞ E + P
//	b.LHS(E).Epsilon()                           // E  ➞
//	g, err := b.Grammar()
type GrammarBuilder[T, NT constraints.Ordered] struct {
	g    *Grammar[T, NT]
	errs []error
}

// NewGrammarBuilder creates a builder for a grammar with a given name.
func NewGrammarBuilder[T, NT constraints.Ordered](name string) *GrammarBuilder[T, NT] {
	return &GrammarBuilder[T, NT]{
		g: &Grammar[T, NT]{Name: name},
	}
}

// RuleBuilder builds a single rule. Call one of End(), Epsilon() or EOF() to
// finish the rule.
type RuleBuilder[T, NT constraints.Ordered] struct {
	gb     *GrammarBuilder[T, NT]
	rule   *Rule[T, NT]
	closed bool
}

// LHS starts a new rule with left hand side N.
func (gb *GrammarBuilder[T, NT]) LHS(N NT) *RuleBuilder[T, NT] {
	return &RuleBuilder[T, NT]{
		gb:   gb,
		rule: &Rule[T, NT]{LHS: N},
	}
}

// N appends a non-terminal to the right hand side.
func (rb *RuleBuilder[T, NT]) N(N NT) *RuleBuilder[T, NT] {
	rb.rule.rhs = append(rb.rule.rhs, NonTerm[T](N))
	return rb
}

// T appends a terminal to the right hand side.
func (rb *RuleBuilder[T, NT]) T(t T) *RuleBuilder[T, NT] {
	rb.rule.rhs = append(rb.rule.rhs, Term[T, NT](t))
	return rb
}

// Action sets the semantic action for the rule.
func (rb *RuleBuilder[T, NT]) Action(f ReduceFunc[T]) *RuleBuilder[T, NT] {
	rb.rule.action = f
	return rb
}

// End finishes the rule.
func (rb *RuleBuilder[T, NT]) End() *Rule[T, NT] {
	if rb.closed {
		rb.gb.errs = append(rb.gb.errs, fmt.Errorf("rule %v finished twice", rb.rule))
		return rb.rule
	}
	rb.closed = true
	rb.rule.Serial = len(rb.gb.g.rules)
	rb.gb.g.rules = append(rb.gb.g.rules, rb.rule)
	return rb.rule
}

// Epsilon finishes an epsilon rule N ➞ ε.
func (rb *RuleBuilder[T, NT]) Epsilon() *Rule[T, NT] {
	if len(rb.rule.rhs) > 0 {
		rb.gb.errs = append(rb.gb.errs, fmt.Errorf("epsilon rule %v has symbols", rb.rule))
	}
	return rb.End()
}

// EOF appends the end-of-input terminal and finishes the rule. This is
// intended for the augmented start rule S' ➞ S EOF.
func (rb *RuleBuilder[T, NT]) EOF(eof T) *Rule[T, NT] {
	return rb.T(eof).End()
}

// Grammar returns the grammar built so far, or an error if rules are
// missing or defined twice.
func (gb *GrammarBuilder[T, NT]) Grammar() (*Grammar[T, NT], error) {
	if len(gb.errs) > 0 {
		return nil, errors.Join(gb.errs...)
	}
	g := gb.g
	if len(g.rules) == 0 {
		return nil, fmt.Errorf("grammar %q: %w", g.Name, ErrEmptyGrammar)
	}
	for i, r := range g.rules {
		for _, other := range g.rules[:i] {
			if r.sameAs(other) {
				return nil, fmt.Errorf("grammar %q: %w %v", g.Name, ErrDuplicateRule, r)
			}
		}
	}
	g.terminals, g.nonterminals = collectSymbols(g.rules)
	return g, nil
}

func collectSymbols[T, NT constraints.Ordered](rules []*Rule[T, NT]) ([]T, []NT) {
	var terms []T
	var nonterms []NT
	for _, r := range rules {
		nonterms = append(nonterms, r.LHS)
		for _, A := range r.rhs {
			if A.IsTerminal() {
				terms = append(terms, A.Terminal())
			} else {
				nonterms = append(nonterms, A.NonTerminal())
			}
		}
	}
	slices.Sort(terms)
	slices.Sort(nonterms)
	return slices.Compact(terms), slices.Compact(nonterms)
}
