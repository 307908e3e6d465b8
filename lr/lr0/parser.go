/*
Package lr0 provides a table-driven LR(0)-parser. Clients have to use the tools
of package lr to prepare the necessary parse tables. The LR(0) parser
utilizes these tables to create a right derivation for a given input,
provided as a sequence of tokens.

This parser is intended for small grammars, e.g. for configuration
input or small domain-specific languages, and for teaching. It is *not* intended
for full-fledged programming languages. LR(0) tables are free of conflicts only for
a small class of grammars; for grammars with conflicts the parser follows the
default resolution of the table (shift wins over reduce, first reduction wins
over others).

The main focus for this implementation is adaptability and on-the-fly usage.
Clients are able to construct the parse tables from a grammar and use the
parser directly, without a code-generation or compile step.

# Usage

Clients construct a grammar, usually by using a grammar builder, and attach
semantic actions to the rules:

	b := lr.NewGrammarBuilder[Tok, NT]("Sums")
	b.LHS(Start).N(Sum).EOF(EOF)
	b.LHS(Sum).N(Sum).T(Plus).T(Num).Action(add).End()
	b.LHS(Sum).T(Num).Action(num).End()
	g, err := b.Grammar()

This grammar is subjected to table generation.

	lrgen := lr.NewTableGenerator(g)
	if err := lrgen.CreateTables(); err != nil { ... }  // malformed grammar
	if lrgen.HasConflicts { ... }                      // not an LR(0) grammar

Finally parse some input:

	p := lr0.NewParser(lrgen.Table())
	result, err := p.Parse(tokens)

The result is the value the semantic action of the topmost rule below the start
rule has synthesized. Input tokens are of type lrzero.Token. If the input is
exhausted, the parser reads the end-of-input terminal of the grammar.

A parser may be used for any number of parses, concurrently.

___________________________________________________________________________

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package lr0

import (
	"context"

	"github.com/npillmayer/lrzero"
	"github.com/npillmayer/lrzero/lr"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/exp/constraints"
)

// tracer traces with key 'lrzero.lr'.
func tracer() tracing.Trace {
	return tracing.Select("lrzero.lr")
}

// Parser is an LR(0)-parser type. Create and initialize one with lr0.NewParser(...)
type Parser[T, NT constraints.Ordered] struct {
	table *lr.Table[T, NT]
	opts  options
}

type options struct {
	onStep         func(Step)
	panicOnMissing bool
}

// Option configures a parser.
type Option func(opts *options)

// WithStepHandler sets a function which is called after every step of a parse.
// This is intended for debugging and for visualizing parses.
func WithStepHandler(f func(Step)) Option {
	return func(opts *options) {
		opts.onStep = f
	}
}

// PanicOnMissingAction makes the parser panic if it encounters a reduction for
// a rule without a semantic action. Otherwise it stops with ErrMissingAction.
func PanicOnMissingAction(b bool) Option {
	return func(opts *options) {
		opts.panicOnMissing = b
	}
}

// NewParser creates an LR(0) parser for a parse table.
func NewParser[T, NT constraints.Ordered](table *lr.Table[T, NT], opts ...Option) *Parser[T, NT] {
	p := &Parser[T, NT]{table: table}
	for _, option := range opts {
		option(&p.opts)
	}
	return p
}

// Table returns the parse table the parser is driven by.
func (p *Parser[T, NT]) Table() *lr.Table[T, NT] {
	return p.table
}

// Parse parses a sequence of tokens. It returns the synthesized value for the
// start symbol if the input has been accepted.
func (p *Parser[T, NT]) Parse(tokens []lrzero.Token[T]) (interface{}, error) {
	return p.ParseContext(context.Background(), tokens)
}

// ParseContext parses a sequence of tokens, like Parse. The parse is stopped
// as soon as ctx is done, returning ctx.Err().
func (p *Parser[T, NT]) ParseContext(ctx context.Context, tokens []lrzero.Token[T]) (interface{}, error) {
	tracer().Debugf("~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~")
	run := p.NewRun(tokens)
	for {
		if err := ctx.Err(); err != nil {
			run.fail(err)
			break
		}
		if run.Step() != Running {
			break
		}
	}
	return run.Result(), run.Err()
}
