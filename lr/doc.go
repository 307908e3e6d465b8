/*
Package lr implements prerequisites for LR(0) parsing: grammars, LR(0) items,
the characteristic finite state machine (CFSM) and parser tables.

# Building a Grammar

Grammars are specified using a grammar builder object. Clients add
rules, consisting of non-terminal symbols and terminals. Terminals and
non-terminals are of any ordered type, usually small integer enums or strings.
Grammars may contain epsilon-productions.

Example:

	type NT string
	b := lr.NewGrammarBuilder[rune, NT]("G")
	b.LHS("S'").N("S").EOF('$')       // S' ->  S $
	b.LHS("S").N("A").T('a').End()    // S  ->  A a
	b.LHS("A").N("B").N("D").End()    // A  ->  B D
	b.LHS("B").T('b').End()           // B  ->  b
	b.LHS("B").Epsilon()              // B  ->
	b.LHS("D").T('d').End()           // D  ->  d
	b.LHS("D").Epsilon()              // D  ->
	g, err := b.Grammar()

Rule 0 has to be the augmented start rule S' -> S EOF, where S' does not occur on
any right hand side and EOF is a terminal which is used nowhere else. Grammars are
checked for this form when the CFSM is built.

# Static Grammar Analysis

LR(0) table construction does not need look-ahead, but for grammar debugging it is
helpful to know FIRST sets and nullable non-terminals:

	ga := lr.Analysis(g)
	for _, N := range g.NonTerminals() {
	    fmt.Printf("FIRST(%v) = %v\n", N, ga.First(lr.NonTerm[rune](N)))
	}

	// Output:
	FIRST(A) = [98 100]        // 'b', 'd'
	FIRST(B) = [98]
	FIRST(D) = [100]
	FIRST(S) = [97 98 100]
	FIRST(S') = [97 98 100]

# Parser Construction

First a characteristic finite state machine (CFSM) is built from the
grammar, i.e. the canonical collection of LR(0) item sets. The CFSM will
then be compiled into an ACTION table and a GOTO table (LR(0)-tables).
The CFSM will not be thrown away, but is made available to the client. This is
intended for debugging purposes, but may be useful for error recovery, too.
It can be exported to Graphviz's Dot-format.

Example:

	lrgen := lr.NewTableGenerator(g)
	if err := lrgen.CreateTables(); err != nil {
	    …                            // grammar is malformed
	}
	if lrgen.HasConflicts {          // grammar is not LR(0)
	    for _, c := range lrgen.Table().Conflicts() { … }
	}

Conflicts do not prevent table construction. Reduce/reduce conflicts are resolved
in favour of the first complete item of a state, shift/reduce conflicts in favour
of the shift action. The table records the displaced action of a conflicting cell.

___________________________________________________________________________

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package lr

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lrzero.lr'.
func tracer() tracing.Trace {
	return tracing.Select("lrzero.lr")
}
