package lr

import (
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/exp/constraints"
)

// LRAnalysis computes static properties of a grammar: which non-terminals
// derive the empty word, and the FIRST sets of all non-terminals.
// LR(0) table construction does not need either of them, but they are
// useful for grammar debugging.
type LRAnalysis[T, NT constraints.Ordered] struct {
	g        *Grammar[T, NT]
	nullable map[NT]bool
	first    map[NT]*treeset.Set
}

// Analysis analyses a grammar. Both the nullable predicate and the FIRST sets
// are computed as a fixed point over all rules.
//
//	ga := lr.Analysis(g)
//	for _, N := range g.NonTerminals() {
//	    fmt.Printf("FIRST(%v) = %v, nullable = %v\n", N, ga.First(lr.NonTerm[Tok](N)), ga.Nullable(N))
//	}
func Analysis[T, NT constraints.Ordered](g *Grammar[T, NT]) *LRAnalysis[T, NT] {
	ga := &LRAnalysis[T, NT]{
		g:        g,
		nullable: make(map[NT]bool),
		first:    make(map[NT]*treeset.Set),
	}
	for _, N := range g.NonTerminals() {
		ga.first[N] = treeset.NewWith(func(a, b interface{}) int {
			return compare(a.(T), b.(T))
		})
	}
	for changed := true; changed; {
		changed = false
		for _, r := range g.rules {
			if !ga.nullable[r.LHS] && ga.sequenceIsNullable(r.rhs) {
				ga.nullable[r.LHS] = true
				changed = true
			}
			F := ga.first[r.LHS]
			before := F.Size()
			ga.addFirst(F, r.rhs)
			if F.Size() != before {
				changed = true
			}
		}
	}
	if tracer().GetTraceLevel() >= tracing.LevelDebug {
		for _, N := range g.NonTerminals() {
			tracer().Debugf("FIRST(%v) = %v, nullable = %v", NonTerm[T](N), ga.first[N].Values(), ga.nullable[N])
		}
	}
	return ga
}

// Grammar returns the grammar under analysis.
func (ga *LRAnalysis[T, NT]) Grammar() *Grammar[T, NT] {
	return ga.g
}

// Nullable is true if N ➞* ε.
func (ga *LRAnalysis[T, NT]) Nullable(N NT) bool {
	return ga.nullable[N]
}

// First returns FIRST(A), sorted. For a terminal A this is A itself. Epsilon is
// not part of FIRST sets; use Nullable to check for empty derivations.
func (ga *LRAnalysis[T, NT]) First(A Symbol[T, NT]) []T {
	if A.IsTerminal() {
		return []T{A.Terminal()}
	}
	F, ok := ga.first[A.NonTerminal()]
	if !ok {
		return nil
	}
	return toTerminals[T](F)
}

// FirstOfSequence returns FIRST of a sequence of symbols, and whether the
// whole sequence may derive the empty word.
func (ga *LRAnalysis[T, NT]) FirstOfSequence(syms []Symbol[T, NT]) ([]T, bool) {
	F := treeset.NewWith(func(a, b interface{}) int {
		return compare(a.(T), b.(T))
	})
	ga.addFirst(F, syms)
	return toTerminals[T](F), ga.sequenceIsNullable(syms)
}

func (ga *LRAnalysis[T, NT]) addFirst(F *treeset.Set, syms []Symbol[T, NT]) {
	for _, A := range syms {
		if A.IsTerminal() {
			F.Add(A.Terminal())
			return
		}
		if first := ga.first[A.NonTerminal()]; first != nil {
			F.Add(first.Values()...)
		}
		if !ga.nullable[A.NonTerminal()] {
			return
		}
	}
}

func (ga *LRAnalysis[T, NT]) sequenceIsNullable(syms []Symbol[T, NT]) bool {
	for _, A := range syms {
		if A.IsTerminal() || !ga.nullable[A.NonTerminal()] {
			return false
		}
	}
	return true
}

func toTerminals[T constraints.Ordered](F *treeset.Set) []T {
	terms := make([]T, 0, F.Size())
	for _, x := range F.Values() {
		terms = append(terms, x.(T))
	}
	return terms
}
