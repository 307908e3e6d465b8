package lr

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFirstAndNullable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrzero.lr")
	defer teardown()
	//
	b := NewGrammarBuilder[string, string]("G")
	b.LHS("S'").N("S").EOF("$")
	b.LHS("S").N("A").T("a").End()
	b.LHS("A").N("B").N("D").End()
	b.LHS("B").T("b").End()
	b.LHS("B").Epsilon()
	b.LHS("D").T("d").End()
	b.LHS("D").Epsilon()
	g, err := b.Grammar()
	require.NoError(t, err)
	ga := Analysis(g)
	assert.Same(t, g, ga.Grammar())
	assert.Equal(t, []string{"a", "b", "d"}, ga.First(NonTerm[string]("S")))
	assert.Equal(t, []string{"b", "d"}, ga.First(NonTerm[string]("A")))
	assert.Equal(t, []string{"b"}, ga.First(NonTerm[string]("B")))
	assert.Equal(t, []string{"x"}, ga.First(Term[string, string]("x")))
	assert.True(t, ga.Nullable("A"))
	assert.True(t, ga.Nullable("B"))
	assert.False(t, ga.Nullable("S"))
	F, nullable := ga.FirstOfSequence(g.Rule(2).RHS())
	assert.Equal(t, []string{"b", "d"}, F)
	assert.True(t, nullable)
}

func TestFirstLeftRecursive(t *testing.T) {
	g := parenGrammar(t)
	ga := Analysis(g)
	assert.Equal(t, []string{"(", "1"}, ga.First(NonTerm[string]("E")))
	assert.Equal(t, []string{"("}, ga.First(NonTerm[string]("S'")))
	for _, N := range g.NonTerminals() {
		assert.False(t, ga.Nullable(N))
	}
}
