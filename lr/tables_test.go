package lr

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActionEncoding(t *testing.T) {
	for _, a := range []Action{{Kind: Shift, Target: 12}, {Kind: Reduce, Target: 0},
		{Kind: Reduce, Target: 7}, {Kind: Accept}} {
		if decodeAction(a.encode()) != a {
			t.Errorf("action %v does not survive encoding", a)
		}
	}
	assert.Equal(t, Error, decodeAction(-2147483648).Kind)
}

func TestParenTable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrzero.lr")
	defer teardown()
	//
	g := parenGrammar(t)
	lrgen := NewTableGenerator(g)
	require.NoError(t, lrgen.CreateTables())
	assert.False(t, lrgen.HasConflicts)
	table := lrgen.Table()
	assert.Equal(t, 13, table.StateCount())
	assert.Equal(t, 0, table.InitialState())
	assert.Equal(t, "$", table.End())
	a, ok := table.Action(0, "(")
	assert.True(t, ok)
	assert.Equal(t, Action{Kind: Shift, Target: 1}, a)
	a, _ = table.Action(2, "$")
	assert.Equal(t, Accept, a.Kind)
	assert.Equal(t, []int{2}, table.AcceptingStates())
	a, _ = table.Action(4, "+") // P ➞ 1 •
	assert.Equal(t, Reduce, a.Kind)
	assert.Equal(t, g.Rule(5), table.Rule(a.Target))
	a, ok = table.Action(10, ")") // E ➞ E + • P
	assert.True(t, ok)
	assert.Equal(t, Error, a.Kind)
	_, ok = table.Action(0, "x")
	assert.False(t, ok, "terminal not in alphabet must have no action")
	q, ok := table.Goto(10, "P")
	assert.True(t, ok)
	assert.Equal(t, 12, q)
	_, ok = table.Goto(4, "E")
	assert.False(t, ok)
}

// Every (state, terminal) cell of a conflict-free grammar holds exactly one action.
func TestTableTotality(t *testing.T) {
	g := parenGrammar(t)
	lrgen := NewTableGenerator(g)
	require.NoError(t, lrgen.CreateTables())
	table := lrgen.Table()
	for q := 0; q < table.StateCount(); q++ {
		for _, a := range table.Terminals() {
			_, a2 := table.Actions(q, a)
			assert.Equal(t, Error, a2.Kind)
		}
	}
	// every rule except the start rule is reducible
	assert.Equal(t, 5, len(table.Rules()))
}

func TestDanglingElseConflict(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrzero.lr")
	defer teardown()
	//
	g := danglingElseGrammar(t)
	lrgen := NewTableGenerator(g)
	require.NoError(t, lrgen.CreateTables())
	assert.True(t, lrgen.HasConflicts)
	conflicts := lrgen.Table().Conflicts()
	require.Equal(t, 1, len(conflicts))
	c := conflicts[0]
	t.Logf("conflict: %v", c)
	assert.Equal(t, ShiftReduce, c.Kind)
	assert.Equal(t, "else", c.Terminal)
	assert.Equal(t, Shift, c.Chosen.Kind)
	a1, a2 := lrgen.Table().Actions(c.State, "else")
	assert.Equal(t, Shift, a1.Kind)
	assert.Equal(t, Reduce, a2.Kind)
	assert.Equal(t, g.Rule(1), lrgen.Table().Rule(a2.Target))
	a, _ := lrgen.Table().Action(c.State, "$")
	assert.Equal(t, Reduce, a.Kind, "reduce stays on terminals without shift edge")
}

func TestReduceReduceConflict(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrzero.lr")
	defer teardown()
	//
	b := NewGrammarBuilder[string, string]("R/R")
	b.LHS("S'").N("S").EOF("$")
	b.LHS("S").N("A").End()
	b.LHS("S").N("B").End()
	b.LHS("A").T("x").End()
	b.LHS("B").T("x").End()
	g, err := b.Grammar()
	require.NoError(t, err)
	lrgen := NewTableGenerator(g)
	require.NoError(t, lrgen.CreateTables())
	conflicts := lrgen.Table().Conflicts()
	require.Equal(t, 1, len(conflicts))
	assert.Equal(t, ReduceReduce, conflicts[0].Kind)
	assert.Equal(t, 2, len(conflicts[0].Rules))
	chosen := lrgen.Table().Rule(conflicts[0].Chosen.Target)
	assert.Equal(t, g.Rule(3), chosen, "first complete item in item order wins")
}

func TestTableForMalformedGrammar(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrzero.lr")
	defer teardown()
	//
	b := NewGrammarBuilder[string, string]("no EOF")
	b.LHS("S").T("a").End()
	g, err := b.Grammar()
	require.NoError(t, err)
	lrgen := NewTableGenerator(g)
	assert.Error(t, lrgen.CreateTables())
	assert.Nil(t, lrgen.CFSM())
	assert.Nil(t, lrgen.Table())
}

func TestCompileTableChecksStartRule(t *testing.T) {
	g := parenGrammar(t)
	cfsm, err := CanonicalAutomaton(g, "S'", g.Symbols())
	require.NoError(t, err)
	_, err = CompileTable(cfsm, "S'", "E", "$", g.Terminals())
	assert.ErrorIs(t, err, ErrMalformedStartRule)
	table, err := CompileTable(cfsm, "S'", "S", "$", []string{"(", ")", "1"})
	require.NoError(t, err)
	// "$" is always part of the alphabet, "+" has been left out by the caller
	_, ok := table.Action(2, "$")
	assert.True(t, ok)
	_, ok = table.Action(5, "+")
	assert.False(t, ok)
}

func TestTableAccessorsReturnCopies(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrzero.lr")
	defer teardown()
	//
	g := danglingElseGrammar(t)
	lrgen := NewTableGenerator(g)
	require.NoError(t, lrgen.CreateTables())
	table := lrgen.Table()
	terms, nonterms := table.Terminals(), table.NonTerminals()
	rules, conflicts := table.Rules(), table.Conflicts()
	require.NotEmpty(t, conflicts)
	terms[0], nonterms[0], rules[0] = "#", "#", nil
	conflicts[0].State = -1
	assert.NotEqual(t, "#", table.Terminals()[0])
	assert.NotEqual(t, "#", table.NonTerminals()[0])
	assert.NotNil(t, table.Rules()[0])
	assert.NotEqual(t, -1, table.Conflicts()[0].State)
	//
	grules, gterms := g.Rules(), g.Terminals()
	grules[0], gterms[0] = nil, "#"
	rhs := g.Rule(0).RHS()
	rhs[0] = Term[string, string]("#")
	assert.NotNil(t, g.Rules()[0])
	assert.NotEqual(t, "#", g.Terminals()[0])
	assert.Equal(t, NonTerm[string]("X"), g.Rule(0).RHS()[0])
}
