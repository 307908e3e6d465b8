package lr

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func TestAllItems(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrzero.lr")
	defer teardown()
	//
	g := parenGrammar(t)
	all := AllItems(g)
	// 3 + 4 + 4 + 2 + 4 + 2
	assert.Equal(t, 19, len(all))
	assert.Equal(t, 0, all[0].Dot())
	assert.True(t, all[2].IsComplete())
	assert.Equal(t, "[S'] ➞ [S] $ •", all[2].String())
	assert.Equal(t, "[S] ➞ • ( [E] )", all[3].String())
}

func TestItemAdvance(t *testing.T) {
	g := parenGrammar(t)
	i := StartItem(g.Rule(2)) // E ➞ • E + P
	assert.True(t, i.Advances(NonTerm[string]("E")))
	assert.False(t, i.Advances(Term[string, string]("+")))
	i = i.Advance()
	assert.True(t, i.Advances(Term[string, string]("+")))
	assert.Equal(t, 1, len(i.Prefix()))
	i = i.Advance().Advance()
	assert.True(t, i.IsComplete())
	_, ok := i.PeekSymbol()
	assert.False(t, ok)
	assert.Equal(t, i, i.Advance())
}

func TestItemOrder(t *testing.T) {
	g := parenGrammar(t)
	e1 := StartItem(g.Rule(2)) // E ➞ • E + P
	e2 := StartItem(g.Rule(3)) // E ➞ • P
	p := StartItem(g.Rule(5))  // P ➞ • 1
	assert.Equal(t, -1, e1.Compare(e2))
	assert.Equal(t, 1, p.Compare(e2))
	assert.Equal(t, -1, e1.Compare(e1.Advance()))
	assert.Equal(t, 0, p.Compare(StartItem(g.Rule(5))))
}

func TestClosure(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrzero.lr")
	defer teardown()
	//
	g := parenGrammar(t)
	all := AllItems(g)
	seed := NewItemSet(StartItem(g.Rule(1)).Advance()) // S ➞ ( • E )
	C := Closure(all, seed)
	t.Logf("closure = %v", C)
	if C.Size() != 5 {
		t.Errorf("expected closure to have 5 items, has %d", C.Size())
	}
	for _, r := range []int{2, 3, 4, 5} {
		if !C.Contains(StartItem(g.Rule(r))) {
			t.Errorf("expected closure to contain %v", StartItem(g.Rule(r)))
		}
	}
	if seed.Size() != 1 {
		t.Errorf("closure must not modify its seed")
	}
}

func TestClosureIdempotent(t *testing.T) {
	g := parenGrammar(t)
	all := AllItems(g)
	for _, i := range all {
		C := Closure(all, NewItemSet(i))
		CC := Closure(all, C)
		if !C.Equals(CC) || C.Key() != CC.Key() {
			t.Errorf("closure of %v is not idempotent", i)
		}
	}
}

func TestClosureMonotone(t *testing.T) {
	g := parenGrammar(t)
	all := AllItems(g)
	small := NewItemSet(all[3])
	large := NewItemSet(all[3], all[13])
	Cs, Cl := Closure(all, small), Closure(all, large)
	for _, i := range Cs.Items() {
		if !Cl.Contains(i) {
			t.Errorf("expected %v in closure of superset", i)
		}
	}
}

func TestClosureContainsSeed(t *testing.T) {
	g := parenGrammar(t)
	all := AllItems(g)
	seeds := make([]*ItemSet[string, string], 0, len(all)+3)
	for _, i := range all {
		seeds = append(seeds, NewItemSet(i))
	}
	seeds = append(seeds,
		NewItemSet(all[0], all[4]),
		NewItemSet(all[3], all[9], all[13]),
		NewItemSet(all...),
	)
	for _, S := range seeds {
		C := Closure(all, S)
		for _, i := range S.Items() {
			if !C.Contains(i) {
				t.Errorf("expected %v to be in closure of %v", i, S)
			}
		}
		if C.Size() < S.Size() {
			t.Errorf("expected closure of %v to have at least %d items, has %d", S, S.Size(), C.Size())
		}
	}
}

func TestItemSetKey(t *testing.T) {
	g := parenGrammar(t)
	all := AllItems(g)
	S1 := NewItemSet(all[1], all[5], all[7])
	S2 := NewItemSet(all[7], all[1], all[5])
	S3 := NewItemSet(all[1], all[5])
	assert.Equal(t, S1.Key(), S2.Key())
	assert.NotEqual(t, S1.Key(), S3.Key())
	assert.True(t, S1.Equals(S2))
	assert.False(t, S1.Equals(S3))
	assert.False(t, S1.Add(all[5]))
	assert.True(t, S3.Add(all[7]))
	assert.Equal(t, S1.Key(), S3.Key())
}
