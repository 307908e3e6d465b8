package lr

import (
	"fmt"

	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/emirpasic/gods/queues/linkedlistqueue"
	"golang.org/x/exp/constraints"
	"golang.org/x/exp/slices"
)

// === Goto-Set Operations ===================================================

// GotoSet computes goto(state, A): every item of state expecting A is advanced
// over A, and the closure of the result is returned. If no item of state
// expects A, the result is empty, meaning there is no transition on A.
func GotoSet[T, NT constraints.Ordered](g *Grammar[T, NT], state *ItemSet[T, NT],
	A Symbol[T, NT]) *ItemSet[T, NT] {
	//
	return gotoSet(AllItems(g), state, A)
}

func gotoSet[T, NT constraints.Ordered](all []Item[T, NT], state *ItemSet[T, NT],
	A Symbol[T, NT]) *ItemSet[T, NT] {
	//
	// for every item in state:  N ➞ … • A …
	//     advance to N ➞ … A • …
	kernel := NewItemSet[T, NT]()
	for _, i := range state.Items() {
		if i.Advances(A) {
			kernel.Add(i.Advance())
		}
	}
	if kernel.Empty() {
		return kernel
	}
	return Closure(all, kernel)
}

// === CFSM Construction =====================================================

// CFSMState is a state within the CFSM for a grammar.
type CFSMState[T, NT constraints.Ordered] struct {
	ID     int             // serial ID of this state = position in discovery order
	items  *ItemSet[T, NT] // configuration items within this state
	Accept bool            // does this state contain the completed start rule?
}

// Items returns the configuration items of state s.
func (s *CFSMState[T, NT]) Items() *ItemSet[T, NT] {
	return s.items
}

func (s *CFSMState[T, NT]) String() string {
	return fmt.Sprintf("(state %d | [%d])", s.ID, s.items.Size())
}

// Dump is a debugging helper.
func (s *CFSMState[T, NT]) Dump() {
	tracer().Debugf("--- state %03d -----------", s.ID)
	s.items.Dump()
	tracer().Debugf("-------------------------")
}

// Edge is a CFSM transition between two states, labeled with a grammar symbol.
type Edge[T, NT constraints.Ordered] struct {
	From  *CFSMState[T, NT]
	To    *CFSMState[T, NT]
	Label Symbol[T, NT]
}

type transition[T, NT constraints.Ordered] struct {
	from  int
	label Symbol[T, NT]
}

// CFSM is the characteristic finite state machine for a LR grammar, i.e. the
// LR(0) state diagram. States are numbered in the order they are discovered,
// starting with the initial state S0. A CFSM is immutable after construction.
type CFSM[T, NT constraints.Ordered] struct {
	g           *Grammar[T, NT]           // this CFSM is for Grammar g
	startRule   *Rule[T, NT]              // S' ➞ S EOF
	byID        []*CFSMState[T, NT]       // states in discovery order, i.e. by ID
	index       map[string]int            // item set key → state ID
	edges       *arraylist.List           // all the edges between states
	transitions map[transition[T, NT]]int // (state, symbol) → state
	S0          *CFSMState[T, NT]         // start state
}

// create an empty (initial) CFSM automata.
func emptyCFSM[T, NT constraints.Ordered](g *Grammar[T, NT], start *Rule[T, NT]) *CFSM[T, NT] {
	return &CFSM[T, NT]{
		g:           g,
		startRule:   start,
		index:       make(map[string]int),
		edges:       arraylist.New(),
		transitions: make(map[transition[T, NT]]int),
	}
}

// addState adds a state for an item set, if it is not yet present. It returns
// the state and a flag indicating if the state is new.
func (c *CFSM[T, NT]) addState(iset *ItemSet[T, NT]) (*CFSMState[T, NT], bool) {
	key := iset.Key()
	if id, ok := c.index[key]; ok {
		return c.byID[id], false
	}
	s := &CFSMState[T, NT]{ID: len(c.byID), items: iset}
	s.Accept = iset.Contains(Item[T, NT]{rule: c.startRule, dot: c.startRule.Len()})
	c.index[key] = s.ID
	c.byID = append(c.byID, s)
	return s, true
}

func (c *CFSM[T, NT]) addEdge(from, to *CFSMState[T, NT], A Symbol[T, NT]) {
	t := transition[T, NT]{from: from.ID, label: A}
	if _, ok := c.transitions[t]; ok {
		return
	}
	c.transitions[t] = to.ID
	c.edges.Add(Edge[T, NT]{From: from, To: to, Label: A})
}

// Grammar returns the grammar this CFSM has been built for.
func (c *CFSM[T, NT]) Grammar() *Grammar[T, NT] {
	return c.g
}

// StartRule returns the augmented start rule S' ➞ S EOF.
func (c *CFSM[T, NT]) StartRule() *Rule[T, NT] {
	return c.startRule
}

// Size returns the number of states.
func (c *CFSM[T, NT]) Size() int {
	return len(c.byID)
}

// State returns the state with a given ID, or nil.
func (c *CFSM[T, NT]) State(id int) *CFSMState[T, NT] {
	if id < 0 || id >= len(c.byID) {
		return nil
	}
	return c.byID[id]
}

// States returns all states in discovery order.
func (c *CFSM[T, NT]) States() []*CFSMState[T, NT] {
	return slices.Clone(c.byID)
}

// Edges returns all edges, in the order they have been discovered.
func (c *CFSM[T, NT]) Edges() []Edge[T, NT] {
	edges := make([]Edge[T, NT], 0, c.edges.Size())
	it := c.edges.Iterator()
	for it.Next() {
		edges = append(edges, it.Value().(Edge[T, NT]))
	}
	return edges
}

// EdgesFrom returns all edges starting at state s.
func (c *CFSM[T, NT]) EdgesFrom(s *CFSMState[T, NT]) []Edge[T, NT] {
	r := make([]Edge[T, NT], 0, 2)
	for _, e := range c.Edges() {
		if e.From == s {
			r = append(r, e)
		}
	}
	return r
}

// Transition returns the target state ID for a transition from state id on A.
func (c *CFSM[T, NT]) Transition(id int, A Symbol[T, NT]) (int, bool) {
	to, ok := c.transitions[transition[T, NT]{from: id, label: A}]
	return to, ok
}

// CanonicalAutomaton constructs the canonical collection of LR(0) item sets
// for g, starting with the closure of the start item for the (unique) rule
// start ➞ S EOF. States are discovered in breadth-first order, using the
// symbols of alphabet in the order given. Usually alphabet will be g.Symbols().
//
// An error is returned if g's start rule is missing or malformed. No CFSM
// is constructed in this case.
func CanonicalAutomaton[T, NT constraints.Ordered](g *Grammar[T, NT], start NT,
	alphabet []Symbol[T, NT]) (*CFSM[T, NT], error) {
	//
	tracer().Debugf("=== build CFSM ==================================================")
	startRule, err := g.startRule(start)
	if err != nil {
		tracer().Errorf("cannot build CFSM for grammar %q: %v", g.Name, err)
		return nil, fmt.Errorf("grammar %q: %w", g.Name, err)
	}
	all := AllItems(g)
	cfsm := emptyCFSM(g, startRule)
	closure0 := Closure(all, NewItemSet(StartItem(startRule)))
	cfsm.S0, _ = cfsm.addState(closure0)
	cfsm.S0.Dump()
	worklist := linkedlistqueue.New()
	worklist.Enqueue(cfsm.S0)
	for !worklist.Empty() {
		x, _ := worklist.Dequeue()
		s := x.(*CFSMState[T, NT])
		for _, A := range alphabet {
			gotoset := gotoSet(all, s.items, A)
			if gotoset.Empty() {
				continue
			}
			snew, isNew := cfsm.addState(gotoset)
			if isNew {
				tracer().Debugf("goto(%d, %v) = new state %d %s", s.ID, A, snew.ID,
					itemSetDebugString(gotoset))
				worklist.Enqueue(snew)
			}
			cfsm.addEdge(s, snew, A)
		}
	}
	tracer().Debugf("CFSM for grammar %q has %d states", g.Name, cfsm.Size())
	return cfsm, nil
}
